package upload

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"
)

// startMockTCPServer accepts one connection, captures the request and replies
// with response before closing. Returns the port and the captured request.
func startMockTCPServer(t *testing.T, response []byte) (int, <-chan jsonRPCRequest) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	got := make(chan jsonRPCRequest, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 4096)
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, _ := conn.Read(buf)

		var req jsonRPCRequest
		json.Unmarshal(buf[:n], &req) //nolint:errcheck
		got <- req

		conn.Write(response) //nolint:errcheck
	}()

	return ln.Addr().(*net.TCPAddr).Port, got
}

func rpcResult(t *testing.T, result string) []byte {
	t.Helper()
	b, err := json.Marshal(jsonRPCResponse{JSONRPC: "2.0", ID: 1, Result: json.RawMessage(result)})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// TestQueryWorkouts verifies the JSON-RPC request for the workouts tool and
// that the result is returned untouched.
func TestQueryWorkouts(t *testing.T) {
	port, reqs := startMockTCPServer(t, rpcResult(t, `{"data":{"workouts":[]}}`))

	client := NewHAEClient("127.0.0.1", port)
	client.timeout = 5 * time.Second

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	result, err := client.QueryWorkouts(context.Background(), start, end)
	if err != nil {
		t.Fatalf("QueryWorkouts returned error: %v", err)
	}
	if string(result) != `{"data":{"workouts":[]}}` {
		t.Errorf("unexpected result: %s", result)
	}

	req := <-reqs
	if req.Method != "callTool" {
		t.Errorf("method = %q, want callTool", req.Method)
	}
	paramsBytes, _ := json.Marshal(req.Params)
	var params callToolParams
	json.Unmarshal(paramsBytes, &params) //nolint:errcheck
	if params.Name != "workouts" {
		t.Errorf("tool = %q, want workouts", params.Name)
	}
	if params.Arguments["start"] != "2025-01-01 00:00:00 +0000" {
		t.Errorf("start = %v", params.Arguments["start"])
	}
}

// TestCallToolError verifies that a JSON-RPC error response is surfaced.
func TestCallToolError(t *testing.T) {
	resp, _ := json.Marshal(jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      1,
		Error:   &jsonRPCError{Code: -32600, Message: "Invalid request"},
	})
	port, _ := startMockTCPServer(t, resp)

	client := NewHAEClient("127.0.0.1", port)
	client.timeout = 5 * time.Second

	_, err := client.callTool(context.Background(), "workouts", map[string]any{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := err.Error(); got != "HAE error -32600: Invalid request" {
		t.Errorf("unexpected error: %s", got)
	}
}

// TestConnectionRefused verifies that a connection error is returned.
func TestConnectionRefused(t *testing.T) {
	client := NewHAEClient("127.0.0.1", 1)
	client.timeout = 1 * time.Second

	if _, err := client.callTool(context.Background(), "workouts", map[string]any{}); err == nil {
		t.Fatal("expected error for refused connection")
	}
}

// TestEmptyResponse verifies that an empty response is handled as an error.
func TestEmptyResponse(t *testing.T) {
	port, _ := startMockTCPServer(t, []byte{})

	client := NewHAEClient("127.0.0.1", port)
	client.timeout = 5 * time.Second

	if _, err := client.callTool(context.Background(), "workouts", map[string]any{}); err == nil {
		t.Fatal("expected error for empty response")
	}
}
