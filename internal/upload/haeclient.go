package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"
)

// HAEClient queries the Health Auto Export TCP server (JSON-RPC 2.0). The
// server closes the socket after each response, so every call dials anew.
type HAEClient struct {
	host    string
	port    int
	timeout time.Duration
	retry   time.Duration
}

type jsonRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const haeDateFormat = "2006-01-02 15:04:05 -0700"

// NewHAEClient creates a new client for the HAE TCP server.
func NewHAEClient(host string, port int) *HAEClient {
	return &HAEClient{
		host:    host,
		port:    port,
		timeout: 120 * time.Second,
		retry:   3 * time.Second,
	}
}

// QueryWorkouts returns the workouts between start and end in the REST
// payload shape accepted by /api/v1/ingest.
func (c *HAEClient) QueryWorkouts(ctx context.Context, start, end time.Time) (json.RawMessage, error) {
	return c.callTool(ctx, "workouts", map[string]any{
		"start":           start.Format(haeDateFormat),
		"end":             end.Format(haeDateFormat),
		"includeMetadata": false,
		"includeRoutes":   false,
	})
}

// QueryWorkoutsWithRetry retries QueryWorkouts; the HAE app drops the
// server when it is backgrounded, so failures are usually transient.
func (c *HAEClient) QueryWorkoutsWithRetry(ctx context.Context, start, end time.Time, log *slog.Logger) (json.RawMessage, error) {
	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			log.Info("retrying workout query", "attempt", attempt+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retry):
			}
		}
		result, err := c.QueryWorkouts(ctx, start, end)
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Warn("workout query failed", "error", err)
	}
	return nil, lastErr
}

func (c *HAEClient) callTool(ctx context.Context, tool string, args map[string]any) (json.RawMessage, error) {
	reqData, err := json.Marshal(jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "callTool",
		Params:  callToolParams{Name: tool, Arguments: args},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	addr := net.JoinHostPort(c.host, strconv.Itoa(c.port))
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close() //nolint:errcheck

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("setting deadline: %w", err)
	}

	// Newline-delimited framing; the response runs until EOF.
	if _, err := conn.Write(append(reqData, '\n')); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}
	respData, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(respData) == 0 {
		return nil, fmt.Errorf("empty response from %s", addr)
	}

	var resp jsonRPCResponse
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("HAE error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}
