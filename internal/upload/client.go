package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/runpro/internal/ingest"
)

const maxAttempts = 3

// Client sends exports to a RunPro server over HTTP.
type Client struct {
	serverURL  string
	httpClient *http.Client
	backoff    time.Duration
	apiKey     string
}

// NewClient creates a new HTTP client for the RunPro server.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// WithAPIKey sets the X-API-Key header sent with every upload.
func (c *Client) WithAPIKey(key string) *Client {
	c.apiKey = key
	return c
}

// SendHAE posts a Health Auto Export JSON payload to /api/v1/ingest.
func (c *Client) SendHAE(ctx context.Context, payload []byte) (*ingest.Result, error) {
	return c.post(ctx, "/api/v1/ingest", "application/json", payload)
}

// SendAlpha posts an Alpha Progression CSV export to /api/v1/ingest/alpha.
func (c *Client) SendAlpha(ctx context.Context, csv []byte) (*ingest.Result, error) {
	return c.post(ctx, "/api/v1/ingest/alpha", "text/csv", csv)
}

// post retries up to 3 times with exponential backoff. Client errors (4xx)
// are returned at once.
func (c *Client) post(ctx context.Context, path, contentType string, data []byte) (*ingest.Result, error) {
	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff << (attempt - 1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+path, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var result ingest.Result
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding ingest result: %w", err)
			}
			return &result, nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return nil, fmt.Errorf("ingest rejected (status %d): %s", resp.StatusCode, body)
		}
		lastErr = fmt.Errorf("ingest failed (status %d): %s", resp.StatusCode, body)
	}

	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}
