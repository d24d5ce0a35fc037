package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/runpro/internal/analytics"
	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/plans"
	"github.com/claude/runpro/internal/workoutlog"
)

// HTTPClient implements DataSource by calling the RunPro REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// get returns the response body, or nil for 204 No Content.
func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNoContent:
		return nil, nil
	}
	return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, q workoutlog.Query) ([]models.LoggedWorkout, error) {
	params := url.Values{}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.SortField != "" {
		params.Set("sort", string(q.SortField))
	}
	if q.SortOrder != "" {
		params.Set("order", string(q.SortOrder))
	}

	body, err := c.get(ctx, "/api/v1/workouts", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Workouts []models.LoggedWorkout `json:"workouts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return resp.Workouts, nil
}

func (c *HTTPClient) GetTrainingStats(ctx context.Context) (analytics.Stats, error) {
	body, err := c.get(ctx, "/api/v1/analytics/stats", nil)
	if err != nil {
		return analytics.Stats{}, err
	}

	var stats analytics.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return analytics.Stats{}, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return stats, nil
}

func (c *HTTPClient) GetWeeklyChart(ctx context.Context) ([7]analytics.DayBucket, error) {
	var buckets [7]analytics.DayBucket
	body, err := c.get(ctx, "/api/v1/analytics/weekly", nil)
	if err != nil {
		return buckets, err
	}

	if err := json.Unmarshal(body, &buckets); err != nil {
		return buckets, fmt.Errorf("httpclient: decode weekly chart: %w", err)
	}
	return buckets, nil
}

func (c *HTTPClient) ProjectRaceTimes(ctx context.Context) ([]analytics.Projection, error) {
	body, err := c.get(ctx, "/api/v1/analytics/projections", nil)
	if err != nil || body == nil {
		return nil, err
	}

	var projections []analytics.Projection
	if err := json.Unmarshal(body, &projections); err != nil {
		return nil, fmt.Errorf("httpclient: decode projections: %w", err)
	}
	return projections, nil
}

func (c *HTTPClient) GetActivePlan(ctx context.Context) (*plans.ActivePlan, error) {
	body, err := c.get(ctx, "/api/v1/plans/active", nil)
	if err != nil || body == nil {
		return nil, err
	}

	var active plans.ActivePlan
	if err := json.Unmarshal(body, &active); err != nil {
		return nil, fmt.Errorf("httpclient: decode active plan: %w", err)
	}
	return &active, nil
}

func (c *HTTPClient) ListSavedPlans(ctx context.Context) ([]models.SavedTrainingPlan, error) {
	body, err := c.get(ctx, "/api/v1/plans", nil)
	if err != nil {
		return nil, err
	}

	var saved []models.SavedTrainingPlan
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, fmt.Errorf("httpclient: decode saved plans: %w", err)
	}
	return saved, nil
}
