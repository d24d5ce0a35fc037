package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/runpro/internal/workoutlog"
)

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// activePlan renders null when no plan is active.
func (h *handlers) activePlan(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	active, err := h.ds.GetActivePlan(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, active)
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	end := h.now()
	start := end.AddDate(0, 0, -14)

	workouts, err := h.ds.QueryWorkouts(ctx, workoutlog.Query{})
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, inRange(workouts, start, end))
}
