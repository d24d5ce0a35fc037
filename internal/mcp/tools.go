package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/runpro/internal/analytics"
	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/plans"
	"github.com/claude/runpro/internal/workoutlog"
)

// timeRange parses optional start/end dates. A missing end is now; a missing
// start is defaultDays before end, or unbounded when defaultDays is 0.
func timeRange(startStr, endStr string, now time.Time, defaultDays int) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = now
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else if defaultDays > 0 {
		start = end.AddDate(0, 0, -defaultDays)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(models.DateLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// inRange keeps the workouts whose calendar date lies within [start, end].
// A zero start is unbounded.
func inRange(workouts []models.LoggedWorkout, start, end time.Time) []models.LoggedWorkout {
	from, to := "", end.Format(models.DateLayout)
	if !start.IsZero() {
		from = start.Format(models.DateLayout)
	}
	out := make([]models.LoggedWorkout, 0, len(workouts))
	for _, w := range workouts {
		if w.Date >= from && w.Date <= to {
			out = append(out, w)
		}
	}
	return out
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query the workout log. Returns logged runs (distance in km, pace in minutes per km) and strength sessions (exercises with sets, reps and weight)."),
	mcp.WithString("type", mcp.Description("Filter by workout type (e.g. 'easy', 'tempo', 'Long Run', 'strength')")),
	mcp.WithString("search", mcp.Description("Substring matched against the date and type label")),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to the first logged workout.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("sort", mcp.Description("Sort field. Defaults to 'date'."), mcp.Enum("date", "mileage", "pace")),
	mcp.WithString("order", mcp.Description("Sort order. Defaults to 'desc'."), mcp.Enum("asc", "desc")),
)

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Total distance, average pace and session count over the whole workout log."),
)

var toolGetWeeklyChart = mcp.NewTool("get_weekly_chart",
	mcp.WithDescription("Distance and average pace per weekday (Monday first), folded over the whole log."),
)

var toolProjectRaceTimes = mcp.NewTool("project_race_times",
	mcp.WithDescription("Projected finishing times for 5K, 10K, half and full marathon, extrapolated with Riegel's formula from the fastest logged run of at least 3 km."),
)

var toolGetActivePlan = mcp.NewTool("get_active_plan",
	mcp.WithDescription("The active weekly training plan: focus and one entry per training day with type, distance, duration, intensity and strength exercises."),
)

var toolListSavedPlans = mcp.NewTool("list_saved_plans",
	mcp.WithDescription("All saved training plans (at most one per race distance) with their revision history, newest first."),
)

var toolGetTodaysWorkout = mcp.NewTool("get_todays_workout",
	mcp.WithDescription("The session of the active plan scheduled for today, with warm-up, drills and cool-down guidance."),
	mcp.WithString("date", mcp.Description("Date to look up instead of today (YYYY-MM-DD)")),
	mcp.WithString("lang", mcp.Description("Language of the guidance. Defaults to the server language."), mcp.Enum("th", "en")),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := timeRange(req.GetString("start", ""), req.GetString("end", ""), h.now(), 0)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	q := workoutlog.Query{
		Type:      req.GetString("type", ""),
		Search:    req.GetString("search", ""),
		SortField: workoutlog.SortField(req.GetString("sort", "")),
		SortOrder: workoutlog.SortOrder(req.GetString("order", "")),
	}
	workouts, err := h.ds.QueryWorkouts(ctx, q)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(inRange(workouts, start, end))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetTrainingStats(ctx)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"total_mileage_km": stats.TotalMileage,
		"total_mileage":    stats.TotalMileageLabel(),
		"avg_pace":         stats.AvgPace,
		"avg_pace_label":   stats.AvgPaceLabel(),
		"sessions":         stats.Sessions,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyChart(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buckets, err := h.ds.GetWeeklyChart(ctx)
	if err != nil {
		h.log.Error("mcp get_weekly_chart", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(buckets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) projectRaceTimes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projections, err := h.ds.ProjectRaceTimes(ctx)
	if err != nil {
		h.log.Error("mcp project_race_times", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if projections == nil {
		return mcp.NewToolResultText("No run of at least 3 km has been logged yet, so no projection is available."), nil
	}

	result, err := mcp.NewToolResultJSON(projections)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getActivePlan(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	active, err := h.ds.GetActivePlan(ctx)
	if err != nil {
		h.log.Error("mcp get_active_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if active == nil {
		return mcp.NewToolResultText("No training plan is active."), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"id":     active.ID,
		"draft":  active.Draft,
		"plan":   active.Plan,
		"volume": analytics.PlanVolume(active.Plan),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listSavedPlans(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	saved, err := h.ds.ListSavedPlans(ctx)
	if err != nil {
		h.log.Error("mcp list_saved_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if saved == nil {
		saved = []models.SavedTrainingPlan{}
	}

	result, err := mcp.NewToolResultJSON(saved)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTodaysWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day := h.now()
	if s := req.GetString("date", ""); s != "" {
		d, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		day = d
	}
	lang := req.GetString("lang", h.lang)
	if lang != "th" && lang != "en" {
		lang = h.lang
	}

	active, err := h.ds.GetActivePlan(ctx)
	if err != nil {
		h.log.Error("mcp get_todays_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if active == nil {
		return mcp.NewToolResultText("No training plan is active."), nil
	}
	workout, ok := plans.TodaysWorkout(active.Plan, day)
	if !ok {
		return mcp.NewToolResultText("Nothing is scheduled for " + day.Weekday().String() + "."), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"date":    day.Format(models.DateLayout),
		"workout": workout,
		"guide":   plans.GuideFor(workout.Type, lang),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
