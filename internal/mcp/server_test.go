package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/runpro/internal/metrics"
	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/plans"
	"github.com/claude/runpro/internal/storage"
	"github.com/claude/runpro/internal/workoutlog"
)

func samplePlan() models.TrainingPlan {
	return models.TrainingPlan{Week: 1, Focus: "Base", Workouts: []models.PlanWorkout{
		{Day: "Monday", Type: models.WorkoutEasy, Description: "Easy jog", Distance: "6 km", Intensity: models.IntensityLow},
		{Day: "Wednesday", Type: models.WorkoutTempo, Description: "Tempo", Distance: "8 km", Intensity: models.IntensityHigh},
		{Day: "Saturday", Type: models.WorkoutLong, Description: "Long run", Distance: "14 km", Intensity: models.IntensityMedium},
	}}
}

// newTestHandlers wires handlers to a local Service. The clock is fixed to
// Wednesday 2024-05-08.
func newTestHandlers(t *testing.T) (*handlers, *Service) {
	t.Helper()
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewTestManager()
	svc := &Service{
		Workouts: workoutlog.New(m, discard),
		Plans:    plans.NewStore(storage.NewMemory(), plans.NewNotifier(), m, discard),
	}
	h := &handlers{
		ds:   svc,
		lang: "en",
		now:  func() time.Time { return time.Date(2024, 5, 8, 7, 0, 0, 0, time.UTC) },
		log:  discard,
	}
	return h, svc
}

func logRuns(t *testing.T, svc *Service) {
	t.Helper()
	for _, c := range []models.WorkoutCandidate{
		{Date: "2024-04-01", Type: models.WorkoutEasy, Mileage: 6, Minutes: 36},
		{Date: "2024-05-01", Type: models.WorkoutTempo, Mileage: 5, Minutes: 25},
		{Date: "2024-05-07", Type: models.WorkoutLong, Mileage: 15, Hours: 1, Minutes: 30},
	} {
		if _, err := svc.Workouts.Append(c); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
}

func callTool(t *testing.T, fn func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("tool returned error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", res.Content[0])
	}
	return text.Text, res.IsError
}

// TestGetWorkoutsTool verifies filtering by type and date range.
func TestGetWorkoutsTool(t *testing.T) {
	h, svc := newTestHandlers(t)
	logRuns(t, svc)

	text, isErr := callTool(t, h.getWorkouts, map[string]any{"start": "2024-04-15"})
	if isErr {
		t.Fatalf("unexpected error result: %s", text)
	}
	var got []models.LoggedWorkout
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Date != "2024-05-07" {
		t.Errorf("workouts = %+v", got)
	}

	text, _ = callTool(t, h.getWorkouts, map[string]any{"type": "tempo"})
	got = nil
	json.Unmarshal([]byte(text), &got) //nolint:errcheck
	if len(got) != 1 || got[0].Type != models.WorkoutTempo {
		t.Errorf("tempo workouts = %+v", got)
	}

	if _, isErr := callTool(t, h.getWorkouts, map[string]any{"sort": "speed"}); !isErr {
		t.Error("expected error result for unknown sort field")
	}
	if _, isErr := callTool(t, h.getWorkouts, map[string]any{"start": "yesterday"}); !isErr {
		t.Error("expected error result for invalid date")
	}
}

// TestTrainingStatsTool verifies the totals and labels.
func TestTrainingStatsTool(t *testing.T) {
	h, svc := newTestHandlers(t)
	logRuns(t, svc)

	text, _ := callTool(t, h.getTrainingStats, nil)
	var got map[string]any
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatal(err)
	}
	if got["total_mileage"] != "26.0" || got["sessions"] != float64(3) {
		t.Errorf("stats = %v", got)
	}
	// (6 + 5 + 6) / 3
	if got["avg_pace_label"] != `5'40"` {
		t.Errorf("avg_pace_label = %v", got["avg_pace_label"])
	}
}

// TestProjectRaceTimesTool verifies the empty message and the four projections.
func TestProjectRaceTimesTool(t *testing.T) {
	h, svc := newTestHandlers(t)

	text, _ := callTool(t, h.projectRaceTimes, nil)
	if !strings.Contains(text, "No run") {
		t.Errorf("empty log text = %q", text)
	}

	logRuns(t, svc)
	text, _ = callTool(t, h.projectRaceTimes, nil)
	var got []map[string]any
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 || got[0]["label"] != "5K" {
		t.Errorf("projections = %v", got)
	}
}

// TestPlanTools verifies the active plan, saved plans and today's session.
func TestPlanTools(t *testing.T) {
	h, svc := newTestHandlers(t)

	if text, _ := callTool(t, h.getActivePlan, nil); text != "No training plan is active." {
		t.Errorf("no plan text = %q", text)
	}

	if _, err := svc.Plans.Upsert(context.Background(), samplePlan(), models.Target10K, "5:30"); err != nil {
		t.Fatal(err)
	}

	text, _ := callTool(t, h.getActivePlan, nil)
	var active struct {
		Plan   models.TrainingPlan `json:"plan"`
		Volume struct {
			DistanceKm float64 `json:"distanceKm"`
		} `json:"volume"`
	}
	if err := json.Unmarshal([]byte(text), &active); err != nil {
		t.Fatal(err)
	}
	if active.Plan.Focus != "Base" || active.Volume.DistanceKm != 28 {
		t.Errorf("active = %+v", active)
	}

	text, _ = callTool(t, h.listSavedPlans, nil)
	var saved []models.SavedTrainingPlan
	json.Unmarshal([]byte(text), &saved) //nolint:errcheck
	if len(saved) != 1 || saved[0].Name != "10K plan - Base" {
		t.Errorf("saved = %+v", saved)
	}

	text, _ = callTool(t, h.getTodaysWorkout, nil)
	var today struct {
		Workout models.PlanWorkout `json:"workout"`
		Guide   plans.SessionGuide `json:"guide"`
	}
	if err := json.Unmarshal([]byte(text), &today); err != nil {
		t.Fatal(err)
	}
	if today.Workout.Type != models.WorkoutTempo {
		t.Errorf("today = %+v", today.Workout)
	}
	if today.Guide != plans.GuideFor(models.WorkoutTempo, "en") {
		t.Errorf("guide = %+v", today.Guide)
	}

	// Thursday has no session
	text, _ = callTool(t, h.getTodaysWorkout, map[string]any{"date": "2024-05-09"})
	if !strings.Contains(text, "Thursday") {
		t.Errorf("rest day text = %q", text)
	}
}

// TestTimeRange verifies range defaults and parsing.
func TestTimeRange(t *testing.T) {
	now := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)

	start, end, err := timeRange("", "", now, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !end.Equal(now) || end.Sub(start) != 14*24*time.Hour {
		t.Errorf("default range = %v..%v", start, end)
	}

	start, _, err = timeRange("", "", now, 0)
	if err != nil || !start.IsZero() {
		t.Errorf("unbounded start = %v, %v", start, err)
	}

	start, _, err = timeRange("2024-06-15T10:30:00Z", "", now, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	if _, _, err = timeRange("not-a-date", "", now, 0); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestRecentWorkoutsResource verifies the 14-day window.
func TestRecentWorkoutsResource(t *testing.T) {
	h, svc := newTestHandlers(t)
	logRuns(t, svc)

	var req mcp.ReadResourceRequest
	req.Params.URI = resRecentWorkouts.URI
	contents, err := h.recentWorkouts(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	var got []models.LoggedWorkout
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("recent workouts = %d, want 2", len(got))
	}
}
