package mcp

import (
	"context"

	"github.com/claude/runpro/internal/analytics"
	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/plans"
	"github.com/claude/runpro/internal/workoutlog"
)

// DataSource abstracts the data layer for MCP tools. Both *Service (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QueryWorkouts(ctx context.Context, q workoutlog.Query) ([]models.LoggedWorkout, error)
	GetTrainingStats(ctx context.Context) (analytics.Stats, error)
	GetWeeklyChart(ctx context.Context) ([7]analytics.DayBucket, error)
	// ProjectRaceTimes returns nil when no run qualifies.
	ProjectRaceTimes(ctx context.Context) ([]analytics.Projection, error)
	// GetActivePlan returns nil when no plan is active.
	GetActivePlan(ctx context.Context) (*plans.ActivePlan, error)
	ListSavedPlans(ctx context.Context) ([]models.SavedTrainingPlan, error)
}

// Service serves the in-process workout log and plan store.
type Service struct {
	Workouts *workoutlog.Log
	Plans    *plans.Store
}

// Compile-time check: *Service satisfies DataSource.
var _ DataSource = (*Service)(nil)

func (s *Service) QueryWorkouts(_ context.Context, q workoutlog.Query) ([]models.LoggedWorkout, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}
	return workoutlog.View(s.Workouts.All(), q), nil
}

func (s *Service) GetTrainingStats(context.Context) (analytics.Stats, error) {
	return analytics.ComputeStats(s.Workouts.All()), nil
}

func (s *Service) GetWeeklyChart(context.Context) ([7]analytics.DayBucket, error) {
	return analytics.WeeklyBuckets(s.Workouts.All()), nil
}

func (s *Service) ProjectRaceTimes(context.Context) ([]analytics.Projection, error) {
	return analytics.ProjectRaceTimes(s.Workouts.All()), nil
}

func (s *Service) GetActivePlan(ctx context.Context) (*plans.ActivePlan, error) {
	active, ok, err := s.Plans.Active(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return &active, nil
}

func (s *Service) ListSavedPlans(ctx context.Context) ([]models.SavedTrainingPlan, error) {
	return s.Plans.List(ctx)
}
