// Package ingest converts third-party workout exports into candidates for
// the workout log.
package ingest

import "github.com/claude/runpro/internal/models"

// Appender receives converted workouts. *workoutlog.Log satisfies it.
type Appender interface {
	Append(c models.WorkoutCandidate) (models.LoggedWorkout, error)
}

// Result holds the outcome of an ingest operation.
type Result struct {
	WorkoutsReceived int      `json:"workouts_received"`
	WorkoutsInserted int      `json:"workouts_inserted"`
	WorkoutsSkipped  int      `json:"workouts_skipped"`
	WorkoutsRejected int      `json:"workouts_rejected"`
	SkippedTypes     []string `json:"skipped_types,omitempty"`

	Message string `json:"message,omitempty"`
}

// Skip records an activity type that is not a running workout.
func (r *Result) Skip(kind string) {
	r.WorkoutsSkipped++
	for _, k := range r.SkippedTypes {
		if k == kind {
			return
		}
	}
	r.SkippedTypes = append(r.SkippedTypes, kind)
}
