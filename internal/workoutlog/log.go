// Package workoutlog is the append-only, in-memory log of completed
// workouts and the filtered views derived from it.
package workoutlog

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/claude/runpro/internal/analytics"
	"github.com/claude/runpro/internal/metrics"
	"github.com/claude/runpro/internal/models"
)

// Log holds the workouts logged during the life of the process. Entries are
// never edited or removed.
type Log struct {
	mu       sync.RWMutex
	workouts []models.LoggedWorkout
	metrics  *metrics.Manager
	log      *slog.Logger
}

func New(m *metrics.Manager, log *slog.Logger) *Log {
	return &Log{metrics: m, log: log}
}

// Append validates a candidate and adds it to the end of the log. A rejected
// candidate leaves the log unchanged.
func (l *Log) Append(c models.WorkoutCandidate) (models.LoggedWorkout, error) {
	w := models.LoggedWorkout{
		Date:      c.Date,
		Type:      c.Type,
		Intensity: c.Intensity,
	}
	if c.Type == models.WorkoutStrength {
		w.Exercises = append([]models.StrengthExercise(nil), c.Exercises...)
	} else {
		if c.Hours < 0 || c.Minutes < 0 || c.Seconds < 0 {
			return models.LoggedWorkout{}, models.Invalid("duration", "must not be negative")
		}
		w.Mileage = c.Mileage
		w.Pace = analytics.ComputePace(c.Mileage, c.Hours, c.Minutes, c.Seconds)
	}
	if err := w.Validate(); err != nil {
		return models.LoggedWorkout{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.LoggedWorkout{}, fmt.Errorf("generating workout id: %w", err)
	}
	w.ID = id.String()

	l.mu.Lock()
	l.workouts = append(l.workouts, w)
	n := len(l.workouts)
	l.mu.Unlock()

	l.metrics.CounterWorkoutsLogged.Inc()
	l.log.Info("workout logged", "id", w.ID, "type", w.Type, "mileage", w.Mileage, "entries", n)
	return w, nil
}

// Seed appends already-built workouts, used to preload a log. Invalid
// entries are skipped and counted.
func (l *Log) Seed(workouts []models.LoggedWorkout) (skipped int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range workouts {
		if err := w.Validate(); err != nil {
			l.log.Warn("skipping seed workout", "date", w.Date, "error", err)
			skipped++
			continue
		}
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		l.workouts = append(l.workouts, w)
	}
	return skipped
}

// All returns a copy of the log in insertion order.
func (l *Log) All() []models.LoggedWorkout {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.LoggedWorkout(nil), l.workouts...)
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.workouts)
}
