package workoutlog

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/runpro/internal/metrics"
	"github.com/claude/runpro/internal/models"
)

func newTestLog() *Log {
	return New(metrics.NewTestManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAppendRun(t *testing.T) {
	l := newTestLog()
	w, err := l.Append(models.WorkoutCandidate{
		Date: "2024-05-06", Type: models.WorkoutTempo, Mileage: 10, Minutes: 50,
		Intensity: models.IntensityHigh,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, 5.0, w.Pace)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(l.metrics.CounterWorkoutsLogged))
}

// TestAppendStrengthIgnoresDistance verifies strength sessions are stored
// without distance or pace whatever the form carried.
func TestAppendStrengthIgnoresDistance(t *testing.T) {
	l := newTestLog()
	w, err := l.Append(models.WorkoutCandidate{
		Date: "2024-05-07", Type: models.WorkoutStrength, Mileage: 3, Minutes: 40,
		Exercises: []models.StrengthExercise{{Name: "Squat", Sets: 3, Reps: 8, Weight: "60kg"}},
	})
	require.NoError(t, err)
	assert.Zero(t, w.Mileage)
	assert.Zero(t, w.Pace)
	assert.Len(t, w.Exercises, 1)
}

// TestAppendRejectsInvalid verifies rejected candidates leave the log unchanged.
func TestAppendRejectsInvalid(t *testing.T) {
	l := newTestLog()
	_, err := l.Append(models.WorkoutCandidate{Date: "2024-05-06", Type: models.WorkoutEasy, Mileage: 5, Minutes: 30})
	require.NoError(t, err)

	bad := []models.WorkoutCandidate{
		{Date: "2024-05-07", Type: models.WorkoutStrength},
		{Date: "2024-05-07", Type: models.WorkoutEasy, Mileage: 0, Minutes: 30},
		{Date: "2024-05-07", Type: models.WorkoutEasy, Mileage: -2, Minutes: 30},
		{Date: "2024-05-07", Type: models.WorkoutLong, Mileage: 20},
		{Date: "2024-05-07", Type: models.WorkoutEasy, Mileage: 5, Minutes: -30},
		{Date: "yesterday", Type: models.WorkoutEasy, Mileage: 5, Minutes: 30},
	}
	for i, c := range bad {
		_, err := l.Append(c)
		assert.True(t, errors.Is(err, models.ErrValidation), "case %d: %v", i, err)
		assert.Equal(t, 1, l.Len(), "case %d", i)
	}
}

func TestAppendIDsUnique(t *testing.T) {
	l := newTestLog()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		w, err := l.Append(models.WorkoutCandidate{Date: "2024-05-06", Type: models.WorkoutEasy, Mileage: 5, Minutes: 30})
		require.NoError(t, err)
		assert.False(t, seen[w.ID])
		seen[w.ID] = true
	}
}

func TestAllReturnsCopy(t *testing.T) {
	l := newTestLog()
	_, err := l.Append(models.WorkoutCandidate{Date: "2024-05-06", Type: models.WorkoutEasy, Mileage: 5, Minutes: 30})
	require.NoError(t, err)
	all := l.All()
	all[0].Mileage = 99
	assert.Equal(t, 5.0, l.All()[0].Mileage)
}

func TestSeedSkipsInvalid(t *testing.T) {
	l := newTestLog()
	skipped := l.Seed([]models.LoggedWorkout{
		{Date: "2024-05-06", Type: models.WorkoutEasy, Mileage: 5, Pace: 6},
		{Date: "2024-05-07", Type: models.WorkoutEasy},
	})
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, l.Len())
	assert.NotEmpty(t, l.All()[0].ID)
}

// TestDemoWorkoutsSeed verifies the demo week is valid and totals 51 km.
func TestDemoWorkoutsSeed(t *testing.T) {
	l := newTestLog()
	assert.Zero(t, l.Seed(DemoWorkouts()))
	require.Equal(t, 5, l.Len())

	var total float64
	for _, w := range l.All() {
		total += w.Mileage
	}
	assert.Equal(t, 51.0, total)
	assert.Equal(t, "1", l.All()[0].ID)
}
