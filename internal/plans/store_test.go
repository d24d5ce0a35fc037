package plans

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/runpro/internal/metrics"
	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/storage"
)

type recorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *recorder) record(c Change) {
	r.mu.Lock()
	r.changes = append(r.changes, c)
	r.mu.Unlock()
}

func (r *recorder) all() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Change(nil), r.changes...)
}

func newTestStore(t *testing.T) (*Store, *storage.Memory, *recorder) {
	t.Helper()
	kv := storage.NewMemory()
	n := NewNotifier()
	rec := &recorder{}
	t.Cleanup(n.Subscribe(rec.record))
	s := NewStore(kv, n, metrics.NewTestManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s, kv, rec
}

func samplePlan(focus string) models.TrainingPlan {
	return models.TrainingPlan{Week: 1, Focus: focus, Workouts: []models.PlanWorkout{
		{Day: "จันทร์", Type: models.WorkoutEasy, Description: "วิ่งเบาๆ", Distance: "5 กม.", Duration: "35 นาที", Intensity: models.IntensityLow},
		{Day: "พุธ", Type: models.WorkoutStrength, Description: "เวทขา", Intensity: models.IntensityMedium,
			Exercises: []models.StrengthExercise{{Name: "Squat", Sets: 3, Reps: 10}}},
		{Day: "เสาร์", Type: models.WorkoutLong, Description: "วิ่งยาว", Distance: "15 กม.", Intensity: models.IntensityMedium},
	}}
}

// TestUpsertSameTargetKeepsOnePlan verifies regeneration replaces the payload
// in place and prepends a revision.
func TestUpsertSameTargetKeepsOnePlan(t *testing.T) {
	ctx := context.Background()
	s, _, rec := newTestStore(t)

	first, err := s.Upsert(ctx, samplePlan("Base"), models.TargetHalf, "5:30")
	require.NoError(t, err)
	second, err := s.Upsert(ctx, samplePlan("Build"), models.TargetHalf, "5:20")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	plans, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.Len(t, plans[0].History, 2)
	assert.Equal(t, NoteRegenerated, plans[0].History[0].Note)
	assert.Equal(t, "5:20", plans[0].History[0].TargetPace)
	assert.Equal(t, NoteCreated, plans[0].History[1].Note)
	assert.True(t, plans[0].History[0].Timestamp.After(plans[0].History[1].Timestamp))
	assert.Equal(t, "Build", plans[0].Plan.Focus)
	assert.Equal(t, "21.1K plan - Build", plans[0].Name)

	active, ok, err := s.Active(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, active.ID)
	assert.Equal(t, "Build", active.Plan.Focus)

	changes := rec.all()
	require.Len(t, changes, 4)
	assert.Equal(t, Change{Key: storage.KeyPlanCollection, PlanID: first.ID, Kind: ChangeCreated}, changes[0])
	assert.Equal(t, Change{Key: storage.KeyActivePlan, PlanID: first.ID, Kind: ChangeActivated}, changes[1])
	assert.Equal(t, ChangeRegenerated, changes[2].Kind)
}

func TestUpsertDifferentTargetsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	_, err := s.Upsert(ctx, samplePlan("Speed"), models.Target10K, "")
	require.NoError(t, err)
	full, err := s.Upsert(ctx, samplePlan("Base"), models.TargetFull, "")
	require.NoError(t, err)

	plans, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, full.ID, plans[0].ID)
}

func TestUpsertRejectsInvalidPlan(t *testing.T) {
	ctx := context.Background()
	s, kv, rec := newTestStore(t)
	_, err := s.Upsert(ctx, models.TrainingPlan{Week: 1, Focus: "x"}, models.Target5K, "")
	assert.True(t, errors.Is(err, models.ErrValidation))
	_, err = s.Upsert(ctx, samplePlan("x"), models.TargetDistance(9), "")
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, ok, _ := kv.Get(ctx, storage.KeyPlanCollection)
	assert.False(t, ok)
	assert.Empty(t, rec.all())
}

// TestSwitchActiveLeavesHistory verifies switching changes only the pointer.
func TestSwitchActiveLeavesHistory(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	tenK, err := s.Upsert(ctx, samplePlan("Speed"), models.Target10K, "")
	require.NoError(t, err)
	_, err = s.Upsert(ctx, samplePlan("Base"), models.TargetFull, "")
	require.NoError(t, err)

	got, err := s.SwitchActive(ctx, tenK.ID)
	require.NoError(t, err)
	assert.Equal(t, "Speed", got.Plan.Focus)

	active, ok, err := s.Active(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tenK.ID, active.ID)

	plans, _ := s.List(ctx)
	for _, p := range plans {
		assert.Len(t, p.History, 1)
	}

	_, err = s.SwitchActive(ctx, "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

// TestDeleteActiveClearsPointer verifies deleting the active plan leaves no
// dangling active pointer.
func TestDeleteActiveClearsPointer(t *testing.T) {
	ctx := context.Background()
	s, _, rec := newTestStore(t)
	tenK, err := s.Upsert(ctx, samplePlan("Speed"), models.Target10K, "")
	require.NoError(t, err)
	full, err := s.Upsert(ctx, samplePlan("Base"), models.TargetFull, "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, tenK.ID))
	_, ok, err := s.Active(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "deleting an inactive plan keeps the pointer")

	require.NoError(t, s.Delete(ctx, full.ID))
	_, ok, err = s.Active(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	last := rec.all()[len(rec.all())-1]
	assert.Equal(t, Change{Key: storage.KeyActivePlan, PlanID: full.ID, Kind: ChangeCleared}, last)

	assert.True(t, errors.Is(s.Delete(ctx, full.ID), models.ErrNotFound))
}

// TestDeleteMatchesActiveByValue covers state written without an active id.
func TestDeleteMatchesActiveByValue(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	saved, err := s.Upsert(ctx, samplePlan("Base"), models.Target5K, "")
	require.NoError(t, err)
	require.NoError(t, kv.Delete(ctx, storage.KeyActivePlanID))

	require.NoError(t, s.Delete(ctx, saved.ID))
	_, ok, err := s.Active(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptStateReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	require.NoError(t, kv.Put(ctx, storage.KeyPlanCollection, []byte("{not json")))
	require.NoError(t, kv.Put(ctx, storage.KeyActivePlan, []byte("[")))

	plans, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
	_, ok, err := s.Active(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Upsert(ctx, samplePlan("Fresh"), models.Target5K, "")
	require.NoError(t, err)
	plans, _ = s.List(ctx)
	assert.Len(t, plans, 1)
}

// TestInvalidCollectionReadsAsEmpty verifies that a collection holding an
// unsupported distance is ignored and a new plan can still be saved over it.
func TestInvalidCollectionReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)
	bad := `[{"id":"x","name":"Broken","targetDistance":7,"dateCreated":"2024-05-01T00:00:00Z",` +
		`"plan":{"weekNumber":1,"focus":"Base","workouts":[]},"history":[]}]`
	require.NoError(t, kv.Put(ctx, storage.KeyPlanCollection, []byte(bad)))

	plans, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)

	saved, err := s.Upsert(ctx, samplePlan("Fresh"), models.Target10K, "")
	require.NoError(t, err)
	plans, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, saved.ID, plans[0].ID)
	assert.Equal(t, models.Target10K, plans[0].Target)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	snap, err := s.Reconcile(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.Active)
	assert.NotNil(t, snap.Plans)

	saved, err := s.Upsert(ctx, samplePlan("Base"), models.Target5K, "")
	require.NoError(t, err)
	_, err = s.EditWorkoutField(ctx, 0, "distance", "6 กม.")
	require.NoError(t, err)

	snap, err = s.Reconcile(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Active)
	assert.Equal(t, saved.ID, snap.Active.ID)
	assert.Equal(t, "5 กม.", snap.Active.Plan.Workouts[0].Distance, "drafts are not persisted state")
}
