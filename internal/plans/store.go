// Package plans manages the library of saved training plans, the active
// plan pointer and uncommitted edits to the active plan.
package plans

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/runpro/internal/metrics"
	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/storage"
)

// Revision notes.
const (
	NoteCreated     = "created"
	NoteRegenerated = "regenerated"
	NoteManualEdit  = "manual edit"
)

// ActivePlan is the plan currently surfaced to the user. ID is empty when
// the active payload no longer matches a saved plan. Draft is true when
// uncommitted edits are included.
type ActivePlan struct {
	ID    string              `json:"id,omitempty"`
	Plan  models.TrainingPlan `json:"plan"`
	Draft bool                `json:"draft"`
}

// Store persists plans through a storage.Store. Every mutation reads the
// collection, changes it in memory and writes it back whole; mu keeps one
// writer at a time.
type Store struct {
	mu      sync.Mutex
	kv      storage.Store
	notify  *Notifier
	metrics *metrics.Manager
	log     *slog.Logger
	now     func() time.Time

	draft   *models.TrainingPlan
	draftID string
}

func NewStore(kv storage.Store, notify *Notifier, m *metrics.Manager, log *slog.Logger) *Store {
	return &Store{kv: kv, notify: notify, metrics: m, log: log, now: time.Now}
}

func (s *Store) loadCollection(ctx context.Context) ([]models.SavedTrainingPlan, error) {
	var plans []models.SavedTrainingPlan
	ok, err := storage.ReadJSONOrZero(ctx, s.kv, storage.KeyPlanCollection, &plans, s.log)
	if err != nil || !ok {
		return nil, err
	}
	return plans, nil
}

func (s *Store) loadActive(ctx context.Context) (*ActivePlan, error) {
	var plan models.TrainingPlan
	ok, err := storage.ReadJSONOrZero(ctx, s.kv, storage.KeyActivePlan, &plan, s.log)
	if err != nil || !ok {
		return nil, err
	}
	var id string
	if _, err := storage.ReadJSONOrZero(ctx, s.kv, storage.KeyActivePlanID, &id, s.log); err != nil {
		return nil, err
	}
	return &ActivePlan{ID: id, Plan: plan}, nil
}

func (s *Store) writeActive(ctx context.Context, id string, plan models.TrainingPlan) error {
	if err := storage.WriteJSON(ctx, s.kv, storage.KeyActivePlan, plan); err != nil {
		return err
	}
	return storage.WriteJSON(ctx, s.kv, storage.KeyActivePlanID, id)
}

func (s *Store) dropDraft() {
	s.draft = nil
	s.draftID = ""
}

func (s *Store) publish(changes ...Change) {
	for _, c := range changes {
		s.metrics.CounterPlanChanges.WithLabelValues(string(c.Kind)).Inc()
		s.notify.Publish(c)
	}
}

func (s *Store) newRevision(note string, target models.TargetDistance, pace string) models.PlanRevision {
	return models.PlanRevision{
		ID:         uuid.NewString(),
		Timestamp:  s.now().UTC(),
		Note:       note,
		Target:     target,
		TargetPace: pace,
	}
}

// Upsert stores a freshly generated plan for target. An existing plan for
// the same distance gets its payload replaced and a "regenerated" revision;
// otherwise a new saved plan is created. The result becomes the active plan.
func (s *Store) Upsert(ctx context.Context, plan models.TrainingPlan, target models.TargetDistance, targetPace string) (models.SavedTrainingPlan, error) {
	if !target.Valid() {
		return models.SavedTrainingPlan{}, models.Invalid("targetDistance", "must be one of 5, 10, 21.1, 42.2")
	}
	if err := plan.Validate(); err != nil {
		return models.SavedTrainingPlan{}, err
	}

	s.mu.Lock()
	collection, err := s.loadCollection(ctx)
	if err != nil {
		s.mu.Unlock()
		return models.SavedTrainingPlan{}, err
	}

	kind := ChangeRegenerated
	idx := slices.IndexFunc(collection, func(p models.SavedTrainingPlan) bool { return p.Target == target })
	if idx >= 0 {
		saved := &collection[idx]
		saved.Plan = plan.Clone()
		saved.Name = models.PlanName(target, plan.Focus)
		saved.History = slices.Insert(saved.History, 0, s.newRevision(NoteRegenerated, target, targetPace))
	} else {
		kind = ChangeCreated
		saved := models.SavedTrainingPlan{
			ID:        uuid.NewString(),
			Name:      models.PlanName(target, plan.Focus),
			Target:    target,
			CreatedAt: s.now().UTC(),
			Plan:      plan.Clone(),
			History:   []models.PlanRevision{s.newRevision(NoteCreated, target, targetPace)},
		}
		collection = slices.Insert(collection, 0, saved)
		idx = 0
	}
	saved := collection[idx]

	if err := storage.WriteJSON(ctx, s.kv, storage.KeyPlanCollection, collection); err != nil {
		s.mu.Unlock()
		return models.SavedTrainingPlan{}, err
	}
	if err := s.writeActive(ctx, saved.ID, saved.Plan); err != nil {
		s.mu.Unlock()
		return models.SavedTrainingPlan{}, err
	}
	s.dropDraft()
	s.mu.Unlock()

	s.log.Info("plan saved", "plan_id", saved.ID, "target", target, "kind", kind, "revisions", len(saved.History))
	s.publish(
		Change{Key: storage.KeyPlanCollection, PlanID: saved.ID, Kind: kind},
		Change{Key: storage.KeyActivePlan, PlanID: saved.ID, Kind: ChangeActivated},
	)
	return saved, nil
}

// SwitchActive points the active plan at the stored payload of plan id.
// The collection is not modified.
func (s *Store) SwitchActive(ctx context.Context, id string) (models.SavedTrainingPlan, error) {
	s.mu.Lock()
	collection, err := s.loadCollection(ctx)
	if err != nil {
		s.mu.Unlock()
		return models.SavedTrainingPlan{}, err
	}
	idx := slices.IndexFunc(collection, func(p models.SavedTrainingPlan) bool { return p.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return models.SavedTrainingPlan{}, fmt.Errorf("plan %s: %w", id, models.ErrNotFound)
	}
	saved := collection[idx]
	if err := s.writeActive(ctx, saved.ID, saved.Plan); err != nil {
		s.mu.Unlock()
		return models.SavedTrainingPlan{}, err
	}
	s.dropDraft()
	s.mu.Unlock()

	s.log.Info("active plan switched", "plan_id", id)
	s.publish(Change{Key: storage.KeyActivePlan, PlanID: id, Kind: ChangeActivated})
	return saved, nil
}

// Delete removes a saved plan. If it was the active plan the active pointer
// is cleared and a new selection is required.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	collection, err := s.loadCollection(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	idx := slices.IndexFunc(collection, func(p models.SavedTrainingPlan) bool { return p.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("plan %s: %w", id, models.ErrNotFound)
	}
	removed := collection[idx]
	collection = slices.Delete(collection, idx, idx+1)
	if err := storage.WriteJSON(ctx, s.kv, storage.KeyPlanCollection, collection); err != nil {
		s.mu.Unlock()
		return err
	}

	active, err := s.loadActive(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	cleared := false
	if active != nil && (active.ID == id || (active.ID == "" && reflect.DeepEqual(active.Plan, removed.Plan))) {
		if err := s.kv.Delete(ctx, storage.KeyActivePlan); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("clearing active plan: %w", err)
		}
		if err := s.kv.Delete(ctx, storage.KeyActivePlanID); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("clearing active plan id: %w", err)
		}
		s.dropDraft()
		cleared = true
	}
	s.mu.Unlock()

	s.log.Info("plan deleted", "plan_id", id, "active_cleared", cleared)
	changes := []Change{{Key: storage.KeyPlanCollection, PlanID: id, Kind: ChangeDeleted}}
	if cleared {
		changes = append(changes, Change{Key: storage.KeyActivePlan, PlanID: id, Kind: ChangeCleared})
	}
	s.publish(changes...)
	return nil
}

// List returns the saved plans, newest first. A corrupt collection reads as empty.
func (s *Store) List(ctx context.Context) ([]models.SavedTrainingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCollection(ctx)
}

// Get returns one saved plan.
func (s *Store) Get(ctx context.Context, id string) (models.SavedTrainingPlan, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return models.SavedTrainingPlan{}, err
	}
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return models.SavedTrainingPlan{}, fmt.Errorf("plan %s: %w", id, models.ErrNotFound)
}

// Active returns the active plan, including uncommitted edits. It reports
// false when no plan is active.
func (s *Store) Active(ctx context.Context) (ActivePlan, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft != nil {
		return ActivePlan{ID: s.draftID, Plan: s.draft.Clone(), Draft: true}, true, nil
	}
	active, err := s.loadActive(ctx)
	if err != nil || active == nil {
		return ActivePlan{}, false, err
	}
	return *active, true, nil
}

// Snapshot is the persisted plan state as a listener sees it after
// reconciling.
type Snapshot struct {
	Active *ActivePlan                `json:"active"`
	Plans  []models.SavedTrainingPlan `json:"plans"`
}

// Reconcile re-reads the persisted state, ignoring any draft.
func (s *Store) Reconcile(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plans, err := s.loadCollection(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	active, err := s.loadActive(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if plans == nil {
		plans = []models.SavedTrainingPlan{}
	}
	return Snapshot{Active: active, Plans: plans}, nil
}
