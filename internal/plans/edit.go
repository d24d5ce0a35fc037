package plans

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/storage"
)

// EditWorkoutField changes one field of workout index in a draft of the
// active plan. Nothing is persisted until Commit. Supported fields are
// "distance", "duration" and "exercise.<i>.name|sets|reps|weight".
func (s *Store) EditWorkoutField(ctx context.Context, index int, field, value string) (models.PlanWorkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		active, err := s.loadActive(ctx)
		if err != nil {
			return models.PlanWorkout{}, err
		}
		if active == nil {
			return models.PlanWorkout{}, fmt.Errorf("active plan: %w", models.ErrNotFound)
		}
		d := active.Plan.Clone()
		s.draft = &d
		s.draftID = active.ID
	}

	if index < 0 || index >= len(s.draft.Workouts) {
		return models.PlanWorkout{}, models.Invalid("index", fmt.Sprintf("workout %d out of range", index))
	}
	w := s.draft.Workouts[index]
	if err := applyField(&w, field, value); err != nil {
		return models.PlanWorkout{}, err
	}
	s.draft.Workouts[index] = w
	return w, nil
}

func applyField(w *models.PlanWorkout, field, value string) error {
	switch field {
	case "distance":
		w.Distance = strings.TrimSpace(value)
		return nil
	case "duration":
		w.Duration = strings.TrimSpace(value)
		return nil
	}

	parts := strings.Split(field, ".")
	if len(parts) != 3 || parts[0] != "exercise" {
		return models.Invalid("field", fmt.Sprintf("unsupported field %q", field))
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 || i >= len(w.Exercises) {
		return models.Invalid("field", fmt.Sprintf("exercise %s out of range", parts[1]))
	}
	e := &w.Exercises[i]
	switch parts[2] {
	case "name":
		if strings.TrimSpace(value) == "" {
			return models.Invalid("exercise.name", "must not be empty")
		}
		e.Name = strings.TrimSpace(value)
	case "sets", "reps":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return models.Invalid("exercise."+parts[2], "must be a positive integer")
		}
		if parts[2] == "sets" {
			e.Sets = n
		} else {
			e.Reps = n
		}
	case "weight":
		e.Weight = strings.TrimSpace(value)
	default:
		return models.Invalid("field", fmt.Sprintf("unsupported exercise field %q", parts[2]))
	}
	return nil
}

// Commit writes the draft through to the active plan and to its saved plan,
// recording a "manual edit" revision. It reports false when there was no
// draft to commit.
func (s *Store) Commit(ctx context.Context) (ActivePlan, bool, error) {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return ActivePlan{}, false, nil
	}
	plan, id := s.draft.Clone(), s.draftID

	collection, err := s.loadCollection(ctx)
	if err != nil {
		s.mu.Unlock()
		return ActivePlan{}, false, err
	}
	idx := slices.IndexFunc(collection, func(p models.SavedTrainingPlan) bool { return p.ID == id })
	if idx >= 0 {
		saved := &collection[idx]
		pace := ""
		if len(saved.History) > 0 {
			pace = saved.History[0].TargetPace
		}
		saved.Plan = plan.Clone()
		saved.History = slices.Insert(saved.History, 0, s.newRevision(NoteManualEdit, saved.Target, pace))
		if err := storage.WriteJSON(ctx, s.kv, storage.KeyPlanCollection, collection); err != nil {
			s.mu.Unlock()
			return ActivePlan{}, false, err
		}
	} else {
		id = ""
	}
	if err := s.writeActive(ctx, id, plan); err != nil {
		s.mu.Unlock()
		return ActivePlan{}, false, err
	}
	s.dropDraft()
	s.mu.Unlock()

	s.log.Info("plan edits committed", "plan_id", id, "in_library", idx >= 0)
	changes := []Change{{Key: storage.KeyActivePlan, PlanID: id, Kind: ChangeCommitted}}
	if idx >= 0 {
		changes = append(changes, Change{Key: storage.KeyPlanCollection, PlanID: id, Kind: ChangeCommitted})
	}
	s.publish(changes...)
	return ActivePlan{ID: id, Plan: plan}, true, nil
}

// Discard drops uncommitted edits. It reports whether there were any.
func (s *Store) Discard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.draft != nil
	s.dropDraft()
	return had
}
