package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TargetDistance is one of the four supported race distances. It is an
// enumeration so lookups by distance never depend on float equality.
type TargetDistance int

const (
	Target5K TargetDistance = iota + 1
	Target10K
	TargetHalf
	TargetFull
)

// TargetDistances lists the supported race distances, shortest first.
var TargetDistances = []TargetDistance{Target5K, Target10K, TargetHalf, TargetFull}

var targetInfo = map[TargetDistance]struct {
	km, raceKm  float64
	label, race string
	wire        string
}{
	Target5K:   {5, 5, "5K", "Fun Run", "5"},
	Target10K:  {10, 10, "10K", "Mini Marathon", "10"},
	TargetHalf: {21.1, 21.0975, "21.1K", "Half Marathon", "21.1"},
	TargetFull: {42.2, 42.195, "42.2K", "Full Marathon", "42.2"},
}

// Valid reports whether d is a supported distance.
func (d TargetDistance) Valid() bool {
	_, ok := targetInfo[d]
	return ok
}

// Km is the display distance (21.1, 42.2).
func (d TargetDistance) Km() float64 { return targetInfo[d].km }

// RaceKm is the official race distance used for projections.
func (d TargetDistance) RaceKm() float64 { return targetInfo[d].raceKm }

// Label is the short distance label, e.g. "10K".
func (d TargetDistance) Label() string { return targetInfo[d].label }

// RaceLabel is the race name, e.g. "Half Marathon".
func (d TargetDistance) RaceLabel() string { return targetInfo[d].race }

func (d TargetDistance) String() string {
	if !d.Valid() {
		return fmt.Sprintf("TargetDistance(%d)", int(d))
	}
	return d.Label()
}

// ParseTargetDistance accepts only the canonical kilometre values ("5",
// "10", "21.1", "42.2").
func ParseTargetDistance(s string) (TargetDistance, error) {
	key := strings.TrimSpace(s)
	for _, d := range TargetDistances {
		if key == targetInfo[d].wire {
			return d, nil
		}
	}
	return 0, Invalid("target_distance", fmt.Sprintf("unsupported distance %q", s))
}

// MarshalJSON writes the canonical number (5, 10, 21.1, 42.2).
func (d TargetDistance) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("marshal target distance: unknown value %d", int(d))
	}
	return []byte(targetInfo[d].wire), nil
}

// UnmarshalJSON accepts a canonical number, bare or quoted.
func (d *TargetDistance) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	parsed, err := ParseTargetDistance(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PlanWorkout is a single entry of a weekly plan. Day, duration and distance
// are free text produced by the generator.
type PlanWorkout struct {
	Day         string             `json:"day"`
	Type        WorkoutType        `json:"type"`
	Description string             `json:"description"`
	Duration    string             `json:"duration,omitempty"`
	Distance    string             `json:"distance,omitempty"`
	Intensity   Intensity          `json:"intensity"`
	Exercises   []StrengthExercise `json:"exercises,omitempty"`
}

// TrainingPlan is one week of generated training.
type TrainingPlan struct {
	Week     int           `json:"weekNumber"`
	Focus    string        `json:"focus"`
	Workouts []PlanWorkout `json:"workouts"`
}

// Validate checks the structural shape of a plan before it is accepted.
func (p TrainingPlan) Validate() error {
	if p.Week < 1 {
		return Invalid("week", "must be at least 1")
	}
	if strings.TrimSpace(p.Focus) == "" {
		return Invalid("focus", "must not be empty")
	}
	if len(p.Workouts) == 0 {
		return Invalid("workouts", "plan has no workouts")
	}
	for i, w := range p.Workouts {
		if !w.Type.Valid() {
			return Invalid(fmt.Sprintf("workouts[%d].type", i), fmt.Sprintf("unknown workout type %q", w.Type))
		}
		if !w.Intensity.Valid() {
			return Invalid(fmt.Sprintf("workouts[%d].intensity", i), fmt.Sprintf("unknown intensity %q", w.Intensity))
		}
		for _, e := range w.Exercises {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("workouts[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// Clone returns a deep copy so drafts never alias stored payloads.
func (p TrainingPlan) Clone() TrainingPlan {
	out := p
	out.Workouts = make([]PlanWorkout, len(p.Workouts))
	for i, w := range p.Workouts {
		if w.Exercises != nil {
			w.Exercises = append([]StrengthExercise(nil), w.Exercises...)
		}
		out.Workouts[i] = w
	}
	return out
}

// PlanRevision marks one change to a saved plan's payload.
type PlanRevision struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Note       string         `json:"note"`
	Target     TargetDistance `json:"targetDistance"`
	TargetPace string         `json:"targetPace,omitempty"`
}

// SavedTrainingPlan is a named plan in the library, at most one per target.
// History is most-recent-first.
type SavedTrainingPlan struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Target    TargetDistance `json:"targetDistance"`
	CreatedAt time.Time      `json:"dateCreated"`
	Plan      TrainingPlan   `json:"plan"`
	History   []PlanRevision `json:"history"`
}

// PlanName builds the display name of a saved plan.
func PlanName(target TargetDistance, focus string) string {
	return fmt.Sprintf("%s plan - %s", target.Label(), focus)
}
