package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WorkoutType is the category of a logged session or plan entry.
type WorkoutType string

// The values are the labels the gateway schema enumerates and clients persist.
const (
	WorkoutEasy     WorkoutType = "Easy Run"
	WorkoutInterval WorkoutType = "Intervals"
	WorkoutTempo    WorkoutType = "Tempo Run"
	WorkoutLong     WorkoutType = "Long Run"
	WorkoutStrength WorkoutType = "Strength Training"
	WorkoutRest     WorkoutType = "Rest Day"
)

// WorkoutTypes lists every category in display order.
var WorkoutTypes = []WorkoutType{
	WorkoutEasy, WorkoutInterval, WorkoutTempo, WorkoutLong, WorkoutStrength, WorkoutRest,
}

var workoutTypeAliases = map[string]WorkoutType{
	"easy":     WorkoutEasy,
	"interval": WorkoutInterval,
	"tempo":    WorkoutTempo,
	"long":     WorkoutLong,
	"strength": WorkoutStrength,
	"rest":     WorkoutRest,
}

// ParseWorkoutType accepts a short name ("tempo") or a label ("Tempo Run"),
// case-insensitively.
func ParseWorkoutType(s string) (WorkoutType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := workoutTypeAliases[key]; ok {
		return t, nil
	}
	for _, t := range WorkoutTypes {
		if strings.ToLower(string(t)) == key {
			return t, nil
		}
	}
	return "", Invalid("type", fmt.Sprintf("unknown workout type %q", s))
}

// Valid reports whether t is one of the known categories.
func (t WorkoutType) Valid() bool {
	for _, known := range WorkoutTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t *WorkoutType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseWorkoutType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Intensity is the effort tag on a plan entry or logged session.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

// Valid reports whether i is Low, Medium or High.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// StrengthExercise is one movement within a strength session.
type StrengthExercise struct {
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   int    `json:"reps"`
	Weight string `json:"weight,omitempty"`
}

// Validate checks name, sets and reps.
func (e StrengthExercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return Invalid("exercise.name", "must not be empty")
	}
	if e.Sets <= 0 {
		return Invalid("exercise.sets", "must be positive")
	}
	if e.Reps <= 0 {
		return Invalid("exercise.reps", "must be positive")
	}
	return nil
}

// DateLayout is the calendar date format used for logged workouts.
const DateLayout = "2006-01-02"

// LoggedWorkout is a completed training session. Pace 0 means "not applicable".
type LoggedWorkout struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	Mileage   float64            `json:"mileage"`
	Pace      float64            `json:"pace"`
	Type      WorkoutType        `json:"type"`
	Intensity Intensity          `json:"intensity,omitempty"`
	Exercises []StrengthExercise `json:"exercises,omitempty"`
}

// Day parses the calendar date. Invalid dates were rejected at insertion.
func (w LoggedWorkout) Day() time.Time {
	t, _ := time.Parse(DateLayout, w.Date)
	return t
}

// Validate enforces the logged-workout invariant: strength sessions carry
// exercises and no distance or pace, every other type carries both.
func (w LoggedWorkout) Validate() error {
	if _, err := time.Parse(DateLayout, w.Date); err != nil {
		return Invalid("date", "must be YYYY-MM-DD")
	}
	if !w.Type.Valid() {
		return Invalid("type", fmt.Sprintf("unknown workout type %q", w.Type))
	}
	if w.Intensity != "" && !w.Intensity.Valid() {
		return Invalid("intensity", fmt.Sprintf("unknown intensity %q", w.Intensity))
	}
	if w.Type == WorkoutStrength {
		if w.Mileage != 0 || w.Pace != 0 {
			return Invalid("mileage", "strength sessions have no distance or pace")
		}
		if len(w.Exercises) == 0 {
			return Invalid("exercises", "strength sessions need at least one exercise")
		}
		for _, e := range w.Exercises {
			if err := e.Validate(); err != nil {
				return err
			}
		}
		return nil
	}
	if !(w.Mileage > 0) {
		return Invalid("mileage", "must be positive")
	}
	if !(w.Pace > 0) {
		return Invalid("pace", "distance and elapsed time must both be positive")
	}
	return nil
}

// WorkoutCandidate is the user submission a LoggedWorkout is built from.
type WorkoutCandidate struct {
	Date      string             `json:"date"`
	Type      WorkoutType        `json:"type"`
	Mileage   float64            `json:"mileage"`
	Hours     int                `json:"hours"`
	Minutes   int                `json:"minutes"`
	Seconds   int                `json:"seconds"`
	Intensity Intensity          `json:"intensity,omitempty"`
	Exercises []StrengthExercise `json:"exercises,omitempty"`
}
