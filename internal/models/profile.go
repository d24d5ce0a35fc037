package models

import (
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "Beginner"
	LevelIntermediate FitnessLevel = "Intermediate"
	LevelAdvanced     FitnessLevel = "Advanced"
)

// IntermediateGoal is a shorter sub-target used to bias plan intensity.
type IntermediateGoal struct {
	Distance TargetDistance `json:"distance"`
	Pace     string         `json:"pace"`
}

// UserProfile is the transient input to plan generation and exercise
// suggestion. It is rebuilt from the request on every call.
type UserProfile struct {
	Age              int               `json:"age"`
	Gender           Gender            `json:"gender"`
	HeightCm         float64           `json:"height"`
	WeightKg         float64           `json:"weight"`
	FitnessLevel     FitnessLevel      `json:"fitnessLevel"`
	Target           TargetDistance    `json:"targetDistance"`
	TargetPace       string            `json:"targetPace,omitempty"`
	IntermediateGoal *IntermediateGoal `json:"intermediateGoal,omitempty"`
}

// Validate rejects an incomplete profile before any gateway call is made.
func (p UserProfile) Validate() error {
	if p.Age <= 0 {
		return Invalid("age", "must be positive")
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return Invalid("gender", fmt.Sprintf("unknown gender %q", p.Gender))
	}
	if p.HeightCm <= 0 {
		return Invalid("height", "must be positive")
	}
	if p.WeightKg <= 0 {
		return Invalid("weight", "must be positive")
	}
	switch p.FitnessLevel {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return Invalid("fitnessLevel", fmt.Sprintf("unknown fitness level %q", p.FitnessLevel))
	}
	if !p.Target.Valid() {
		return Invalid("targetDistance", "must be one of 5, 10, 21.1, 42.2")
	}
	if g := p.IntermediateGoal; g != nil {
		if !g.Distance.Valid() {
			return Invalid("intermediateGoal.distance", "must be one of 5, 10, 21.1, 42.2")
		}
		if strings.TrimSpace(g.Pace) == "" {
			return Invalid("intermediateGoal.pace", "must not be empty")
		}
	}
	return nil
}
