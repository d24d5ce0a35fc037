package models

import (
	"encoding/json"
	"testing"
)

// TestTargetDistanceJSON verifies the canonical numbers round-trip and
// nothing else is accepted.
func TestTargetDistanceJSON(t *testing.T) {
	for _, d := range TargetDistances {
		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("marshal %v: %v", d, err)
		}
		var got TargetDistance
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != d {
			t.Errorf("round trip %v = %v", d, got)
		}
	}

	var d TargetDistance
	if err := json.Unmarshal([]byte(`21.1`), &d); err != nil || d != TargetHalf {
		t.Errorf("21.1 = %v, %v", d, err)
	}
	if err := json.Unmarshal([]byte(`"42.2"`), &d); err != nil || d != TargetFull {
		t.Errorf(`"42.2" = %v, %v`, d, err)
	}
	for _, raw := range []string{`21.2`, `21`, `42.195`, `"21.0975"`, `"42.2K"`, `"half"`, `0`} {
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Errorf("expected error for %s", raw)
		}
	}
}

// TestTargetDistanceLabels verifies display and race labels.
func TestTargetDistanceLabels(t *testing.T) {
	if TargetHalf.RaceKm() != 21.0975 || TargetHalf.Km() != 21.1 {
		t.Errorf("half km = %v / %v", TargetHalf.Km(), TargetHalf.RaceKm())
	}
	if Target5K.RaceLabel() != "Fun Run" || Target10K.RaceLabel() != "Mini Marathon" {
		t.Errorf("race labels = %q, %q", Target5K.RaceLabel(), Target10K.RaceLabel())
	}
	if got := PlanName(TargetFull, "Base building"); got != "42.2K plan - Base building" {
		t.Errorf("PlanName = %q", got)
	}
}

// TestTrainingPlanValidate verifies schema checks applied to generated plans.
func TestTrainingPlanValidate(t *testing.T) {
	good := TrainingPlan{Week: 1, Focus: "Base", Workouts: []PlanWorkout{
		{Day: "Monday", Type: WorkoutEasy, Description: "easy", Intensity: IntensityLow},
	}}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid plan: %v", err)
	}

	bad := []TrainingPlan{
		{Week: 0, Focus: "Base", Workouts: good.Workouts},
		{Week: 1, Focus: " ", Workouts: good.Workouts},
		{Week: 1, Focus: "Base"},
		{Week: 1, Focus: "Base", Workouts: []PlanWorkout{{Type: "Swim", Intensity: IntensityLow}}},
		{Week: 1, Focus: "Base", Workouts: []PlanWorkout{{Type: WorkoutEasy, Intensity: ""}}},
		{Week: 1, Focus: "Base", Workouts: []PlanWorkout{{Type: WorkoutStrength, Intensity: IntensityHigh,
			Exercises: []StrengthExercise{{Name: "Lunge", Sets: 0, Reps: 10}}}}},
	}
	for i, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

// TestTrainingPlanClone verifies that editing a clone leaves the original intact.
func TestTrainingPlanClone(t *testing.T) {
	orig := TrainingPlan{Week: 1, Focus: "Base", Workouts: []PlanWorkout{
		{Day: "Tue", Type: WorkoutStrength, Intensity: IntensityMedium,
			Exercises: []StrengthExercise{{Name: "Squat", Sets: 3, Reps: 8}}},
	}}
	c := orig.Clone()
	c.Workouts[0].Distance = "5 km"
	c.Workouts[0].Exercises[0].Sets = 5
	if orig.Workouts[0].Distance != "" || orig.Workouts[0].Exercises[0].Sets != 3 {
		t.Errorf("original mutated: %+v", orig.Workouts[0])
	}
}

// TestUserProfileValidate verifies profile checks done before generation.
func TestUserProfileValidate(t *testing.T) {
	p := UserProfile{Age: 30, Gender: GenderFemale, HeightCm: 165, WeightKg: 55,
		FitnessLevel: LevelIntermediate, Target: TargetHalf}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid profile: %v", err)
	}
	noAge := p
	noAge.Age = 0
	if err := noAge.Validate(); err == nil {
		t.Error("expected error for zero age")
	}
	badGoal := p
	badGoal.IntermediateGoal = &IntermediateGoal{Distance: Target10K}
	if err := badGoal.Validate(); err == nil {
		t.Error("expected error for goal without pace")
	}
}
