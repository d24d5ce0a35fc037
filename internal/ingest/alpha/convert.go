package alpha

import (
	"fmt"
	"strconv"

	"github.com/claude/runpro/internal/models"
)

// ToCandidate turns a session into a Strength Training candidate. Each
// exercise becomes one entry: sets is the number of working sets, reps the
// programmed target and weight the heaviest working set. ok is false when
// the session has no exercise with working sets.
func ToCandidate(s models.AlphaSession) (models.WorkoutCandidate, bool) {
	c := models.WorkoutCandidate{
		Date:      s.Date.Format(models.DateLayout),
		Type:      models.WorkoutStrength,
		Intensity: models.IntensityMedium,
	}
	for _, ex := range s.Exercises {
		working := ex.WorkingSets()
		if len(working) == 0 {
			continue
		}
		reps := ex.TargetReps
		if reps <= 0 {
			reps = working[0].Reps
		}
		c.Exercises = append(c.Exercises, models.StrengthExercise{
			Name:   ex.Name,
			Sets:   len(working),
			Reps:   reps,
			Weight: heaviest(working),
		})
	}
	return c, len(c.Exercises) > 0
}

// heaviest formats the top working weight: "102.5 kg", "BW+35 kg" or "BW".
func heaviest(sets []models.AlphaSet) string {
	top := sets[0]
	for _, s := range sets[1:] {
		if s.WeightKg > top.WeightKg {
			top = s
		}
	}
	kg := strconv.FormatFloat(top.WeightKg, 'f', -1, 64)
	switch {
	case top.IsBodyweightPlus && top.WeightKg == 0:
		return "BW"
	case top.IsBodyweightPlus:
		return fmt.Sprintf("BW+%s kg", kg)
	default:
		return kg + " kg"
	}
}
