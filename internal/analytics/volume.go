package analytics

import "github.com/claude/runpro/internal/models"

// Volume is the planned load of one week.
type Volume struct {
	DistanceKm  float64 `json:"distanceKm"`
	Minutes     int     `json:"minutes"`
	Sessions    int     `json:"sessions"`
	RestDays    int     `json:"restDays"`
	Unparseable int     `json:"unparseable"`
}

// PlanVolume totals the distance and duration strings of a plan. Entries
// whose strings cannot be parsed count towards Unparseable.
func PlanVolume(plan models.TrainingPlan) Volume {
	var v Volume
	for _, w := range plan.Workouts {
		if w.Type == models.WorkoutRest {
			v.RestDays++
			continue
		}
		v.Sessions++
		parsed := false
		if w.Distance != "" {
			if val, unit := ParsePlanDistance(w.Distance); unit != "" {
				v.DistanceKm += ToKm(val, unit)
				parsed = true
			}
		}
		if w.Duration != "" {
			if h, m := ParsePlanDuration(w.Duration); h > 0 || m > 0 {
				v.Minutes += h*60 + m
				parsed = true
			}
		}
		if !parsed && (w.Distance != "" || w.Duration != "") {
			v.Unparseable++
		}
	}
	v.DistanceKm = round2(v.DistanceKm)
	return v
}
