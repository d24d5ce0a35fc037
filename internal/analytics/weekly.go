package analytics

import "github.com/claude/runpro/internal/models"

// DayLabels are the bucket labels, Monday first.
var DayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayBucket aggregates the workouts that fell on one weekday.
// Pace is the mean pace of the bucket, 0 when Count is 0.
type DayBucket struct {
	Label   string  `json:"name"`
	Mileage float64 `json:"mileage"`
	Pace    float64 `json:"pace"`
	Count   int     `json:"count"`
}

// WeeklyBuckets folds the whole log into seven Monday-first weekday buckets.
// It does not look at which week a workout belongs to.
func WeeklyBuckets(workouts []models.LoggedWorkout) [7]DayBucket {
	var out [7]DayBucket
	paceSum := [7]float64{}
	for i := range out {
		out[i].Label = DayLabels[i]
	}
	for _, w := range workouts {
		idx := (int(w.Day().Weekday()) + 6) % 7
		out[idx].Mileage += w.Mileage
		paceSum[idx] += w.Pace
		out[idx].Count++
	}
	for i := range out {
		if out[i].Count > 0 {
			out[i].Pace = round2(paceSum[i] / float64(out[i].Count))
		}
	}
	return out
}
