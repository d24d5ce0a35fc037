package analytics

import (
	"fmt"

	"github.com/claude/runpro/internal/models"
)

// Stats summarises a set of workouts.
type Stats struct {
	TotalMileage float64 `json:"totalMileage"`
	AvgPace      float64 `json:"avgPace"`
	Sessions     int     `json:"sessions"`
}

// ComputeStats sums mileage over every workout and averages pace over the
// workouts that have one.
func ComputeStats(workouts []models.LoggedWorkout) Stats {
	var s Stats
	var paceSum float64
	var paced int
	for _, w := range workouts {
		s.TotalMileage += w.Mileage
		if w.Pace > 0 {
			paceSum += w.Pace
			paced++
		}
	}
	s.Sessions = len(workouts)
	if paced > 0 {
		s.AvgPace = paceSum / float64(paced)
	}
	return s
}

// TotalMileageLabel is the total with one decimal.
func (s Stats) TotalMileageLabel() string {
	return fmt.Sprintf("%.1f", s.TotalMileage)
}

func (s Stats) AvgPaceLabel() string {
	return FormatPace(s.AvgPace)
}
