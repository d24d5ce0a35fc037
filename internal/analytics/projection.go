package analytics

import (
	"fmt"
	"math"

	"github.com/claude/runpro/internal/models"
)

const (
	// RiegelExponent is the fatigue factor of Riegel's formula.
	RiegelExponent = 1.06
	// MinProjectionKm is the shortest run considered for a projection.
	MinProjectionKm = 3.0
)

// Projection is the estimated finishing time at one race distance.
type Projection struct {
	Distance  models.TargetDistance `json:"distance"`
	Label     string                `json:"label"`
	RaceLabel string                `json:"raceLabel"`
	Minutes   float64               `json:"minutes"`
	Time      string                `json:"time"`
}

// ProjectRaceTimes extrapolates the fastest run of at least 3 km to the four
// race distances. It returns nil when no run qualifies.
func ProjectRaceTimes(workouts []models.LoggedWorkout) []Projection {
	best, ok := bestRun(workouts)
	if !ok {
		return nil
	}
	t1 := best.Pace * best.Mileage
	out := make([]Projection, 0, len(models.TargetDistances))
	for _, d := range models.TargetDistances {
		mins := Riegel(t1, best.Mileage, d.RaceKm())
		out = append(out, Projection{
			Distance:  d,
			Label:     d.Label(),
			RaceLabel: d.RaceLabel(),
			Minutes:   mins,
			Time:      FormatRaceTime(mins),
		})
	}
	return out
}

// Riegel scales a known time t1 over d1 to the distance d2.
func Riegel(t1, d1, d2 float64) float64 {
	return t1 * math.Pow(d2/d1, RiegelExponent)
}

// bestRun picks the qualifying run with the lowest pace; the first one wins ties.
func bestRun(workouts []models.LoggedWorkout) (models.LoggedWorkout, bool) {
	var best models.LoggedWorkout
	found := false
	for _, w := range workouts {
		if w.Mileage < MinProjectionKm || !(w.Pace > 0) {
			continue
		}
		if !found || w.Pace < best.Pace {
			best = w
			found = true
		}
	}
	return best, found
}

// FormatRaceTime renders minutes as "Hh Mm" from one hour up, else "Mm Ss".
// Hours and minutes are truncated; only the seconds are rounded, carrying
// into the minute when they reach 60.
func FormatRaceTime(minutes float64) string {
	if !(minutes > 0) || math.IsInf(minutes, 0) {
		return "-"
	}
	h := int(minutes / 60)
	m := int(math.Mod(minutes, 60))
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	s := int(math.Round((minutes - math.Floor(minutes)) * 60))
	if s == 60 {
		m, s = m+1, 0
	}
	if m == 60 {
		return "1h 0m"
	}
	return fmt.Sprintf("%dm %ds", m, s)
}
