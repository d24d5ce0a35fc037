// Package analytics holds the pure computations over logged workouts and
// plan entries: pace, weekly aggregation, summary stats, race projections
// and the lenient parsers for free-form plan strings.
package analytics

import (
	"fmt"
	"math"
)

// PacePlaceholder is what FormatPace renders for the 0 sentinel.
const PacePlaceholder = `--'--"`

// ComputePace returns minutes per kilometre for a distance and an elapsed
// time. It returns 0 ("no pace") when the distance is not a positive finite
// number or the total time is zero.
func ComputePace(distanceKm float64, hours, minutes, seconds int) float64 {
	if !(distanceKm > 0) || math.IsInf(distanceKm, 0) {
		return 0
	}
	total := float64(hours*60+minutes) + float64(seconds)/60
	if total <= 0 {
		return 0
	}
	return total / distanceKm
}

// FormatPace renders a pace as M'SS". Seconds that round up to 60 carry
// into the minutes.
func FormatPace(pace float64) string {
	if !(pace > 0) || math.IsInf(pace, 0) {
		return PacePlaceholder
	}
	mins := math.Floor(pace)
	secs := math.Round((pace - mins) * 60)
	if secs >= 60 {
		mins++
		secs = 0
	}
	return fmt.Sprintf(`%d'%02d"`, int(mins), int(secs))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
