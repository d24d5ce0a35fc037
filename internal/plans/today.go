package plans

import (
	"strings"
	"time"

	"github.com/claude/runpro/internal/models"
)

// Weekday names indexed by time.Weekday, Sunday first.
var (
	thaiWeekdays    = [7]string{"อาทิตย์", "จันทร์", "อังคาร", "พุธ", "พฤหัสบดี", "ศุกร์", "เสาร์"}
	englishWeekdays = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
)

// TodaysWorkout finds the plan entry whose free-text day label names the
// weekday of now. Thai and English names are recognised; the first match wins.
func TodaysWorkout(plan models.TrainingPlan, now time.Time) (models.PlanWorkout, bool) {
	wd := now.Weekday()
	names := []string{thaiWeekdays[wd], englishWeekdays[wd], englishWeekdays[wd][:3]}
	for _, w := range plan.Workouts {
		day := strings.ToLower(strings.TrimSpace(w.Day))
		if day == "" {
			continue
		}
		// a label may also be a fragment of the Thai name ("พฤหัส")
		if strings.Contains(thaiWeekdays[wd], day) {
			return w, true
		}
		for _, name := range names {
			if strings.Contains(day, name) {
				return w, true
			}
		}
	}
	return models.PlanWorkout{}, false
}
