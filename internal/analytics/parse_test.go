package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/claude/runpro/internal/models"
)

func TestParsePlanDuration(t *testing.T) {
	tests := []struct {
		in         string
		wantH, wantM int
	}{
		{"1 ชม. 30 นาที", 1, 30},
		{"45 นาที", 0, 45},
		{"2 ชั่วโมง", 2, 0},
		{"45 min", 0, 45},
		{"1h30m", 1, 30},
		{"1.5 hours", 1, 30},
		{"90 mins", 1, 30},
		{"1:15", 1, 15},
		{"40", 0, 40},
		{"30-40 นาที", 0, 40},
		{"", 0, 0},
		{"easy", 0, 0},
		{"5 km", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m := ParsePlanDuration(tt.in)
			assert.Equal(t, tt.wantH, h)
			assert.Equal(t, tt.wantM, m)
		})
	}
}

func TestParsePlanDistance(t *testing.T) {
	tests := []struct {
		in       string
		wantV    float64
		wantUnit string
	}{
		{"10 กม.", 10, UnitKm},
		{"8km", 8, UnitKm},
		{"21.1 กิโลเมตร", 21.1, UnitKm},
		{"400 m", 400, UnitMeter},
		{"800 เมตร", 800, UnitMeter},
		{"6x400m", 2400, UnitMeter},
		{"3 miles", 3, UnitMile},
		{"10K", 10, UnitKm},
		{"12", 12, UnitKm},
		{"30 min", 0, ""},
		{"", 0, ""},
		{"-", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, u := ParsePlanDistance(tt.in)
			assert.InDelta(t, tt.wantV, v, 1e-9)
			assert.Equal(t, tt.wantUnit, u)
		})
	}
}

func TestPlanVolume(t *testing.T) {
	plan := models.TrainingPlan{Week: 1, Focus: "Base", Workouts: []models.PlanWorkout{
		{Day: "Mon", Type: models.WorkoutEasy, Distance: "5 กม.", Duration: "35 นาที", Intensity: models.IntensityLow},
		{Day: "Tue", Type: models.WorkoutInterval, Distance: "6x400m", Intensity: models.IntensityHigh},
		{Day: "Wed", Type: models.WorkoutRest, Intensity: models.IntensityLow},
		{Day: "Thu", Type: models.WorkoutStrength, Duration: "45 min", Intensity: models.IntensityMedium},
		{Day: "Sat", Type: models.WorkoutLong, Distance: "??", Intensity: models.IntensityMedium},
	}}
	v := PlanVolume(plan)
	assert.Equal(t, 7.4, v.DistanceKm)
	assert.Equal(t, 80, v.Minutes)
	assert.Equal(t, 4, v.Sessions)
	assert.Equal(t, 1, v.RestDays)
	assert.Equal(t, 1, v.Unparseable)
}
