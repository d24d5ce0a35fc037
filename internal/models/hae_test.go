package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestParseHAETimeFullDatetime verifies parsing the standard HAE datetime format.
func TestParseHAETimeFullDatetime(t *testing.T) {
	got, err := ParseHAETime("2024-02-06 14:30:00 -0800")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 2, 6, 14, 30, 0, 0, time.FixedZone("", -8*3600))
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestParseHAETimeDateOnly verifies the date-only fallback.
func TestParseHAETimeDateOnly(t *testing.T) {
	got, err := ParseHAETime("2024-02-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2024 || got.Month() != 2 || got.Day() != 6 {
		t.Errorf("got %v, want 2024-02-06", got)
	}
}

// TestParseHAETimeInvalid verifies that an invalid date string returns an error.
func TestParseHAETimeInvalid(t *testing.T) {
	if _, err := ParseHAETime("not-a-date"); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

// TestHAEPayloadWorkouts verifies that a full export decodes its workouts and
// tolerates the metrics array it does not model.
func TestHAEPayloadWorkouts(t *testing.T) {
	raw := `{
		"data": {
			"metrics": [{"name": "heart_rate", "units": "bpm", "data": []}],
			"workouts": [{
				"id": "550e8400-e29b-41d4-a716-446655440000",
				"name": "Outdoor Run",
				"start": "2024-02-06 07:00:00 -0800",
				"end": "2024-02-06 07:30:00 -0800",
				"duration": 1800,
				"activeEnergyBurned": {"qty": 350, "units": "kcal"},
				"distance": {"qty": 3.5, "units": "mi"},
				"route": [{"latitude": 37.7749, "longitude": -122.4194}]
			}]
		}
	}`
	var p HAEPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(p.Data.Workouts) != 1 {
		t.Fatalf("workouts = %d, want 1", len(p.Data.Workouts))
	}
	w := p.Data.Workouts[0]
	if w.Name != "Outdoor Run" {
		t.Errorf("name = %q", w.Name)
	}
	if w.Duration != 1800 {
		t.Errorf("duration = %f, want 1800", w.Duration)
	}
	if w.Distance == nil || w.Distance.Qty != 3.5 || w.Distance.Units != "mi" {
		t.Errorf("distance = %v", w.Distance)
	}
	if w.Start.Hour() != 7 {
		t.Errorf("start hour = %d, want 7", w.Start.Hour())
	}
}

// TestAppleTimestampToTime verifies the 2001 reference date offset.
func TestAppleTimestampToTime(t *testing.T) {
	got := AppleTimestampToTime(0)
	want := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AppleTimestampToTime(0) = %v, want %v", got, want)
	}
	if got := AppleTimestampToTime(1.5); got.Nanosecond() != 5e8 {
		t.Errorf("nanoseconds = %d, want 5e8", got.Nanosecond())
	}
}

// TestHAEFileWorkoutToWorkout verifies a workout .hae file converts into the
// REST API shape.
func TestHAEFileWorkoutToWorkout(t *testing.T) {
	raw := `{
		"id": "D39830A2-4724-4648-8F36-41D7511423B6",
		"name": "Outdoor Run",
		"start": 787321422.438,
		"end": 787324808.576,
		"duration": 3386.138,
		"activeEnergy": 636.5,
		"totalDistance": 10.2,
		"location": "outdoor"
	}`
	var f HAEFileWorkout
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	w := f.ToWorkout()

	if w.Name != "Outdoor Run" || w.Duration != 3386.138 {
		t.Errorf("workout = %+v", w)
	}
	if w.Start.Year() < 2025 || !w.End.After(w.Start.Time) {
		t.Errorf("start = %v, end = %v", w.Start, w.End)
	}
	if w.Distance == nil || w.Distance.Qty != 10.2 || w.Distance.Units != "km" {
		t.Errorf("distance = %+v", w.Distance)
	}
	if w.IsIndoor == nil || *w.IsIndoor {
		t.Errorf("isIndoor = %v", w.IsIndoor)
	}
}
