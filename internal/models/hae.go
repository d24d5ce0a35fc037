package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// HAETime handles the Health Auto Export date format: "2006-01-02 15:04:05 -0700".
// Date-only values ("2006-01-02") are accepted too.
type HAETime struct {
	time.Time
}

const (
	HAETimeLayout     = "2006-01-02 15:04:05 -0700"
	HAEDateOnlyLayout = "2006-01-02"
)

func (t *HAETime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Parse(s)
}

func (t HAETime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(HAETimeLayout))
}

// Parse tries the full datetime layout first, then date-only.
func (t *HAETime) Parse(s string) error {
	parsed, err := time.Parse(HAETimeLayout, s)
	if err == nil {
		t.Time = parsed
		return nil
	}
	if parsed, err2 := time.Parse(HAEDateOnlyLayout, s); err2 == nil {
		t.Time = parsed
		return nil
	}
	return fmt.Errorf("cannot parse HAE time %q: %w", s, err)
}

// ParseHAETime parses a HAE time string into a time.Time.
func ParseHAETime(s string) (time.Time, error) {
	var t HAETime
	if err := t.Parse(s); err != nil {
		return time.Time{}, err
	}
	return t.Time, nil
}

// HAEPayload is the top-level REST API JSON structure. Only workouts are
// read; metrics in the same export are ignored.
type HAEPayload struct {
	Data HAEData `json:"data"`
}

type HAEData struct {
	Workouts []HAEWorkout `json:"workouts"`
}

// HAEWorkout is a workout from the REST API (Version 2). Duration is seconds.
type HAEWorkout struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Start    HAETime `json:"start"`
	End      HAETime `json:"end"`
	Duration float64 `json:"duration"`
	IsIndoor *bool   `json:"isIndoor,omitempty"`

	Distance           *HAEQuantity `json:"distance,omitempty"`
	ActiveEnergyBurned *HAEQuantity `json:"activeEnergyBurned,omitempty"`
	AvgHR              *HAEQuantity `json:"avgHeartRate,omitempty"`
}

// HAEQuantity is the {"qty": N, "units": "..."} structure.
type HAEQuantity struct {
	Qty   float64 `json:"qty"`
	Units string  `json:"units"`
}

// AppleEpochOffset is the number of seconds between the Unix epoch and the
// Apple reference date (2001-01-01 00:00:00 UTC).
const AppleEpochOffset = 978307200

// AppleTimestampToTime converts seconds since the Apple reference date.
func AppleTimestampToTime(appleTS float64) time.Time {
	sec := int64(appleTS)
	nsec := int64((appleTS - float64(sec)) * 1e9)
	return time.Unix(sec+AppleEpochOffset, nsec).UTC()
}

// HAEFileWorkout is the JSON structure of a workout .hae file in the
// AutoSync directory. Times are Apple timestamps, distance is km.
type HAEFileWorkout struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Start         float64  `json:"start"`
	End           float64  `json:"end"`
	Duration      float64  `json:"duration"`
	ActiveEnergy  *float64 `json:"activeEnergy,omitempty"`
	TotalDistance *float64 `json:"totalDistance,omitempty"`
	Location      string   `json:"location,omitempty"`
}

// ToWorkout converts a file workout into the REST API shape.
func (w HAEFileWorkout) ToWorkout() HAEWorkout {
	out := HAEWorkout{
		ID:       w.ID,
		Name:     w.Name,
		Start:    HAETime{AppleTimestampToTime(w.Start)},
		End:      HAETime{AppleTimestampToTime(w.End)},
		Duration: w.Duration,
	}
	if w.Location != "" {
		indoor := w.Location == "indoor"
		out.IsIndoor = &indoor
	}
	if w.TotalDistance != nil {
		out.Distance = &HAEQuantity{Qty: *w.TotalDistance, Units: "km"}
	}
	if w.ActiveEnergy != nil {
		out.ActiveEnergyBurned = &HAEQuantity{Qty: *w.ActiveEnergy, Units: "kcal"}
	}
	return out
}
