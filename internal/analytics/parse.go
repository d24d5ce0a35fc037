package analytics

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Distance units returned by ParsePlanDistance.
const (
	UnitKm    = "km"
	UnitMeter = "m"
	UnitMile  = "mi"
)

var (
	// "1:30" read as hours and minutes
	clockRe = regexp.MustCompile(`(\d+):(\d{1,2})`)
	// number followed by a Latin word or a Thai time unit
	durationTokenRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([a-z]+|ชั่วโมง|ชม\.?|นาที|น\.)?`)
	// "6x400m", "6 × 400 ม."
	repeatRe = regexp.MustCompile(`(\d+)\s*[x×]\s*(\d+(?:[.,]\d+)?)\s*([a-z]+|กิโลเมตร|กม\.?|เมตร|ม\.?)`)
	// number followed by a Latin word or a Thai distance unit
	distanceTokenRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([a-z]+|กิโลเมตร|กม\.?|เมตร|ม\.?)?`)
)

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func hourUnit(u string) bool {
	switch u {
	case "h", "hr", "hrs", "hour", "hours", "ชั่วโมง", "ชม", "ชม.":
		return true
	}
	return false
}

func minuteUnit(u string) bool {
	switch u {
	case "m", "min", "mins", "minute", "minutes", "นาที", "น.":
		return true
	}
	return false
}

// ParsePlanDuration reads a free-form plan duration such as "1 ชม. 30 นาที",
// "45 min", "1h30m", "1.5 hours" or "1:15". A bare number is minutes.
// Unparsable input yields (0, 0). Minutes are normalised below 60.
func ParsePlanDuration(s string) (hours, minutes int) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, 0
	}
	if m := clockRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		return normalize(float64(h)*60 + float64(mm))
	}

	var total float64
	var seen, bare bool
	var bareVal float64
	for _, m := range durationTokenRe.FindAllStringSubmatch(s, -1) {
		v, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		unit := m[2]
		switch {
		case hourUnit(unit):
			total += v * 60
			seen = true
		case minuteUnit(unit):
			total += v
			seen = true
		case unit == "" && !bare:
			bareVal = v
			bare = true
		}
	}
	if !seen {
		if !bare {
			return 0, 0
		}
		total = bareVal
	}
	return normalize(total)
}

func normalize(totalMinutes float64) (int, int) {
	if !(totalMinutes > 0) {
		return 0, 0
	}
	t := int(math.Round(totalMinutes))
	return t / 60, t % 60
}

func distanceUnit(u string) (string, bool) {
	switch u {
	case "km", "kms", "k", "kilometer", "kilometers", "kilometre", "kilometres", "กิโลเมตร", "กม", "กม.":
		return UnitKm, true
	case "m", "meter", "meters", "metre", "metres", "เมตร", "ม", "ม.":
		return UnitMeter, true
	case "mi", "mile", "miles":
		return UnitMile, true
	}
	return "", false
}

// ParsePlanDistance reads a free-form plan distance such as "10 กม.", "8km",
// "400 m" or "6x400m" (repeats are multiplied out). A bare number is
// kilometres. Unparsable input yields (0, "").
func ParsePlanDistance(s string) (value float64, unit string) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ""
	}
	if m := repeatRe.FindStringSubmatch(s); m != nil {
		n, okN := parseNumber(m[1])
		v, okV := parseNumber(m[2])
		if u, okU := distanceUnit(m[3]); okN && okV && okU {
			return n * v, u
		}
	}

	var bareVal float64
	var bare bool
	for _, m := range distanceTokenRe.FindAllStringSubmatch(s, -1) {
		v, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		if m[2] == "" {
			if !bare {
				bareVal, bare = v, true
			}
			continue
		}
		if u, ok := distanceUnit(m[2]); ok {
			return v, u
		}
	}
	if bare {
		return bareVal, UnitKm
	}
	return 0, ""
}

// ToKm converts a parsed distance to kilometres.
func ToKm(value float64, unit string) float64 {
	switch unit {
	case UnitKm:
		return value
	case UnitMeter:
		return value / 1000
	case UnitMile:
		return value * 1.609344
	}
	return 0
}
