package hae

import (
	"fmt"
	"strings"

	"github.com/claude/runpro/internal/models"
)

// ActivityKind classifies a Health Auto Export workout name.
type ActivityKind int

const (
	KindOther ActivityKind = iota // cycling, swimming, yoga, ...
	KindRun                       // "Outdoor Run", "Indoor Run", "Running"
	KindWalk                      // "Outdoor Walk", "Hiking"
)

// DetectActivity returns the kind for a workout name.
func DetectActivity(name string) ActivityKind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "run"), strings.Contains(n, "jog"):
		return KindRun
	case strings.Contains(n, "walk"), strings.Contains(n, "hik"):
		return KindWalk
	default:
		return KindOther
	}
}

// DistanceKm converts a HAE distance quantity to kilometres.
func DistanceKm(q *models.HAEQuantity) (float64, error) {
	if q == nil {
		return 0, fmt.Errorf("workout has no distance")
	}
	switch strings.ToLower(strings.TrimSpace(q.Units)) {
	case "km", "":
		return q.Qty, nil
	case "m":
		return q.Qty / 1000, nil
	case "mi":
		return q.Qty * 1.609344, nil
	case "yd":
		return q.Qty * 0.0009144, nil
	default:
		return 0, fmt.Errorf("unsupported distance unit %q", q.Units)
	}
}
