package workoutlog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/claude/runpro/internal/analytics"
	"github.com/claude/runpro/internal/models"
)

type SortField string

const (
	SortDate    SortField = "date"
	SortMileage SortField = "mileage"
	SortPace    SortField = "pace"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// TypeAll disables the type filter.
const TypeAll = "all"

// Query selects and orders a view of the log. Zero values mean: all types,
// no search, newest first.
type Query struct {
	Type      string
	Search    string
	SortField SortField
	SortOrder SortOrder
}

// Normalize fills defaults and validates the query.
func (q Query) Normalize() (Query, error) {
	if q.Type == "" {
		q.Type = TypeAll
	}
	if q.Type != TypeAll {
		t, err := models.ParseWorkoutType(q.Type)
		if err != nil {
			return q, err
		}
		q.Type = string(t)
	}
	switch q.SortField {
	case "":
		q.SortField = SortDate
	case SortDate, SortMileage, SortPace:
	default:
		return q, models.Invalid("sort", "must be date, mileage or pace")
	}
	switch q.SortOrder {
	case "":
		q.SortOrder = Desc
	case Asc, Desc:
	default:
		return q, models.Invalid("order", "must be asc or desc")
	}
	return q, nil
}

// View filters, searches and sorts workouts into a new slice. The sort is
// stable and the input is left untouched.
func View(workouts []models.LoggedWorkout, q Query) []models.LoggedWorkout {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.LoggedWorkout, 0, len(workouts))
	for _, w := range workouts {
		if q.Type != "" && q.Type != TypeAll && string(w.Type) != q.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(w.Date, search) &&
			!strings.Contains(strings.ToLower(string(w.Type)), search) {
			continue
		}
		out = append(out, w)
	}

	compare := func(a, b models.LoggedWorkout) int {
		switch q.SortField {
		case SortMileage:
			return cmp.Compare(a.Mileage, b.Mileage)
		case SortPace:
			return cmp.Compare(a.Pace, b.Pace)
		default:
			return a.Day().Compare(b.Day())
		}
	}
	desc := q.SortOrder == Desc || q.SortOrder == ""
	slices.SortStableFunc(out, func(a, b models.LoggedWorkout) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

// Summarize computes stats over a view.
func Summarize(view []models.LoggedWorkout) analytics.Stats {
	return analytics.ComputeStats(view)
}
