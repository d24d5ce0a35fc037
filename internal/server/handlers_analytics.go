package server

import (
	"net/http"
	"strconv"

	"github.com/claude/runpro/internal/analytics"
	"github.com/claude/runpro/internal/models"
)

type paceResponse struct {
	Pace      float64 `json:"pace"`
	Formatted string  `json:"formatted"`
}

func (s *Server) handlePace(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	distance, err := strconv.ParseFloat(q.Get("distance"), 64)
	if err != nil {
		s.writeError(w, r, "", models.Invalid("distance", "must be a number"))
		return
	}
	var hms [3]int
	for i, key := range []string{"h", "m", "s"} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, "", models.Invalid(key, "must be a non-negative integer"))
			return
		}
		hms[i] = n
	}

	pace := analytics.ComputePace(distance, hms[0], hms[1], hms[2])
	writeJSON(w, http.StatusOK, paceResponse{Pace: pace, Formatted: analytics.FormatPace(pace)})
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.WeeklyBuckets(s.Workouts.All()))
}

type statsResponse struct {
	analytics.Stats
	TotalMileageLabel string `json:"totalMileageLabel"`
	AvgPaceLabel      string `json:"avgPaceLabel"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st := analytics.ComputeStats(s.Workouts.All())
	writeJSON(w, http.StatusOK, statsResponse{
		Stats:             st,
		TotalMileageLabel: st.TotalMileageLabel(),
		AvgPaceLabel:      st.AvgPaceLabel(),
	})
}

// handleProjections answers 204 until a run of at least 3 km is logged.
func (s *Server) handleProjections(w http.ResponseWriter, r *http.Request) {
	projections := analytics.ProjectRaceTimes(s.Workouts.All())
	if projections == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, projections)
}
