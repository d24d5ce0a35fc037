package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/claude/runpro/internal/analytics"
	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/workoutlog"
)

type workoutsResponse struct {
	Workouts          []models.LoggedWorkout `json:"workouts"`
	Summary           analytics.Stats        `json:"summary"`
	TotalMileageLabel string                 `json:"totalMileageLabel"`
	AvgPaceLabel      string                 `json:"avgPaceLabel"`
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := workoutlog.Query{
		Type:      q.Get("type"),
		Search:    q.Get("q"),
		SortField: workoutlog.SortField(q.Get("sort")),
		SortOrder: workoutlog.SortOrder(q.Get("order")),
	}.Normalize()
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}

	view := workoutlog.View(s.Workouts.All(), query)
	summary := workoutlog.Summarize(view)
	if view == nil {
		view = []models.LoggedWorkout{}
	}
	writeJSON(w, http.StatusOK, workoutsResponse{
		Workouts:          view,
		Summary:           summary,
		TotalMileageLabel: summary.TotalMileageLabel(),
		AvgPaceLabel:      summary.AvgPaceLabel(),
	})
}

func (s *Server) handleAppendWorkout(w http.ResponseWriter, r *http.Request) {
	var c models.WorkoutCandidate
	if err := decodeJSON(w, r, &c); err != nil {
		s.writeError(w, r, "", err)
		return
	}
	logged, err := s.Workouts.Append(c)
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusCreated, logged)
}

func (s *Server) handleHAEIngest(w http.ResponseWriter, r *http.Request) {
	var payload models.HAEPayload
	if err := decodeIngest(w, r, &payload); err != nil {
		s.writeError(w, r, "", err)
		return
	}

	result, err := s.HAE.Ingest(r.Context(), &payload)
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	s.log.Info("hae ingest", "received", result.WorkoutsReceived, "inserted", result.WorkoutsInserted,
		"skipped", result.WorkoutsSkipped, "rejected", result.WorkoutsRejected)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAlphaIngest(w http.ResponseWriter, r *http.Request) {
	result, err := s.Alpha.Ingest(r.Context(), http.MaxBytesReader(w, r.Body, maxIngestBody))
	if err != nil {
		s.writeError(w, r, "", models.Invalid("body", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func decodeIngest(w http.ResponseWriter, r *http.Request, payload *models.HAEPayload) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		return models.Invalid("content-type", fmt.Sprintf("want application/json, got %q", ct))
	}
	return decodeJSONLimit(w, r, payload, maxIngestBody)
}
