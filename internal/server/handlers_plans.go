package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claude/runpro/internal/analytics"
	"github.com/claude/runpro/internal/gateway"
	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/plans"
)

// Guarded action names.
const (
	actionGeneratePlan     = "generate_plan"
	actionCoachChat        = "coach_chat"
	actionSuggestExercises = "suggest_exercises"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	list, err := s.Plans.List(r.Context())
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	if list == nil {
		list = []models.SavedTrainingPlan{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.Plans.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type generateRequest struct {
	Profile     models.UserProfile `json:"profile"`
	TargetDate  string             `json:"targetDate"`
	DaysPerWeek int                `json:"daysPerWeek"`
}

func (req generateRequest) validate() (time.Time, error) {
	if err := req.Profile.Validate(); err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse(models.DateLayout, req.TargetDate)
	if err != nil {
		return time.Time{}, models.Invalid("targetDate", "must be YYYY-MM-DD")
	}
	if req.DaysPerWeek < 1 || req.DaysPerWeek > 7 {
		return time.Time{}, models.Invalid("daysPerWeek", "must be between 1 and 7")
	}
	return date, nil
}

// handleGeneratePlan generates a week for the profile's target and saves it
// as the active plan, replacing the saved plan of the same target.
func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, gateway.OpGeneratePlan, err)
		return
	}
	date, err := req.validate()
	if err != nil {
		s.writeError(w, r, gateway.OpGeneratePlan, err)
		return
	}

	if !s.guard.TryBegin(actionGeneratePlan) {
		s.ignored(w, actionGeneratePlan)
		return
	}
	defer s.guard.End(actionGeneratePlan)

	plan, err := s.Gateway.GeneratePlan(r.Context(), req.Profile, date, req.DaysPerWeek)
	if err != nil {
		s.writeError(w, r, gateway.OpGeneratePlan, err)
		return
	}
	saved, err := s.Plans.Upsert(r.Context(), plan, req.Profile.Target, req.Profile.TargetPace)
	if err != nil {
		s.writeError(w, r, gateway.OpGeneratePlan, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleActivatePlan(w http.ResponseWriter, r *http.Request) {
	saved, err := s.Plans.SwitchActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.Plans.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, "", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// activeOrNoContent loads the active plan. It writes the response itself
// and reports false when there is nothing more to do.
func (s *Server) activeOrNoContent(w http.ResponseWriter, r *http.Request) (plans.ActivePlan, bool) {
	active, ok, err := s.Plans.Active(r.Context())
	if err != nil {
		s.writeError(w, r, "", err)
		return plans.ActivePlan{}, false
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return plans.ActivePlan{}, false
	}
	return active, true
}

func (s *Server) handleActivePlan(w http.ResponseWriter, r *http.Request) {
	if active, ok := s.activeOrNoContent(w, r); ok {
		writeJSON(w, http.StatusOK, active)
	}
}

type todayResponse struct {
	Workout models.PlanWorkout `json:"workout"`
	Guide   plans.SessionGuide `json:"guide"`
}

func (s *Server) handleTodaysWorkout(w http.ResponseWriter, r *http.Request) {
	active, ok := s.activeOrNoContent(w, r)
	if !ok {
		return
	}
	workout, ok := plans.TodaysWorkout(active.Plan, s.Now())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, todayResponse{
		Workout: workout,
		Guide:   plans.GuideFor(workout.Type, s.lang(r)),
	})
}

func (s *Server) handlePlanVolume(w http.ResponseWriter, r *http.Request) {
	if active, ok := s.activeOrNoContent(w, r); ok {
		writeJSON(w, http.StatusOK, analytics.PlanVolume(active.Plan))
	}
}

type editRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleEditWorkout(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, r, "", models.Invalid("index", "must be an integer"))
		return
	}
	var req editRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, "", err)
		return
	}
	workout, err := s.Plans.EditWorkoutField(r.Context(), index, req.Field, req.Value)
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// handleCommit persists pending edits. Without a draft it answers 204.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	active, ok, err := s.Plans.Commit(r.Context())
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"discarded": s.Plans.Discard()})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	t, err := models.ParseWorkoutType(chi.URLParam(r, "type"))
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, plans.GuideFor(t, s.lang(r)))
}

// lang is the ?lang= override or the configured language.
func (s *Server) lang(r *http.Request) string {
	switch l := r.URL.Query().Get("lang"); l {
	case "th", "en":
		return l
	}
	return s.Language
}
