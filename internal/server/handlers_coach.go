package server

import (
	"fmt"
	"net/http"

	"github.com/claude/runpro/internal/gateway"
	"github.com/claude/runpro/internal/models"
)

type chatRequest struct {
	Query   string               `json:"query"`
	History []models.ChatMessage `json:"history"`
}

func (s *Server) handleCoachChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, gateway.OpConverse, err)
		return
	}
	for i, m := range req.History {
		if m.Role != models.RoleUser && m.Role != models.RoleModel {
			s.writeError(w, r, gateway.OpConverse, models.Invalid(fmt.Sprintf("history[%d].role", i), "must be user or model"))
			return
		}
	}

	if !s.guard.TryBegin(actionCoachChat) {
		s.ignored(w, actionCoachChat)
		return
	}
	defer s.guard.End(actionCoachChat)

	reply, err := s.Gateway.Converse(r.Context(), req.Query, req.History)
	if err != nil {
		s.writeError(w, r, gateway.OpConverse, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

type exercisesRequest struct {
	Existing []string           `json:"existing"`
	Profile  models.UserProfile `json:"profile"`
}

type exercisesResponse struct {
	Exercises []models.StrengthExercise `json:"exercises"`
}

func (s *Server) handleSuggestExercises(w http.ResponseWriter, r *http.Request) {
	var req exercisesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, gateway.OpSuggestExercises, err)
		return
	}
	if err := req.Profile.Validate(); err != nil {
		s.writeError(w, r, gateway.OpSuggestExercises, err)
		return
	}

	if !s.guard.TryBegin(actionSuggestExercises) {
		s.ignored(w, actionSuggestExercises)
		return
	}
	defer s.guard.End(actionSuggestExercises)

	exercises, err := s.Gateway.SuggestExercises(r.Context(), req.Existing, req.Profile)
	if err != nil {
		s.writeError(w, r, gateway.OpSuggestExercises, err)
		return
	}
	writeJSON(w, http.StatusOK, exercisesResponse{Exercises: exercises})
}
