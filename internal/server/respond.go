package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/claude/runpro/internal/gateway"
	"github.com/claude/runpro/internal/models"
)

// Request body limits.
const (
	maxBody       = 1 << 20
	maxIngestBody = 64 << 20
)

type errorBody struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeJSONLimit(w, r, v, maxBody)
}

func decodeJSONLimit(w http.ResponseWriter, r *http.Request, v any, limit int64) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		if errors.Is(err, io.EOF) {
			return models.Invalid("body", "request body is empty")
		}
		return models.Invalid("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

// writeError maps an error to its status: validation 400, not found 404,
// gateway 502 with the fallback message of op, anything else 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op gateway.Op, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, models.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, models.ErrGateway):
		s.log.Error("gateway call failed", "op", op, "path", r.URL.Path, "error", err)
		msg := gateway.Fallback(op, s.Language)
		if msg == "" {
			msg = "AI service unavailable"
		}
		writeJSON(w, http.StatusBadGateway, errorBody{Error: msg, Detail: err.Error()})
	default:
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

// ignored answers a guarded request whose action is already in flight.
func (s *Server) ignored(w http.ResponseWriter, action string) {
	s.Metrics.CounterIgnoredRequests.WithLabelValues(action).Inc()
	s.log.Info("request ignored, action in flight", "action", action)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "ignored"})
}
