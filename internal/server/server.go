// Package server exposes the workout log, analytics, plan library and AI
// coach over a JSON API under /api/v1.
package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claude/runpro/internal/gateway"
	"github.com/claude/runpro/internal/ingest/alpha"
	"github.com/claude/runpro/internal/ingest/hae"
	"github.com/claude/runpro/internal/metrics"
	"github.com/claude/runpro/internal/plans"
	"github.com/claude/runpro/internal/storage"
	"github.com/claude/runpro/internal/workoutlog"
)

// Deps are the components the handlers operate on.
type Deps struct {
	Workouts *workoutlog.Log
	Plans    *plans.Store
	Notifier *plans.Notifier
	KV       storage.Store
	Gateway  gateway.Gateway
	HAE      *hae.Provider
	Alpha    *alpha.Provider
	Metrics  *metrics.Manager

	// Language selects fallback messages and session guides ("th" or "en").
	Language string
	// APIKey protects the ingest endpoints when non-empty.
	APIKey string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	Deps
	guard  *gateway.Guard
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(deps Deps, log *slog.Logger) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Language == "" {
		deps.Language = "th"
	}
	s := &Server{
		Deps:   deps,
		guard:  gateway.NewGuard(),
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler, such as the MCP endpoint or /metrics.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Handle(pattern, h)
}

// ConnState tracks open connections; set it as http.Server.ConnState.
func (s *Server) ConnState(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.Metrics.GaugeRequests.Inc()
	case http.StateClosed, http.StateHijacked:
		s.Metrics.GaugeRequests.Dec()
	}
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics(s.Metrics))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleAppendWorkout)

		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.APIKey))
			r.Post("/ingest", s.handleHAEIngest)
			r.Post("/ingest/alpha", s.handleAlphaIngest)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/pace", s.handlePace)
			r.Get("/weekly", s.handleWeekly)
			r.Get("/stats", s.handleStats)
			r.Get("/projections", s.handleProjections)
		})

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", s.handleListPlans)
			r.Post("/generate", s.handleGeneratePlan)
			r.Get("/guide/{type}", s.handleGuide)

			r.Get("/active", s.handleActivePlan)
			r.Get("/active/today", s.handleTodaysWorkout)
			r.Get("/active/volume", s.handlePlanVolume)
			r.Patch("/active/workouts/{index}", s.handleEditWorkout)
			r.Post("/active/commit", s.handleCommit)
			r.Post("/active/discard", s.handleDiscard)

			r.Get("/{id}", s.handleGetPlan)
			r.Post("/{id}/activate", s.handleActivatePlan)
			r.Delete("/{id}", s.handleDeletePlan)
		})

		r.Post("/coach/chat", s.handleCoachChat)
		r.Post("/coach/exercises", s.handleSuggestExercises)

		r.Get("/settings/avatar", s.handleGetAvatar)
		r.Put("/settings/avatar", s.handlePutAvatar)

		r.Get("/events", s.handleEvents)
	})
}
