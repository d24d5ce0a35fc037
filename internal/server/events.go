package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/runpro/internal/plans"
)

// keepAlive is the interval of SSE comment pings.
var keepAlive = 30 * time.Second

// handleEvents streams plan changes as server-sent events. The first event
// is a "snapshot" of the persisted state; each later "change" event names
// the storage key that was rewritten. A subscriber that falls behind loses
// events and should reconcile from the snapshot endpoints.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "streaming not supported"})
		return
	}

	ch := make(chan plans.Change, 32)
	unsubscribe := s.Notifier.Subscribe(func(c plans.Change) {
		select {
		case ch <- c:
		default:
			// slow subscriber, skip
		}
	})
	s.log.Debug("events subscriber connected", "subscribers", s.Notifier.Subscribers())
	defer func() {
		unsubscribe()
		s.log.Debug("events subscriber disconnected", "subscribers", s.Notifier.Subscribers())
	}()

	snapshot, err := s.Plans.Reconcile(r.Context())
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", mustJSON(snapshot))
	flusher.Flush()

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case c := <-ch:
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", mustJSON(c))
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{}`
	}
	return string(b)
}
