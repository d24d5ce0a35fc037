package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/claude/runpro/internal/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestAPIKeyAuth verifies missing, wrong and correct keys.
func TestAPIKeyAuth(t *testing.T) {
	h := APIKeyAuth("secret")(okHandler())

	cases := []struct {
		name   string
		key    string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "nope", http.StatusForbidden},
		{"valid", "secret", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", nil)
			if tc.key != "" {
				req.Header.Set("X-API-Key", tc.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}

// TestAPIKeyAuthDisabled verifies that an empty key lets everything through.
func TestAPIKeyAuthDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	APIKeyAuth("")(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// TestCORSPreflight verifies OPTIONS is answered without reaching the handler.
func TestCORSPreflight(t *testing.T) {
	reached := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reached = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/plans/active/workouts/0", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if reached {
		t.Error("preflight reached the handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, PATCH, DELETE, OPTIONS" {
		t.Errorf("allow methods = %q", got)
	}
}

// TestRequestMetrics verifies requests are counted by method and status.
func TestRequestMetrics(t *testing.T) {
	m := metrics.NewTestManager()
	h := RequestMetrics(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for range 3 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	if got := testutil.ToFloat64(m.CounterRequests.WithLabelValues(http.MethodGet, "204")); got != 3 {
		t.Errorf("requests = %v, want 3", got)
	}
}

// TestStatusWriterKeepsFirstStatus verifies only the first WriteHeader is recorded.
func TestStatusWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := wrap(rec)
	sw.Write([]byte("ok")) //nolint:errcheck
	sw.WriteHeader(http.StatusTeapot)
	if sw.status != http.StatusOK {
		t.Errorf("status = %d, want 200", sw.status)
	}
}
