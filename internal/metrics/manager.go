// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "runpro"
	Subsystem = "server"
)

type Manager struct {
	// counters
	CounterRequests        *prometheus.CounterVec
	CounterGatewayCalls    *prometheus.CounterVec
	CounterIgnoredRequests *prometheus.CounterVec
	CounterPlanChanges     *prometheus.CounterVec
	CounterWorkoutsLogged  prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
	HistGatewayDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager(Namespace, "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager(Namespace, "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterGatewayCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gateway_calls",
			Help:      "Calls to the generative AI gateway by operation and outcome",
		}, []string{"op", "outcome"}),
		CounterIgnoredRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ignored_requests",
			Help:      "Requests dropped because the same action was already in flight",
		}, []string{"action"}),
		CounterPlanChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plan_changes",
			Help:      "Persisted plan state changes by kind",
		}, []string{"kind"}),
		CounterWorkoutsLogged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workouts_logged",
			Help:      "The total number of workouts appended to the log",
		}),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 10, 60},
		}, []string{"method"}),
		HistGatewayDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gateway_duration_seconds",
			Help:      "Duration of generative AI calls in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"op"}),
	}
}
