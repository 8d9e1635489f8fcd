// Package metrics holds the console's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors registered on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	outcomes        *prometheus.CounterVec
	sessions        prometheus.Gauge
}

// New registers the console collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "findash",
			Name:      "backend_requests_total",
			Help:      "Backend API requests by method, resource and status code.",
		}, []string{"method", "resource", "code"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "findash",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "findash",
			Name:      "outcomes_total",
			Help:      "Resource controller outcomes by kind.",
		}, []string{"resource", "kind"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "findash",
			Name:      "session_authenticated",
			Help:      "1 while a console session is held.",
		}),
	}
	reg.MustRegister(
		m.backendRequests,
		m.backendDuration,
		m.outcomes,
		m.sessions,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveBackend records one backend round trip. Status 0 marks a
// transport failure.
func (m *Metrics) ObserveBackend(method, resource string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.backendRequests.WithLabelValues(method, resource, code).Inc()
	m.backendDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// ObserveOutcome counts a success or error outcome for a resource.
func (m *Metrics) ObserveOutcome(resource, kind string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(resource, kind).Inc()
}

// SetAuthenticated flips the session gauge.
func (m *Metrics) SetAuthenticated(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.sessions.Set(1)
		return
	}
	m.sessions.Set(0)
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
