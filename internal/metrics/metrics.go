// ABOUTME: Prometheus instrumentation for calls to the remote post API.
// ABOUTME: Keeps collectors on a private registry and exposes them over promhttp.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for remote requests.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Metrics groups the collectors recorded by the remote client.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minigram",
			Name:      "remote_requests_total",
			Help:      "Remote post API requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "minigram",
			Name:      "remote_request_duration_seconds",
			Help:      "Latency of remote post API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// ObserveRequest records one remote call. A nil receiver is a no-op.
func (m *Metrics) ObserveRequest(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	if outcome != OutcomeSkipped {
		m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}
}

// Requests returns the request counter for the given labels. A nil receiver
// returns an unregistered zero counter.
func (m *Metrics) Requests(op, outcome string) prometheus.Counter {
	if m == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: "minigram_remote_requests_total"})
	}
	return m.requests.WithLabelValues(op, outcome)
}

// Registry returns the private registry backing these collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
