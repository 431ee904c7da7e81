// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shortener"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	shortens       *prometheus.CounterVec
	collisions     prometheus.Counter
	conflicts      prometheus.Counter
	resolves       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
}

// New creates the collectors and registers them in reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		shortens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shorten_total",
			Help:      "Shorten calls by result (created, deduplicated).",
		}, []string{"result"}),
		collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "code_collisions_total",
			Help:      "Generated candidate codes that were already taken.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insert_conflicts_total",
			Help:      "Inserts lost to a concurrent writer.",
		}),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_total",
			Help:      "Resolve calls by result (hit, miss).",
		}, []string{"result"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.shortens, m.collisions, m.conflicts, m.resolves, m.requestSeconds)
	return m
}

func (m *Metrics) ShortenCreated() {
	if m == nil {
		return
	}
	m.shortens.WithLabelValues("created").Inc()
}

func (m *Metrics) ShortenDeduplicated() {
	if m == nil {
		return
	}
	m.shortens.WithLabelValues("deduplicated").Inc()
}

func (m *Metrics) CodeCollision() {
	if m == nil {
		return
	}
	m.collisions.Inc()
}

func (m *Metrics) InsertConflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}

func (m *Metrics) Resolved(found bool) {
	if m == nil {
		return
	}
	result := "miss"
	if found {
		result = "hit"
	}
	m.resolves.WithLabelValues(result).Inc()
}

// ObserveRequest records one HTTP request duration in seconds.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestSeconds.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler serves the registered collectors in the Prometheus text format.
// Compression is left to the router's gzip middleware.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{DisableCompression: true})
}
