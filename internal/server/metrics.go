package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry so tests and
// embedders never collide with the global one.
type Metrics struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	cacheHits   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskform",
			Name:      "schema_generations_total",
			Help:      "Task form schemas generated, by output format.",
		}, []string{"format"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskform",
			Name:      "schema_cache_hits_total",
			Help:      "Rendered schemas served from the cache, by output format.",
		}, []string{"format"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taskform",
			Name:      "schema_render_seconds",
			Help:      "Time spent generating and rendering a task form schema.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"format"}),
	}
	m.registry.MustRegister(m.generations, m.cacheHits, m.duration)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observe(format string, seconds float64) {
	m.generations.WithLabelValues(format).Inc()
	m.duration.WithLabelValues(format).Observe(seconds)
}

func (m *Metrics) hit(format string) {
	m.cacheHits.WithLabelValues(format).Inc()
}
