// Package metric contains the prometheus instrumentation for the warehouse
// core: reload and recompute durations, entity gauges and cross-tab query
// counters. The embedding application exposes the registry however it wants;
// the core itself has no network surface.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all core metrics registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Reload metrics
	ReloadsTotal   *prometheus.CounterVec
	ReloadDuration prometheus.Histogram
	EntityCount    *prometheus.GaugeVec

	// Frequency engine metrics
	RecomputeDuration *prometheus.HistogramVec
	DeltasApplied     *prometheus.CounterVec

	// Cross-tab query metrics
	QueryDuration  *prometheus.HistogramVec
	QueriesDropped prometheus.Counter
}

// New creates a Metrics instance backed by its own prometheus registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "warescene",
				Subsystem: "reload",
				Name:      "total",
				Help:      "Total number of bulk reloads",
			},
			[]string{"status"},
		),

		ReloadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "warescene",
				Subsystem: "reload",
				Name:      "duration_seconds",
				Help:      "Bulk reload duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		EntityCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "warescene",
				Subsystem: "store",
				Name:      "entities",
				Help:      "Number of loaded entities per type",
			},
			[]string{"type"},
		),

		RecomputeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "warescene",
				Subsystem: "frequency",
				Name:      "recompute_duration_seconds",
				Help:      "Full frequency recompute duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"strategy"},
		),

		DeltasApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "warescene",
				Subsystem: "frequency",
				Name:      "deltas_applied_total",
				Help:      "Incremental selection deltas applied per strategy and facet",
			},
			[]string{"strategy", "facet"},
		),

		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "warescene",
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Cross-tab join query duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"query"},
		),

		QueriesDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "warescene",
				Subsystem: "query",
				Name:      "dropped_total",
				Help:      "Cross-tab queries dropped because one was already outstanding",
			},
		),
	}

	m.registry.MustRegister(
		m.ReloadsTotal,
		m.ReloadDuration,
		m.EntityCount,
		m.RecomputeDuration,
		m.DeltasApplied,
		m.QueryDuration,
		m.QueriesDropped,
	)

	return m
}

// Registry returns the underlying prometheus registry for exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordReload records one reload attempt with its duration.
func (m *Metrics) RecordReload(status string, duration time.Duration) {
	m.ReloadsTotal.WithLabelValues(status).Inc()
	m.ReloadDuration.Observe(duration.Seconds())
}

// RecordEntityCount updates the gauge for one entity type.
func (m *Metrics) RecordEntityCount(entityType string, count int) {
	m.EntityCount.WithLabelValues(entityType).Set(float64(count))
}

// RecordRecompute records a full recompute duration for a strategy.
func (m *Metrics) RecordRecompute(strategy string, duration time.Duration) {
	m.RecomputeDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordDelta counts one incremental delta application.
func (m *Metrics) RecordDelta(strategy, facet string) {
	m.DeltasApplied.WithLabelValues(strategy, facet).Inc()
}

// RecordQuery records a cross-tab query duration.
func (m *Metrics) RecordQuery(query string, duration time.Duration) {
	m.QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// RecordQueryDropped counts a dropped cross-tab query.
func (m *Metrics) RecordQueryDropped() {
	m.QueriesDropped.Inc()
}
