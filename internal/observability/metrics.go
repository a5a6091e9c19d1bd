// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// Load metrics
	RecordsKept prometheus.Gauge
	DroppedRows *prometheus.CounterVec

	// Dashboard metrics
	Recomputations    prometheus.Counter
	RecomputeDuration prometheus.Histogram
	SelectedPeriods   prometheus.Gauge
	SubsetRecords     prometheus.Gauge

	// Report metrics
	ReportsGenerated prometheus.Counter
}

// NewMetrics creates a new Metrics instance registered on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "salesdash"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RecordsKept: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "records_kept",
			Help:      "Records kept after cleaning",
		}),
		DroppedRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "rows_dropped_total",
			Help:      "Rows dropped by the cleaning policy",
		}, []string{"reason"}),

		Recomputations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "recomputations_total",
			Help:      "Completed dashboard recomputations",
		}),
		RecomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "recompute_duration_seconds",
			Help:      "Time to filter and recompute metrics and aggregates",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		SelectedPeriods: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "selected_periods",
			Help:      "Periods in the last applied selection",
		}),
		SubsetRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "subset_records",
			Help:      "Records in the last computed subset",
		}),

		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Reports emitted",
		}),
	}
}

// RecordsLoaded implements loader.DropRecorder
func (m *Metrics) RecordsLoaded(n int) {
	m.RecordsKept.Set(float64(n))
}

// RowsDropped implements loader.DropRecorder
func (m *Metrics) RowsDropped(reason string, n int) {
	m.DroppedRows.WithLabelValues(reason).Add(float64(n))
}

// Recomputed implements dashboard.RecomputeRecorder
func (m *Metrics) Recomputed(selected int, records int, elapsed time.Duration) {
	m.Recomputations.Inc()
	m.RecomputeDuration.Observe(elapsed.Seconds())
	m.SelectedPeriods.Set(float64(selected))
	m.SubsetRecords.Set(float64(records))
}

// ReportGenerated implements report.Recorder
func (m *Metrics) ReportGenerated() {
	m.ReportsGenerated.Inc()
}

// Handler returns the HTTP handler exposing the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
