// Package metrics provides Prometheus-backed implementations of the
// ports.MetricsCollector interface.
package metrics

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/ahrav/go-tally/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface on a private
// Prometheus registry. Tally runs are short-lived batch jobs, so instead
// of serving a scrape endpoint the registry can be dumped in text
// exposition format for a node-exporter textfile collector to pick up.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	recordsProcessed  *prometheus.CounterVec
	benchmarkFailures *prometheus.CounterVec
	benchmarkDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance with all
// metrics registered on a fresh private registry, keeping repeated
// construction in tests free of duplicate-registration panics.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,
		recordsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tally_records_processed_total",
				Help: "Total number of result records read, by benchmark and evaluation mode.",
			},
			[]string{"benchmark", "mode"},
		),
		benchmarkFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tally_benchmark_failures_total",
				Help: "Total number of benchmarks whose processing aborted with an error.",
			},
			[]string{"benchmark"},
		),
		benchmarkDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tally_benchmark_duration_seconds",
				Help:    "Wall-clock processing time per benchmark.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"benchmark"},
		),
	}
}

// RecordsProcessed implements the MetricsCollector interface.
func (pm *PrometheusMetrics) RecordsProcessed(benchmark, mode string, count int) {
	pm.recordsProcessed.WithLabelValues(benchmark, mode).Add(float64(count))
}

// BenchmarkFailed implements the MetricsCollector interface.
func (pm *PrometheusMetrics) BenchmarkFailed(benchmark string) {
	pm.benchmarkFailures.WithLabelValues(benchmark).Inc()
}

// BenchmarkDuration implements the MetricsCollector interface.
func (pm *PrometheusMetrics) BenchmarkDuration(benchmark string, d time.Duration) {
	pm.benchmarkDuration.WithLabelValues(benchmark).Observe(d.Seconds())
}

// WriteTextfile dumps the registry in Prometheus text exposition format,
// the contract expected by the node-exporter textfile collector.
func (pm *PrometheusMetrics) WriteTextfile(path string) error {
	families, err := pm.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer f.Close()

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("encode metric family %s: %w", family.GetName(), err)
		}
	}
	return nil
}
