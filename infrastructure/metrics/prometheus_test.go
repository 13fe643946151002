package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Counters(t *testing.T) {
	pm := NewPrometheusMetrics()

	pm.RecordsProcessed("gsm8k", "greedy", 1319)
	pm.RecordsProcessed("gsm8k", "majority@8", 1319)
	pm.RecordsProcessed("math", "greedy", 5000)
	pm.BenchmarkFailed("aime24")
	pm.BenchmarkFailed("aime24")

	assert.InDelta(t, 1319,
		testutil.ToFloat64(pm.recordsProcessed.WithLabelValues("gsm8k", "greedy")), 1e-9)
	assert.InDelta(t, 5000,
		testutil.ToFloat64(pm.recordsProcessed.WithLabelValues("math", "greedy")), 1e-9)
	assert.InDelta(t, 2,
		testutil.ToFloat64(pm.benchmarkFailures.WithLabelValues("aime24")), 1e-9)
}

func TestPrometheusMetrics_IndependentRegistries(t *testing.T) {
	first := NewPrometheusMetrics()
	second := NewPrometheusMetrics()
	first.BenchmarkFailed("gsm8k")

	assert.InDelta(t, 1, testutil.ToFloat64(first.benchmarkFailures.WithLabelValues("gsm8k")), 1e-9)
	assert.InDelta(t, 0, testutil.ToFloat64(second.benchmarkFailures.WithLabelValues("gsm8k")), 1e-9)
}

func TestPrometheusMetrics_WriteTextfile(t *testing.T) {
	pm := NewPrometheusMetrics()
	pm.RecordsProcessed("gsm8k", "greedy", 10)
	pm.BenchmarkDuration("gsm8k", 250*time.Millisecond)

	path := filepath.Join(t.TempDir(), "tally.prom")
	require.NoError(t, pm.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "# TYPE tally_records_processed_total counter")
	assert.Contains(t, out, `tally_records_processed_total{benchmark="gsm8k",mode="greedy"} 10`)
	assert.Contains(t, out, "# TYPE tally_benchmark_duration_seconds histogram")
	assert.Contains(t, out, `tally_benchmark_duration_seconds_count{benchmark="gsm8k"} 1`)
}

func TestPrometheusMetrics_WriteTextfileBadPath(t *testing.T) {
	pm := NewPrometheusMetrics()
	err := pm.WriteTextfile(filepath.Join(t.TempDir(), "missing", "tally.prom"))
	assert.Error(t, err)
}
