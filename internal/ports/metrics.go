package ports

import "time"

// MetricsCollector defines the interface for collecting operational
// metrics from tally runs. Implementations should integrate with
// observability tooling such as Prometheus; a no-op implementation is
// acceptable for library use.
type MetricsCollector interface {
	// RecordsProcessed adds to the count of records read for a benchmark
	// in a given evaluation mode.
	RecordsProcessed(benchmark, mode string, count int)

	// BenchmarkFailed increments the failure count for a benchmark.
	// Failures are isolated per benchmark and never cascade.
	BenchmarkFailed(benchmark string)

	// BenchmarkDuration records how long one benchmark took to process.
	BenchmarkDuration(benchmark string, d time.Duration)
}
