package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

// SuiteRunner walks a results directory, loads each benchmark's result
// sets, and renders the combined summary. Benchmarks are independent, so
// they are processed concurrently; a failure in one is reported and does
// not abort the others.
type SuiteRunner struct {
	config     SuiteConfig
	store      ports.ResultStore
	summarizer *ResultSummarizer
	metrics    ports.MetricsCollector
	logger     zerolog.Logger
}

// NewSuiteRunner creates a SuiteRunner. A nil metrics collector is
// replaced with a no-op.
func NewSuiteRunner(
	config SuiteConfig,
	store ports.ResultStore,
	metrics ports.MetricsCollector,
	logger zerolog.Logger,
) (*SuiteRunner, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("suite config validation failed: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("result store is required")
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &SuiteRunner{
		config:     config,
		store:      store,
		summarizer: NewResultSummarizer(),
		metrics:    metrics,
		logger:     logger.With().Str("component", "runner").Logger(),
	}, nil
}

// BenchmarkFailure records why one benchmark could not be summarized.
type BenchmarkFailure struct {
	// Benchmark is the failed benchmark's name.
	Benchmark string

	// Err is the cause, typically an alignment, parse, or missing-field
	// error carrying file and line.
	Err error
}

// RunReport is the outcome of one summarize run.
type RunReport struct {
	// Summary is the rendered table output for all succeeding benchmarks,
	// in name order.
	Summary string

	// Failures lists benchmarks that could not be processed.
	Failures []BenchmarkFailure
}

// Run discovers benchmarks under root and renders their summary tables.
// A directory counts as a benchmark when it contains at least one of the
// configured result files. Run fails outright only when root cannot be
// read or contains no benchmarks at all.
func (sr *SuiteRunner) Run(ctx context.Context, root string) (RunReport, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return RunReport{}, fmt.Errorf("read results directory: %w", err)
	}

	var benchmarks []string
	for _, entry := range entries {
		if entry.IsDir() {
			benchmarks = append(benchmarks, entry.Name())
		}
	}
	sort.Strings(benchmarks)
	if len(benchmarks) == 0 {
		return RunReport{}, fmt.Errorf("%w: no benchmark directories under %s", domain.ErrNoInputFiles, root)
	}

	type outcome struct {
		result BenchmarkResult
		found  bool
		err    error
	}
	outcomes := make([]outcome, len(benchmarks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sr.config.Workers)
	for i, benchmark := range benchmarks {
		g.Go(func() error {
			start := time.Now()
			result, found, err := sr.loadBenchmark(ctx, benchmark, filepath.Join(root, benchmark))
			sr.metrics.BenchmarkDuration(benchmark, time.Since(start))
			if err != nil {
				// Failures stay local to the benchmark; returning the
				// error here would cancel the siblings.
				sr.metrics.BenchmarkFailed(benchmark)
				sr.logger.Error().Err(err).Str("benchmark", benchmark).Msg("benchmark failed")
			}
			outcomes[i] = outcome{result: result, found: found, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunReport{}, err
	}

	var report RunReport
	var results []BenchmarkResult
	for i, benchmark := range benchmarks {
		switch {
		case outcomes[i].err != nil:
			report.Failures = append(report.Failures, BenchmarkFailure{Benchmark: benchmark, Err: outcomes[i].err})
		case outcomes[i].found:
			results = append(results, outcomes[i].result)
		}
	}
	if len(results) == 0 && len(report.Failures) == 0 {
		return RunReport{}, fmt.Errorf("%w: no result files under %s", domain.ErrNoInputFiles, root)
	}

	summary, err := sr.summarizer.Summarize(ctx, results)
	if err != nil {
		return RunReport{}, err
	}
	report.Summary = summary
	return report, nil
}

// loadBenchmark assembles the result sets of one benchmark directory.
// found is false when the directory holds none of the configured files,
// which is not an error; stray directories are simply skipped.
func (sr *SuiteRunner) loadBenchmark(
	ctx context.Context,
	benchmark, dir string,
) (BenchmarkResult, bool, error) {
	result := BenchmarkResult{Benchmark: benchmark}

	greedyPath := filepath.Join(dir, sr.config.GreedyFile)
	if _, err := os.Stat(greedyPath); err == nil {
		if err := ctx.Err(); err != nil {
			return BenchmarkResult{}, false, err
		}
		records, err := sr.store.ReadResultSet(greedyPath)
		if err != nil {
			return BenchmarkResult{}, false, err
		}
		sr.metrics.RecordsProcessed(benchmark, string(domain.GreedyMode), len(records))
		result.Modes = append(result.Modes, ModeResult{
			Mode:    domain.GreedyMode,
			File:    greedyPath,
			Records: records,
		})
	}

	majorityPath := filepath.Join(dir, sr.config.MajorityFile)
	if _, err := os.Stat(majorityPath); err == nil {
		if err := ctx.Err(); err != nil {
			return BenchmarkResult{}, false, err
		}
		records, err := sr.store.ReadResultSet(majorityPath)
		if err != nil {
			return BenchmarkResult{}, false, err
		}
		mode := domain.EvalMode("majority")
		samples, err := doublestar.FilepathGlob(filepath.Join(dir, sr.config.SamplePattern))
		if err != nil {
			return BenchmarkResult{}, false, fmt.Errorf("expand sample pattern: %w", err)
		}
		// K is recovered from the sample files still on disk; when they
		// are gone the row stays labeled plain "majority".
		if len(samples) > 0 {
			mode = domain.MajorityMode(len(samples))
		}
		sr.metrics.RecordsProcessed(benchmark, string(mode), len(records))
		result.Modes = append(result.Modes, ModeResult{
			Mode:    mode,
			File:    majorityPath,
			Records: records,
		})
	}

	return result, len(result.Modes) > 0, nil
}

// nopMetrics keeps the collector optional.
type nopMetrics struct{}

func (nopMetrics) RecordsProcessed(string, string, int)    {}
func (nopMetrics) BenchmarkFailed(string)                  {}
func (nopMetrics) BenchmarkDuration(string, time.Duration) {}
