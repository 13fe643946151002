package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-tally/internal/domain"
)

// ModeResult is one result set of a benchmark: its evaluation mode, the
// file it came from, and its records.
type ModeResult struct {
	// Mode labels the row, "greedy" or "majority@K".
	Mode domain.EvalMode

	// File is the source path, used to locate a record in error reports.
	File string

	// Records is the ordered result set.
	Records []domain.Record
}

// BenchmarkResult groups the result sets of one benchmark in display
// order.
type BenchmarkResult struct {
	// Benchmark is the problem-set name, e.g. "gsm8k".
	Benchmark string

	// Modes holds one entry per evaluation mode present on disk.
	Modes []ModeResult
}

// Column order of the summary table. Fixed so runs diff cleanly.
var summaryColumns = []string{
	"evaluation_mode",
	"num_entries",
	"symbolic_correct",
	"judge_correct",
	"both_correct",
	"any_correct",
	"no_answer",
}

// ResultSummarizer merges per-record symbolic and judge correctness flags
// into aggregate percentages and renders one table block per benchmark.
//
// ResultSummarizer is stateless and safe for concurrent use.
type ResultSummarizer struct {
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// NewResultSummarizer creates a ResultSummarizer.
func NewResultSummarizer() *ResultSummarizer {
	return &ResultSummarizer{tracer: otel.Tracer("result-summarizer")}
}

// Summarize renders the summary tables for the given benchmarks in input
// order. Column widths are computed over the whole run so every block
// lines up. A record without the symbolic correctness field fails the run
// with a *domain.MissingFieldError naming the benchmark, file and line.
func (rs *ResultSummarizer) Summarize(ctx context.Context, results []BenchmarkResult) (string, error) {
	_, span := rs.tracer.Start(ctx, "ResultSummarizer.Summarize",
		trace.WithAttributes(attribute.Int("summarize.benchmarks", len(results))),
	)
	defer span.End()

	type block struct {
		benchmark string
		rows      [][]string
	}

	blocks := make([]block, 0, len(results))
	for _, result := range results {
		b := block{benchmark: result.Benchmark}
		for _, mode := range result.Modes {
			row, err := rs.summarizeMode(mode)
			if err != nil {
				err = fmt.Errorf("benchmark %s: %w", result.Benchmark, err)
				span.RecordError(err)
				return "", err
			}
			b.rows = append(b.rows, row)
		}
		blocks = append(blocks, b)
	}

	widths := make([]int, len(summaryColumns))
	for i, col := range summaryColumns {
		widths[i] = len(col)
	}
	for _, b := range blocks {
		for _, row := range b.rows {
			for i, cell := range row {
				if len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
	}

	var sb strings.Builder
	for _, b := range blocks {
		writeRule(&sb, b.benchmark, tableWidth(widths))
		writeRow(&sb, summaryColumns, widths)
		for _, row := range b.rows {
			writeRow(&sb, row, widths)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// summarizeMode reduces one result set to a rendered table row.
func (rs *ResultSummarizer) summarizeMode(mode ModeResult) ([]string, error) {
	var stats domain.AggregateStats
	for i, record := range mode.Records {
		if err := stats.Observe(record); err != nil {
			var missing *domain.MissingFieldError
			if errors.As(err, &missing) {
				return nil, missing.At(mode.File, i+1)
			}
			return nil, err
		}
	}

	pct, err := stats.Percentages()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mode.File, err)
	}

	return []string{
		string(mode.Mode),
		strconv.Itoa(stats.NumEntries),
		formatPercent(pct.SymbolicCorrect),
		formatPercent(pct.JudgeCorrect),
		formatPercent(pct.BothCorrect),
		formatPercent(pct.AnyCorrect),
		formatPercent(pct.NoAnswer),
	}, nil
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func tableWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	// Separators are " | " between columns.
	return total + 3*(len(widths)-1)
}

// writeRule writes the benchmark header: the name centered in dashes,
// spanning the table width.
func writeRule(sb *strings.Builder, name string, width int) {
	label := " " + name + " "
	dashes := width - len(label)
	if dashes < 2 {
		dashes = 2
	}
	left := dashes / 2
	right := dashes - left
	sb.WriteString(strings.Repeat("-", left))
	sb.WriteString(label)
	sb.WriteString(strings.Repeat("-", right))
	sb.WriteByte('\n')
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(" | ")
		}
		if i == len(cells)-1 {
			// No padding after the last column.
			sb.WriteString(cell)
			continue
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
	}
	sb.WriteByte('\n')
}
