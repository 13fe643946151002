// Package testutils provides fixture builders for result-set tests:
// synthetic records and on-disk results trees matching the generation
// pipeline's layout.
package testutils

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Row is one raw result record. Tests build rows directly so fixtures
// stay visible at the call site.
type Row = map[string]any

// Result builds a symbolically evaluated record.
func Result(answer string, symbolic bool) Row {
	return Row{
		"predicted_answer": answer,
		"is_correct":       symbolic,
	}
}

// JudgedResult builds a record carrying both verdicts.
func JudgedResult(answer string, symbolic, judge bool) Row {
	row := Result(answer, symbolic)
	row["is_correct_judge"] = judge
	return row
}

// NoAnswerResult builds a record whose generation produced no extractable
// answer.
func NoAnswerResult() Row {
	return Row{
		"predicted_answer": nil,
		"is_correct":       false,
	}
}

// WriteResultFile writes rows to path as line-delimited JSON, creating
// parent directories as needed.
func WriteResultFile(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fixture directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encode fixture row: %w", err)
		}
	}
	return w.Flush()
}

// Benchmark describes one benchmark directory of a results tree fixture.
type Benchmark struct {
	// Name is the benchmark directory name.
	Name string

	// Greedy, when non-nil, becomes output.jsonl.
	Greedy []Row

	// Samples become output-rs{i}.jsonl, one file per entry.
	Samples [][]Row

	// Majority, when non-nil, becomes output-majority.jsonl.
	Majority []Row
}

// WriteResultsTree materializes benchmarks under root using the
// pipeline's file naming.
func WriteResultsTree(root string, benchmarks ...Benchmark) error {
	for _, b := range benchmarks {
		dir := filepath.Join(root, b.Name)
		if b.Greedy != nil {
			if err := WriteResultFile(filepath.Join(dir, "output.jsonl"), b.Greedy); err != nil {
				return err
			}
		}
		for i, sample := range b.Samples {
			path := filepath.Join(dir, fmt.Sprintf("output-rs%d.jsonl", i))
			if err := WriteResultFile(path, sample); err != nil {
				return err
			}
		}
		if b.Majority != nil {
			if err := WriteResultFile(filepath.Join(dir, "output-majority.jsonl"), b.Majority); err != nil {
				return err
			}
		}
	}
	return nil
}
