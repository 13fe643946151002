// Package jsonl implements the ports.ResultStore interface over
// line-delimited JSON record files, the interchange format of the
// generation and judge pipelines.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

var _ ports.ResultStore = (*Store)(nil)

// maxLineBytes bounds a single record line. Generations with full
// reasoning traces run long, but anything past this is a corrupt file.
const maxLineBytes = 32 * 1024 * 1024

// Store reads and writes result sets as one JSON object per line.
// Records round-trip with every field intact; only the caller decides
// which fields to rewrite.
//
// Store is stateless and safe for concurrent use.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store { return &Store{} }

// ReadResultSet loads every record of path in file order.
// A line that is blank or fails to parse aborts the read with a
// *domain.MalformedRecordError carrying the file and 1-based line number;
// malformed input is never skipped.
func (s *Store) ReadResultSet(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result set: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []domain.Record
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			return nil, &domain.MalformedRecordError{
				File: path,
				Line: line,
				Err:  errors.New("blank line in record stream"),
			}
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(text), &fields); err != nil {
			return nil, &domain.MalformedRecordError{File: path, Line: line, Err: err}
		}
		records = append(records, domain.NewRecord(fields))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// WriteResultSet writes records to path, one JSON object per line.
// The write goes through a temporary file in the same directory and a
// rename, so a crash never leaves a half-written result set behind.
func (s *Store) WriteResultSet(path string, records []domain.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tally-*.jsonl")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, record := range records {
		if err := enc.Encode(record.Fields); err != nil {
			tmp.Close()
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
