package ports

import (
	"github.com/ahrav/go-tally/internal/domain"
)

// ResultStore abstracts reading and writing of result sets so the
// application core stays independent of the on-disk record format.
// The canonical implementation is line-delimited JSON.
type ResultStore interface {
	// ReadResultSet loads all records of one file, preserving order and
	// every field of every record. A line that fails to parse yields a
	// *domain.MalformedRecordError; partial reads are never returned.
	ReadResultSet(path string) ([]domain.Record, error)

	// WriteResultSet writes records to path in the same format
	// ReadResultSet consumes, one record per line, replacing any existing
	// file. Source files of an aggregation are never written through this
	// method.
	WriteResultSet(path string, records []domain.Record) error
}
