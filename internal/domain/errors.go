package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur while tallying result sets.
var (
	// ErrNoInputFiles indicates that an input pattern matched zero files.
	ErrNoInputFiles = errors.New("no input files matched")

	// ErrEmptyResultSet indicates that a result set contains no records.
	ErrEmptyResultSet = errors.New("result set is empty")

	// ErrEmptyFillKey indicates that majority aggregation was requested
	// without a target field name.
	ErrEmptyFillKey = errors.New("fill key cannot be empty")
)

// AlignmentError reports that the sampled files of one benchmark do not
// carry the same number of records and therefore cannot be fused
// positionally.
type AlignmentError struct {
	// File is the offending file path.
	File string

	// Want is the record count of the reference (first) file.
	Want int

	// Got is the record count found in File.
	Got int
}

// Error implements the error interface for AlignmentError.
func (e *AlignmentError) Error() string {
	return fmt.Sprintf("alignment error: file=%s has %d records, expected %d", e.File, e.Got, e.Want)
}

// MissingFieldError reports that a record lacks a field the current
// operation requires. File and Line are filled by the caller that knows the
// record's origin; they are zero-valued when the record came from memory.
type MissingFieldError struct {
	// Field is the name of the missing record field.
	Field string

	// File is the path of the file the record was read from, if known.
	File string

	// Line is the 1-based line number of the record, if known.
	Line int
}

// Error implements the error interface for MissingFieldError.
func (e *MissingFieldError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("missing field %q at %s:%d", e.Field, e.File, e.Line)
}

// At returns a copy of the error annotated with the record's origin.
func (e *MissingFieldError) At(file string, line int) *MissingFieldError {
	return &MissingFieldError{Field: e.Field, File: file, Line: line}
}

// MalformedRecordError reports a line that failed to parse as a record.
// Malformed input is never skipped; a garbled record would silently skew
// majority-vote denominators.
type MalformedRecordError struct {
	// File is the path of the offending file.
	File string

	// Line is the 1-based line number that failed to parse.
	Line int

	// Err is the underlying parse error.
	Err error
}

// Error implements the error interface for MalformedRecordError.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at %s:%d: %v", e.File, e.Line, e.Err)
}

// Unwrap returns the underlying error, supporting Go 1.13+ error unwrapping.
func (e *MalformedRecordError) Unwrap() error { return e.Err }
