// Package domain contains pure, dependency-free domain models and types
// for the results-tallying pipeline.
package domain

import (
	"maps"
)

// Well-known record field names produced by the external generation,
// symbolic-evaluation, and judge pipelines. Records may carry any number
// of additional fields; those must survive a rewrite untouched.
const (
	// FieldPredictedAnswer holds the answer string extracted from a model
	// generation. Empty or null means no answer could be extracted.
	FieldPredictedAnswer = "predicted_answer"

	// FieldSymbolicCorrect holds the boolean verdict of the deterministic
	// symbolic comparison against the reference answer.
	FieldSymbolicCorrect = "is_correct"

	// FieldJudgeCorrect holds the boolean verdict of the LLM judge pass.
	// The field is absent until a judge pass has run; that is not an error.
	FieldJudgeCorrect = "is_correct_judge"
)

// Record is one model-generated solution attempt for one problem.
// It wraps the raw decoded JSON object so that fields this tool does not
// interpret round-trip losslessly through a rewrite.
type Record struct {
	// Fields is the raw field map of the record. Callers should treat it
	// as read-only and use WithField to derive modified records.
	Fields map[string]any
}

// NewRecord creates a Record from a decoded JSON object.
// A nil map is replaced with an empty one.
func NewRecord(fields map[string]any) Record {
	if fields == nil {
		fields = map[string]any{}
	}
	return Record{Fields: fields}
}

// PredictedAnswer returns the extracted answer string and whether an answer
// is present. A missing field, JSON null, or empty string all count as "no
// answer extracted".
func (r Record) PredictedAnswer() (string, bool) {
	v, ok := r.Fields[FieldPredictedAnswer]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// SymbolicCorrect returns the symbolic correctness flag and whether the
// field is present. Summarization treats an absent field as a hard error;
// that decision belongs to the caller, not to this accessor.
func (r Record) SymbolicCorrect() (bool, bool) {
	return r.boolField(FieldSymbolicCorrect)
}

// JudgeCorrect returns the judge correctness flag and whether the field is
// present. The field is legitimately absent before a judge pass.
func (r Record) JudgeCorrect() (bool, bool) {
	return r.boolField(FieldJudgeCorrect)
}

func (r Record) boolField(name string) (bool, bool) {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		return false, false
	}
	return b, true
}

// WithField returns a copy of the record with a single field overwritten.
// The receiver's field map is not modified.
func (r Record) WithField(name string, value any) Record {
	fields := make(map[string]any, len(r.Fields)+1)
	maps.Copy(fields, r.Fields)
	fields[name] = value
	return Record{Fields: fields}
}
