package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignmentError(t *testing.T) {
	err := &AlignmentError{File: "output-rs3.jsonl", Want: 1319, Got: 1318}

	assert.Contains(t, err.Error(), "output-rs3.jsonl")
	assert.Contains(t, err.Error(), "1318")
	assert.Contains(t, err.Error(), "1319")

	var alignment *AlignmentError
	assert.True(t, errors.As(error(err), &alignment))
}

func TestMissingFieldError(t *testing.T) {
	base := &MissingFieldError{Field: FieldSymbolicCorrect}
	assert.Equal(t, `missing field "is_correct"`, base.Error())

	located := base.At("results/gsm8k/output.jsonl", 42)
	assert.Contains(t, located.Error(), "results/gsm8k/output.jsonl:42")
	assert.Equal(t, FieldSymbolicCorrect, located.Field)

	// At must not mutate the original.
	assert.Empty(t, base.File)
	assert.Zero(t, base.Line)
}

func TestMalformedRecordError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &MalformedRecordError{File: "output.jsonl", Line: 7, Err: cause}

	assert.Contains(t, err.Error(), "output.jsonl:7")
	require.ErrorIs(t, err, cause)
}
