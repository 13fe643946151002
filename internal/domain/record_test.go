package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_PredictedAnswer(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]any
		wantAnswer string
		wantOK     bool
	}{
		{
			name:       "present answer",
			fields:     map[string]any{FieldPredictedAnswer: "42"},
			wantAnswer: "42",
			wantOK:     true,
		},
		{
			name:   "missing field",
			fields: map[string]any{},
			wantOK: false,
		},
		{
			name:   "null answer",
			fields: map[string]any{FieldPredictedAnswer: nil},
			wantOK: false,
		},
		{
			name:   "empty string answer",
			fields: map[string]any{FieldPredictedAnswer: ""},
			wantOK: false,
		},
		{
			name:   "non-string answer",
			fields: map[string]any{FieldPredictedAnswer: 42.0},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, ok := NewRecord(tt.fields).PredictedAnswer()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAnswer, answer)
		})
	}
}

func TestRecord_CorrectnessAccessors(t *testing.T) {
	record := NewRecord(map[string]any{
		FieldSymbolicCorrect: true,
	})

	symbolic, ok := record.SymbolicCorrect()
	assert.True(t, ok)
	assert.True(t, symbolic)

	_, ok = record.JudgeCorrect()
	assert.False(t, ok, "judge field should be absent before a judge pass")

	judged := record.WithField(FieldJudgeCorrect, false)
	judge, ok := judged.JudgeCorrect()
	assert.True(t, ok)
	assert.False(t, judge)
}

func TestRecord_WithFieldDoesNotAliasReceiver(t *testing.T) {
	original := NewRecord(map[string]any{
		FieldPredictedAnswer: "3",
		"problem":            "1+2",
	})

	modified := original.WithField(FieldPredictedAnswer, "5")

	answer, ok := original.PredictedAnswer()
	assert.True(t, ok)
	assert.Equal(t, "3", answer, "receiver must stay untouched")

	answer, ok = modified.PredictedAnswer()
	assert.True(t, ok)
	assert.Equal(t, "5", answer)
	assert.Equal(t, "1+2", modified.Fields["problem"], "other fields must carry over")
}

func TestNewRecord_NilFields(t *testing.T) {
	record := NewRecord(nil)
	assert.NotNil(t, record.Fields)
}
