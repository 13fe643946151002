package domain

import (
	"fmt"
	"math"
)

// EvalMode identifies how the records of a result set were produced.
// It is the row key of the summary table.
type EvalMode string

// GreedyMode is the evaluation mode for a single deterministic generation
// per problem.
const GreedyMode EvalMode = "greedy"

// MajorityMode returns the evaluation mode label for a result set fused
// from k parallel samples, e.g. "majority@8".
func MajorityMode(k int) EvalMode {
	return EvalMode(fmt.Sprintf("majority@%d", k))
}

// AggregateStats accumulates correctness counts for one result set.
// It is recomputed fresh on every run and never persisted.
//
// Judge policy: a record without a judge field counts as judge-incorrect.
// For a result set that never saw a judge pass this collapses JudgeCorrect
// and BothCorrect to zero and AnyCorrect to the symbolic score, which keeps
// the table comparable before and after judging.
type AggregateStats struct {
	// NumEntries is the total number of records observed.
	NumEntries int
	// SymbolicCorrect counts records the symbolic comparator accepted.
	SymbolicCorrect int
	// JudgeCorrect counts records the LLM judge accepted.
	JudgeCorrect int
	// BothCorrect counts records accepted by both verdicts.
	BothCorrect int
	// AnyCorrect counts records accepted by at least one verdict.
	AnyCorrect int
	// NoAnswer counts records with no extracted answer, independent of
	// correctness.
	NoAnswer int
}

// Observe folds one record into the running counts.
// Returns a *MissingFieldError when the record lacks the symbolic
// correctness field entirely; the error carries no location, callers add
// file and line context.
func (s *AggregateStats) Observe(r Record) error {
	symbolic, ok := r.SymbolicCorrect()
	if !ok {
		return &MissingFieldError{Field: FieldSymbolicCorrect}
	}
	judge, _ := r.JudgeCorrect()

	s.NumEntries++
	if symbolic {
		s.SymbolicCorrect++
	}
	if judge {
		s.JudgeCorrect++
	}
	if symbolic && judge {
		s.BothCorrect++
	}
	if symbolic || judge {
		s.AnyCorrect++
	}
	if _, has := r.PredictedAnswer(); !has {
		s.NoAnswer++
	}
	return nil
}

// Percentages holds the display values of one summary row, each already
// rounded to two decimal places.
type Percentages struct {
	SymbolicCorrect float64
	JudgeCorrect    float64
	BothCorrect     float64
	AnyCorrect      float64
	NoAnswer        float64
}

// Percentages converts counts into display percentages.
// Returns ErrEmptyResultSet when no records were observed, since a
// zero-denominator row would silently render as all zeros.
func (s AggregateStats) Percentages() (Percentages, error) {
	if s.NumEntries == 0 {
		return Percentages{}, ErrEmptyResultSet
	}
	return Percentages{
		SymbolicCorrect: Percent(s.SymbolicCorrect, s.NumEntries),
		JudgeCorrect:    Percent(s.JudgeCorrect, s.NumEntries),
		BothCorrect:     Percent(s.BothCorrect, s.NumEntries),
		AnyCorrect:      Percent(s.AnyCorrect, s.NumEntries),
		NoAnswer:        Percent(s.NoAnswer, s.NumEntries),
	}, nil
}

// Percent computes count/total*100 rounded to two decimal places using
// round-half-to-even. Half-to-even matches the "%.2f" formatting of the
// upstream pipeline and keeps displayed scores stable under re-runs.
func Percent(count, total int) float64 {
	return roundHalfEven(float64(count)/float64(total)*100, 2)
}

func roundHalfEven(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.RoundToEven(v*shift) / shift
}
