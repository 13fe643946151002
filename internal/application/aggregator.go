// Package application orchestrates the tallying pipeline: majority-vote
// aggregation of sampled result files and summarization of correctness
// flags into per-benchmark tables.
package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

// MajorityAggregator fuses N positionally aligned sample files into one
// majority-voted record set. For each problem index it collects the
// predicted answers of all samples, buckets them by comparator
// equivalence, and writes the winning bucket's answer into a chosen field
// of the first file's record, leaving every other field untouched.
//
// Ties break by first-seen order among the tied buckets, which keeps the
// output deterministic for a fixed input file order.
//
// MajorityAggregator is stateless between calls and safe for concurrent
// use.
type MajorityAggregator struct {
	// comparator supplies the answer-equivalence of the external symbolic
	// engine, so differently formatted equal values vote together.
	comparator ports.AnswerComparator
	// store reads the sample files and writes the fused set.
	store ports.ResultStore
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewMajorityAggregator creates a MajorityAggregator.
// Both the comparator and the store are required.
func NewMajorityAggregator(
	comparator ports.AnswerComparator,
	store ports.ResultStore,
	logger zerolog.Logger,
) (*MajorityAggregator, error) {
	if comparator == nil {
		return nil, fmt.Errorf("comparator is required")
	}
	if store == nil {
		return nil, fmt.Errorf("result store is required")
	}
	return &MajorityAggregator{
		comparator: comparator,
		store:      store,
		tracer:     otel.Tracer("majority-aggregator"),
		logger:     logger.With().Str("component", "aggregator").Logger(),
	}, nil
}

// AggregateResult is the outcome of one majority fusion.
type AggregateResult struct {
	// Records is the fused record set: file[0]'s records with fillKey
	// overwritten by the majority answer.
	Records []domain.Record

	// Samples is the number of input files fused, the K of "majority@K".
	Samples int
}

// Aggregate fuses the given sample files and returns the majority-voted
// record set. Files must be positionally aligned; a length mismatch fails
// with a *domain.AlignmentError naming the offending file. All files are
// read before any result is produced; there is no partial output.
//
// Source files are never mutated; callers decide where the result is
// written.
func (ma *MajorityAggregator) Aggregate(
	ctx context.Context,
	files []string,
	fillKey string,
) (AggregateResult, error) {
	ctx, span := ma.tracer.Start(ctx, "MajorityAggregator.Aggregate",
		trace.WithAttributes(
			attribute.Int("aggregate.samples", len(files)),
			attribute.String("aggregate.fill_key", fillKey),
		),
	)
	defer span.End()

	if len(files) == 0 {
		span.RecordError(domain.ErrNoInputFiles)
		return AggregateResult{}, domain.ErrNoInputFiles
	}
	if fillKey == "" {
		span.RecordError(domain.ErrEmptyFillKey)
		return AggregateResult{}, domain.ErrEmptyFillKey
	}

	samples := make([][]domain.Record, len(files))
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return AggregateResult{}, err
		}
		records, err := ma.store.ReadResultSet(file)
		if err != nil {
			span.RecordError(err)
			return AggregateResult{}, err
		}
		if i > 0 && len(records) != len(samples[0]) {
			err := &domain.AlignmentError{File: file, Want: len(samples[0]), Got: len(records)}
			span.RecordError(err)
			return AggregateResult{}, err
		}
		samples[i] = records
	}

	problems := len(samples[0])
	fused := make([]domain.Record, problems)
	for i := 0; i < problems; i++ {
		answers := make([]string, 0, len(samples))
		for _, sample := range samples {
			// Records without an extracted answer cast no vote.
			if answer, ok := sample[i].PredictedAnswer(); ok {
				answers = append(answers, answer)
			}
		}
		fused[i] = samples[0][i].WithField(fillKey, ma.vote(answers))
	}

	ma.logger.Info().
		Int("problems", problems).
		Int("samples", len(files)).
		Str("fill_key", fillKey).
		Msg("majority aggregation complete")
	span.SetAttributes(attribute.Int("aggregate.problems", problems))

	return AggregateResult{Records: fused, Samples: len(files)}, nil
}

// voteBucket groups equivalent answers under the first-seen original form.
type voteBucket struct {
	// repr is the first-seen original (pre-normalization) answer of the
	// bucket; it is both the match target and the value written out.
	repr  string
	count int
}

// vote returns the majority answer among the given candidates, or the
// empty string when no sample produced an answer. Candidates are bucketed
// by comparator equivalence against each bucket's first-seen
// representative; ties resolve to the earliest bucket.
func (ma *MajorityAggregator) vote(answers []string) string {
	if len(answers) == 0 {
		return ""
	}

	var buckets []voteBucket
	for _, answer := range answers {
		matched := false
		for b := range buckets {
			if ma.comparator.Equivalent(buckets[b].repr, answer) {
				buckets[b].count++
				matched = true
				break
			}
		}
		if !matched {
			buckets = append(buckets, voteBucket{repr: answer, count: 1})
		}
	}

	// Buckets are in first-seen order, so a strict > keeps the earliest
	// bucket on ties.
	winner := buckets[0]
	for _, b := range buckets[1:] {
		if b.count > winner.count {
			winner = b
		}
	}
	return winner.repr
}
