// Package ports defines the interfaces that connect the tallying core to
// its infrastructure adapters.
package ports

// AnswerComparator defines the answer-equivalence contract used by
// majority voting. The equivalence must match whatever the external
// symbolic comparison engine considers equal, so that two differently
// formatted renderings of the same value are counted as one vote.
//
// Implementations must be deterministic and safe for concurrent use.
type AnswerComparator interface {
	// Normalize returns the canonical form of an answer string.
	// Normalizing twice must be a no-op.
	Normalize(answer string) string

	// Equivalent reports whether two answer strings represent the same
	// value. It must be reflexive and symmetric; implementations based on
	// similarity thresholds are not required to be transitive.
	Equivalent(a, b string) bool
}
