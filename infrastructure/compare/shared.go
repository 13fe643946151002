// Package compare provides deterministic answer comparators implementing
// the ports.AnswerComparator interface for majority voting.
package compare

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

// Comparator type names accepted by configuration.
const (
	// TypeExact selects canonical-form string equality.
	TypeExact = "exact"

	// TypeFuzzy selects Levenshtein-similarity equivalence.
	TypeFuzzy = "fuzzy"
)

// ErrUnknownComparator is returned when a configuration names a comparator
// type this package does not provide.
var ErrUnknownComparator = errors.New("unknown comparator type")

// Package-level validator instance for configuration validation.
var validate = validator.New()

// foldCaser is a package-level Unicode case folder for performance.
// This avoids creating a new caser for each string preparation.
var foldCaser = cases.Fold()

// fold applies Unicode-aware case folding. Unlike strings.ToLower this
// handles full case folding for non-ASCII scripts.
func fold(s string) string { return foldCaser.String(s) }

// stripThousands removes comma group separators from a numeric-looking
// string so "1,234.50" and "1234.50" canonicalize identically. Strings
// containing anything besides digits, commas, a sign, and one decimal
// point are returned unchanged.
func stripThousands(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ',' || r == '.' || r == '+' || r == '-':
		default:
			return s
		}
	}
	return strings.ReplaceAll(s, ",", "")
}
