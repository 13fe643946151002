package compare

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/ahrav/go-tally/internal/ports"
)

var _ ports.AnswerComparator = (*Fuzzy)(nil)

// Fuzzy treats two answers as equivalent when their canonical forms are
// equal or when their Levenshtein similarity meets a configured threshold.
// This groups near-identical renderings (stray punctuation, dropped units)
// under one vote bucket at the cost of transitivity; the aggregator
// compensates by matching against each bucket's first-seen representative.
//
// Fuzzy is stateless and safe for concurrent use.
type Fuzzy struct {
	// config contains the validated configuration parameters.
	config FuzzyConfig
	// exact supplies normalization and the equality fast path.
	exact *Exact
}

// FuzzyConfig defines the configuration parameters for the Fuzzy
// comparator. All fields are validated during construction.
type FuzzyConfig struct {
	// Threshold is the minimum similarity (0.0-1.0) for two
	// non-identical answers to count as equivalent. Similarity is
	// 1 - distance/maxLen over the normalized forms.
	Threshold float64 `yaml:"threshold" json:"threshold" validate:"min=0.0,max=1.0"`

	// Exact configures the normalization applied before measuring
	// distance.
	Exact ExactConfig `yaml:"exact" json:"exact"`
}

// DefaultFuzzyConfig returns a FuzzyConfig with production defaults:
// a 0.9 similarity threshold over the default exact normalization.
func DefaultFuzzyConfig() FuzzyConfig {
	return FuzzyConfig{
		Threshold: 0.9,
		Exact:     DefaultExactConfig(),
	}
}

// NewFuzzy creates a Fuzzy comparator with validated configuration.
func NewFuzzy(config FuzzyConfig) (*Fuzzy, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	exact, err := NewExact(config.Exact)
	if err != nil {
		return nil, err
	}
	return &Fuzzy{config: config, exact: exact}, nil
}

// Normalize delegates to the configured exact normalization rules.
func (f *Fuzzy) Normalize(answer string) string {
	return f.exact.Normalize(answer)
}

// Equivalent reports whether two answers are equal in canonical form or
// similar beyond the configured threshold.
func (f *Fuzzy) Equivalent(a, b string) bool {
	na, nb := f.Normalize(a), f.Normalize(b)
	if na == nb {
		return true
	}
	return similarity(na, nb) >= f.config.Threshold
}

// similarity converts Levenshtein distance into a 0.0-1.0 score relative
// to the longer string, measured in runes.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
