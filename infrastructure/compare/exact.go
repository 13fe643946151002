package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahrav/go-tally/internal/ports"
)

var _ ports.AnswerComparator = (*Exact)(nil)

// Exact performs deterministic canonical-form equality between answer
// strings. Two answers are equivalent when their normalized forms are
// byte-identical, with configurable case sensitivity, whitespace handling,
// and numeric canonicalization so that "5", "5.0" and " 5 " all cast the
// same majority vote.
//
// Exact is stateless and safe for concurrent use.
type Exact struct {
	// config contains the validated configuration parameters.
	config ExactConfig
}

// ExactConfig controls string normalization behavior during exact
// comparison. The zero value is not useful; start from
// DefaultExactConfig.
type ExactConfig struct {
	// CaseSensitive controls case sensitivity during comparison.
	// When false, Unicode-aware case folding is applied.
	// Default: false.
	CaseSensitive bool `yaml:"case_sensitive" json:"case_sensitive"`

	// TrimWhitespace controls leading/trailing whitespace normalization.
	// Default: true.
	TrimWhitespace bool `yaml:"trim_whitespace" json:"trim_whitespace"`

	// CanonicalizeNumbers controls whether numeric strings are reduced to
	// a canonical decimal form before comparison ("5.0" -> "5",
	// "1,234.50" -> "1234.5"). Non-numeric strings are left alone.
	// Default: true, matching the equivalence of the symbolic engine.
	CanonicalizeNumbers bool `yaml:"canonicalize_numbers" json:"canonicalize_numbers"`
}

// DefaultExactConfig returns an ExactConfig with production defaults:
// case-insensitive, whitespace-trimmed, numerically canonicalized.
func DefaultExactConfig() ExactConfig {
	return ExactConfig{
		CaseSensitive:       false,
		TrimWhitespace:      true,
		CanonicalizeNumbers: true,
	}
}

// NewExact creates an Exact comparator with validated configuration.
func NewExact(config ExactConfig) (*Exact, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &Exact{config: config}, nil
}

// Normalize returns the canonical form of an answer string according to
// the comparator's configuration. Transformations apply in order:
// whitespace trimming, case folding, numeric canonicalization.
func (e *Exact) Normalize(answer string) string {
	result := answer

	if e.config.TrimWhitespace {
		result = strings.TrimSpace(result)
	}
	if !e.config.CaseSensitive {
		result = fold(result)
	}
	if e.config.CanonicalizeNumbers {
		result = canonicalizeNumber(result)
	}
	return result
}

// Equivalent reports whether two answers share the same canonical form.
func (e *Exact) Equivalent(a, b string) bool {
	return e.Normalize(a) == e.Normalize(b)
}

// canonicalizeNumber reduces a numeric string to its shortest decimal
// representation. Strings that do not parse as a finite float are returned
// unchanged, so symbolic answers like "x+1" or "\frac{1}{2}" pass through
// untouched.
func canonicalizeNumber(s string) string {
	stripped := stripThousands(s)
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
