package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExact_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		config ExactConfig
		input  string
		want   string
	}{
		{
			name:   "trims and folds by default",
			config: DefaultExactConfig(),
			input:  "  The Answer  ",
			want:   "the answer",
		},
		{
			name:   "canonicalizes decimals",
			config: DefaultExactConfig(),
			input:  "5.0",
			want:   "5",
		},
		{
			name:   "strips thousands separators",
			config: DefaultExactConfig(),
			input:  "1,234.50",
			want:   "1234.5",
		},
		{
			name:   "leaves symbolic answers alone",
			config: DefaultExactConfig(),
			input:  `\frac{1}{2}`,
			want:   `\frac{1}{2}`,
		},
		{
			name: "case sensitive mode preserves case",
			config: ExactConfig{
				CaseSensitive:       true,
				TrimWhitespace:      true,
				CanonicalizeNumbers: true,
			},
			input: "The Answer",
			want:  "The Answer",
		},
		{
			name: "numeric canonicalization disabled",
			config: ExactConfig{
				CaseSensitive:       false,
				TrimWhitespace:      true,
				CanonicalizeNumbers: false,
			},
			input: "5.0",
			want:  "5.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparator, err := NewExact(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, comparator.Normalize(tt.input))
		})
	}
}

func TestExact_NormalizeIsIdempotent(t *testing.T) {
	comparator, err := NewExact(DefaultExactConfig())
	require.NoError(t, err)

	for _, input := range []string{" 5.0 ", "1,234.50", "The Answer", `x^2+1`} {
		once := comparator.Normalize(input)
		assert.Equal(t, once, comparator.Normalize(once), "input %q", input)
	}
}

func TestExact_Equivalent(t *testing.T) {
	comparator, err := NewExact(DefaultExactConfig())
	require.NoError(t, err)

	tests := []struct {
		a, b string
		want bool
	}{
		{"5", "5.0", true},
		{"5", " 5 ", true},
		{"1,234.50", "1234.5", true},
		{"The Answer", "the answer", true},
		{"5", "6", false},
		{"x+1", "x+2", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, comparator.Equivalent(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.want, comparator.Equivalent(tt.b, tt.a), "equivalence must be symmetric")
	}
}

func TestStripThousands(t *testing.T) {
	assert.Equal(t, "1234.50", stripThousands("1,234.50"))
	assert.Equal(t, "-12345", stripThousands("-12,345"))
	assert.Equal(t, "a,b", stripThousands("a,b"), "non-numeric strings keep their commas")
	assert.Equal(t, "5", stripThousands("5"))
}
