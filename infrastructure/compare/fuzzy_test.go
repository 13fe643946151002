package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFuzzy_ValidatesThreshold(t *testing.T) {
	config := DefaultFuzzyConfig()
	config.Threshold = 1.5

	_, err := NewFuzzy(config)
	assert.Error(t, err)
}

func TestFuzzy_Equivalent(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		a, b      string
		want      bool
	}{
		{
			name:      "identical after normalization",
			threshold: 0.9,
			a:         "5.0",
			b:         " 5 ",
			want:      true,
		},
		{
			name:      "single edit within threshold",
			threshold: 0.8,
			a:         "therefore 42",
			b:         "therefore 42.",
			want:      true,
		},
		{
			name:      "distinct answers below threshold",
			threshold: 0.9,
			a:         "42",
			b:         "17",
			want:      false,
		},
		{
			name:      "strict threshold rejects near match",
			threshold: 1.0,
			a:         "abcdefgh",
			b:         "abcdefgx",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultFuzzyConfig()
			config.Threshold = tt.threshold
			comparator, err := NewFuzzy(config)
			require.NoError(t, err)

			assert.Equal(t, tt.want, comparator.Equivalent(tt.a, tt.b))
			assert.Equal(t, tt.want, comparator.Equivalent(tt.b, tt.a), "equivalence must be symmetric")
		})
	}
}

func TestFuzzy_NormalizeDelegatesToExactRules(t *testing.T) {
	comparator, err := NewFuzzy(DefaultFuzzyConfig())
	require.NoError(t, err)

	assert.Equal(t, "1234.5", comparator.Normalize(" 1,234.50 "))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, similarity("ab", "xy"), 1e-9)
	assert.InDelta(t, 0.75, similarity("abcd", "abcx"), 1e-9)
}
