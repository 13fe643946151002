package application

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-tally/infrastructure/compare"
	"github.com/ahrav/go-tally/internal/ports"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// SuiteConfig describes how a results directory maps onto benchmarks and
// evaluation modes, and which answer equivalence majority voting uses.
// The zero value is not useful; start from DefaultSuiteConfig and overlay
// a YAML file where the defaults don't fit.
type SuiteConfig struct {
	// GreedyFile is the file name of the single-sample greedy result set
	// inside each benchmark directory.
	GreedyFile string `yaml:"greedy_file" validate:"required"`

	// SamplePattern is the glob matching the N sampled result files
	// inside each benchmark directory. The match count is the K of
	// "majority@K".
	SamplePattern string `yaml:"sample_pattern" validate:"required"`

	// MajorityFile is the file name of the fused, re-judged result set
	// inside each benchmark directory.
	MajorityFile string `yaml:"majority_file" validate:"required"`

	// FillKey is the record field fill-majority overwrites.
	FillKey string `yaml:"fill_key" validate:"required"`

	// Workers bounds how many benchmarks are processed concurrently.
	Workers int `yaml:"workers" validate:"min=1,max=64"`

	// Comparator selects and configures the answer equivalence.
	Comparator ComparatorConfig `yaml:"comparator" validate:"required"`
}

// ComparatorConfig selects one of the comparators provided by the compare
// package.
type ComparatorConfig struct {
	// Type is "exact" or "fuzzy".
	Type string `yaml:"type" validate:"required,oneof=exact fuzzy"`

	// Exact configures the exact comparator; also the normalization base
	// of the fuzzy comparator.
	Exact compare.ExactConfig `yaml:"exact"`

	// FuzzyThreshold is the similarity threshold of the fuzzy comparator.
	// Ignored when Type is "exact".
	FuzzyThreshold float64 `yaml:"fuzzy_threshold" validate:"min=0.0,max=1.0"`
}

// DefaultSuiteConfig returns the configuration matching the generation
// pipeline's directory convention: output.jsonl for greedy,
// output-rs*.jsonl for samples, output-majority.jsonl for the fused set.
func DefaultSuiteConfig() SuiteConfig {
	return SuiteConfig{
		GreedyFile:    "output.jsonl",
		SamplePattern: "output-rs*.jsonl",
		MajorityFile:  "output-majority.jsonl",
		FillKey:       "predicted_answer",
		Workers:       4,
		Comparator: ComparatorConfig{
			Type:           compare.TypeExact,
			Exact:          compare.DefaultExactConfig(),
			FuzzyThreshold: compare.DefaultFuzzyConfig().Threshold,
		},
	}
}

// LoadSuiteConfig reads a YAML suite configuration, overlaying it on the
// defaults and validating the result. Unknown keys are rejected to catch
// typos early.
func LoadSuiteConfig(path string) (SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SuiteConfig{}, fmt.Errorf("read suite config: %w", err)
	}

	config := DefaultSuiteConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return SuiteConfig{}, fmt.Errorf("parse suite config %s: %w", path, err)
	}
	if err := validate.Struct(config); err != nil {
		return SuiteConfig{}, fmt.Errorf("suite config validation failed: %w", err)
	}
	return config, nil
}

// BuildComparator constructs the configured answer comparator.
func (c ComparatorConfig) BuildComparator() (ports.AnswerComparator, error) {
	switch c.Type {
	case compare.TypeExact:
		return compare.NewExact(c.Exact)
	case compare.TypeFuzzy:
		return compare.NewFuzzy(compare.FuzzyConfig{
			Threshold: c.FuzzyThreshold,
			Exact:     c.Exact,
		})
	default:
		return nil, fmt.Errorf("%w: %q", compare.ErrUnknownComparator, c.Type)
	}
}
