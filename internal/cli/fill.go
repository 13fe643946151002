package cli

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ahrav/go-tally/infrastructure/compare"
	"github.com/ahrav/go-tally/infrastructure/jsonl"
	"github.com/ahrav/go-tally/internal/application"
	"github.com/ahrav/go-tally/internal/domain"
)

// fillCmd represents the fill-majority command
var fillCmd = &cobra.Command{
	Use:   "fill-majority",
	Short: "Fuse sampled result files into a majority-voted record set",
	Long: `Fuse N parallel-sampled result files into one record set whose fill key
holds the majority-voted predicted answer per problem.

The input files must be positionally aligned: record i of every file is a
solution attempt for the same problem. Source files are left untouched;
the fused set is written to --output, ready for a judge pass.

Examples:
  tally fill-majority --input "results/gsm8k/output-rs*.jsonl" \
      --output results/gsm8k/output-majority.jsonl
  tally fill-majority --input "results/math/output-rs*.jsonl" \
      --output results/math/output-majority.jsonl --comparator fuzzy`,
	Args: cobra.NoArgs,
	RunE: runFill,
}

var (
	fillInput      string
	fillKey        string
	fillOutput     string
	fillComparator string
	fillThreshold  float64
)

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVar(&fillInput, "input", "", "glob matching the sampled result files (supports **)")
	fillCmd.Flags().StringVar(&fillKey, "fill-key", "predicted_answer", "record field to overwrite with the majority answer")
	fillCmd.Flags().StringVar(&fillOutput, "output", "", "path of the fused record set")
	fillCmd.Flags().StringVar(&fillComparator, "comparator", compare.TypeExact, "answer equivalence (exact, fuzzy)")
	fillCmd.Flags().Float64Var(&fillThreshold, "fuzzy-threshold", compare.DefaultFuzzyConfig().Threshold, "similarity threshold for the fuzzy comparator")
	_ = fillCmd.MarkFlagRequired("input")
	_ = fillCmd.MarkFlagRequired("output")
}

func runFill(cmd *cobra.Command, args []string) error {
	files, err := doublestar.FilepathGlob(fillInput)
	if err != nil {
		return fmt.Errorf("expand input pattern: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNoInputFiles, fillInput)
	}
	// Glob order is filesystem-dependent; sorting keeps votes, and
	// therefore tie-breaks, deterministic.
	sort.Strings(files)

	comparatorConfig := application.ComparatorConfig{
		Type:           fillComparator,
		Exact:          compare.DefaultExactConfig(),
		FuzzyThreshold: fillThreshold,
	}
	comparator, err := comparatorConfig.BuildComparator()
	if err != nil {
		return err
	}

	store := jsonl.NewStore()
	aggregator, err := application.NewMajorityAggregator(comparator, store, log.Logger)
	if err != nil {
		return err
	}

	result, err := aggregator.Aggregate(cmd.Context(), files, fillKey)
	if err != nil {
		return err
	}
	if err := store.WriteResultSet(fillOutput, result.Records); err != nil {
		return err
	}

	log.Info().
		Str("output", fillOutput).
		Int("problems", len(result.Records)).
		Int("samples", result.Samples).
		Msg("wrote majority-voted record set")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Fused %d samples into %s (%d records, majority@%d)\n",
			result.Samples, fillOutput, len(result.Records), result.Samples)
	}
	return nil
}
