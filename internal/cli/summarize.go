package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ahrav/go-tally/infrastructure/jsonl"
	"github.com/ahrav/go-tally/infrastructure/metrics"
	"github.com/ahrav/go-tally/internal/application"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize <results-dir>",
	Short: "Summarize evaluation results into per-benchmark tables",
	Long: `Summarize the symbolic and judge correctness of every benchmark under a
results directory.

Each benchmark subdirectory contributes one table block with a row per
evaluation mode (greedy, majority@K). A benchmark that fails to parse is
reported and skipped; the remaining benchmarks are still summarized.

Examples:
  tally summarize results/
  tally summarize results/ --config tally.yaml --metrics-file /var/lib/node_exporter/tally.prom`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

var (
	summarizeConfig  string
	summarizeMetrics string
	summarizeWorkers int
)

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringVar(&summarizeConfig, "config", "", "suite config file overriding the default directory conventions")
	summarizeCmd.Flags().StringVar(&summarizeMetrics, "metrics-file", "", "write run metrics to this file in Prometheus text format")
	summarizeCmd.Flags().IntVar(&summarizeWorkers, "workers", 0, "benchmarks processed concurrently (0 = config default)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	config := application.DefaultSuiteConfig()
	if summarizeConfig != "" {
		loaded, err := application.LoadSuiteConfig(summarizeConfig)
		if err != nil {
			return err
		}
		config = loaded
	}
	if summarizeWorkers > 0 {
		config.Workers = summarizeWorkers
	}

	collector := metrics.NewPrometheusMetrics()
	runner, err := application.NewSuiteRunner(config, jsonl.NewStore(), collector, log.Logger)
	if err != nil {
		return err
	}

	report, err := runner.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Summary)
	for _, failure := range report.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "benchmark %s failed: %v\n", failure.Benchmark, failure.Err)
	}

	if summarizeMetrics != "" {
		if err := collector.WriteTextfile(summarizeMetrics); err != nil {
			return err
		}
	}

	if n := len(report.Failures); n > 0 {
		return fmt.Errorf("%d benchmark(s) failed", n)
	}
	return nil
}
