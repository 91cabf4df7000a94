package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/pipeline"
	"github.com/jonathan/burnout-insights/internal/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis: alert, dashboard summary and intervention plan",
	Long: `Runs the alert, dashboard and intervention engines in order for one person and prints the
combined analysis as JSON. When a store is configured the analysis is saved; a failed save is
reported but does not fail the command.`,
	Example: `  burnout_agent analyze --user-id 7 --probability 0.82 --metrics metrics.json
  burnout_agent analyze --input request.json --store sqlite://burnout.db --out analysis.json`,
	RunE: runAnalyze,
}

func init() {
	addInputFlags(analyzeCmd)
	addStoreFlag(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	analyzer, store, err := newAnalyzer(ctx, storeURL())
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	printer := verbosePrinter(cmd)
	opts := pipeline.RunOptions{Request: req}
	if printer != nil {
		opts.OnProgress = func(ev pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  [%s] %s\n", ev.Step, ev.Message)
		}
	}

	result, err := analyzer.Run(ctx, opts)
	if err != nil {
		return err
	}

	if printer != nil {
		printer.PrintAnalysis(result.Analysis)
	}
	checkSchema(schemas.KindAnalysis, result.Analysis)
	return writeJSON(cmd, result.Analysis)
}
