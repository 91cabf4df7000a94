package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/schemas"
	"github.com/jonathan/burnout-insights/internal/types"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyse many people concurrently",
	Long: `Reads a JSON or YAML list of requests from --input and analyses them concurrently.
Results keep the input order. The first invalid request aborts the batch.`,
	Example: `  burnout_agent batch --input team.json --concurrency 8 --store sqlite://burnout.db`,
	RunE:    runBatch,
}

// batchItem is one entry of the batch output.
type batchItem struct {
	RecordID string          `json:"record_id,omitempty"`
	Analysis *types.Analysis `json:"analysis"`
}

func init() {
	batchCmd.Flags().StringVarP(&inInputPath, "input", "i", "", "Path to a JSON or YAML list of requests (required)")
	batchCmd.Flags().StringVarP(&inOutPath, "out", "o", "", "Write JSON output to this file instead of stdout")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Maximum concurrent analyses (default from config)")
	addStoreFlag(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if inInputPath == "" {
		return fmt.Errorf("--input is required")
	}
	var reqs []*types.AnalyzeRequest
	if err := readStructured(inInputPath, &reqs); err != nil {
		return fmt.Errorf("failed to read batch input: %w", err)
	}
	if len(reqs) == 0 {
		return fmt.Errorf("batch input %s contains no requests", inInputPath)
	}

	concurrency := appConfig.BatchConcurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = batchConcurrency
	}

	analyzer, store, err := newAnalyzer(ctx, storeURL())
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	results, err := analyzer.RunBatch(ctx, reqs, concurrency)
	if err != nil {
		return err
	}

	printer := verbosePrinter(cmd)
	items := make([]batchItem, len(results))
	alerted := 0
	for i, res := range results {
		items[i] = batchItem{Analysis: res.Analysis}
		if res.RecordID != uuid.Nil {
			items[i].RecordID = res.RecordID.String()
		}
		if res.Analysis.Alert != nil {
			alerted++
		}
		checkSchema(schemas.KindAnalysis, res.Analysis)
		if printer != nil {
			printer.PrintAlert(res.Analysis.Alert)
		}
	}

	log.Info().
		Int("requests", len(reqs)).
		Int("alerts", alerted).
		Int("concurrency", concurrency).
		Msg("batch complete")
	return writeJSON(cmd, items)
}
