package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/db"
	"github.com/jonathan/burnout-insights/internal/observability"
)

var (
	historyUserID int
	historyLimit  int
	historyJSON   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analyses, newest first",
	Long:  `Lists analyses saved by analyze, batch or the API server. Without --user-id every user is listed.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyUserID, "user-id", "u", 0, "Only list analyses for this user")
	historyCmd.Flags().IntVar(&historyLimit, "limit", db.DefaultListLimit, "Maximum number of analyses to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print records as JSON")
	addStoreFlag(historyCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	url := storeURL()
	if url == "" {
		return fmt.Errorf("--store or DATABASE_URL is required")
	}
	store, err := db.Open(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to open analysis store: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListAnalyses(ctx, historyUserID, historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		return writeJSON(cmd, records)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRecords(records)
	return nil
}
