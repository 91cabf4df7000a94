package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/schemas"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Build the dashboard summary",
	Long:  `Prints the dashboard summary: overview, category scores, main causes, key metrics and alerts.`,
	RunE:  runDashboard,
}

func init() {
	addInputFlags(dashboardCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}
	analyzer, _, err := newAnalyzer(cmd.Context(), "")
	if err != nil {
		return err
	}

	summary, err := analyzer.Summary(req)
	if err != nil {
		return err
	}

	if p := verbosePrinter(cmd); p != nil {
		p.PrintSummary(summary)
	}
	checkSchema(schemas.KindDashboardSummary, summary)
	return writeJSON(cmd, summary)
}
