package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/schemas"
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Evaluate the alert rules only",
	Long:  `Prints the alert raised for the given probability and metrics, or null when none is warranted.`,
	RunE:  runAlert,
}

func init() {
	addInputFlags(alertCmd)
	rootCmd.AddCommand(alertCmd)
}

func runAlert(cmd *cobra.Command, _ []string) error {
	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}
	analyzer, _, err := newAnalyzer(cmd.Context(), "")
	if err != nil {
		return err
	}

	alert, err := analyzer.Alert(req)
	if err != nil {
		return err
	}

	if p := verbosePrinter(cmd); p != nil {
		p.PrintAlert(alert)
	}
	if alert == nil {
		log.Info().Int("user_id", req.UserID).Msg("no alert raised")
		return writeJSON(cmd, nil)
	}
	checkSchema(schemas.KindAlert, alert)
	return writeJSON(cmd, alert)
}
