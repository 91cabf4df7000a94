package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/schemas"
	"github.com/jonathan/burnout-insights/internal/types"
)

var interventionsCausesPath string

var interventionsCmd = &cobra.Command{
	Use:   "interventions",
	Short: "Build a personalised intervention plan",
	Long: `Prints the intervention plan. Main causes are ranked from the metrics unless --causes
supplies them (a JSON or YAML list of at most five causal factors).`,
	RunE: runInterventions,
}

func init() {
	addInputFlags(interventionsCmd)
	interventionsCmd.Flags().StringVar(&interventionsCausesPath, "causes", "", "Path to a JSON or YAML list of main causes to plan for")
	rootCmd.AddCommand(interventionsCmd)
}

func runInterventions(cmd *cobra.Command, _ []string) error {
	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	ireq := &types.InterventionsRequest{AnalyzeRequest: *req}
	if interventionsCausesPath != "" {
		if err := readStructured(interventionsCausesPath, &ireq.MainCauses); err != nil {
			return fmt.Errorf("failed to read causes: %w", err)
		}
	}

	analyzer, _, err := newAnalyzer(cmd.Context(), "")
	if err != nil {
		return err
	}
	plan, err := analyzer.PlanInterventions(ireq)
	if err != nil {
		return err
	}

	if p := verbosePrinter(cmd); p != nil {
		p.PrintPlan(plan)
	}
	checkSchema(schemas.KindInterventionPlan, plan)
	return writeJSON(cmd, plan)
}
