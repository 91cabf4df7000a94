package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/observability"
)

var diffExitCode bool

var diffCmd = &cobra.Command{
	Use:   "diff <from.json> <to.json>",
	Short: "Show a unified diff of two analyses",
	Long: `Compares two analysis (or single artifact) JSON files. Fields that change on every run,
such as alert IDs and timestamps, are ignored.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "Fail when the files differ")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	from, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	to, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	diff, err := observability.DiffAnalyses(args[0], from, args[1], to)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if diff == "" {
		_, _ = fmt.Fprintln(out, "No differences")
		return nil
	}
	_, _ = fmt.Fprint(out, diff)
	if diffExitCode {
		return fmt.Errorf("analyses differ")
	}
	return nil
}
