package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/schemas"
)

var validateKind string

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate a JSON artifact against its embedded schema",
	Long:  `Checks an alert, summary, interventions or analysis document against the bundled JSON Schema.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", string(schemas.KindAnalysis), "Artifact kind: alert, summary, interventions or analysis")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	kind, err := schemas.ParseKind(validateKind)
	if err != nil {
		return err
	}

	if err := schemas.ValidateFile(kind, args[0]); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), ve.Error())
			return fmt.Errorf("%s is not a valid %s (%d errors)", args[0], kind, len(ve.Errors))
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is a valid %s\n", args[0], kind)
	return nil
}
