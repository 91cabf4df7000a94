package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/config"
	"github.com/jonathan/burnout-insights/internal/server"
)

var tokenCallerID int

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the API server",
	Long: `Signs a token with JWT_SECRET. A token for --caller-id N may only read and analyse user N;
the default of 0 issues a service token with access to every user.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().IntVar(&tokenCallerID, "caller-id", 0, "User the token is scoped to (0 for a service token)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	if tokenCallerID < 0 {
		return fmt.Errorf("--caller-id must be non-negative")
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenCallerID)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
