// Package main provides the burnout_agent CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/config"
	"github.com/jonathan/burnout-insights/internal/observability"
)

var (
	rootConfigPath string
	rootLogLevel   string
	rootLogFormat  string
	rootVerbose    bool

	// appConfig is resolved before every subcommand runs.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "burnout_agent",
	Short: "Burnout alerts, dashboards and intervention plans",
	Long: `burnout_agent turns a burnout probability and a snapshot of wellbeing metrics into
an alert, a dashboard summary and a personalised intervention plan.

Configuration is read from --config (JSON or YAML), then the environment (.env is loaded
when present), then command-line flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format: json or console (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print formatted output and debug logs")
}

// loadAppConfig merges the config file, environment and root flags, then sets up logging.
func loadAppConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootConfigPath, os.Getenv)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	} else if rootVerbose {
		cfg.LogLevel = "debug"
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = rootLogFormat
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := observability.ConfigureLogging(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
