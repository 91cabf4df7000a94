package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/burnout-insights/internal/config"
	"github.com/jonathan/burnout-insights/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the engines under /api/burnout. Analyses are saved when
--store or DATABASE_URL is set; bearer tokens are required when JWT_SECRET is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (default from config or PORT)")
	addStoreFlag(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := appConfig.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	jwtConfig, err := config.OptionalJWTConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}

	analyzer, store, err := newAnalyzer(cmd.Context(), storeURL())
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	srv, err := server.New(analyzer, server.Config{
		Port:          port,
		AllowedOrigin: appConfig.AllowedOrigin,
		RateLimit:     appConfig.RateLimit,
		RateBurst:     appConfig.RateBurst,
		JWT:           jwtConfig,
		Getenv:        os.Getenv,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
