package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/burnout-insights/internal/dashboard"
	"github.com/jonathan/burnout-insights/internal/db"
	"github.com/jonathan/burnout-insights/internal/observability"
	"github.com/jonathan/burnout-insights/internal/pipeline"
	"github.com/jonathan/burnout-insights/internal/schemas"
	"github.com/jonathan/burnout-insights/internal/types"
)

// Input flags shared by analyze, alert, dashboard and interventions.
var (
	inUserID      int
	inProbability float64
	inPrediction  int
	inMetricsPath string
	inInputPath   string
	inOutPath     string
	inStoreURL    string
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&inUserID, "user-id", "u", 0, "User ID the analysis is for")
	cmd.Flags().Float64VarP(&inProbability, "probability", "p", 0, "Burnout probability from the classifier (clamped to [0,1])")
	cmd.Flags().IntVar(&inPrediction, "prediction", 0, "Binary prediction 0 or 1 (derived from the probability when omitted)")
	cmd.Flags().StringVarP(&inMetricsPath, "metrics", "m", "", "Path to a JSON or YAML metric snapshot")
	cmd.Flags().StringVarP(&inInputPath, "input", "i", "", "Path to a JSON request {user_id, burnout_probability, metrics}; flags override its fields")
	cmd.Flags().StringVarP(&inOutPath, "out", "o", "", "Write JSON output to this file instead of stdout")
}

func addStoreFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inStoreURL, "store", "", "Analysis store: postgres:// URL, sqlite://path or a file path (defaults to DATABASE_URL)")
}

// buildRequest assembles an AnalyzeRequest from --input and the individual flags.
func buildRequest(cmd *cobra.Command) (*types.AnalyzeRequest, error) {
	req := &types.AnalyzeRequest{}
	if inInputPath != "" {
		if err := readStructured(inInputPath, req); err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("user-id") {
		req.UserID = inUserID
	}
	if flags.Changed("probability") {
		p := inProbability
		req.BurnoutProbability = &p
	}
	if flags.Changed("prediction") {
		pred := inPrediction
		req.BurnoutPrediction = &pred
	}
	if inMetricsPath != "" {
		var metrics types.MetricSnapshot
		if err := readStructured(inMetricsPath, &metrics); err != nil {
			return nil, fmt.Errorf("failed to read metrics: %w", err)
		}
		if req.Metrics == nil {
			req.Metrics = types.MetricSnapshot{}
		}
		for k, v := range metrics {
			req.Metrics[k] = v
		}
	}

	if req.UserID == 0 {
		return nil, fmt.Errorf("--user-id is required (via flag or --input)")
	}
	if req.BurnoutProbability == nil {
		return nil, fmt.Errorf("--probability is required (via flag or --input)")
	}
	return req, nil
}

// readStructured decodes a JSON or YAML file, chosen by extension. YAML is
// converted to JSON first so the json struct tags apply to both.
func readStructured(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return fmt.Errorf("failed to convert YAML %s: %w", path, err)
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON %s: %w", path, err)
	}
	return nil
}

// storeURL returns the --store flag, falling back to the configured database URL.
func storeURL() string {
	if inStoreURL != "" {
		return inStoreURL
	}
	return appConfig.DatabaseURL
}

// newAnalyzer builds an analyzer from the resolved config. The store is optional;
// callers must Close it when non-nil.
func newAnalyzer(ctx context.Context, url string) (*pipeline.Analyzer, db.Store, error) {
	specs, err := appConfig.FactorSpecs()
	if err != nil {
		return nil, nil, err
	}

	var opts []pipeline.Option
	if specs != nil {
		opts = append(opts, pipeline.WithDashboardOptions(dashboard.WithFactors(specs)))
	}

	var store db.Store
	if url != "" {
		store, err = db.Open(ctx, url)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open analysis store: %w", err)
		}
		opts = append(opts, pipeline.WithStore(store))
	}
	return pipeline.NewAnalyzer(opts...), store, nil
}

// checkSchema logs a warning when v does not match the schema for kind.
func checkSchema(kind schemas.Kind, v any) {
	if err := schemas.ValidateArtifact(kind, v); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("output failed schema validation")
	}
}

// writeJSON writes v as indented JSON to --out or stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if inOutPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if dir := filepath.Dir(inOutPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(inOutPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info().Str("path", inOutPath).Msg("output written")
	return nil
}

// verbosePrinter returns a Printer on stderr when verbose output is enabled.
func verbosePrinter(cmd *cobra.Command) *observability.Printer {
	if !appConfig.Verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}
