// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/burnout-insights/internal/ranking"
	"github.com/jonathan/burnout-insights/internal/types"
)

// Default values applied by MergeWithDefaults.
const (
	DefaultPort             = 8080
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultBatchConcurrency = 4
	DefaultRateLimit        = 10.0
	DefaultRateBurst        = 20
	DefaultAllowedOrigin    = "*"
)

// FactorConfig describes one causal factor in a config file.
type FactorConfig struct {
	Name      string  `json:"name" yaml:"name"`
	Metric    string  `json:"metric" yaml:"metric"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Weight    float64 `json:"weight" yaml:"weight"`
	Direction string  `json:"direction" yaml:"direction"` // higher_is_worse or lower_is_worse
}

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values come from the environment, CLI flags or defaults.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // postgres:// URL or SQLite path

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // json or console

	// Server
	Port          int     `json:"port,omitempty" yaml:"port,omitempty"`
	AllowedOrigin string  `json:"allowed_origin,omitempty" yaml:"allowed_origin,omitempty"` // CORS origin
	RateLimit     float64 `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`         // requests per second per client
	RateBurst     int     `json:"rate_burst,omitempty" yaml:"rate_burst,omitempty"`

	// Engines
	BatchConcurrency int            `json:"batch_concurrency,omitempty" yaml:"batch_concurrency,omitempty"`
	Factors          []FactorConfig `json:"factors,omitempty" yaml:"factors,omitempty"` // replaces the default causal factor table

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with DATABASE_URL, LOG_LEVEL, LOG_FORMAT and PORT when set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit' must be non-negative")
	}
	if c.RateBurst < 0 {
		return fmt.Errorf("config error: 'rate_burst' must be non-negative")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}

	if _, err := c.FactorSpecs(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// FactorSpecs converts the configured factor table. It returns nil when no
// factors are configured so callers keep the default table.
func (c *Config) FactorSpecs() ([]ranking.FactorSpec, error) {
	if len(c.Factors) == 0 {
		return nil, nil
	}

	specs := make([]ranking.FactorSpec, 0, len(c.Factors))
	for i, f := range c.Factors {
		if f.Name == "" {
			return nil, fmt.Errorf("factor %d: 'name' is required", i)
		}
		if _, ok := types.DefaultMetricValue(types.MetricKey(f.Metric)); !ok {
			return nil, fmt.Errorf("factor %q: unknown metric %q", f.Name, f.Metric)
		}
		if f.Weight <= 0 {
			return nil, fmt.Errorf("factor %q: 'weight' must be positive", f.Name)
		}
		if f.Threshold == 0 {
			return nil, fmt.Errorf("factor %q: 'threshold' must be non-zero", f.Name)
		}
		dir, err := ranking.ParseDirection(f.Direction)
		if err != nil {
			return nil, fmt.Errorf("factor %q: %w", f.Name, err)
		}
		specs = append(specs, ranking.FactorSpec{
			Name:      f.Name,
			Metric:    types.MetricKey(f.Metric),
			Threshold: f.Threshold,
			Weight:    f.Weight,
			Direction: dir,
		})
	}
	return specs, nil
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
		Port:             DefaultPort,
		AllowedOrigin:    DefaultAllowedOrigin,
		RateLimit:        DefaultRateLimit,
		RateBurst:        DefaultRateBurst,
		BatchConcurrency: DefaultBatchConcurrency,
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.AllowedOrigin == "" {
		result.AllowedOrigin = defaults.AllowedOrigin
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}
	if result.RateBurst == 0 {
		result.RateBurst = defaults.RateBurst
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}

	if len(result.Factors) == 0 {
		result.Factors = defaults.Factors
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Load reads the optional config file, applies the environment, fills defaults
// and validates the result. An empty path skips the file.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
