package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults used when no configuration is supplied.
const (
	DefaultRate  = 10.0
	DefaultBurst = 20
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig builds the limiter configuration from a default rate and burst,
// then applies RATE_LIMIT_* environment overrides.
func LoadConfig(getenv func(string) string, defaultRate float64, defaultBurst int) *Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	if defaultRate <= 0 {
		defaultRate = DefaultRate
	}
	if defaultBurst <= 0 {
		defaultBurst = DefaultBurst
	}

	enabled := getEnvBool(getenv, "RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultRate:     getEnvFloat(getenv, "RATE_LIMIT_RATE", defaultRate),
		DefaultBurst:    getEnvInt(getenv, "RATE_LIMIT_BURST", defaultBurst),
		CleanupInterval: getEnvDuration(getenv, "RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTimeout:     time.Hour,
		Whitelist:       parseIPList(getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Full analyses run three engines and may write to the store
		{Path: "/api/burnout/analyze", Method: "POST", Limit: 120, Window: time.Minute, Burst: 10},

		// Single-artifact endpoints
		{Path: "/api/burnout/alerts", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/api/burnout/dashboard", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/api/burnout/interventions", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},

		// Reads fall through to the default rate; health is unlimited in the matcher
	}
}

func getEnvInt(getenv func(string) string, key string, defaultValue int) int {
	if value := getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(getenv func(string) string, key string, defaultValue float64) float64 {
	if value := getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(getenv func(string) string, key string, defaultValue bool) bool {
	if value := getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(getenv func(string) string, key string, defaultValue time.Duration) time.Duration {
	if value := getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}
