// Package config provides runtime configuration from environment variables
// and an optional .env file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the client runtime configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Catalog CatalogConfig
	Search  SearchConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // "pretty" or "json"
}

// CatalogConfig holds remote catalog API configuration.
type CatalogConfig struct {
	BaseURL string        // Catalog API base URL (required)
	Timeout time.Duration // Per-request timeout (default: 30s)
	RPS     float64       // Requests per second per endpoint group (default: 10)
	Burst   int           // Token bucket burst per endpoint group (default: 20)
}

// SearchConfig holds debounced search configuration.
type SearchConfig struct {
	Quiescence   time.Duration // Input-settle interval before a request fires (default: 450ms)
	SuggestLimit int           // Max local type-ahead suggestions (default: 5)
}

// Load builds configuration with precedence:
// 1. Environment variables.
// 2. .env file (SHELFMARK_ENV_FILE, default ".env").
// 3. Default values.
func Load() (*Config, error) {
	envFile := getConfigValue("SHELFMARK_ENV_FILE", ".env")

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue("SHELFMARK_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue("SHELFMARK_LOG_LEVEL", "info"),
			Format: getConfigValue("SHELFMARK_LOG_FORMAT", "pretty"),
		},
		Catalog: CatalogConfig{
			BaseURL: getConfigValue("SHELFMARK_API_URL", ""),
			RPS:     getFloatConfigValue("SHELFMARK_API_RPS", 10),
			Burst:   getIntConfigValue("SHELFMARK_API_BURST", 20),
		},
		Search: SearchConfig{
			SuggestLimit: getIntConfigValue("SHELFMARK_SUGGEST_LIMIT", 5),
		},
	}

	timeout, err := getDurationConfigValue("SHELFMARK_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Catalog.Timeout = timeout

	quiescence, err := getDurationConfigValue("SHELFMARK_SEARCH_DEBOUNCE", 450*time.Millisecond)
	if err != nil {
		return nil, err
	}
	cfg.Search.Quiescence = quiescence

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	validFormats := map[string]bool{
		"pretty": true,
		"json":   true,
	}
	if !validFormats[strings.ToLower(c.Logger.Format)] {
		return fmt.Errorf("invalid log format: %s (must be pretty or json)", c.Logger.Format)
	}

	if c.Catalog.BaseURL == "" {
		return errors.New("SHELFMARK_API_URL is required")
	}
	if !strings.HasPrefix(c.Catalog.BaseURL, "http://") && !strings.HasPrefix(c.Catalog.BaseURL, "https://") {
		return fmt.Errorf("invalid catalog base URL: %s", c.Catalog.BaseURL)
	}

	if c.Catalog.RPS <= 0 {
		return fmt.Errorf("catalog RPS must be positive, got %g", c.Catalog.RPS)
	}
	if c.Catalog.Burst <= 0 {
		return fmt.Errorf("catalog burst must be positive, got %d", c.Catalog.Burst)
	}
	if c.Search.Quiescence <= 0 {
		return errors.New("search debounce interval must be positive")
	}

	return nil
}

// getConfigValue returns the env var value or the default.
func getConfigValue(envKey, defaultValue string) string {
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from an env var, or the default.
func getIntConfigValue(envKey string, defaultValue int) int {
	strValue := getConfigValue(envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from an env var, or the default.
func getFloatConfigValue(envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// getDurationConfigValue returns a duration from an env var, or the default.
// Unlike the int/float helpers, a malformed duration is an error rather than
// a silent fallback.
func getDurationConfigValue(envKey string, defaultValue time.Duration) (time.Duration, error) {
	strValue := getConfigValue(envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
