package config

import (
	"fmt"
	"os"
	"strconv"

	"gridsense/domain/structure"
	"gridsense/internal"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	LogLevel internal.LogLevel
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// AnalysisConfig holds tunable scan and summarization knobs. Zero or
// missing values fall back to the engine defaults.
type AnalysisConfig struct {
	MaxScanRows          int
	MaxScanCols          int
	SampleSize           int
	EnumerationThreshold int
	Quick                bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Analysis: AnalysisConfig{
			MaxScanRows:          getEnvIntOrDefault("MAX_SCAN_ROWS", 0),
			MaxScanCols:          getEnvIntOrDefault("MAX_SCAN_COLS", 0),
			SampleSize:           getEnvIntOrDefault("SAMPLE_SIZE", 0),
			EnumerationThreshold: getEnvIntOrDefault("ENUM_THRESHOLD", 0),
			Quick:                getEnvBoolOrDefault("QUICK_SCAN", false),
		},
		LogLevel: internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ToAnalysisConfig maps the env overrides onto an engine config,
// starting from the quick or default preset.
func (c *Config) ToAnalysisConfig() structure.AnalysisConfig {
	base := structure.DefaultConfig()
	if c.Analysis.Quick {
		base = structure.QuickConfig()
	}
	if c.Analysis.MaxScanRows > 0 {
		base.MaxScanRows = c.Analysis.MaxScanRows
	}
	if c.Analysis.MaxScanCols > 0 {
		base.MaxScanCols = c.Analysis.MaxScanCols
	}
	if c.Analysis.SampleSize > 0 {
		base.SampleSize = c.Analysis.SampleSize
	}
	if c.Analysis.EnumerationThreshold > 0 {
		base.EnumerationThreshold = c.Analysis.EnumerationThreshold
	}
	return base.Normalize()
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return fmt.Errorf("server port %q is not numeric", cfg.Server.Port)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
