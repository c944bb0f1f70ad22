// Package config holds the run configuration for the extract tools.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bioextract/dbgex/internal/dbgap"
)

// Config is the yaml-backed configuration. Command-line flags override
// individual fields after loading.
type Config struct {
	// BaseURL is the sample status endpoint.
	BaseURL string `yaml:"base_url"`
	// RequestTimeoutSeconds bounds each registry request. Zero means no
	// timeout beyond the transport defaults.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	// ExpandSRADetails emits sra_data_details as a JSON object instead
	// of the pipe-delimited text rendering.
	ExpandSRADetails bool `yaml:"expand_sra_details"`
	// OutputPrefix names generated extract and log files when no
	// explicit output filename is given.
	OutputPrefix string `yaml:"output_prefix"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:               dbgap.DefaultBaseURL,
		RequestTimeoutSeconds: 60,
		ExpandSRADetails:      false,
		OutputPrefix:          "extract",
		LogLevel:              "debug",
	}
}

// Load reads a config file over the defaults. A missing file is not an
// error; the defaults are returned.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// RequestTimeout returns the request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SlogLevel maps the configured log level onto slog. Unknown values
// fall back to debug, matching the tool's chatty default.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
