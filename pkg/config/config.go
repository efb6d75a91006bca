// Package config loads and validates the chunkmap configuration.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (CHUNKMAP_*)
//  2. Configuration file (YAML or TOML)
//  3. Default values
//
// Locator configuration follows a type/section pattern: the Locator.Type
// field selects the transport implementation and only the matching
// type-specific section (e.g. locator.http) is decoded. New transports add
// a section and a factory case without touching existing configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete chunkmap configuration.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Locator selects and tunes the chunk-map transport
	Locator LocatorConfig `mapstructure:"locator"`

	// Metrics controls Prometheus instrumentation
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig controls Prometheus instrumentation.
type MetricsConfig struct {
	// Enabled turns on the process metrics registry and locator
	// instrumentation.
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
}

// LocatorConfig specifies the chunk-map transport configuration.
//
// The Type field determines which locator implementation is used; only the
// corresponding type-specific section is decoded.
type LocatorConfig struct {
	// Type specifies which locator implementation to use.
	// Valid values: http
	Type string `mapstructure:"type" validate:"required,oneof=http"`

	// HTTP contains HTTP-locator configuration.
	// Only used when Type = "http".
	HTTP map[string]any `mapstructure:"http"`
}

// Load reads, defaults and validates the configuration.
//
// configPath may be empty, in which case the default location
// ($XDG_CONFIG_HOME/chunkmap or ~/.config/chunkmap) is searched. A missing
// config file is not an error; defaults and environment variables apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures environment variable and config file handling.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the CHUNKMAP_ prefix and underscores,
	// e.g. CHUNKMAP_LOGGING_LEVEL=DEBUG.
	v.SetEnvPrefix("CHUNKMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config file is acceptable; defaults apply.
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to the
// current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "chunkmap")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "chunkmap")
}
