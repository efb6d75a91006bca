package config

import "strings"

// ApplyDefaults sets default values for any unspecified configuration
// fields. Called after loading from file and environment so explicit values
// are preserved and only zero values are replaced.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyLocatorDefaults(&cfg.Locator)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize for consistent internal representation.
	cfg.Level = strings.ToUpper(cfg.Level)
}

// applyLocatorDefaults sets locator defaults.
//
// Transport tuning defaults (connect timeout, connection cap) live with the
// HTTP locator implementation itself; only the type selection is defaulted
// here.
func applyLocatorDefaults(cfg *LocatorConfig) {
	if cfg.Type == "" {
		cfg.Type = "http"
	}
	if cfg.HTTP == nil {
		cfg.HTTP = make(map[string]any)
	}
}
