package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/marmos91/chunkmap/pkg/locator"
	"github.com/marmos91/chunkmap/pkg/metrics"
)

// NewLocator creates the chunk locator selected by the configuration.
func NewLocator(cfg *Config) (locator.ChunkLocator, error) {
	var locMetrics locator.Metrics
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		locMetrics = metrics.NewLocatorMetrics()
	}

	switch cfg.Locator.Type {
	case "http":
		return newHTTPLocator(cfg.Locator.HTTP, locMetrics)
	default:
		return nil, fmt.Errorf("unknown locator type %q", cfg.Locator.Type)
	}
}

// newHTTPLocator decodes the locator.http section and builds the HTTP
// chunk locator from it.
func newHTTPLocator(options map[string]any, locMetrics locator.Metrics) (locator.ChunkLocator, error) {
	type httpLocatorConfig struct {
		Endpoint              string        `mapstructure:"endpoint"`
		ConnectTimeout        time.Duration `mapstructure:"connect_timeout"`
		MaxConnsPerHost       int           `mapstructure:"max_conns_per_host"`
		ResponseHeaderTimeout time.Duration `mapstructure:"response_header_timeout"`
		RequestsPerSecond     uint          `mapstructure:"requests_per_second"`
		Burst                 uint          `mapstructure:"burst"`
	}

	var locCfg httpLocatorConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &locCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP locator config decoder: %w", err)
	}
	if err := decoder.Decode(options); err != nil {
		return nil, fmt.Errorf("failed to decode HTTP locator config: %w", err)
	}

	if locCfg.Endpoint == "" {
		return nil, fmt.Errorf("HTTP locator: endpoint is required")
	}

	return locator.NewHTTPChunkLocator(locCfg.Endpoint, locator.HTTPOptions{
		ConnectTimeout:        locCfg.ConnectTimeout,
		MaxConnsPerHost:       locCfg.MaxConnsPerHost,
		ResponseHeaderTimeout: locCfg.ResponseHeaderTimeout,
		RequestsPerSecond:     locCfg.RequestsPerSecond,
		Burst:                 locCfg.Burst,
		Metrics:               locMetrics,
	})
}
