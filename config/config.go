package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lastmile-sim/courierenv/core/enrich"
	"github.com/lastmile-sim/courierenv/core/snapshot"
	"github.com/lastmile-sim/courierenv/metrics"
)

// Config is the full service configuration.
type Config struct {
	Datasets DatasetsConfig  `json:"datasets"`
	Features enrich.Config   `json:"features"`
	Snapshot snapshot.Config `json:"snapshot"`
	Metrics  metrics.Config  `json:"metrics"`
	Logging  LoggingConfig   `json:"logging"`
}

// DatasetsConfig locates the four raw CSV exports.
type DatasetsConfig struct {
	Waybills          string `json:"waybills"`
	CourierWaves      string `json:"courier_waves"`
	DispatchingOrders string `json:"dispatching_orders"`
	DispatchWaybills  string `json:"dispatch_waybills"`
}

// Validate checks that every dataset path is set.
func (c DatasetsConfig) Validate() error {
	for _, p := range []struct{ name, path string }{
		{"waybills", c.Waybills},
		{"courier_waves", c.CourierWaves},
		{"dispatching_orders", c.DispatchingOrders},
		{"dispatch_waybills", c.DispatchWaybills},
	} {
		if p.path == "" {
			return fmt.Errorf("datasets.%s path is required", p.name)
		}
	}
	return nil
}

// Load reads the configuration from path. YAML and JSON are supported,
// selected by extension. Environment variables prefixed with LMD_ override
// file values, with __ separating nesting levels.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("LMD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "lmd_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Features.SetDefaults()
	cfg.Snapshot.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Datasets.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Features.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Snapshot.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
