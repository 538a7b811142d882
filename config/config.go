package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kilianp07/distalg/core/factory"
	"github.com/kilianp07/distalg/core/metrics"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables overriding file values. Nested keys
// are separated by a double underscore: DA_LOGGING__LEVEL=debug.
const EnvPrefix = "DA_"

type Config struct {
	Logging    LoggingConfig    `json:"logging"`
	Metrics    metrics.Config   `json:"metrics"`
	Monitoring MonitoringConfig `json:"monitoring"`
	// History selects the run-history store. An empty type disables it.
	History   factory.ModuleConfig `json:"history"`
	Scenarios []Scenario           `json:"scenarios"`
}

// Load reads the configuration at path, applies environment overrides and
// defaults, then validates the result. An empty path loads the environment
// only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
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
	}
	// Optional environment overrides
	prefix := strings.ToLower(EnvPrefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), prefix)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	for i := range c.Scenarios {
		c.Scenarios[i].SetDefaults()
	}
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if err := c.Monitoring.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("monitoring: %w", err))
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("scenario %d: %w", i, err))
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("scenario %d: duplicate name %q", i, s.Name))
		}
		seen[s.Name] = true
	}
	return errors.Join(errs...)
}
