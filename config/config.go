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

	"github.com/kilianp07/nhltiers/core/factory"
	"github.com/kilianp07/nhltiers/core/metrics"
	"github.com/kilianp07/nhltiers/infra/logger"
	"github.com/kilianp07/nhltiers/infra/monitoring"
)

type Config struct {
	Roster  RosterConfig         `json:"roster"`
	History factory.ModuleConfig `json:"history"`
	Metrics metrics.Config       `json:"metrics"`
	HTTP    HTTPConfig           `json:"http"`
	Logging logger.Config        `json:"logging"`
	Sentry  monitoring.Config    `json:"sentry"`
}

// Load reads the configuration file at path, applies K_ environment overrides
// and fills defaults. An empty path loads defaults and environment only.
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
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
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

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	setHistoryDefaults(&c.History)
	c.HTTP.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Roster.Validate(); err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	if c.History.Type == "" {
		return fmt.Errorf("history: type is required")
	}
	for i, s := range c.Metrics.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics: sink %d has no type", i)
		}
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if r := c.Sentry.TracesSampleRate; r < 0 || r > 1 {
		return fmt.Errorf("sentry: traces_sample_rate must be within [0,1], got %v", r)
	}
	return nil
}

// DefaultHistoryPath is where the jsonfile history backend writes by default.
const DefaultHistoryPath = "prediction_history.json"

func setHistoryDefaults(m *factory.ModuleConfig) {
	if m.Type == "" {
		m.Type = "jsonfile"
	}
	if m.Conf == nil {
		m.Conf = map[string]any{}
	}
	if m.Type == "jsonfile" {
		if p, _ := m.Conf["path"].(string); p == "" {
			m.Conf["path"] = DefaultHistoryPath
		}
	}
}
