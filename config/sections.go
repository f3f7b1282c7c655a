package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RosterConfig selects the player dataset.
type RosterConfig struct {
	// Path to a .csv or .json roster. Empty uses the embedded dataset.
	Path string `json:"path"`
	// MockSalaries fills missing salaries with generated values.
	MockSalaries bool `json:"mock_salaries"`
	// SalarySeed seeds the salary generator; zero picks a random seed.
	SalarySeed uint64 `json:"salary_seed"`
}

// Validate checks the roster file extension.
func (c RosterConfig) Validate() error {
	if c.Path == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".csv", ".json":
		return nil
	default:
		return fmt.Errorf("unsupported roster format: %s", c.Path)
	}
}

// HTTPConfig configures the player API server.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks mandatory fields.
func (c HTTPConfig) Validate() error {
	if !strings.Contains(c.Addr, ":") {
		return fmt.Errorf("addr %q must be host:port", c.Addr)
	}
	return nil
}
