package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level tally.yaml configuration. Environment
// variables with the TALLY_ prefix override file values.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Reports  ReportsConfig  `yaml:"reports"`
	Server   ServerConfig   `yaml:"server"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name     string `yaml:"name" envconfig:"TALLY_BUSINESS_NAME"`
	Currency string `yaml:"currency" envconfig:"TALLY_CURRENCY"`
}

// ReportsConfig controls report defaults.
type ReportsConfig struct {
	// CashFlowMonths is the default cash-flow projection horizon.
	CashFlowMonths int `yaml:"cash_flow_months" envconfig:"TALLY_CASH_FLOW_MONTHS"`
	// CashFlowOpening seeds the projection with pre-window history.
	CashFlowOpening bool `yaml:"cash_flow_opening" envconfig:"TALLY_CASH_FLOW_OPENING"`
}

// ServerConfig controls the report HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr" envconfig:"TALLY_ADDR"`
}

// Load reads a tally.yaml file from disk and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new set of books.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "USD",
		},
		Reports: ReportsConfig{
			CashFlowMonths:  12,
			CashFlowOpening: true,
		},
		Server: ServerConfig{
			Addr: ":8473",
		},
	}
}
