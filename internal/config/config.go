// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
	"checkout-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// RulesFile is the default rule file (.hcl, .yaml, .yml, .json)
	RulesFile string `json:"rules_file"`

	// Strict validates rules before building the rule set
	Strict bool `json:"strict"`

	// Currency is the display currency
	Currency types.Currency `json:"currency"`

	// MinorUnits is the number of decimal places between minor and major units
	MinorUnits int32 `json:"minor_units"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowQuantities includes per-product quantities in the summary
	ShowQuantities bool `json:"show_quantities"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			RulesFile:  "rules.hcl",
			Strict:     false,
			Currency:   types.CurrencyGBP,
			MinorUnits: 2,
		},
		Output: OutputConfig{
			DefaultFormat:  "cli",
			ShowQuantities: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, cerrors.Config("failed to read config", err).WithContext("path", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, cerrors.Config("failed to parse config", err).WithContext("path", path)
	}
	if config.Pricing.MinorUnits < 0 {
		return nil, cerrors.Config("pricing.minor_units must be >= 0", nil).WithContext("path", path)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
