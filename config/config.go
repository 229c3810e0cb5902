// Package config loads the optional YAML configuration file shared by
// the CLI and the MCP server.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elC0mpa/finops-doctor/internal/errors"
	"github.com/elC0mpa/finops-doctor/internal/logging"
	"github.com/elC0mpa/finops-doctor/pricing"
)

// Config is the main application configuration
type Config struct {
	Region  string `yaml:"region"`
	Profile string `yaml:"profile"`

	Scan    ScanConfig         `yaml:"scan"`
	Pricing *pricing.Pricebook `yaml:"pricing"`
	Logging logging.Config     `yaml:"logging"`
}

// ScanConfig holds waste-scan defaults. The thresholds and fallback
// prices are planning approximations carried over from operational
// practice, not values derived from a pricing API; treat them as
// tunables.
type ScanConfig struct {
	// WindowDays is the telemetry lookback period
	WindowDays int `yaml:"window_days"`

	// CPUThreshold is the CPU percentage below which compute and
	// database instances are considered idle
	CPUThreshold float64 `yaml:"cpu_threshold"`

	// ConnectionThreshold is the average connection count below which a
	// database instance is considered idle (combined with CPU)
	ConnectionThreshold float64 `yaml:"connection_threshold"`

	// Concurrency bounds the telemetry fan-out per scan. 1 preserves
	// the strictly sequential remote-call pattern.
	Concurrency int `yaml:"concurrency"`

	// TelemetryTimeoutSeconds caps each individual metric fetch
	TelemetryTimeoutSeconds int `yaml:"telemetry_timeout_seconds"`
}

// DefaultScanConfig returns the built-in scan defaults
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		WindowDays:              14,
		CPUThreshold:            10.0,
		ConnectionThreshold:     5.0,
		Concurrency:             1,
		TelemetryTimeoutSeconds: 30,
	}
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Region:  "us-east-1",
		Scan:    DefaultScanConfig(),
		Pricing: pricing.Default(),
		Logging: logging.DefaultConfig(),
	}
}

// Load reads a YAML configuration file and fills unset fields with
// defaults. An empty path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to parse config file", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.Scan.WindowDays == 0 {
		c.Scan.WindowDays = 14
	}
	if c.Scan.CPUThreshold == 0 {
		c.Scan.CPUThreshold = 10.0
	}
	if c.Scan.ConnectionThreshold == 0 {
		c.Scan.ConnectionThreshold = 5.0
	}
	if c.Scan.Concurrency == 0 {
		c.Scan.Concurrency = 1
	}
	if c.Scan.TelemetryTimeoutSeconds == 0 {
		c.Scan.TelemetryTimeoutSeconds = 30
	}
	if c.Pricing == nil {
		c.Pricing = pricing.Default()
	}
	if c.Logging.Level == "" {
		c.Logging = logging.DefaultConfig()
	}
}

func (c *Config) validate() error {
	if c.Scan.WindowDays < 1 {
		return errors.Newf(errors.TypeConfig, "scan.window_days must be >= 1, got %d", c.Scan.WindowDays)
	}
	if c.Scan.CPUThreshold < 0 || c.Scan.CPUThreshold > 100 {
		return errors.Newf(errors.TypeConfig, "scan.cpu_threshold must be between 0 and 100, got %v", c.Scan.CPUThreshold)
	}
	if c.Scan.ConnectionThreshold < 0 {
		return errors.Newf(errors.TypeConfig, "scan.connection_threshold must be >= 0, got %v", c.Scan.ConnectionThreshold)
	}
	if c.Scan.Concurrency < 1 {
		return errors.Newf(errors.TypeConfig, "scan.concurrency must be >= 1, got %d", c.Scan.Concurrency)
	}
	return nil
}
