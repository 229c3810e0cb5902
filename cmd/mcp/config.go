package main

import (
	"os"

	"github.com/elC0mpa/finops-doctor/config"
	"github.com/elC0mpa/finops-doctor/internal/logging"
	"github.com/elC0mpa/finops-doctor/pricing"
)

// MCPConfig holds environment-based configuration for the MCP server.
// Scan defaults come from the optional YAML file named by
// FINOPS_DOCTOR_CONFIG; tool parameters override them per call.
type MCPConfig struct {
	AWSRegion  string
	AWSProfile string

	Scan    config.ScanConfig
	Pricing *pricing.Pricebook
	Logging logging.Config
}

// LoadConfig reads configuration from environment variables
func LoadConfig() (*MCPConfig, error) {
	cfg, err := config.Load(os.Getenv("FINOPS_DOCTOR_CONFIG"))
	if err != nil {
		return nil, err
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = cfg.Region
	}
	profile := os.Getenv("AWS_PROFILE")
	if profile == "" {
		profile = cfg.Profile
	}

	return &MCPConfig{
		AWSRegion:  region,
		AWSProfile: profile,
		Scan:       cfg.Scan,
		Pricing:    cfg.Pricing,
		Logging:    cfg.Logging,
	}, nil
}
