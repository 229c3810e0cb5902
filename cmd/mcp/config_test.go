package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FINOPS_DOCTOR_CONFIG", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_PROFILE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AWSRegion != "us-east-1" {
		t.Errorf("region = %q, want us-east-1", cfg.AWSRegion)
	}
	if cfg.Scan.WindowDays != 14 {
		t.Errorf("window days = %d, want 14", cfg.Scan.WindowDays)
	}
	if cfg.Pricing == nil {
		t.Fatal("expected a default pricebook, got nil")
	}
}

func TestLoadConfigCarriesPricebook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finops-doctor.yaml")
	data := []byte(`
region: eu-west-1
scan:
  cpu_threshold: 7.5
pricing:
  compute:
    - prefix: "t3."
      monthly: 12.0
  static_ip_monthly: 9.9
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FINOPS_DOCTOR_CONFIG", path)
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_PROFILE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AWSRegion != "eu-west-1" {
		t.Errorf("region = %q, want eu-west-1", cfg.AWSRegion)
	}
	if cfg.Scan.CPUThreshold != 7.5 {
		t.Errorf("cpu threshold = %v, want 7.5", cfg.Scan.CPUThreshold)
	}
	if cfg.Pricing == nil {
		t.Fatal("pricebook from the config file was dropped")
	}
	if len(cfg.Pricing.Compute) != 1 || cfg.Pricing.Compute[0].Monthly != 12.0 {
		t.Errorf("compute rules = %+v, want the single t3. override", cfg.Pricing.Compute)
	}
	if cfg.Pricing.StaticIPMonthly != 9.9 {
		t.Errorf("static IP monthly = %v, want 9.9", cfg.Pricing.StaticIPMonthly)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finops-doctor.yaml")
	if err := os.WriteFile(path, []byte("region: eu-west-1\nprofile: billing\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FINOPS_DOCTOR_CONFIG", path)
	t.Setenv("AWS_REGION", "ap-southeast-2")
	t.Setenv("AWS_PROFILE", "audit")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AWSRegion != "ap-southeast-2" {
		t.Errorf("region = %q, want ap-southeast-2", cfg.AWSRegion)
	}
	if cfg.AWSProfile != "audit" {
		t.Errorf("profile = %q, want audit", cfg.AWSProfile)
	}
}
