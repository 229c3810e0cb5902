// Package pricing holds the static monthly price table used by the
// waste classifier. Prices are rough planning figures, not live pricing
// API data: they exist so every finding carries a usable dollar
// estimate, and they deliberately never fall back to zero.
package pricing

import (
	"strings"

	"github.com/elC0mpa/finops-doctor/model"
)

// Default monthly estimates for size classes the table does not know.
// A zero fallback would silently undercount waste for unrecognized
// sizes, so these are always positive.
const (
	DefaultComputeMonthly  = 50.0
	DefaultDatabaseMonthly = 100.0
	DefaultVolumeMonthly   = 8.0
	DefaultSnapshotMonthly = 2.5
	DefaultStaticIPMonthly = 3.6

	defaultVolumeGBMonth   = 0.08
	defaultSnapshotGBMonth = 0.05
)

// PrefixRule maps a size class prefix to a flat monthly estimate
type PrefixRule struct {
	Prefix  string  `yaml:"prefix"`
	Monthly float64 `yaml:"monthly"`
}

// Pricebook estimates monthly cost by (resource type, size class).
// Construct with Default and override per deployment; the classifier
// takes it by injection so tests can substitute deterministic tables.
type Pricebook struct {
	Compute  []PrefixRule `yaml:"compute"`
	Database []PrefixRule `yaml:"database"`

	// Per-GB monthly rates keyed by volume type
	VolumeGBMonth map[string]float64 `yaml:"volume_gb_month"`

	SnapshotGBMonth float64 `yaml:"snapshot_gb_month"`
	StaticIPMonthly float64 `yaml:"static_ip_monthly"`
}

// Default returns the built-in price table
func Default() *Pricebook {
	return &Pricebook{
		Compute: []PrefixRule{
			{Prefix: "t3.", Monthly: 30.0},
			{Prefix: "m5.", Monthly: 70.0},
			{Prefix: "c5.", Monthly: 85.0},
		},
		Database: []PrefixRule{
			{Prefix: "db.t3.", Monthly: 50.0},
			{Prefix: "db.m5.", Monthly: 150.0},
			{Prefix: "db.r5.", Monthly: 200.0},
		},
		VolumeGBMonth: map[string]float64{
			"gp2": 0.10,
			"gp3": 0.08,
			"io1": 0.125,
			"st1": 0.045,
			"sc1": 0.025,
		},
		SnapshotGBMonth: defaultSnapshotGBMonth,
		StaticIPMonthly: DefaultStaticIPMonthly,
	}
}

// EstimateMonthlyCost returns the estimated monthly cost for one
// resource. The result is always positive: unknown size classes fall
// back to a per-type default.
func (p *Pricebook) EstimateMonthlyCost(r model.ResourceDescriptor) float64 {
	switch r.Type {
	case model.ResourceTypeComputeInstance:
		return matchPrefix(p.Compute, r.SizeClass, DefaultComputeMonthly)

	case model.ResourceTypeDatabaseInstance:
		return matchPrefix(p.Database, r.SizeClass, DefaultDatabaseMonthly)

	case model.ResourceTypeBlockVolume:
		if r.SizeGB <= 0 {
			return DefaultVolumeMonthly
		}
		rate, ok := p.VolumeGBMonth[r.SizeClass]
		if !ok {
			rate = defaultVolumeGBMonth
		}
		return rate * float64(r.SizeGB)

	case model.ResourceTypeSnapshot:
		if r.SizeGB <= 0 {
			return DefaultSnapshotMonthly
		}
		rate := p.SnapshotGBMonth
		if rate <= 0 {
			rate = defaultSnapshotGBMonth
		}
		return rate * float64(r.SizeGB)

	case model.ResourceTypeStaticIP:
		if p.StaticIPMonthly > 0 {
			return p.StaticIPMonthly
		}
		return DefaultStaticIPMonthly
	}

	return DefaultComputeMonthly
}

func matchPrefix(rules []PrefixRule, sizeClass string, fallback float64) float64 {
	for _, rule := range rules {
		if strings.HasPrefix(sizeClass, rule.Prefix) && rule.Monthly > 0 {
			return rule.Monthly
		}
	}
	return fallback
}
