package scanner

import (
	"context"
	"time"

	"github.com/elC0mpa/finops-doctor/model"
	"github.com/elC0mpa/finops-doctor/pricing"
	"github.com/elC0mpa/finops-doctor/service"
)

// Built-in request defaults. These are planning approximations carried
// over from operational practice; override them per call or via the
// configuration file.
const (
	DefaultCPUThreshold        = 10.0
	DefaultConnectionThreshold = 5.0
	DefaultWindowDays          = 14
)

// ScanRequest parameterizes one waste scan
type ScanRequest struct {
	// ResourceType selects what to scan; must be one of the supported types
	ResourceType model.ResourceType

	// CPUThreshold in percent; 0 selects the default (10.0)
	CPUThreshold float64

	// ConnectionThreshold in average connections; 0 selects the default (5.0)
	ConnectionThreshold float64

	// WindowDays is the telemetry lookback; 0 selects the default (14),
	// negative values are rejected
	WindowDays int

	// StateFilter restricts the inventory to the given lifecycle states
	StateFilter []string

	// Concurrency bounds the telemetry fan-out; values below 2 keep the
	// scan strictly sequential
	Concurrency int

	// TelemetryTimeout caps each individual metric fetch; 0 inherits the
	// remote client's own deadline
	TelemetryTimeout time.Duration
}

// ScanService runs the collect, sample, classify pipeline
type ScanService interface {
	Scan(ctx context.Context, req ScanRequest) (*model.ScanReport, error)
}

type scanService struct {
	inventory service.InventoryService
	telemetry service.TelemetryService
	prices    *pricing.Pricebook
}
