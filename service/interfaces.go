package service

import (
	"context"

	"github.com/elC0mpa/finops-doctor/model"
)

// IdentityService provides cloud account identity information
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}

// CostService provides billing and cost analysis
type CostService interface {
	GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
	GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
	GetCurrentMonthTotalCosts(ctx context.Context) (*string, error)
	GetLastMonthTotalCosts(ctx context.Context) (*string, error)
	GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error)
	GetCostForecast(ctx context.Context, months int) (*model.CostForecast, error)
	GetCostAnomalies(ctx context.Context, lookbackDays int) ([]model.CostAnomaly, error)
}

// InventoryService enumerates the resources of one type, fully
// materialized. The call is all-or-nothing: a remote failure yields an
// INVENTORY_UNAVAILABLE error and no partial result.
type InventoryService interface {
	ListResources(ctx context.Context, resourceType model.ResourceType, stateFilter []string) ([]model.ResourceDescriptor, error)
}

// TelemetryService fetches a windowed metric time series for one
// resource and reduces it to a single average. Zero datapoints reduce
// to 0.0 and are not an error.
type TelemetryService interface {
	SampleUtilization(ctx context.Context, resource model.ResourceDescriptor, metric string, windowDays int) (model.UtilizationSample, error)
}

// LoadBalancerService detects load balancers with no target group
// attachment. Load balancers are reported alongside scan results but
// sit outside the scanned resource type enum.
type LoadBalancerService interface {
	GetOrphanedLoadBalancers(ctx context.Context) ([]model.OrphanedLoadBalancer, error)
}
