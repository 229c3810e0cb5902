package orchestrator

import (
	"context"

	"github.com/elC0mpa/finops-doctor/config"
	"github.com/elC0mpa/finops-doctor/model"
	"github.com/elC0mpa/finops-doctor/service"
	"github.com/elC0mpa/finops-doctor/service/scanner"
)

type orchestratorService struct {
	identityService     service.IdentityService
	costService         service.CostService
	scanService         scanner.ScanService
	loadBalancerService service.LoadBalancerService
	scanConfig          config.ScanConfig
}

// OrchestratorService wires the terminal workflows: each method runs
// one end to end and renders the result to stdout.
type OrchestratorService interface {
	CostReport(ctx context.Context) error
	CostTrend(ctx context.Context) error
	CostForecast(ctx context.Context, months int) error
	CostAnomalies(ctx context.Context, lookbackDays int) error
	ScanResourceType(ctx context.Context, resourceType model.ResourceType) error
	WasteReport(ctx context.Context) error
}
