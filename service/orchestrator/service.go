package orchestrator

import (
	"context"
	"time"

	"github.com/elC0mpa/finops-doctor/config"
	"github.com/elC0mpa/finops-doctor/model"
	"github.com/elC0mpa/finops-doctor/service"
	"github.com/elC0mpa/finops-doctor/service/scanner"
	"github.com/elC0mpa/finops-doctor/utils"
)

func NewService(
	identityService service.IdentityService,
	costService service.CostService,
	scanService scanner.ScanService,
	loadBalancerService service.LoadBalancerService,
	scanConfig config.ScanConfig,
) *orchestratorService {
	return &orchestratorService{
		identityService:     identityService,
		costService:         costService,
		scanService:         scanService,
		loadBalancerService: loadBalancerService,
		scanConfig:          scanConfig,
	}
}

func (s *orchestratorService) CostReport(ctx context.Context) error {
	currentMonthData, err := s.costService.GetCurrentMonthCostsByService(ctx)
	if err != nil {
		return err
	}

	lastMonthData, err := s.costService.GetLastMonthCostsByService(ctx)
	if err != nil {
		return err
	}

	currentTotalCost, err := s.costService.GetCurrentMonthTotalCosts(ctx)
	if err != nil {
		return err
	}

	lastTotalCost, err := s.costService.GetLastMonthTotalCosts(ctx)
	if err != nil {
		return err
	}

	account, err := s.identityService.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawCostTable(account.AccountID, *lastTotalCost, *currentTotalCost, lastMonthData, currentMonthData)
	return nil
}

func (s *orchestratorService) CostTrend(ctx context.Context) error {
	costInfo, err := s.costService.GetLastSixMonthsCosts(ctx)
	if err != nil {
		return err
	}

	account, err := s.identityService.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawTrendChart(account.AccountID, costInfo)

	return nil
}

func (s *orchestratorService) CostForecast(ctx context.Context, months int) error {
	forecast, err := s.costService.GetCostForecast(ctx, months)
	if err != nil {
		return err
	}

	account, err := s.identityService.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawForecastTable(account.AccountID, forecast)

	return nil
}

func (s *orchestratorService) CostAnomalies(ctx context.Context, lookbackDays int) error {
	anomalies, err := s.costService.GetCostAnomalies(ctx, lookbackDays)
	if err != nil {
		return err
	}

	account, err := s.identityService.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawAnomalyTable(account.AccountID, anomalies)

	return nil
}

func (s *orchestratorService) ScanResourceType(ctx context.Context, resourceType model.ResourceType) error {
	report, err := s.scanService.Scan(ctx, s.scanRequest(resourceType))
	if err != nil {
		return err
	}

	account, err := s.identityService.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawScanTable(account.AccountID, report)

	return nil
}

// WasteReport scans every supported resource type and appends the
// orphaned load balancer check, which lives outside the scanner's
// resource type set.
func (s *orchestratorService) WasteReport(ctx context.Context) error {
	account, err := s.identityService.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	summary := model.WasteSummary{AccountID: account.AccountID}

	for _, resourceType := range model.ScannableResourceTypes {
		report, err := s.scanService.Scan(ctx, s.scanRequest(resourceType))
		if err != nil {
			return err
		}

		summary.Reports = append(summary.Reports, *report)
		summary.TotalEstimatedMonthlyCost += report.TotalEstimatedMonthlyCost
	}

	orphaned, err := s.loadBalancerService.GetOrphanedLoadBalancers(ctx)
	if err != nil {
		return err
	}
	summary.OrphanedLoadBalancers = orphaned

	utils.StopSpinner()

	utils.DrawWasteSummary(summary)

	return nil
}

func (s *orchestratorService) scanRequest(resourceType model.ResourceType) scanner.ScanRequest {
	return scanner.ScanRequest{
		ResourceType:        resourceType,
		CPUThreshold:        s.scanConfig.CPUThreshold,
		ConnectionThreshold: s.scanConfig.ConnectionThreshold,
		WindowDays:          s.scanConfig.WindowDays,
		Concurrency:         s.scanConfig.Concurrency,
		TelemetryTimeout:    time.Duration(s.scanConfig.TelemetryTimeoutSeconds) * time.Second,
	}
}
