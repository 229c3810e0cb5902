package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/elC0mpa/finops-doctor/cmd/mcp/response"
	"github.com/elC0mpa/finops-doctor/config"
	"github.com/elC0mpa/finops-doctor/model"
	"github.com/elC0mpa/finops-doctor/pricing"
	awsconfig "github.com/elC0mpa/finops-doctor/service/aws/config"
	awscostexplorer "github.com/elC0mpa/finops-doctor/service/aws/costexplorer"
	awselb "github.com/elC0mpa/finops-doctor/service/aws/elb"
	awsinventory "github.com/elC0mpa/finops-doctor/service/aws/inventory"
	awssts "github.com/elC0mpa/finops-doctor/service/aws/sts"
	awstelemetry "github.com/elC0mpa/finops-doctor/service/aws/telemetry"
	"github.com/elC0mpa/finops-doctor/service/scanner"
)

// RegisterAWSTools registers all AWS tools with the MCP server
func RegisterAWSTools(s *server.MCPServer, region, profile string, scanCfg config.ScanConfig, prices *pricing.Pricebook) {
	// Account info
	s.AddTool(
		mcp.NewTool("aws_get_account_info",
			mcp.WithDescription("Get AWS account identity information including account ID and ARN"),
		),
		makeAWSAccountInfoHandler(region, profile),
	)

	// Current month costs
	s.AddTool(
		mcp.NewTool("aws_get_current_month_costs",
			mcp.WithDescription("Get AWS costs for the current month, broken down by service"),
		),
		makeAWSCurrentMonthCostsHandler(region, profile),
	)

	// Cost comparison
	s.AddTool(
		mcp.NewTool("aws_get_cost_comparison",
			mcp.WithDescription("Compare AWS costs between current month and last month (same period), showing difference and percent change"),
		),
		makeAWSCostComparisonHandler(region, profile),
	)

	// Cost trend
	s.AddTool(
		mcp.NewTool("aws_get_cost_trend",
			mcp.WithDescription("Get AWS cost trend for the last 6 months with summary statistics"),
		),
		makeAWSCostTrendHandler(region, profile),
	)

	// Cost forecast
	s.AddTool(
		mcp.NewTool("aws_get_cost_forecast",
			mcp.WithDescription("Forecast AWS spend for the upcoming months based on historical usage"),
			mcp.WithNumber("months",
				mcp.Description("Number of months to forecast (default 1)"),
			),
		),
		makeAWSCostForecastHandler(region, profile),
	)

	// Cost anomalies
	s.AddTool(
		mcp.NewTool("aws_get_cost_anomalies",
			mcp.WithDescription("List cost anomalies detected by AWS Cost Anomaly Detection"),
			mcp.WithNumber("lookback_days",
				mcp.Description("How many days back to look for anomalies (default 30)"),
			),
		),
		makeAWSCostAnomaliesHandler(region, profile),
	)

	// Waste scan for one resource type
	s.AddTool(
		mcp.NewTool("aws_scan_waste",
			mcp.WithDescription("Scan one AWS resource type for waste: idle compute instances, idle database instances, unattached volumes, unassociated static IPs or orphaned snapshots. Returns a finding per resource with an estimated monthly cost."),
			mcp.WithString("resource_type",
				mcp.Required(),
				mcp.Description("Resource type to scan: compute-instance, block-volume, database-instance, static-ip or snapshot"),
			),
			mcp.WithNumber("cpu_threshold",
				mcp.Description("Average CPU percentage below which an instance is considered idle (default 10)"),
			),
			mcp.WithNumber("connection_threshold",
				mcp.Description("Average connection count below which a database is considered idle (default 5)"),
			),
			mcp.WithNumber("window_days",
				mcp.Description("Telemetry lookback window in days (default 14)"),
			),
		),
		makeAWSScanWasteHandler(region, profile, scanCfg, prices),
	)

	// Full waste summary
	s.AddTool(
		mcp.NewTool("aws_get_waste_summary",
			mcp.WithDescription("Scan every supported resource type plus orphaned load balancers and summarize the estimated monthly waste"),
		),
		makeAWSWasteSummaryHandler(region, profile, scanCfg, prices),
	)

	// Orphaned load balancers
	s.AddTool(
		mcp.NewTool("aws_get_orphaned_load_balancers",
			mcp.WithDescription("List application and network load balancers that have no target group attached"),
		),
		makeAWSOrphanedLoadBalancersHandler(region, profile),
	)
}

func makeAWSAccountInfoHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		info, err := awssts.NewService(awsCfg).GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get account info: %v", err)), nil
		}

		return jsonResult(response.ConvertAccountInfo(info))
	}
}

func makeAWSCurrentMonthCostsHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		costData, err := awscostexplorer.NewService(awsCfg).GetCurrentMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get costs: %v", err)), nil
		}

		return jsonResult(response.ConvertCostInfo(costData))
	}
}

func makeAWSCostComparisonHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		costSvc := awscostexplorer.NewService(awsCfg)

		currentData, err := costSvc.GetCurrentMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get current month costs: %v", err)), nil
		}

		lastData, err := costSvc.GetLastMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get last month costs: %v", err)), nil
		}

		currentCosts := response.ConvertCostInfo(currentData)
		lastCosts := response.ConvertCostInfo(lastData)

		diff := currentCosts.Total - lastCosts.Total
		var percentChange float64
		if lastCosts.Total > 0 {
			percentChange = (diff / lastCosts.Total) * 100
		}

		return jsonResult(response.CostComparison{
			CurrentMonth:  *currentCosts,
			LastMonth:     *lastCosts,
			Difference:    diff,
			PercentChange: percentChange,
		})
	}
}

func makeAWSCostTrendHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		trendData, err := awscostexplorer.NewService(awsCfg).GetLastSixMonthsCosts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get cost trend: %v", err)), nil
		}

		return jsonResult(response.ConvertTrendData(trendData))
	}
}

func makeAWSCostForecastHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		months := request.GetInt("months", 1)

		forecast, err := awscostexplorer.NewService(awsCfg).GetCostForecast(ctx, months)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get cost forecast: %v", err)), nil
		}

		return jsonResult(response.ConvertForecast(forecast))
	}
}

func makeAWSCostAnomaliesHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		lookbackDays := request.GetInt("lookback_days", 30)

		anomalies, err := awscostexplorer.NewService(awsCfg).GetCostAnomalies(ctx, lookbackDays)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get cost anomalies: %v", err)), nil
		}

		return jsonResult(response.ConvertAnomalies(anomalies))
	}
}

func makeAWSScanWasteHandler(region, profile string, scanCfg config.ScanConfig, prices *pricing.Pricebook) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resourceType, err := request.RequireString("resource_type")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		scanSvc := newScanService(awsCfg, prices)

		report, err := scanSvc.Scan(ctx, scanner.ScanRequest{
			ResourceType:        model.ResourceType(resourceType),
			CPUThreshold:        request.GetFloat("cpu_threshold", scanCfg.CPUThreshold),
			ConnectionThreshold: request.GetFloat("connection_threshold", scanCfg.ConnectionThreshold),
			WindowDays:          request.GetInt("window_days", scanCfg.WindowDays),
			Concurrency:         scanCfg.Concurrency,
			TelemetryTimeout:    time.Duration(scanCfg.TelemetryTimeoutSeconds) * time.Second,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Scan failed: %v", err)), nil
		}

		return jsonResult(response.ConvertScanReport(report))
	}
}

func makeAWSWasteSummaryHandler(region, profile string, scanCfg config.ScanConfig, prices *pricing.Pricebook) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		accountInfo, err := awssts.NewService(awsCfg).GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get account info: %v", err)), nil
		}

		scanSvc := newScanService(awsCfg, prices)

		summary := model.WasteSummary{AccountID: accountInfo.AccountID}

		for _, resourceType := range model.ScannableResourceTypes {
			report, err := scanSvc.Scan(ctx, scanner.ScanRequest{
				ResourceType:        resourceType,
				CPUThreshold:        scanCfg.CPUThreshold,
				ConnectionThreshold: scanCfg.ConnectionThreshold,
				WindowDays:          scanCfg.WindowDays,
				Concurrency:         scanCfg.Concurrency,
				TelemetryTimeout:    time.Duration(scanCfg.TelemetryTimeoutSeconds) * time.Second,
			})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to scan %s: %v", resourceType, err)), nil
			}

			summary.Reports = append(summary.Reports, *report)
			summary.TotalEstimatedMonthlyCost += report.TotalEstimatedMonthlyCost
		}

		orphaned, err := awselb.NewService(awsCfg).GetOrphanedLoadBalancers(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to check load balancers: %v", err)), nil
		}
		summary.OrphanedLoadBalancers = orphaned

		return jsonResult(response.ConvertWasteSummary(summary))
	}
}

func makeAWSOrphanedLoadBalancersHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		orphaned, err := awselb.NewService(awsCfg).GetOrphanedLoadBalancers(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to check load balancers: %v", err)), nil
		}

		return jsonResult(response.ConvertOrphanedLoadBalancers(orphaned))
	}
}

func newScanService(awsCfg aws.Config, prices *pricing.Pricebook) scanner.ScanService {
	inventorySvc := awsinventory.NewService(awsCfg)
	telemetrySvc := awstelemetry.NewService(awsCfg)
	return scanner.NewService(inventorySvc, telemetrySvc, prices)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
