package response

import (
	"sort"

	"github.com/elC0mpa/finops-doctor/model"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

// ConvertCostInfo converts model.CostInfo to response.CostInfo
func ConvertCostInfo(info *model.CostInfo) *CostInfo {
	if info == nil {
		return nil
	}

	var services []ServiceCost
	var total float64
	var currency string

	for name, cost := range info.CostGroup {
		services = append(services, ServiceCost{
			Name:   name,
			Amount: cost.Amount,
			Unit:   cost.Unit,
		})
		total += cost.Amount
		if currency == "" {
			currency = cost.Unit
		}
	}

	// Sort by amount descending
	sort.Slice(services, func(i, j int) bool {
		return services[i].Amount > services[j].Amount
	})

	startDate := ""
	if info.Start != nil {
		startDate = *info.Start
	}
	endDate := ""
	if info.End != nil {
		endDate = *info.End
	}

	if currency == "" {
		currency = "USD"
	}

	return &CostInfo{
		StartDate: startDate,
		EndDate:   endDate,
		Services:  services,
		Total:     total,
		Currency:  currency,
	}
}

// ConvertTrendData converts []model.CostInfo to CostTrend with summary
func ConvertTrendData(data []model.CostInfo) *CostTrend {
	if len(data) == 0 {
		return &CostTrend{
			Months:  []CostInfo{},
			Summary: TrendSummary{},
		}
	}

	var months []CostInfo
	var totalSpend float64
	var highestAmount, lowestAmount float64
	var highestMonth, lowestMonth string
	first := true

	for _, monthData := range data {
		costInfo := ConvertCostInfo(&monthData)
		if costInfo == nil {
			continue
		}

		monthTotal := monthData.CostGroup["Total"].Amount
		costInfo.Total = monthTotal

		months = append(months, *costInfo)
		totalSpend += monthTotal

		monthLabel := ""
		if len(costInfo.StartDate) >= 7 {
			monthLabel = costInfo.StartDate[:7] // YYYY-MM
		}

		if first || monthTotal > highestAmount {
			highestAmount = monthTotal
			highestMonth = monthLabel
		}
		if first || monthTotal < lowestAmount {
			lowestAmount = monthTotal
			lowestMonth = monthLabel
		}
		first = false
	}

	avgMonthly := 0.0
	if len(months) > 0 {
		avgMonthly = totalSpend / float64(len(months))
	}

	return &CostTrend{
		Months: months,
		Summary: TrendSummary{
			TotalSpend:     totalSpend,
			AverageMonthly: avgMonthly,
			HighestMonth:   highestMonth,
			HighestAmount:  highestAmount,
			LowestMonth:    lowestMonth,
			LowestAmount:   lowestAmount,
		},
	}
}

// ConvertForecast converts model.CostForecast to response format
func ConvertForecast(forecast *model.CostForecast) *CostForecast {
	if forecast == nil {
		return nil
	}

	startDate := ""
	if forecast.Start != nil {
		startDate = *forecast.Start
	}
	endDate := ""
	if forecast.End != nil {
		endDate = *forecast.End
	}

	return &CostForecast{
		StartDate:  startDate,
		EndDate:    endDate,
		Amount:     forecast.Amount,
		LowerBound: forecast.LowerBound,
		UpperBound: forecast.UpperBound,
		Currency:   forecast.Unit,
	}
}

// ConvertAnomalies converts []model.CostAnomaly to response format
func ConvertAnomalies(anomalies []model.CostAnomaly) []CostAnomaly {
	result := make([]CostAnomaly, 0, len(anomalies))
	for _, a := range anomalies {
		result = append(result, CostAnomaly{
			AnomalyID:   a.AnomalyID,
			Service:     a.Service,
			TotalImpact: a.TotalImpact,
			MaxImpact:   a.MaxImpact,
			StartDate:   a.StartDate,
			EndDate:     a.EndDate,
		})
	}
	return result
}

// ConvertScanReport converts model.ScanReport to response format
func ConvertScanReport(report *model.ScanReport) *ScanReport {
	if report == nil {
		return nil
	}

	findings := make([]WasteFinding, 0, len(report.Findings))
	for _, f := range report.Findings {
		finding := WasteFinding{
			ResourceID:           f.Resource.ResourceID,
			SizeClass:            f.Resource.SizeClass,
			State:                f.Resource.State,
			Tags:                 f.Resource.Tags,
			Wasteful:             f.Wasteful,
			Reason:               f.Reason,
			Metrics:              f.Metrics,
			EstimatedMonthlyCost: f.EstimatedMonthlyCost,
		}
		if name := f.Resource.Name(); name != f.Resource.ResourceID {
			finding.Name = name
		}
		findings = append(findings, finding)
	}

	return &ScanReport{
		ResourceType:              string(report.ResourceType),
		TotalResources:            report.TotalResources,
		WastefulCount:             report.WastefulCount,
		TotalEstimatedMonthlyCost: report.TotalEstimatedMonthlyCost,
		Findings:                  findings,
	}
}

// ConvertOrphanedLoadBalancers converts the model slice to response format
func ConvertOrphanedLoadBalancers(orphaned []model.OrphanedLoadBalancer) []OrphanedLoadBalancer {
	result := make([]OrphanedLoadBalancer, 0, len(orphaned))
	for _, lb := range orphaned {
		result = append(result, OrphanedLoadBalancer{
			Name: lb.Name,
			Type: lb.Type,
			ARN:  lb.ARN,
		})
	}
	return result
}

// ConvertWasteSummary converts model.WasteSummary to response format
func ConvertWasteSummary(summary model.WasteSummary) *WasteSummary {
	reports := make([]ScanReport, 0, len(summary.Reports))
	for i := range summary.Reports {
		reports = append(reports, *ConvertScanReport(&summary.Reports[i]))
	}

	return &WasteSummary{
		Provider:                  "aws",
		AccountID:                 summary.AccountID,
		Reports:                   reports,
		OrphanedLoadBalancers:     ConvertOrphanedLoadBalancers(summary.OrphanedLoadBalancers),
		TotalEstimatedMonthlyCost: summary.TotalEstimatedMonthlyCost,
	}
}
