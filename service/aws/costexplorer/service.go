package awscostexplorer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/elC0mpa/finops-doctor/internal/errors"
	"github.com/elC0mpa/finops-doctor/model"
)

func NewService(awsconfig aws.Config) *service {
	client := costexplorer.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

func (s *service) GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.getMonthCostsByService(ctx, time.Now())
}

func (s *service) GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	oneMonthAgo := time.Now().AddDate(0, -1, 0)
	return s.getMonthCostsByService(ctx, oneMonthAgo)
}

func (s *service) getMonthCostsByService(ctx context.Context, endDate time.Time) (*model.CostInfo, error) {
	firstOfMonth := firstDayOfMonth(endDate)

	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstOfMonth.Format("2006-01-02")),
			End:   aws.String(endDate.Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
		GroupBy: []types.GroupDefinition{
			{
				Key:  aws.String("SERVICE"),
				Type: types.GroupDefinitionTypeDimension,
			},
		},
	}

	output, err := s.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, errors.Wrap(errors.TypeCostUnavailable, "cost and usage query failed", err)
	}
	if len(output.ResultsByTime) == 0 {
		return nil, errors.New(errors.TypeCostUnavailable, "cost and usage query returned no periods")
	}

	return &model.CostInfo{
		CostGroup: filterGroups(output.ResultsByTime[0].Groups),
		DateInterval: model.DateInterval{
			Start: output.ResultsByTime[0].TimePeriod.Start,
			End:   output.ResultsByTime[0].TimePeriod.End,
		},
	}, nil
}

func (s *service) GetCurrentMonthTotalCosts(ctx context.Context) (*string, error) {
	return s.getMonthTotalCosts(ctx, time.Now())
}

func (s *service) GetLastMonthTotalCosts(ctx context.Context) (*string, error) {
	return s.getMonthTotalCosts(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error) {
	firstOfMonth := firstDayOfMonth(time.Now().AddDate(0, -6, 0))

	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstOfMonth.Format("2006-01-02")),
			End:   aws.String(firstDayOfMonth(time.Now()).Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
	}

	output, err := s.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, errors.Wrap(errors.TypeCostUnavailable, "cost trend query failed", err)
	}

	monthlyCosts := make([]model.CostInfo, 0, len(output.ResultsByTime))

	for _, timeResult := range output.ResultsByTime {
		total, ok := timeResult.Total[costsAggregation]
		if !ok || total.Amount == nil {
			continue
		}
		amount, _ := strconv.ParseFloat(*total.Amount, 64)

		costGroups := make(model.CostGroup)
		costGroups["Total"] = struct {
			Amount float64
			Unit   string
		}{
			Amount: amount,
			Unit:   aws.ToString(total.Unit),
		}

		monthlyCosts = append(monthlyCosts, model.CostInfo{
			DateInterval: model.DateInterval{
				Start: timeResult.TimePeriod.Start,
				End:   timeResult.TimePeriod.End,
			},
			CostGroup: costGroups,
		})
	}

	return monthlyCosts, nil
}

// GetCostForecast projects spend for the next N months
func (s *service) GetCostForecast(ctx context.Context, months int) (*model.CostForecast, error) {
	if months < 1 {
		months = 1
	}

	start := time.Now().AddDate(0, 0, 1)
	end := start.AddDate(0, months, 0)

	input := &costexplorer.GetCostForecastInput{
		Granularity: types.GranularityMonthly,
		Metric:      types.MetricUnblendedCost,
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		PredictionIntervalLevel: aws.Int32(80),
	}

	output, err := s.client.GetCostForecast(ctx, input)
	if err != nil {
		return nil, errors.Wrap(errors.TypeCostUnavailable, "cost forecast query failed", err)
	}

	forecast := &model.CostForecast{
		DateInterval: model.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Unit: "USD",
	}

	if output.Total != nil && output.Total.Amount != nil {
		forecast.Amount, _ = strconv.ParseFloat(*output.Total.Amount, 64)
		if output.Total.Unit != nil {
			forecast.Unit = *output.Total.Unit
		}
	}

	for _, result := range output.ForecastResultsByTime {
		if result.PredictionIntervalLowerBound != nil {
			lower, _ := strconv.ParseFloat(*result.PredictionIntervalLowerBound, 64)
			forecast.LowerBound += lower
		}
		if result.PredictionIntervalUpperBound != nil {
			upper, _ := strconv.ParseFloat(*result.PredictionIntervalUpperBound, 64)
			forecast.UpperBound += upper
		}
	}

	return forecast, nil
}

// GetCostAnomalies lists spend anomalies detected over the lookback period
func (s *service) GetCostAnomalies(ctx context.Context, lookbackDays int) ([]model.CostAnomaly, error) {
	if lookbackDays < 1 {
		lookbackDays = 30
	}

	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays)

	input := &costexplorer.GetAnomaliesInput{
		DateInterval: &types.AnomalyDateInterval{
			StartDate: aws.String(start.Format("2006-01-02")),
			EndDate:   aws.String(end.Format("2006-01-02")),
		},
	}

	output, err := s.client.GetAnomalies(ctx, input)
	if err != nil {
		return nil, errors.Wrap(errors.TypeCostUnavailable, "cost anomaly query failed", err)
	}

	anomalies := make([]model.CostAnomaly, 0, len(output.Anomalies))
	for _, a := range output.Anomalies {
		anomaly := model.CostAnomaly{
			AnomalyID: aws.ToString(a.AnomalyId),
			StartDate: aws.ToString(a.AnomalyStartDate),
			EndDate:   aws.ToString(a.AnomalyEndDate),
		}

		if a.Impact != nil {
			anomaly.TotalImpact = a.Impact.TotalImpact
			if a.Impact.MaxImpact != 0 {
				anomaly.MaxImpact = a.Impact.MaxImpact
			}
		}

		if len(a.RootCauses) > 0 {
			anomaly.Service = aws.ToString(a.RootCauses[0].Service)
		}

		anomalies = append(anomalies, anomaly)
	}

	return anomalies, nil
}

func (s *service) getMonthTotalCosts(ctx context.Context, endDate time.Time) (*string, error) {
	firstOfMonth := firstDayOfMonth(endDate)

	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstOfMonth.Format("2006-01-02")),
			End:   aws.String(endDate.Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
	}

	output, err := s.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, errors.Wrap(errors.TypeCostUnavailable, "month total query failed", err)
	}
	if len(output.ResultsByTime) == 0 {
		return nil, errors.New(errors.TypeCostUnavailable, "month total query returned no periods")
	}

	totalInfo := output.ResultsByTime[0].Total[costsAggregation]
	if totalInfo.Amount == nil {
		return nil, errors.New(errors.TypeCostUnavailable, "month total has no amount")
	}
	amount, err := strconv.ParseFloat(*totalInfo.Amount, 64)
	if err != nil {
		return nil, errors.Wrap(errors.TypeCostUnavailable, "could not parse month total", err)
	}

	total := fmt.Sprintf("%.2f %s", amount, aws.ToString(totalInfo.Unit))
	return &total, nil
}

func firstDayOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
}

func filterGroups(results []types.Group) model.CostGroup {
	costGroups := make(model.CostGroup)

	for _, g := range results {
		if _, ok := g.Metrics[costsAggregation]; !ok || g.Metrics[costsAggregation].Amount == nil {
			continue
		}
		amount, err := strconv.ParseFloat(*g.Metrics[costsAggregation].Amount, 64)
		if err != nil || amount == 0 {
			continue
		}
		if len(g.Keys) == 0 {
			continue
		}

		costGroups[g.Keys[0]] = struct {
			Amount float64
			Unit   string
		}{
			Amount: amount,
			Unit:   aws.ToString(g.Metrics[costsAggregation].Unit),
		}
	}

	return costGroups
}
