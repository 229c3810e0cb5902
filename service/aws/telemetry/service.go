// Package awstelemetry reduces CloudWatch metric windows to the scalar
// averages the waste classifier consumes.
package awstelemetry

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/elC0mpa/finops-doctor/internal/errors"
	"github.com/elC0mpa/finops-doctor/model"
)

// one datapoint per day of the lookback window
const samplePeriodSeconds = 86400

func NewService(awsconfig aws.Config) *service {
	client := cloudwatch.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

// SampleUtilization implements service.TelemetryService. An empty
// datapoint window reduces to 0.0 and is not an error: a resource
// emitting no telemetry is as suspect as one confirmed idle. Hard
// remote failures surface as TELEMETRY_UNAVAILABLE.
func (s *service) SampleUtilization(ctx context.Context, resource model.ResourceDescriptor, metric string, windowDays int) (model.UtilizationSample, error) {
	sample := model.UtilizationSample{
		ResourceID: resource.ResourceID,
		Metric:     metric,
		WindowDays: windowDays,
	}

	if windowDays < 1 {
		return sample, errors.Newf(errors.TypeInvalidWindow, "window must be >= 1 day, got %d", windowDays)
	}

	spec, err := resolveMetric(resource.Type, metric)
	if err != nil {
		return sample, err
	}

	end := time.Now().UTC()
	start := end.Add(-time.Duration(windowDays) * 24 * time.Hour)

	output, err := s.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(spec.namespace),
		MetricName: aws.String(spec.metricName),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String(spec.dimension),
				Value: aws.String(resource.ResourceID),
			},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(samplePeriodSeconds),
		Statistics: []types.Statistic{types.StatisticAverage},
	})
	if err != nil {
		return sample, errors.Wrap(errors.TypeTelemetryUnavailable, "metric statistics query failed", err)
	}

	sample.Average = reduceAverage(output.Datapoints)
	return sample, nil
}

func resolveMetric(resourceType model.ResourceType, metric string) (metricSpec, error) {
	switch resourceType {
	case model.ResourceTypeComputeInstance:
		switch metric {
		case model.MetricCPUPercent:
			return metricSpec{"AWS/EC2", "CPUUtilization", "InstanceId"}, nil
		case model.MetricNetworkInBytes:
			return metricSpec{"AWS/EC2", "NetworkIn", "InstanceId"}, nil
		case model.MetricNetworkOutBytes:
			return metricSpec{"AWS/EC2", "NetworkOut", "InstanceId"}, nil
		}
	case model.ResourceTypeDatabaseInstance:
		switch metric {
		case model.MetricCPUPercent:
			return metricSpec{"AWS/RDS", "CPUUtilization", "DBInstanceIdentifier"}, nil
		case model.MetricConnectionCount:
			return metricSpec{"AWS/RDS", "DatabaseConnections", "DBInstanceIdentifier"}, nil
		}
	}

	return metricSpec{}, errors.Newf(errors.TypeTelemetryUnavailable, "no metric %q for resource type %q", metric, resourceType)
}

func reduceAverage(datapoints []types.Datapoint) float64 {
	if len(datapoints) == 0 {
		return 0.0
	}

	var sum float64
	for _, dp := range datapoints {
		sum += aws.ToFloat64(dp.Average)
	}
	return sum / float64(len(datapoints))
}
