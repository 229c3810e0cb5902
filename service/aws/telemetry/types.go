package awstelemetry

import (
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

type service struct {
	client *cloudwatch.Client
}

// metricSpec maps a neutral metric name onto its CloudWatch identity
// for a given resource type
type metricSpec struct {
	namespace  string
	metricName string
	dimension  string
}
