package awselb

import (
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

type service struct {
	client *elb.Client
}
