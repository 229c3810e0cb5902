package awselb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/elC0mpa/finops-doctor/internal/errors"
	"github.com/elC0mpa/finops-doctor/model"
)

func NewService(awsconfig aws.Config) *service {
	client := elb.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

// GetOrphanedLoadBalancers implements service.LoadBalancerService: it
// returns ALBs/NLBs that no target group points at.
func (s *service) GetOrphanedLoadBalancers(ctx context.Context) ([]model.OrphanedLoadBalancer, error) {
	lbOutput, err := s.client.DescribeLoadBalancers(ctx, &elb.DescribeLoadBalancersInput{})
	if err != nil {
		return nil, errors.Wrap(errors.TypeInventoryUnavailable, "describe load balancers failed", err)
	}

	tgOutput, err := s.client.DescribeTargetGroups(ctx, &elb.DescribeTargetGroupsInput{})
	if err != nil {
		return nil, errors.Wrap(errors.TypeInventoryUnavailable, "describe target groups failed", err)
	}

	usedLbArns := make(map[string]bool)

	for _, tg := range tgOutput.TargetGroups {
		for _, lbArn := range tg.LoadBalancerArns {
			usedLbArns[lbArn] = true
		}
	}

	var orphaned []model.OrphanedLoadBalancer

	for _, lb := range lbOutput.LoadBalancers {
		if lb.Type != types.LoadBalancerTypeEnumApplication && lb.Type != types.LoadBalancerTypeEnumNetwork {
			continue
		}

		arn := aws.ToString(lb.LoadBalancerArn)
		if usedLbArns[arn] {
			continue
		}

		orphaned = append(orphaned, model.OrphanedLoadBalancer{
			Name: aws.ToString(lb.LoadBalancerName),
			ARN:  arn,
			Type: string(lb.Type),
		})
	}

	return orphaned, nil
}
