// Package awsinventory enumerates AWS resources into descriptors the
// waste scanner consumes. Every listing is all-or-nothing: a remote
// failure surfaces as INVENTORY_UNAVAILABLE and no partial inventory is
// returned, since a partial inventory would silently understate waste.
package awsinventory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/elC0mpa/finops-doctor/internal/errors"
	"github.com/elC0mpa/finops-doctor/model"
)

func NewService(awsconfig aws.Config) *service {
	return &service{
		ec2Client: ec2.NewFromConfig(awsconfig),
		rdsClient: rds.NewFromConfig(awsconfig),
	}
}

// ListResources implements service.InventoryService. The returned
// slice preserves provider enumeration order; callers must not rely on
// that order.
func (s *service) ListResources(ctx context.Context, resourceType model.ResourceType, stateFilter []string) ([]model.ResourceDescriptor, error) {
	switch resourceType {
	case model.ResourceTypeComputeInstance:
		return s.listInstances(ctx, stateFilter)
	case model.ResourceTypeBlockVolume:
		return s.listVolumes(ctx, stateFilter)
	case model.ResourceTypeStaticIP:
		return s.listAddresses(ctx, stateFilter)
	case model.ResourceTypeSnapshot:
		return s.listSnapshots(ctx, stateFilter)
	case model.ResourceTypeDatabaseInstance:
		return s.listDBInstances(ctx, stateFilter)
	}

	return nil, errors.Newf(errors.TypeUnsupportedResource, "unsupported resource type %q", resourceType)
}

func (s *service) listInstances(ctx context.Context, stateFilter []string) ([]model.ResourceDescriptor, error) {
	input := &ec2.DescribeInstancesInput{}
	if len(stateFilter) > 0 {
		input.Filters = []ec2types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: stateFilter,
			},
		}
	}

	var descriptors []model.ResourceDescriptor

	paginator := ec2.NewDescribeInstancesPaginator(s.ec2Client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.TypeInventoryUnavailable, "describe instances failed", err)
		}

		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				state := ""
				if instance.State != nil {
					state = string(instance.State.Name)
				}

				descriptors = append(descriptors, model.ResourceDescriptor{
					ResourceID:  aws.ToString(instance.InstanceId),
					Type:        model.ResourceTypeComputeInstance,
					SizeClass:   string(instance.InstanceType),
					State:       state,
					Tags:        tagMap(instance.Tags),
					StateReason: aws.ToString(instance.StateTransitionReason),
				})
			}
		}
	}

	return descriptors, nil
}

func (s *service) listVolumes(ctx context.Context, stateFilter []string) ([]model.ResourceDescriptor, error) {
	input := &ec2.DescribeVolumesInput{}
	if len(stateFilter) > 0 {
		input.Filters = []ec2types.Filter{
			{
				Name:   aws.String("status"),
				Values: stateFilter,
			},
		}
	}

	var descriptors []model.ResourceDescriptor

	paginator := ec2.NewDescribeVolumesPaginator(s.ec2Client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.TypeInventoryUnavailable, "describe volumes failed", err)
		}

		for _, volume := range output.Volumes {
			descriptors = append(descriptors, model.ResourceDescriptor{
				ResourceID: aws.ToString(volume.VolumeId),
				Type:       model.ResourceTypeBlockVolume,
				SizeClass:  string(volume.VolumeType),
				State:      string(volume.State),
				Tags:       tagMap(volume.Tags),
				SizeGB:     aws.ToInt32(volume.Size),
			})
		}
	}

	return descriptors, nil
}

func (s *service) listAddresses(ctx context.Context, stateFilter []string) ([]model.ResourceDescriptor, error) {
	output, err := s.ec2Client.DescribeAddresses(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInventoryUnavailable, "describe addresses failed", err)
	}

	var descriptors []model.ResourceDescriptor

	for _, address := range output.Addresses {
		state := model.StateUnassociated
		if address.AssociationId != nil {
			state = model.StateAssociated
		}
		if !stateAccepted(state, stateFilter) {
			continue
		}

		descriptors = append(descriptors, model.ResourceDescriptor{
			ResourceID: aws.ToString(address.AllocationId),
			Type:       model.ResourceTypeStaticIP,
			SizeClass:  string(address.Domain),
			State:      state,
			Tags:       tagMap(address.Tags),
			SourceID:   aws.ToString(address.InstanceId),
		})
	}

	return descriptors, nil
}

func (s *service) listSnapshots(ctx context.Context, stateFilter []string) ([]model.ResourceDescriptor, error) {
	input := &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
	}

	var descriptors []model.ResourceDescriptor

	paginator := ec2.NewDescribeSnapshotsPaginator(s.ec2Client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.TypeInventoryUnavailable, "describe snapshots failed", err)
		}

		for _, snapshot := range output.Snapshots {
			state := string(snapshot.State)
			if !stateAccepted(state, stateFilter) {
				continue
			}

			descriptors = append(descriptors, model.ResourceDescriptor{
				ResourceID: aws.ToString(snapshot.SnapshotId),
				Type:       model.ResourceTypeSnapshot,
				SizeClass:  string(snapshot.StorageTier),
				State:      state,
				Tags:       tagMap(snapshot.Tags),
				SizeGB:     aws.ToInt32(snapshot.VolumeSize),
				SourceID:   aws.ToString(snapshot.VolumeId),
			})
		}
	}

	return descriptors, nil
}

func (s *service) listDBInstances(ctx context.Context, stateFilter []string) ([]model.ResourceDescriptor, error) {
	var descriptors []model.ResourceDescriptor

	paginator := rds.NewDescribeDBInstancesPaginator(s.rdsClient, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.TypeInventoryUnavailable, "describe db instances failed", err)
		}

		for _, instance := range output.DBInstances {
			state := aws.ToString(instance.DBInstanceStatus)
			if !stateAccepted(state, stateFilter) {
				continue
			}

			tags := make(map[string]string, len(instance.TagList))
			for _, tag := range instance.TagList {
				tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
			}
			tags["Engine"] = aws.ToString(instance.Engine)

			descriptors = append(descriptors, model.ResourceDescriptor{
				ResourceID: aws.ToString(instance.DBInstanceIdentifier),
				Type:       model.ResourceTypeDatabaseInstance,
				SizeClass:  aws.ToString(instance.DBInstanceClass),
				State:      state,
				Tags:       tags,
			})
		}
	}

	return descriptors, nil
}

func stateAccepted(state string, stateFilter []string) bool {
	if len(stateFilter) == 0 {
		return true
	}
	for _, s := range stateFilter {
		if s == state {
			return true
		}
	}
	return false
}

func tagMap(tags []ec2types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return m
}
