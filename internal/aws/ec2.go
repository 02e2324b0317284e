package aws

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Instance states reported by EC2.
const (
	StatePending      = "pending"
	StateRunning      = "running"
	StateStopping     = "stopping"
	StateStopped      = "stopped"
	StateTerminated   = "terminated"
	StateShuttingDown = "shutting-down"
	StateRebooting    = "rebooting"
)

// Instance represents an EC2 instance with relevant information
type Instance struct {
	ID           string
	Name         string
	State        string
	InstanceType string
	AZ           string
}

// ListInstances retrieves the EC2 instances of the first DescribeInstances
// page in region, ordered by instance ID.
func (c *Client) ListInstances(ctx context.Context, region string) ([]Instance, error) {
	input := &ec2.DescribeInstancesInput{}
	result, err := c.EC2.DescribeInstances(ctx, input, inEC2Region(region))
	if err != nil {
		return nil, classify("describe instances", err)
	}

	return instancesFromReservations(result.Reservations), nil
}

func instancesFromReservations(reservations []types.Reservation) []Instance {
	instances := []Instance{}
	for _, reservation := range reservations {
		for _, inst := range reservation.Instances {
			instance := Instance{
				ID:           getString(inst.InstanceId),
				InstanceType: string(inst.InstanceType),
				Name:         getNameTag(inst.Tags),
			}
			if inst.State != nil {
				instance.State = string(inst.State.Name)
			}
			if inst.Placement != nil {
				instance.AZ = getString(inst.Placement.AvailabilityZone)
			}
			instances = append(instances, instance)
		}
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].ID < instances[j].ID
	})
	return instances
}

// getNameTag extracts the Name tag from EC2 tags
func getNameTag(tags []types.Tag) string {
	for _, tag := range tags {
		if tag.Key != nil && *tag.Key == "Name" && tag.Value != nil {
			return *tag.Value
		}
	}
	return ""
}

func inEC2Region(region string) func(*ec2.Options) {
	return func(o *ec2.Options) {
		if region != "" {
			o.Region = region
		}
	}
}
