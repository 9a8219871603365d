// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the 'License');
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an 'AS IS' BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ec2

import (
	"context"

	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

func listInstances(ctx context.Context, api API) ([]types.Instance, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.Instance], error) {
		out, err := api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{NextToken: pgr.Token(token)})
		if err != nil {
			return pgr.Page[types.Instance]{}, err
		}
		var instances []types.Instance
		for _, reservation := range out.Reservations {
			instances = append(instances, reservation.Instances...)
		}
		return pgr.Page[types.Instance]{Items: instances, NextToken: aws.ToString(out.NextToken)}, nil
	})
}

func listSecurityGroups(ctx context.Context, api API) ([]types.SecurityGroup, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.SecurityGroup], error) {
		out, err := api.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{NextToken: pgr.Token(token)})
		if err != nil {
			return pgr.Page[types.SecurityGroup]{}, err
		}
		return pgr.Page[types.SecurityGroup]{Items: out.SecurityGroups, NextToken: aws.ToString(out.NextToken)}, nil
	})
}

// describeVolumes returns the volumes of ids, following pages in response order
func describeVolumes(ctx context.Context, api API, ids []string) ([]types.Volume, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.Volume], error) {
		out, err := api.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{VolumeIds: ids, NextToken: pgr.Token(token)})
		if err != nil {
			return pgr.Page[types.Volume]{}, err
		}
		return pgr.Page[types.Volume]{Items: out.Volumes, NextToken: aws.ToString(out.NextToken)}, nil
	})
}

// resource ARN is left empty when the account ID is unknown
func (s scope) resource(resourceType, id string) rpt.Resource {
	if s.accountID == "" {
		return rpt.Real(id, "")
	}
	return rpt.Real(id, arn.ARN{
		Partition: "aws",
		Service:   "ec2",
		Region:    s.region,
		AccountID: s.accountID,
		Resource:  resourceType + "/" + id,
	}.String())
}

func instanceResource(s scope, instance types.Instance) rpt.Resource {
	if instance.InstanceId == nil {
		return rpt.Placeholder("Unknown EC2 Instance")
	}
	return s.resource("instance", aws.ToString(instance.InstanceId))
}
