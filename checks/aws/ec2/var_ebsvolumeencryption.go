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
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const instancesErrorContext = "Error checking EC2 instances"

// EBSVolumeEncryption EBS volumes attached to instances must be encrypted
var EBSVolumeEncryption = chk.Check{
	ID:          "aws-ec2-ebs-volume-encryption",
	Title:       "EBS volumes attached to EC2 instances are encrypted",
	Description: "Every EBS volume attached to an EC2 instance should be encrypted at rest.",
	Controls: []chk.Control{
		{ID: "EC2.3", Document: "AWS Foundational Security Best Practices"},
		{ID: "2.2.1", Document: "CIS AWS Foundations Benchmark v1.4.0"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Amazon EC2",
	ShortServiceName: "ec2",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(instancesErrorContext, err)
		}
		return inspectEBSVolumeEncryption(ctx, ec2.NewFromConfig(cfg), scope{region: cfg.Region, accountID: settings.AWS.AccountID})
	},
}

func inspectEBSVolumeEncryption(ctx context.Context, api API, s scope) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.Instance]{
		ErrorContext: instancesErrorContext,
		ErrorName:    "EC2 Check",
		EmptyName:    "No EC2 Instances Found",
		EmptyMessage: "No EC2 instances found in the region",
		List: func(ctx context.Context) ([]types.Instance, error) {
			return listInstances(ctx, api)
		},
		Identify: func(instance types.Instance) rpt.Resource {
			return instanceResource(s, instance)
		},
		Evaluate: func(ctx context.Context, instance types.Instance) ([]rpt.Result, error) {
			if instance.InstanceId == nil {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown EC2 Instance"), "EC2 instance has no instance ID")}, nil
			}
			instanceID := aws.ToString(instance.InstanceId)
			var volumeIDs []string
			for _, mapping := range instance.BlockDeviceMappings {
				if mapping.Ebs != nil && mapping.Ebs.VolumeId != nil {
					volumeIDs = append(volumeIDs, aws.ToString(mapping.Ebs.VolumeId))
				}
			}
			if len(volumeIDs) == 0 {
				return []rpt.Result{rpt.NotApplicable(instanceResource(s, instance), "No EBS volumes attached to this instance")}, nil
			}
			volumes, err := describeVolumes(ctx, api, volumeIDs)
			if err != nil {
				return nil, erm.Wrap("Error checking EBS volumes", err)
			}
			if len(volumes) == 0 {
				return []rpt.Result{rpt.NotApplicable(instanceResource(s, instance), "Attached EBS volumes were not found")}, nil
			}
			results := make([]rpt.Result, 0, len(volumes))
			for _, volume := range volumes {
				volumeID := aws.ToString(volume.VolumeId)
				resource := s.resource("volume", volumeID)
				resource.Name = fmt.Sprintf("%s/%s", instanceID, volumeID)
				if aws.ToBool(volume.Encrypted) {
					results = append(results, rpt.Pass(resource))
					continue
				}
				results = append(results, rpt.Fail(resource, "EBS volume is not encrypted"))
			}
			return results, nil
		},
	})
}
