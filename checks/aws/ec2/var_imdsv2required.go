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

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// IMDSv2Required instances must require session tokens on the metadata service
var IMDSv2Required = chk.Check{
	ID:          "aws-ec2-imdsv2-required",
	Title:       "EC2 instances require IMDSv2",
	Description: "EC2 instances should only accept session oriented Instance Metadata Service version 2 requests.",
	Controls: []chk.Control{
		{ID: "EC2.8", Document: "AWS Foundational Security Best Practices"},
		{ID: "5.6", Document: "CIS AWS Foundations Benchmark v3.0.0"},
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
		return inspectIMDSv2Required(ctx, ec2.NewFromConfig(cfg), scope{region: cfg.Region, accountID: settings.AWS.AccountID})
	},
}

func inspectIMDSv2Required(ctx context.Context, api API, s scope) rpt.Report {
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
			resource := instanceResource(s, instance)
			if instance.State != nil && instance.State.Name == types.InstanceStateNameTerminated {
				return []rpt.Result{rpt.NotApplicable(resource, "Instance is terminated")}, nil
			}
			if instance.MetadataOptions == nil {
				return []rpt.Result{rpt.Fail(resource, "Instance metadata options are not set")}, nil
			}
			if instance.MetadataOptions.HttpEndpoint == types.InstanceMetadataEndpointStateDisabled {
				return []rpt.Result{rpt.NotApplicable(resource, "Instance metadata service is disabled")}, nil
			}
			if instance.MetadataOptions.HttpTokens != types.HttpTokensStateRequired {
				return []rpt.Result{rpt.Fail(resource, "Instance does not require IMDSv2 session tokens")}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
