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
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const securityGroupsErrorContext = "Error checking security groups"

var anywhere = []string{"0.0.0.0/0", "::/0"}

// SecurityGroupDefaultPorts security groups must not expose well-known ports to the internet
var SecurityGroupDefaultPorts = chk.Check{
	ID:          "aws-ec2-security-group-default-ports",
	Title:       "Security groups do not open well-known ports to the internet",
	Description: "No security group ingress rule should allow 0.0.0.0/0 or ::/0 on a well-known default port.",
	Controls: []chk.Control{
		{ID: "EC2.19", Document: "AWS Foundational Security Best Practices"},
		{ID: "5.2", Document: "CIS AWS Foundations Benchmark v3.0.0"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Amazon EC2",
	ShortServiceName: "ec2",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(securityGroupsErrorContext, err)
		}
		return inspectSecurityGroupDefaultPorts(ctx, ec2.NewFromConfig(cfg), scope{region: cfg.Region, accountID: settings.AWS.AccountID}, settings.Ports.WellKnown)
	},
}

func inspectSecurityGroupDefaultPorts(ctx context.Context, api API, s scope, wellKnownPorts []int64) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.SecurityGroup]{
		ErrorContext: securityGroupsErrorContext,
		ErrorName:    "Security Group Check",
		EmptyName:    "No Security Groups Found",
		EmptyMessage: "No security groups found in the region",
		List: func(ctx context.Context) ([]types.SecurityGroup, error) {
			return listSecurityGroups(ctx, api)
		},
		Identify: func(group types.SecurityGroup) rpt.Resource {
			return securityGroupResource(s, group)
		},
		Evaluate: func(ctx context.Context, group types.SecurityGroup) ([]rpt.Result, error) {
			if group.GroupId == nil {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Security Group"), "Security group has no group ID")}, nil
			}
			resource := securityGroupResource(s, group)
			exposed := exposedPorts(group.IpPermissions, wellKnownPorts)
			if len(exposed) > 0 {
				return []rpt.Result{rpt.Fail(resource, fmt.Sprintf("Security group allows ingress from anywhere on well-known ports %s", joinPorts(exposed)))}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}

func securityGroupResource(s scope, group types.SecurityGroup) rpt.Resource {
	if group.GroupId == nil {
		return rpt.Placeholder("Unknown Security Group")
	}
	resource := s.resource("security-group", aws.ToString(group.GroupId))
	if name := aws.ToString(group.GroupName); name != "" {
		resource.Name = fmt.Sprintf("%s (%s)", name, aws.ToString(group.GroupId))
	}
	return resource
}

// exposedPorts returns the well-known ports, in wellKnownPorts order, reachable from anywhere
func exposedPorts(permissions []types.IpPermission, wellKnownPorts []int64) (exposed []int64) {
	for _, port := range wellKnownPorts {
		for _, permission := range permissions {
			if openToAnywhere(permission) && coversPort(permission, port) {
				exposed = append(exposed, port)
				break
			}
		}
	}
	return exposed
}

func openToAnywhere(permission types.IpPermission) bool {
	for _, ipRange := range permission.IpRanges {
		if aws.ToString(ipRange.CidrIp) == anywhere[0] {
			return true
		}
	}
	for _, ipRange := range permission.Ipv6Ranges {
		if aws.ToString(ipRange.CidrIpv6) == anywhere[1] {
			return true
		}
	}
	return false
}

func coversPort(permission types.IpPermission, port int64) bool {
	protocol := strings.ToLower(aws.ToString(permission.IpProtocol))
	if protocol == "-1" {
		return true
	}
	if protocol != "tcp" && protocol != "udp" && protocol != "6" && protocol != "17" {
		return false
	}
	if permission.FromPort == nil || permission.ToPort == nil {
		return true
	}
	from, to := int64(aws.ToInt32(permission.FromPort)), int64(aws.ToInt32(permission.ToPort))
	if from == -1 && to == -1 {
		return true
	}
	return from <= port && port <= to
}

func joinPorts(ports []int64) string {
	parts := make([]string, len(ports))
	for i, port := range ports {
		parts[i] = fmt.Sprintf("%d", port)
	}
	return strings.Join(parts, ", ")
}
