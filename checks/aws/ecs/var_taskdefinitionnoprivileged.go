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

package ecs

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

const errorContext = "Error checking ECS task definitions"

// TaskDefinitionNoPrivileged containers must not run privileged
var TaskDefinitionNoPrivileged = chk.Check{
	ID:          "aws-ecs-task-definition-no-privileged",
	Title:       "ECS task definitions do not run privileged containers",
	Description: "No container of an active ECS task definition should have elevated privileges on the host.",
	Controls: []chk.Control{
		{ID: "ECS.4", Document: "AWS Foundational Security Best Practices"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Amazon Elastic Container Service",
	ShortServiceName: "ecs",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectTaskDefinitionNoPrivileged(ctx, ecs.NewFromConfig(cfg))
	},
}

func listTaskDefinitionArns(ctx context.Context, api API) ([]string, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[string], error) {
		out, err := api.ListTaskDefinitions(ctx, &ecs.ListTaskDefinitionsInput{
			NextToken: pgr.Token(token),
			Status:    types.TaskDefinitionStatusActive,
		})
		if err != nil {
			return pgr.Page[string]{}, err
		}
		return pgr.Page[string]{Items: out.TaskDefinitionArns, NextToken: aws.ToString(out.NextToken)}, nil
	})
}

func inspectTaskDefinitionNoPrivileged(ctx context.Context, api API) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[string]{
		ErrorContext: errorContext,
		ErrorName:    "ECS Check",
		EmptyName:    "No Task Definitions Found",
		EmptyMessage: "No active ECS task definitions found in the region",
		List: func(ctx context.Context) ([]string, error) {
			return listTaskDefinitionArns(ctx, api)
		},
		Identify: taskDefinitionResource,
		Evaluate: func(ctx context.Context, taskDefinitionArn string) ([]rpt.Result, error) {
			if taskDefinitionArn == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Task Definition"), "Task definition has no ARN")}, nil
			}
			out, err := api.DescribeTaskDefinition(ctx, &ecs.DescribeTaskDefinitionInput{TaskDefinition: aws.String(taskDefinitionArn)})
			if err != nil {
				return nil, erm.Wrap("Error checking task definition", err)
			}
			resource := taskDefinitionResource(taskDefinitionArn)
			if out.TaskDefinition == nil || len(out.TaskDefinition.ContainerDefinitions) == 0 {
				return []rpt.Result{rpt.NotApplicable(resource, "Task definition has no container definitions")}, nil
			}
			var privileged []string
			for _, container := range out.TaskDefinition.ContainerDefinitions {
				if aws.ToBool(container.Privileged) {
					privileged = append(privileged, aws.ToString(container.Name))
				}
			}
			if len(privileged) > 0 {
				return []rpt.Result{rpt.Fail(resource, fmt.Sprintf("Privileged containers: %s", strings.Join(privileged, ", ")))}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}

// taskDefinitionResource names the task definition family:revision
func taskDefinitionResource(taskDefinitionArn string) rpt.Resource {
	if taskDefinitionArn == "" {
		return rpt.Placeholder("Unknown Task Definition")
	}
	name := taskDefinitionArn
	if parsed, err := arn.Parse(taskDefinitionArn); err == nil {
		name = strings.TrimPrefix(parsed.Resource, "task-definition/")
	}
	return rpt.Real(name, taskDefinitionArn)
}
