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

package configservice

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
	"github.com/aws/aws-sdk-go-v2/service/configservice"
	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
)

const errorContext = "Error checking Config recorders"

// RecorderEnabled every configuration recorder of the region must be recording
var RecorderEnabled = chk.Check{
	ID:          "aws-config-recorder-enabled",
	Title:       "AWS Config recorders are recording",
	Description: "Every AWS Config configuration recorder in the region should be recording.",
	Controls: []chk.Control{
		{ID: "Config.1", Document: "AWS Foundational Security Best Practices"},
		{ID: "3.5", Document: "CIS AWS Foundations Benchmark v1.4.0"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "AWS Config",
	ShortServiceName: "config",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectRecorderEnabled(ctx, configservice.NewFromConfig(cfg))
	},
}

// DescribeConfigurationRecorders is not paginated
func listRecorders(ctx context.Context, api API) ([]types.ConfigurationRecorder, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.ConfigurationRecorder], error) {
		out, err := api.DescribeConfigurationRecorders(ctx, &configservice.DescribeConfigurationRecordersInput{})
		if err != nil {
			return pgr.Page[types.ConfigurationRecorder]{}, err
		}
		return pgr.Page[types.ConfigurationRecorder]{Items: out.ConfigurationRecorders}, nil
	})
}

func recorderResource(recorder types.ConfigurationRecorder) rpt.Resource {
	name := aws.ToString(recorder.Name)
	if name == "" {
		return rpt.Placeholder("Unknown Config Recorder")
	}
	return rpt.Real(name, "")
}

func inspectRecorderEnabled(ctx context.Context, api API) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.ConfigurationRecorder]{
		ErrorContext: errorContext,
		ErrorName:    "Config Check",
		EmptyName:    "No Config Recorders Found",
		EmptyMessage: "No AWS Config configuration recorders found in the region",
		List: func(ctx context.Context) ([]types.ConfigurationRecorder, error) {
			return listRecorders(ctx, api)
		},
		Identify: recorderResource,
		Evaluate: func(ctx context.Context, recorder types.ConfigurationRecorder) ([]rpt.Result, error) {
			if aws.ToString(recorder.Name) == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Config Recorder"), "Config recorder has no name")}, nil
			}
			resource := recorderResource(recorder)
			out, err := api.DescribeConfigurationRecorderStatus(ctx, &configservice.DescribeConfigurationRecorderStatusInput{
				ConfigurationRecorderNames: []string{aws.ToString(recorder.Name)},
			})
			if err != nil {
				return nil, erm.Wrap("Error checking recorder status", err)
			}
			if len(out.ConfigurationRecordersStatus) == 0 {
				return []rpt.Result{rpt.Fail(resource, "No status found for this recorder")}, nil
			}
			status := out.ConfigurationRecordersStatus[0]
			if !status.Recording {
				message := "Recorder is not recording"
				if status.LastStatus != "" {
					message = fmt.Sprintf("%s, last status %s", message, strings.ToLower(string(status.LastStatus)))
				}
				return []rpt.Result{rpt.Fail(resource, message)}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
