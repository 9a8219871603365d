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

package apigateway

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"
)

const errorContext = "Error checking API Gateway REST APIs"

// StageCacheEncryption REST API stage caches must be encrypted
var StageCacheEncryption = chk.Check{
	ID:          "aws-apigateway-stage-cache-encryption",
	Title:       "API Gateway REST API stage cache data encrypted",
	Description: "When a REST API stage has a cache cluster, every method setting should encrypt the cached responses.",
	Controls: []chk.Control{
		{ID: "APIGateway.5", Document: "AWS Foundational Security Best Practices"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "Amazon API Gateway",
	ShortServiceName: "apigateway",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectStageCacheEncryption(ctx, apigateway.NewFromConfig(cfg), cfg.Region)
	},
}

func listRestAPIs(ctx context.Context, api API) ([]types.RestApi, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.RestApi], error) {
		out, err := api.GetRestApis(ctx, &apigateway.GetRestApisInput{Position: pgr.Token(token)})
		if err != nil {
			return pgr.Page[types.RestApi]{}, err
		}
		return pgr.Page[types.RestApi]{Items: out.Items, NextToken: aws.ToString(out.Position)}, nil
	})
}

func inspectStageCacheEncryption(ctx context.Context, api API, region string) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.RestApi]{
		ErrorContext: errorContext,
		ErrorName:    "API Gateway Check",
		EmptyName:    "No REST APIs Found",
		EmptyMessage: "No API Gateway REST APIs found in the region",
		List: func(ctx context.Context) ([]types.RestApi, error) {
			return listRestAPIs(ctx, api)
		},
		Identify: func(restAPI types.RestApi) rpt.Resource {
			return restAPIResource(restAPI, region)
		},
		Evaluate: func(ctx context.Context, restAPI types.RestApi) ([]rpt.Result, error) {
			if restAPI.Id == nil {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown REST API"), "REST API has no ID")}, nil
			}
			out, err := api.GetStages(ctx, &apigateway.GetStagesInput{RestApiId: restAPI.Id})
			if err != nil {
				return nil, erm.Wrap("Error checking REST API stages", err)
			}
			if len(out.Item) == 0 {
				return []rpt.Result{rpt.NotApplicable(restAPIResource(restAPI, region), "No stages found for this REST API")}, nil
			}
			results := make([]rpt.Result, 0, len(out.Item))
			for _, stage := range out.Item {
				results = append(results, evaluateStage(restAPI, stage, region))
			}
			return results, nil
		},
	})
}

func evaluateStage(restAPI types.RestApi, stage types.Stage, region string) rpt.Result {
	stageName := aws.ToString(stage.StageName)
	resource := rpt.Real(fmt.Sprintf("%s/%s", apiName(restAPI), stageName), arn.ARN{
		Partition: "aws",
		Service:   "apigateway",
		Region:    region,
		Resource:  fmt.Sprintf("/restapis/%s/stages/%s", aws.ToString(restAPI.Id), stageName),
	}.String())
	if !stage.CacheClusterEnabled {
		return rpt.NotApplicable(resource, "Stage cache cluster is not enabled")
	}
	if len(stage.MethodSettings) == 0 {
		return rpt.Fail(resource, "Stage cache is enabled but no method setting encrypts cache data")
	}
	var unencrypted []string
	for methodPath, setting := range stage.MethodSettings {
		if !setting.CacheDataEncrypted {
			unencrypted = append(unencrypted, methodPath)
		}
	}
	if len(unencrypted) > 0 {
		sort.Strings(unencrypted)
		return rpt.Fail(resource, fmt.Sprintf("Cache data is not encrypted for methods %s", strings.Join(unencrypted, ", ")))
	}
	return rpt.Pass(resource)
}

func restAPIResource(restAPI types.RestApi, region string) rpt.Resource {
	if restAPI.Id == nil {
		return rpt.Placeholder("Unknown REST API")
	}
	return rpt.Real(apiName(restAPI), arn.ARN{
		Partition: "aws",
		Service:   "apigateway",
		Region:    region,
		Resource:  "/restapis/" + aws.ToString(restAPI.Id),
	}.String())
}

func apiName(restAPI types.RestApi) string {
	if name := aws.ToString(restAPI.Name); name != "" {
		return name
	}
	return aws.ToString(restAPI.Id)
}
