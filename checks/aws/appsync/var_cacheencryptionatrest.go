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

package appsync

import (
	"context"
	"errors"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	"github.com/aws/aws-sdk-go-v2/service/appsync/types"
)

const errorContext = "Error checking AppSync APIs"

// CacheEncryptionAtRest AppSync API caches must be encrypted at rest
var CacheEncryptionAtRest = chk.Check{
	ID:          "aws-appsync-cache-encryption-at-rest",
	Title:       "AppSync API cache encrypted at rest",
	Description: "An AppSync GraphQL API with a server side cache should encrypt the cached data at rest.",
	Controls: []chk.Control{
		{ID: "AppSync.6", Document: "AWS Foundational Security Best Practices"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "AWS AppSync",
	ShortServiceName: "appsync",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectCacheEncryptionAtRest(ctx, appsync.NewFromConfig(cfg))
	},
}

func inspectCacheEncryptionAtRest(ctx context.Context, api API) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.GraphqlApi]{
		ErrorContext: errorContext,
		ErrorName:    "AppSync Check",
		EmptyName:    "No AppSync APIs Found",
		EmptyMessage: "No AppSync GraphQL APIs found in the region",
		List: func(ctx context.Context) ([]types.GraphqlApi, error) {
			return listGraphqlAPIs(ctx, api)
		},
		Identify: identify,
		Evaluate: func(ctx context.Context, graphqlAPI types.GraphqlApi) ([]rpt.Result, error) {
			if graphqlAPI.ApiId == nil {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown AppSync API"), "AppSync API has no API ID")}, nil
			}
			resource := identify(graphqlAPI)
			out, err := api.GetApiCache(ctx, &appsync.GetApiCacheInput{ApiId: graphqlAPI.ApiId})
			if err != nil {
				var notFound *types.NotFoundException
				if errors.As(err, &notFound) {
					return []rpt.Result{rpt.NotApplicable(resource, "No cache configuration found for this API")}, nil
				}
				return nil, erm.Wrap("Error checking AppSync API cache", err)
			}
			if out == nil || out.ApiCache == nil {
				return []rpt.Result{rpt.NotApplicable(resource, "No cache configuration found for this API")}, nil
			}
			if !out.ApiCache.AtRestEncryptionEnabled {
				return []rpt.Result{rpt.Fail(resource, "AppSync API cache is not encrypted at rest")}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}

func identify(graphqlAPI types.GraphqlApi) rpt.Resource {
	name := aws.ToString(graphqlAPI.Name)
	if name == "" {
		name = aws.ToString(graphqlAPI.ApiId)
	}
	if name == "" {
		return rpt.Placeholder("Unknown AppSync API")
	}
	return rpt.Real(name, aws.ToString(graphqlAPI.Arn))
}
