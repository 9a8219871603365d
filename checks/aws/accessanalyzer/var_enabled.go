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

package accessanalyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/accessanalyzer"
	"github.com/aws/aws-sdk-go-v2/service/accessanalyzer/types"
)

const errorContext = "Error checking IAM Access Analyzer"

// Enabled every analyzer of the region must be active and at least one must exist
var Enabled = chk.Check{
	ID:          "aws-accessanalyzer-enabled",
	Title:       "IAM Access Analyzer is enabled",
	Description: "At least one IAM Access Analyzer should exist in the region and every analyzer should be active.",
	Controls: []chk.Control{
		{ID: "IAM.28", Document: "AWS Foundational Security Best Practices"},
		{ID: "1.20", Document: "CIS AWS Foundations Benchmark v1.4.0"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "IAM Access Analyzer",
	ShortServiceName: "access-analyzer",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectEnabled(ctx, accessanalyzer.NewFromConfig(cfg), settings.AWS.AccountID, settings.AWS.Region)
	},
}

func listAnalyzers(ctx context.Context, api API) ([]types.AnalyzerSummary, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.AnalyzerSummary], error) {
		out, err := api.ListAnalyzers(ctx, &accessanalyzer.ListAnalyzersInput{NextToken: pgr.Token(token)})
		if err != nil {
			return pgr.Page[types.AnalyzerSummary]{}, err
		}
		return pgr.Page[types.AnalyzerSummary]{Items: out.Analyzers, NextToken: aws.ToString(out.NextToken)}, nil
	})
}

// accountName names the account level placeholder
func accountName(accountID, region string) string {
	if accountID == "" {
		return "AWS Account"
	}
	return fmt.Sprintf("AWS Account %s (%s)", accountID, region)
}

func analyzerResource(analyzer types.AnalyzerSummary) rpt.Resource {
	name := aws.ToString(analyzer.Name)
	if name == "" {
		return rpt.Placeholder("Unknown Access Analyzer")
	}
	return rpt.Real(name, aws.ToString(analyzer.Arn))
}

func inspectEnabled(ctx context.Context, api API, accountID, region string) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.AnalyzerSummary]{
		ErrorContext: errorContext,
		ErrorName:    "Access Analyzer Check",
		EmptyName:    accountName(accountID, region),
		EmptyMessage: "No IAM Access Analyzer found in the region",
		List: func(ctx context.Context) ([]types.AnalyzerSummary, error) {
			return listAnalyzers(ctx, api)
		},
		Identify: analyzerResource,
		Evaluate: func(ctx context.Context, analyzer types.AnalyzerSummary) ([]rpt.Result, error) {
			if aws.ToString(analyzer.Name) == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Access Analyzer"), "Access Analyzer has no name")}, nil
			}
			resource := analyzerResource(analyzer)
			if analyzer.Status != types.AnalyzerStatusActive {
				message := fmt.Sprintf("Analyzer status is %s", strings.ToLower(string(analyzer.Status)))
				if analyzer.StatusReason != nil {
					message = fmt.Sprintf("%s, reason %s", message, strings.ToLower(string(analyzer.StatusReason.Code)))
				}
				return []rpt.Result{rpt.Fail(resource, message)}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
