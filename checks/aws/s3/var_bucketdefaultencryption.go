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

package s3

import (
	"context"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	errorContext            = "Error checking S3 buckets"
	noEncryptionErrorCode   = "ServerSideEncryptionConfigurationNotFoundError"
	bucketEncryptionContext = "Error checking bucket encryption"
)

// BucketDefaultEncryption buckets must have a default encryption configuration
var BucketDefaultEncryption = chk.Check{
	ID:          "aws-s3-bucket-default-encryption",
	Title:       "S3 buckets have default encryption",
	Description: "Every S3 bucket should have a server side encryption configuration with at least one rule.",
	Controls: []chk.Control{
		{ID: "S3.4", Document: "AWS Foundational Security Best Practices"},
		{ID: "2.1.1", Document: "CIS AWS Foundations Benchmark v1.4.0"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "Amazon S3",
	ShortServiceName: "s3",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectBucketDefaultEncryption(ctx, s3.NewFromConfig(cfg))
	},
}

func inspectBucketDefaultEncryption(ctx context.Context, api API) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.Bucket]{
		ErrorContext: errorContext,
		ErrorName:    "S3 Check",
		EmptyName:    "No S3 Buckets Found",
		EmptyMessage: "No S3 buckets found in the account",
		List: func(ctx context.Context) ([]types.Bucket, error) {
			return listBuckets(ctx, api)
		},
		Identify: bucketResource,
		Evaluate: func(ctx context.Context, bucket types.Bucket) ([]rpt.Result, error) {
			if bucket.Name == nil {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown S3 Bucket"), "S3 bucket has no name")}, nil
			}
			resource := bucketResource(bucket)
			region, err := inRegion(ctx, api, resource.Name)
			if err != nil {
				return nil, erm.Wrap(bucketEncryptionContext, err)
			}
			out, err := api.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: bucket.Name}, region)
			if err != nil {
				if hasErrorCode(err, noEncryptionErrorCode) {
					return []rpt.Result{rpt.Fail(resource, "Bucket has no default encryption configuration")}, nil
				}
				return nil, erm.Wrap(bucketEncryptionContext, err)
			}
			if out.ServerSideEncryptionConfiguration == nil || len(out.ServerSideEncryptionConfiguration.Rules) == 0 {
				return []rpt.Result{rpt.Fail(resource, "Bucket has no default encryption rule")}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
