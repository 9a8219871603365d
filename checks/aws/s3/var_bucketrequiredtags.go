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
	"fmt"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/BrunoReboul/cloudcheck/utilities/str"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	noTagSetErrorCode    = "NoSuchTagSet"
	bucketTaggingContext = "Error checking bucket tags"
)

// BucketRequiredTags buckets must carry the required tags
var BucketRequiredTags = chk.Check{
	ID:          "aws-s3-bucket-required-tags",
	Title:       "S3 buckets carry the required tags",
	Description: "Every S3 bucket should carry each required tag key, compared case sensitively.",
	Controls: []chk.Control{
		{ID: "S3.6", Document: "AWS Tagging Best Practices"},
	},
	Severity:         chk.SeverityLow,
	ServiceName:      "Amazon S3",
	ShortServiceName: "s3",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectBucketRequiredTags(ctx, s3.NewFromConfig(cfg), settings.Tags.Required)
	},
}

func inspectBucketRequiredTags(ctx context.Context, api API, requiredTags []string) rpt.Report {
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
				return nil, erm.Wrap(bucketTaggingContext, err)
			}
			tags := make(map[string]string)
			out, err := api.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{Bucket: bucket.Name}, region)
			if err != nil {
				if !hasErrorCode(err, noTagSetErrorCode) {
					return nil, erm.Wrap(bucketTaggingContext, err)
				}
			} else {
				for _, tag := range out.TagSet {
					tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
				}
			}
			missing := str.MissingKeys(requiredTags, tags)
			if len(missing) > 0 {
				return []rpt.Result{rpt.Fail(resource, fmt.Sprintf("Bucket is missing required tags %s", strings.Join(missing, ", ")))}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
