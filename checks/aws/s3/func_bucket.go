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
	"errors"

	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ListBuckets answers in a single page
func listBuckets(ctx context.Context, api API) ([]types.Bucket, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.Bucket], error) {
		out, err := api.ListBuckets(ctx, &s3.ListBucketsInput{})
		if err != nil {
			return pgr.Page[types.Bucket]{}, err
		}
		return pgr.Page[types.Bucket]{Items: out.Buckets}, nil
	})
}

// inRegion returns the option sending a call to the bucket region
// An empty location constraint is us-east-1, EU is the legacy name of eu-west-1
func inRegion(ctx context.Context, api API, bucket string) (func(*s3.Options), error) {
	out, err := api.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: aws.String(bucket)})
	if err != nil {
		return nil, err
	}
	region := string(out.LocationConstraint)
	switch region {
	case "":
		region = "us-east-1"
	case "EU":
		region = "eu-west-1"
	}
	return func(o *s3.Options) {
		o.Region = region
	}, nil
}

func bucketResource(bucket types.Bucket) rpt.Resource {
	name := aws.ToString(bucket.Name)
	if name == "" {
		return rpt.Placeholder("Unknown S3 Bucket")
	}
	return rpt.Real(name, "arn:aws:s3:::"+name)
}

// hasErrorCode tells if err is an S3 API error with code
func hasErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
