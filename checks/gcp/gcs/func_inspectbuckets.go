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

package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
)

const errorContext = "Error checking Cloud Storage buckets"

// execute wires the project and the storage client to an inspection
func execute(inspect func(ctx context.Context, api API, projectID string) rpt.Report) chk.Execute {
	return func(ctx context.Context, settings solution.Settings) rpt.Report {
		projectID, err := settings.GCPProject()
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		c, err := newClient(ctx)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		defer c.Close()
		return inspect(ctx, c, projectID)
	}
}

// inspectBuckets applies rule to every bucket of the project
func inspectBuckets(ctx context.Context, api API, projectID string, rule func(bucket *storage.BucketAttrs) (bool, string)) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[*storage.BucketAttrs]{
		ErrorContext: errorContext,
		ErrorName:    "Cloud Storage Check",
		EmptyName:    "No Cloud Storage Buckets Found",
		EmptyMessage: "No Cloud Storage buckets found in the project",
		List: func(ctx context.Context) ([]*storage.BucketAttrs, error) {
			return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[*storage.BucketAttrs], error) {
				return api.ListBuckets(ctx, projectID, token)
			})
		},
		Identify: bucketResource,
		Evaluate: func(ctx context.Context, bucket *storage.BucketAttrs) ([]rpt.Result, error) {
			if bucket == nil || bucket.Name == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Cloud Storage Bucket"), "Cloud Storage bucket has no name")}, nil
			}
			resource := bucketResource(bucket)
			if ok, message := rule(bucket); !ok {
				return []rpt.Result{rpt.Fail(resource, message)}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}

func bucketResource(bucket *storage.BucketAttrs) rpt.Resource {
	if bucket == nil || bucket.Name == "" {
		return rpt.Placeholder("Unknown Cloud Storage Bucket")
	}
	return rpt.Real(bucket.Name, "//storage.googleapis.com/"+bucket.Name)
}
