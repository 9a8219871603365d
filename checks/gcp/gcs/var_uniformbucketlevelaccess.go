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
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
)

// UniformBucketLevelAccess buckets must use uniform bucket-level access
var UniformBucketLevelAccess = chk.Check{
	ID:          "gcp-storage-uniform-bucket-level-access",
	Title:       "Cloud Storage buckets use uniform bucket-level access",
	Description: "Every Cloud Storage bucket should disable object ACLs by enabling uniform bucket-level access.",
	Controls: []chk.Control{
		{ID: "5.2", Document: "CIS Google Cloud Platform Foundation Benchmark v1.3.0"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "Cloud Storage",
	ShortServiceName: "storage",
	Provider:         chk.GCP,
	Execute:          execute(inspectUniformBucketLevelAccess),
}

func inspectUniformBucketLevelAccess(ctx context.Context, api API, projectID string) rpt.Report {
	return inspectBuckets(ctx, api, projectID, func(bucket *storage.BucketAttrs) (bool, string) {
		return bucket.UniformBucketLevelAccess.Enabled, "Uniform bucket-level access is not enabled"
	})
}
