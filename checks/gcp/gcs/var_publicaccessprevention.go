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

// PublicAccessPrevention buckets must enforce public access prevention
var PublicAccessPrevention = chk.Check{
	ID:          "gcp-storage-public-access-prevention",
	Title:       "Cloud Storage buckets enforce public access prevention",
	Description: "Every Cloud Storage bucket should enforce public access prevention so it cannot be shared with allUsers or allAuthenticatedUsers.",
	Controls: []chk.Control{
		{ID: "5.1", Document: "CIS Google Cloud Platform Foundation Benchmark v1.3.0"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Cloud Storage",
	ShortServiceName: "storage",
	Provider:         chk.GCP,
	Execute:          execute(inspectPublicAccessPrevention),
}

func inspectPublicAccessPrevention(ctx context.Context, api API, projectID string) rpt.Report {
	return inspectBuckets(ctx, api, projectID, func(bucket *storage.BucketAttrs) (bool, string) {
		return bucket.PublicAccessPrevention == storage.PublicAccessPreventionEnforced, "Public access prevention is not enforced"
	})
}
