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

package cai

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/BrunoReboul/cloudcheck/utilities/str"
	assetpb "google.golang.org/genproto/googleapis/cloud/asset/v1"
)

const errorContext = "Error checking resource labels"

// labelledAssetTypes asset types supporting labels
var labelledAssetTypes = []string{
	"bigquery.googleapis.com/Dataset",
	"bigquery.googleapis.com/Table",
	"cloudfunctions.googleapis.com/CloudFunction",
	"compute.googleapis.com/Disk",
	"compute.googleapis.com/Instance",
	"container.googleapis.com/Cluster",
	"pubsub.googleapis.com/Subscription",
	"pubsub.googleapis.com/Topic",
	"sqladmin.googleapis.com/Instance",
	"storage.googleapis.com/Bucket",
}

// RequiredLabels labelled resources must carry every required label
var RequiredLabels = chk.Check{
	ID:          "gcp-asset-required-labels",
	Title:       "Resources carry the required labels",
	Description: "Every labelled resource of the project, as found by Cloud Asset Inventory, should carry each required label key.",
	Controls: []chk.Control{
		{ID: "LBL.1", Document: "Google Cloud labelling best practices"},
	},
	Severity:         chk.SeverityLow,
	ServiceName:      "Cloud Asset Inventory",
	ShortServiceName: "cloudasset",
	Provider:         chk.GCP,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		projectID, err := settings.GCPProject()
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		c, err := newClient(ctx)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		defer c.Close()
		return inspectRequiredLabels(ctx, c, projectID, settings.Labels.Required)
	},
}

// assetResource names a resource <service>-<type>/<display name>, the full resource name goes in the identifier
func assetResource(result *assetpb.ResourceSearchResult) rpt.Resource {
	if result.GetName() == "" {
		return rpt.Placeholder("Unknown Asset")
	}
	displayName := result.GetDisplayName()
	if displayName == "" {
		nameParts := strings.Split(result.GetName(), "/")
		displayName = nameParts[len(nameParts)-1]
	}
	return rpt.Real(fmt.Sprintf("%s/%s", shortType(result.GetAssetType()), displayName), result.GetName())
}

func inspectRequiredLabels(ctx context.Context, api API, projectID string, requiredLabels []string) rpt.Report {
	scope := fmt.Sprintf("projects/%s", projectID)
	return rpt.Assemble(ctx, rpt.Inspection[*assetpb.ResourceSearchResult]{
		ErrorContext: errorContext,
		ErrorName:    "Asset Label Check",
		EmptyName:    "No Labelled Resources Found",
		EmptyMessage: "No resources supporting labels found in the project",
		List: func(ctx context.Context) ([]*assetpb.ResourceSearchResult, error) {
			return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[*assetpb.ResourceSearchResult], error) {
				return api.SearchResources(ctx, scope, labelledAssetTypes, token)
			})
		},
		Identify: assetResource,
		Evaluate: func(ctx context.Context, result *assetpb.ResourceSearchResult) ([]rpt.Result, error) {
			if result.GetName() == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Asset"), "Asset has no resource name")}, nil
			}
			resource := assetResource(result)
			missing := str.MissingKeys(requiredLabels, result.GetLabels())
			if len(missing) > 0 {
				return []rpt.Result{rpt.Fail(resource, fmt.Sprintf("Resource is missing required labels %s", strings.Join(missing, ", ")))}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
