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

package gbq

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
)

const errorContext = "Error checking BigQuery datasets"

// DatasetCMEK datasets must default to a customer managed encryption key
var DatasetCMEK = chk.Check{
	ID:          "gcp-bigquery-dataset-cmek",
	Title:       "BigQuery datasets use a customer-managed encryption key",
	Description: "Every BigQuery dataset should set a default Cloud KMS key so new tables are encrypted with a customer-managed key.",
	Controls: []chk.Control{
		{ID: "7.3", Document: "CIS Google Cloud Platform Foundation Benchmark v1.3.0"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "BigQuery",
	ShortServiceName: "bigquery",
	Provider:         chk.GCP,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		projectID, err := settings.GCPProject()
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		c, err := newClient(ctx, projectID)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		defer c.Close()
		return inspectDatasetCMEK(ctx, c, projectID)
	},
}

func datasetResource(dataset *bigquery.Dataset) rpt.Resource {
	if dataset == nil || dataset.DatasetID == "" {
		return rpt.Placeholder("Unknown BigQuery Dataset")
	}
	return rpt.Real(dataset.DatasetID, fmt.Sprintf("//bigquery.googleapis.com/projects/%s/datasets/%s", dataset.ProjectID, dataset.DatasetID))
}

func inspectDatasetCMEK(ctx context.Context, api API, projectID string) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[*bigquery.Dataset]{
		ErrorContext: errorContext,
		ErrorName:    "BigQuery Check",
		EmptyName:    "No BigQuery Datasets Found",
		EmptyMessage: "No BigQuery datasets found in the project",
		List: func(ctx context.Context) ([]*bigquery.Dataset, error) {
			return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[*bigquery.Dataset], error) {
				return api.ListDatasets(ctx, projectID, token)
			})
		},
		Identify: datasetResource,
		Evaluate: func(ctx context.Context, dataset *bigquery.Dataset) ([]rpt.Result, error) {
			if dataset == nil || dataset.DatasetID == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown BigQuery Dataset"), "BigQuery dataset has no dataset ID")}, nil
			}
			resource := datasetResource(dataset)
			metadata, err := api.DatasetMetadata(ctx, dataset)
			if err != nil {
				return nil, erm.Wrap("Error checking dataset metadata", err)
			}
			if metadata.DefaultEncryptionConfig == nil || metadata.DefaultEncryptionConfig.KMSKeyName == "" {
				return []rpt.Result{rpt.Fail(resource, "Dataset has no default customer-managed encryption key")}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
