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

package csql

import (
	"context"
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	sqladmin "google.golang.org/api/sqladmin/v1beta4"
)

const errorContext = "Error checking Cloud SQL instances"

// RequireSSL instances must only accept SSL connections
var RequireSSL = chk.Check{
	ID:          "gcp-sql-require-ssl",
	Title:       "Cloud SQL instances require SSL",
	Description: "Every Cloud SQL instance should reject incoming connections that do not use SSL.",
	Controls: []chk.Control{
		{ID: "6.4", Document: "CIS Google Cloud Platform Foundation Benchmark v1.3.0"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Cloud SQL",
	ShortServiceName: "sqladmin",
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
		return inspectRequireSSL(ctx, c, projectID)
	},
}

func instanceResource(instance *sqladmin.DatabaseInstance) rpt.Resource {
	if instance == nil || instance.Name == "" {
		return rpt.Placeholder("Unknown Cloud SQL Instance")
	}
	return rpt.Real(instance.Name, fmt.Sprintf("//cloudsql.googleapis.com/projects/%s/instances/%s", instance.Project, instance.Name))
}

func inspectRequireSSL(ctx context.Context, api API, projectID string) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[*sqladmin.DatabaseInstance]{
		ErrorContext: errorContext,
		ErrorName:    "Cloud SQL Check",
		EmptyName:    "No Cloud SQL Instances Found",
		EmptyMessage: "No Cloud SQL instances found in the project",
		List: func(ctx context.Context) ([]*sqladmin.DatabaseInstance, error) {
			return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[*sqladmin.DatabaseInstance], error) {
				return api.ListInstances(ctx, projectID, token)
			})
		},
		Identify: instanceResource,
		Evaluate: func(ctx context.Context, instance *sqladmin.DatabaseInstance) ([]rpt.Result, error) {
			if instance == nil || instance.Name == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Cloud SQL Instance"), "Cloud SQL instance has no name")}, nil
			}
			resource := instanceResource(instance)
			if instance.Settings == nil || instance.Settings.IpConfiguration == nil {
				return []rpt.Result{rpt.Fail(resource, "Instance has no IP configuration, SSL is not required")}, nil
			}
			if !instance.Settings.IpConfiguration.RequireSsl {
				return []rpt.Result{rpt.Fail(resource, "Instance accepts connections without SSL")}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
