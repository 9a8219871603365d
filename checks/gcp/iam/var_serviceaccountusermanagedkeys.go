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

package iam

import (
	"context"
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"google.golang.org/api/iam/v1"
)

const errorContext = "Error checking service accounts"

// ServiceAccountUserManagedKeys service accounts must not have user managed keys
var ServiceAccountUserManagedKeys = chk.Check{
	ID:          "gcp-iam-service-account-user-managed-keys",
	Title:       "Service accounts have no user-managed keys",
	Description: "No service account of the project should hold a user-managed key, Google-managed keys rotate automatically.",
	Controls: []chk.Control{
		{ID: "1.4", Document: "CIS Google Cloud Platform Foundation Benchmark v1.3.0"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Identity and Access Management",
	ShortServiceName: "iam",
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
		return inspectServiceAccountUserManagedKeys(ctx, c, projectID)
	},
}

func serviceAccountResource(serviceAccount *iam.ServiceAccount) rpt.Resource {
	if serviceAccount == nil || serviceAccount.Email == "" {
		return rpt.Placeholder("Unknown Service Account")
	}
	return rpt.Real(serviceAccount.Email, "//iam.googleapis.com/"+serviceAccount.Name)
}

func inspectServiceAccountUserManagedKeys(ctx context.Context, api API, projectID string) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[*iam.ServiceAccount]{
		ErrorContext: errorContext,
		ErrorName:    "Service Account Check",
		EmptyName:    "No Service Accounts Found",
		EmptyMessage: "No service accounts found in the project",
		List: func(ctx context.Context) ([]*iam.ServiceAccount, error) {
			return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[*iam.ServiceAccount], error) {
				return api.ListServiceAccounts(ctx, projectID, token)
			})
		},
		Identify: serviceAccountResource,
		Evaluate: func(ctx context.Context, serviceAccount *iam.ServiceAccount) ([]rpt.Result, error) {
			if serviceAccount == nil || serviceAccount.Email == "" || serviceAccount.Name == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Service Account"), "Service account has no email or resource name")}, nil
			}
			resource := serviceAccountResource(serviceAccount)
			keys, err := api.ListUserManagedKeys(ctx, serviceAccount.Name)
			if err != nil {
				return nil, erm.Wrap("Error checking service account keys", err)
			}
			if serviceAccount.Disabled && len(keys) > 0 {
				return []rpt.Result{rpt.Fail(resource, fmt.Sprintf("Disabled service account has %d user-managed keys", len(keys)))}, nil
			}
			if len(keys) > 0 {
				return []rpt.Result{rpt.Fail(resource, fmt.Sprintf("Service account has %d user-managed keys", len(keys)))}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
