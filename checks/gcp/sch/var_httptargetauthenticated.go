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

package sch

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	schedulerpb "google.golang.org/genproto/googleapis/cloud/scheduler/v1"
)

const errorContext = "Error checking Cloud Scheduler jobs"

// HTTPTargetAuthenticated jobs calling an HTTP target must send an OIDC or OAuth token
var HTTPTargetAuthenticated = chk.Check{
	ID:          "gcp-scheduler-http-target-authenticated",
	Title:       "Cloud Scheduler HTTP jobs authenticate",
	Description: "Every Cloud Scheduler job with an HTTP target should call it with an OIDC or an OAuth token.",
	Controls: []chk.Control{
		{ID: "SCH.1", Document: "Google Cloud security foundations guide"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "Cloud Scheduler",
	ShortServiceName: "cloudscheduler",
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
		return inspectHTTPTargetAuthenticated(ctx, c, projectID, settings.GCP.Region)
	},
}

func jobResource(job *schedulerpb.Job) rpt.Resource {
	name := job.GetName()
	if name == "" {
		return rpt.Placeholder("Unknown Cloud Scheduler Job")
	}
	nameParts := strings.Split(name, "/")
	return rpt.Real(nameParts[len(nameParts)-1], "//cloudscheduler.googleapis.com/"+name)
}

func inspectHTTPTargetAuthenticated(ctx context.Context, api API, projectID string, region string) rpt.Report {
	parent := fmt.Sprintf("projects/%s/locations/%s", projectID, region)
	return rpt.Assemble(ctx, rpt.Inspection[*schedulerpb.Job]{
		ErrorContext: errorContext,
		ErrorName:    "Cloud Scheduler Check",
		EmptyName:    "No Cloud Scheduler Jobs Found",
		EmptyMessage: fmt.Sprintf("No Cloud Scheduler jobs found in %s", region),
		List: func(ctx context.Context) ([]*schedulerpb.Job, error) {
			return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[*schedulerpb.Job], error) {
				return api.ListJobs(ctx, parent, token)
			})
		},
		Identify: jobResource,
		Evaluate: func(ctx context.Context, job *schedulerpb.Job) ([]rpt.Result, error) {
			if job.GetName() == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Cloud Scheduler Job"), "Cloud Scheduler job has no name")}, nil
			}
			resource := jobResource(job)
			httpTarget := job.GetHttpTarget()
			if httpTarget == nil {
				return []rpt.Result{rpt.NotApplicable(resource, "Job target is not HTTP")}, nil
			}
			if httpTarget.GetOidcToken() == nil && httpTarget.GetOauthToken() == nil {
				return []rpt.Result{rpt.Fail(resource, "HTTP target is called without an OIDC or OAuth token")}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
