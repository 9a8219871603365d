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

package gcf

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	functionspb "google.golang.org/genproto/googleapis/cloud/functions/v1"
)

const errorContext = "Error checking Cloud Functions"

// IngressInternal functions must only accept internal traffic, optionally through a load balancer
var IngressInternal = chk.Check{
	ID:          "gcp-functions-ingress-internal",
	Title:       "Cloud Functions restrict ingress to internal traffic",
	Description: "Every Cloud Function should allow internal traffic only, or internal traffic and Cloud Load Balancing.",
	Controls: []chk.Control{
		{ID: "CF.1", Document: "Google Cloud security foundations guide"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "Cloud Functions",
	ShortServiceName: "cloudfunctions",
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
		return inspectIngressInternal(ctx, c, projectID)
	},
}

func functionResource(cloudFunction *functionspb.CloudFunction) rpt.Resource {
	name := cloudFunction.GetName()
	if name == "" {
		return rpt.Placeholder("Unknown Cloud Function")
	}
	nameParts := strings.Split(name, "/")
	return rpt.Real(nameParts[len(nameParts)-1], "//cloudfunctions.googleapis.com/"+name)
}

func inspectIngressInternal(ctx context.Context, api API, projectID string) rpt.Report {
	parent := fmt.Sprintf("projects/%s/locations/-", projectID)
	return rpt.Assemble(ctx, rpt.Inspection[*functionspb.CloudFunction]{
		ErrorContext: errorContext,
		ErrorName:    "Cloud Functions Check",
		EmptyName:    "No Cloud Functions Found",
		EmptyMessage: "No Cloud Functions found in the project",
		List: func(ctx context.Context) ([]*functionspb.CloudFunction, error) {
			return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[*functionspb.CloudFunction], error) {
				return api.ListFunctions(ctx, parent, token)
			})
		},
		Identify: functionResource,
		Evaluate: func(ctx context.Context, cloudFunction *functionspb.CloudFunction) ([]rpt.Result, error) {
			if cloudFunction.GetName() == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Cloud Function"), "Cloud Function has no name")}, nil
			}
			resource := functionResource(cloudFunction)
			switch cloudFunction.GetIngressSettings() {
			case functionspb.CloudFunction_ALLOW_INTERNAL_ONLY, functionspb.CloudFunction_ALLOW_INTERNAL_AND_GCLB:
				return []rpt.Result{rpt.Pass(resource)}, nil
			case functionspb.CloudFunction_ALLOW_ALL:
				return []rpt.Result{rpt.Fail(resource, "Function ingress allows all traffic")}, nil
			}
			return []rpt.Result{rpt.Fail(resource, "Function ingress settings are not set, all traffic is allowed")}, nil
		},
	})
}
