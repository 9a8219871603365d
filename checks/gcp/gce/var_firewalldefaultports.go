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

package gce

import (
	"context"
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"google.golang.org/api/compute/v1"
)

const errorContext = "Error checking firewall rules"

// FirewallDefaultPorts firewall rules must not open well-known ports to the internet
var FirewallDefaultPorts = chk.Check{
	ID:          "gcp-compute-firewall-default-ports",
	Title:       "Firewall rules do not expose well-known ports to the internet",
	Description: "No enabled ingress VPC firewall rule should allow traffic from 0.0.0.0/0 or ::/0 to a well-known default port.",
	Controls: []chk.Control{
		{ID: "3.6", Document: "CIS Google Cloud Platform Foundation Benchmark v1.3.0"},
		{ID: "3.7", Document: "CIS Google Cloud Platform Foundation Benchmark v1.3.0"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Compute Engine",
	ShortServiceName: "compute",
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
		return inspectFirewallDefaultPorts(ctx, c, projectID, settings.Ports.WellKnown)
	},
}

func firewallResource(firewall *compute.Firewall) rpt.Resource {
	if firewall == nil || firewall.Name == "" {
		return rpt.Placeholder("Unknown Firewall Rule")
	}
	return rpt.Real(firewall.Name, firewall.SelfLink)
}

func inspectFirewallDefaultPorts(ctx context.Context, api API, projectID string, wellKnownPorts []int64) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[*compute.Firewall]{
		ErrorContext: errorContext,
		ErrorName:    "Firewall Check",
		EmptyName:    "No Firewall Rules Found",
		EmptyMessage: "No VPC firewall rules found in the project",
		List: func(ctx context.Context) ([]*compute.Firewall, error) {
			return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[*compute.Firewall], error) {
				return api.ListFirewalls(ctx, projectID, token)
			})
		},
		Identify: firewallResource,
		Evaluate: func(ctx context.Context, firewall *compute.Firewall) ([]rpt.Result, error) {
			if firewall == nil || firewall.Name == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Firewall Rule"), "Firewall rule has no name")}, nil
			}
			resource := firewallResource(firewall)
			if firewall.Direction == "EGRESS" {
				return []rpt.Result{rpt.NotApplicable(resource, "Firewall rule is an egress rule")}, nil
			}
			if firewall.Disabled {
				return []rpt.Result{rpt.NotApplicable(resource, "Firewall rule is disabled")}, nil
			}
			if !openToAnywhere(firewall) {
				return []rpt.Result{rpt.Pass(resource)}, nil
			}
			exposed, err := exposedPorts(firewall.Allowed, wellKnownPorts)
			if err != nil {
				return nil, erm.Wrap("Error checking firewall rule ports", err)
			}
			if len(exposed) > 0 {
				return []rpt.Result{rpt.Fail(resource, fmt.Sprintf("Firewall rule allows ingress from anywhere on well-known ports %s", joinPorts(exposed)))}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
