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
	"errors"
	"reflect"
	"testing"

	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	functionspb "google.golang.org/genproto/googleapis/cloud/functions/v1"
)

type fakeAPI struct {
	pages   map[string]pgr.Page[*functionspb.CloudFunction]
	err     error
	parents []string
}

func (f *fakeAPI) ListFunctions(ctx context.Context, parent string, token string) (pgr.Page[*functionspb.CloudFunction], error) {
	f.parents = append(f.parents, parent)
	if f.err != nil {
		return pgr.Page[*functionspb.CloudFunction]{}, f.err
	}
	return f.pages[token], nil
}

func cloudFunction(name string, ingress functionspb.CloudFunction_IngressSettings) *functionspb.CloudFunction {
	return &functionspb.CloudFunction{
		Name:            "projects/my-project/locations/europe-west1/functions/" + name,
		IngressSettings: ingress,
	}
}

func TestUnitInspectIngressInternal(t *testing.T) {
	var tests = []struct {
		name         string
		api          *fakeAPI
		wantStatuses []rpt.Status
		wantNames    []string
		wantMessages []string
	}{
		{
			name:         "noFunctions",
			api:          &fakeAPI{},
			wantStatuses: []rpt.Status{rpt.StatusNotApplicable},
			wantNames:    []string{"No Cloud Functions Found"},
			wantMessages: []string{"No Cloud Functions found in the project"},
		},
		{
			name:         "listingFails",
			api:          &fakeAPI{err: errors.New("rpc error: code = PermissionDenied")},
			wantStatuses: []rpt.Status{rpt.StatusError},
			wantNames:    []string{"Cloud Functions Check"},
			wantMessages: []string{"Error checking Cloud Functions: rpc error: code = PermissionDenied"},
		},
		{
			name: "mixedAcrossPages",
			api: &fakeAPI{pages: map[string]pgr.Page[*functionspb.CloudFunction]{
				"": {Items: []*functionspb.CloudFunction{
					cloudFunction("internal", functionspb.CloudFunction_ALLOW_INTERNAL_ONLY),
					cloudFunction("gclb", functionspb.CloudFunction_ALLOW_INTERNAL_AND_GCLB),
				}, NextToken: "p2"},
				"p2": {Items: []*functionspb.CloudFunction{
					cloudFunction("open", functionspb.CloudFunction_ALLOW_ALL),
					cloudFunction("unset", functionspb.CloudFunction_INGRESS_SETTINGS_UNSPECIFIED),
					{},
				}},
			}},
			wantStatuses: []rpt.Status{rpt.StatusPass, rpt.StatusPass, rpt.StatusFail, rpt.StatusFail, rpt.StatusError},
			wantNames:    []string{"internal", "gclb", "open", "unset", "Unknown Cloud Function"},
			wantMessages: []string{
				"",
				"",
				"Function ingress allows all traffic",
				"Function ingress settings are not set, all traffic is allowed",
				"Cloud Function has no name",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := inspectIngressInternal(context.Background(), test.api, "my-project")
			if len(report) != len(test.wantStatuses) {
				t.Fatalf("Want %d results got %d %v", len(test.wantStatuses), len(report), report)
			}
			for i, result := range report {
				if result.Status != test.wantStatuses[i] {
					t.Errorf("Want status %s got %s at %d", test.wantStatuses[i], result.Status, i)
				}
				if result.Name != test.wantNames[i] {
					t.Errorf("Want name %s got %s at %d", test.wantNames[i], result.Name, i)
				}
				if result.Message != test.wantMessages[i] {
					t.Errorf("Want message '%s' got '%s' at %d", test.wantMessages[i], result.Message, i)
				}
			}
			for _, parent := range test.api.parents {
				if parent != "projects/my-project/locations/-" {
					t.Errorf("Want all locations parent got %s", parent)
				}
			}
			again := inspectIngressInternal(context.Background(), test.api, "my-project")
			if !reflect.DeepEqual(report, again) {
				t.Errorf("Want identical reports on repeated runs")
			}
		})
	}
}
