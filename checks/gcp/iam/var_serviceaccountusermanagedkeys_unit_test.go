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
	"errors"
	"reflect"
	"testing"

	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"google.golang.org/api/iam/v1"
)

type fakeAPI struct {
	pages   map[string]pgr.Page[*iam.ServiceAccount]
	listErr error
	keys    map[string]int
	keyErr  map[string]error
}

func (f *fakeAPI) ListServiceAccounts(ctx context.Context, projectID string, token string) (pgr.Page[*iam.ServiceAccount], error) {
	if f.listErr != nil {
		return pgr.Page[*iam.ServiceAccount]{}, f.listErr
	}
	return f.pages[token], nil
}

func (f *fakeAPI) ListUserManagedKeys(ctx context.Context, serviceAccountName string) ([]*iam.ServiceAccountKey, error) {
	if err, ok := f.keyErr[serviceAccountName]; ok {
		return nil, err
	}
	var keys []*iam.ServiceAccountKey
	for i := 0; i < f.keys[serviceAccountName]; i++ {
		keys = append(keys, &iam.ServiceAccountKey{KeyType: userManaged})
	}
	return keys, nil
}

func serviceAccount(id string) *iam.ServiceAccount {
	email := id + "@my-project.iam.gserviceaccount.com"
	return &iam.ServiceAccount{Email: email, Name: "projects/my-project/serviceAccounts/" + email}
}

func TestUnitInspectServiceAccountUserManagedKeys(t *testing.T) {
	disabled := serviceAccount("old")
	disabled.Disabled = true
	var tests = []struct {
		name         string
		api          *fakeAPI
		wantStatuses []rpt.Status
		wantNames    []string
		wantMessages []string
	}{
		{
			name:         "noServiceAccounts",
			api:          &fakeAPI{},
			wantStatuses: []rpt.Status{rpt.StatusNotApplicable},
			wantNames:    []string{"No Service Accounts Found"},
			wantMessages: []string{"No service accounts found in the project"},
		},
		{
			name:         "listingFails",
			api:          &fakeAPI{listErr: errors.New("ServiceAccounts.List googleapi: Error 403: Permission denied")},
			wantStatuses: []rpt.Status{rpt.StatusError},
			wantNames:    []string{"Service Account Check"},
			wantMessages: []string{"Error checking service accounts: ServiceAccounts.List googleapi: Error 403: Permission denied"},
		},
		{
			name: "secondaryFailureIsolated",
			api: &fakeAPI{
				pages: map[string]pgr.Page[*iam.ServiceAccount]{
					"":   {Items: []*iam.ServiceAccount{serviceAccount("clean"), serviceAccount("keyed")}, NextToken: "p2"},
					"p2": {Items: []*iam.ServiceAccount{serviceAccount("forbidden"), disabled, serviceAccount("after")}},
				},
				keys: map[string]int{
					"projects/my-project/serviceAccounts/keyed@my-project.iam.gserviceaccount.com": 2,
					"projects/my-project/serviceAccounts/old@my-project.iam.gserviceaccount.com":   1,
				},
				keyErr: map[string]error{
					"projects/my-project/serviceAccounts/forbidden@my-project.iam.gserviceaccount.com": errors.New("ServiceAccounts.Keys.List googleapi: Error 403: Permission denied"),
				},
			},
			wantStatuses: []rpt.Status{rpt.StatusPass, rpt.StatusFail, rpt.StatusError, rpt.StatusFail, rpt.StatusPass},
			wantNames: []string{
				"clean@my-project.iam.gserviceaccount.com",
				"keyed@my-project.iam.gserviceaccount.com",
				"forbidden@my-project.iam.gserviceaccount.com",
				"old@my-project.iam.gserviceaccount.com",
				"after@my-project.iam.gserviceaccount.com",
			},
			wantMessages: []string{
				"",
				"Service account has 2 user-managed keys",
				"Error checking service account keys: ServiceAccounts.Keys.List googleapi: Error 403: Permission denied",
				"Disabled service account has 1 user-managed keys",
				"",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := inspectServiceAccountUserManagedKeys(context.Background(), test.api, "my-project")
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
			again := inspectServiceAccountUserManagedKeys(context.Background(), test.api, "my-project")
			if !reflect.DeepEqual(report, again) {
				t.Errorf("Want identical reports on repeated runs")
			}
		})
	}
}
