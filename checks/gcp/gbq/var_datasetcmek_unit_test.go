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
	"errors"
	"reflect"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
)

type fakeAPI struct {
	pages       map[string]pgr.Page[*bigquery.Dataset]
	listErr     error
	keys        map[string]string
	metadataErr map[string]error
}

func (f *fakeAPI) ListDatasets(ctx context.Context, projectID string, token string) (pgr.Page[*bigquery.Dataset], error) {
	if f.listErr != nil {
		return pgr.Page[*bigquery.Dataset]{}, f.listErr
	}
	return f.pages[token], nil
}

func (f *fakeAPI) DatasetMetadata(ctx context.Context, dataset *bigquery.Dataset) (*bigquery.DatasetMetadata, error) {
	if err, ok := f.metadataErr[dataset.DatasetID]; ok {
		return nil, err
	}
	metadata := &bigquery.DatasetMetadata{}
	if key, ok := f.keys[dataset.DatasetID]; ok {
		metadata.DefaultEncryptionConfig = &bigquery.EncryptionConfig{KMSKeyName: key}
	}
	return metadata, nil
}

func dataset(id string) *bigquery.Dataset {
	return &bigquery.Dataset{ProjectID: "my-project", DatasetID: id}
}

func TestUnitInspectDatasetCMEK(t *testing.T) {
	var tests = []struct {
		name         string
		api          *fakeAPI
		wantStatuses []rpt.Status
		wantNames    []string
		wantMessages []string
	}{
		{
			name:         "noDatasets",
			api:          &fakeAPI{},
			wantStatuses: []rpt.Status{rpt.StatusNotApplicable},
			wantNames:    []string{"No BigQuery Datasets Found"},
			wantMessages: []string{"No BigQuery datasets found in the project"},
		},
		{
			name:         "listingFails",
			api:          &fakeAPI{listErr: errors.New("googleapi: Error 500: backendError")},
			wantStatuses: []rpt.Status{rpt.StatusError},
			wantNames:    []string{"BigQuery Check"},
			wantMessages: []string{"Error checking BigQuery datasets: googleapi: Error 500: backendError"},
		},
		{
			name: "mixedAcrossPages",
			api: &fakeAPI{
				pages: map[string]pgr.Page[*bigquery.Dataset]{
					"":   {Items: []*bigquery.Dataset{dataset("sales"), dataset("raw")}, NextToken: "p2"},
					"p2": {Items: []*bigquery.Dataset{dataset("emptykey"), dataset("gone")}},
				},
				keys: map[string]string{
					"sales":    "projects/kms/locations/eu/keyRings/r/cryptoKeys/k",
					"emptykey": "",
				},
				metadataErr: map[string]error{"gone": errors.New("googleapi: Error 404: Not found")},
			},
			wantStatuses: []rpt.Status{rpt.StatusPass, rpt.StatusFail, rpt.StatusFail, rpt.StatusError},
			wantNames:    []string{"sales", "raw", "emptykey", "gone"},
			wantMessages: []string{
				"",
				"Dataset has no default customer-managed encryption key",
				"Dataset has no default customer-managed encryption key",
				"Error checking dataset metadata: googleapi: Error 404: Not found",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := inspectDatasetCMEK(context.Background(), test.api, "my-project")
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
			again := inspectDatasetCMEK(context.Background(), test.api, "my-project")
			if !reflect.DeepEqual(report, again) {
				t.Errorf("Want identical reports on repeated runs")
			}
		})
	}
}

func TestUnitDatasetResource(t *testing.T) {
	resource := datasetResource(dataset("sales"))
	want := "//bigquery.googleapis.com/projects/my-project/datasets/sales"
	if resource.Arn != want {
		t.Errorf("Want %s got %s", want, resource.Arn)
	}
	if !datasetResource(nil).IsPlaceholder() {
		t.Errorf("Want placeholder for a nil dataset")
	}
}
