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

package configservice

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/configservice"
	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
)

type fakeAPI struct {
	recorders []string
	listErr   error
	statuses  map[string]types.ConfigurationRecorderStatus
	statusErr map[string]error
	asked     []string
}

func (f *fakeAPI) DescribeConfigurationRecorders(ctx context.Context, params *configservice.DescribeConfigurationRecordersInput, optFns ...func(*configservice.Options)) (*configservice.DescribeConfigurationRecordersOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &configservice.DescribeConfigurationRecordersOutput{}
	for _, name := range f.recorders {
		out.ConfigurationRecorders = append(out.ConfigurationRecorders, types.ConfigurationRecorder{Name: aws.String(name)})
	}
	return out, nil
}

func (f *fakeAPI) DescribeConfigurationRecorderStatus(ctx context.Context, params *configservice.DescribeConfigurationRecorderStatusInput, optFns ...func(*configservice.Options)) (*configservice.DescribeConfigurationRecorderStatusOutput, error) {
	name := params.ConfigurationRecorderNames[0]
	f.asked = append(f.asked, name)
	if err, ok := f.statusErr[name]; ok {
		return nil, err
	}
	out := &configservice.DescribeConfigurationRecorderStatusOutput{}
	if status, ok := f.statuses[name]; ok {
		out.ConfigurationRecordersStatus = []types.ConfigurationRecorderStatus{status}
	}
	return out, nil
}

func TestUnitInspectRecorderEnabled(t *testing.T) {
	var tests = []struct {
		name         string
		api          *fakeAPI
		wantStatuses []rpt.Status
		wantNames    []string
		wantMessages []string
	}{
		{
			name:         "noRecorder",
			api:          &fakeAPI{},
			wantStatuses: []rpt.Status{rpt.StatusNotApplicable},
			wantNames:    []string{"No Config Recorders Found"},
			wantMessages: []string{"No AWS Config configuration recorders found in the region"},
		},
		{
			name:         "listingFails",
			api:          &fakeAPI{listErr: errors.New("AccessDeniedException")},
			wantStatuses: []rpt.Status{rpt.StatusError},
			wantNames:    []string{"Config Check"},
			wantMessages: []string{"Error checking Config recorders: AccessDeniedException"},
		},
		{
			name: "mixed",
			api: &fakeAPI{
				recorders: []string{"default", "stopped", "failing", "nostatus", "broken"},
				statuses: map[string]types.ConfigurationRecorderStatus{
					"default": {Name: aws.String("default"), Recording: true},
					"stopped": {Name: aws.String("stopped")},
					"failing": {Name: aws.String("failing"), LastStatus: types.RecorderStatusFailure},
				},
				statusErr: map[string]error{"broken": errors.New("InternalFailure")},
			},
			wantStatuses: []rpt.Status{rpt.StatusPass, rpt.StatusFail, rpt.StatusFail, rpt.StatusFail, rpt.StatusError},
			wantNames:    []string{"default", "stopped", "failing", "nostatus", "broken"},
			wantMessages: []string{
				"",
				"Recorder is not recording",
				"Recorder is not recording, last status failure",
				"No status found for this recorder",
				"Error checking recorder status: InternalFailure",
			},
		},
		{
			name: "unnamedRecorderBetweenValidOnes",
			api: &fakeAPI{
				recorders: []string{"default", "", "stopped"},
				statuses: map[string]types.ConfigurationRecorderStatus{
					"default": {Name: aws.String("default"), Recording: true},
					"stopped": {Name: aws.String("stopped")},
				},
			},
			wantStatuses: []rpt.Status{rpt.StatusPass, rpt.StatusError, rpt.StatusFail},
			wantNames:    []string{"default", "Unknown Config Recorder", "stopped"},
			wantMessages: []string{"", "Config recorder has no name", "Recorder is not recording"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := inspectRecorderEnabled(context.Background(), test.api)
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
			for _, name := range test.api.asked {
				if name == "" {
					t.Errorf("Want no status request for an unnamed recorder, got %v", test.api.asked)
				}
			}
			again := inspectRecorderEnabled(context.Background(), test.api)
			if !reflect.DeepEqual(report, again) {
				t.Errorf("Want the same report on a second run, got %v then %v", report, again)
			}
		})
	}
}
