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

package appsync

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	"github.com/aws/aws-sdk-go-v2/service/appsync/types"
)

type fakeAPI struct {
	pages     map[string]*appsync.ListGraphqlApisOutput
	listErr   error
	caches    map[string]*types.ApiCache
	cacheErrs map[string]error
}

func (f *fakeAPI) ListGraphqlApis(ctx context.Context, params *appsync.ListGraphqlApisInput, optFns ...func(*appsync.Options)) (*appsync.ListGraphqlApisOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out, ok := f.pages[aws.ToString(params.NextToken)]
	if !ok {
		return &appsync.ListGraphqlApisOutput{}, nil
	}
	return out, nil
}

func (f *fakeAPI) GetApiCache(ctx context.Context, params *appsync.GetApiCacheInput, optFns ...func(*appsync.Options)) (*appsync.GetApiCacheOutput, error) {
	id := aws.ToString(params.ApiId)
	if err, ok := f.cacheErrs[id]; ok {
		return nil, err
	}
	return &appsync.GetApiCacheOutput{ApiCache: f.caches[id]}, nil
}

func graphqlAPI(id string) types.GraphqlApi {
	return types.GraphqlApi{
		ApiId: aws.String(id),
		Name:  aws.String(id + "-name"),
		Arn:   aws.String("arn:aws:appsync:us-east-1:123456789012:apis/" + id),
	}
}

func onePage(apis ...types.GraphqlApi) map[string]*appsync.ListGraphqlApisOutput {
	return map[string]*appsync.ListGraphqlApisOutput{"": {GraphqlApis: apis}}
}

func TestUnitInspectCacheEncryptionAtRest(t *testing.T) {
	var tests = []struct {
		name         string
		api          *fakeAPI
		wantStatuses []rpt.Status
		wantNames    []string
		wantMessages []string
	}{
		{
			name: "encryptedCache",
			api: &fakeAPI{
				pages:  onePage(graphqlAPI("a1")),
				caches: map[string]*types.ApiCache{"a1": {AtRestEncryptionEnabled: true}},
			},
			wantStatuses: []rpt.Status{rpt.StatusPass},
			wantNames:    []string{"a1-name"},
			wantMessages: []string{""},
		},
		{
			name:         "noCache",
			api:          &fakeAPI{pages: onePage(graphqlAPI("a1"))},
			wantStatuses: []rpt.Status{rpt.StatusNotApplicable},
			wantNames:    []string{"a1-name"},
			wantMessages: []string{"No cache configuration found for this API"},
		},
		{
			name: "cacheNotFoundException",
			api: &fakeAPI{
				pages:     onePage(graphqlAPI("a1")),
				cacheErrs: map[string]error{"a1": &types.NotFoundException{Message: aws.String("no cache")}},
			},
			wantStatuses: []rpt.Status{rpt.StatusNotApplicable},
			wantNames:    []string{"a1-name"},
			wantMessages: []string{"No cache configuration found for this API"},
		},
		{
			name:         "noAPIs",
			api:          &fakeAPI{pages: onePage()},
			wantStatuses: []rpt.Status{rpt.StatusNotApplicable},
			wantNames:    []string{"No AppSync APIs Found"},
			wantMessages: []string{"No AppSync GraphQL APIs found in the region"},
		},
		{
			name:         "listingFails",
			api:          &fakeAPI{listErr: errors.New("API Error")},
			wantStatuses: []rpt.Status{rpt.StatusError},
			wantNames:    []string{"AppSync Check"},
			wantMessages: []string{"Error checking AppSync APIs: API Error"},
		},
		{
			name: "mixedCompliance",
			api: &fakeAPI{
				pages: onePage(graphqlAPI("a1"), graphqlAPI("a2")),
				caches: map[string]*types.ApiCache{
					"a1": {AtRestEncryptionEnabled: true},
					"a2": {AtRestEncryptionEnabled: false},
				},
			},
			wantStatuses: []rpt.Status{rpt.StatusPass, rpt.StatusFail},
			wantNames:    []string{"a1-name", "a2-name"},
			wantMessages: []string{"", "AppSync API cache is not encrypted at rest"},
		},
		{
			name: "cacheLookupFailureIsolated",
			api: &fakeAPI{
				pages:     onePage(graphqlAPI("a1"), graphqlAPI("a2")),
				caches:    map[string]*types.ApiCache{"a2": {AtRestEncryptionEnabled: true}},
				cacheErrs: map[string]error{"a1": errors.New("AccessDeniedException")},
			},
			wantStatuses: []rpt.Status{rpt.StatusError, rpt.StatusPass},
			wantNames:    []string{"a1-name", "a2-name"},
			wantMessages: []string{"Error checking AppSync API cache: AccessDeniedException", ""},
		},
		{
			name:         "missingAPIID",
			api:          &fakeAPI{pages: onePage(types.GraphqlApi{Name: aws.String("orphan")})},
			wantStatuses: []rpt.Status{rpt.StatusError},
			wantNames:    []string{"Unknown AppSync API"},
			wantMessages: []string{"AppSync API has no API ID"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := inspectCacheEncryptionAtRest(context.Background(), test.api)
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
			again := inspectCacheEncryptionAtRest(context.Background(), test.api)
			if !reflect.DeepEqual(report, again) {
				t.Errorf("Want identical reports on repeated runs")
			}
		})
	}
}

func TestUnitInspectCacheEncryptionAtRestPagination(t *testing.T) {
	caches := map[string]*types.ApiCache{
		"a1": {AtRestEncryptionEnabled: true},
		"a2": {AtRestEncryptionEnabled: false},
		"a3": {AtRestEncryptionEnabled: true},
	}
	single := &fakeAPI{pages: onePage(graphqlAPI("a1"), graphqlAPI("a2"), graphqlAPI("a3")), caches: caches}
	paged := &fakeAPI{
		pages: map[string]*appsync.ListGraphqlApisOutput{
			"":   {GraphqlApis: []types.GraphqlApi{graphqlAPI("a1")}, NextToken: aws.String("t1")},
			"t1": {GraphqlApis: []types.GraphqlApi{graphqlAPI("a2"), graphqlAPI("a3")}, NextToken: aws.String("t2")},
			"t2": {},
		},
		caches: caches,
	}
	want := inspectCacheEncryptionAtRest(context.Background(), single)
	got := inspectCacheEncryptionAtRest(context.Background(), paged)
	if len(want) != 3 {
		t.Fatalf("Want 3 results got %d", len(want))
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("Want %v got %v", want, got)
	}
	if !strings.HasPrefix(got[0].Arn, "arn:aws:appsync:") {
		t.Errorf("Want the API ARN got %s", got[0].Arn)
	}
}
