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

package elasticache

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/elasticache/types"
)

type fakeAPI struct {
	pages   map[string]*elasticache.DescribeCacheClustersOutput
	listErr error
}

func (f *fakeAPI) DescribeCacheClusters(ctx context.Context, params *elasticache.DescribeCacheClustersInput, optFns ...func(*elasticache.Options)) (*elasticache.DescribeCacheClustersOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if out, ok := f.pages[aws.ToString(params.Marker)]; ok {
		return out, nil
	}
	return &elasticache.DescribeCacheClustersOutput{}, nil
}

func cluster(id, engine, topicStatus string, logStatuses ...types.LogDeliveryConfigurationStatus) types.CacheCluster {
	c := types.CacheCluster{
		CacheClusterId: aws.String(id),
		ARN:            aws.String("arn:aws:elasticache:us-east-1:123456789012:cluster:" + id),
		Engine:         aws.String(engine),
	}
	if topicStatus != "" {
		c.NotificationConfiguration = &types.NotificationConfiguration{
			TopicArn:    aws.String("arn:aws:sns:us-east-1:123456789012:cache-events"),
			TopicStatus: aws.String(topicStatus),
		}
	}
	for _, status := range logStatuses {
		c.LogDeliveryConfigurations = append(c.LogDeliveryConfigurations, types.LogDeliveryConfiguration{Status: status})
	}
	return c
}

type want struct {
	name    string
	facet   string
	status  rpt.Status
	message string
}

func TestUnitInspectMonitoring(t *testing.T) {
	var tests = []struct {
		name string
		api  *fakeAPI
		want []want
	}{
		{
			name: "noClusters",
			api:  &fakeAPI{},
			want: []want{{name: "No ElastiCache Clusters Found", status: rpt.StatusNotApplicable, message: "No ElastiCache clusters found in the region"}},
		},
		{
			name: "listingFails",
			api:  &fakeAPI{listErr: errors.New("API Error")},
			want: []want{{name: "ElastiCache Check", status: rpt.StatusError, message: "Error checking ElastiCache clusters: API Error"}},
		},
		{
			name: "twoFacetsPerCluster",
			api: &fakeAPI{pages: map[string]*elasticache.DescribeCacheClustersOutput{"": {CacheClusters: []types.CacheCluster{
				cluster("r1", "Redis", "active", types.LogDeliveryConfigurationStatusDisabling, types.LogDeliveryConfigurationStatusActive),
				cluster("r2", "redis", "inactive"),
				cluster("m1", "memcached", ""),
				cluster("x1", "Hazelcast", "active"),
			}}}},
			want: []want{
				{name: "r1", facet: FacetNotifications, status: rpt.StatusPass},
				{name: "r1", facet: FacetLogDelivery, status: rpt.StatusPass},
				{name: "r2", facet: FacetNotifications, status: rpt.StatusFail, message: "Event notification topic is inactive"},
				{name: "r2", facet: FacetLogDelivery, status: rpt.StatusFail, message: "No active log delivery configuration"},
				{name: "m1", facet: FacetNotifications, status: rpt.StatusFail, message: "Event notifications are not configured"},
				{name: "m1", facet: FacetLogDelivery, status: rpt.StatusNotApplicable, message: "Log delivery is not available for memcached"},
				{name: "x1", status: rpt.StatusNotApplicable, message: "Engine Hazelcast is not supported"},
			},
		},
		{
			name: "missingIDBetweenValidClusters",
			api: &fakeAPI{pages: map[string]*elasticache.DescribeCacheClustersOutput{"": {CacheClusters: []types.CacheCluster{
				cluster("r1", "redis", "active", types.LogDeliveryConfigurationStatusActive),
				{Engine: aws.String("redis")},
				cluster("r2", "redis", "inactive"),
			}}}},
			want: []want{
				{name: "r1", facet: FacetNotifications, status: rpt.StatusPass},
				{name: "r1", facet: FacetLogDelivery, status: rpt.StatusPass},
				{name: "Unknown ElastiCache Cluster", status: rpt.StatusError, message: "ElastiCache cluster has no cluster ID"},
				{name: "r2", facet: FacetNotifications, status: rpt.StatusFail, message: "Event notification topic is inactive"},
				{name: "r2", facet: FacetLogDelivery, status: rpt.StatusFail, message: "No active log delivery configuration"},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := inspectMonitoring(context.Background(), test.api)
			if len(report) != len(test.want) {
				t.Fatalf("Want %d results got %d %v", len(test.want), len(report), report)
			}
			for i, result := range report {
				got := want{name: result.Name, facet: result.Facet, status: result.Status, message: result.Message}
				if got != test.want[i] {
					t.Errorf("Want %v got %v at %d", test.want[i], got, i)
				}
			}
			again := inspectMonitoring(context.Background(), test.api)
			if !reflect.DeepEqual(report, again) {
				t.Errorf("Want the same report on a second run, got %v then %v", report, again)
			}
		})
	}
}

func TestUnitInspectMonitoringPagination(t *testing.T) {
	clusters := []types.CacheCluster{
		cluster("r1", "redis", "active"),
		cluster("r2", "valkey", "", types.LogDeliveryConfigurationStatusActive),
	}
	single := &fakeAPI{pages: map[string]*elasticache.DescribeCacheClustersOutput{"": {CacheClusters: clusters}}}
	paged := &fakeAPI{pages: map[string]*elasticache.DescribeCacheClustersOutput{
		"":   {CacheClusters: clusters[:1], Marker: aws.String("m1")},
		"m1": {CacheClusters: clusters[1:]},
	}}
	want := inspectMonitoring(context.Background(), single)
	got := inspectMonitoring(context.Background(), paged)
	if len(got) != 4 {
		t.Fatalf("Want 4 results got %d", len(got))
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("Want %v got %v", want, got)
	}
}
