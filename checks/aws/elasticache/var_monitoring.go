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
	"fmt"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/elasticache/types"
)

const errorContext = "Error checking ElastiCache clusters"

// Facets of the monitoring check
const (
	FacetNotifications = "notifications"
	FacetLogDelivery   = "logDelivery"
)

// engines supported by the check, true when the engine supports log delivery
var engines = map[string]bool{
	"redis":     true,
	"valkey":    true,
	"memcached": false,
}

// Monitoring clusters must publish events and deliver logs
var Monitoring = chk.Check{
	ID:          "aws-elasticache-monitoring",
	Title:       "ElastiCache clusters are monitored",
	Description: "ElastiCache clusters should notify events to an active SNS topic and deliver engine logs.",
	Controls: []chk.Control{
		{ID: "ElastiCache.7", Document: "AWS Foundational Security Best Practices"},
	},
	Severity:         chk.SeverityLow,
	ServiceName:      "Amazon ElastiCache",
	ShortServiceName: "elasticache",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectMonitoring(ctx, elasticache.NewFromConfig(cfg))
	},
}

func listCacheClusters(ctx context.Context, api API) ([]types.CacheCluster, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.CacheCluster], error) {
		out, err := api.DescribeCacheClusters(ctx, &elasticache.DescribeCacheClustersInput{Marker: pgr.Token(token)})
		if err != nil {
			return pgr.Page[types.CacheCluster]{}, err
		}
		return pgr.Page[types.CacheCluster]{Items: out.CacheClusters, NextToken: aws.ToString(out.Marker)}, nil
	})
}

func inspectMonitoring(ctx context.Context, api API) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.CacheCluster]{
		ErrorContext: errorContext,
		ErrorName:    "ElastiCache Check",
		EmptyName:    "No ElastiCache Clusters Found",
		EmptyMessage: "No ElastiCache clusters found in the region",
		List: func(ctx context.Context) ([]types.CacheCluster, error) {
			return listCacheClusters(ctx, api)
		},
		Identify: clusterResource,
		Evaluate: func(ctx context.Context, cluster types.CacheCluster) ([]rpt.Result, error) {
			if cluster.CacheClusterId == nil {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown ElastiCache Cluster"), "ElastiCache cluster has no cluster ID")}, nil
			}
			resource := clusterResource(cluster)
			engine := strings.ToLower(aws.ToString(cluster.Engine))
			supportsLogDelivery, supported := engines[engine]
			if !supported {
				return []rpt.Result{rpt.NotApplicable(resource, fmt.Sprintf("Engine %s is not supported", aws.ToString(cluster.Engine)))}, nil
			}
			results := []rpt.Result{evaluateNotifications(resource, cluster).OnFacet(FacetNotifications)}
			if !supportsLogDelivery {
				return append(results, rpt.NotApplicable(resource, fmt.Sprintf("Log delivery is not available for %s", engine)).OnFacet(FacetLogDelivery)), nil
			}
			return append(results, evaluateLogDelivery(resource, cluster).OnFacet(FacetLogDelivery)), nil
		},
	})
}

func evaluateNotifications(resource rpt.Resource, cluster types.CacheCluster) rpt.Result {
	notification := cluster.NotificationConfiguration
	if notification == nil || aws.ToString(notification.TopicArn) == "" {
		return rpt.Fail(resource, "Event notifications are not configured")
	}
	if aws.ToString(notification.TopicStatus) != "active" {
		return rpt.Fail(resource, fmt.Sprintf("Event notification topic is %s", aws.ToString(notification.TopicStatus)))
	}
	return rpt.Pass(resource)
}

func evaluateLogDelivery(resource rpt.Resource, cluster types.CacheCluster) rpt.Result {
	for _, configuration := range cluster.LogDeliveryConfigurations {
		if configuration.Status == types.LogDeliveryConfigurationStatusActive {
			return rpt.Pass(resource)
		}
	}
	return rpt.Fail(resource, "No active log delivery configuration")
}

func clusterResource(cluster types.CacheCluster) rpt.Resource {
	if cluster.CacheClusterId == nil {
		return rpt.Placeholder("Unknown ElastiCache Cluster")
	}
	return rpt.Real(aws.ToString(cluster.CacheClusterId), aws.ToString(cluster.ARN))
}
