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

package rds

import (
	"context"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
)

const errorContext = "Error checking Aurora clusters"

var auroraEngines = []string{"aurora-mysql", "aurora-postgresql"}

// AuroraClusterStorageEncrypted Aurora clusters must encrypt their storage
var AuroraClusterStorageEncrypted = chk.Check{
	ID:          "aws-rds-aurora-cluster-storage-encrypted",
	Title:       "Aurora clusters encrypt storage at rest",
	Description: "Every Aurora MySQL and Aurora PostgreSQL cluster should have storage encryption enabled.",
	Controls: []chk.Control{
		{ID: "RDS.27", Document: "AWS Foundational Security Best Practices"},
		{ID: "2.3.1", Document: "CIS AWS Foundations Benchmark v1.4.0"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Amazon RDS",
	ShortServiceName: "rds",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectAuroraClusterStorageEncrypted(ctx, rds.NewFromConfig(cfg))
	},
}

func listAuroraClusters(ctx context.Context, api API) ([]types.DBCluster, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.DBCluster], error) {
		out, err := api.DescribeDBClusters(ctx, &rds.DescribeDBClustersInput{
			Filters: []types.Filter{{Name: aws.String("engine"), Values: auroraEngines}},
			Marker:  pgr.Token(token),
		})
		if err != nil {
			return pgr.Page[types.DBCluster]{}, err
		}
		return pgr.Page[types.DBCluster]{Items: out.DBClusters, NextToken: aws.ToString(out.Marker)}, nil
	})
}

func clusterResource(cluster types.DBCluster) rpt.Resource {
	name := aws.ToString(cluster.DBClusterIdentifier)
	if name == "" {
		return rpt.Placeholder("Unknown Aurora Cluster")
	}
	return rpt.Real(name, aws.ToString(cluster.DBClusterArn))
}

func inspectAuroraClusterStorageEncrypted(ctx context.Context, api API) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[types.DBCluster]{
		ErrorContext: errorContext,
		ErrorName:    "Aurora Check",
		EmptyName:    "No Aurora Clusters Found",
		EmptyMessage: "No Aurora clusters found in the region",
		List: func(ctx context.Context) ([]types.DBCluster, error) {
			return listAuroraClusters(ctx, api)
		},
		Identify: clusterResource,
		Evaluate: func(ctx context.Context, cluster types.DBCluster) ([]rpt.Result, error) {
			if aws.ToString(cluster.DBClusterIdentifier) == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Aurora Cluster"), "Aurora cluster has no cluster identifier")}, nil
			}
			resource := clusterResource(cluster)
			if !aws.ToBool(cluster.StorageEncrypted) {
				return []rpt.Result{rpt.Fail(resource, "Aurora cluster storage is not encrypted")}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}
