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

package checks

import (
	"github.com/BrunoReboul/cloudcheck/checks/aws/accessanalyzer"
	"github.com/BrunoReboul/cloudcheck/checks/aws/apigateway"
	"github.com/BrunoReboul/cloudcheck/checks/aws/appsync"
	"github.com/BrunoReboul/cloudcheck/checks/aws/configservice"
	"github.com/BrunoReboul/cloudcheck/checks/aws/ec2"
	"github.com/BrunoReboul/cloudcheck/checks/aws/ecs"
	"github.com/BrunoReboul/cloudcheck/checks/aws/elasticache"
	awsiam "github.com/BrunoReboul/cloudcheck/checks/aws/iam"
	"github.com/BrunoReboul/cloudcheck/checks/aws/rds"
	"github.com/BrunoReboul/cloudcheck/checks/aws/s3"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/cai"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/csql"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/gbq"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/gce"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/gcf"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/gcs"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/gps"
	gcpiam "github.com/BrunoReboul/cloudcheck/checks/gcp/iam"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/lsk"
	"github.com/BrunoReboul/cloudcheck/checks/gcp/sch"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
)

var catalog = chk.NewCatalog().MustRegister(
	// aws
	accessanalyzer.Enabled,
	apigateway.StageCacheEncryption,
	appsync.CacheEncryptionAtRest,
	configservice.RecorderEnabled,
	ec2.EBSVolumeEncryption,
	ec2.IMDSv2Required,
	ec2.SecurityGroupDefaultPorts,
	ecs.TaskDefinitionNoPrivileged,
	elasticache.Monitoring,
	awsiam.RoleTrustPolicyWildcard,
	rds.AuroraClusterStorageEncrypted,
	s3.BucketDefaultEncryption,
	s3.BucketRequiredTags,
	// gcp
	cai.RequiredLabels,
	csql.RequireSSL,
	gbq.DatasetCMEK,
	gce.FirewallDefaultPorts,
	gcf.IngressInternal,
	gcs.PublicAccessPrevention,
	gcs.UniformBucketLevelAccess,
	gps.TopicCMEK,
	gps.TopicNotPublic,
	gcpiam.ServiceAccountUserManagedKeys,
	lsk.SinkAllEntries,
	sch.HTTPTargetAuthenticated,
)

// Catalog returns the catalog of every check
func Catalog() *chk.Catalog {
	return catalog
}
