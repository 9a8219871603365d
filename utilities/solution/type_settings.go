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

package solution

// Default values used when neither the config file nor the environment set them
const (
	DefaultAWSRegion = "us-east-1"
	DefaultGCPRegion = "us-central1"
)

// DefaultWellKnownPorts ports that should never be reachable from anywhere
var DefaultWellKnownPorts = []int64{20, 21, 22, 23, 25, 110, 135, 143, 445, 1433, 1521, 3306, 3389, 5432, 5500, 5601, 6379, 8080, 9200, 9300, 11211, 27017}

// Settings settings common to all checks
type Settings struct {
	Environment string `mapstructure:"environment" yaml:"environment,omitempty"`
	AWS         struct {
		Region    string            `mapstructure:"region" yaml:"region,omitempty" valid:"isRegion"`
		AccountID string            `mapstructure:"accountID" yaml:"accountID,omitempty"`
		Regions   map[string]string `mapstructure:"regions" yaml:"regions,omitempty"`
	} `mapstructure:"aws" yaml:"aws"`
	GCP struct {
		ProjectID  string            `mapstructure:"projectID" yaml:"projectID,omitempty"`
		ProjectIDs map[string]string `mapstructure:"projectIDs" yaml:"projectIDs,omitempty"`
		Region     string            `mapstructure:"region" yaml:"region,omitempty" valid:"isRegion"`
		Regions    map[string]string `mapstructure:"regions" yaml:"regions,omitempty"`
	} `mapstructure:"gcp" yaml:"gcp"`
	Labels struct {
		Required []string `mapstructure:"required" yaml:"required" valid:"isNotZeroValue"`
	} `mapstructure:"labels" yaml:"labels"`
	Tags struct {
		Required []string `mapstructure:"required" yaml:"required" valid:"isNotZeroValue"`
	} `mapstructure:"tags" yaml:"tags"`
	Ports struct {
		WellKnown []int64 `mapstructure:"wellKnown" yaml:"wellKnown" valid:"isNotZeroValue"`
	} `mapstructure:"ports" yaml:"ports"`
}
