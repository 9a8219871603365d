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

import (
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/validater"
	"github.com/spf13/viper"
)

var envBindings = map[string]string{
	"aws.region":    "AWS_REGION",
	"aws.accountID": "AWS_ACCOUNT_ID",
	"gcp.projectID": "GCP_PROJECT_ID",
	"gcp.region":    "GCP_REGION",
}

// Load reads settings from defaults, configFile when not empty, then environment variables
// The result is situated in environmentName and validated
func Load(configFile string, environmentName string) (settings Settings, err error) {
	v := viper.New()
	defaults := Default()
	v.SetDefault("aws.region", defaults.AWS.Region)
	v.SetDefault("gcp.region", defaults.GCP.Region)
	v.SetDefault("labels.required", defaults.Labels.Required)
	v.SetDefault("tags.required", defaults.Tags.Required)
	v.SetDefault("ports.wellKnown", defaults.Ports.WellKnown)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err = v.ReadInConfig(); err != nil {
			return settings, fmt.Errorf("solution.Load: v.ReadInConfig %s %v", configFile, err)
		}
	}
	for key, envName := range envBindings {
		if err = v.BindEnv(key, envName); err != nil {
			return settings, fmt.Errorf("solution.Load: v.BindEnv %s %v", envName, err)
		}
	}
	if err = v.Unmarshal(&settings); err != nil {
		return settings, fmt.Errorf("solution.Load: v.Unmarshal %v", err)
	}
	settings.Situate(environmentName)
	if err = settings.Validate(); err != nil {
		return settings, fmt.Errorf("solution.Load: %v", err)
	}
	return settings, nil
}

// Validate checks field values against their valid tags
func (settings *Settings) Validate() error {
	return validater.ValidateStruct(settings, "settings")
}
