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

package checkcli

import (
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/spf13/cobra"
)

// options holds the flags shared by the subcommands
type options struct {
	configFile   string
	environment  string
	logLevel     string
	logFormat    string
	awsRegion    string
	awsAccountID string
	gcpProjectID string
	gcpRegion    string
	format       string
	output       string
	provider     string
}

// settings loads the configuration then applies the flags explicitly set on cmd
func (o *options) settings(cmd *cobra.Command) (solution.Settings, error) {
	settings, err := solution.Load(o.configFile, o.environment)
	if err != nil {
		return settings, err
	}
	overrides := []struct {
		flag  string
		value string
		field *string
	}{
		{"region", o.awsRegion, &settings.AWS.Region},
		{"account-id", o.awsAccountID, &settings.AWS.AccountID},
		{"project", o.gcpProjectID, &settings.GCP.ProjectID},
		{"gcp-region", o.gcpRegion, &settings.GCP.Region},
	}
	for _, override := range overrides {
		if cmd.Flags().Changed(override.flag) {
			*override.field = override.value
		}
	}
	if err = settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid flags: %v", err)
	}
	return settings, nil
}
