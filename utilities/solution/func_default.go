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

// Default returns settings holding the default values only
func Default() Settings {
	var settings Settings
	settings.AWS.Region = DefaultAWSRegion
	settings.GCP.Region = DefaultGCPRegion
	settings.Labels.Required = []string{"owner"}
	settings.Tags.Required = []string{"Owner"}
	settings.Ports.WellKnown = append([]int64(nil), DefaultWellKnownPorts...)
	return settings
}
