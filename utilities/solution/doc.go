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

// Package solution settings common to all checks
//
// Settings are loaded from defaults, an optional YAML file and environment variables
// (AWS_REGION, AWS_ACCOUNT_ID, GCP_PROJECT_ID, GCP_REGION), then situated in an environment
// and validated.
package solution
