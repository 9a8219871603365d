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

import "errors"

// ErrNoGCPProject GCP checks have no default project
var ErrNoGCPProject = errors.New("GCP project ID is not set")

// GCPProject returns the GCP project to check, or ErrNoGCPProject
func (settings Settings) GCPProject() (string, error) {
	if settings.GCP.ProjectID == "" {
		return "", ErrNoGCPProject
	}
	return settings.GCP.ProjectID, nil
}
