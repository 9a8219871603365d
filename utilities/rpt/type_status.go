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

package rpt

// Status compliance verdict of one result
type Status string

// Closed list of statuses
const (
	StatusPass          Status = "PASS"
	StatusFail          Status = "FAIL"
	StatusNotApplicable Status = "NOTAPPLICABLE"
	StatusError         Status = "ERROR"
)

// Statuses lists the valid statuses in display order
var Statuses = []Status{StatusPass, StatusFail, StatusNotApplicable, StatusError}

// Valid reports whether s is one of the closed list of statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusFail, StatusNotApplicable, StatusError:
		return true
	}
	return false
}
