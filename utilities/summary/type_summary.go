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

package summary

import "github.com/BrunoReboul/cloudcheck/utilities/rpt"

// Summary number of results per status
type Summary struct {
	Total    int                `json:"total" yaml:"total"`
	ByStatus map[rpt.Status]int `json:"byStatus" yaml:"byStatus"`
}

// Generate counts the results of report per status
func Generate(report rpt.Report) Summary {
	summary := Summary{ByStatus: make(map[rpt.Status]int)}
	for _, status := range rpt.Statuses {
		summary.ByStatus[status] = 0
	}
	for _, result := range report {
		summary.ByStatus[result.Status]++
		summary.Total++
	}
	return summary
}

