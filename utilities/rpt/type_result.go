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

// Result one compliance outcome
// Facet distinguishes several results about the same resource, e.g. notifications and logDelivery
type Result struct {
	Resource `yaml:",inline"`
	Facet    string `json:"facet,omitempty" yaml:"facet,omitempty"`
	Status   Status `json:"status" yaml:"status"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Pass carries no message
func Pass(resource Resource) Result {
	return Result{Resource: resource, Status: StatusPass}
}

// Fail message states the unmet condition
func Fail(resource Resource, message string) Result {
	return Result{Resource: resource, Status: StatusFail, Message: message}
}

// NotApplicable message states why the rule does not apply
func NotApplicable(resource Resource, message string) Result {
	return Result{Resource: resource, Status: StatusNotApplicable, Message: message}
}

// Error message is the rendered error
func Error(resource Resource, message string) Result {
	return Result{Resource: resource, Status: StatusError, Message: message}
}

// OnFacet returns a copy of the result scoped to facet
func (r Result) OnFacet(facet string) Result {
	r.Facet = facet
	return r
}

// Report ordered results of one check execution
type Report []Result
