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

package glo

import "github.com/sirupsen/logrus"

// Entry defines a Google Cloud logging structured entry
// https://cloud.google.com/logging/docs/agent/configuration#special-fields
// Severity and Message map to the severity and message special fields, time is set by logrus
type Entry struct {
	CheckID     string
	RunID       string
	Scope       string
	Severity    string
	Message     string
	Description string
	ResourceNum int
	RecordNum   int
}

// Fields returns the non empty entry attributes as logrus fields
func (e Entry) Fields() logrus.Fields {
	fields := logrus.Fields{}
	if e.CheckID != "" {
		fields["check_id"] = e.CheckID
	}
	if e.RunID != "" {
		fields["run_id"] = e.RunID
	}
	if e.Scope != "" {
		fields["scope"] = e.Scope
	}
	if e.Description != "" {
		fields["description"] = e.Description
	}
	if e.ResourceNum != 0 {
		fields["resource_num"] = e.ResourceNum
	}
	if e.RecordNum != 0 {
		fields["record_num"] = e.RecordNum
	}
	return fields
}
