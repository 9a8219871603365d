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

// Package rpt RePorT normalizes compliance check outcomes
//
// A report is the ordered list of results of one check execution. Assemble drives the
// list then evaluate loop shared by all checks and guaranties a report is never empty:
//
// - listing failure: one ERROR result
//
// - nothing listed: one NOTAPPLICABLE result on a placeholder resource
//
// - otherwise one or more results per listed item, an evaluation failure being isolated to its item
package rpt
