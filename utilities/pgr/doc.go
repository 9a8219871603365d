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

// Package pgr PaGeR follows list API continuation tokens until exhausted
//
// Whatever the token field name of the API (NextToken, Marker, NextMarker, Position, PageToken),
// a lister is expressed as a FetchPage closure. Collect returns all items in page arrival order,
// or nothing when any page fails.
package pgr
