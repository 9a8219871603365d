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

import "context"

// Evaluate applies the check rule to one listed item
// A returned error becomes one ERROR result for the item
type Evaluate[T any] func(ctx context.Context, item T) ([]Result, error)

// Inspection describes a check as a list then evaluate loop
type Inspection[T any] struct {
	// ErrorContext prefixes listing error messages, e.g. "Error checking AppSync APIs"
	ErrorContext string
	// ErrorName is the placeholder resource name of a listing failure, EmptyName when not set
	ErrorName string
	// EmptyName is the placeholder resource name used when nothing is listed, e.g. "No AppSync APIs Found"
	EmptyName    string
	EmptyMessage string
	List         func(ctx context.Context) ([]T, error)
	// Identify names the item in the ERROR result of a failed evaluation
	Identify func(item T) Resource
	Evaluate Evaluate[T]
}
