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

package pgr

import (
	"context"

	"google.golang.org/api/iterator"
)

// Collect fetches every page and returns the concatenated items
// On any page error, items already fetched are discarded and the error is returned as is
func Collect[T any](ctx context.Context, fetch FetchPage[T]) ([]T, error) {
	var items []T
	pager := NewPager(fetch)
	for {
		item, err := pager.Next(ctx)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
