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

import "google.golang.org/api/iterator"

// GooglePage fetches one page of a google client iterator starting at token
// It lets a Pageable iterator be driven through a FetchPage when the caller owns the token
func GooglePage[T any](it iterator.Pageable, pageSize int, token string, items *[]T) (nextToken string, err error) {
	return iterator.NewPager(it, pageSize, token).NextPage(items)
}
