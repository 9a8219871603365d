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

// Pager is a lazy sequence of items over a paginated list API
type Pager[T any] struct {
	fetch     FetchPage[T]
	buffer    []T
	token     string
	sent      map[string]bool
	exhausted bool
	err       error
}

// NewPager returns a pager that has not called the API yet
func NewPager[T any](fetch FetchPage[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch, sent: make(map[string]bool)}
}

// Next returns the next item, fetching the next page when needed
// iterator.Done is returned once all pages are consumed. Any fetch error is sticky
func (p *Pager[T]) Next(ctx context.Context) (T, error) {
	var zero T
	for len(p.buffer) == 0 {
		if p.err != nil {
			return zero, p.err
		}
		if p.exhausted {
			return zero, iterator.Done
		}
		if err := p.fetchPage(ctx); err != nil {
			p.err = err
			return zero, err
		}
	}
	item := p.buffer[0]
	p.buffer = p.buffer[1:]
	return item, nil
}

func (p *Pager[T]) fetchPage(ctx context.Context) error {
	p.sent[p.token] = true
	page, err := p.fetch(ctx, p.token)
	if err != nil {
		return err
	}
	p.buffer = append(p.buffer, page.Items...)
	// a token already sent would cycle forever, treat it as the last page
	if page.NextToken == "" || p.sent[page.NextToken] {
		p.exhausted = true
	}
	p.token = page.NextToken
	return nil
}
