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

package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
)

const pageSize = 100

// API lists the buckets of a project one page at a time
type API interface {
	ListBuckets(ctx context.Context, projectID string, token string) (pgr.Page[*storage.BucketAttrs], error)
}

type client struct {
	storageClient *storage.Client
}

func newClient(ctx context.Context) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	storageClient, err := storage.NewClient(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient %v", err)
	}
	return &client{storageClient: storageClient}, nil
}

func (c *client) ListBuckets(ctx context.Context, projectID string, token string) (pgr.Page[*storage.BucketAttrs], error) {
	var buckets []*storage.BucketAttrs
	nextToken, err := pgr.GooglePage(c.storageClient.Buckets(ctx, projectID), pageSize, token, &buckets)
	if err != nil {
		return pgr.Page[*storage.BucketAttrs]{}, err
	}
	return pgr.Page[*storage.BucketAttrs]{Items: buckets, NextToken: nextToken}, nil
}

func (c *client) Close() error {
	return c.storageClient.Close()
}
