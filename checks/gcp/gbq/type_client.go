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

package gbq

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
)

const pageSize = 100

// API lists datasets and reads their metadata
type API interface {
	ListDatasets(ctx context.Context, projectID string, token string) (pgr.Page[*bigquery.Dataset], error)
	DatasetMetadata(ctx context.Context, dataset *bigquery.Dataset) (*bigquery.DatasetMetadata, error)
}

type client struct {
	bigQueryClient *bigquery.Client
}

func newClient(ctx context.Context, projectID string) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	bigQueryClient, err := bigquery.NewClient(ctx, projectID, opt)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient %v", err)
	}
	return &client{bigQueryClient: bigQueryClient}, nil
}

func (c *client) ListDatasets(ctx context.Context, projectID string, token string) (pgr.Page[*bigquery.Dataset], error) {
	it := c.bigQueryClient.Datasets(ctx)
	it.ProjectID = projectID
	var datasets []*bigquery.Dataset
	nextToken, err := pgr.GooglePage(it, pageSize, token, &datasets)
	if err != nil {
		return pgr.Page[*bigquery.Dataset]{}, err
	}
	return pgr.Page[*bigquery.Dataset]{Items: datasets, NextToken: nextToken}, nil
}

// DatasetMetadata reads through the client so datasets built by the iterator or by tests resolve alike
func (c *client) DatasetMetadata(ctx context.Context, dataset *bigquery.Dataset) (*bigquery.DatasetMetadata, error) {
	return c.bigQueryClient.DatasetInProject(dataset.ProjectID, dataset.DatasetID).Metadata(ctx)
}

func (c *client) Close() error {
	return c.bigQueryClient.Close()
}
