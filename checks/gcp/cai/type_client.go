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

package cai

import (
	"context"
	"fmt"

	asset "cloud.google.com/go/asset/apiv1"
	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	assetpb "google.golang.org/genproto/googleapis/cloud/asset/v1"
)

const pageSize = 500

// API searches the resources of a scope one page at a time
type API interface {
	SearchResources(ctx context.Context, scope string, assetTypes []string, token string) (pgr.Page[*assetpb.ResourceSearchResult], error)
}

type client struct {
	assetClient *asset.Client
}

func newClient(ctx context.Context) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	assetClient, err := asset.NewClient(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("asset.NewClient %v", err)
	}
	return &client{assetClient: assetClient}, nil
}

func (c *client) SearchResources(ctx context.Context, scope string, assetTypes []string, token string) (pgr.Page[*assetpb.ResourceSearchResult], error) {
	var searchRequest assetpb.SearchAllResourcesRequest
	searchRequest.Scope = scope
	searchRequest.AssetTypes = assetTypes
	var results []*assetpb.ResourceSearchResult
	nextToken, err := pgr.GooglePage(c.assetClient.SearchAllResources(ctx, &searchRequest), pageSize, token, &results)
	if err != nil {
		return pgr.Page[*assetpb.ResourceSearchResult]{}, err
	}
	return pgr.Page[*assetpb.ResourceSearchResult]{Items: results, NextToken: nextToken}, nil
}

func (c *client) Close() error {
	return c.assetClient.Close()
}
