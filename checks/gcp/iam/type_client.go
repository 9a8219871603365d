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

package iam

import (
	"context"
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"google.golang.org/api/iam/v1"
)

const userManaged = "USER_MANAGED"

// API lists service accounts one page at a time and their user managed keys
type API interface {
	ListServiceAccounts(ctx context.Context, projectID string, token string) (pgr.Page[*iam.ServiceAccount], error)
	ListUserManagedKeys(ctx context.Context, serviceAccountName string) ([]*iam.ServiceAccountKey, error)
}

type client struct {
	iamService *iam.Service
}

func newClient(ctx context.Context) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	iamService, err := iam.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("iam.NewService %v", err)
	}
	return &client{iamService: iamService}, nil
}

func (c *client) ListServiceAccounts(ctx context.Context, projectID string, token string) (pgr.Page[*iam.ServiceAccount], error) {
	call := c.iamService.Projects.ServiceAccounts.List(fmt.Sprintf("projects/%s", projectID)).Context(ctx)
	if token != "" {
		call = call.PageToken(token)
	}
	response, err := call.Do()
	if err != nil {
		return pgr.Page[*iam.ServiceAccount]{}, fmt.Errorf("ServiceAccounts.List %v", err)
	}
	return pgr.Page[*iam.ServiceAccount]{Items: response.Accounts, NextToken: response.NextPageToken}, nil
}

func (c *client) ListUserManagedKeys(ctx context.Context, serviceAccountName string) ([]*iam.ServiceAccountKey, error) {
	response, err := c.iamService.Projects.ServiceAccounts.Keys.List(serviceAccountName).KeyTypes(userManaged).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ServiceAccounts.Keys.List %v", err)
	}
	return response.Keys, nil
}
