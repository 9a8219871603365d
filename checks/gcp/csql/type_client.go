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

package csql

import (
	"context"
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	sqladmin "google.golang.org/api/sqladmin/v1beta4"
)

// API lists the Cloud SQL instances of a project one page at a time
type API interface {
	ListInstances(ctx context.Context, projectID string, token string) (pgr.Page[*sqladmin.DatabaseInstance], error)
}

type client struct {
	sqlAdminService *sqladmin.Service
}

func newClient(ctx context.Context) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	sqlAdminService, err := sqladmin.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("sqladmin.NewService %v", err)
	}
	return &client{sqlAdminService: sqlAdminService}, nil
}

func (c *client) ListInstances(ctx context.Context, projectID string, token string) (pgr.Page[*sqladmin.DatabaseInstance], error) {
	call := c.sqlAdminService.Instances.List(projectID).Context(ctx)
	if token != "" {
		call = call.PageToken(token)
	}
	instancesList, err := call.Do()
	if err != nil {
		return pgr.Page[*sqladmin.DatabaseInstance]{}, fmt.Errorf("Instances.List %v", err)
	}
	return pgr.Page[*sqladmin.DatabaseInstance]{Items: instancesList.Items, NextToken: instancesList.NextPageToken}, nil
}
