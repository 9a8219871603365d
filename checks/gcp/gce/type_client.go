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

package gce

import (
	"context"
	"fmt"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"google.golang.org/api/compute/v1"
)

// API lists the firewall rules of a project one page at a time
type API interface {
	ListFirewalls(ctx context.Context, projectID string, token string) (pgr.Page[*compute.Firewall], error)
}

type client struct {
	computeService *compute.Service
}

func newClient(ctx context.Context) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	computeService, err := compute.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("compute.NewService %v", err)
	}
	return &client{computeService: computeService}, nil
}

func (c *client) ListFirewalls(ctx context.Context, projectID string, token string) (pgr.Page[*compute.Firewall], error) {
	call := c.computeService.Firewalls.List(projectID).Context(ctx)
	if token != "" {
		call = call.PageToken(token)
	}
	firewallList, err := call.Do()
	if err != nil {
		return pgr.Page[*compute.Firewall]{}, fmt.Errorf("Firewalls.List %v", err)
	}
	return pgr.Page[*compute.Firewall]{Items: firewallList.Items, NextToken: firewallList.NextPageToken}, nil
}
