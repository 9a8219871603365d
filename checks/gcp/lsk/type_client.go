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

package lsk

import (
	"context"
	"fmt"

	"cloud.google.com/go/logging/logadmin"
	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
)

const pageSize = 100

// API lists the log sinks of the client parent one page at a time
type API interface {
	ListSinks(ctx context.Context, token string) (pgr.Page[*logadmin.Sink], error)
}

type client struct {
	logAdminClient *logadmin.Client
}

func newClient(ctx context.Context, projectID string) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	logAdminClient, err := logadmin.NewClient(ctx, fmt.Sprintf("projects/%s", projectID), opt)
	if err != nil {
		return nil, fmt.Errorf("logadmin.NewClient %v", err)
	}
	return &client{logAdminClient: logAdminClient}, nil
}

func (c *client) ListSinks(ctx context.Context, token string) (pgr.Page[*logadmin.Sink], error) {
	var sinks []*logadmin.Sink
	nextToken, err := pgr.GooglePage(c.logAdminClient.Sinks(ctx), pageSize, token, &sinks)
	if err != nil {
		return pgr.Page[*logadmin.Sink]{}, err
	}
	return pgr.Page[*logadmin.Sink]{Items: sinks, NextToken: nextToken}, nil
}

func (c *client) Close() error {
	return c.logAdminClient.Close()
}
