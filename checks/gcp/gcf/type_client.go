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

package gcf

import (
	"context"
	"fmt"

	functions "cloud.google.com/go/functions/apiv1"
	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	functionspb "google.golang.org/genproto/googleapis/cloud/functions/v1"
)

const pageSize = 100

// API lists the functions under a parent one page at a time
type API interface {
	ListFunctions(ctx context.Context, parent string, token string) (pgr.Page[*functionspb.CloudFunction], error)
}

type client struct {
	functionsClient *functions.CloudFunctionsClient
}

func newClient(ctx context.Context) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	functionsClient, err := functions.NewCloudFunctionsClient(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("functions.NewCloudFunctionsClient %v", err)
	}
	return &client{functionsClient: functionsClient}, nil
}

func (c *client) ListFunctions(ctx context.Context, parent string, token string) (pgr.Page[*functionspb.CloudFunction], error) {
	var listFunctionsRequest functionspb.ListFunctionsRequest
	listFunctionsRequest.Parent = parent
	var cloudFunctions []*functionspb.CloudFunction
	nextToken, err := pgr.GooglePage(c.functionsClient.ListFunctions(ctx, &listFunctionsRequest), pageSize, token, &cloudFunctions)
	if err != nil {
		return pgr.Page[*functionspb.CloudFunction]{}, err
	}
	return pgr.Page[*functionspb.CloudFunction]{Items: cloudFunctions, NextToken: nextToken}, nil
}

func (c *client) Close() error {
	return c.functionsClient.Close()
}
