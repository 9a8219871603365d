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

package sch

import (
	"context"
	"fmt"

	scheduler "cloud.google.com/go/scheduler/apiv1"
	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	schedulerpb "google.golang.org/genproto/googleapis/cloud/scheduler/v1"
)

const pageSize = 100

// API lists the jobs of a location one page at a time
type API interface {
	ListJobs(ctx context.Context, parent string, token string) (pgr.Page[*schedulerpb.Job], error)
}

type client struct {
	schedulerClient *scheduler.CloudSchedulerClient
}

func newClient(ctx context.Context) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	schedulerClient, err := scheduler.NewCloudSchedulerClient(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("scheduler.NewCloudSchedulerClient %v", err)
	}
	return &client{schedulerClient: schedulerClient}, nil
}

func (c *client) ListJobs(ctx context.Context, parent string, token string) (pgr.Page[*schedulerpb.Job], error) {
	var listJobsRequest schedulerpb.ListJobsRequest
	listJobsRequest.Parent = parent
	var jobs []*schedulerpb.Job
	nextToken, err := pgr.GooglePage(c.schedulerClient.ListJobs(ctx, &listJobsRequest), pageSize, token, &jobs)
	if err != nil {
		return pgr.Page[*schedulerpb.Job]{}, err
	}
	return pgr.Page[*schedulerpb.Job]{Items: jobs, NextToken: nextToken}, nil
}

func (c *client) Close() error {
	return c.schedulerClient.Close()
}
