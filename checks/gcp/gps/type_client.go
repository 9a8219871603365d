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

package gps

import (
	"context"
	"fmt"

	"cloud.google.com/go/iam"
	pubsub "cloud.google.com/go/pubsub/apiv1"
	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	pubsubpb "google.golang.org/genproto/googleapis/pubsub/v1"
)

// API lists topics and reads their IAM policy
type API interface {
	ListTopics(ctx context.Context, projectID string) ([]*pubsubpb.Topic, error)
	TopicPolicy(ctx context.Context, topic *pubsubpb.Topic) (*iam.Policy, error)
}

type client struct {
	publisherClient *pubsub.PublisherClient
}

func newClient(ctx context.Context) (*client, error) {
	opt, err := aut.GetClientOption(ctx)
	if err != nil {
		return nil, err
	}
	publisherClient, err := pubsub.NewPublisherClient(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("pubsub.NewPublisherClient %v", err)
	}
	return &client{publisherClient: publisherClient}, nil
}

// ListTopics drains the topic iterator, the client owns the page tokens
func (c *client) ListTopics(ctx context.Context, projectID string) ([]*pubsubpb.Topic, error) {
	var listTopicRequest pubsubpb.ListTopicsRequest
	listTopicRequest.Project = fmt.Sprintf("projects/%s", projectID)
	return pgr.Drain(c.publisherClient.ListTopics(ctx, &listTopicRequest).Next)
}

func (c *client) TopicPolicy(ctx context.Context, topic *pubsubpb.Topic) (*iam.Policy, error) {
	return c.publisherClient.TopicIAM(topic).Policy(ctx)
}

func (c *client) Close() error {
	return c.publisherClient.Close()
}
