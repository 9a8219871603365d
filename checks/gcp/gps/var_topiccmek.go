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

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	pubsubpb "google.golang.org/genproto/googleapis/pubsub/v1"
)

// TopicCMEK topics must be encrypted with a customer managed key
var TopicCMEK = chk.Check{
	ID:          "gcp-pubsub-topic-cmek",
	Title:       "Pub/Sub topics use a customer-managed encryption key",
	Description: "Every Pub/Sub topic should encrypt its messages with a Cloud KMS key.",
	Controls: []chk.Control{
		{ID: "PubSub.1", Document: "Google Cloud security foundations guide"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "Pub/Sub",
	ShortServiceName: "pubsub",
	Provider:         chk.GCP,
	Execute:          execute(inspectTopicCMEK),
}

func inspectTopicCMEK(ctx context.Context, api API, projectID string) rpt.Report {
	return inspectTopics(ctx, api, projectID, func(ctx context.Context, topic *pubsubpb.Topic) ([]rpt.Result, error) {
		if topic.GetKmsKeyName() == "" {
			return []rpt.Result{rpt.Fail(topicResource(topic), "Topic is not encrypted with a customer-managed key")}, nil
		}
		return []rpt.Result{rpt.Pass(topicResource(topic))}, nil
	})
}
