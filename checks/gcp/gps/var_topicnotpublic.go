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
	"sort"
	"strings"

	"cloud.google.com/go/iam"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	pubsubpb "google.golang.org/genproto/googleapis/pubsub/v1"
)

var publicMembers = []string{iam.AllUsers, iam.AllAuthenticatedUsers}

// TopicNotPublic topics must not grant any role to allUsers or allAuthenticatedUsers
var TopicNotPublic = chk.Check{
	ID:          "gcp-pubsub-topic-not-public",
	Title:       "Pub/Sub topics are not publicly accessible",
	Description: "No Pub/Sub topic IAM policy should bind a role to allUsers or allAuthenticatedUsers.",
	Controls: []chk.Control{
		{ID: "PubSub.2", Document: "Google Cloud security foundations guide"},
	},
	Severity:         chk.SeverityHigh,
	ServiceName:      "Pub/Sub",
	ShortServiceName: "pubsub",
	Provider:         chk.GCP,
	Execute:          execute(inspectTopicNotPublic),
}

func inspectTopicNotPublic(ctx context.Context, api API, projectID string) rpt.Report {
	return inspectTopics(ctx, api, projectID, func(ctx context.Context, topic *pubsubpb.Topic) ([]rpt.Result, error) {
		policy, err := api.TopicPolicy(ctx, topic)
		if err != nil {
			return nil, erm.Wrap("Error checking topic IAM policy", err)
		}
		grants := publicGrants(policy)
		if len(grants) > 0 {
			return []rpt.Result{rpt.Fail(topicResource(topic), fmt.Sprintf("Topic is public: %s", strings.Join(grants, ", ")))}, nil
		}
		return []rpt.Result{rpt.Pass(topicResource(topic))}, nil
	})
}

// publicGrants lists "<role> to <member>" for every public binding, sorted
func publicGrants(policy *iam.Policy) (grants []string) {
	if policy == nil {
		return nil
	}
	for _, role := range policy.Roles() {
		for _, member := range publicMembers {
			if policy.HasRole(member, role) {
				grants = append(grants, fmt.Sprintf("%s to %s", role, member))
			}
		}
	}
	sort.Strings(grants)
	return grants
}
