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
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	pubsubpb "google.golang.org/genproto/googleapis/pubsub/v1"
)

const errorContext = "Error checking Pub/Sub topics"

func execute(inspect func(ctx context.Context, api API, projectID string) rpt.Report) chk.Execute {
	return func(ctx context.Context, settings solution.Settings) rpt.Report {
		projectID, err := settings.GCPProject()
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		c, err := newClient(ctx)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		defer c.Close()
		return inspect(ctx, c, projectID)
	}
}

func inspectTopics(ctx context.Context, api API, projectID string, evaluate rpt.Evaluate[*pubsubpb.Topic]) rpt.Report {
	return rpt.Assemble(ctx, rpt.Inspection[*pubsubpb.Topic]{
		ErrorContext: errorContext,
		ErrorName:    "Pub/Sub Check",
		EmptyName:    "No Pub/Sub Topics Found",
		EmptyMessage: "No Pub/Sub topics found in the project",
		List: func(ctx context.Context) ([]*pubsubpb.Topic, error) {
			return api.ListTopics(ctx, projectID)
		},
		Identify: topicResource,
		Evaluate: func(ctx context.Context, topic *pubsubpb.Topic) ([]rpt.Result, error) {
			if topic.GetName() == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Pub/Sub Topic"), "Pub/Sub topic has no name")}, nil
			}
			return evaluate(ctx, topic)
		},
	})
}

// topicResource names the topic by its short name, projects/p/topics/t gives t
func topicResource(topic *pubsubpb.Topic) rpt.Resource {
	name := topic.GetName()
	if name == "" {
		return rpt.Placeholder("Unknown Pub/Sub Topic")
	}
	nameParts := strings.Split(name, "/")
	return rpt.Real(nameParts[len(nameParts)-1], "//pubsub.googleapis.com/"+name)
}
