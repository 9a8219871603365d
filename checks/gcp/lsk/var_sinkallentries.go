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
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
)

const errorContext = "Error checking log sinks"

// SinkAllEntries sinks must export every log entry
var SinkAllEntries = chk.Check{
	ID:          "gcp-logging-sink-all-entries",
	Title:       "Log sinks export all log entries",
	Description: "Every Cloud Logging sink of the project should have an empty filter so that all entries are exported.",
	Controls: []chk.Control{
		{ID: "2.2", Document: "CIS Google Cloud Platform Foundation Benchmark v1.3.0"},
	},
	Severity:         chk.SeverityMedium,
	ServiceName:      "Cloud Logging",
	ShortServiceName: "logging",
	Provider:         chk.GCP,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		projectID, err := settings.GCPProject()
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		c, err := newClient(ctx, projectID)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		defer c.Close()
		return inspectSinkAllEntries(ctx, c, projectID)
	},
}

func inspectSinkAllEntries(ctx context.Context, api API, projectID string) rpt.Report {
	sinkResource := func(sink *logadmin.Sink) rpt.Resource {
		if sink == nil || sink.ID == "" {
			return rpt.Placeholder("Unknown Log Sink")
		}
		return rpt.Real(sink.ID, fmt.Sprintf("//logging.googleapis.com/projects/%s/sinks/%s", projectID, sink.ID))
	}
	return rpt.Assemble(ctx, rpt.Inspection[*logadmin.Sink]{
		ErrorContext: errorContext,
		ErrorName:    "Log Sink Check",
		EmptyName:    "No Log Sinks Found",
		EmptyMessage: "No log sinks found in the project",
		List: func(ctx context.Context) ([]*logadmin.Sink, error) {
			return pgr.Collect(ctx, api.ListSinks)
		},
		Identify: sinkResource,
		Evaluate: func(ctx context.Context, sink *logadmin.Sink) ([]rpt.Result, error) {
			if sink == nil || sink.ID == "" {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown Log Sink"), "Log sink has no ID")}, nil
			}
			if sink.Filter != "" {
				return []rpt.Result{rpt.Fail(sinkResource(sink), fmt.Sprintf("Sink exports only entries matching %q", sink.Filter))}, nil
			}
			return []rpt.Result{rpt.Pass(sinkResource(sink))}, nil
		},
	})
}
