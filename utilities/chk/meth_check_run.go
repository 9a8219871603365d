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

package chk

import (
	"context"
	"fmt"
	"time"

	"github.com/BrunoReboul/cloudcheck/utilities/glo"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
)

// Run executes the check with a logger scoped to the check ID
// A panic escaping Execute or an empty report is turned into a single ERROR result
func (check Check) Run(ctx context.Context, settings solution.Settings) (report rpt.Report) {
	logger := glo.FromContext(ctx).WithField("check_id", check.ID)
	ctx = glo.WithLogger(ctx, logger)
	start := time.Now()
	errorContext := fmt.Sprintf("Error running %s", check.ID)
	defer func() {
		if r := recover(); r != nil {
			report = rpt.Failed(errorContext, fmt.Errorf("%v", r))
		}
		glo.Entry{
			CheckID:     check.ID,
			Severity:    "INFO",
			Message:     "check done",
			Description: fmt.Sprintf("%d results in %v", len(report), time.Since(start)),
			RecordNum:   len(report),
		}.Log(logger)
	}()
	if check.Execute == nil {
		return rpt.Failed(errorContext, fmt.Errorf("no execute function"))
	}
	report = check.Execute(ctx, settings)
	if len(report) == 0 {
		report = rpt.Failed(errorContext, fmt.Errorf("empty report"))
	}
	return report
}
