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

package rpt

import (
	"context"
	"fmt"
	"time"

	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/glo"
	"github.com/google/uuid"
)

// Assemble lists items once then evaluates them one by one, in listing order
func Assemble[T any](ctx context.Context, in Inspection[T]) Report {
	logger := glo.FromContext(ctx)
	runID := uuid.New().String()
	start := time.Now()

	items, err := list(ctx, in)
	if err != nil {
		message := erm.Format(in.ErrorContext, err)
		glo.Entry{
			RunID:       runID,
			Severity:    severityOf(err),
			Message:     "listing failed",
			Description: message,
		}.Log(logger)
		name := in.ErrorName
		if name == "" {
			name = in.EmptyName
		}
		return Report{Error(Placeholder(name), message)}
	}
	if len(items) == 0 {
		glo.Entry{
			RunID:       runID,
			Severity:    "INFO",
			Message:     "nothing to evaluate",
			Description: in.EmptyMessage,
		}.Log(logger)
		return Report{NotApplicable(Placeholder(in.EmptyName), in.EmptyMessage)}
	}

	var report Report
	for i, item := range items {
		results, err := evaluate(ctx, in.Evaluate, item)
		if err != nil {
			resource := identify(in.Identify, item)
			message := erm.Format(in.ErrorContext, err)
			glo.Entry{
				RunID:       runID,
				Severity:    severityOf(err),
				Message:     "evaluation failed",
				Description: fmt.Sprintf("%s %s", resource.Name, message),
				ResourceNum: i + 1,
			}.Log(logger)
			report = append(report, Error(resource, message))
			continue
		}
		report = append(report, results...)
	}
	glo.Entry{
		RunID:       runID,
		Severity:    "INFO",
		Message:     "evaluation done",
		Description: fmt.Sprintf("%d results in %v", len(report), time.Since(start)),
		ResourceNum: len(items),
		RecordNum:   len(report),
	}.Log(logger)
	return report
}

// Failed is the report of a check that could not start, e.g. on a client construction error
func Failed(context string, err error) Report {
	return Report{Error(Placeholder(context), erm.Format(context, err))}
}

func list[T any](ctx context.Context, in Inspection[T]) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("%s", erm.Message(r))
		}
	}()
	if in.List == nil {
		return nil, fmt.Errorf("no lister")
	}
	return in.List(ctx)
}

func evaluate[T any](ctx context.Context, fn Evaluate[T], item T) (results []Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("%s", erm.Message(r))
		}
	}()
	if fn == nil {
		return nil, fmt.Errorf("no evaluator")
	}
	results, err = fn(ctx, item)
	if err == nil && len(results) == 0 {
		err = fmt.Errorf("no result")
	}
	return results, err
}

func identify[T any](fn func(T) Resource, item T) (resource Resource) {
	defer func() {
		if r := recover(); r != nil {
			resource = Placeholder("Unknown resource")
		}
	}()
	if fn == nil {
		return Placeholder("Unknown resource")
	}
	return fn(item)
}

func severityOf(err error) string {
	if erm.IsTransient(err) {
		return "WARNING"
	}
	return "ERROR"
}
