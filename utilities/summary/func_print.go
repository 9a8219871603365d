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

package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/fatih/color"
	"gopkg.in/yaml.v2"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	passColor          = color.New(color.FgGreen, color.Bold).SprintfFunc()
	failColor          = color.New(color.FgRed, color.Bold).SprintfFunc()
	notApplicableColor = color.New(color.FgCyan, color.Bold).SprintfFunc()
	errorColor         = color.New(color.FgYellow, color.Bold).SprintfFunc()
)

type document struct {
	Summary Summary    `json:"summary" yaml:"summary"`
	Results rpt.Report `json:"results" yaml:"results"`
}

// Print writes the report and its summary to w in format
func Print(w io.Writer, summary Summary, report rpt.Report, format string) error {
	switch format {
	case FormatText, "":
		return printText(w, summary, report)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(document{Summary: summary, Results: report}); err != nil {
			return fmt.Errorf("summary.Print: json %v", err)
		}
		return nil
	case FormatYAML:
		b, err := yaml.Marshal(document{Summary: summary, Results: report})
		if err != nil {
			return fmt.Errorf("summary.Print: yaml %v", err)
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("summary.Print: unsupported format %q, want text, json or yaml", format)
}

func printText(w io.Writer, summary Summary, report rpt.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "STATUS\tRESOURCE\tFACET\tMESSAGE\n")
	fmt.Fprintf(tw, "------\t--------\t-----\t-------\n")
	for _, result := range report {
		name := result.Name
		if result.Arn != "" {
			name = result.Arn
		}
		if result.IsPlaceholder() {
			name = fmt.Sprintf("(%s)", result.Name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", colorStatus(result.Status), name, result.Facet, result.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal: %d", summary.Total)
	for _, status := range rpt.Statuses {
		fmt.Fprintf(w, "  %s: %d", colorStatus(status), summary.ByStatus[status])
	}
	fmt.Fprintf(w, "\n")
	return nil
}

func colorStatus(status rpt.Status) string {
	// same width once colored so that the table stays aligned
	label := fmt.Sprintf("%-13s", status)
	switch status {
	case rpt.StatusPass:
		return passColor(label)
	case rpt.StatusFail:
		return failColor(label)
	case rpt.StatusNotApplicable:
		return notApplicableColor(label)
	default:
		return errorColor(label)
	}
}
