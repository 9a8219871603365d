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

package checkcli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/fatih/color"
	"gopkg.in/yaml.v2"
)

func fakeCatalog(regions *[]string) *chk.Catalog {
	return chk.NewCatalog().MustRegister(
		chk.Check{
			ID:               "aws-fake-bucket",
			Title:            "Fake buckets are encrypted",
			Description:      "A fake AWS check.",
			Controls:         []chk.Control{{ID: "F.1", Document: "Fake benchmark"}},
			Severity:         chk.SeverityHigh,
			ServiceName:      "Fake Storage",
			ShortServiceName: "fake",
			Provider:         chk.AWS,
			Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
				*regions = append(*regions, settings.AWS.Region)
				return rpt.Report{
					rpt.Pass(rpt.Real("b1", "arn:aws:s3:::b1")),
					rpt.Fail(rpt.Real("b2", "arn:aws:s3:::b2"), "Bucket is not encrypted"),
				}
			},
		},
		chk.Check{
			ID:               "gcp-fake-topic",
			Title:            "Fake topics are private",
			Description:      "A fake GCP check.",
			Severity:         chk.SeverityLow,
			ServiceName:      "Fake Messaging",
			ShortServiceName: "fakemsg",
			Provider:         chk.GCP,
			Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
				projectID, err := settings.GCPProject()
				if err != nil {
					return rpt.Failed("Error checking fake topics", err)
				}
				return rpt.Report{rpt.NotApplicable(rpt.Placeholder("No Fake Topics Found"), "No topics in "+projectID)}
			},
		},
	)
}

func execute(t *testing.T, args ...string) (string, []string, error) {
	t.Helper()
	color.NoColor = true
	var regions []string
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(fakeCatalog(&regions))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), regions, err
}

func TestUnitRootCommand(t *testing.T) {
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("AWS_REGION", "")
	var tests = []struct {
		name         string
		args         []string
		wantErr      string
		wantContains []string
		wantRegions  []string
	}{
		{
			name:         "listAll",
			args:         []string{"list"},
			wantContains: []string{"aws-fake-bucket", "gcp-fake-topic", "SEVERITY"},
		},
		{
			name:         "listProvider",
			args:         []string{"list", "--provider", "GCP"},
			wantContains: []string{"gcp-fake-topic"},
		},
		{
			name:    "listBadProvider",
			args:    []string{"list", "--provider", "azure"},
			wantErr: `unsupported provider "azure", want aws or gcp`,
		},
		{
			name:         "describe",
			args:         []string{"describe", "aws-fake-bucket"},
			wantContains: []string{"Fake buckets are encrypted", "Severity: high", "Fake benchmark F.1"},
		},
		{
			name:         "describeYAML",
			args:         []string{"describe", "aws-fake-bucket", "--format", "yaml"},
			wantContains: []string{"id: aws-fake-bucket", "shortServiceName: fake"},
		},
		{
			name:    "describeUnknown",
			args:    []string{"describe", "aws-nope"},
			wantErr: "unknown check aws-nope",
		},
		{
			name:         "runFailingCheckIsNotAnError",
			args:         []string{"run", "aws-fake-bucket", "--region", "eu-west-3"},
			wantContains: []string{"PASS", "FAIL", "arn:aws:s3:::b2", "Bucket is not encrypted", "Total: 2"},
			wantRegions:  []string{"eu-west-3"},
		},
		{
			name:         "runProvider",
			args:         []string{"run", "--provider", "gcp", "--project", "my-project"},
			wantContains: []string{"NOTAPPLICABLE", "(No Fake Topics Found)", "No topics in my-project"},
		},
		{
			name:         "runGCPWithoutProject",
			args:         []string{"run", "gcp-fake-topic", "--format", "json"},
			wantContains: []string{`"status": "ERROR"`, "Error checking fake topics: GCP project ID is not set"},
		},
		{
			name:    "runUnknown",
			args:    []string{"run", "aws-fake-bucket", "aws-nope", "gcp-nada"},
			wantErr: "unknown checks aws-nope, gcp-nada, see cloudcheck list",
		},
		{
			name:    "runNothing",
			args:    []string{"run"},
			wantErr: "requires at least one check ID or --provider",
		},
		{
			name:    "runBadRegion",
			args:    []string{"run", "aws-fake-bucket", "--region", "Paris"},
			wantErr: "invalid flags",
		},
		{
			name:    "runBadFormat",
			args:    []string{"run", "aws-fake-bucket", "--format", "xml"},
			wantErr: `unsupported format "xml"`,
		},
		{
			name:    "runMissingConfig",
			args:    []string{"run", "aws-fake-bucket", "--config", "testdata/nope.yaml"},
			wantErr: "solution.Load",
		},
		{
			name:    "badLogLevel",
			args:    []string{"list", "--log-level", "loud"},
			wantErr: "logrus.ParseLevel",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, regions, err := execute(t, test.args...)
			if test.wantErr != "" {
				if err == nil {
					t.Fatalf("Want error containing '%s' got nil", test.wantErr)
				}
				if !strings.Contains(err.Error(), test.wantErr) {
					t.Errorf("Want error containing '%s' got '%v'", test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Want no error got %v", err)
			}
			for _, want := range test.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("Want output containing '%s' got\n%s", want, out)
				}
			}
			if test.wantRegions != nil && strings.Join(regions, ",") != strings.Join(test.wantRegions, ",") {
				t.Errorf("Want regions %v got %v", test.wantRegions, regions)
			}
		})
	}
}

func TestUnitRunOutput(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	if _, _, err := execute(t, "run", "aws-fake-bucket", "--region", "us-east-1", "--output", jsonPath); err != nil {
		t.Fatalf("Want no error got %v", err)
	}
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var results []map[string]string
	if err := json.Unmarshal(b, &results); err != nil {
		t.Fatalf("Want a JSON array got %v", err)
	}
	if len(results) != 2 || results[1]["status"] != "FAIL" || results[1]["resourceArn"] != "arn:aws:s3:::b2" {
		t.Errorf("Want the two exported results got %v", results)
	}

	yamlPath := filepath.Join(dir, "report.yml")
	if _, _, err := execute(t, "run", "aws-fake-bucket", "--region", "us-east-1", "-o", yamlPath); err != nil {
		t.Fatalf("Want no error got %v", err)
	}
	b, err = os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []map[string]string
	if err := yaml.Unmarshal(b, &fromYAML); err != nil {
		t.Fatalf("Want a YAML list got %v", err)
	}
	if len(fromYAML) != 2 || fromYAML[0]["resourceName"] != "b1" || fromYAML[0]["resourceKind"] != "REAL" {
		t.Errorf("Want the two exported results got %v", fromYAML)
	}

	if _, _, err := execute(t, "run", "aws-fake-bucket", "--region", "us-east-1", "-o", filepath.Join(dir, "report.csv")); err == nil {
		t.Errorf("Want an error for a csv output")
	}
}
