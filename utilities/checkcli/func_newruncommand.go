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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/ffo"
	"github.com/BrunoReboul/cloudcheck/utilities/glo"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/summary"
	"github.com/spf13/cobra"
)

func newRunCommand(catalog *chk.Catalog, o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [check-id...]",
		Short: "Run checks and print their report",
		Long: `Run the named checks in order, or every check of --provider, and print the
concatenated report with a summary. A failing check does not change the exit status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks, err := selectChecks(catalog, args, o.provider)
			if err != nil {
				return err
			}
			switch o.format {
			case summary.FormatText, summary.FormatJSON, summary.FormatYAML:
			default:
				return fmt.Errorf("unsupported format %q, want text, json or yaml", o.format)
			}
			settings, err := o.settings(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			glo.Entry{
				Severity:    "INFO",
				Message:     "run started",
				Description: fmt.Sprintf("%d checks, aws region %s, gcp project %s", len(checks), settings.AWS.Region, settings.GCP.ProjectID),
				Scope:       settings.Environment,
			}.Log(glo.FromContext(ctx))

			var report rpt.Report
			for _, check := range checks {
				report = append(report, check.Run(ctx, settings)...)
			}
			if err = summary.Print(cmd.OutOrStdout(), summary.Generate(report), report, o.format); err != nil {
				return err
			}
			if o.output != "" {
				return export(o.output, report)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&o.provider, "provider", "", "Run every check of this provider (aws, gcp) when no check ID is given")
	flags.StringVar(&o.configFile, "config", "", "YAML settings file")
	flags.StringVar(&o.environment, "environment", "", "Environment used to pick regions and projects from the settings maps")
	flags.StringVar(&o.awsRegion, "region", "", "AWS region, overrides AWS_REGION and the settings file")
	flags.StringVar(&o.awsAccountID, "account-id", "", "AWS account ID used to build ARNs the APIs do not return")
	flags.StringVar(&o.gcpProjectID, "project", "", "GCP project ID, overrides GCP_PROJECT_ID and the settings file")
	flags.StringVar(&o.gcpRegion, "gcp-region", "", "GCP region, overrides GCP_REGION and the settings file")
	flags.StringVarP(&o.output, "output", "o", "", "Also export the report results to this .json, .yaml or .yml file")
	return cmd
}

// selectChecks resolves every ID before anything runs
func selectChecks(catalog *chk.Catalog, ids []string, providerName string) (checks []chk.Check, err error) {
	if len(ids) == 0 {
		if providerName == "" {
			return nil, fmt.Errorf("requires at least one check ID or --provider")
		}
		provider, err := chk.ParseProvider(providerName)
		if err != nil {
			return nil, err
		}
		return catalog.List(provider), nil
	}
	var unknown []string
	for _, id := range ids {
		check, ok := catalog.Lookup(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		checks = append(checks, check)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown checks %s, see cloudcheck list", strings.Join(unknown, ", "))
	}
	return checks, nil
}

func export(path string, report rpt.Report) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ffo.MarshalJSONWrite(path, report)
	case ".yaml", ".yml":
		return ffo.MarshalYAMLWrite(path, report)
	}
	return fmt.Errorf("unsupported output file extension %q, want .json, .yaml or .yml", filepath.Ext(path))
}
