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
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/glo"
	"github.com/BrunoReboul/cloudcheck/utilities/summary"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the cloudcheck command working on catalog
func NewRootCommand(catalog *chk.Catalog) *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:   "cloudcheck",
		Short: "Read only AWS and GCP compliance checks",
		Long: `Run individually invocable, read only compliance checks against AWS and GCP.

Each check lists one kind of resource, applies one rule to each of them and reports
PASS, FAIL, NOTAPPLICABLE or ERROR per resource.

Examples:
  cloudcheck list --provider gcp
  cloudcheck describe aws-s3-bucket-default-encryption
  cloudcheck run aws-s3-bucket-default-encryption --region eu-west-1 --format json
  cloudcheck run --provider gcp --project my-project --output report.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := glo.NewLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
			if err != nil {
				return err
			}
			cmd.SetContext(glo.WithLogger(cmd.Context(), logger))
			return nil
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")
	flags.StringVar(&o.logFormat, "log-format", glo.FormatJSON, "Log format (json, text)")
	flags.StringVarP(&o.format, "format", "f", summary.FormatText, "Output format (text, json, yaml)")

	rootCmd.AddCommand(newListCommand(catalog, o))
	rootCmd.AddCommand(newDescribeCommand(catalog, o))
	rootCmd.AddCommand(newRunCommand(catalog, o))
	return rootCmd
}
