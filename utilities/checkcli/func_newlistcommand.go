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
	"text/tabwriter"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/spf13/cobra"
)

func newListCommand(catalog *chk.Catalog, o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the checks of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider chk.Provider
			if o.provider != "" {
				var err error
				if provider, err = chk.ParseProvider(o.provider); err != nil {
					return err
				}
			}
			checks := catalog.List(provider)
			if o.format != "text" {
				return marshal(cmd.OutOrStdout(), checks, o.format)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\tPROVIDER\tSEVERITY\tSERVICE\tTITLE\n")
			for _, check := range checks {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", check.ID, check.Provider, check.Severity, check.ServiceName, check.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&o.provider, "provider", "", "Only list the checks of this provider (aws, gcp)")
	return cmd
}
