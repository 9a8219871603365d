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
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/spf13/cobra"
)

func newDescribeCommand(catalog *chk.Catalog, o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <check-id>",
		Short: "Print the descriptor of a check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check, ok := catalog.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown check %s", args[0])
			}
			if o.format != "text" {
				return marshal(cmd.OutOrStdout(), check, o.format)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n%s\n\n%s\n\n", check.ID, check.Title, check.Description)
			fmt.Fprintf(w, "Provider: %s\nService:  %s (%s)\nSeverity: %s\n", check.Provider, check.ServiceName, check.ShortServiceName, check.Severity)
			if len(check.Controls) > 0 {
				controls := make([]string, len(check.Controls))
				for i, control := range check.Controls {
					controls[i] = fmt.Sprintf("%s %s", control.Document, control.ID)
				}
				fmt.Fprintf(w, "Controls: %s\n", strings.Join(controls, "; "))
			}
			return nil
		},
	}
}
