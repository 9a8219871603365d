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

// Command cloudcheck lists, describes and runs read only AWS and GCP compliance checks
package main

import (
	"fmt"
	"os"

	"github.com/BrunoReboul/cloudcheck/checks"
	"github.com/BrunoReboul/cloudcheck/utilities/checkcli"
)

func main() {
	if err := checkcli.NewRootCommand(checks.Catalog()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
