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
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
)

// Provider cloud provider targeted by a check
type Provider string

// Supported providers
const (
	AWS Provider = "aws"
	GCP Provider = "gcp"
)

// Severity of a check failure
type Severity string

// Severities
const (
	SeverityInformational Severity = "informational"
	SeverityLow           Severity = "low"
	SeverityMedium        Severity = "medium"
	SeverityHigh          Severity = "high"
	SeverityCritical      Severity = "critical"
)

// Execute runs a check against the cloud described by settings
type Execute func(ctx context.Context, settings solution.Settings) rpt.Report

// Control a benchmark control the check maps to
type Control struct {
	ID       string `json:"id" yaml:"id"`
	Document string `json:"document" yaml:"document"`
}

// Check static descriptor of one compliance check
type Check struct {
	ID               string    `json:"id" yaml:"id"`
	Title            string    `json:"title" yaml:"title"`
	Description      string    `json:"description" yaml:"description"`
	Controls         []Control `json:"controls,omitempty" yaml:"controls,omitempty"`
	Severity         Severity  `json:"severity" yaml:"severity"`
	ServiceName      string    `json:"serviceName" yaml:"serviceName"`
	ShortServiceName string    `json:"shortServiceName" yaml:"shortServiceName"`
	Provider         Provider  `json:"provider" yaml:"provider"`
	// Execute issues read only calls and always returns a non empty report
	Execute Execute `json:"-" yaml:"-"`
}

// ParseProvider accepts aws and gcp, case insensitive
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(s)) {
	case AWS:
		return AWS, nil
	case GCP:
		return GCP, nil
	}
	return "", fmt.Errorf("unsupported provider %q, want aws or gcp", s)
}

// Valid reports the first missing mandatory descriptor field
func (check Check) Valid() error {
	switch {
	case check.ID == "":
		return fmt.Errorf("check has no ID")
	case check.Title == "":
		return fmt.Errorf("check %s has no title", check.ID)
	case check.Execute == nil:
		return fmt.Errorf("check %s has no execute function", check.ID)
	}
	if _, err := ParseProvider(string(check.Provider)); err != nil {
		return fmt.Errorf("check %s: %v", check.ID, err)
	}
	return nil
}
