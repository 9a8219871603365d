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
	"fmt"
	"sort"
)

// Catalog index of checks by ID
// Written at init, read only afterwards
type Catalog struct {
	checks map[string]Check
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{checks: make(map[string]Check)}
}

// Register adds checks, rejecting invalid descriptors and duplicated IDs
func (catalog *Catalog) Register(checks ...Check) error {
	for _, check := range checks {
		if err := check.Valid(); err != nil {
			return fmt.Errorf("chk.Register: %v", err)
		}
		if _, ok := catalog.checks[check.ID]; ok {
			return fmt.Errorf("chk.Register: duplicated check ID %s", check.ID)
		}
		catalog.checks[check.ID] = check
	}
	return nil
}

// MustRegister is Register panicking on error, for package level catalogs
func (catalog *Catalog) MustRegister(checks ...Check) *Catalog {
	if err := catalog.Register(checks...); err != nil {
		panic(err)
	}
	return catalog
}

// Lookup finds a check by ID
func (catalog *Catalog) Lookup(id string) (Check, bool) {
	check, ok := catalog.checks[id]
	return check, ok
}

// List returns the checks sorted by ID, limited to provider when not empty
func (catalog *Catalog) List(provider Provider) []Check {
	var checks []Check
	for _, check := range catalog.checks {
		if provider != "" && check.Provider != provider {
			continue
		}
		checks = append(checks, check)
	}
	sort.Slice(checks, func(i, j int) bool {
		return checks[i].ID < checks[j].ID
	})
	return checks
}

