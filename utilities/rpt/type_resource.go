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
	"encoding/json"
	"fmt"
)

// ResourceKind tells an addressable cloud resource from a synthetic placeholder
type ResourceKind int

// Resource kinds
const (
	RealResource ResourceKind = iota
	SyntheticPlaceholder
)

var resourceKindNames = map[ResourceKind]string{
	RealResource:         "REAL",
	SyntheticPlaceholder: "PLACEHOLDER",
}

func (k ResourceKind) String() string {
	if name, ok := resourceKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ResourceKind(%d)", int(k))
}

// MarshalJSON renders the kind name
func (k ResourceKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON parses a kind name
func (k *ResourceKind) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("rpt.ResourceKind: %v", err)
	}
	for kind, kindName := range resourceKindNames {
		if kindName == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("rpt.ResourceKind: unknown kind %q", name)
}

// MarshalYAML renders the kind name
func (k ResourceKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Resource the subject of a result
type Resource struct {
	Name string       `json:"resourceName" yaml:"resourceName"`
	Arn  string       `json:"resourceArn,omitempty" yaml:"resourceArn,omitempty"`
	Kind ResourceKind `json:"resourceKind" yaml:"resourceKind"`
}

// Real is a resource returned by a cloud API. arn may be empty when the API has none
func Real(name, arn string) Resource {
	return Resource{Name: name, Arn: arn, Kind: RealResource}
}

// Placeholder is a synthetic resource such as "No AppSync APIs Found" or "Unknown AppSync API"
func Placeholder(name string) Resource {
	return Resource{Name: name, Kind: SyntheticPlaceholder}
}

// IsPlaceholder reports whether the resource is not addressable in the cloud
func (r Resource) IsPlaceholder() bool {
	return r.Kind == SyntheticPlaceholder
}
