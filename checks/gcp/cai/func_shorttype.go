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

package cai

import "strings"

var k8sServiceNames = map[string]string{
	"rbac.authorization.k8s.io": "k8srbac",
	"extensions.k8s.io":         "k8sextensions",
	"networking.k8s.io":         "k8snetworking",
}

// shortType returns <serviceName>-<assetType>, like bigquery-Dataset. It deals with k8s exceptions
func shortType(assetType string) string {
	parts := strings.Split(assetType, "/")
	typeName := parts[len(parts)-1]
	serviceName, ok := k8sServiceNames[parts[0]]
	if !ok {
		serviceName = strings.Split(assetType, ".")[0]
	}
	return serviceName + "-" + typeName
}
