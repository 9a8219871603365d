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

package iam

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/open-policy-agent/opa/rego"
)

//go:embed trust_policy.rego
var trustPolicyModule string

const trustPolicyQuery = "data.cloudcheck.aws.iam.trust.violations"

// trustPolicyEvaluator finds Allow statements granting a wildcard principal in a trust policy
type trustPolicyEvaluator struct {
	query rego.PreparedEvalQuery
}

func newTrustPolicyEvaluator(ctx context.Context) (*trustPolicyEvaluator, error) {
	query, err := rego.New(
		rego.Query(trustPolicyQuery),
		rego.Module("trust_policy.rego", trustPolicyModule),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("rego.PrepareForEval %v", err)
	}
	return &trustPolicyEvaluator{query: query}, nil
}

// wildcardStatements returns the Sid of each violating statement, "" for statements without Sid
func (e *trustPolicyEvaluator) wildcardStatements(ctx context.Context, document string) ([]string, error) {
	policy, err := decodePolicyDocument(document)
	if err != nil {
		return nil, err
	}
	resultSet, err := e.query.Eval(ctx, rego.EvalInput(policy))
	if err != nil {
		return nil, fmt.Errorf("rego.Eval %v", err)
	}
	var sids []string
	if len(resultSet) == 0 || len(resultSet[0].Expressions) == 0 {
		return sids, nil
	}
	var valuesInterface interface{} = resultSet[0].Expressions[0].Value
	if values, ok := valuesInterface.([]interface{}); ok {
		for _, valueInterface := range values {
			if value, ok := valueInterface.(map[string]interface{}); ok {
				sid, _ := value["sid"].(string)
				sids = append(sids, sid)
			}
		}
	}
	sort.Strings(sids)
	return sids, nil
}

// decodePolicyDocument IAM returns URL encoded JSON policy documents
func decodePolicyDocument(document string) (map[string]interface{}, error) {
	if strings.TrimSpace(document) == "" {
		return nil, fmt.Errorf("empty trust policy document")
	}
	decoded := document
	if !strings.HasPrefix(strings.TrimSpace(document), "{") {
		var err error
		decoded, err = url.PathUnescape(document)
		if err != nil {
			return nil, fmt.Errorf("url.PathUnescape %v", err)
		}
	}
	var policy map[string]interface{}
	if err := json.Unmarshal([]byte(decoded), &policy); err != nil {
		return nil, fmt.Errorf("json.Unmarshal trust policy %v", err)
	}
	return policy, nil
}
