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
	"fmt"
	"strings"

	"github.com/BrunoReboul/cloudcheck/utilities/aut"
	"github.com/BrunoReboul/cloudcheck/utilities/chk"
	"github.com/BrunoReboul/cloudcheck/utilities/erm"
	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/BrunoReboul/cloudcheck/utilities/solution"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

const errorContext = "Error checking IAM roles"

// RoleTrustPolicyWildcard roles must not be assumable by any principal
var RoleTrustPolicyWildcard = chk.Check{
	ID:          "aws-iam-role-trust-policy-wildcard",
	Title:       "IAM role trust policies do not allow any principal",
	Description: "No IAM role trust policy should contain an Allow statement whose principal is the * wildcard.",
	Controls: []chk.Control{
		{ID: "IAM.21", Document: "AWS Foundational Security Best Practices"},
	},
	Severity:         chk.SeverityCritical,
	ServiceName:      "AWS Identity and Access Management",
	ShortServiceName: "iam",
	Provider:         chk.AWS,
	Execute: func(ctx context.Context, settings solution.Settings) rpt.Report {
		cfg, err := aut.GetAWSConfig(ctx, settings.AWS.Region)
		if err != nil {
			return rpt.Failed(errorContext, err)
		}
		return inspectRoleTrustPolicyWildcard(ctx, iam.NewFromConfig(cfg))
	},
}

func listRoles(ctx context.Context, api API) ([]types.Role, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.Role], error) {
		out, err := api.ListRoles(ctx, &iam.ListRolesInput{Marker: pgr.Token(token)})
		if err != nil {
			return pgr.Page[types.Role]{}, err
		}
		page := pgr.Page[types.Role]{Items: out.Roles}
		if out.IsTruncated {
			page.NextToken = aws.ToString(out.Marker)
		}
		return page, nil
	})
}

func inspectRoleTrustPolicyWildcard(ctx context.Context, api API) rpt.Report {
	evaluator, err := newTrustPolicyEvaluator(ctx)
	if err != nil {
		return rpt.Failed(errorContext, err)
	}
	return rpt.Assemble(ctx, rpt.Inspection[types.Role]{
		ErrorContext: errorContext,
		ErrorName:    "IAM Role Check",
		EmptyName:    "No IAM Roles Found",
		EmptyMessage: "No IAM roles found in the account",
		List: func(ctx context.Context) ([]types.Role, error) {
			return listRoles(ctx, api)
		},
		Identify: roleResource,
		Evaluate: func(ctx context.Context, role types.Role) ([]rpt.Result, error) {
			if role.RoleName == nil {
				return []rpt.Result{rpt.Error(rpt.Placeholder("Unknown IAM Role"), "IAM role has no role name")}, nil
			}
			out, err := api.GetRole(ctx, &iam.GetRoleInput{RoleName: role.RoleName})
			if err != nil {
				return nil, erm.Wrap("Error checking service role", err)
			}
			if out.Role == nil {
				return nil, erm.Errorf("Error checking service role", "role %s not returned", aws.ToString(role.RoleName))
			}
			resource := roleResource(*out.Role)
			sids, err := evaluator.wildcardStatements(ctx, aws.ToString(out.Role.AssumeRolePolicyDocument))
			if err != nil {
				return nil, erm.Wrap("Error checking role trust policy", err)
			}
			if len(sids) > 0 {
				return []rpt.Result{rpt.Fail(resource, failMessage(sids))}, nil
			}
			return []rpt.Result{rpt.Pass(resource)}, nil
		},
	})
}

func failMessage(sids []string) string {
	var named []string
	for _, sid := range sids {
		if sid != "" {
			named = append(named, sid)
		}
	}
	if len(named) == 0 {
		return "Role trust policy allows any principal to assume the role"
	}
	return fmt.Sprintf("Role trust policy allows any principal to assume the role in statements %s", strings.Join(named, ", "))
}

func roleResource(role types.Role) rpt.Resource {
	if role.RoleName == nil {
		return rpt.Placeholder("Unknown IAM Role")
	}
	return rpt.Real(aws.ToString(role.RoleName), aws.ToString(role.Arn))
}
