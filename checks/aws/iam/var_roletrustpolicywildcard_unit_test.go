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
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/BrunoReboul/cloudcheck/utilities/rpt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

const (
	servicePolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"Service":"ec2.amazonaws.com"},"Action":"sts:AssumeRole"}]}`
	wildcardAWS   = `{"Version":"2012-10-17","Statement":[{"Sid":"Open","Effect":"Allow","Principal":{"AWS":"*"},"Action":"sts:AssumeRole"}]}`
	wildcardList  = `{"Version":"2012-10-17","Statement":{"Effect":"Allow","Principal":{"AWS":["arn:aws:iam::111122223333:root","*"]},"Action":"sts:AssumeRole"}}`
	wildcardRaw   = `{"Version":"2012-10-17","Statement":[{"Sid":"B","Effect":"Allow","Principal":"*","Action":"sts:AssumeRole"},{"Sid":"A","Effect":"Allow","Principal":{"Federated":"*"},"Action":"sts:AssumeRoleWithWebIdentity"}]}`
	denyWildcard  = `{"Version":"2012-10-17","Statement":[{"Effect":"Deny","Principal":"*","Action":"sts:AssumeRole"}]}`
)

type fakeAPI struct {
	pages    map[string]*iam.ListRolesOutput
	listErr  error
	policies map[string]string
	getErrs  map[string]error
}

func (f *fakeAPI) ListRoles(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if out, ok := f.pages[aws.ToString(params.Marker)]; ok {
		return out, nil
	}
	return &iam.ListRolesOutput{}, nil
}

func (f *fakeAPI) GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	name := aws.ToString(params.RoleName)
	if err, ok := f.getErrs[name]; ok {
		return nil, err
	}
	return &iam.GetRoleOutput{Role: &types.Role{
		RoleName:                 aws.String(name),
		Arn:                      aws.String("arn:aws:iam::123456789012:role/" + name),
		AssumeRolePolicyDocument: aws.String(url.PathEscape(f.policies[name])),
	}}, nil
}

func role(name string) types.Role {
	return types.Role{RoleName: aws.String(name), Arn: aws.String("arn:aws:iam::123456789012:role/" + name)}
}

func TestUnitWildcardStatements(t *testing.T) {
	evaluator, err := newTrustPolicyEvaluator(context.Background())
	if err != nil {
		t.Fatalf("newTrustPolicyEvaluator %v", err)
	}
	var tests = []struct {
		name     string
		document string
		want     []string
		wantErr  bool
	}{
		{name: "servicePrincipal", document: url.PathEscape(servicePolicy), want: nil},
		{name: "wildcardAWS", document: url.PathEscape(wildcardAWS), want: []string{"Open"}},
		{name: "wildcardInListSingleStatement", document: url.PathEscape(wildcardList), want: []string{""}},
		{name: "twoStatementsSorted", document: url.PathEscape(wildcardRaw), want: []string{"A", "B"}},
		{name: "denyIgnored", document: url.PathEscape(denyWildcard), want: nil},
		{name: "notEncoded", document: wildcardAWS, want: []string{"Open"}},
		{name: "notJSON", document: "%7Bnot%20json", wantErr: true},
		{name: "badEscape", document: "%zz", wantErr: true},
		{name: "empty", document: "", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := evaluator.wildcardStatements(context.Background(), test.document)
			if test.wantErr {
				if err == nil {
					t.Errorf("Want an error got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Want no error got %v", err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("Want %v got %v", test.want, got)
			}
		})
	}
}

func TestUnitDecodePolicyDocument(t *testing.T) {
	var tests = []struct {
		name     string
		document string
		wantSid  string
	}{
		{name: "plusKept", document: "%7B%22Sid%22%3A%22a+b%22%7D", wantSid: "a+b"},
		{name: "encodedSpace", document: "%7B%22Sid%22%3A%22a%20b%22%7D", wantSid: "a b"},
		{name: "plainJSON", document: `{"Sid":"a+b"}`, wantSid: "a+b"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			policy, err := decodePolicyDocument(test.document)
			if err != nil {
				t.Fatalf("Want no error got %v", err)
			}
			if policy["Sid"] != test.wantSid {
				t.Errorf("Want Sid %s got %v", test.wantSid, policy["Sid"])
			}
		})
	}
}

func TestUnitInspectRoleTrustPolicyWildcard(t *testing.T) {
	var tests = []struct {
		name         string
		api          *fakeAPI
		wantStatuses []rpt.Status
		wantNames    []string
		wantMessages []string
	}{
		{
			name:         "noRoles",
			api:          &fakeAPI{},
			wantStatuses: []rpt.Status{rpt.StatusNotApplicable},
			wantNames:    []string{"No IAM Roles Found"},
			wantMessages: []string{"No IAM roles found in the account"},
		},
		{
			name:         "listingFails",
			api:          &fakeAPI{listErr: errors.New("AccessDenied")},
			wantStatuses: []rpt.Status{rpt.StatusError},
			wantNames:    []string{"IAM Role Check"},
			wantMessages: []string{"Error checking IAM roles: AccessDenied"},
		},
		{
			name: "mixedCompliance",
			api: &fakeAPI{
				pages: map[string]*iam.ListRolesOutput{"": {Roles: []types.Role{role("ec2"), role("open"), role("broken"), role("gone")}}},
				policies: map[string]string{
					"ec2":    servicePolicy,
					"open":   wildcardAWS,
					"broken": "{not json",
				},
				getErrs: map[string]error{"gone": errors.New("NoSuchEntity")},
			},
			wantStatuses: []rpt.Status{rpt.StatusPass, rpt.StatusFail, rpt.StatusError, rpt.StatusError},
			wantNames:    []string{"ec2", "open", "broken", "gone"},
			wantMessages: []string{
				"",
				"Role trust policy allows any principal to assume the role in statements Open",
				"Error checking role trust policy: json.Unmarshal trust policy invalid character 'n' looking for beginning of object key string",
				"Error checking service role: NoSuchEntity",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := inspectRoleTrustPolicyWildcard(context.Background(), test.api)
			if len(report) != len(test.wantStatuses) {
				t.Fatalf("Want %d results got %d %v", len(test.wantStatuses), len(report), report)
			}
			for i, result := range report {
				if result.Status != test.wantStatuses[i] {
					t.Errorf("Want status %s got %s at %d", test.wantStatuses[i], result.Status, i)
				}
				if result.Name != test.wantNames[i] {
					t.Errorf("Want name %s got %s at %d", test.wantNames[i], result.Name, i)
				}
				if result.Message != test.wantMessages[i] {
					t.Errorf("Want message '%s' got '%s' at %d", test.wantMessages[i], result.Message, i)
				}
			}
			again := inspectRoleTrustPolicyWildcard(context.Background(), test.api)
			if !reflect.DeepEqual(report, again) {
				t.Errorf("Want the same report on a second run, got %v then %v", report, again)
			}
		})
	}
}

func TestUnitInspectRoleTrustPolicyWildcardPagination(t *testing.T) {
	policies := map[string]string{"r1": servicePolicy, "r2": wildcardRaw, "r3": servicePolicy}
	single := &fakeAPI{
		pages:    map[string]*iam.ListRolesOutput{"": {Roles: []types.Role{role("r1"), role("r2"), role("r3")}}},
		policies: policies,
	}
	paged := &fakeAPI{
		pages: map[string]*iam.ListRolesOutput{
			"":   {Roles: []types.Role{role("r1")}, IsTruncated: true, Marker: aws.String("m1")},
			"m1": {Roles: []types.Role{role("r2"), role("r3")}, Marker: aws.String("ignored")},
		},
		policies: policies,
	}
	want := inspectRoleTrustPolicyWildcard(context.Background(), single)
	got := inspectRoleTrustPolicyWildcard(context.Background(), paged)
	if len(got) != 3 {
		t.Fatalf("Want 3 results got %d", len(got))
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("Want %v got %v", want, got)
	}
	if got[1].Message != "Role trust policy allows any principal to assume the role in statements A, B" {
		t.Errorf("Want both statements named got %s", got[1].Message)
	}
}
