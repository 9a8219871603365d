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

package erm

import (
	"fmt"
	"testing"
)

func TestUnitIsTransient(t *testing.T) {
	var testCases = []struct {
		name          string
		errMessage    string
		wantTransient bool
	}{
		{
			name:          "err403",
			errMessage:    "403 forbidden",
			wantTransient: false,
		},
		{
			name:          "err500",
			errMessage:    "500 Internal Server Error",
			wantTransient: true,
		},
		{
			name:          "err502",
			errMessage:    "502 Bad Gateway",
			wantTransient: true,
		},
		{
			name:          "err503",
			errMessage:    "503 Service Unavailable",
			wantTransient: true,
		},
		{
			name:          "err504",
			errMessage:    "504 Gateway Timeout",
			wantTransient: true,
		},
		{
			name:          "err511",
			errMessage:    "511 Network Authentication Required",
			wantTransient: true,
		},
		{
			name:          "accessDenied",
			errMessage:    "operation error AppSync: ListGraphqlApis, AccessDeniedException",
			wantTransient: false,
		},
	}

	for _, tc := range testCases {
		tc := tc // https://github.com/golang/go/wiki/CommonMistakes#using-goroutines-on-loop-iterator-variables
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := IsTransient(fmt.Errorf("%s", tc.errMessage))
			if tc.wantTransient != result {
				t.Errorf("IsTransient(%s) want %v got %v", tc.errMessage, tc.wantTransient, result)
			}
		})
	}
	if IsTransient(nil) {
		t.Errorf("IsTransient(nil) should be false")
	}
}
