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

package appsync

import (
	"context"

	"github.com/BrunoReboul/cloudcheck/utilities/pgr"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	"github.com/aws/aws-sdk-go-v2/service/appsync/types"
)

func listGraphqlAPIs(ctx context.Context, api API) ([]types.GraphqlApi, error) {
	return pgr.Collect(ctx, func(ctx context.Context, token string) (pgr.Page[types.GraphqlApi], error) {
		out, err := api.ListGraphqlApis(ctx, &appsync.ListGraphqlApisInput{NextToken: pgr.Token(token)})
		if err != nil {
			return pgr.Page[types.GraphqlApi]{}, err
		}
		return pgr.Page[types.GraphqlApi]{Items: out.GraphqlApis, NextToken: aws.ToString(out.NextToken)}, nil
	})
}
