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

/*
Package cloudcheck Cloud Check

## What

Audit AWS and Google Cloud resources compliance against a catalog of read-only checks. Each check lists the resources of one service, evaluates every resource against one rule and returns a report made of one result per resource.

### Use cases

1. Security compliance, e.g. encryption at rest, no public exposure, authenticated endpoints
2. Operational compliance
   - E.g. each AWS Config recorder should be recording and each log sink should export all entries
3. Governance
   - E.g. resources should carry the owner and environment tags or labels

## How

- checks/aws and checks/gcp hold one package per cloud service, each exposing check variables
- checks registers every check in a catalog
- utilities/checkcli is the command line interface to list, describe and run the checks
- cmd/cloudcheck is the binary
*/
package cloudcheck
