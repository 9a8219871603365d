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

package gce

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/compute/v1"
)

var anywhere = map[string]bool{"0.0.0.0/0": true, "::/0": true}

func openToAnywhere(firewall *compute.Firewall) bool {
	for _, sourceRange := range firewall.SourceRanges {
		if anywhere[sourceRange] {
			return true
		}
	}
	return false
}

// exposedPorts returns the well-known ports, in wellKnownPorts order, an allow rule opens
func exposedPorts(allowed []*compute.FirewallAllowed, wellKnownPorts []int64) (exposed []int64, err error) {
	for _, port := range wellKnownPorts {
		for _, allow := range allowed {
			covered, err := coversPort(allow, port)
			if err != nil {
				return nil, err
			}
			if covered {
				exposed = append(exposed, port)
				break
			}
		}
	}
	return exposed, nil
}

// coversPort an empty port list opens every port of the protocol
func coversPort(allow *compute.FirewallAllowed, port int64) (bool, error) {
	if allow == nil {
		return false, nil
	}
	switch strings.ToLower(allow.IPProtocol) {
	case "all":
		return true, nil
	case "tcp", "udp", "sctp", "6", "17", "132":
	default:
		return false, nil
	}
	if len(allow.Ports) == 0 {
		return true, nil
	}
	for _, portRange := range allow.Ports {
		from, to, err := parsePortRange(portRange)
		if err != nil {
			return false, err
		}
		if from <= port && port <= to {
			return true, nil
		}
	}
	return false, nil
}

// parsePortRange accepts "22" and "8000-9000"
func parsePortRange(portRange string) (from int64, to int64, err error) {
	bounds := strings.SplitN(portRange, "-", 2)
	from, err = strconv.ParseInt(strings.TrimSpace(bounds[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid port range %q", portRange)
	}
	to = from
	if len(bounds) == 2 {
		to, err = strconv.ParseInt(strings.TrimSpace(bounds[1]), 10, 64)
		if err != nil || to < from {
			return 0, 0, fmt.Errorf("invalid port range %q", portRange)
		}
	}
	return from, to, nil
}

func joinPorts(ports []int64) string {
	s := make([]string, len(ports))
	for i, port := range ports {
		s[i] = strconv.FormatInt(port, 10)
	}
	return strings.Join(s, ", ")
}
