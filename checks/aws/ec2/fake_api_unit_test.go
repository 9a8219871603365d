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

package ec2

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

type fakeAPI struct {
	instancePages map[string]*ec2.DescribeInstancesOutput
	groupPages    map[string]*ec2.DescribeSecurityGroupsOutput
	listErr       error
	volumes       map[string]types.Volume
	volumeErrs    map[string]error
	volumeCalls   int
}

func (f *fakeAPI) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if out, ok := f.instancePages[aws.ToString(params.NextToken)]; ok {
		return out, nil
	}
	return &ec2.DescribeInstancesOutput{}, nil
}

func (f *fakeAPI) DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if out, ok := f.groupPages[aws.ToString(params.NextToken)]; ok {
		return out, nil
	}
	return &ec2.DescribeSecurityGroupsOutput{}, nil
}

// DescribeVolumes answers in the order of the requested IDs
func (f *fakeAPI) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	f.volumeCalls++
	out := &ec2.DescribeVolumesOutput{}
	for _, id := range params.VolumeIds {
		if err, ok := f.volumeErrs[id]; ok {
			return nil, err
		}
		volume, ok := f.volumes[id]
		if !ok {
			return nil, errors.New("InvalidVolume.NotFound")
		}
		out.Volumes = append(out.Volumes, volume)
	}
	return out, nil
}

func instance(id string, volumeIDs ...string) types.Instance {
	i := types.Instance{InstanceId: aws.String(id)}
	for _, volumeID := range volumeIDs {
		i.BlockDeviceMappings = append(i.BlockDeviceMappings, types.InstanceBlockDeviceMapping{
			DeviceName: aws.String("/dev/xvd" + volumeID),
			Ebs:        &types.EbsInstanceBlockDevice{VolumeId: aws.String(volumeID)},
		})
	}
	return i
}

func reservations(instances ...types.Instance) []types.Reservation {
	var r []types.Reservation
	for _, i := range instances {
		r = append(r, types.Reservation{Instances: []types.Instance{i}})
	}
	return r
}

func volume(id string, encrypted bool) types.Volume {
	return types.Volume{VolumeId: aws.String(id), Encrypted: aws.Bool(encrypted)}
}
