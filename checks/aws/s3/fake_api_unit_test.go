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

package s3

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type fakeAPI struct {
	buckets       []string
	listErr       error
	locations     map[string]types.BucketLocationConstraint
	locationErrs  map[string]error
	encryptions   map[string]*types.ServerSideEncryptionConfiguration
	encryptErrs   map[string]error
	tags          map[string]map[string]string
	tagErrs       map[string]error
	sentToRegions map[string]string
}

func (f *fakeAPI) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListBucketsOutput{}
	for _, name := range f.buckets {
		out.Buckets = append(out.Buckets, types.Bucket{Name: aws.String(name)})
	}
	return out, nil
}

func (f *fakeAPI) GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	name := aws.ToString(params.Bucket)
	if err, ok := f.locationErrs[name]; ok {
		return nil, err
	}
	return &s3.GetBucketLocationOutput{LocationConstraint: f.locations[name]}, nil
}

func (f *fakeAPI) record(bucket string, optFns []func(*s3.Options)) {
	options := s3.Options{}
	for _, fn := range optFns {
		fn(&options)
	}
	if f.sentToRegions == nil {
		f.sentToRegions = make(map[string]string)
	}
	f.sentToRegions[bucket] = options.Region
}

func (f *fakeAPI) GetBucketEncryption(ctx context.Context, params *s3.GetBucketEncryptionInput, optFns ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error) {
	name := aws.ToString(params.Bucket)
	f.record(name, optFns)
	if err, ok := f.encryptErrs[name]; ok {
		return nil, err
	}
	return &s3.GetBucketEncryptionOutput{ServerSideEncryptionConfiguration: f.encryptions[name]}, nil
}

func (f *fakeAPI) GetBucketTagging(ctx context.Context, params *s3.GetBucketTaggingInput, optFns ...func(*s3.Options)) (*s3.GetBucketTaggingOutput, error) {
	name := aws.ToString(params.Bucket)
	f.record(name, optFns)
	if err, ok := f.tagErrs[name]; ok {
		return nil, err
	}
	out := &s3.GetBucketTaggingOutput{}
	for key, value := range f.tags[name] {
		out.TagSet = append(out.TagSet, types.Tag{Key: aws.String(key), Value: aws.String(value)})
	}
	return out, nil
}

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code + " message"}
}

var errAccessDenied = errors.New("AccessDenied")
