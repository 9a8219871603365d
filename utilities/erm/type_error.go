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
	"errors"
	"fmt"
)

// Error is a failure raised while checking a resource or a resource list
// Context is the phrase shown before the cause, e.g. "Error checking AppSync APIs"
type Error struct {
	Context string
	Err     error
}

// Error renders "<context>: <cause>"
func (e *Error) Error() string {
	if e.Context == "" {
		return Message(e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Context, Message(e.Err))
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attach a context phrase to err. A nil err returns nil
func Wrap(context string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Context: context, Err: err}
}

// Errorf is a shortcut to Wrap a formatted cause
func Errorf(context string, format string, a ...interface{}) error {
	return &Error{Context: context, Err: fmt.Errorf(format, a...)}
}

// Format returns the message of err prefixed with context, unless err already carries its own context
func Format(context string, err error) string {
	var checkErr *Error
	if errors.As(err, &checkErr) && checkErr.Context != "" {
		return checkErr.Error()
	}
	if context == "" {
		return Message(err)
	}
	return fmt.Sprintf("%s: %s", context, Message(err))
}
