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

package glo

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Log emits the entry at the logrus level matching its Cloud Logging severity
func (e Entry) Log(logger logrus.FieldLogger) {
	if logger == nil {
		return
	}
	entry := logger.WithFields(e.Fields())
	switch GetLevel(e.Severity) {
	case logrus.DebugLevel:
		entry.Debug(e.Message)
	case logrus.WarnLevel:
		entry.Warn(e.Message)
	case logrus.ErrorLevel:
		entry.Error(e.Message)
	default:
		entry.Info(e.Message)
	}
}

// GetLevel maps a Cloud Logging severity to a logrus level
// CRITICAL and above are logged as errors: a check never stops the process
func GetLevel(severity string) logrus.Level {
	switch strings.ToUpper(severity) {
	case "DEBUG":
		return logrus.DebugLevel
	case "WARNING":
		return logrus.WarnLevel
	case "ERROR", "CRITICAL", "ALERT", "EMERGENCY":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
