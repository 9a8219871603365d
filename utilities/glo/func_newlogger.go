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
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Log formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewLogger returns a logrus logger writing to w, usually stderr
// json format uses Cloud Logging special field names so entries are parsed as structured payloads
func NewLogger(w io.Writer, level string, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logrus.ParseLevel %v", err)
	}
	logger.SetLevel(lvl)
	switch format {
	case FormatJSON, "":
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyTime:  "time",
			},
		})
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unsupported log format %s", format)
	}
	return logger, nil
}
