// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogLevel controls which diagnostic messages the package emits. The level is
// process-wide and applies to all File handles.
type LogLevel int

const (
	// LogLevelOff suppresses all messages.
	LogLevelOff LogLevel = iota
	// LogLevelError emits only error messages.
	LogLevelError
	// LogLevelWarning emits warnings and errors.
	LogLevelWarning
	// LogLevelInfo emits informational messages, warnings and errors.
	LogLevelInfo
	// LogLevelDebug emits all messages including per-element traces.
	LogLevelDebug
)

var stdLogger = newStdLogger()

func newStdLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogLevel sets the process-wide log level.
func SetLogLevel(level LogLevel) {
	switch level {
	case LogLevelOff:
		stdLogger.SetLevel(logrus.FatalLevel)
	case LogLevelError:
		stdLogger.SetLevel(logrus.ErrorLevel)
	case LogLevelWarning:
		stdLogger.SetLevel(logrus.WarnLevel)
	case LogLevelInfo:
		stdLogger.SetLevel(logrus.InfoLevel)
	default:
		stdLogger.SetLevel(logrus.DebugLevel)
	}
}

// GetLogLevel returns the process-wide log level.
func GetLogLevel() LogLevel {
	switch stdLogger.GetLevel() {
	case logrus.FatalLevel, logrus.PanicLevel:
		return LogLevelOff
	case logrus.ErrorLevel:
		return LogLevelError
	case logrus.WarnLevel:
		return LogLevelWarning
	case logrus.InfoLevel:
		return LogLevelInfo
	default:
		return LogLevelDebug
	}
}

// SetLogOutput redirects log messages to w. The default sink is standard
// error. Writes from concurrent parsers are not ordered with respect to each
// other.
func SetLogOutput(w io.Writer) {
	stdLogger.SetOutput(w)
}

func logDebugf(format string, args ...interface{}) {
	stdLogger.Debugf(format, args...)
}

func logInfof(format string, args ...interface{}) {
	stdLogger.Infof(format, args...)
}

func logWarningf(format string, args ...interface{}) {
	stdLogger.Warnf(format, args...)
}

func logErrorf(format string, args ...interface{}) {
	stdLogger.Errorf(format, args...)
}
