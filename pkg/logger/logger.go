// Copyright © 2023 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type LogOptions struct {
	// OutputPath is the log directory, default is `~/.treectl/log`.
	OutputPath string
	// Verbose switches to debug level.
	Verbose bool
	// DisableColor if true will disable outputting colors.
	DisableColor bool
	// HideLogPath drops file and line from console output.
	HideLogPath bool
	// RemoteLoggerURL receives a JSON record for every entry at info level or above.
	RemoteLoggerURL      string
	RemoteLoggerTaskName string
	// LogToFile flag represent whether write log to disk, default is false.
	LogToFile bool
}

// Init configures the global logrus logger. Hooks are all built before any is
// installed, so a failing remote hook leaves no file hook behind.
func Init(options LogOptions) error {
	level := logrus.InfoLevel
	if options.Verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&Formatter{
		DisableColor: options.DisableColor,
		HideLogPath:  options.HideLogPath,
	})

	hooks, err := buildHooks(options)
	if err != nil {
		return err
	}
	for _, h := range hooks {
		logrus.AddHook(h)
	}
	logrus.Debugf("logger initialized at %s level with %d hook(s)", level, len(hooks))
	return nil
}

func buildHooks(options LogOptions) ([]logrus.Hook, error) {
	var hooks []logrus.Hook
	if options.LogToFile {
		fh, err := NewFileHook(options.OutputPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to init log file hook")
		}
		hooks = append(hooks, fh)
	}
	if options.RemoteLoggerURL != "" {
		rl, err := NewRemoteLogHook(options.RemoteLoggerURL, options.RemoteLoggerTaskName)
		if err != nil {
			return nil, errors.Wrap(err, "failed to init log remote hook")
		}
		hooks = append(hooks, rl)
	}
	return hooks, nil
}
