/*
Copyright © 2025 SUSE LLC
SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	LevelEnv  = "SYSTEMD_LOG_LEVEL"
	TargetEnv = "SYSTEMD_LOG_TARGET"

	KmsgDevice = "/dev/kmsg"

	// DefaultTarget logs to the kernel log buffer when possible, stderr otherwise
	DefaultTarget = "safe"
)

// syslog priority names as understood by systemd, mapped to the closest logrus level
var priorityLevels = map[string]log.Level{
	"emerg":   log.PanicLevel,
	"alert":   log.PanicLevel,
	"crit":    log.FatalLevel,
	"err":     log.ErrorLevel,
	"warning": log.WarnLevel,
	"notice":  log.InfoLevel,
	"info":    log.InfoLevel,
	"debug":   log.DebugLevel,
}

// ParseLevel parses a systemd log level name or a syslog priority number.
// Logrus level names are accepted too.
func ParseLevel(value string) (uint32, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, false
	}
	if l, ok := priorityLevels[value]; ok {
		return uint32(l), true
	}
	if len(value) == 1 && value[0] >= '0' && value[0] <= '7' {
		names := []string{"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug"}
		return uint32(priorityLevels[names[value[0]-'0']]), true
	}
	l, err := log.ParseLevel(value)
	if err != nil {
		return 0, false
	}
	return uint32(l), true
}

// WithEnvironment logs to DefaultTarget unless SYSTEMD_LOG_TARGET says otherwise.
// The level is taken from SYSTEMD_LOG_LEVEL. Unknown values keep the defaults.
func WithEnvironment() LoggerOptions {
	return func(l *log.Logger) {
		WithTarget(DefaultTarget)(l)
		WithLookupEnv(os.LookupEnv)(l)
	}
}

// WithTarget sends the output to the named systemd log target: console, kmsg,
// safe, auto or null. Unknown targets keep the current output.
func WithTarget(target string) LoggerOptions {
	return func(l *log.Logger) {
		setTarget(l, target)
	}
}

// WithLookupEnv reads SYSTEMD_LOG_LEVEL and SYSTEMD_LOG_TARGET through lookup.
// It applies no default target.
func WithLookupEnv(lookup func(string) (string, bool)) LoggerOptions {
	return func(l *log.Logger) {
		if value, ok := lookup(LevelEnv); ok {
			if level, ok := ParseLevel(value); ok {
				l.SetLevel(log.Level(level))
			}
		}
		if value, ok := lookup(TargetEnv); ok {
			setTarget(l, value)
		}
	}
}

func setTarget(l *log.Logger, target string) {
	w := targetWriter(target)
	if w == nil {
		return
	}
	l.SetOutput(w)
	if w == os.Stderr {
		l.SetFormatter(&log.TextFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: true})
	}
}

func targetWriter(target string) io.Writer {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "console":
		return os.Stderr
	case "kmsg", "safe", "auto":
		kmsg, err := os.OpenFile(KmsgDevice, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return os.Stderr
		}
		return kmsg
	case "null":
		return io.Discard
	default:
		return nil
	}
}
