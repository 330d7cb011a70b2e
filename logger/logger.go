// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const defaultLogFormat = "%{color}%{level:.1s}%{time:15:04:05.000} %{module}%{color:reset}: %{message}"

// LogLevelFlag defines the verbosity of the logging output.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "Level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\"; default: INFO)",
	Value:   "info",
}

// Logger is the logging surface used throughout the sampler and its tools.
//
//go:generate mockgen -source logger.go -destination logger_mock.go -package logger
type Logger interface {
	Critical(args ...any)
	Criticalf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Warning(args ...any)
	Warningf(format string, args ...any)
	Notice(args ...any)
	Noticef(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Debug(args ...any)
	Debugf(format string, args ...any)
	IsEnabledFor(level logging.Level) bool
}

// NewLogger provides a new instance of the Logger based on context flags.
// An unknown level falls back to INFO.
func NewLogger(level string, module string) Logger {
	return newLogger(os.Stdout, level, module)
}

func newLogger(w io.Writer, level string, module string) Logger {
	backend := logging.NewLogBackend(w, "", 0)
	formatter := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultLogFormat))

	leveled := logging.AddModuleLevel(formatter)
	leveled.SetLevel(parseLevel(level), module)

	log := logging.MustGetLogger(module)
	log.SetBackend(leveled)
	return &leveledLogger{Logger: log, backend: leveled}
}

// leveledLogger answers level queries from its own backend; the embedded
// logging.Logger consults the global backend instead.
type leveledLogger struct {
	*logging.Logger
	backend logging.LeveledBackend
}

func (l *leveledLogger) IsEnabledFor(level logging.Level) bool {
	return l.backend.IsEnabledFor(level, l.Module)
}

// parseLevel converts a textual log level into a logging.Level.
func parseLevel(level string) logging.Level {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot parse log level %q; using INFO\n", level)
		return logging.INFO
	}
	return lvl
}

// ParseTime splits a duration into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	var (
		hours, minutes, seconds uint32
	)
	seconds = uint32(elapsed.Round(time.Second).Seconds())
	if seconds > 60 {
		minutes = seconds / 60
		seconds %= 60
	}
	if minutes > 60 {
		hours = minutes / 60
		minutes %= 60
	}
	return hours, minutes, seconds
}
