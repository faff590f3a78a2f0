// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

/*
Package xlog provides leveled logging for the commands of the module.

The standard log package doesn't support switching output on and off by
severity. A Log filters messages by level before formatting them and
passes them to a Logger, an interface that the log.Logger type supports.
All methods can be called on a nil Log pointer; they don't do anything
then. The package functions use a default Log writing to standard error.
*/
package xlog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is the interface used by Log to output messages. The
// log.Logger type supports it.
type Logger interface {
	Output(calldepth int, s string) error
}

// Level defines the severity of a message.
type Level int

// Levels in increasing severity. Silent suppresses all messages.
const (
	Debug Level = iota
	Info
	Warning
	Silent
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Silent:
		return "silent"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Log filters messages by level and writes them to a Logger.
type Log struct {
	out   Logger
	level Level
}

// New creates a Log for messages of the given level and above.
func New(out Logger, level Level) *Log {
	return &Log{out: out, level: level}
}

// SetLevel changes the minimum level.
func (l *Log) SetLevel(level Level) {
	if l != nil {
		l.level = level
	}
}

// Enabled reports whether messages of the given level are output.
func (l *Log) Enabled(level Level) bool {
	return l != nil && l.out != nil && level < Silent && level >= l.level
}

func (l *Log) output(level Level, s string) {
	if !l.Enabled(level) {
		return
	}
	l.out.Output(3, s)
}

// Debugf outputs a debug message.
func (l *Log) Debugf(format string, v ...interface{}) {
	if l.Enabled(Debug) {
		l.output(Debug, fmt.Sprintf(format, v...))
	}
}

// Printf outputs an informational message.
func (l *Log) Printf(format string, v ...interface{}) {
	if l.Enabled(Info) {
		l.output(Info, fmt.Sprintf(format, v...))
	}
}

// Warn outputs a warning.
func (l *Log) Warn(v ...interface{}) {
	if l.Enabled(Warning) {
		l.output(Warning, fmt.Sprint(v...))
	}
}

// Warnf outputs a formatted warning.
func (l *Log) Warnf(format string, v ...interface{}) {
	if l.Enabled(Warning) {
		l.output(Warning, fmt.Sprintf(format, v...))
	}
}

var std = &Log{out: log.New(os.Stderr, "", 0), level: Info}

// Default returns the Log used by the package functions.
func Default() *Log { return std }

// SetOutput directs the default log to w using the given prefix.
func SetOutput(w io.Writer, prefix string) {
	std.out = log.New(w, prefix, 0)
}

// SetLevel sets the minimum level of the default log.
func SetLevel(level Level) { std.SetLevel(level) }

// Debugf outputs a debug message on the default log.
func Debugf(format string, v ...interface{}) {
	if std.Enabled(Debug) {
		std.output(Debug, fmt.Sprintf(format, v...))
	}
}

// Printf outputs an informational message on the default log.
func Printf(format string, v ...interface{}) {
	if std.Enabled(Info) {
		std.output(Info, fmt.Sprintf(format, v...))
	}
}

// Warn outputs a warning on the default log.
func Warn(v ...interface{}) {
	if std.Enabled(Warning) {
		std.output(Warning, fmt.Sprint(v...))
	}
}

// Warnf outputs a formatted warning on the default log.
func Warnf(format string, v ...interface{}) {
	if std.Enabled(Warning) {
		std.output(Warning, fmt.Sprintf(format, v...))
	}
}
