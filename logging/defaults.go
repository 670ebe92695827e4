//
// (C) Copyright 2019-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"io"
	"os"
)

// DefaultLogLevel is the level of newly created loggers.
const DefaultLogLevel = LogLevelInfo

// NewCommandLineLogger returns a logger for command line utilities.
// Errors go to stderr and everything else to stdout; info and notice
// output carries no timestamps or tags.
func NewCommandLineLogger() *LeveledLogger {
	ll := &LeveledLogger{level: DefaultLogLevel}
	for _, level := range emitLevels {
		var dest io.Writer = os.Stdout
		if level == LogLevelError {
			dest = os.Stderr
		}
		ll.WithSink(level, NewCommandLineSink(dest, level))
	}
	return ll
}

// NewCombinedLogger returns a logger configured
// to send all output to the supplied io.Writer.
func NewCombinedLogger(prefix string, output io.Writer) *LeveledLogger {
	ll := &LeveledLogger{level: DefaultLogLevel}
	for _, level := range emitLevels {
		ll.WithSink(level, NewSink(output, prefix, level))
	}
	return ll
}

// NewTestLogger returns a logger and a *LogBuffer,
// with the logger configured to send all output into
// the buffer. The logger's level is set to TRACE by default.
func NewTestLogger(prefix string) (*LeveledLogger, *LogBuffer) {
	var buf LogBuffer
	return NewCombinedLogger(prefix, &buf).
		WithLogLevel(LogLevelTrace), &buf
}
