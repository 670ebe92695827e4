//
// (C) Copyright 2019-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"fmt"
	"os"
	"sync"
)

// callerDepth is the number of frames between a sink's Output and the
// code which called an exported logging function.
const callerDepth = 3

type (
	// Logger defines a standard logging interface
	Logger interface {
		EnabledFor(level LogLevel) bool
		Trace(msg string)
		Tracef(format string, args ...interface{})
		Debug(msg string)
		Debugf(format string, args ...interface{})
		Info(msg string)
		Infof(format string, args ...interface{})
		Notice(msg string)
		Noticef(format string, args ...interface{})
		Error(msg string)
		Errorf(format string, args ...interface{})
	}

	// Outputter writes a single message. The callDepth is relative to
	// the caller of Output and identifies the frame reported as the
	// message source.
	Outputter interface {
		Output(callDepth int, msg string) error
	}

	// LeveledLogger sends each message to the sinks registered for
	// its level, provided the logger's LogLevel admits it.
	LeveledLogger struct {
		mu    sync.RWMutex
		level LogLevel
		sinks map[LogLevel][]Outputter
	}
)

var _ Logger = (*LeveledLogger)(nil)

// SetLevel sets the logger's LogLevel, at or above
// which messages will be emitted.
func (ll *LeveledLogger) SetLevel(newLevel LogLevel) {
	ll.level.Set(newLevel)
}

// Level returns the logger's current LogLevel.
func (ll *LeveledLogger) Level() LogLevel {
	return ll.level.Get()
}

// EnabledFor returns true if the logger is enabled for the
// specified LogLevel.
func (ll *LeveledLogger) EnabledFor(level LogLevel) bool {
	return ll.level.Get() >= level
}

// ClearLevel removes every sink for the specified level.
func (ll *LeveledLogger) ClearLevel(level LogLevel) {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	delete(ll.sinks, level)
}

// WithLogLevel sets the logger's LogLevel as part of a chained call.
func (ll *LeveledLogger) WithLogLevel(level LogLevel) *LeveledLogger {
	ll.SetLevel(level)
	return ll
}

// WithSink adds a sink for the specified level as part of a chained
// call.
func (ll *LeveledLogger) WithSink(level LogLevel, sink Outputter) *LeveledLogger {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.sinks == nil {
		ll.sinks = make(map[LogLevel][]Outputter)
	}
	ll.sinks[level] = append(ll.sinks[level], sink)
	return ll
}

// emit must be called directly by the exported logging functions so
// that callerDepth points at their caller.
func (ll *LeveledLogger) emit(level LogLevel, format string, args ...interface{}) {
	if !ll.EnabledFor(level) {
		return
	}

	ll.mu.RLock()
	sinks := ll.sinks[level]
	ll.mu.RUnlock()
	if len(sinks) == 0 {
		return
	}

	msg := fmt.Sprintf(format, args...)
	for _, sink := range sinks {
		if err := sink.Output(callerDepth, msg); err != nil {
			fmt.Fprintf(os.Stderr, "%s logger failed: %s\n", level, err)
		}
	}
}

// Trace emits an unformatted message at Trace level.
func (ll *LeveledLogger) Trace(msg string) {
	ll.emit(LogLevelTrace, "%s", msg)
}

// Tracef emits a formatted message at Trace level.
func (ll *LeveledLogger) Tracef(format string, args ...interface{}) {
	ll.emit(LogLevelTrace, format, args...)
}

// Debug emits an unformatted message at Debug level.
func (ll *LeveledLogger) Debug(msg string) {
	ll.emit(LogLevelDebug, "%s", msg)
}

// Debugf emits a formatted message at Debug level.
func (ll *LeveledLogger) Debugf(format string, args ...interface{}) {
	ll.emit(LogLevelDebug, format, args...)
}

// Info emits an unformatted message at Info level.
func (ll *LeveledLogger) Info(msg string) {
	ll.emit(LogLevelInfo, "%s", msg)
}

// Infof emits a formatted message at Info level.
func (ll *LeveledLogger) Infof(format string, args ...interface{}) {
	ll.emit(LogLevelInfo, format, args...)
}

// Notice emits an unformatted message at Notice level.
func (ll *LeveledLogger) Notice(msg string) {
	ll.emit(LogLevelNotice, "%s", msg)
}

// Noticef emits a formatted message at Notice level.
func (ll *LeveledLogger) Noticef(format string, args ...interface{}) {
	ll.emit(LogLevelNotice, format, args...)
}

// Error emits an unformatted message at Error level.
func (ll *LeveledLogger) Error(msg string) {
	ll.emit(LogLevelError, "%s", msg)
}

// Errorf emits a formatted message at Error level.
func (ll *LeveledLogger) Errorf(format string, args ...interface{}) {
	ll.emit(LogLevelError, format, args...)
}
