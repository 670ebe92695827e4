//
// (C) Copyright 2019-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import "sync"

// The process-wide logger serves library code which has no logger of
// its own. It starts as a command line logger at DefaultLogLevel.
var (
	globalMu     sync.RWMutex
	globalLogger = NewCommandLineLogger()
)

func global() *LeveledLogger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLogger replaces the process-wide logger. The new logger
// inherits the level of the one it replaces.
func SetLogger(newLogger *LeveledLogger) {
	globalMu.Lock()
	defer globalMu.Unlock()

	newLogger.SetLevel(globalLogger.Level())
	globalLogger = newLogger
}

// SetLevel sets the level of the process-wide logger.
func SetLevel(newLevel LogLevel) {
	global().SetLevel(newLevel)
}

func Trace(msg string) {
	global().emit(LogLevelTrace, "%s", msg)
}

func Tracef(format string, args ...interface{}) {
	global().emit(LogLevelTrace, format, args...)
}

func Debug(msg string) {
	global().emit(LogLevelDebug, "%s", msg)
}

func Debugf(format string, args ...interface{}) {
	global().emit(LogLevelDebug, format, args...)
}

func Info(msg string) {
	global().emit(LogLevelInfo, "%s", msg)
}

func Infof(format string, args ...interface{}) {
	global().emit(LogLevelInfo, format, args...)
}

func Notice(msg string) {
	global().emit(LogLevelNotice, "%s", msg)
}

func Noticef(format string, args ...interface{}) {
	global().emit(LogLevelNotice, format, args...)
}

func Error(msg string) {
	global().emit(LogLevelError, "%s", msg)
}

func Errorf(format string, args ...interface{}) {
	global().emit(LogLevelError, format, args...)
}
