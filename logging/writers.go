//
// (C) Copyright 2019-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"bytes"
	"io"
	"log"
	"strings"
	"sync"
)

const (
	debugLogFlags = log.Lmicroseconds | log.Lshortfile
	infoLogFlags  = log.LstdFlags
	bareLogFlags  = 0
)

// logSink writes the messages of one level through a standard
// library logger.
type logSink struct {
	log *log.Logger
}

func newLogSink(dest io.Writer, prefix, tag string, flags int) *logSink {
	var parts []string
	if tag != "" {
		if prefix != "" {
			parts = append(parts, prefix)
		}
		parts = append(parts, tag, "")
	}
	return &logSink{log: log.New(dest, strings.Join(parts, " "), flags)}
}

func (s *logSink) Output(callDepth int, msg string) error {
	return s.log.Output(callDepth+1, msg)
}

// NewSink returns a sink which tags messages with the level name.
// Trace and debug messages carry the caller's file and line instead
// of the prefix.
func NewSink(dest io.Writer, prefix string, level LogLevel) Outputter {
	if level >= LogLevelDebug {
		return newLogSink(dest, "", level.String(), debugLogFlags)
	}
	return newLogSink(dest, prefix, level.String(), infoLogFlags)
}

// NewCommandLineSink returns a sink for terminal output. Info and
// notice messages are written bare and errors are tagged "ERROR:".
func NewCommandLineSink(dest io.Writer, level LogLevel) Outputter {
	switch level {
	case LogLevelInfo, LogLevelNotice:
		return newLogSink(dest, "", "", bareLogFlags)
	case LogLevelError:
		return newLogSink(dest, "", "ERROR:", bareLogFlags)
	default:
		return NewSink(dest, "", level)
	}
}

// LogBuffer is a bytes.Buffer safe for concurrent use, wrapping just
// enough of it to serve as a log destination in tests.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ io.ReadWriter = (*LogBuffer)(nil)

func (lb *LogBuffer) Read(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.Read(p)
}

func (lb *LogBuffer) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.Write(p)
}

func (lb *LogBuffer) String() string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.String()
}

func (lb *LogBuffer) Reset() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.buf.Reset()
}
