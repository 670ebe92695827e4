//
// (C) Copyright 2021-2022 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package txtfmt

import (
	"bytes"
	"io"
)

const defaultPadCount = 2

type (
	// IndentWriter indents every non-empty line written to it.
	IndentWriter struct {
		writer    io.Writer
		padCount  uint
		inNewLine bool
	}

	// IndentWriterOption configures the IndentWriter.
	IndentWriterOption func(*IndentWriter)
)

// WithPadCount sets the indent width.
func WithPadCount(count uint) IndentWriterOption {
	return func(w *IndentWriter) {
		w.padCount = count
	}
}

func NewIndentWriter(w io.Writer, opts ...IndentWriterOption) *IndentWriter {
	iw := &IndentWriter{
		writer:    w,
		padCount:  defaultPadCount,
		inNewLine: true,
	}

	for _, opt := range opts {
		opt(iw)
	}
	return iw
}

// Write returns the number of bytes of data consumed; indentation is
// not counted.
func (w *IndentWriter) Write(data []byte) (int, error) {
	var written int
	for len(data) > 0 {
		if w.inNewLine && data[0] != '\n' {
			if _, err := w.writer.Write(bytes.Repeat([]byte{' '}, int(w.padCount))); err != nil {
				return written, err
			}
		}

		line := data
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			line = data[:idx+1]
		}
		n, err := w.writer.Write(line)
		written += n
		if err != nil {
			return written, err
		}

		w.inNewLine = line[len(line)-1] == '\n'
		data = data[len(line):]
	}

	return written, nil
}
