//
// (C) Copyright 2019-2022 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package txtfmt

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

const defEntityRowIndent = 2

// EntityFormatter renders the attributes of a single entity as an
// indented list of "key: value" lines under an underlined title.
type EntityFormatter struct {
	title  string
	writer *tabwriter.Writer
	out    bytes.Buffer

	Separator string
}

// NewEntityFormatter returns a formatter whose keys are padded to
// padWidth.
func NewEntityFormatter(title string, padWidth int) *EntityFormatter {
	f := &EntityFormatter{
		title:     title,
		Separator: ": ",
	}
	f.Init(padWidth)
	return f
}

// Init resets the formatter with the given key padding.
func (f *EntityFormatter) Init(padWidth int) {
	f.out.Reset()
	f.writer = tabwriter.NewWriter(&f.out, padWidth, 0, 0, ' ', 0)
}

// Format renders the attributes. Each row is expected to hold one
// key, so that the row order is the output order.
func (f *EntityFormatter) Format(attrs []TableRow) string {
	if f.title != "" {
		fmt.Fprintf(&f.out, "%s\n%s\n", f.title, strings.Repeat("-", len(f.title)))
	}

	iw := NewIndentWriter(f.writer, WithPadCount(defEntityRowIndent))
	for _, row := range attrs {
		for key, val := range row {
			fmt.Fprintf(iw, "%s\t%s%s\n", key, f.Separator, val)
		}
	}

	f.writer.Flush()
	return f.out.String()
}

// GetEntityPadding returns the key padding needed to align the values
// of attrs.
func GetEntityPadding(attrs []TableRow) (padding int) {
	for _, row := range attrs {
		for key := range row {
			if len(key)+1 > padding {
				padding = len(key) + 1
			}
		}
	}
	return
}

// FormatEntity is a convenience wrapper around EntityFormatter.
func FormatEntity(title string, attrs []TableRow) string {
	return NewEntityFormatter(title, GetEntityPadding(attrs)+defEntityRowIndent).Format(attrs)
}
