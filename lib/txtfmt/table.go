//
// (C) Copyright 2019-2022 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package txtfmt renders rows of key/value data as aligned text.
package txtfmt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const defMissingValue = "None"

// TableRow maps column titles to cell values.
type TableRow map[string]string

// TableFormatter renders a slice of TableRows as a titled table with
// one column per title.
type TableFormatter struct {
	titles  []string
	missing string
	writer  *tabwriter.Writer
	out     bytes.Buffer
}

// NewTableFormatter returns a formatter for the supplied column titles.
func NewTableFormatter(columnTitles ...string) *TableFormatter {
	f := &TableFormatter{missing: defMissingValue}
	f.Init()
	f.SetColumnTitles(columnTitles...)
	return f
}

// Init resets the formatter to write into its internal buffer.
func (t *TableFormatter) Init() {
	t.out.Reset()
	t.InitWriter(&t.out)
}

// InitWriter sets the destination for formatted output.
func (t *TableFormatter) InitWriter(w io.Writer) {
	t.writer = tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
}

// SetColumnTitles replaces the column titles.
func (t *TableFormatter) SetColumnTitles(titles ...string) {
	if titles == nil {
		titles = []string{}
	}
	t.titles = titles
}

// SetMissingValue sets the text printed for a row with no value for a column.
func (t *TableFormatter) SetMissingValue(val string) {
	t.missing = val
}

func (t *TableFormatter) writeRow(cells []string) {
	fmt.Fprintf(t.writer, "%s\t\n", strings.Join(cells, "\t"))
}

// Format renders the table. Nothing is rendered without column titles.
func (t *TableFormatter) Format(table []TableRow) string {
	if len(t.titles) == 0 {
		return ""
	}

	rules := make([]string, len(t.titles))
	for i, title := range t.titles {
		rules[i] = strings.Repeat("-", len(title))
	}
	t.writeRow(t.titles)
	t.writeRow(rules)

	cells := make([]string, len(t.titles))
	for _, row := range table {
		for i, title := range t.titles {
			val, found := row[title]
			if !found {
				val = t.missing
			}
			cells[i] = val
		}
		t.writeRow(cells)
	}

	t.writer.Flush()
	return t.out.String()
}
