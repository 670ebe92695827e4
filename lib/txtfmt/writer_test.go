//
// (C) Copyright 2021-2022 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package txtfmt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTxtfmt_IndentWriter(t *testing.T) {
	for name, tc := range map[string]struct {
		padCount uint
		writes   []string
		expOut   string
	}{
		"single line": {
			writes: []string{"line\n"},
			expOut: "  line\n",
		},
		"split line": {
			writes: []string{"li", "ne\n", "next\n"},
			expOut: "  line\n  next\n",
		},
		"blank lines untouched": {
			padCount: 4,
			writes:   []string{"a\n\nb\n"},
			expOut:   "    a\n\n    b\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			var buf strings.Builder
			var opts []IndentWriterOption
			if tc.padCount > 0 {
				opts = append(opts, WithPadCount(tc.padCount))
			}
			iw := NewIndentWriter(&buf, opts...)
			for _, w := range tc.writes {
				n, err := fmt.Fprint(iw, w)
				if err != nil {
					t.Fatal(err)
				}
				if n != len(w) {
					t.Fatalf("expected %d bytes written, got %d", len(w), n)
				}
			}

			if diff := cmp.Diff(tc.expOut, buf.String()); diff != "" {
				t.Fatalf("unexpected output (-want, +got):\n%s\n", diff)
			}
		})
	}
}
