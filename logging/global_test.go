//
// (C) Copyright 2019-2022 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/daos-stack/contprops/logging"
)

func TestPackageGlobalFunctions(t *testing.T) {
	var buf bytes.Buffer

	logging.SetLevel(logging.LogLevelTrace)
	logging.SetLogger(
		logging.NewCombinedLogger("testPrefix", &buf),
	)
	defer logging.SetLogger(logging.NewCommandLineLogger())

	tests := map[string]struct {
		fn        func(string)
		fnInput   string
		fmtFn     func(string, ...interface{})
		fmtFnFmt  string
		fmtFnArgs []interface{}
		expected  *regexp.Regexp
	}{
		"Trace": {fn: logging.Trace, fnInput: "test",
			expected: regexp.MustCompile(`^TRACE \d{2}:\d{2}:\d{2}\.\d{6} global_test.go:\d+: test\n$`)},
		"Debug": {fn: logging.Debug, fnInput: "test",
			expected: regexp.MustCompile(`^DEBUG \d{2}:\d{2}:\d{2}\.\d{6} [^:]+:\d+: test\n$`)},
		"Debugf": {fmtFn: logging.Debugf, fmtFnFmt: "test: %d", fmtFnArgs: []interface{}{42},
			expected: regexp.MustCompile(`^DEBUG \d{2}:\d{2}:\d{2}\.\d{6} [^:]+:\d+: test: 42\n$`)},
		"Info": {fn: logging.Info, fnInput: "test",
			expected: regexp.MustCompile(`^testPrefix INFO \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} test\n$`)},
		"Infof": {fmtFn: logging.Infof, fmtFnFmt: "test: %d", fmtFnArgs: []interface{}{42},
			expected: regexp.MustCompile(`^testPrefix INFO \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} test: 42\n$`)},
		"Noticef": {fmtFn: logging.Noticef, fmtFnFmt: "test: %s", fmtFnArgs: []interface{}{"x"},
			expected: regexp.MustCompile(`^testPrefix NOTICE \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} test: x\n$`)},
		"Error": {fn: logging.Error, fnInput: "test",
			expected: regexp.MustCompile(`^testPrefix ERROR \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} test\n$`)},
		"Errorf": {fmtFn: logging.Errorf, fmtFnFmt: "test: %d", fmtFnArgs: []interface{}{42},
			expected: regexp.MustCompile(`^testPrefix ERROR \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} test: 42\n$`)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			switch {
			case tc.fn != nil:
				tc.fn(tc.fnInput)
			case tc.fmtFn != nil:
				tc.fmtFn(tc.fmtFnFmt, tc.fmtFnArgs...)
			default:
				t.Fatal("no test function defined")
			}
			got := buf.String()
			buf.Reset()
			if !tc.expected.MatchString(got) {
				t.Fatalf("expected %q to match %s", got, tc.expected)
			}
		})
	}
}
