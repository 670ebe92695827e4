//
// (C) Copyright 2021-2023 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cmdutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/common/test"
	"github.com/daos-stack/contprops/fault"
	"github.com/daos-stack/contprops/fault/code"
	"github.com/daos-stack/contprops/lib/atm"
	"github.com/daos-stack/contprops/logging"
)

func TestCmdutil_NoArgsCmd(t *testing.T) {
	var cmd NoArgsCmd

	test.CmpErr(t, nil, cmd.CheckArgs(nil))
	test.CmpErr(t, errors.New("unexpected arguments: a b"), cmd.CheckArgs([]string{"a", "b"}))
}

func TestCmdutil_LogCmd(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	var cmd LogCmd
	if cmd.Log().EnabledFor(logging.LogLevelError) {
		t.Fatal("expected disabled logger before SetLog")
	}

	cmd.SetLog(log)
	cmd.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatal("expected log output")
	}

	ctx, err := cmd.LogCtx(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := logging.FromContext(ctx); got != log {
		t.Fatal("expected command logger in context")
	}
}

func TestCmdutil_ManCmd(t *testing.T) {
	var cmd ManCmd
	test.CmpErr(t, errors.New("no man page generator"), cmd.Execute(nil))

	var buf bytes.Buffer
	cmd.SetOutput(&buf)
	cmd.SetWriteFunc(func(w io.Writer) {
		io.WriteString(w, ".TH test 1\n")
	})
	if err := cmd.Execute(nil); err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, ".TH test 1\n", buf.String(), "unexpected man page")

	tmpDir, cleanup := test.CreateTestDir(t)
	defer cleanup()
	cmd.Output = filepath.Join(tmpDir, "test.1")
	if err := cmd.Execute(nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(cmd.Output)
	if err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, ".TH test 1\n", string(data), "unexpected man page file")
}

func TestCmdutil_OutputJSON(t *testing.T) {
	testFault := &fault.Fault{
		Domain:      "test",
		Code:        code.BadInput,
		Description: "bad input",
		Resolution:  "fix it",
	}

	for name, tc := range map[string]struct {
		in      interface{}
		cmdErr  error
		expJSON map[string]interface{}
	}{
		"success": {
			in: map[string]int{"a": 1},
			expJSON: map[string]interface{}{
				"response": map[string]interface{}{"a": float64(1)},
				"error":    nil,
				"status":   float64(0),
			},
		},
		"plain error": {
			cmdErr: errors.New("whoops"),
			expJSON: map[string]interface{}{
				"response": nil,
				"error":    map[string]interface{}{"message": "whoops"},
				"status":   float64(-1),
			},
		},
		"fault": {
			cmdErr: testFault,
			expJSON: map[string]interface{}{
				"response": nil,
				"error": map[string]interface{}{
					"message":    testFault.Error(),
					"resolution": fault.ShowResolutionFor(testFault),
				},
				"status": float64(-1),
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			var wrote atm.Bool
			var cmd JSONOutputCmd
			cmd.EnableJSONOutput(&buf, &wrote)
			test.AssertTrue(t, cmd.JSONOutputEnabled(), "JSON should be enabled")

			gotErr := cmd.OutputJSON(tc.in, tc.cmdErr)
			test.CmpErr(t, tc.cmdErr, gotErr)
			test.AssertTrue(t, wrote.IsTrue(), "JSON should be marked written")

			var got map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.expJSON, got); diff != "" {
				t.Fatalf("unexpected JSON (-want, +got):\n%s", diff)
			}

			// A second call is a no-op.
			buf.Reset()
			cmd.OutputJSON(tc.in, tc.cmdErr)
			test.AssertEqual(t, 0, buf.Len(), "JSON written twice")
		})
	}

	test.CmpErr(t, errors.New("nil JSON output writer"), OutputJSON(nil, nil, nil))
}
