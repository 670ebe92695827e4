//
// (C) Copyright 2018-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package test provides helpers shared by the package tests.
package test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/logging"
)

// AssertTrue asserts b is true
func AssertTrue(t *testing.T, b bool, message string) {
	t.Helper()

	if !b {
		t.Fatal(message)
	}
}

// AssertFalse asserts b is false
func AssertFalse(t *testing.T, b bool, message string) {
	t.Helper()

	AssertTrue(t, !b, message)
}

// AssertEqual asserts b is equal to a
//
// Whilst suitable in most situations, reflect.DeepEqual() may not be
// suitable for nontrivial struct element comparisons, go-cmp should
// then be used.
func AssertEqual(t *testing.T, a, b interface{}, message string) {
	t.Helper()

	if cmp.Equal(a, b) {
		return
	}

	t.Fatalf("%s: %#v != %#v", message, a, b)
}

// CmpErrBool compares two errors for presence.
func CmpErrBool(want, got error) bool {
	if want == got {
		return true
	}
	if want == nil || got == nil {
		return false
	}
	return true
}

// CmpErr compares two errors for equality or at least close similarity in their messages.
func CmpErr(t *testing.T, want, got error) {
	t.Helper()

	if !CmpErrBool(want, got) {
		t.Fatalf("unexpected error\n(wanted: %v, got: %v)", want, got)
	}
	// If the error messages don't match, at least check that one
	// contains the other, so that wrapped errors still compare.
	if want != nil && got != nil && want.Error() != got.Error() {
		if errors.Is(got, want) {
			return
		}
		if !strings.Contains(got.Error(), want.Error()) {
			t.Fatalf("unexpected error\n(wanted: %v, got: %v)", want, got)
		}
	}
}

// CmpAny compares two values and fails the test if they are not equal.
func CmpAny(t *testing.T, desc string, want, got any, cmpOpts ...cmp.Option) {
	t.Helper()

	if diff := cmp.Diff(want, got, cmpOpts...); diff != "" {
		t.Fatalf("unexpected %s (-want, +got):\n%s\n", desc, diff)
	}
}

// DefaultCmpOpts gets default go-cmp comparison options for tests.
func DefaultCmpOpts() []cmp.Option {
	return []cmp.Option{
		cmpopts.EquateEmpty(),
		cmp.Comparer(func(x, y error) bool {
			return CmpErrBool(x, y) && (x == nil || x.Error() == y.Error())
		}),
	}
}

// ShowBufferOnFailure displays captured output on test failure. Should be run
// via defer in the test function.
func ShowBufferOnFailure(t *testing.T, buf fmt.Stringer) {
	t.Helper()

	if t.Failed() {
		fmt.Printf("captured log output:\n%s", buf.String())
	}
}

// Context returns a context that is canceled when the test completes.
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// MustLogContext returns a context containing the supplied logger.
func MustLogContext(t *testing.T, log logging.Logger) context.Context {
	t.Helper()

	ctx, err := logging.ToContext(Context(t), log)
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

// MockUUID returns a deterministic UUID derived from the supplied index.
func MockUUID(idx ...int32) string {
	idxStr := "1"
	if len(idx) > 0 {
		idxStr = fmt.Sprintf("%d", idx[0])
	}

	return fmt.Sprintf("%s-%s-%s-%s-%s",
		strings.Repeat(idxStr, 8),
		strings.Repeat(idxStr, 4),
		strings.Repeat(idxStr, 4),
		strings.Repeat(idxStr, 4),
		strings.Repeat(idxStr, 12),
	)
}

// MockContainerUUID returns a deterministic container UUID.
func MockContainerUUID(idx ...int32) uuid.UUID {
	return uuid.MustParse(MockUUID(idx...))
}

// CreateTestDir creates a temporary test directory.
// It returns the path to the directory and a cleanup function.
func CreateTestDir(t *testing.T) (string, func()) {
	t.Helper()

	name := strings.Replace(t.Name(), "/", "-", -1)
	tmpDir, err := os.MkdirTemp("", name)
	if err != nil {
		t.Fatalf("Couldn't create temporary directory: %v", err)
	}

	return tmpDir, func() {
		t.Helper()

		if err := os.RemoveAll(tmpDir); err != nil {
			t.Fatalf("Couldn't remove tmp dir: %v", err)
		}
	}
}

// CreateTestFile creates a file in the given directory with contents.
// It returns the path to the file.
func CreateTestFile(t *testing.T, dir, content string) string {
	t.Helper()

	f, err := os.CreateTemp(dir, filepath.Base(strings.Replace(t.Name(), "/", "-", -1)))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}

	return f.Name()
}
