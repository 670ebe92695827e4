//
// (C) Copyright 2018-2021 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package fault_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/fault"
	"github.com/daos-stack/contprops/fault/code"
)

func TestFault_ErrorAndResolution(t *testing.T) {
	unknownRes := fmt.Sprintf("unknown: code = 0 resolution = %q", fault.ResolutionUnknown)

	for name, tc := range map[string]struct {
		err        error
		expStr     string
		expRes     string
		expIsFault bool
		expHasRes  bool
	}{
		"nil error": {
			expRes: unknownRes,
		},
		"plain error": {
			err:    errors.New("not a fault"),
			expStr: "not a fault",
			expRes: unknownRes,
		},
		"empty fault": {
			err:        &fault.Fault{},
			expStr:     fault.UnknownFault.Error(),
			expRes:     unknownRes,
			expIsFault: true,
		},
		"no domain": {
			err: &fault.Fault{
				Code:        code.ContPropReadOnly,
				Description: "property is read-only",
				Resolution:  "drop the property",
			},
			expStr:     fmt.Sprintf("unknown: code = %d description = \"property is read-only\"", code.ContPropReadOnly),
			expRes:     fmt.Sprintf("unknown: code = %d resolution = \"drop the property\"", code.ContPropReadOnly),
			expIsFault: true,
			expHasRes:  true,
		},
		"no resolution": {
			err: &fault.Fault{
				Domain:      "contprop",
				Code:        code.ContPropUnknownName,
				Description: "unknown property",
			},
			expStr:     fmt.Sprintf("contprop: code = %d description = \"unknown property\"", code.ContPropUnknownName),
			expRes:     fmt.Sprintf("contprop: code = %d resolution = %q", code.ContPropUnknownName, fault.ResolutionUnknown),
			expIsFault: true,
		},
		"domain is sanitized": {
			err: &fault.Fault{
				Domain:      "cont config:yaml doc",
				Code:        code.ContConfigBadFile,
				Description: "bad document",
				Resolution:  "fix the YAML",
			},
			expStr:     fmt.Sprintf("cont_config_yaml_doc: code = %d description = \"bad document\"", code.ContConfigBadFile),
			expRes:     fmt.Sprintf("cont_config_yaml_doc: code = %d resolution = \"fix the YAML\"", code.ContConfigBadFile),
			expIsFault: true,
			expHasRes:  true,
		},
		"wrapped fault": {
			err: errors.Wrap(&fault.Fault{
				Domain:      "contprop",
				Code:        code.ContPropInvalidRedunFactor,
				Description: "bad rd_fac",
				Resolution:  "use rd_fac0-4",
			}, "resolve"),
			expStr:     fmt.Sprintf("resolve: contprop: code = %d description = \"bad rd_fac\"", code.ContPropInvalidRedunFactor),
			expRes:     fmt.Sprintf("contprop: code = %d resolution = \"use rd_fac0-4\"", code.ContPropInvalidRedunFactor),
			expIsFault: true,
			expHasRes:  true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if tc.err != nil && tc.err.Error() != tc.expStr {
				t.Fatalf("expected %q, got %q", tc.expStr, tc.err.Error())
			}
			if got := fault.IsFault(tc.err); got != tc.expIsFault {
				t.Fatalf("expected IsFault() == %t, got %t", tc.expIsFault, got)
			}
			if got := fault.ShowResolutionFor(tc.err); got != tc.expRes {
				t.Fatalf("expected %q, got %q", tc.expRes, got)
			}
			if got := fault.HasResolution(tc.err); got != tc.expHasRes {
				t.Fatalf("expected HasResolution() == %t, got %t", tc.expHasRes, got)
			}
		})
	}
}

func TestFault_Equals(t *testing.T) {
	readOnly := &fault.Fault{
		Domain:      "contprop",
		Code:        code.ContPropReadOnly,
		Description: "read-only",
	}

	for name, tc := range map[string]struct {
		other error
		expEq bool
	}{
		"nil": {},
		"plain error": {
			other: errors.New("read-only"),
		},
		"self": {
			other: readOnly,
			expEq: true,
		},
		"same code": {
			other: &fault.Fault{Code: code.ContPropReadOnly},
			expEq: true,
		},
		"different code": {
			other: &fault.Fault{Code: code.ContPropInvalidValue, Description: "read-only"},
		},
		"wrapped same code": {
			other: errors.Wrap(&fault.Fault{Code: code.ContPropReadOnly}, "set"),
			expEq: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if got := readOnly.Equals(tc.other); got != tc.expEq {
				t.Fatalf("expected %t, got %t", tc.expEq, got)
			}
		})
	}
}

func TestFault_ReasonsAndIs(t *testing.T) {
	f := &fault.Fault{
		Domain:      "contprop",
		Code:        code.ContPropInvalidValue,
		Description: "invalid property value",
		Reasons:     []string{"cksum:bogus", "rd_fac:9"},
	}

	expStr := fmt.Sprintf("contprop: code = %d description = \"invalid property value: cksum:bogus, rd_fac:9\"", code.ContPropInvalidValue)
	if f.Error() != expStr {
		t.Fatalf("expected %q, got %q", expStr, f.Error())
	}

	wrapped := errors.Wrap(f, "check failed")
	if !stderrors.Is(wrapped, &fault.Fault{Code: code.ContPropInvalidValue}) {
		t.Fatal("expected wrapped fault to match by code")
	}
	if stderrors.Is(wrapped, &fault.Fault{Code: code.ContPropReadOnly}) {
		t.Fatal("expected fault with different code not to match")
	}
}
