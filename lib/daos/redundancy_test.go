//
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package daos

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/common/test"
)

func TestDaos_RedunFacToAllowedFailures(t *testing.T) {
	for rf, expFailures := range map[int]int{
		int(RedunFactor0): 0,
		int(RedunFactor1): 1,
		int(RedunFactor2): 2,
		int(RedunFactor3): 3,
		int(RedunFactor4): 4,
	} {
		t.Run(fmt.Sprintf("rf%d", rf), func(t *testing.T) {
			got, err := RedunFacToAllowedFailures(rf)
			test.CmpErr(t, nil, err)
			test.AssertEqual(t, expFailures, got, "unexpected allowed failures")
		})
	}

	for _, rf := range []int{-1, 5, 999} {
		t.Run(fmt.Sprintf("invalid %d", rf), func(t *testing.T) {
			got, err := RedunFacToAllowedFailures(rf)
			if !errors.Is(err, InvalidInput) {
				t.Fatalf("expected InvalidInput, got %v", err)
			}
			test.AssertEqual(t, 0, got, "no value on error")
		})
	}
}

func TestDaos_RedunFactor_AllowedFailures(t *testing.T) {
	for rf := RedunFactor0; rf <= RedunFactor4; rf++ {
		got, err := rf.AllowedFailures()
		test.CmpErr(t, nil, err)
		test.AssertEqual(t, int(rf), got, rf.String())
	}

	// Large values must not wrap into range on conversion to int.
	for _, rf := range []RedunFactor{5, 1 << 31, RedunFactor(^uint32(0))} {
		if _, err := rf.AllowedFailures(); !errors.Is(err, InvalidInput) {
			t.Fatalf("%d: expected InvalidInput, got %v", uint32(rf), err)
		}
	}
}

func TestDaos_RedunFactor_Strings(t *testing.T) {
	for name, tc := range map[string]struct {
		in     string
		expRF  RedunFactor
		expErr error
	}{
		"ordinal":   {in: "2", expRF: RedunFactor2},
		"rendered":  {in: "rd_fac4", expRF: RedunFactor4},
		"uppercase": {in: " RD_FAC0 ", expRF: RedunFactor0},
		"too large": {in: "5", expErr: errors.New("invalid redundancy factor")},
		"garbage":   {in: "lots", expErr: errors.New("invalid redundancy factor")},
	} {
		t.Run(name, func(t *testing.T) {
			var rf RedunFactor
			err := rf.FromString(tc.in)
			test.CmpErr(t, tc.expErr, err)
			if tc.expErr != nil {
				return
			}
			test.AssertEqual(t, tc.expRF, rf, "unexpected redundancy factor")
		})
	}

	test.AssertEqual(t, "rd_fac3", RedunFactor3.String(), "unexpected string")
	test.AssertEqual(t, "rd_fac(9)", RedunFactor(9).String(), "unexpected string")
}

func TestDaos_RedunLevel_Strings(t *testing.T) {
	for in, exp := range map[string]RedunLevel{
		"rank": RedunLevelRank,
		"1":    RedunLevelRank,
		"Node": RedunLevelNode,
		"2":    RedunLevelNode,
	} {
		var rl RedunLevel
		test.CmpErr(t, nil, rl.FromString(in))
		test.AssertEqual(t, exp, rl, in)
	}

	var rl RedunLevel
	test.CmpErr(t, errors.New("invalid redundancy level"), rl.FromString("rack"))
	test.AssertEqual(t, "(3)", RedunLevel(3).String(), "unexpected string")
}
