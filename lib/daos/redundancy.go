//
// (C) Copyright 2020-2021 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package daos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type (
	// RedunFactor is the container redundancy factor ordinal. Higher
	// factors tolerate more simultaneous failures.
	RedunFactor uint32

	// RedunLevel is the fault-domain granularity at which the
	// redundancy factor applies.
	RedunLevel uint32
)

const (
	RedunFactor0 RedunFactor = iota
	RedunFactor1
	RedunFactor2
	RedunFactor3
	RedunFactor4
)

const (
	RedunLevelRank RedunLevel = 1
	RedunLevelNode RedunLevel = 2
)

// RedunFacToAllowedFailures converts a redundancy factor ordinal into
// the number of simultaneous failures it tolerates. Ordinals outside
// RF0..RF4 are rejected rather than defaulted.
func RedunFacToAllowedFailures(rf int) (int, error) {
	switch rf {
	case int(RedunFactor0):
		return 0, nil
	case int(RedunFactor1):
		return 1, nil
	case int(RedunFactor2):
		return 2, nil
	case int(RedunFactor3):
		return 3, nil
	case int(RedunFactor4):
		return 4, nil
	default:
		return 0, errors.Wrapf(InvalidInput, "invalid redundancy factor %d", rf)
	}
}

// AllowedFailures returns the number of simultaneous failures
// tolerated by the redundancy factor.
func (rf RedunFactor) AllowedFailures() (int, error) {
	if uint64(rf) > uint64(RedunFactor4) {
		return 0, errors.Wrapf(InvalidInput, "invalid redundancy factor %d", rf)
	}
	return RedunFacToAllowedFailures(int(rf))
}

func (rf RedunFactor) String() string {
	if rf > RedunFactor4 {
		return fmt.Sprintf("rd_fac(%d)", uint32(rf))
	}
	return fmt.Sprintf("rd_fac%d", uint32(rf))
}

// FromString accepts either the ordinal ("2") or the rendered form ("rd_fac2").
func (rf *RedunFactor) FromString(in string) error {
	val := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(in)), "rd_fac")
	ord, err := strconv.ParseUint(val, 10, 32)
	if err != nil || RedunFactor(ord) > RedunFactor4 {
		return errors.Wrapf(InvalidInput, "invalid redundancy factor %q", in)
	}

	*rf = RedunFactor(ord)
	return nil
}

func (rl RedunLevel) String() string {
	switch rl {
	case RedunLevelRank:
		return "rank"
	case RedunLevelNode:
		return "node"
	default:
		return fmt.Sprintf("(%d)", uint32(rl))
	}
}

// FromString accepts the level name or its numeric value.
func (rl *RedunLevel) FromString(in string) error {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "rank", "1":
		*rl = RedunLevelRank
	case "node", "2":
		*rl = RedunLevelNode
	default:
		return errors.Wrapf(InvalidInput, "invalid redundancy level %q", in)
	}
	return nil
}
