//
// (C) Copyright 2018-2022 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package code is a central repository for all fault codes.
package code

import (
	"encoding/json"
	"strconv"
)

// Code represents a stable fault code.
//
// NB: All errors should register their codes in the
// following block in order to avoid conflicts.
//
// Also note that new codes should always be added at the bottom of
// their respective blocks. This ensures stability of fault codes
// over time.
type Code int

// UnmarshalJSON implements a custom unmarshaler
// to convert an int or string code to a Code.
func (c *Code) UnmarshalJSON(data []byte) (err error) {
	var ic int
	if err = json.Unmarshal(data, &ic); err == nil {
		*c = Code(ic)
		return
	}

	var sc string
	if err = json.Unmarshal(data, &sc); err != nil {
		return
	}

	if ic, err = strconv.Atoi(sc); err == nil {
		*c = Code(ic)
	}
	return
}

const (
	// general fault codes
	Unknown Code = iota
	BadInput
)

const (
	// container property fault codes
	ContPropUnknown Code = iota + 100
	ContPropUnknownName
	ContPropInvalidValue
	ContPropReadOnly
	ContPropInvalidRedunFactor
	ContPropDuplicateEntry
)

const (
	// container document fault codes
	ContConfigUnknown Code = iota + 200
	ContConfigNoPath
	ContConfigBadFile
	ContConfigBadLabel
	ContConfigBadUUID
	ContConfigDuplicateContainer
	ContConfigNoIdentity
)

const (
	// metrics export fault codes
	MetricsUnknown Code = iota + 300
	MetricsGatherFailed
)
