//
// (C) Copyright 2020-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/build"
	"github.com/daos-stack/contprops/fault"
	"github.com/daos-stack/contprops/fault/code"
	"github.com/daos-stack/contprops/lib/daos"
)

var (
	// FaultConfigNoPath indicates that no container document was supplied.
	FaultConfigNoPath = contConfigFault(
		code.ContConfigNoPath,
		"no container document path supplied",
		"supply the path to a container document with --file",
	)
)

// FaultConfigBadFile indicates that the container document could not be
// read or parsed.
func FaultConfigBadFile(path string, err error) *fault.Fault {
	return contConfigFault(
		code.ContConfigBadFile,
		fmt.Sprintf("unable to load container document %q: %s", path, err),
		"check the path and YAML syntax of the container document",
	)
}

// FaultConfigBadUUID indicates a malformed container UUID.
func FaultConfigBadUUID(id string) *fault.Fault {
	return contConfigFault(
		code.ContConfigBadUUID,
		fmt.Sprintf("invalid container uuid %q", id),
		"supply a UUID of the form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx",
	)
}

// FaultConfigBadLabel indicates an invalid container label.
func FaultConfigBadLabel(label string) *fault.Fault {
	return contConfigFault(
		code.ContConfigBadLabel,
		fmt.Sprintf("invalid container label %q", label),
		fmt.Sprintf("use a label of up to %d alphanumeric, '.', '_', ':' or '-' characters", daos.MaxLabelLength),
	)
}

// FaultConfigNoIdentity indicates a container entry with neither UUID
// nor label.
func FaultConfigNoIdentity(idx int) *fault.Fault {
	return contConfigFault(
		code.ContConfigNoIdentity,
		fmt.Sprintf("container entry %d has no uuid or label", idx),
		"set a uuid or label for every container entry",
	)
}

// FaultConfigDuplicateContainer indicates that a container appears
// more than once in the document.
func FaultConfigDuplicateContainer(id string) *fault.Fault {
	return contConfigFault(
		code.ContConfigDuplicateContainer,
		fmt.Sprintf("container %q appears more than once", id),
		"remove the duplicate container entry",
	)
}

// FaultPropUnknownName indicates an unknown property name.
func FaultPropUnknownName(name string) *fault.Fault {
	return contPropFault(
		code.ContPropUnknownName,
		fmt.Sprintf("unknown container property %q", name),
		fmt.Sprintf("use one of the settable properties: %s", strings.Join(daos.PropertyNames(true), ",")),
	)
}

// FaultPropInvalidValue indicates a value rejected by its property.
func FaultPropInvalidValue(name, value string, err error) *fault.Fault {
	return contPropFault(
		code.ContPropInvalidValue,
		fmt.Sprintf("invalid value %q for container property %q: %s", value, name, err),
		fmt.Sprintf("run '%s props list' to see the valid values", build.ContPropToolName),
	)
}

// FaultPropReadOnly indicates an attempt to set a read-only property.
func FaultPropReadOnly(name string) *fault.Fault {
	return contPropFault(
		code.ContPropReadOnly,
		fmt.Sprintf("container property %q is read-only", name),
		"remove the read-only property from the request",
	)
}

// FaultPropDuplicateEntry indicates that a property was set more than
// once, possibly under a deprecated name.
func FaultPropDuplicateEntry(first, second string) *fault.Fault {
	return contPropFault(
		code.ContPropDuplicateEntry,
		fmt.Sprintf("container properties %q and %q set the same property", first, second),
		"set each property only once",
	)
}

// FaultPropInvalidRedunFactor indicates a redundancy factor outside
// the supported range.
func FaultPropInvalidRedunFactor(rf int) *fault.Fault {
	return contPropFault(
		code.ContPropInvalidRedunFactor,
		fmt.Sprintf("redundancy factor %d is not supported", rf),
		fmt.Sprintf("use a redundancy factor between %d and %d", daos.RedunFactor0, daos.RedunFactor4),
	)
}

// FaultMetricsGatherFailed indicates that metrics could not be gathered.
func FaultMetricsGatherFailed(err error) *fault.Fault {
	return &fault.Fault{
		Domain:      "metrics",
		Code:        code.MetricsGatherFailed,
		Description: fmt.Sprintf("failed to gather container metrics: %s", err),
		Resolution:  "rerun with --debug for details",
	}
}

// propSetFault converts an error from setting a property into a fault.
func propSetFault(name, value string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, daos.NoPermission):
		return FaultPropReadOnly(name)
	default:
		return FaultPropInvalidValue(name, value, err)
	}
}

func contConfigFault(code code.Code, desc, res string) *fault.Fault {
	return &fault.Fault{
		Domain:      "contconfig",
		Code:        code,
		Description: desc,
		Resolution:  res,
	}
}

func contPropFault(code code.Code, desc, res string) *fault.Fault {
	return &fault.Fault{
		Domain:      "contprop",
		Code:        code,
		Description: desc,
		Resolution:  res,
	}
}
