//
// (C) Copyright 2018-2021 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package fault provides errors which carry a stable code and,
// where one is known, a resolution for the user.
package fault

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/fault/code"
)

const (
	// ResolutionEmpty is equivalent to an empty string.
	ResolutionEmpty = ""
	// ResolutionUnknown indicates that there is no known
	// resolution for the fault.
	ResolutionUnknown = "no known resolution"
	// ResolutionNone indicates that the fault cannot be
	// resolved.
	ResolutionNone = "none"

	// UnknownDomainStr is used when a fault has no domain.
	UnknownDomainStr = "unknown"
	// UnknownDescriptionStr is used when a fault has no description.
	UnknownDescriptionStr = "unknown fault"
)

// UnknownFault represents an unknown fault.
var UnknownFault = &Fault{
	Code:       code.Unknown,
	Resolution: ResolutionUnknown,
}

// Fault represents an error with a stable code and an optional
// user-facing resolution.
type Fault struct {
	Domain      string    `json:"domain"`
	Code        code.Code `json:"code"`
	Description string    `json:"description"`
	Reasons     []string  `json:"reasons,omitempty"`
	Resolution  string    `json:"resolution"`
}

func sanitizeDomain(inDomain string) (outDomain string) {
	outDomain = UnknownDomainStr
	if inDomain != "" {
		// sanitize the domain to ensure grep friendliness
		outDomain = strings.Join(
			strings.Fields(
				strings.Replace(inDomain, ":", " ", -1),
			), "_")
	}
	return
}

func sanitizeDescription(inDescription string) (outDescription string) {
	outDescription = UnknownDescriptionStr
	if inDescription != "" {
		outDescription = inDescription
	}
	return
}

func (f *Fault) Error() string {
	desc := sanitizeDescription(f.Description)
	if len(f.Reasons) > 0 {
		desc = fmt.Sprintf("%s: %s", desc, strings.Join(f.Reasons, ", "))
	}
	return fmt.Sprintf("%s: code = %d description = %q",
		sanitizeDomain(f.Domain), f.Code, desc)
}

// Equals attempts to compare the given error to this one. If they are
// both Faults, then they are considered equal if their codes match.
func (f *Fault) Equals(raw error) bool {
	other, ok := errors.Cause(raw).(*Fault)
	if !ok {
		return false
	}
	return f.Code == other.Code
}

// Is allows a Fault to be matched with errors.Is().
func (f *Fault) Is(target error) bool {
	return f.Equals(target)
}

// IsFault returns true if the error is or wraps a Fault.
func IsFault(err error) bool {
	_, ok := errors.Cause(err).(*Fault)
	return ok
}

// ShowResolutionFor attempts to return the resolution string for the
// given error. If the error is not a fault or does not have a
// resolution set, then the string value of ResolutionUnknown
// is returned.
func ShowResolutionFor(raw error) string {
	fmtStr := "%s: code = %d resolution = %q"

	f, ok := errors.Cause(raw).(*Fault)
	if !ok {
		return fmt.Sprintf(fmtStr, UnknownDomainStr, code.Unknown, ResolutionUnknown)
	}
	if f.Resolution == ResolutionEmpty {
		return fmt.Sprintf(fmtStr, sanitizeDomain(f.Domain), f.Code, ResolutionUnknown)
	}
	return fmt.Sprintf(fmtStr, sanitizeDomain(f.Domain), f.Code, f.Resolution)
}

// HasResolution returns true if the given error is a fault with a
// resolution.
func HasResolution(raw error) bool {
	f, ok := errors.Cause(raw).(*Fault)
	if !ok || f.Resolution == ResolutionEmpty {
		return false
	}
	return true
}
