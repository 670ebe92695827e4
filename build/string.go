//
// (C) Copyright 2023 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package build

import (
	"fmt"
	"strings"
)

// Info describes a binary and the tree it was built from.
type Info struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Revision string `json:"revision,omitempty"`
	VCS      string `json:"vcs,omitempty"`
	Dirty    bool   `json:"dirty,omitempty"`
	Release  bool   `json:"release"`
}

// NewInfo returns the build information for the named binary.
func NewInfo(name string) *Info {
	return &Info{
		Name:     name,
		Version:  DaosVersion,
		Revision: Revision,
		VCS:      VCS,
		Dirty:    DirtyBuild,
		Release:  ReleaseBuild,
	}
}

// FullVersion returns the version, followed for non-release builds by
// the abbreviated revision and a dirty marker.
func (bi *Info) FullVersion() string {
	if bi.Release || bi.Revision == "" {
		return bi.Version
	}

	rev := bi.Revision
	if bi.VCS == "git" {
		rev = "g" + rev
		if len(rev) > 7 {
			rev = rev[:7]
		}
	}

	parts := []string{bi.Version, rev}
	if bi.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

func (bi *Info) String() string {
	return fmt.Sprintf("%s version %s", bi.Name, bi.FullVersion())
}

// String returns the name and version of the binary.
func String(name string) string {
	return NewInfo(name).String()
}
