//
// (C) Copyright 2020-2021 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package build provides an importable repository of variables set at build time.
package build

var (
	// DaosVersion should be set via linker flag using the value of DAOS_VERSION.
	DaosVersion string = "unset"
	// Revision should be set via linker flag using the value of the VCS revision.
	Revision string = ""
	// VCS should be set via linker flag using the name of the version control system.
	VCS string = ""
	// DirtyBuild should be set via linker flag if the source tree was modified.
	DirtyBuild bool = false
	// ReleaseBuild should be set via linker flag for release builds.
	ReleaseBuild bool = false

	// ContPropToolName defines a consistent name for the container property tool.
	ContPropToolName = "daos_contprop"
)
