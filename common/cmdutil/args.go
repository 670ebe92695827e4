//
// (C) Copyright 2021-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cmdutil

import (
	"strings"

	"github.com/pkg/errors"
)

var _ ArgsHandler = (*NoArgsCmd)(nil)

// ArgsHandler is implemented by commands which validate their
// remaining arguments before they execute.
type ArgsHandler interface {
	CheckArgs([]string) error
}

// NoArgsCmd is embedded by commands that take no positional arguments.
type NoArgsCmd struct{}

func (cmd *NoArgsCmd) CheckArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	return errors.Errorf("unexpected arguments: %s", strings.Join(args, " "))
}
