//
// (C) Copyright 2021-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cmdutil

import (
	"context"

	"github.com/daos-stack/contprops/logging"
)

var _ LogSetter = (*LogCmd)(nil)

type (
	// LogSetter is implemented by commands which accept a logger.
	LogSetter interface {
		SetLog(log logging.Logger)
	}

	// LogCmd is an embeddable type that extends a command with
	// logging capabilities.
	LogCmd struct {
		logging.Logger
	}
)

// SetLog sets the logger for the command.
func (cmd *LogCmd) SetLog(log logging.Logger) {
	cmd.Logger = log
}

// Log returns the command's logger, or a disabled logger if none
// has been set.
func (cmd *LogCmd) Log() logging.Logger {
	if cmd.Logger == nil {
		return logging.FromContext(context.Background())
	}
	return cmd.Logger
}

// LogCtx returns a copy of the parent context carrying the command's
// logger.
func (cmd *LogCmd) LogCtx(parent context.Context) (context.Context, error) {
	return logging.ToContext(parent, cmd.Log())
}
