//
// (C) Copyright 2021-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"context"

	"github.com/pkg/errors"
)

type loggerCtxKey struct{}

func loggerFrom(ctx context.Context) Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerCtxKey{}).(Logger)
	return logger
}

// FromContext returns the logger carried by the context, or a
// disabled logger if there is none.
func FromContext(ctx context.Context) Logger {
	if logger := loggerFrom(ctx); logger != nil {
		return logger
	}
	return &LeveledLogger{level: LogLevelDisabled}
}

// ToContext returns a copy of the context carrying the logger. A
// context may only carry one logger.
func ToContext(ctx context.Context, logger Logger) (context.Context, error) {
	switch {
	case ctx == nil:
		return nil, errors.New("nil context")
	case logger == nil:
		return nil, errors.New("nil logger")
	case loggerFrom(ctx) != nil:
		return nil, errors.New("logger already present in context")
	}
	return context.WithValue(ctx, loggerCtxKey{}, logger), nil
}
