//
// (C) Copyright 2021-2022 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cmdutil

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ManPageWriter is implemented by commands that write a man page
// using the parser's generator.
type ManPageWriter interface {
	SetWriteFunc(func(io.Writer))
	SetOutput(io.Writer)
}

// ManCmd is a hidden subcommand which writes the man page to a file
// or to the command output.
type ManCmd struct {
	writeFn func(io.Writer)
	out     io.Writer
	Output  string `long:"output" short:"o" description:"output file"`
}

func (cmd *ManCmd) SetWriteFunc(fn func(io.Writer)) {
	cmd.writeFn = fn
}

func (cmd *ManCmd) SetOutput(w io.Writer) {
	cmd.out = w
}

func (cmd *ManCmd) Execute(_ []string) error {
	if cmd.writeFn == nil {
		return errors.New("no man page generator")
	}

	if cmd.Output == "" {
		out := cmd.out
		if out == nil {
			out = os.Stdout
		}
		cmd.writeFn(out)
		return nil
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return errors.Wrap(err, "failed to create man page")
	}
	cmd.writeFn(f)
	return errors.Wrapf(f.Close(), "failed to write %s", cmd.Output)
}
