//
// (C) Copyright 2021-2023 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/build"
	"github.com/daos-stack/contprops/common/cmdutil"
	"github.com/daos-stack/contprops/fault"
	"github.com/daos-stack/contprops/lib/atm"
	"github.com/daos-stack/contprops/logging"
)

type cliOptions struct {
	Debug   bool           `long:"debug" description:"enable debug output"`
	JSON    bool           `long:"json" short:"j" description:"enable JSON output"`
	Resolve resolveCmd     `command:"resolve" description:"resolve the storage properties of the containers in a document"`
	Props   propsCmd       `command:"props" alias:"prop" description:"list and check container properties"`
	RF      rfCmd          `command:"rf" description:"show the failures tolerated by a redundancy factor"`
	Metrics metricsCmd     `command:"metrics" description:"export resolved container properties as Prometheus metrics"`
	Version versionCmd     `command:"version" description:"print daos_contprop version"`
	ManPage cmdutil.ManCmd `command:"manpage" hidden:"true"`
}

// outputCmd is embedded by commands which write results.
type outputCmd struct {
	cmdutil.LogCmd
	cmdutil.JSONOutputCmd
	writer io.Writer
}

func (cmd *outputCmd) setWriter(w io.Writer) {
	cmd.writer = w
}

type writerSetter interface {
	setWriter(io.Writer)
}

type versionCmd struct {
	outputCmd
}

func (cmd *versionCmd) Execute(_ []string) error {
	if cmd.JSONOutputEnabled() {
		return cmd.OutputJSON(build.NewInfo(build.ContPropToolName), nil)
	}

	_, err := fmt.Fprintln(cmd.writer, build.String(build.ContPropToolName))
	return err
}

func exitWithError(log logging.Logger, err error) {
	cmdName := path.Base(os.Args[0])
	log.Errorf("%s: %v", cmdName, err)
	if fault.HasResolution(err) {
		log.Errorf("%s: %s", cmdName, fault.ShowResolutionFor(err))
	}
	os.Exit(1)
}

func parseOpts(args []string, opts *cliOptions, stdout io.Writer, log *logging.LeveledLogger) error {
	var wroteJSON atm.Bool
	p := flags.NewParser(opts, flags.Default)
	p.Name = build.ContPropToolName
	p.ShortDescription = "Container property resolver"
	p.LongDescription = `daos_contprop resolves the storage properties of containers
(checksum, deduplication, compression, encryption and redundancy)
from their property lists, applying the default for every property
that is not set.`
	p.Options ^= flags.PrintErrors // Don't allow the library to print errors
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}

		if manCmd, ok := cmd.(cmdutil.ManPageWriter); ok {
			manCmd.SetWriteFunc(p.WriteManPage)
			manCmd.SetOutput(stdout)
			return cmd.Execute(args)
		}

		if opts.Debug {
			log.SetLevel(logging.LogLevelTrace)
			log.Debug("debug output enabled")
		}

		if jsonCmd, ok := cmd.(cmdutil.JSONOutputter); ok && opts.JSON {
			jsonCmd.EnableJSONOutput(stdout, &wroteJSON)
			// disable output on stdout other than JSON
			log.ClearLevel(logging.LogLevelInfo)
		}

		if logCmd, ok := cmd.(cmdutil.LogSetter); ok {
			logCmd.SetLog(log)
		}

		if wCmd, ok := cmd.(writerSetter); ok {
			wCmd.setWriter(stdout)
		}

		if argsCmd, ok := cmd.(cmdutil.ArgsHandler); ok {
			if err := argsCmd.CheckArgs(args); err != nil {
				return err
			}
		}

		return cmd.Execute(args)
	}

	_, err := p.ParseArgs(args)
	if opts.JSON && wroteJSON.IsFalse() {
		if jErr := cmdutil.OutputJSON(stdout, nil, err); jErr != nil {
			log.Errorf("failed to write JSON output: %s", jErr)
		}
	}
	return err
}

func main() {
	var opts cliOptions
	log := logging.NewCommandLineLogger()
	logging.SetLogger(log)

	if err := parseOpts(os.Args[1:], &opts, os.Stdout, log); err != nil {
		if fe, ok := errors.Cause(err).(*flags.Error); ok && fe.Type == flags.ErrHelp {
			log.Info(fe.Error())
			os.Exit(0)
		}
		exitWithError(log, err)
	}
}
