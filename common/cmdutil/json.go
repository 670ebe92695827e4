//
// (C) Copyright 2021-2023 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cmdutil

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/fault"
	"github.com/daos-stack/contprops/lib/atm"
)

var _ JSONOutputter = (*JSONOutputCmd)(nil)

type (
	// JSONOutputter defines an interface for commands that
	// can emit JSON output.
	JSONOutputter interface {
		EnableJSONOutput(io.Writer, *atm.Bool)
		JSONOutputEnabled() bool
		OutputJSON(interface{}, error) error
	}

	// JSONOutputCmd is an embeddable type that extends a command
	// with JSON output capabilities.
	JSONOutputCmd struct {
		writer    io.Writer
		jsonFlag  bool
		wroteJSON *atm.Bool
	}

	jsonError struct {
		Message    string `json:"message"`
		Resolution string `json:"resolution,omitempty"`
	}

	jsonResponse struct {
		Response interface{} `json:"response"`
		Error    *jsonError  `json:"error"`
		Status   int         `json:"status"`
	}
)

// EnableJSONOutput enables JSON output on the supplied writer. The
// supplied flag is set once JSON has been written.
func (cmd *JSONOutputCmd) EnableJSONOutput(out io.Writer, wroteJSON *atm.Bool) {
	cmd.writer = out
	cmd.jsonFlag = true
	cmd.wroteJSON = wroteJSON
}

// JSONOutputEnabled returns true if JSON output is enabled.
func (cmd *JSONOutputCmd) JSONOutputEnabled() bool {
	return cmd.jsonFlag
}

// OutputJSON writes the response and error as a JSON document and
// returns the supplied error.
func (cmd *JSONOutputCmd) OutputJSON(in interface{}, cmdErr error) error {
	if cmd.wroteJSON != nil && cmd.wroteJSON.IsTrue() {
		return cmdErr
	}

	if err := OutputJSON(cmd.writer, in, cmdErr); err != nil {
		return err
	}
	if cmd.wroteJSON != nil {
		cmd.wroteJSON.SetTrue()
	}

	return cmdErr
}

func errorJSON(err error) *jsonError {
	if err == nil {
		return nil
	}

	je := &jsonError{Message: err.Error()}
	if fault.HasResolution(err) {
		je.Resolution = fault.ShowResolutionFor(err)
	}
	return je
}

// OutputJSON writes the response and error as an indented JSON
// document. A nil writer is an error.
func OutputJSON(out io.Writer, in interface{}, cmdErr error) error {
	if out == nil {
		return errors.New("nil JSON output writer")
	}

	status := 0
	if cmdErr != nil {
		status = -1
	}

	data, err := json.MarshalIndent(jsonResponse{
		Response: in,
		Error:    errorJSON(cmdErr),
		Status:   status,
	}, "", "  ")
	if err != nil {
		return err
	}

	_, err = out.Write(append(data, []byte("\n")...))
	return err
}
