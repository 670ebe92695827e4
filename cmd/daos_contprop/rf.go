//
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"fmt"

	"github.com/daos-stack/contprops/lib/daos"
)

type rfCmd struct {
	outputCmd
	Args struct {
		Factor int `positional-arg-name:"redundancy-factor" required:"1"`
	} `positional-args:"yes"`
}

func (cmd *rfCmd) Execute(_ []string) error {
	af, err := daos.RedunFacToAllowedFailures(cmd.Args.Factor)
	if err != nil {
		cmd.Debugf("rf %d: %s", cmd.Args.Factor, err)
		return FaultPropInvalidRedunFactor(cmd.Args.Factor)
	}

	if cmd.JSONOutputEnabled() {
		return cmd.OutputJSON(map[string]int{
			"redundancy_factor": cmd.Args.Factor,
			"allowed_failures":  af,
		}, nil)
	}

	_, err = fmt.Fprintf(cmd.writer, "rd_fac%d tolerates %d simultaneous failure(s)\n", cmd.Args.Factor, af)
	return err
}
