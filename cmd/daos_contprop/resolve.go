//
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"github.com/daos-stack/contprops/cmd/daos_contprop/pretty"
	"github.com/daos-stack/contprops/common/cmdutil"
	"github.com/daos-stack/contprops/lib/daos"
	"github.com/daos-stack/contprops/lib/ui"
)

type resolveCmd struct {
	outputCmd
	cmdutil.NoArgsCmd
	File      string             `long:"file" short:"f" required:"1" description:"container document (YAML)"`
	Container ui.LabelOrUUIDFlag `long:"container" short:"c" description:"only resolve the container with this label or UUID"`
}

func resolveContainers(configs []*containerConfig, filter ui.LabelOrUUIDFlag) []*pretty.ContainerResolution {
	var out []*pretty.ContainerResolution
	for _, cfg := range configs {
		if !filter.Matches(cfg.UUID, cfg.Label) {
			continue
		}
		out = append(out, &pretty.ContainerResolution{
			UUID:  cfg.UUID,
			Label: cfg.Label,
			Props: daos.ResolveContainerProps(cfg.Props),
		})
	}
	return out
}

func (cmd *resolveCmd) Execute(_ []string) error {
	configs, err := loadContainerDocument(cmd.File)
	if err != nil {
		return err
	}
	cmd.Debugf("loaded %d containers from %s", len(configs), cmd.File)

	resolved := resolveContainers(configs, cmd.Container)
	if cmd.JSONOutputEnabled() {
		return cmd.OutputJSON(resolved, nil)
	}

	return pretty.PrintContainerPropsTable(cmd.writer, resolved)
}
