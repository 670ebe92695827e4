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

type propsCmd struct {
	List  propsListCmd  `command:"list" description:"list known container properties"`
	Check propsCheckCmd `command:"check" description:"validate property assignments and show the resolved result"`
}

type propsListCmd struct {
	outputCmd
	cmdutil.NoArgsCmd
	Properties ui.GetPropertiesFlag `long:"properties" short:"p" description:"comma-separated list of properties to show"`
}

func (cmd *propsListCmd) Execute(_ []string) error {
	names := daos.PropertyNames(false)
	if len(cmd.Properties.ParsedProps) > 0 {
		names = cmd.Properties.Keys()
	}

	propList := &daos.ContainerPropertyList{}
	for _, name := range names {
		if _, err := propList.AddEntryByName(name); err != nil {
			return FaultPropUnknownName(name)
		}
	}

	if cmd.JSONOutputEnabled() {
		type propInfo struct {
			Name        string   `json:"name"`
			Description string   `json:"description"`
			Values      []string `json:"values,omitempty"`
			ReadOnly    bool     `json:"read_only"`
		}
		var out []*propInfo
		for _, prop := range propList.Properties() {
			out = append(out, &propInfo{
				Name:        prop.Name,
				Description: prop.Description,
				Values:      prop.SettableValues(),
				ReadOnly:    prop.IsReadOnly(),
			})
		}
		return cmd.OutputJSON(out, nil)
	}

	return pretty.PrintPropertyInfo(cmd.writer, propList.Properties())
}

type propsCheckCmd struct {
	outputCmd
	Args struct {
		Props ui.ContainerPropertiesFlag `positional-arg-name:"name:value[,name:value...]" required:"1"`
	} `positional-args:"yes"`
}

func (cmd *propsCheckCmd) Execute(_ []string) error {
	propList := cmd.Args.Props.PropList
	for _, prop := range propList.Properties() {
		cmd.Debugf("checked %s", prop)
	}

	resolved := daos.ResolveContainerProps(propList)
	if cmd.JSONOutputEnabled() {
		return cmd.OutputJSON(struct {
			Properties []*daos.ContainerProperty `json:"properties"`
			Resolved   daos.ContainerProps       `json:"resolved"`
		}{
			Properties: propList.Properties(),
			Resolved:   resolved,
		}, nil)
	}

	return pretty.PrintContainerProps(cmd.writer, "Resolved Properties", resolved)
}
