//
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"os"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/daos-stack/contprops/fault"
	"github.com/daos-stack/contprops/lib/daos"
)

type (
	// containerSpec is a single entry of a container document.
	containerSpec struct {
		UUID       string            `yaml:"uuid"`
		Label      string            `yaml:"label"`
		Properties map[string]string `yaml:"properties"`
	}

	// containerDocument lists containers and their property settings.
	containerDocument struct {
		Containers []*containerSpec `yaml:"containers"`
	}

	// containerConfig is a validated container entry.
	containerConfig struct {
		UUID  uuid.UUID
		Label string
		Props *daos.ContainerPropertyList
	}
)

// parseContainerDocument validates the document and builds a property
// list for each container. Containers without a UUID are assigned one
// derived from their label so that metrics labels stay stable.
func parseContainerDocument(data []byte) ([]*containerConfig, error) {
	var doc containerDocument
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	configs := make([]*containerConfig, 0, len(doc.Containers))
	for idx, cs := range doc.Containers {
		if cs == nil || (cs.UUID == "" && cs.Label == "") {
			return nil, FaultConfigNoIdentity(idx)
		}

		cfg := &containerConfig{Label: cs.Label}
		if cs.Label != "" && !daos.LabelIsValid(cs.Label) {
			return nil, FaultConfigBadLabel(cs.Label)
		}
		if cs.UUID != "" {
			id, err := uuid.Parse(cs.UUID)
			if err != nil {
				return nil, FaultConfigBadUUID(cs.UUID)
			}
			cfg.UUID = id
		} else {
			cfg.UUID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(cs.Label))
		}

		for _, key := range []string{cfg.UUID.String(), cfg.Label} {
			if key == "" {
				continue
			}
			if _, found := seen[key]; found {
				return nil, FaultConfigDuplicateContainer(key)
			}
			seen[key] = struct{}{}
		}

		props, err := buildPropertyList(cs.Properties)
		if err != nil {
			return nil, err
		}
		if cfg.Label != "" {
			if _, err := props.SetByName(daos.PropEntryLabel, cfg.Label); err != nil {
				return nil, FaultConfigBadLabel(cfg.Label)
			}
		}
		cfg.Props = props

		configs = append(configs, cfg)
	}

	return configs, nil
}

// buildPropertyList converts name:value settings into a property list.
func buildPropertyList(settings map[string]string) (*daos.ContainerPropertyList, error) {
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)

	props := &daos.ContainerPropertyList{}
	seen := make(map[daos.ContainerPropType]string)
	for _, name := range names {
		var propType daos.ContainerPropType
		if err := propType.FromString(name); err != nil {
			return nil, FaultPropUnknownName(name)
		}
		if prev, found := seen[propType]; found {
			return nil, FaultPropDuplicateEntry(prev, name)
		}
		seen[propType] = name

		if _, err := props.SetByName(name, settings[name]); err != nil {
			return nil, propSetFault(name, settings[name], err)
		}
	}

	return props, nil
}

// loadContainerDocument reads and parses the container document at path.
func loadContainerDocument(path string) ([]*containerConfig, error) {
	if path == "" {
		return nil, FaultConfigNoPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FaultConfigBadFile(path, err)
	}

	configs, err := parseContainerDocument(data)
	if err != nil {
		if !fault.IsFault(err) {
			return nil, FaultConfigBadFile(path, err)
		}
		return nil, err
	}

	return configs, nil
}
