//
// (C) Copyright 2021-2024 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package promexp

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/lib/atm"
	"github.com/daos-stack/contprops/lib/cache"
	"github.com/daos-stack/contprops/lib/daos"
	"github.com/daos-stack/contprops/logging"
)

type (
	// ContainerEntry identifies a container and the property list its
	// resolved configuration is derived from.
	ContainerEntry struct {
		UUID  uuid.UUID
		Label string
		Props cache.PropertySource
	}

	// ContainerSource is a set of containers whose resolved properties
	// are exported. Resolutions are cached until a property list changes.
	ContainerSource struct {
		Name    string
		mu      sync.RWMutex
		entries map[uuid.UUID]*ContainerEntry
		cache   *cache.ContainerPropsCache
		enabled *atm.Bool
	}

	resolvedContainer struct {
		entry *ContainerEntry
		props daos.ContainerProps
	}
)

// NewContainerSource returns an enabled source populated with the
// supplied containers.
func NewContainerSource(log logging.Logger, name string, entries ...*ContainerEntry) (*ContainerSource, error) {
	cs := &ContainerSource{
		Name:    name,
		entries: make(map[uuid.UUID]*ContainerEntry),
		cache:   cache.NewItemCache[*cache.ContainerPropsItem](log),
		enabled: atm.NewBool(true),
	}

	for _, entry := range entries {
		if err := cs.Add(entry); err != nil {
			return nil, err
		}
	}

	return cs, nil
}

// Add adds a container to the source.
func (cs *ContainerSource) Add(entry *ContainerEntry) error {
	if entry == nil {
		return errors.New("nil container entry")
	}
	if entry.UUID == uuid.Nil {
		return errors.New("container entry has no UUID")
	}
	if entry.Props == nil {
		return errors.Errorf("container %s has no property list", entry.UUID)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, found := cs.entries[entry.UUID]; found {
		return errors.Errorf("duplicate container %s", entry.UUID)
	}
	cs.entries[entry.UUID] = entry
	return nil
}

// Remove removes a container and its cached resolution from the source.
func (cs *ContainerSource) Remove(id uuid.UUID) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.entries, id)
	cs.cache.Delete(id.String())
}

// Len returns the number of containers in the source.
func (cs *ContainerSource) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.entries)
}

// IsEnabled checks if the container source is enabled.
func (cs *ContainerSource) IsEnabled() bool {
	return cs.enabled.IsTrue()
}

// Enable enables the container source. It returns false if the
// source was already enabled.
func (cs *ContainerSource) Enable() bool {
	return cs.enabled.SetTrueCond()
}

// Disable disables the container source. It returns false if the
// source was already disabled.
func (cs *ContainerSource) Disable() bool {
	return cs.enabled.SetFalseCond()
}

// resolve returns the resolved properties of every container, ordered
// by UUID.
func (cs *ContainerSource) resolve(ctx context.Context) ([]*resolvedContainer, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(cs.entries))
	for id := range cs.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	out := make([]*resolvedContainer, 0, len(ids))
	for _, id := range ids {
		entry := cs.entries[id]
		props, err := cache.ResolveCached(ctx, cs.cache, id.String(), entry.Props)
		if err != nil {
			return nil, errors.Wrapf(err, "container %s", id)
		}
		out = append(out, &resolvedContainer{entry: entry, props: props})
	}

	return out, nil
}
