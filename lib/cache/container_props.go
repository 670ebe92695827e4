//
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cache

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/lib/daos"
)

// PropertySource is a container property list which can report a
// fingerprint of its current contents.
type PropertySource interface {
	daos.PropertyLookup
	HashKey() (uint64, error)
}

// ContainerPropsItem caches the resolved properties of one container.
// It goes stale whenever the contents of its source list change.
type ContainerPropsItem struct {
	sync.Mutex
	key         string
	source      PropertySource
	srcHash     uint64
	resolved    bool
	props       daos.ContainerProps
	lastRefresh time.Time
}

var _ Item = (*ContainerPropsItem)(nil)

// NewContainerPropsItem returns an unresolved item for the source list.
func NewContainerPropsItem(key string, source PropertySource) *ContainerPropsItem {
	return &ContainerPropsItem{
		key:    key,
		source: source,
	}
}

// Key returns the container identifier the item is cached under.
func (cpi *ContainerPropsItem) Key() string {
	return cpi.key
}

// NeedsRefresh returns true if the item has not been resolved or its
// source has changed since it was.
func (cpi *ContainerPropsItem) NeedsRefresh() bool {
	if !cpi.resolved {
		return true
	}

	hash, err := cpi.source.HashKey()
	return err != nil || hash != cpi.srcHash
}

// Refresh re-resolves the properties from the source list.
func (cpi *ContainerPropsItem) Refresh(_ context.Context) error {
	if cpi.source == nil {
		return errors.New("no property source")
	}

	hash, err := cpi.source.HashKey()
	if err != nil {
		return err
	}

	cpi.props = daos.ResolveContainerProps(cpi.source)
	cpi.srcHash = hash
	cpi.resolved = true
	cpi.lastRefresh = time.Now()
	return nil
}

// Props returns the resolved properties. The caller must hold the lock.
func (cpi *ContainerPropsItem) Props() daos.ContainerProps {
	return cpi.props
}

func sameSource(a, b PropertySource) bool {
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.TypeOf(a).Comparable() {
		return false
	}
	return a == b
}

// SetSource points the item at a new source list. A different source
// marks the item unresolved. The caller must hold the lock.
func (cpi *ContainerPropsItem) SetSource(source PropertySource) bool {
	if sameSource(cpi.source, source) {
		return false
	}
	cpi.source = source
	cpi.resolved = false
	return true
}

// LastRefresh returns the time of the last resolution.
func (cpi *ContainerPropsItem) LastRefresh() time.Time {
	return cpi.lastRefresh
}

// ContainerPropsCache caches resolved container properties by
// container identifier.
type ContainerPropsCache = ItemCache[*ContainerPropsItem]

// ResolveCached returns the resolved properties for the container,
// resolving them only if the item is new or its source has changed.
func ResolveCached(ctx context.Context, ic *ContainerPropsCache, key string, source PropertySource) (daos.ContainerProps, error) {
	if source == nil || reflect.ValueOf(source).Kind() == reflect.Ptr && reflect.ValueOf(source).IsNil() {
		return daos.ContainerProps{}, errors.Errorf("nil property source for %q", key)
	}

	item, release, err := ic.GetOrCreate(ctx, key, func() (*ContainerPropsItem, error) {
		return NewContainerPropsItem(key, source), nil
	})
	if err != nil {
		return daos.ContainerProps{}, err
	}
	defer release()

	if item.SetSource(source) {
		if err := item.Refresh(ctx); err != nil {
			return daos.ContainerProps{}, errors.Wrapf(err, "fetch data for %q", key)
		}
	}

	return item.Props(), nil
}
