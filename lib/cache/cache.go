//
// (C) Copyright 2023 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cache

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/logging"
)

// Item is a lockable value which knows when it is stale and how to
// refresh itself.
type Item interface {
	Lock()
	Unlock()
	Key() string
	Refresh(ctx context.Context) error
	NeedsRefresh() bool
}

// ItemCache is a mechanism for caching Items to keys.
type ItemCache[T Item] struct {
	log   logging.Logger
	mutex sync.RWMutex
	items map[string]T
}

// NewItemCache creates a new ItemCache.
func NewItemCache[T Item](log logging.Logger) *ItemCache[T] {
	if log == nil {
		log = logging.FromContext(context.Background())
	}
	return &ItemCache[T]{
		log:   log,
		items: make(map[string]T),
	}
}

func isNilItem(item Item) bool {
	if item == nil {
		return true
	}
	v := reflect.ValueOf(item)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Set caches an item under its key.
func (ic *ItemCache[T]) Set(item T) error {
	if ic == nil {
		return errors.New("ItemCache is nil")
	}

	if isNilItem(item) || item.Key() == "" {
		return errors.New("invalid item")
	}

	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	ic.items[item.Key()] = item
	return nil
}

// Delete fully deletes an Item from the cache.
func (ic *ItemCache[T]) Delete(key string) {
	if ic == nil {
		return
	}

	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	delete(ic.items, key)
}

// Has checks whether any item is cached under the given key.
func (ic *ItemCache[T]) Has(key string) bool {
	if ic == nil {
		return false
	}

	ic.mutex.RLock()
	defer ic.mutex.RUnlock()

	_, found := ic.items[key]
	return found
}

// Keys returns a sorted list of all keys in the cache.
func (ic *ItemCache[T]) Keys() []string {
	if ic == nil {
		return nil
	}

	ic.mutex.RLock()
	defer ic.mutex.RUnlock()

	return ic.keys()
}

func (ic *ItemCache[T]) keys() []string {
	keys := make([]string, 0, len(ic.items))
	for k := range ic.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type errKeyNotFound struct {
	key string
}

func (e *errKeyNotFound) Error() string {
	return fmt.Sprintf("key %q not found", e.key)
}

// IsKeyNotFound returns true if the error indicates a cache miss.
func IsKeyNotFound(err error) bool {
	_, ok := errors.Cause(err).(*errKeyNotFound)
	return ok
}

func noopRelease() {}

// lockFresh locks the item and refreshes it if stale. On success the
// item is returned locked.
func (ic *ItemCache[T]) lockFresh(ctx context.Context, key string, item T) error {
	item.Lock()
	if !item.NeedsRefresh() {
		return nil
	}

	if err := item.Refresh(ctx); err != nil {
		item.Unlock()
		return errors.Wrapf(err, "fetch data for %q", key)
	}
	ic.log.Debugf("refreshed item %q", key)
	return nil
}

// GetOrCreate returns an item from the cache if it exists, otherwise it creates
// the item using the given function and caches it. The item must be released
// by the caller when it is safe to be modified.
func (ic *ItemCache[T]) GetOrCreate(ctx context.Context, key string, missFn func() (T, error)) (T, func(), error) {
	var zero T
	if ic == nil {
		return zero, noopRelease, errors.New("nil ItemCache")
	}
	if key == "" {
		return zero, noopRelease, errors.New("empty string is an invalid key")
	}
	if missFn == nil {
		return zero, noopRelease, errors.New("item create function is required")
	}

	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	item, found := ic.items[key]
	if !found {
		var err error
		if item, err = missFn(); err != nil {
			return zero, noopRelease, errors.Wrapf(err, "create item for %q", key)
		}
		if isNilItem(item) {
			return zero, noopRelease, errors.Errorf("create item for %q: nil item", key)
		}
		ic.log.Debugf("created item for key %q", key)
		ic.items[key] = item
	}

	if err := ic.lockFresh(ctx, key, item); err != nil {
		return zero, noopRelease, err
	}
	return item, item.Unlock, nil
}

// Get returns an item from the cache if it exists, otherwise it returns an
// error. The item must be released by the caller when it is safe to be modified.
func (ic *ItemCache[T]) Get(ctx context.Context, key string) (T, func(), error) {
	var zero T
	if ic == nil {
		return zero, noopRelease, errors.New("nil ItemCache")
	}
	if key == "" {
		return zero, noopRelease, errors.New("empty string is an invalid key")
	}

	ic.mutex.RLock()
	defer ic.mutex.RUnlock()

	item, found := ic.items[key]
	if !found {
		return zero, noopRelease, &errKeyNotFound{key: key}
	}

	if err := ic.lockFresh(ctx, key, item); err != nil {
		return zero, noopRelease, err
	}
	return item, item.Unlock, nil
}

// Refresh forces a re-fetch of the items for the given keys, or of all
// items if no keys are given.
func (ic *ItemCache[T]) Refresh(ctx context.Context, keys ...string) error {
	if ic == nil {
		return errors.New("nil ItemCache")
	}

	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	if len(keys) == 0 {
		keys = ic.keys()
	}

	for _, key := range keys {
		item, found := ic.items[key]
		if !found {
			return &errKeyNotFound{key: key}
		}

		item.Lock()
		err := item.Refresh(ctx)
		item.Unlock()
		if err != nil {
			return errors.Wrapf(err, "failed to refresh cached item %q", key)
		}
	}
	return nil
}
