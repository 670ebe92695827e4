//
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package daos

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/pkg/errors"
)

// PropEntryFlags holds the per-entry flag bits of a property list entry.
type PropEntryFlags uint32

const (
	// PropEntryNotSet marks an entry which is present in the list but
	// carries no value (a negative entry).
	PropEntryNotSet PropEntryFlags = 1 << 0
)

type (
	// PropertyEntry is a single (type, value) pair in a property list.
	PropertyEntry struct {
		Type  ContainerPropType `json:"type"`
		Value uint64            `json:"value"`
		Str   string            `json:"str,omitempty"`
		Flags PropEntryFlags    `json:"flags,omitempty"`
	}

	// PropertyLookup is implemented by anything that can look up a
	// container property entry by type. A missing entry is reported
	// via the boolean return rather than a sentinel entry.
	PropertyLookup interface {
		LookupEntry(ContainerPropType) (*PropertyEntry, bool)
	}

	// PropertyList is an in-memory, ordered property list. It is not
	// safe for concurrent modification; callers that share a list
	// must serialize updates against resolution.
	PropertyList struct {
		entries []*PropertyEntry
	}
)

var _ PropertyLookup = (*PropertyList)(nil)

// IsUnset returns true if the entry is a negative entry.
func (pe *PropertyEntry) IsUnset() bool {
	return pe == nil || pe.Flags&PropEntryNotSet != 0
}

func (pe *PropertyEntry) String() string {
	if pe == nil {
		return "<nil>"
	}
	if pe.IsUnset() {
		return fmt.Sprintf("%s: not set", pe.Type)
	}
	if pe.Str != "" {
		return fmt.Sprintf("%s: %s", pe.Type, pe.Str)
	}
	return fmt.Sprintf("%s: %d", pe.Type, pe.Value)
}

// NewPropertyList returns a property list populated with the
// supplied entries. Duplicate entry types are rejected.
func NewPropertyList(entries ...PropertyEntry) (*PropertyList, error) {
	pl := &PropertyList{}
	for _, e := range entries {
		if err := pl.AddEntry(e); err != nil {
			return nil, err
		}
	}
	return pl, nil
}

// MustNewPropertyList is a wrapper around NewPropertyList that panics on error.
func MustNewPropertyList(entries ...PropertyEntry) *PropertyList {
	pl, err := NewPropertyList(entries...)
	if err != nil {
		panic(err)
	}
	return pl
}

func (pl *PropertyList) find(propType ContainerPropType) (int, *PropertyEntry) {
	if pl == nil {
		return -1, nil
	}
	for i, e := range pl.entries {
		if e.Type == propType {
			return i, e
		}
	}
	return -1, nil
}

// AddEntry appends a copy of the supplied entry to the list.
func (pl *PropertyList) AddEntry(entry PropertyEntry) error {
	if pl == nil {
		return errors.Wrap(InvalidInput, "nil property list")
	}
	if !entry.Type.IsValid() {
		return errors.Wrapf(InvalidInput, "invalid container property type %d", entry.Type)
	}
	if _, e := pl.find(entry.Type); e != nil {
		return errors.Wrapf(Exists, "duplicate property %q", entry.Type)
	}

	pl.entries = append(pl.entries, &entry)
	return nil
}

// SetValue sets the numeric value of the entry of the given type,
// adding the entry if it does not already exist.
func (pl *PropertyList) SetValue(propType ContainerPropType, val uint64) error {
	if _, e := pl.find(propType); e != nil {
		e.Value = val
		e.Flags &^= PropEntryNotSet
		return nil
	}

	return pl.AddEntry(PropertyEntry{Type: propType, Value: val})
}

// DelEntry removes the entry of the given type from the list.
func (pl *PropertyList) DelEntry(propType ContainerPropType) error {
	idx, _ := pl.find(propType)
	if idx < 0 {
		return errors.Wrapf(Nonexistent, "property %q not found in list", propType)
	}

	pl.entries = append(pl.entries[:idx], pl.entries[idx+1:]...)
	return nil
}

// LookupEntry implements PropertyLookup. Negative entries are
// reported as absent.
func (pl *PropertyList) LookupEntry(propType ContainerPropType) (*PropertyEntry, bool) {
	_, e := pl.find(propType)
	if e == nil || e.IsUnset() {
		return nil, false
	}
	return e, true
}

// Entries returns copies of the list entries, in insertion order.
func (pl *PropertyList) Entries() []PropertyEntry {
	if pl == nil {
		return nil
	}
	out := make([]PropertyEntry, len(pl.entries))
	for i, e := range pl.entries {
		out[i] = *e
	}
	return out
}

// Len returns the number of entries in the list.
func (pl *PropertyList) Len() int {
	if pl == nil {
		return 0
	}
	return len(pl.entries)
}

// HashKey returns a fingerprint of the list contents. Any update to an
// entry, including one made through a ContainerProperty, changes it.
func (pl *PropertyList) HashKey() (uint64, error) {
	key, err := hashstructure.Hash(pl.Entries(), hashstructure.FormatV2, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to hash property list")
	}
	return key, nil
}
