//
// (C) Copyright 2021-2023 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package daos

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// MaxLabelLength is the maximum length of a label.
	MaxLabelLength = 127

	maxNameLen = 20
)

// ErrPropertyListImmutable is returned by updates to a frozen list.
var ErrPropertyListImmutable = errors.New("property list is immutable")

// LabelIsValid checks a label to verify that it meets length/content
// requirements.
func LabelIsValid(label string) bool {
	if len(label) == 0 || len(label) > MaxLabelLength {
		return false
	}
	// A label in canonical UUID form would be ambiguous with one.
	if _, err := uuid.Parse(label); err == nil && len(label) == 36 {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == ':', r == '-':
		default:
			return false
		}
	}
	return true
}

// propHdlrs defines a map of property names to handlers that
// take care of parsing the value and setting it. This odd construction
// allows us to maintain a type-safe set of valid property names and
// string properties in one place.
//
// Most new features requiring a change to the property handling
// should only need to modify this map. If your new property has a
// custom input processor or pretty-printer, please add a unit test
// for that code!
var propHdlrs = propHdlrMap{
	PropEntryLabel: {
		ContainerPropLabel,
		"Label",
		func(_ *propHdlr, p *ContainerProperty, v string) error {
			if !LabelIsValid(v) {
				return propError("invalid %s %q", p.Name, v)
			}
			p.entry.Str = v
			return nil
		},
		nil,
		nil,
		strValStringer,
		false,
	},
	PropEntryChecksum: {
		ContainerPropChecksumEnabled,
		"Checksum",
		nil,
		selectorValHdlrs(checksumNames, func(p *ContainerProperty, v string) error {
			var ct ChecksumType
			if err := ct.FromString(v); err != nil || !ChecksumTypeIsValid(ct) {
				return propError("unknown checksum type %q", v)
			}
			return p.SetValue(uint64(ct))
		}),
		nil,
		func(p *ContainerProperty) string {
			ct := ChecksumType(u32(p.GetValue()))
			if !ChecksumTypeIsValid(ct) {
				return propInvalidValue(p)
			}
			return ct.String()
		},
		false,
	},
	PropEntryChecksumSize: {
		ContainerPropChecksumSize,
		"Checksum Chunk Size",
		sizeHdlr,
		nil,
		nil,
		humanSizeStringer,
		false,
	},
	PropEntryServerChecksum: {
		ContainerPropChecksumSrvVrfy,
		"Server Checksumming",
		nil,
		valHdlrMap{
			"on":  genSetValHdlr(uint64(ServerVerifyOn)),
			"off": genSetValHdlr(uint64(ServerVerifyOff)),
		},
		nil,
		func(p *ContainerProperty) string {
			switch ServerVerifyMode(u32(p.GetValue())) {
			case ServerVerifyOff, ServerVerifyOn:
				return ServerVerifyMode(p.GetValue()).String()
			default:
				return propInvalidValue(p)
			}
		},
		false,
	},
	PropEntryDedupe: {
		ContainerPropDedupEnabled,
		"Deduplication",
		nil,
		valHdlrMap{
			"off":    genSetValHdlr(uint64(DedupOff)),
			"memcmp": genSetValHdlr(uint64(DedupMemcmp)),
			"hash":   genSetValHdlr(uint64(DedupHash)),
		},
		nil,
		func(p *ContainerProperty) string {
			dm := DedupMode(u32(p.GetValue()))
			if _, found := dedupNames[dm]; !found {
				return propInvalidValue(p)
			}
			return dm.String()
		},
		false,
	},
	PropEntryDedupeThreshold: {
		ContainerPropDedupThreshold,
		"Dedupe Threshold",
		sizeHdlr,
		nil,
		nil,
		humanSizeStringer,
		false,
	},
	PropEntryCompression: {
		ContainerPropCompression,
		"Compression",
		nil,
		selectorValHdlrs(compressionNames, func(p *ContainerProperty, v string) error {
			var ct CompressionType
			if err := ct.FromString(v); err != nil {
				return propError("unknown compression type %q", v)
			}
			return p.SetValue(uint64(ct))
		}),
		nil,
		func(p *ContainerProperty) string {
			ct := CompressionType(u32(p.GetValue()))
			if ct != CompressionOff && !CompressionTypeIsEnabled(ct) {
				return propInvalidValue(p)
			}
			return ct.String()
		},
		false,
	},
	PropEntryEncryption: {
		ContainerPropEncryption,
		"Encryption",
		nil,
		selectorValHdlrs(encryptionNames, func(p *ContainerProperty, v string) error {
			var et EncryptionType
			if err := et.FromString(v); err != nil {
				return propError("unknown encryption type %q", v)
			}
			return p.SetValue(uint64(et))
		}),
		nil,
		func(p *ContainerProperty) string {
			et := EncryptionType(u32(p.GetValue()))
			if et != EncryptionOff && !EncryptionTypeIsEnabled(et) {
				return propInvalidValue(p)
			}
			return et.String()
		},
		false,
	},
	PropEntryRedunFactor: {
		ContainerPropRedunFactor,
		"Redundancy Factor",
		nil,
		valHdlrMap{
			"0": genSetValHdlr(uint64(RedunFactor0)),
			"1": genSetValHdlr(uint64(RedunFactor1)),
			"2": genSetValHdlr(uint64(RedunFactor2)),
			"3": genSetValHdlr(uint64(RedunFactor3)),
			"4": genSetValHdlr(uint64(RedunFactor4)),
		},
		[]string{"rf"},
		func(p *ContainerProperty) string {
			rf := RedunFactor(u32(p.GetValue()))
			if rf > RedunFactor4 {
				return propInvalidValue(p)
			}
			return rf.String()
		},
		false,
	},
	PropEntryRedunLevel: {
		ContainerPropRedunLevel,
		"Redundancy Level",
		nil,
		valHdlrMap{
			"1":    genSetValHdlr(uint64(RedunLevelRank)),
			"2":    genSetValHdlr(uint64(RedunLevelNode)),
			"rank": genSetValHdlr(uint64(RedunLevelRank)),
			"node": genSetValHdlr(uint64(RedunLevelNode)),
		},
		[]string{"rf_lvl"},
		func(p *ContainerProperty) string {
			lvl := RedunLevel(u32(p.GetValue()))
			switch lvl {
			case RedunLevelRank, RedunLevelNode:
				return fmt.Sprintf("%s (%d)", lvl, lvl)
			default:
				return lvl.String()
			}
		},
		false,
	},
	// ----------------------------------------
	// Read-only properties go below this line.
	// ----------------------------------------
	PropEntryLayoutVersion: {
		ContainerPropLayoutVersion,
		"Layout Version",
		nil,
		nil,
		nil,
		uintStringer,
		true,
	},
	PropEntrySnapshotMax: {
		ContainerPropMaxSnapshots,
		"Max Snapshot",
		nil,
		nil,
		nil,
		uintStringer,
		true,
	},
	PropEntryAllocedOID: {
		ContainerPropHighestOid,
		"Highest Allocated OID",
		nil,
		nil,
		nil,
		uintStringer,
		true,
	},
	PropEntryOwner: {
		ContainerPropOwner,
		"Owner",
		nil,
		nil,
		nil,
		strValStringer,
		true,
	},
	PropEntryGroup: {
		ContainerPropGroup,
		"Group",
		nil,
		nil,
		nil,
		strValStringer,
		true,
	},
	PropEntryGlobalVersion: {
		ContainerPropGlobalVersion,
		"Global Version",
		nil,
		nil,
		nil,
		uintStringer,
		true,
	},
	PropEntryScrubDisabled: {
		ContainerPropScubberDisabled,
		"Scrubber Disabled",
		nil,
		nil,
		nil,
		boolStringer,
		true,
	},
}

func sizeHdlr(_ *propHdlr, p *ContainerProperty, v string) error {
	size, err := humanize.ParseBytes(v)
	if err != nil {
		return propError("invalid %s %q (try N<unit>)", p.Name, v)
	}
	if size > math.MaxUint32 {
		return propError("invalid %s %q (max %s)", p.Name, v, humanize.IBytes(math.MaxUint32))
	}

	return p.SetValue(size)
}

// selectorValHdlrs builds the fixed-input map for an algorithm
// selector from its name table, plus "off".
func selectorValHdlrs[T selectorCode](names map[T]string, hdlr valHdlr) valHdlrMap {
	vhm := valHdlrMap{offName: hdlr}
	for _, name := range names {
		vhm[name] = hdlr
	}
	return vhm
}

// --------------------------------------------------------------------------
// NB: Most new properties should not require modification to the code below.
// --------------------------------------------------------------------------

type (
	// ContainerProperty provides a settable, printable view of a single
	// container property list entry.
	ContainerProperty struct {
		entry       *PropertyEntry
		hdlr        *propHdlr
		Type        ContainerPropType `json:"-"`
		Name        string            `json:"name"`
		Description string            `json:"description"`
	}

	// ContainerPropertyList is a container property list addressed by
	// property name.
	ContainerPropertyList struct {
		PropertyList
		immutable bool
	}
)

var _ PropertyLookup = (*ContainerPropertyList)(nil)

// NewContainerPropertyList creates a list with (unset) entries for the
// supplied property names. If no property names are specified, a list is
// created for all settable container properties.
func NewContainerPropertyList(propNames ...string) (*ContainerPropertyList, error) {
	if len(propNames) == 0 {
		for _, key := range propHdlrs.keys() {
			if !propHdlrs[key].readOnly {
				propNames = append(propNames, key)
			}
		}
	}

	propList := &ContainerPropertyList{}
	for _, name := range propNames {
		if _, err := propList.AddEntryByName(name); err != nil {
			return nil, err
		}
	}

	return propList, nil
}

// LookupEntry implements PropertyLookup. A nil list has no entries.
func (cpl *ContainerPropertyList) LookupEntry(propType ContainerPropType) (*PropertyEntry, bool) {
	if cpl == nil {
		return nil, false
	}
	return cpl.PropertyList.LookupEntry(propType)
}

// HashKey returns a fingerprint of the list contents.
func (cpl *ContainerPropertyList) HashKey() (uint64, error) {
	if cpl == nil {
		return 0, errors.Wrap(InvalidInput, "nil property list")
	}
	return cpl.PropertyList.HashKey()
}

// Freeze marks the list immutable.
func (cpl *ContainerPropertyList) Freeze() {
	cpl.immutable = true
}

// MustAddEntryByType is a wrapper around AddEntryByType that panics on error.
func (cpl *ContainerPropertyList) MustAddEntryByType(propType ContainerPropType) *ContainerProperty {
	prop, err := cpl.AddEntryByType(propType)
	if err != nil {
		panic(err)
	}
	return prop
}

// AddEntryByType adds an unset entry for the specified property type.
func (cpl *ContainerPropertyList) AddEntryByType(propType ContainerPropType) (*ContainerProperty, error) {
	if cpl.immutable {
		return nil, ErrPropertyListImmutable
	}
	if _, found := propHdlrs[propType.String()]; !found {
		return nil, errors.Wrapf(InvalidInput, "invalid container property type %d", propType)
	}

	if err := cpl.AddEntry(PropertyEntry{Type: propType, Flags: PropEntryNotSet}); err != nil {
		return nil, err
	}
	_, entry := cpl.find(propType)

	return newContainerProperty(entry), nil
}

// MustAddEntryByName is a wrapper around AddEntryByName that panics on error.
func (cpl *ContainerPropertyList) MustAddEntryByName(name string) *ContainerProperty {
	prop, err := cpl.AddEntryByName(name)
	if err != nil {
		panic(err)
	}
	return prop
}

// AddEntryByName adds an unset entry for the specified property name.
func (cpl *ContainerPropertyList) AddEntryByName(name string) (*ContainerProperty, error) {
	if cpl.immutable {
		return nil, ErrPropertyListImmutable
	}

	key := strings.TrimSpace(name)
	if len(key) == 0 {
		return nil, propError("name must not be empty")
	}
	if len(key) > maxNameLen {
		return nil, propError("%q: name too long (%d > %d)", key, len(key), maxNameLen)
	}

	propType := ContainerPropType(0)
	if err := propType.FromString(key); err != nil {
		return nil, err
	}

	return cpl.AddEntryByType(propType)
}

// SetByName sets the named property from its string form, adding the
// entry if needed. Read-only properties are rejected.
func (cpl *ContainerPropertyList) SetByName(name, value string) (*ContainerProperty, error) {
	if cpl.immutable {
		return nil, ErrPropertyListImmutable
	}

	ph, err := propHdlrs.get(name)
	if err != nil {
		return nil, err
	}
	if ph.readOnly {
		return nil, errors.Wrapf(NoPermission, "property %q is read-only", ph.propType)
	}
	propType := ph.propType

	prop := cpl.Property(propType)
	if prop == nil {
		if prop, err = cpl.AddEntryByType(propType); err != nil {
			return nil, err
		}
	}

	if err := prop.Set(value); err != nil {
		return nil, err
	}
	return prop, nil
}

// Property returns the entry of the given type, or nil.
func (cpl *ContainerPropertyList) Property(propType ContainerPropType) *ContainerProperty {
	_, entry := cpl.find(propType)
	if entry == nil {
		return nil
	}
	return newContainerProperty(entry)
}

// PropertyNames returns a slice of property names, including any deprecated
// property names. If excReadOnly is true, read-only properties will be excluded
// from the returned slice.
func (cpl *ContainerPropertyList) PropertyNames(excReadOnly bool) (keys []string) {
	keys = make([]string, 0, cpl.Len())
	for _, prop := range cpl.Properties() {
		if prop.IsReadOnly() && excReadOnly {
			continue
		}

		keys = append(keys, prop.Name)
		if prop.hdlr.deprecatedNames != nil {
			keys = append(keys, prop.hdlr.deprecatedNames...)
		}
	}
	sort.Strings(keys)
	return
}

// Properties returns a slice of container property entries.
func (cpl *ContainerPropertyList) Properties() (props []*ContainerProperty) {
	for _, entry := range cpl.entries {
		props = append(props, newContainerProperty(entry))
	}
	return
}

func newContainerProperty(entry *PropertyEntry) *ContainerProperty {
	hdlr := propHdlrs[entry.Type.String()]

	return &ContainerProperty{
		entry:       entry,
		hdlr:        hdlr,
		Type:        entry.Type,
		Name:        entry.Type.String(),
		Description: hdlr.shortDesc,
	}
}

// IsUnset returns true if the property has no value.
func (cp *ContainerProperty) IsUnset() bool {
	return cp.entry.IsUnset()
}

// IsReadOnly returns true if the property is read-only.
func (cp *ContainerProperty) IsReadOnly() bool {
	return cp.hdlr.readOnly
}

// GetValue returns the numeric value of the property.
func (cp *ContainerProperty) GetValue() uint64 {
	return cp.entry.Value
}

// GetString returns the string value of the property.
func (cp *ContainerProperty) GetString() string {
	return cp.entry.Str
}

// SetValue sets the numeric value of the property.
func (cp *ContainerProperty) SetValue(val uint64) error {
	cp.entry.Value = val
	cp.entry.Flags &^= PropEntryNotSet
	return nil
}

// Set accepts a string value and attempts to set the underlying property via
// the property's handler. Returns an error if the property is read-only or
// the value is invalid for the property.
func (cp *ContainerProperty) Set(value string) error {
	if cp.IsReadOnly() {
		return errors.Wrapf(NoPermission, "property %q is read-only", cp.Name)
	}

	if err := cp.hdlr.execute(cp, value); err != nil {
		return err
	}
	cp.entry.Flags &^= PropEntryNotSet
	return nil
}

// StringValue returns a string representation of the property's value.
func (cp *ContainerProperty) StringValue() string {
	if cp.IsUnset() {
		return "not set"
	}
	if cp.hdlr.toString == nil {
		// Should be caught by unit test.
		panic(fmt.Sprintf("%s: no toString function set", cp.Name))
	}

	return cp.hdlr.toString(cp)
}

// String returns a string representation of the property suitable for debug
// logging.
func (cp *ContainerProperty) String() string {
	return fmt.Sprintf("%s: %s", cp.Name, cp.StringValue())
}

// SettableValues returns a slice of strings corresponding to the set of
// predefined valid values for the property, if any.
func (cp *ContainerProperty) SettableValues() []string {
	if cp.hdlr == nil || cp.hdlr.valHdlrs == nil {
		return nil
	}

	return cp.hdlr.valHdlrs.keys()
}

func (cp *ContainerProperty) MarshalJSON() ([]byte, error) {
	if cp == nil || cp.entry == nil || cp.hdlr == nil {
		return nil, errors.New("nil property")
	}

	var value any = cp.StringValue()
	switch cp.Type {
	case ContainerPropHighestOid,
		ContainerPropLayoutVersion,
		ContainerPropMaxSnapshots,
		ContainerPropChecksumSize,
		ContainerPropDedupThreshold:
		if !cp.IsUnset() {
			value = cp.GetValue()
		}
	}

	type toJSON ContainerProperty
	return json.Marshal(&struct {
		Value any `json:"value"`
		*toJSON
	}{
		Value:  value,
		toJSON: (*toJSON)(cp),
	})
}

type propHdlr struct {
	// propType holds the property type (must be set).
	propType ContainerPropType
	// shortDesc holds a short description of the property
	// to be used in human-readable output.
	shortDesc string
	// nameHdlr holds a closure for processing the entry.
	// If not set, and valHdlrs is set, then a default
	// handler for resolving the user input will be
	// used. If valHdlrs is not set, then the property
	// must be read-only. Optional.
	nameHdlr entryHdlr
	// valHdlrs defines a map of string-based property values
	// that should be resolved into the entry's value. Optional.
	valHdlrs valHdlrMap
	// deprecatedNames defines a list of deprecated names for
	// the property. Optional.
	deprecatedNames []string
	// toString defines a closure for converting the
	// entry's value into a string.
	toString entryStringer
	// readOnly indicates that the property may not be set.
	readOnly bool
}

type entryHdlr func(*propHdlr, *ContainerProperty, string) error
type valHdlr func(*ContainerProperty, string) error
type entryStringer func(*ContainerProperty) string

type valHdlrMap map[string]valHdlr

func (vhm valHdlrMap) keys() (keys []string) {
	keys = make([]string, 0, len(vhm))
	for key := range vhm {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return
}

func (vhm valHdlrMap) get(prop, value string) (valHdlr, error) {
	vh, found := vhm[strings.ToLower(strings.TrimSpace(value))]
	if !found {
		return nil, propError(
			"invalid choice %q for %s (valid: %s)",
			value, prop, strings.Join(vhm.keys(), ","))
	}
	return vh, nil
}

func (ph *propHdlr) execute(p *ContainerProperty, v string) error {
	if ph.nameHdlr == nil {
		if ph.valHdlrs == nil {
			// Should be caught by unit tests -- ensure that we don't ship with missing handlers.
			panic(fmt.Sprintf("%s: define a custom input handler or a map of valid inputs", p.Name))
		}

		vh, err := ph.valHdlrs.get(p.Name, v)
		if err != nil {
			return err
		}

		return vh(p, v)
	}

	return ph.nameHdlr(ph, p, v)
}

type propHdlrMap map[string]*propHdlr

func (phm propHdlrMap) keys() (keys []string) {
	keys = make([]string, 0, len(phm))
	for key := range phm {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return
}

func (phm propHdlrMap) get(prop string) (*propHdlr, error) {
	searchKey := strings.ToLower(strings.TrimSpace(prop))
	ph, found := phm[searchKey]
	if !found {
		// fall back to slow search for a deprecated key
		for _, ph := range phm {
			if slices.Contains(ph.deprecatedNames, searchKey) {
				return ph, nil
			}
		}
		return nil, propError("unknown property %q (valid: %s)", prop, strings.Join(phm.keys(), ","))
	}
	return ph, nil
}

// PropertyNames returns the names of all container properties known to
// the handler table. If excReadOnly is true, read-only properties are
// excluded.
func PropertyNames(excReadOnly bool) (names []string) {
	for _, key := range propHdlrs.keys() {
		if excReadOnly && propHdlrs[key].readOnly {
			continue
		}
		names = append(names, key)
	}
	return
}

// DeprecatedPropertyNames returns a map of deprecated property names to
// their current names.
func DeprecatedPropertyNames() map[string]string {
	names := make(map[string]string)
	for key, ph := range propHdlrs {
		for _, dn := range ph.deprecatedNames {
			names[dn] = key
		}
	}
	return names
}

func genSetValHdlr(v uint64) valHdlr {
	return func(p *ContainerProperty, _ string) error {
		return p.SetValue(v)
	}
}

func propInvalidValue(p *ContainerProperty) string {
	return fmt.Sprintf("property %q: invalid value 0x%x", p.Name, p.GetValue())
}

func propError(fs string, args ...any) error {
	return errors.Wrapf(InvalidInput, "properties: "+fs, args...)
}

func uintStringer(p *ContainerProperty) string {
	return fmt.Sprintf("%d", p.GetValue())
}

func boolStringer(p *ContainerProperty) string {
	switch p.GetValue() {
	case 0:
		return "false"
	case 1:
		return "true"
	default:
		return propInvalidValue(p)
	}
}

func humanSizeStringer(p *ContainerProperty) string {
	return humanize.IBytes(p.GetValue())
}

func strValStringer(p *ContainerProperty) string {
	str := p.GetString()
	if str == "" {
		return "not set"
	}
	return str
}
