//
// (C) Copyright 2021-2023 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/daos-stack/contprops/lib/daos"
)

const (
	// MaxPropKeyLen is the maximum length of a property key.
	MaxPropKeyLen = 20
	// MaxPropValueLen is the maximum length of a property value.
	MaxPropValueLen = 128
)

var (
	_ flags.Unmarshaler = &SetPropertiesFlag{}
	_ flags.Completer   = &SetPropertiesFlag{}
	_ flags.Unmarshaler = &GetPropertiesFlag{}
	_ flags.Completer   = &GetPropertiesFlag{}
	_ flags.Unmarshaler = &ContainerPropertiesFlag{}
	_ flags.Completer   = &ContainerPropertiesFlag{}
)

func propError(fs string, args ...interface{}) *flags.Error {
	return &flags.Error{
		Message: fmt.Sprintf(fs, args...),
	}
}

type keyMap map[string]struct{}

func newKeyMap(keys ...string) keyMap {
	km := make(keyMap)
	for _, key := range keys {
		km[key] = struct{}{}
	}
	return km
}

func (m keyMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// CompletionMap maps property keys to their completable values.
type CompletionMap map[string][]string

func (cm CompletionMap) keys() []string {
	keys := make([]string, 0, len(cm))
	for key := range cm {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type propFlag struct {
	allowedKeys keyMap
	deprKeys    map[string]string
	completions CompletionMap
}

// DeprecatedKeyMap sets a map of deprecated keys to their replacements.
func (f *propFlag) DeprecatedKeyMap(deprKeys map[string]string) {
	f.deprKeys = deprKeys
}

// SetCompletions sets the map used for shell completion.
func (f *propFlag) SetCompletions(comps CompletionMap) {
	f.completions = comps
}

func (f *propFlag) isAllowed(key string) bool {
	// If the list of allowed keys is not set, default
	// to allowing all.
	if len(f.allowedKeys) == 0 {
		return true
	}

	_, allowed := f.allowedKeys[key]
	return allowed
}

func (f *propFlag) checkKey(key, kind string) (string, error) {
	if newKey, found := f.deprKeys[key]; found {
		key = newKey
	}
	if len(key) == 0 {
		return "", propError("key must not be empty")
	}
	if len(key) > MaxPropKeyLen {
		return "", propError("key too long (%d > %d)", len(key), MaxPropKeyLen)
	}
	if !f.isAllowed(key) {
		return "", propError("%q is not a %s property (valid: %s)", key, kind, strings.Join(f.allowedKeys.Keys(), ","))
	}
	return key, nil
}

func splitMatch(match string) (prefix, last string) {
	pairs := strings.Split(match, ",")
	if len(pairs) > 1 {
		prefix = strings.Join(pairs[:len(pairs)-1], ",") + ","
	}
	return prefix, pairs[len(pairs)-1]
}

// SetPropertiesFlag parses a comma-separated list of key:val
// property assignments.
type SetPropertiesFlag struct {
	propFlag
	ParsedProps map[string]string
}

// SettableKeys restricts the set of keys which may be assigned.
func (f *SetPropertiesFlag) SettableKeys(keys ...string) {
	f.allowedKeys = newKeyMap(keys...)
}

// IsSettable returns true if the key may be assigned.
func (f *SetPropertiesFlag) IsSettable(key string) bool {
	return f.isAllowed(key)
}

// UnmarshalFlag implements the go-flags.Unmarshaler interface.
func (f *SetPropertiesFlag) UnmarshalFlag(fv string) error {
	f.ParsedProps = make(map[string]string)

	if strings.TrimSpace(fv) == "" {
		return propError("empty property list")
	}

	for _, propStr := range strings.Split(fv, ",") {
		keyVal := strings.SplitN(propStr, ":", 2)
		if len(keyVal) != 2 {
			return propError("invalid property %q (must be key:val)", propStr)
		}

		key, err := f.checkKey(strings.TrimSpace(keyVal[0]), "settable")
		if err != nil {
			return err
		}
		value := strings.TrimSpace(keyVal[1])
		if len(value) == 0 {
			return propError("value must not be empty")
		}
		if len(value) > MaxPropValueLen {
			return propError("value too long (%d > %d)", len(value), MaxPropValueLen)
		}

		f.ParsedProps[key] = value
	}

	return nil
}

// Complete implements the go-flags.Completer interface.
func (f *SetPropertiesFlag) Complete(match string) (comps []flags.Completion) {
	prefix, match := splitMatch(match)

	for _, propKey := range f.completions.keys() {
		vals := f.completions[propKey]
		if !strings.Contains(match, ":") {
			if strings.HasPrefix(propKey, match) {
				comps = append(comps, flags.Completion{Item: prefix + propKey + ":"})
			}
			continue
		}

		sorted := append([]string{}, vals...)
		sort.Strings(sorted)
		for _, valName := range sorted {
			propVal := propKey + ":" + valName
			if strings.HasPrefix(propVal, match) {
				comps = append(comps, flags.Completion{Item: valName})
			}
		}
	}

	return
}

// GetPropertiesFlag parses a comma-separated list of property keys.
type GetPropertiesFlag struct {
	propFlag
	ParsedProps keyMap
}

// GettableKeys restricts the set of keys which may be requested.
func (f *GetPropertiesFlag) GettableKeys(keys ...string) {
	f.allowedKeys = newKeyMap(keys...)
}

// IsGettable returns true if the key may be requested.
func (f *GetPropertiesFlag) IsGettable(key string) bool {
	return f.isAllowed(key)
}

// Keys returns the sorted list of requested keys.
func (f *GetPropertiesFlag) Keys() []string {
	return f.ParsedProps.Keys()
}

// UnmarshalFlag implements the go-flags.Unmarshaler interface.
func (f *GetPropertiesFlag) UnmarshalFlag(fv string) error {
	f.ParsedProps = make(keyMap)

	for _, key := range strings.Split(fv, ",") {
		key = strings.TrimSpace(key)
		if strings.Contains(key, ":") {
			return propError("key %q cannot contain ':'", key)
		}
		key, err := f.checkKey(key, "gettable")
		if err != nil {
			return err
		}

		f.ParsedProps[key] = struct{}{}
	}

	return nil
}

// Complete implements the go-flags.Completer interface.
func (f *GetPropertiesFlag) Complete(match string) (comps []flags.Completion) {
	prefix, match := splitMatch(match)

	for _, propKey := range f.completions.keys() {
		if strings.HasPrefix(propKey, match) {
			comps = append(comps, flags.Completion{Item: prefix + propKey})
		}
	}

	return
}

// ContainerPropertiesFlag parses key:val assignments of container
// properties into a property list. Only settable properties are
// accepted and every value is validated by its property handler.
type ContainerPropertiesFlag struct {
	SetPropertiesFlag

	PropList *daos.ContainerPropertyList
}

func (f *ContainerPropertiesFlag) setup() {
	f.SettableKeys(daos.PropertyNames(true)...)
	f.DeprecatedKeyMap(daos.DeprecatedPropertyNames())

	comps := make(CompletionMap)
	if propList, err := daos.NewContainerPropertyList(); err == nil {
		for _, prop := range propList.Properties() {
			comps[prop.Name] = prop.SettableValues()
		}
	}
	f.SetCompletions(comps)
}

// Complete implements the go-flags.Completer interface.
func (f *ContainerPropertiesFlag) Complete(match string) []flags.Completion {
	f.setup()

	return f.SetPropertiesFlag.Complete(match)
}

// UnmarshalFlag implements the go-flags.Unmarshaler interface.
func (f *ContainerPropertiesFlag) UnmarshalFlag(fv string) error {
	f.setup()

	if err := f.SetPropertiesFlag.UnmarshalFlag(fv); err != nil {
		return err
	}

	propList := &daos.ContainerPropertyList{}
	for _, key := range newKeyMapFrom(f.ParsedProps).Keys() {
		if _, err := propList.SetByName(key, f.ParsedProps[key]); err != nil {
			return err
		}
	}
	f.PropList = propList

	return nil
}

func newKeyMapFrom(m map[string]string) keyMap {
	km := make(keyMap)
	for key := range m {
		km[key] = struct{}{}
	}
	return km
}
