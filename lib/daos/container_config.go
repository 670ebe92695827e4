//
// (C) Copyright 2020-2021 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package daos

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/logging"
)

// contPropDefaults holds the value used for each resolvable container
// property when the property list has no entry for it. Adding a new
// resolvable property requires a row here.
var contPropDefaults = map[ContainerPropType]uint64{
	ContainerPropChecksumEnabled: uint64(ChecksumOff),
	ContainerPropChecksumSize:    0,
	ContainerPropChecksumSrvVrfy: uint64(ServerVerifyOff),
	ContainerPropDedupEnabled:    uint64(DedupOff),
	ContainerPropDedupThreshold:  0,
	ContainerPropCompression:     uint64(CompressionOff),
	ContainerPropEncryption:      uint64(EncryptionOff),
	ContainerPropRedunFactor:     uint64(RedunFactor1),
	ContainerPropRedunLevel:      uint64(RedunLevelNode),
}

// PropDefault returns the value a container property resolves to when
// it is absent from the property list.
func PropDefault(propType ContainerPropType) (uint64, bool) {
	val, found := contPropDefaults[propType]
	return val, found
}

// lookupIsNil reports whether the lookup is absent, including a typed
// nil pointer held in the interface.
func lookupIsNil(props PropertyLookup) bool {
	if props == nil {
		return true
	}
	v := reflect.ValueOf(props)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func propValueOrDefault(props PropertyLookup, propType ContainerPropType) uint64 {
	if !lookupIsNil(props) {
		if entry, found := props.LookupEntry(propType); found {
			return entry.Value
		}
	}
	return contPropDefaults[propType]
}

// u32 saturates rather than truncates, so that an oversized selector
// stays unrecognized instead of wrapping onto a defined code.
func u32(val uint64) uint32 {
	if val > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(val)
}

// PropChecksumType returns the container's checksum algorithm selector.
func PropChecksumType(props PropertyLookup) ChecksumType {
	return ChecksumType(u32(propValueOrDefault(props, ContainerPropChecksumEnabled)))
}

// PropChecksumChunkSize returns the checksum chunk size in bytes.
func PropChecksumChunkSize(props PropertyLookup) uint32 {
	return u32(propValueOrDefault(props, ContainerPropChecksumSize))
}

// PropChecksumServerVerify returns true if the server verifies checksums.
func PropChecksumServerVerify(props PropertyLookup) bool {
	return ServerVerifyMode(u32(propValueOrDefault(props, ContainerPropChecksumSrvVrfy))) == ServerVerifyOn
}

// PropDedupMode returns the container's deduplication mode.
func PropDedupMode(props PropertyLookup) DedupMode {
	return DedupMode(u32(propValueOrDefault(props, ContainerPropDedupEnabled)))
}

// PropDedupEnabled returns true if deduplication is enabled.
func PropDedupEnabled(props PropertyLookup) bool {
	return DedupModeIsEnabled(PropDedupMode(props))
}

// PropDedupVerify returns true if deduplication verifies by byte comparison.
func PropDedupVerify(props PropertyLookup) bool {
	return DedupModeIsVerify(PropDedupMode(props))
}

// PropDedupThreshold returns the deduplication size threshold in bytes.
func PropDedupThreshold(props PropertyLookup) uint32 {
	return u32(propValueOrDefault(props, ContainerPropDedupThreshold))
}

// PropCompressionType returns the container's compression algorithm selector.
func PropCompressionType(props PropertyLookup) CompressionType {
	return CompressionType(u32(propValueOrDefault(props, ContainerPropCompression)))
}

// PropEncryptionType returns the container's cipher selector.
func PropEncryptionType(props PropertyLookup) EncryptionType {
	return EncryptionType(u32(propValueOrDefault(props, ContainerPropEncryption)))
}

// PropEncryptionEnabled returns true if the cipher selector names a
// known cipher. An unrecognized non-off code counts as disabled.
func PropEncryptionEnabled(props PropertyLookup) bool {
	return EncryptionTypeIsEnabled(PropEncryptionType(props))
}

// PropRedunFactor returns the container's redundancy factor.
func PropRedunFactor(props PropertyLookup) RedunFactor {
	return RedunFactor(u32(propValueOrDefault(props, ContainerPropRedunFactor)))
}

// PropRedunLevel returns the container's redundancy level.
func PropRedunLevel(props PropertyLookup) RedunLevel {
	return RedunLevel(u32(propValueOrDefault(props, ContainerPropRedunLevel)))
}

// ContainerProps is the resolved, fully-defaulted view of the storage
// properties of a container. It is a snapshot; re-resolve after the
// property list changes.
type ContainerProps struct {
	DedupEnabled       bool            `json:"dedup_enabled"`
	DedupVerify        bool            `json:"dedup_verify"`
	DedupThreshold     uint32          `json:"dedup_threshold"`
	ChecksumEnabled    bool            `json:"checksum_enabled"`
	ChecksumType       ChecksumType    `json:"checksum_type"`
	ServerVerify       bool            `json:"server_verify"`
	ChunkSize          uint32          `json:"chunk_size"`
	CompressionEnabled bool            `json:"compression_enabled"`
	CompressionType    CompressionType `json:"compression_type"`
	EncryptionEnabled  bool            `json:"encryption_enabled"`
	EncryptionType     EncryptionType  `json:"encryption_type"`
	RedunFactor        RedunFactor     `json:"redun_fac"`
	RedunLevel         RedunLevel      `json:"redun_lvl"`
}

// ContainerPropsFromList fills out from the supplied property list.
// A nil list or a nil destination leaves out untouched.
func ContainerPropsFromList(props PropertyLookup, out *ContainerProps) {
	if lookupIsNil(props) || out == nil {
		logging.Debugf("container props: nothing to resolve (props: %t, out: %t)", !lookupIsNil(props), out != nil)
		return
	}

	fillContainerProps(props, out)
}

func fillContainerProps(props PropertyLookup, out *ContainerProps) {
	out.DedupEnabled = PropDedupEnabled(props)
	out.DedupThreshold = PropDedupThreshold(props)
	out.DedupVerify = PropDedupVerify(props)

	out.ServerVerify = PropChecksumServerVerify(props)
	out.ChecksumType = PropChecksumType(props)
	out.ChecksumEnabled = ChecksumTypeIsEnabled(out.ChecksumType)
	out.ChunkSize = PropChecksumChunkSize(props)

	out.CompressionType = PropCompressionType(props)
	out.CompressionEnabled = CompressionTypeIsEnabled(out.CompressionType)

	out.EncryptionType = PropEncryptionType(props)
	out.EncryptionEnabled = EncryptionTypeIsEnabled(out.EncryptionType)

	out.RedunFactor = PropRedunFactor(props)
	out.RedunLevel = PropRedunLevel(props)
}

// ResolveContainerProps returns the resolved properties for the supplied
// property list. A nil list resolves to all defaults.
func ResolveContainerProps(props PropertyLookup) ContainerProps {
	var cp ContainerProps
	fillContainerProps(props, &cp)
	return cp
}

// AllowedFailures returns the number of simultaneous failures the
// container's redundancy factor tolerates.
func (cp ContainerProps) AllowedFailures() (int, error) {
	return cp.RedunFactor.AllowedFailures()
}

// HashKey returns a fingerprint of the resolved properties. Two
// resolutions of an unchanged property list hash identically.
func (cp ContainerProps) HashKey() (uint64, error) {
	key, err := hashstructure.Hash(cp, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to hash container props")
	}
	return key, nil
}

func (cp ContainerProps) MarshalJSON() ([]byte, error) {
	type toJSON ContainerProps
	out := struct {
		toJSON
		ChecksumType    string `json:"checksum_type"`
		CompressionType string `json:"compression_type"`
		EncryptionType  string `json:"encryption_type"`
		RedunFactor     uint32 `json:"redun_fac"`
		RedunLevel      string `json:"redun_lvl"`
		AllowedFailures *int   `json:"allowed_failures,omitempty"`
	}{
		toJSON:          toJSON(cp),
		ChecksumType:    cp.ChecksumType.String(),
		CompressionType: cp.CompressionType.String(),
		EncryptionType:  cp.EncryptionType.String(),
		RedunFactor:     uint32(cp.RedunFactor),
		RedunLevel:      cp.RedunLevel.String(),
	}
	if af, err := cp.AllowedFailures(); err == nil {
		out.AllowedFailures = &af
	}

	return json.Marshal(out)
}
