//
// (C) Copyright 2020-2021 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package daos

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type (
	// ChecksumType selects the checksum algorithm of a container.
	ChecksumType uint32
	// CompressionType selects the compression algorithm of a container.
	CompressionType uint32
	// EncryptionType selects the cipher of a container.
	EncryptionType uint32
	// DedupMode selects the deduplication mode of a container.
	DedupMode uint32
	// ServerVerifyMode selects whether the server verifies checksums.
	ServerVerifyMode uint32
)

const (
	ChecksumOff ChecksumType = iota
	ChecksumCRC16
	ChecksumCRC32
	ChecksumCRC64
	ChecksumSHA1
	ChecksumSHA256
	ChecksumSHA512
	ChecksumAdler32
)

const (
	CompressionOff CompressionType = iota
	CompressionLZ4
	CompressionDeflate
	CompressionDeflate1
	CompressionDeflate2
	CompressionDeflate3
	CompressionDeflate4
)

const (
	EncryptionOff EncryptionType = iota
	EncryptionAesXTS128
	EncryptionAesXTS256
	EncryptionAesCBC128
	EncryptionAesCBC192
	EncryptionAesCBC256
	EncryptionAesGCM128
	EncryptionAesGCM256
)

const (
	DedupOff DedupMode = iota
	// DedupMemcmp verifies candidate duplicates by byte comparison.
	DedupMemcmp
	// DedupHash trusts the hash match alone.
	DedupHash
)

const (
	ServerVerifyOff ServerVerifyMode = iota
	ServerVerifyOn
)

const offName = "off"

// The tables below are the single point of truth for which selector
// codes name a real algorithm. Codes are not contiguous over time, so
// membership is tested explicitly and anything missing is disabled.
var (
	checksumNames = map[ChecksumType]string{
		ChecksumCRC16:   "crc16",
		ChecksumCRC32:   "crc32",
		ChecksumAdler32: "adler32",
		ChecksumCRC64:   "crc64",
		ChecksumSHA1:    "sha1",
		ChecksumSHA256:  "sha256",
		ChecksumSHA512:  "sha512",
	}

	compressionNames = map[CompressionType]string{
		CompressionLZ4:      "lz4",
		CompressionDeflate:  "deflate",
		CompressionDeflate1: "deflate1",
		CompressionDeflate2: "deflate2",
		CompressionDeflate3: "deflate3",
		CompressionDeflate4: "deflate4",
	}

	encryptionNames = map[EncryptionType]string{
		EncryptionAesXTS128: "aes-xts128",
		EncryptionAesXTS256: "aes-xts256",
		EncryptionAesCBC128: "aes-cbc128",
		EncryptionAesCBC192: "aes-cbc192",
		EncryptionAesCBC256: "aes-cbc256",
		EncryptionAesGCM128: "aes-gcm128",
		EncryptionAesGCM256: "aes-gcm256",
	}

	dedupNames = map[DedupMode]string{
		DedupOff:    offName,
		DedupMemcmp: "memcmp",
		DedupHash:   "hash",
	}

	serverVerifyNames = map[ServerVerifyMode]string{
		ServerVerifyOff: offName,
		ServerVerifyOn:  "on",
	}
)

// ChecksumTypeIsEnabled returns true if the value selects a checksum
// algorithm.
func ChecksumTypeIsEnabled(val ChecksumType) bool {
	_, found := checksumNames[val]
	return found
}

// ChecksumTypeIsValid returns true if the value selects a checksum
// algorithm or explicitly disables checksums.
func ChecksumTypeIsValid(val ChecksumType) bool {
	return ChecksumTypeIsEnabled(val) || val == ChecksumOff
}

// CompressionTypeIsEnabled returns true if the value selects a
// compression algorithm.
func CompressionTypeIsEnabled(val CompressionType) bool {
	_, found := compressionNames[val]
	return found
}

// EncryptionTypeIsEnabled returns true if the value selects a cipher.
func EncryptionTypeIsEnabled(val EncryptionType) bool {
	_, found := encryptionNames[val]
	return found
}

// DedupModeIsEnabled returns true for any mode other than off.
func DedupModeIsEnabled(mode DedupMode) bool {
	return mode != DedupOff
}

// DedupModeIsVerify returns true if deduplication verifies candidate
// blocks by byte comparison.
func DedupModeIsVerify(mode DedupMode) bool {
	return mode == DedupMemcmp
}

type selectorCode interface {
	~uint32
}

func selectorString[T selectorCode](val T, names map[T]string, isOff bool) string {
	if isOff {
		return offName
	}
	if name, found := names[val]; found {
		return name
	}
	return fmt.Sprintf("unknown (%d)", uint64(val))
}

func selectorFromString[T selectorCode](in string, names map[T]string, off T, kind string) (T, error) {
	key := strings.ToLower(strings.TrimSpace(in))
	if key == offName {
		return off, nil
	}
	for val, name := range names {
		if name == key {
			return val, nil
		}
	}

	valid := []string{offName}
	for _, name := range names {
		if name != offName {
			valid = append(valid, name)
		}
	}
	sort.Strings(valid)
	return off, errors.Wrapf(InvalidInput, "unknown %s type %q (valid: %s)", kind, in, strings.Join(valid, ","))
}

func (ct ChecksumType) String() string {
	return selectorString(ct, checksumNames, ct == ChecksumOff)
}

// FromString resolves a checksum algorithm name.
func (ct *ChecksumType) FromString(in string) (err error) {
	*ct, err = selectorFromString(in, checksumNames, ChecksumOff, "checksum")
	return
}

func (ct CompressionType) String() string {
	return selectorString(ct, compressionNames, ct == CompressionOff)
}

// FromString resolves a compression algorithm name.
func (ct *CompressionType) FromString(in string) (err error) {
	*ct, err = selectorFromString(in, compressionNames, CompressionOff, "compression")
	return
}

func (et EncryptionType) String() string {
	return selectorString(et, encryptionNames, et == EncryptionOff)
}

// FromString resolves a cipher name.
func (et *EncryptionType) FromString(in string) (err error) {
	*et, err = selectorFromString(in, encryptionNames, EncryptionOff, "encryption")
	return
}

func (dm DedupMode) String() string {
	return selectorString(dm, dedupNames, dm == DedupOff)
}

// FromString resolves a deduplication mode name.
func (dm *DedupMode) FromString(in string) (err error) {
	*dm, err = selectorFromString(in, dedupNames, DedupOff, "dedup")
	return
}

func (sv ServerVerifyMode) String() string {
	return selectorString(sv, serverVerifyNames, sv == ServerVerifyOff)
}

// FromString resolves a server verification mode name.
func (sv *ServerVerifyMode) FromString(in string) (err error) {
	*sv, err = selectorFromString(in, serverVerifyNames, ServerVerifyOff, "server verify")
	return
}
