//
// (C) Copyright 2024 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/daos-stack/contprops/lib/daos"
	"github.com/daos-stack/contprops/lib/txtfmt"
)

// ContainerResolution pairs a container identity with its resolved
// properties.
type ContainerResolution struct {
	UUID  uuid.UUID           `json:"uuid"`
	Label string              `json:"label"`
	Props daos.ContainerProps `json:"props"`
}

func enabledString(enabled bool, detail string) string {
	if !enabled {
		return "off"
	}
	if detail == "" {
		return "on"
	}
	return detail
}

func sizeString(size uint32) string {
	return humanize.IBytes(uint64(size))
}

func allowedFailuresString(cp daos.ContainerProps) string {
	af, err := cp.AllowedFailures()
	if err != nil {
		return "invalid"
	}
	return fmt.Sprintf("%d", af)
}

func dedupString(cp daos.ContainerProps) string {
	switch {
	case !cp.DedupEnabled:
		return "off"
	case cp.DedupVerify:
		return daos.DedupMemcmp.String()
	default:
		return daos.DedupHash.String()
	}
}

// PrintContainerPropsTable writes a table of resolved container
// properties, one row per container.
func PrintContainerPropsTable(out io.Writer, containers []*ContainerResolution) error {
	if len(containers) == 0 {
		_, err := fmt.Fprintln(out, "No containers found.")
		return err
	}

	uuidTitle := "UUID"
	labelTitle := "Label"
	csumTitle := "Checksum"
	chunkTitle := "Chunk Size"
	verifyTitle := "Srv Verify"
	dedupTitle := "Dedup"
	thresholdTitle := "Dedup Threshold"
	compressTitle := "Compression"
	encryptTitle := "Encryption"
	rfTitle := "RF"
	afTitle := "Allowed Failures"

	formatter := txtfmt.NewTableFormatter(uuidTitle, labelTitle, csumTitle, chunkTitle,
		verifyTitle, dedupTitle, thresholdTitle, compressTitle, encryptTitle, rfTitle, afTitle)

	var table []txtfmt.TableRow
	for _, c := range containers {
		cp := c.Props
		table = append(table, txtfmt.TableRow{
			uuidTitle:      c.UUID.String(),
			labelTitle:     c.Label,
			csumTitle:      enabledString(cp.ChecksumEnabled, cp.ChecksumType.String()),
			chunkTitle:     sizeString(cp.ChunkSize),
			verifyTitle:    enabledString(cp.ServerVerify, ""),
			dedupTitle:     dedupString(cp),
			thresholdTitle: sizeString(cp.DedupThreshold),
			compressTitle:  enabledString(cp.CompressionEnabled, cp.CompressionType.String()),
			encryptTitle:   enabledString(cp.EncryptionEnabled, cp.EncryptionType.String()),
			rfTitle:        fmt.Sprintf("%d", uint32(cp.RedunFactor)),
			afTitle:        allowedFailuresString(cp),
		})
	}

	_, err := fmt.Fprint(out, formatter.Format(table))
	return err
}

// PrintContainerProps writes the resolved properties of a single
// container.
func PrintContainerProps(out io.Writer, title string, cp daos.ContainerProps) error {
	rows := []txtfmt.TableRow{
		{"Checksum": enabledString(cp.ChecksumEnabled, cp.ChecksumType.String())},
		{"Checksum Chunk Size": sizeString(cp.ChunkSize)},
		{"Server Verify": enabledString(cp.ServerVerify, "")},
		{"Deduplication": dedupString(cp)},
		{"Dedup Threshold": sizeString(cp.DedupThreshold)},
		{"Compression": enabledString(cp.CompressionEnabled, cp.CompressionType.String())},
		{"Encryption": enabledString(cp.EncryptionEnabled, cp.EncryptionType.String())},
		{"Redundancy Factor": cp.RedunFactor.String()},
		{"Redundancy Level": cp.RedunLevel.String()},
		{"Allowed Failures": allowedFailuresString(cp)},
	}

	_, err := fmt.Fprint(out, txtfmt.FormatEntity(title, rows))
	return err
}

// PrintPropertyInfo writes a table describing the supplied container
// properties.
func PrintPropertyInfo(out io.Writer, props []*daos.ContainerProperty) error {
	nameTitle := "Name"
	descTitle := "Description"
	valuesTitle := "Values"
	roTitle := "Read-only"

	formatter := txtfmt.NewTableFormatter(nameTitle, descTitle, valuesTitle, roTitle)
	formatter.SetMissingValue("")

	var table []txtfmt.TableRow
	for _, prop := range props {
		row := txtfmt.TableRow{
			nameTitle: prop.Name,
			descTitle: prop.Description,
			roTitle:   fmt.Sprintf("%t", prop.IsReadOnly()),
		}
		if vals := prop.SettableValues(); len(vals) > 0 {
			row[valuesTitle] = strings.Join(vals, ",")
		}
		table = append(table, row)
	}

	_, err := fmt.Fprint(out, formatter.Format(table))
	return err
}
