//
// (C) Copyright 2019-2025 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package daos

import "fmt"

const (
	// PropEntryAllocedOID is the highest allocated OID.
	PropEntryAllocedOID = "alloc_oid"
	// PropEntryChecksum is the checksum property.
	PropEntryChecksum = "cksum"
	// PropEntryChecksumSize is the checksum size property.
	PropEntryChecksumSize = "cksum_size"
	// PropEntryCompression is the compression property.
	PropEntryCompression = "compression"
	// PropEntryDedupe is the dedupe property.
	PropEntryDedupe = "dedup"
	// PropEntryDedupeThreshold is the dedupe threshold property.
	PropEntryDedupeThreshold = "dedup_threshold"
	// PropEntryECCellSize is the EC cell size property.
	PropEntryECCellSize = "ec_cell_sz"
	// PropEntryECPerfDomainAff is the EC performance domain affinity property.
	PropEntryECPerfDomainAff = "ec_pda"
	// PropEntryEncryption is the encryption property.
	PropEntryEncryption = "encryption"
	// PropEntryGlobalVersion is the global version property.
	PropEntryGlobalVersion = "global_version"
	// PropEntryObjectVersion is the object layout version property.
	PropEntryObjectVersion = "obj_version"
	// PropEntryGroup is the group property.
	PropEntryGroup = "group"
	// PropEntryLabel is the label property.
	PropEntryLabel = "label"
	// PropEntryLayoutType is the layout property.
	PropEntryLayoutType = "layout_type"
	// PropEntryLayoutVersion is the layout version property.
	PropEntryLayoutVersion = "layout_version"
	// PropEntryOwner is the owner property.
	PropEntryOwner = "owner"
	// PropEntryRedunFactor is the redundancy factor property.
	PropEntryRedunFactor = "rd_fac"
	// PropEntryRedunLevel is the redundancy level property.
	PropEntryRedunLevel = "rd_lvl"
	// PropEntryRedunPerfDomainAff is the redundancy performance domain affinity property.
	PropEntryRedunPerfDomainAff = "rp_pda"
	// PropEntrySnapshotMax is the snapshot max property.
	PropEntrySnapshotMax = "max_snapshot"
	// PropEntryServerChecksum is the server checksum property.
	PropEntryServerChecksum = "srv_cksum"
	// PropEntryStatus is the status property.
	PropEntryStatus = "status"
	// PropEntryACL is the access control list property.
	PropEntryACL = "acl"
	// PropEntryRootOIDs is the root object IDs property.
	PropEntryRootOIDs = "root_oids"
	// PropEntryScrubDisabled is the scrubber disabled property.
	PropEntryScrubDisabled = "scrubber_disabled"
	// PropEntryPerfDomain is the performance domain property.
	PropEntryPerfDomain = "perf_domain"
)

// ContainerPropType defines a native Go type for the container property
// types defined in the DAOS API. The numbering is part of the on-wire
// contract and new types must only be appended.
type ContainerPropType uint32

const (
	containerPropMin ContainerPropType = 0x1000 + iota
	ContainerPropLabel
	ContainerPropLayoutType
	ContainerPropLayoutVersion
	ContainerPropChecksumEnabled
	ContainerPropChecksumSize
	ContainerPropChecksumSrvVrfy
	ContainerPropRedunFactor
	ContainerPropRedunLevel
	ContainerPropMaxSnapshots
	ContainerPropACL
	ContainerPropCompression
	ContainerPropEncryption
	ContainerPropOwner
	ContainerPropGroup
	ContainerPropDedupEnabled
	ContainerPropDedupThreshold
	ContainerPropRootObjects
	ContainerPropStatus
	ContainerPropHighestOid
	ContainerPropEcCellSize
	ContainerPropEcPerfDom
	ContainerPropEcPerfDomAff
	ContainerPropGlobalVersion
	ContainerPropScubberDisabled
	ContainerPropObjectVersion
	ContainerPropPerfDomain
	containerPropMax
)

var contPropNames = map[ContainerPropType]string{
	ContainerPropLabel:           PropEntryLabel,
	ContainerPropLayoutType:      PropEntryLayoutType,
	ContainerPropLayoutVersion:   PropEntryLayoutVersion,
	ContainerPropChecksumEnabled: PropEntryChecksum,
	ContainerPropChecksumSize:    PropEntryChecksumSize,
	ContainerPropChecksumSrvVrfy: PropEntryServerChecksum,
	ContainerPropRedunFactor:     PropEntryRedunFactor,
	ContainerPropRedunLevel:      PropEntryRedunLevel,
	ContainerPropMaxSnapshots:    PropEntrySnapshotMax,
	ContainerPropACL:             PropEntryACL,
	ContainerPropCompression:     PropEntryCompression,
	ContainerPropEncryption:      PropEntryEncryption,
	ContainerPropOwner:           PropEntryOwner,
	ContainerPropGroup:           PropEntryGroup,
	ContainerPropDedupEnabled:    PropEntryDedupe,
	ContainerPropDedupThreshold:  PropEntryDedupeThreshold,
	ContainerPropRootObjects:     PropEntryRootOIDs,
	ContainerPropStatus:          PropEntryStatus,
	ContainerPropHighestOid:      PropEntryAllocedOID,
	ContainerPropEcCellSize:      PropEntryECCellSize,
	ContainerPropEcPerfDom:       PropEntryECPerfDomainAff,
	ContainerPropEcPerfDomAff:    PropEntryRedunPerfDomainAff,
	ContainerPropGlobalVersion:   PropEntryGlobalVersion,
	ContainerPropScubberDisabled: PropEntryScrubDisabled,
	ContainerPropObjectVersion:   PropEntryObjectVersion,
	ContainerPropPerfDomain:      PropEntryPerfDomain,
}

// IsValid returns true if the property type falls within the range
// of defined container property types.
func (cpt ContainerPropType) IsValid() bool {
	return cpt > containerPropMin && cpt < containerPropMax
}

func (cpt ContainerPropType) String() string {
	if name, found := contPropNames[cpt]; found {
		return name
	}
	return fmt.Sprintf("unknown container property type %d", cpt)
}

// FromString attempts to resolve the supplied string into a container property
// type.
func (cpt *ContainerPropType) FromString(in string) error {
	// NB: Every container property which may be named by a user must
	// have an entry in the handler map in order to be resolvable.
	ph, err := propHdlrs.get(in)
	if err != nil {
		return err
	}

	*cpt = ph.propType
	return nil
}
