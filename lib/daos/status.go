//
// (C) Copyright 2019-2022 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package daos

import "fmt"

// Status is a status code in the set defined by the DAOS data plane.
type Status int32

type statusDesc struct {
	name string
	desc string
}

// statusDescs mirrors the subset of daos_errno.h used by the
// property code, so that errors render the same way without
// linking against libgurt.
var statusDescs = map[Status]statusDesc{
	Success:        {"DER_SUCCESS", "Success"},
	NoPermission:   {"DER_NO_PERM", "Operation not permitted"},
	NoHandle:       {"DER_NO_HDL", "Invalid handle"},
	InvalidInput:   {"DER_INVAL", "Invalid parameters"},
	Exists:         {"DER_EXIST", "Entity already exists"},
	Nonexistent:    {"DER_NONEXIST", "The specified entity does not exist"},
	NoSpace:        {"DER_NOSPACE", "No space on storage target"},
	Already:        {"DER_ALREADY", "Operation already performed"},
	NoMemory:       {"DER_NOMEM", "Out of memory"},
	NotImpl:        {"DER_NOSYS", "Function not implemented"},
	BufTooSmall:    {"DER_TRUNC", "Buffer too short"},
	StructTooSmall: {"DER_OVERFLOW", "Data too long for defined data type or buffer size"},
	Mismatch:       {"DER_MISMATCH", "Version mismatch"},
	NotApplicable:  {"DER_NOTAPPLICABLE", "Operation not applicable"},
	UnknownType:    {"DER_NOTYPE", "Unknown object type"},
	MiscError:      {"DER_MISC", "Miscellaneous error"},
}

func (ds Status) Error() string {
	sd, found := statusDescs[ds]
	if !found {
		sd = statusDesc{"DER_UNKNOWN", fmt.Sprintf("Unknown error code %d", ds)}
	}
	return fmt.Sprintf("%s(%d): %s", sd.name, ds, sd.desc)
}

func (ds Status) Int32() int32 {
	return int32(ds)
}

const (
	// Success indicates no error
	Success Status = 0
	// NoPermission indicates that access to a resource was denied
	NoPermission Status = -1001
	// NoHandle indicates the handle was invalid
	NoHandle Status = -1002
	// InvalidInput indicates an input was invalid
	InvalidInput Status = -1003
	// Exists indicates the entity already exists
	Exists Status = -1004
	// Nonexistent indicates the entity does not exist
	Nonexistent Status = -1005
	// NoSpace indicates there was not enough storage space
	NoSpace Status = -1007
	// Already indicates the operation was already done
	Already Status = -1008
	// NoMemory indicates the system ran out of memory
	NoMemory Status = -1009
	// NotImpl indicates the requested functionality is not implemented
	NotImpl Status = -1010
	// BufTooSmall indicates a provided buffer was too small
	BufTooSmall Status = -1016
	// StructTooSmall indicates data could not fit in the provided structure
	StructTooSmall Status = -1017
	// MiscError indicates an unspecified error
	MiscError Status = -1025
	// Mismatch indicates a version mismatch
	Mismatch Status = -1031
)

const (
	// UnknownType indicates that the entity type was unknown
	UnknownType Status = -2004
	// NotApplicable indicates that the operation is not applicable
	NotApplicable Status = -2019
)
