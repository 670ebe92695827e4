//
// (C) Copyright 2020-2022 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package atm provides a collection of thread-safe types.
package atm

import "sync/atomic"

// Bool provides an atomic boolean value. The zero value is false.
type Bool struct {
	v atomic.Bool
}

// NewBool returns a Bool set to the provided starting value.
func NewBool(in bool) *Bool {
	b := new(Bool)
	b.v.Store(in)
	return b
}

// SetTrue sets the Bool to true.
func (b *Bool) SetTrue() {
	b.v.Store(true)
}

// SetFalse sets the Bool to false.
func (b *Bool) SetFalse() {
	b.v.Store(false)
}

// SetTrueCond sets the Bool to true if it's false.
// Returns a bool indicating whether or not the value changed.
func (b *Bool) SetTrueCond() bool {
	return b.v.CompareAndSwap(false, true)
}

// SetFalseCond sets the Bool to false if it's true.
// Returns a bool indicating whether or not the value changed.
func (b *Bool) SetFalseCond() bool {
	return b.v.CompareAndSwap(true, false)
}

// IsTrue returns true if the value is true.
func (b *Bool) IsTrue() bool {
	return b.v.Load()
}

// IsFalse returns true if the value is false.
func (b *Bool) IsFalse() bool {
	return !b.v.Load()
}

func (b *Bool) String() string {
	if b.IsTrue() {
		return "true"
	}
	return "false"
}
