// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sched implements the dependency-aware tile-kernel task
// scheduler binding (spec §4.5): a fixed worker pool where a submission
// declares the memory regions it touches and their access mode, and the
// pool orders non-"in" accesses to equal regions; the submitting
// goroutine blocks only while the work queue is full.
package sched

import "unsafe"

// Mode is how a submitted task accesses a declared Region.
type Mode int

const (
	// In means the task only reads the region.
	In Mode = iota
	// Out means the task only writes the region.
	Out
	// InOut means the task both reads and writes the region.
	InOut
)

// Region identifies a memory range by the address of its first element
// and an element range [lo, hi) from there, mirroring the (base pointer,
// byte range) dependency key of spec Design Notes §9. Pool matches
// regions by exact equality of all three fields.
type Region struct {
	base     unsafe.Pointer
	lo, hi   int
}

// RegionOf returns the Region spanning all of s: the address of s[0] and
// [0, len(s)). Two slices give equal regions exactly when they start at
// the same element and have the same length, as repeated
// tile.Desc.Tile calls for one tile do.
func RegionOf[T any](s []T) Region {
	if len(s) == 0 {
		return Region{}
	}
	return Region{base: unsafe.Pointer(&s[0]), lo: 0, hi: len(s)}
}

// overlaps reports whether a and b denote intersecting memory.
func (a Region) overlaps(b Region) bool {
	if a.base != b.base {
		return false
	}
	return a.lo < b.hi && b.lo < a.hi
}

// Dependency pairs a Region with the access Mode a task declares on it.
type Dependency struct {
	Region Region
	Mode   Mode
}

// Dep is a convenience constructor for a Dependency over a whole slice.
func Dep[T any](s []T, mode Mode) Dependency {
	return Dependency{Region: RegionOf(s), Mode: mode}
}
