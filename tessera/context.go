// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tessera is the public async entry-point surface (spec §6, C7):
// one function per routine, each validating its arguments, translating
// the caller's column-major matrices into tile form, running the
// blocked algorithm's DAG, translating the result back, and returning
// the aggregate sequence status.
package tessera

import (
	"runtime"

	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/sched"
)

// Context holds the runtime configuration every entry point opens its
// parallel region under: the tile size and worker count. The zero value
// is not usable; use NewContext.
type Context struct {
	// Nb is the nominal tile dimension (mb == nb for every routine this
	// package exposes; see DESIGN.md).
	Nb int
	// Ib is the inner blocking size panel kernels would partition their
	// workspace by; kept for API fidelity with the originating system
	// even though tessera's panel kernels (see kernel.Geqrt and siblings)
	// do not need a separate compact-WY workspace.
	Ib int
	// NumWorkers is the worker pool size; <= 0 means runtime.GOMAXPROCS(0).
	NumWorkers int
}

// NewContext returns a Context with the given tile size and worker
// count (<=0 for GOMAXPROCS).
func NewContext(nb, ib, numWorkers int) *Context {
	return &Context{Nb: nb, Ib: ib, NumWorkers: numWorkers}
}

// workers resolves NumWorkers to a concrete pool size.
func (c *Context) workers() int {
	if c.NumWorkers > 0 {
		return c.NumWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// open starts a fresh worker pool and sequence/request pair for one
// entry-point call — the "parallel region" spec §6 describes.
func (c *Context) open() (*sched.Pool, *async.Sequence, *async.Request) {
	pool := sched.NewPool(c.workers())
	seq := async.NewSequence()
	req := async.NewRequest(seq)
	return pool, seq, req
}

// join waits for every submitted task, stops the pool, and returns the
// sequence's final status — the implicit join every entry point ends
// with (spec §6).
func join(pool *sched.Pool, seq *async.Sequence) error {
	pool.Wait()
	pool.Close()
	return seq.Status()
}
