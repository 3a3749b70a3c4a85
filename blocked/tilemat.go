// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blocked implements the tile-parallel blocked algorithms (spec
// §4.6): each routine walks the output descriptor's tile grid and submits
// one kernel.Backend call per tile-kernel invocation to a sched.Pool,
// declaring the tile regions it reads and writes. The DAG shape (which
// tiles each kernel call touches, and in what order tiles are visited) is
// grounded tile-for-tile on the PLASMA originals named in each file.
package blocked

import (
	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/sched"
	"github.com/tessera-hpc/tessera/tile"
)

// mat returns the kernel.Mat view of d's (tm, tn) tile, sized to the
// descriptor's current submatrix view (TileMView/TileNView), not the
// tile's full backing storage.
func mat[T kernel.Scalar](d *tile.Desc[T], tm, tn int) kernel.Mat[T] {
	return kernel.Mat[T]{
		Rows:   d.TileMView(tm),
		Cols:   d.TileNView(tn),
		Stride: d.TileMMain(tm),
		Data:   d.Tile(tm, tn),
	}
}

// dep builds a sched.Dependency for d's (tm, tn) tile under mode.
func dep[T kernel.Scalar](d *tile.Desc[T], tm, tn int, mode sched.Mode) sched.Dependency {
	return sched.Dep(d.Tile(tm, tn), mode)
}

// fail reports a kernel-reported failure (e.g. a BLAS error tessera has
// no way to detect ahead of submission) through req/seq, matching
// PLASMA's QUARK_sequence_flush-on-error path.
func fail(req *async.Request, kind async.ErrorKind, arg, info int) {
	req.Fail(kind, arg, info)
}
