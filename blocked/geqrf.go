// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocked

import (
	"gonum.org/v1/gonum/blas"

	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/sched"
	"github.com/tessera-hpc/tessera/tile"
)

// Geqrf computes the blocked QR factorization of a in place, with the
// per-tile reflector scales recorded in t (same tile grid as a, one
// tau column per (row, col) pair a panel step touches). Grounded on
// PLASMA's pzgeqrf.c: step 1 factors the panel's diagonal tile, step 2
// applies its Q to the rest of that tile row, step 3 eliminates every
// tile below the diagonal against it (a serial cascade down the panel
// column), and step 4 applies each elimination's reflectors to the rest
// of its tile row — a += the standard left-looking tile QR DAG. As in
// PLASMA's own tile routines, this assumes square (mb == nb) tiles. ws
// supplies each worker's reflector scratch buffer (spec §3.3); its
// buffers must be at least a.Mb()+1 long.
func Geqrf[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], a, t *tile.Desc[T], ws *async.Workspace[T]) {
	kt := a.Mt()
	if a.Nt() < kt {
		kt = a.Nt()
	}
	for k := 0; k < kt; k++ {
		k := k
		pool.Submit(seq, []sched.Dependency{
			dep(a, k, k, sched.InOut),
			dep(t, k, k, sched.Out),
		}, func(workerID int) {
			kernel.Geqrt(backend, a.TileMView(k), a.TileNView(k), mat(a, k, k), mat(t, k, k), ws.Buffer(workerID))
		})
		for n := k + 1; n < a.Nt(); n++ {
			n := n
			pool.Submit(seq, []sched.Dependency{
				dep(a, k, k, sched.In),
				dep(t, k, k, sched.In),
				dep(a, k, n, sched.InOut),
			}, func(workerID int) {
				kernel.Unmqr(backend, blas.Left, blas.ConjTrans, mat(a, k, k), mat(t, k, k), mat(a, k, n), ws.Buffer(workerID))
			})
		}
		for m := k + 1; m < a.Mt(); m++ {
			m := m
			pool.Submit(seq, []sched.Dependency{
				dep(a, k, k, sched.InOut),
				dep(a, m, k, sched.InOut),
				dep(t, m, k, sched.Out),
			}, func(workerID int) {
				kernel.Tsqrt(backend, mat(a, k, k), mat(a, m, k), mat(t, m, k), ws.Buffer(workerID))
			})
			for n := k + 1; n < a.Nt(); n++ {
				n := n
				pool.Submit(seq, []sched.Dependency{
					dep(a, m, k, sched.In),
					dep(t, m, k, sched.In),
					dep(a, k, n, sched.InOut),
					dep(a, m, n, sched.InOut),
				}, func(workerID int) {
					kernel.Tsmqr(backend, blas.Left, blas.ConjTrans, mat(a, m, k), mat(t, m, k), mat(a, k, n), mat(a, m, n))
				})
			}
		}
	}
}
