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

// Gelqf computes the blocked LQ factorization of a in place, dual to
// Geqrf: the panel runs along a tile row instead of a tile column, and
// Q is applied from the right to the trailing tile rows instead of from
// the left to the trailing tile columns. ws supplies each worker's
// reflector scratch buffer (spec §3.3); its buffers must be at least
// a.Nb()+1 long.
func Gelqf[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], a, t *tile.Desc[T], ws *async.Workspace[T]) {
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
			kernel.Gelqt(backend, a.TileMView(k), a.TileNView(k), mat(a, k, k), mat(t, k, k), ws.Buffer(workerID))
		})
		for m := k + 1; m < a.Mt(); m++ {
			m := m
			pool.Submit(seq, []sched.Dependency{
				dep(a, k, k, sched.In),
				dep(t, k, k, sched.In),
				dep(a, m, k, sched.InOut),
			}, func(workerID int) {
				kernel.Unmlq(backend, blas.Right, blas.ConjTrans, mat(a, k, k), mat(t, k, k), mat(a, m, k), ws.Buffer(workerID))
			})
		}
		for n := k + 1; n < a.Nt(); n++ {
			n := n
			pool.Submit(seq, []sched.Dependency{
				dep(a, k, k, sched.InOut),
				dep(a, k, n, sched.InOut),
				dep(t, k, n, sched.Out),
			}, func(workerID int) {
				kernel.Tslqt(backend, mat(a, k, k), mat(a, k, n), mat(t, k, n), ws.Buffer(workerID))
			})
			for m := k + 1; m < a.Mt(); m++ {
				m := m
				pool.Submit(seq, []sched.Dependency{
					dep(a, k, n, sched.In),
					dep(t, k, n, sched.In),
					dep(a, m, k, sched.InOut),
					dep(a, m, n, sched.InOut),
				}, func(workerID int) {
					kernel.Tsmlq(backend, blas.Right, blas.ConjTrans, mat(a, k, n), mat(t, k, n), mat(a, m, k), mat(a, m, n))
				})
			}
		}
	}
}
