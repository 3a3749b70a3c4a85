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

// Geqrs solves the minimum-norm / least-squares problem min‖a*x-b‖ given
// a, t already factored by Geqrf: it applies Q^H to b tile by tile
// (walking the same panel/trailing DAG Geqrf used to build the
// factorization, but targeting b's tiles instead of a's), then solves
// r*x = y by a triangular solve restricted to a's square leading block
// (spec §4.6.6). ws supplies each worker's reflector scratch buffer,
// reused from the Geqrf call that produced a, t.
func Geqrs[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], a, t, b *tile.Desc[T], ws *async.Workspace[T]) {
	kt := a.Mt()
	if a.Nt() < kt {
		kt = a.Nt()
	}
	for k := 0; k < kt; k++ {
		k := k
		for j := 0; j < b.Nt(); j++ {
			j := j
			pool.Submit(seq, []sched.Dependency{
				dep(a, k, k, sched.In),
				dep(t, k, k, sched.In),
				dep(b, k, j, sched.InOut),
			}, func(workerID int) {
				kernel.Unmqr(backend, blas.Left, blas.ConjTrans, mat(a, k, k), mat(t, k, k), mat(b, k, j), ws.Buffer(workerID))
			})
		}
		for m := k + 1; m < a.Mt(); m++ {
			m := m
			for j := 0; j < b.Nt(); j++ {
				j := j
				pool.Submit(seq, []sched.Dependency{
					dep(a, m, k, sched.In),
					dep(t, m, k, sched.In),
					dep(b, k, j, sched.InOut),
					dep(b, m, j, sched.InOut),
				}, func(workerID int) {
					kernel.Tsmqr(backend, blas.Left, blas.ConjTrans, mat(a, m, k), mat(t, m, k), mat(b, k, j), mat(b, m, j))
				})
			}
		}
	}

	r, err := a.View(0, 0, a.N(), a.N())
	if err != nil {
		fail(req, async.IllegalValue, 0, 0)
		return
	}
	y, err := b.View(0, 0, a.N(), b.N())
	if err != nil {
		fail(req, async.IllegalValue, 0, 0)
		return
	}
	Trsm(pool, seq, req, backend, blas.Left, blas.Upper, blas.NoTrans, blas.NonUnit, kernel.One[T](), r, y)
}
