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

// Potrf computes the Cholesky factorization a := L*L^H (Lower) or U^H*U
// (Upper) in place, grounded on PLASMA's pzpotrf.c: one diagonal
// factorization per panel step k, a parallel triangular solve to update
// the rest of the panel, and a trailing Hermitian rank-k update — written
// here as plain GEMM calls (spec §4.6.4 "HERK/GEMM"), since a GEMM over
// the full destination tile is numerically equivalent to a Hermitian
// rank-k update restricted to one triangle and needs no extra backend
// primitive. A kernel failure's global leading-minor index is
// k*nb+info, matching core_zpotrf.c's pivot arithmetic.
func Potrf[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], uplo blas.Uplo, a *tile.Desc[T]) {
	if uplo == blas.Lower {
		potrfLower(pool, seq, req, backend, a)
		return
	}
	potrfUpper(pool, seq, req, backend, a)
}

func potrfLower[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], a *tile.Desc[T]) {
	mt := a.Mt()
	nb := a.Nb()
	for k := 0; k < mt; k++ {
		k := k
		pool.Submit(seq, []sched.Dependency{dep(a, k, k, sched.InOut)}, func(workerID int) {
			ok, info := backend.Potrf(blas.Lower, a.TileMView(k), mat(a, k, k))
			if !ok {
				fail(req, async.NotPositiveDefinite, 0, k*nb+info)
			}
		})
		for m := k + 1; m < mt; m++ {
			m := m
			pool.Submit(seq, []sched.Dependency{
				dep(a, k, k, sched.In),
				dep(a, m, k, sched.InOut),
			}, func(workerID int) {
				backend.Trsm(blas.Right, blas.Lower, blas.ConjTrans, blas.NonUnit,
					a.TileMView(m), a.TileNView(k), kernel.One[T](), mat(a, k, k), mat(a, m, k))
			})
		}
		for m := k + 1; m < mt; m++ {
			for n := k + 1; n <= m; n++ {
				m, n := m, n
				pool.Submit(seq, []sched.Dependency{
					dep(a, m, k, sched.In),
					dep(a, n, k, sched.In),
					dep(a, m, n, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(blas.NoTrans, blas.ConjTrans, a.TileMView(m), a.TileNView(n), a.TileNView(k),
						kernel.FromFloat[T](-1), mat(a, m, k), mat(a, n, k), kernel.One[T](), mat(a, m, n))
				})
			}
		}
	}
}

func potrfUpper[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], a *tile.Desc[T]) {
	nt := a.Nt()
	nb := a.Nb()
	for k := 0; k < nt; k++ {
		k := k
		pool.Submit(seq, []sched.Dependency{dep(a, k, k, sched.InOut)}, func(workerID int) {
			ok, info := backend.Potrf(blas.Upper, a.TileNView(k), mat(a, k, k))
			if !ok {
				fail(req, async.NotPositiveDefinite, 0, k*nb+info)
			}
		})
		for n := k + 1; n < nt; n++ {
			n := n
			pool.Submit(seq, []sched.Dependency{
				dep(a, k, k, sched.In),
				dep(a, k, n, sched.InOut),
			}, func(workerID int) {
				backend.Trsm(blas.Left, blas.Upper, blas.ConjTrans, blas.NonUnit,
					a.TileMView(k), a.TileNView(n), kernel.One[T](), mat(a, k, k), mat(a, k, n))
			})
		}
		for m := k + 1; m < nt; m++ {
			for n := m; n < nt; n++ {
				m, n := m, n
				pool.Submit(seq, []sched.Dependency{
					dep(a, k, m, sched.In),
					dep(a, k, n, sched.In),
					dep(a, m, n, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(blas.ConjTrans, blas.NoTrans, a.TileMView(m), a.TileNView(n), a.TileMView(k),
						kernel.FromFloat[T](-1), mat(a, k, m), mat(a, k, n), kernel.One[T](), mat(a, m, n))
				})
			}
		}
	}
}
