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

// Syr2k computes c := alpha*op(a)*op(b)^H + conj(alpha)*op(b)*op(a)^H +
// beta*c over one triangle of c, grounded on PLASMA's zsyr2k.c: diagonal
// tiles go through the backend's fused Hermitian rank-2k kernel;
// off-diagonal tiles decompose into the two GEMM halves of the update,
// each accumulating into the shared c(m,n) tile.
func Syr2k[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], uplo blas.Uplo, trans blas.Transpose, alpha T, a, b *tile.Desc[T], beta float64, c *tile.Desc[T]) {
	kt := a.Nt()
	if trans != blas.NoTrans {
		kt = a.Mt()
	}
	betaT := kernel.FromFloat[T](beta)
	conjAlpha := kernel.ConjOf(alpha)

	for m := 0; m < c.Mt(); m++ {
		nLo, nHi := 0, m
		if uplo == blas.Upper {
			nLo, nHi = m, c.Nt()-1
		}
		for n := nLo; n <= nHi; n++ {
			m, n := m, n
			if m == n {
				for tk := 0; tk < kt; tk++ {
					am, an := m, tk
					if trans != blas.NoTrans {
						am, an = tk, m
					}
					step := beta
					if tk > 0 {
						step = 1
					}
					pool.Submit(seq, []sched.Dependency{
						dep(a, am, an, sched.In),
						dep(b, am, an, sched.In),
						dep(c, m, m, sched.InOut),
					}, func(workerID int) {
						backend.Syr2k(uplo, trans, c.TileMView(m), reductionExtent(a, trans, tk),
							alpha, mat(a, am, an), mat(b, am, an), step, mat(c, m, m))
					})
				}
				continue
			}
			first := true
			for tk := 0; tk < kt; tk++ {
				am, an := m, tk
				bm, bn := n, tk
				if trans != blas.NoTrans {
					am, an = tk, m
					bm, bn = tk, n
				}
				transB := blas.ConjTrans
				if trans != blas.NoTrans {
					transB = blas.NoTrans
				}
				step1 := betaT
				if !first {
					step1 = kernel.One[T]()
				}
				pool.Submit(seq, []sched.Dependency{
					dep(a, am, an, sched.In),
					dep(b, bm, bn, sched.In),
					dep(c, m, n, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(trans, transB, c.TileMView(m), c.TileNView(n), reductionExtent(a, trans, tk),
						alpha, mat(a, am, an), mat(b, bm, bn), step1, mat(c, m, n))
				})
				pool.Submit(seq, []sched.Dependency{
					dep(b, am, an, sched.In),
					dep(a, bm, bn, sched.In),
					dep(c, m, n, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(trans, transB, c.TileMView(m), c.TileNView(n), reductionExtent(a, trans, tk),
						conjAlpha, mat(b, am, an), mat(a, bm, bn), kernel.One[T](), mat(c, m, n))
				})
				first = false
			}
		}
	}
}
