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

// Gemm computes c := alpha*op(a)*op(b) + beta*c tile by tile, one DAG
// node per (output tile, reduction step) pair, grounded on PLASMA's
// pzgemm.c: the outer loop walks C's tile grid, the inner loop walks the
// shared reduction dimension, and every partial product accumulates into
// c's own tile in place (InOut), so successive reduction steps on the
// same output tile serialize while independent output tiles run
// concurrently.
func Gemm[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], transA, transB blas.Transpose, alpha T, a, b *tile.Desc[T], beta T, c *tile.Desc[T]) {
	kt := a.Nt()
	if transA != blas.NoTrans {
		kt = a.Mt()
	}
	for tm := 0; tm < c.Mt(); tm++ {
		for tn := 0; tn < c.Nt(); tn++ {
			if kt == 0 {
				// The reduction dimension is empty: no kernel below ever
				// touches c, so beta's scaling has to be applied here
				// instead of folded into the first reduction step.
				tm, tn := tm, tn
				pool.Submit(seq, []sched.Dependency{
					dep(c, tm, tn, sched.InOut),
				}, func(workerID int) {
					gemmScaleTile(beta, mat(c, tm, tn))
				})
				continue
			}
			for tk := 0; tk < kt; tk++ {
				am, an := tm, tk
				if transA != blas.NoTrans {
					am, an = tk, tm
				}
				bm, bn := tk, tn
				if transB != blas.NoTrans {
					bm, bn = tn, tk
				}
				step := beta
				if tk > 0 {
					step = kernel.One[T]()
				}
				pool.Submit(seq, []sched.Dependency{
					dep(a, am, an, sched.In),
					dep(b, bm, bn, sched.In),
					dep(c, tm, tn, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(transA, transB, c.TileMView(tm), c.TileNView(tn), reductionExtent(a, transA, tk),
						alpha, mat(a, am, an), mat(b, bm, bn), step, mat(c, tm, tn))
				})
			}
		}
	}
}

// gemmScaleTile applies c := beta*c in place, the degenerate kt==0 case
// of Gemm's accumulation where no product term exists to carry beta.
func gemmScaleTile[T kernel.Scalar](beta T, c kernel.Mat[T]) {
	for jj := 0; jj < c.Cols; jj++ {
		for ii := 0; ii < c.Rows; ii++ {
			c.Data[jj*c.Stride+ii] *= beta
		}
	}
}

// reductionExtent returns the k-extent (element count) of reduction step
// tk along a's shared dimension.
func reductionExtent[T kernel.Scalar](a *tile.Desc[T], transA blas.Transpose, tk int) int {
	if transA == blas.NoTrans {
		return a.TileNView(tk)
	}
	return a.TileMView(tk)
}
