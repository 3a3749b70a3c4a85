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

// Trmm computes b := alpha*op(a)*b (side=Left) or b := alpha*b*op(a)
// (side=Right) in place, grounded on PLASMA's ztrmm.c. Unlike Trsm, each
// tile-row (or column) is finalized by scaling it by its own diagonal
// block first, then accumulating the contribution of every other block
// still holding its untouched original value — so the traversal order is
// the mirror image of Trsm's: a block must be visited before any other
// step consumes it as a source.
func Trmm[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, alpha T, a, b *tile.Desc[T]) {
	if side == blas.Left {
		trmmLeft(pool, seq, backend, uplo, transA, diag, alpha, a, b)
		return
	}
	trmmRight(pool, seq, backend, uplo, transA, diag, alpha, a, b)
}

func trmmLeft[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, backend kernel.Backend[T], uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, alpha T, a, b *tile.Desc[T]) {
	mt := b.Mt()
	forward := !forwardOrder(uplo, transA)
	for n := 0; n < b.Nt(); n++ {
		n := n
		for _, m := range rowOrder(mt, forward) {
			m := m
			pool.Submit(seq, []sched.Dependency{
				dep(a, m, m, sched.In),
				dep(b, m, n, sched.InOut),
			}, func(workerID int) {
				backend.Trmm(blas.Left, uplo, transA, diag, b.TileMView(m), b.TileNView(n), alpha, mat(a, m, m), mat(b, m, n))
			})
			for _, k := range remaining(mt, m, forward) {
				k := k
				ai, aj := addrTile(uplo, m, k)
				pool.Submit(seq, []sched.Dependency{
					dep(a, ai, aj, sched.In),
					dep(b, k, n, sched.In),
					dep(b, m, n, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(transA, blas.NoTrans, b.TileMView(m), b.TileNView(n), b.TileMView(k),
						alpha, mat(a, ai, aj), mat(b, k, n), kernel.One[T](), mat(b, m, n))
				})
			}
		}
	}
}

func trmmRight[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, backend kernel.Backend[T], uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, alpha T, a, b *tile.Desc[T]) {
	nt := b.Nt()
	forward := forwardOrder(uplo, transA)
	for m := 0; m < b.Mt(); m++ {
		m := m
		for _, n := range rowOrder(nt, forward) {
			n := n
			pool.Submit(seq, []sched.Dependency{
				dep(a, n, n, sched.In),
				dep(b, m, n, sched.InOut),
			}, func(workerID int) {
				backend.Trmm(blas.Right, uplo, transA, diag, b.TileMView(m), b.TileNView(n), alpha, mat(a, n, n), mat(b, m, n))
			})
			for _, k := range remaining(nt, n, forward) {
				k := k
				ai, aj := addrTile(uplo, k, n)
				pool.Submit(seq, []sched.Dependency{
					dep(a, ai, aj, sched.In),
					dep(b, m, k, sched.In),
					dep(b, m, n, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(blas.NoTrans, transA, b.TileMView(m), b.TileNView(n), b.TileNView(k),
						alpha, mat(b, m, k), mat(a, ai, aj), kernel.One[T](), mat(b, m, n))
				})
			}
		}
	}
}
