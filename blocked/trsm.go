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

// addrTile returns the stored (i,j) tile index of a for the (i,j) block
// of op(a): a non-diagonal block is only physically stored on the
// declared uplo triangle, so the other orientation is reached through
// the trans flag passed to the BLAS call instead of through addressing.
func addrTile(uplo blas.Uplo, i, j int) (int, int) {
	if uplo == blas.Lower {
		if i < j {
			return j, i
		}
		return i, j
	}
	if i > j {
		return j, i
	}
	return i, j
}

// Trsm solves op(a)*x = alpha*b (side=Left) or x*op(a) = alpha*b
// (side=Right) in place on b, grounded on PLASMA's ztrsm.c: processing
// order along the solved dimension (forward or backward) is chosen so
// that, at the point a tile-row (or column) of b is solved, every block
// of a it depends on has already been produced — here, since a is a
// static triangular input, that reduces to choosing the order that lets
// each solved tile immediately propagate into the tiles still to come.
func Trsm[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, backend kernel.Backend[T], side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, alpha T, a, b *tile.Desc[T]) {
	if side == blas.Left {
		trsmLeft(pool, seq, backend, uplo, transA, diag, alpha, a, b)
		return
	}
	trsmRight(pool, seq, backend, uplo, transA, diag, alpha, a, b)
}

func forwardOrder(uplo blas.Uplo, transA blas.Transpose) bool {
	lower := uplo == blas.Lower
	noTrans := transA == blas.NoTrans
	return (lower && noTrans) || (!lower && !noTrans)
}

func trsmLeft[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, backend kernel.Backend[T], uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, alpha T, a, b *tile.Desc[T]) {
	mt := b.Mt()
	forward := forwardOrder(uplo, transA)
	for n := 0; n < b.Nt(); n++ {
		n := n
		first := true
		order := rowOrder(mt, forward)
		for _, m := range order {
			m := m
			step := kernel.One[T]()
			if first {
				step = alpha
			}
			pool.Submit(seq, []sched.Dependency{
				dep(a, m, m, sched.In),
				dep(b, m, n, sched.InOut),
			}, func(workerID int) {
				backend.Trsm(blas.Left, uplo, transA, diag, b.TileMView(m), b.TileNView(n), step, mat(a, m, m), mat(b, m, n))
			})
			rest := remaining(mt, m, forward)
			for _, k := range rest {
				k := k
				ai, aj := addrTile(uplo, k, m)
				pool.Submit(seq, []sched.Dependency{
					dep(a, ai, aj, sched.In),
					dep(b, m, n, sched.In),
					dep(b, k, n, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(transA, blas.NoTrans, b.TileMView(k), b.TileNView(n), b.TileMView(m),
						kernel.FromFloat[T](-1), mat(a, ai, aj), mat(b, m, n), step, mat(b, k, n))
				})
			}
			first = false
		}
	}
}

func trsmRight[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, backend kernel.Backend[T], uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, alpha T, a, b *tile.Desc[T]) {
	nt := b.Nt()
	// Right-side solve order mirrors Left: transposing the side swaps
	// which of NoTrans/Trans walks forward along the solved dimension.
	forward := !forwardOrder(uplo, transA)
	for m := 0; m < b.Mt(); m++ {
		m := m
		first := true
		order := rowOrder(nt, forward)
		for _, n := range order {
			n := n
			step := kernel.One[T]()
			if first {
				step = alpha
			}
			pool.Submit(seq, []sched.Dependency{
				dep(a, n, n, sched.In),
				dep(b, m, n, sched.InOut),
			}, func(workerID int) {
				backend.Trsm(blas.Right, uplo, transA, diag, b.TileMView(m), b.TileNView(n), step, mat(a, n, n), mat(b, m, n))
			})
			rest := remaining(nt, n, forward)
			for _, k := range rest {
				k := k
				ai, aj := addrTile(uplo, n, k)
				pool.Submit(seq, []sched.Dependency{
					dep(a, ai, aj, sched.In),
					dep(b, m, n, sched.In),
					dep(b, m, k, sched.InOut),
				}, func(workerID int) {
					backend.Gemm(blas.NoTrans, transA, b.TileMView(m), b.TileNView(k), b.TileNView(n),
						kernel.FromFloat[T](-1), mat(b, m, n), mat(a, ai, aj), step, mat(b, m, k))
				})
			}
			first = false
		}
	}
}

func rowOrder(n int, forward bool) []int {
	o := make([]int, n)
	for i := range o {
		if forward {
			o[i] = i
		} else {
			o[i] = n - 1 - i
		}
	}
	return o
}

func remaining(n, idx int, forward bool) []int {
	var o []int
	if forward {
		for k := idx + 1; k < n; k++ {
			o = append(o, k)
		}
	} else {
		for k := idx - 1; k >= 0; k-- {
			o = append(o, k)
		}
	}
	return o
}
