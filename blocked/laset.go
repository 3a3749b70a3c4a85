// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocked

import (
	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/sched"
	"github.com/tessera-hpc/tessera/tile"
)

// Laset assigns alpha to the strict off-diagonal and beta to the
// diagonal of a's uplo region, one tile-kernel submission per tile
// (spec §4.6.7).
func Laset[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, uplo tile.Uplo, alpha, beta T, a *tile.Desc[T]) {
	for tm := 0; tm < a.Mt(); tm++ {
		for tn := 0; tn < a.Nt(); tn++ {
			tm, tn := tm, tn
			pool.Submit(seq, []sched.Dependency{dep(a, tm, tn, sched.Out)}, func(workerID int) {
				lasetTile(uplo, alpha, beta, a.Mb(), a.Nb(), tm, tn, mat(a, tm, tn))
			})
		}
	}
}

func lasetTile[T kernel.Scalar](uplo tile.Uplo, alpha, beta T, mb, nb, tm, tn int, a kernel.Mat[T]) {
	rowBase := tm * mb
	colBase := tn * nb
	for jj := 0; jj < a.Cols; jj++ {
		col := colBase + jj
		for ii := 0; ii < a.Rows; ii++ {
			row := rowBase + ii
			switch uplo {
			case tile.Upper:
				if col < row {
					continue
				}
			case tile.Lower:
				if col > row {
					continue
				}
			}
			v := alpha
			if row == col {
				v = beta
			}
			a.Data[jj*a.Stride+ii] = v
		}
	}
}
