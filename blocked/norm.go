// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocked

import (
	"math"
	"sync"

	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/sched"
	"github.com/tessera-hpc/tessera/tile"
)

// ScaleSumsq is a numerically stable running sum of squares, carried as
// (scale, sumsq) so that accumulating magnitudes spanning many orders
// of magnitude never overflows or loses the small terms (spec §4.6.7).
type ScaleSumsq struct {
	mu    sync.Mutex
	scale float64
	sumsq float64
}

// add folds one magnitude contribution weighted by w (1 for a diagonal
// entry, 2 for an off-diagonal entry counted on both sides of a
// symmetric matrix) into the running sum.
func (s *ScaleSumsq) add(mag float64, w float64) {
	if mag == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scale < mag {
		s.sumsq = w + s.sumsq*(s.scale/mag)*(s.scale/mag)
		s.scale = mag
	} else {
		s.sumsq += w * (mag / s.scale) * (mag / s.scale)
	}
}

// combine merges another tile's (scale, sumsq) pair into s using the
// same scaling rule as add, treating other's sumsq as the weight.
func (s *ScaleSumsq) combine(otherScale, otherSumsq float64) {
	if otherSumsq == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scale < otherScale {
		s.sumsq = otherSumsq + s.sumsq*(s.scale/otherScale)*(s.scale/otherScale)
		s.scale = otherScale
	} else {
		s.sumsq += otherSumsq * (otherScale / s.scale) * (otherScale / s.scale)
	}
}

// Value returns the reduced norm scale*sqrt(sumsq).
func (s *ScaleSumsq) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sumsq == 0 {
		return 0
	}
	return s.scale * math.Sqrt(s.sumsq)
}

// Lange computes the Frobenius norm of the general m×n matrix a: every
// tile contributes its own local (scale, sumsq) pair (computed without
// touching the shared accumulator), then folds into it once, so tiles
// run fully in parallel and only the final combine step contends.
func Lange[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, a *tile.Desc[T]) *ScaleSumsq {
	result := &ScaleSumsq{}
	for tm := 0; tm < a.Mt(); tm++ {
		for tn := 0; tn < a.Nt(); tn++ {
			tm, tn := tm, tn
			pool.Submit(seq, []sched.Dependency{dep(a, tm, tn, sched.In)}, func(workerID int) {
				local := &ScaleSumsq{}
				m := mat(a, tm, tn)
				for jj := 0; jj < m.Cols; jj++ {
					for ii := 0; ii < m.Rows; ii++ {
						local.add(kernel.Cabs(m.Data[jj*m.Stride+ii]), 1)
					}
				}
				result.combine(local.scale, local.sumsq)
			})
		}
	}
	return result
}

// Lansy computes the Frobenius norm of the Hermitian/symmetric matrix a,
// stored on one triangle: diagonal entries contribute weight 1,
// off-diagonal entries weight 2 (they represent both (i,j) and (j,i)).
func Lansy[T kernel.Scalar](pool *sched.Pool, seq *async.Sequence, req *async.Request, uplo tile.Uplo, a *tile.Desc[T]) *ScaleSumsq {
	result := &ScaleSumsq{}
	for tm := 0; tm < a.Mt(); tm++ {
		for tn := 0; tn < a.Nt(); tn++ {
			if uplo == tile.Lower && tn > tm {
				continue
			}
			if uplo == tile.Upper && tn < tm {
				continue
			}
			tm, tn := tm, tn
			pool.Submit(seq, []sched.Dependency{dep(a, tm, tn, sched.In)}, func(workerID int) {
				local := &ScaleSumsq{}
				m := mat(a, tm, tn)
				rowBase, colBase := tm*a.Mb(), tn*a.Nb()
				for jj := 0; jj < m.Cols; jj++ {
					col := colBase + jj
					for ii := 0; ii < m.Rows; ii++ {
						row := rowBase + ii
						if uplo == tile.Lower && col > row {
							continue
						}
						if uplo == tile.Upper && col < row {
							continue
						}
						w := 2.0
						if row == col {
							w = 1
						}
						local.add(kernel.Cabs(m.Data[jj*m.Stride+ii]), w)
					}
				}
				result.combine(local.scale, local.sumsq)
			})
		}
	}
	return result
}
