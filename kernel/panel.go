// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "gonum.org/v1/gonum/blas"

// The panel kernels below are tessera's generic stand-ins for PLASMA's
// core_zgeqrt/core_zttqrt/core_zunmqr/core_zttmqr (and their LQ duals
// core_zgelqt/core_zttlqt/core_zunmlq/core_zttmlq). PLASMA stores, per
// panel tile, a compact-WY "T" triangular factor (ib×nb) so that a whole
// block of reflectors can be applied to a trailing tile with one TRMM-
// shaped call. Building and applying that compact-WY form correctly is
// itself a delicate piece of numerical code that spec §1 puts out of
// scope ("opaque... reached through a BLAS/LAPACK binding"), and gonum
// does not expose it as a standalone primitive, so tessera's T-tile is
// simplified to hold one tau scalar per reflector (column 0 of the tile)
// and reflectors are applied sequentially, one rank-1 update at a time,
// rather than blocked via one TRMM/GEMM per tile pair. The DAG shape,
// tile dependency pattern, and public numerics (R/L factor, Q applied to
// trailing tiles) are unchanged; only the inner application is unblocked.
// See DESIGN.md.

// reflectLeftApply applies H = I - tau*v*v^H to rows [row0, row0+len(v))
// of c, across all of c's columns.
func reflectLeftApply[T Scalar](v []T, tau T, c Mat[T], row0 int) {
	for col := 0; col < c.Cols; col++ {
		w := zero[T]()
		for i, vi := range v {
			w = addT(w, mulT(conjT(vi), at(c, row0+i, col)))
		}
		w = mulT(w, tau)
		for i, vi := range v {
			set(c, row0+i, col, subT(at(c, row0+i, col), mulT(w, vi)))
		}
	}
}

// reflectRightApply applies c := c*H to columns [col0, col0+len(v)) of c,
// across all of c's rows.
func reflectRightApply[T Scalar](v []T, tau T, c Mat[T], col0 int) {
	for row := 0; row < c.Rows; row++ {
		w := zero[T]()
		for i, vi := range v {
			w = addT(w, mulT(at(c, row, col0+i), vi))
		}
		w = mulT(w, tau)
		for i, vi := range v {
			set(c, row, col0+i, subT(at(c, row, col0+i), mulT(w, conjT(vi))))
		}
	}
}

// applyOrder returns the reflector application order (forward or
// reverse index) and whether tau must be conjugated, for Q (isLQ=false)
// or LQ's Q (isLQ=true) under the given side/trans.
func applyOrder(isLQ bool, side blas.Side, trans blas.Transpose, k int) (order []int, conj bool) {
	fwd := make([]int, k)
	for i := range fwd {
		fwd[i] = i
	}
	rev := make([]int, k)
	for i := range rev {
		rev[i] = k - 1 - i
	}
	wantReverse := (side == blas.Left && trans == blas.NoTrans) || (side == blas.Right && trans != blas.NoTrans)
	if isLQ {
		wantReverse = !wantReverse
	}
	if wantReverse {
		return rev, trans != blas.NoTrans
	}
	return fwd, trans != blas.NoTrans
}

// Geqrt factors the m×n tile a in place (R in the upper triangle, V in
// the lower trapezoid) and stores the min(m,n) reflector scales into
// column 0 of the tile t (spec §4.6.5). scratch must have length >= min(m,n)
// and is the caller's per-worker workspace buffer (spec §3.3).
func Geqrt[T Scalar](b Backend[T], m, n int, a, t Mat[T], scratch []T) {
	k := n
	if m < k {
		k = m
	}
	tau := scratch[:k]
	b.Geqrf(m, n, a, tau)
	for i, v := range tau {
		set(t, i, 0, v)
	}
}

// Unmqr applies the Q (or Q^H) factored by Geqrt into (a, t) to the
// tile c from the given side (spec §4.6.5). scratch must have length
// >= a.Rows and is the caller's per-worker workspace buffer.
func Unmqr[T Scalar](_ Backend[T], side blas.Side, trans blas.Transpose, a, t, c Mat[T], scratch []T) {
	m, n := a.Rows, a.Cols
	k := n
	if m < k {
		k = m
	}
	order, conj := applyOrder(false, side, trans, k)
	for _, j := range order {
		length := m - j
		v := scratch[:length]
		v[0] = one[T]()
		for i := 1; i < length; i++ {
			v[i] = at(a, j+i, j)
		}
		tau := at(t, j, 0)
		if conj {
			tau = conjT(tau)
		}
		if side == blas.Left {
			reflectLeftApply(v, tau, c, j)
		} else {
			reflectRightApply(v, tau, c, j)
		}
	}
}

// Tsqrt eliminates the m×n tile a2 against the upper-triangular n×n
// tile a1 in place (the "triangular-pentagonal" step of tile QR), storing
// the reflector scales in column 0 of t. scratch must have length >=
// a2.Rows+1.
func Tsqrt[T Scalar](_ Backend[T], a1, a2, t Mat[T], scratch []T) {
	n := a1.Cols
	m := a2.Rows
	for j := 0; j < n; j++ {
		x := scratch[:m+1]
		x[0] = at(a1, j, j)
		for i := 0; i < m; i++ {
			x[i+1] = at(a2, i, j)
		}
		v, tau, beta := houseGen(x)
		set(a1, j, j, fromFloat[T](beta))
		for i := 0; i < m; i++ {
			set(a2, i, j, v[i+1])
		}
		set(t, j, 0, tau)
		for col := j + 1; col < n; col++ {
			w := at(a1, j, col)
			for i := 0; i < m; i++ {
				w = addT(w, mulT(conjT(at(a2, i, j)), at(a2, i, col)))
			}
			w = mulT(w, conjT(tau))
			set(a1, j, col, subT(at(a1, j, col), w))
			for i := 0; i < m; i++ {
				set(a2, i, col, subT(at(a2, i, col), mulT(w, at(a2, i, j))))
			}
		}
	}
}

// Tsmqr applies the reflectors Tsqrt generated in (a2, t) to the tile
// pair (c1, c2) — c1 aligned with a1's rows, c2 aligned with a2's rows —
// jointly, from the given side.
func Tsmqr[T Scalar](_ Backend[T], side blas.Side, trans blas.Transpose, a2, t, c1, c2 Mat[T]) {
	n := a2.Cols
	m := a2.Rows
	order, conj := applyOrder(false, side, trans, n)
	for _, j := range order {
		tau := at(t, j, 0)
		if conj {
			tau = conjT(tau)
		}
		if side == blas.Left {
			for col := 0; col < c1.Cols; col++ {
				w := at(c1, j, col)
				for i := 0; i < m; i++ {
					w = addT(w, mulT(conjT(at(a2, i, j)), at(c2, i, col)))
				}
				w = mulT(w, tau)
				set(c1, j, col, subT(at(c1, j, col), w))
				for i := 0; i < m; i++ {
					set(c2, i, col, subT(at(c2, i, col), mulT(w, at(a2, i, j))))
				}
			}
			continue
		}
		for row := 0; row < c1.Rows; row++ {
			w := at(c1, row, j)
			for i := 0; i < m; i++ {
				w = addT(w, mulT(at(c2, row, i), at(a2, i, j)))
			}
			w = mulT(w, tau)
			set(c1, row, j, subT(at(c1, row, j), w))
			for i := 0; i < m; i++ {
				set(c2, row, i, subT(at(c2, row, i), mulT(w, conjT(at(a2, i, j)))))
			}
		}
	}
}

// Gelqt factors the m×n tile a in place (L in the lower triangle, V in
// the upper trapezoid) and stores the reflector scales into column 0 of
// t (spec §4.6.6, dual to Geqrt). scratch must have length >= min(m,n).
func Gelqt[T Scalar](b Backend[T], m, n int, a, t Mat[T], scratch []T) {
	k := n
	if m < k {
		k = m
	}
	tau := scratch[:k]
	b.Gelqf(m, n, a, tau)
	for i, v := range tau {
		set(t, i, 0, v)
	}
}

// Unmlq applies the Q (or Q^H) factored by Gelqt into (a, t) to the
// tile c from the given side, dual to Unmqr. scratch must have length
// >= a.Cols.
func Unmlq[T Scalar](_ Backend[T], side blas.Side, trans blas.Transpose, a, t, c Mat[T], scratch []T) {
	m, n := a.Rows, a.Cols
	k := n
	if m < k {
		k = m
	}
	order, conj := applyOrder(true, side, trans, k)
	for _, j := range order {
		length := n - j
		v := scratch[:length]
		v[0] = one[T]()
		for i := 1; i < length; i++ {
			v[i] = at(a, j, j+i)
		}
		tau := at(t, j, 0)
		if conj {
			tau = conjT(tau)
		}
		if side == blas.Left {
			reflectLeftApply(v, tau, c, j)
		} else {
			reflectRightApply(v, tau, c, j)
		}
	}
}

// Tslqt eliminates the m×n tile a2 against the lower-triangular m×m
// tile a1 in place, dual to Tsqrt: reflectors act along rows. scratch
// must have length >= a2.Cols+1.
func Tslqt[T Scalar](_ Backend[T], a1, a2, t Mat[T], scratch []T) {
	m := a1.Rows
	n := a2.Cols
	for j := 0; j < m; j++ {
		x := scratch[:n+1]
		x[0] = at(a1, j, j)
		for i := 0; i < n; i++ {
			x[i+1] = at(a2, j, i)
		}
		v, tau, beta := houseGen(x)
		set(a1, j, j, fromFloat[T](beta))
		for i := 0; i < n; i++ {
			set(a2, j, i, v[i+1])
		}
		set(t, j, 0, tau)
		for row := j + 1; row < m; row++ {
			w := at(a1, row, j)
			for i := 0; i < n; i++ {
				w = addT(w, mulT(at(a2, row, i), at(a2, j, i)))
			}
			w = mulT(w, tau)
			set(a1, row, j, subT(at(a1, row, j), w))
			for i := 0; i < n; i++ {
				set(a2, row, i, subT(at(a2, row, i), mulT(w, conjT(at(a2, j, i)))))
			}
		}
	}
}

// Tsmlq applies the reflectors Tslqt generated in (a2, t) to the tile
// pair (c1, c2) jointly, from the given side, dual to Tsmqr.
func Tsmlq[T Scalar](_ Backend[T], side blas.Side, trans blas.Transpose, a2, t, c1, c2 Mat[T]) {
	m := a2.Rows
	n := a2.Cols
	order, conj := applyOrder(true, side, trans, m)
	for _, j := range order {
		tau := at(t, j, 0)
		if conj {
			tau = conjT(tau)
		}
		if side == blas.Right {
			for row := 0; row < c1.Rows; row++ {
				w := at(c1, row, j)
				for i := 0; i < n; i++ {
					w = addT(w, mulT(at(c2, row, i), at(a2, j, i)))
				}
				w = mulT(w, tau)
				set(c1, row, j, subT(at(c1, row, j), w))
				for i := 0; i < n; i++ {
					set(c2, row, i, subT(at(c2, row, i), mulT(w, conjT(at(a2, j, i)))))
				}
			}
			continue
		}
		for col := 0; col < c1.Cols; col++ {
			w := at(c1, j, col)
			for i := 0; i < n; i++ {
				w = addT(w, mulT(conjT(at(a2, j, i)), at(c2, i, col)))
			}
			w = mulT(w, tau)
			set(c1, j, col, subT(at(c1, j, col), w))
			for i := 0; i < n; i++ {
				set(c2, i, col, subT(at(c2, i, col), mulT(w, at(a2, j, i))))
			}
		}
	}
}
