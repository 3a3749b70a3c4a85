// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"

	"gonum.org/v1/gonum/blas"
)

// potrfUnblocked, geqrfUnblocked and gelqfUnblocked are unblocked
// (POTF2/GEQR2/GELQ2-shaped) single-tile factorizations, written directly
// against Mat[T] rather than reached through an external LAPACK wrapper.
// Per spec §1 the exact numerics of these single-tile kernels are out of
// scope ("opaque, correct implementations reached through a BLAS/LAPACK
// binding"); gonum's public lapack64/clapack128 wrapper surface does not
// expose a stable enough raw-slice signature for every one of these calls
// to ground an implementation on with confidence, so — matching how
// gonum's own lapack/gonum package implements LAPACK routines natively in
// Go atop blas64's Level-3 primitives rather than calling out to a
// Fortran LAPACK — tessera's tile-granular factorizations are implemented
// directly here, at unblocked granularity (tiles are nb-sized, so an
// O(nb^3) unblocked factorization is not a bottleneck), while every
// trailing-tile update in the blocked package goes through the wired
// Backend.Gemm/Trsm/Trmm/Syr2k Level-3 calls.

func at[T Scalar](a Mat[T], i, j int) T   { return a.Data[j*a.Stride+i] }
func set[T Scalar](a Mat[T], i, j int, v T) { a.Data[j*a.Stride+i] = v }

// potrfUnblocked factors the n×n tile a as L*L^H (Lower) or U^H*U
// (Upper) in place. ok is false, with info the 1-based order of the first
// non-positive-definite leading minor, if the factorization fails.
func potrfUnblocked[T Scalar](_ Backend[T], uplo blas.Uplo, n int, a Mat[T]) (ok bool, info int) {
	if uplo == blas.Lower {
		for j := 0; j < n; j++ {
			sum := zero[T]()
			for k := 0; k < j; k++ {
				ajk := at(a, j, k)
				sum = addT(sum, mulT(ajk, conjT(ajk)))
			}
			d := realPart(subT(at(a, j, j), sum))
			if d <= 0 {
				return false, j + 1
			}
			l := math.Sqrt(d)
			set(a, j, j, fromFloat[T](l))
			for i := j + 1; i < n; i++ {
				sum2 := zero[T]()
				for k := 0; k < j; k++ {
					sum2 = addT(sum2, mulT(at(a, i, k), conjT(at(a, j, k))))
				}
				set(a, i, j, divT(subT(at(a, i, j), sum2), fromFloat[T](l)))
			}
		}
		return true, 0
	}
	// Upper: A = U^H * U.
	for j := 0; j < n; j++ {
		sum := zero[T]()
		for k := 0; k < j; k++ {
			akj := at(a, k, j)
			sum = addT(sum, mulT(conjT(akj), akj))
		}
		d := realPart(subT(at(a, j, j), sum))
		if d <= 0 {
			return false, j + 1
		}
		l := math.Sqrt(d)
		set(a, j, j, fromFloat[T](l))
		for i := j + 1; i < n; i++ {
			sum2 := zero[T]()
			for k := 0; k < j; k++ {
				sum2 = addT(sum2, mulT(conjT(at(a, k, j)), at(a, k, i)))
			}
			set(a, j, i, divT(subT(at(a, j, i), sum2), fromFloat[T](l)))
		}
	}
	return true, 0
}

// geqrfUnblocked computes the QR factorization of the m×n tile a in
// place, applying each Householder reflector to the trailing columns as
// it is generated (spec §4.6.5's GEQRT, at unblocked granularity).
func geqrfUnblocked[T Scalar](_ Backend[T], m, n int, a Mat[T], tau []T) {
	k := n
	if m < k {
		k = m
	}
	for j := 0; j < k; j++ {
		x := make([]T, m-j)
		for i := range x {
			x[i] = at(a, j+i, j)
		}
		v, t, beta := houseGen(x)
		tau[j] = t
		set(a, j, j, fromFloat[T](beta))
		for i := 1; i < m-j; i++ {
			set(a, j+i, j, v[i])
		}
		for col := j + 1; col < n; col++ {
			w := zero[T]()
			for i := 0; i < m-j; i++ {
				w = addT(w, mulT(conjT(v[i]), at(a, j+i, col)))
			}
			w = mulT(w, conjT(t))
			for i := 0; i < m-j; i++ {
				set(a, j+i, col, subT(at(a, j+i, col), mulT(w, v[i])))
			}
		}
	}
}

// gelqfUnblocked computes the LQ factorization of the m×n tile a in
// place, dual to geqrfUnblocked: reflectors act on rows from the right.
func gelqfUnblocked[T Scalar](_ Backend[T], m, n int, a Mat[T], tau []T) {
	k := n
	if m < k {
		k = m
	}
	for j := 0; j < k; j++ {
		x := make([]T, n-j)
		for jj := range x {
			x[jj] = at(a, j, j+jj)
		}
		v, t, beta := houseGen(x)
		tau[j] = t
		set(a, j, j, fromFloat[T](beta))
		for jj := 1; jj < n-j; jj++ {
			set(a, j, j+jj, v[jj])
		}
		for row := j + 1; row < m; row++ {
			w := zero[T]()
			for jj := 0; jj < n-j; jj++ {
				w = addT(w, mulT(at(a, row, j+jj), v[jj]))
			}
			w = mulT(w, t)
			for jj := 0; jj < n-j; jj++ {
				set(a, row, j+jj, subT(at(a, row, j+jj), mulT(w, conjT(v[jj]))))
			}
		}
	}
}
