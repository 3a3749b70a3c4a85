// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "gonum.org/v1/gonum/blas"

// Mat is a raw column-major tile view: Data has length >= Stride*Cols
// (Fortran-order leading dimension), following blas64.General's shape.
type Mat[T Scalar] struct {
	Rows, Cols, Stride int
	Data                []T
}

// Backend binds the single-tile kernels a blocked algorithm calls to a
// concrete implementation for element type T. tessera ships two:
// Float64Backend (gonum blas64) and Complex128Backend (gonum cblas128).
// Both send Gemm, Trsm, Trmm and Syr2k to gonum's BLAS; Potrf, Geqrf and
// Gelqf are this package's own unblocked implementations.
type Backend[T Scalar] interface {
	// Gemm computes c := alpha*opA(a)*opB(b) + beta*c.
	Gemm(transA, transB blas.Transpose, m, n, k int, alpha T, a Mat[T], b Mat[T], beta T, c Mat[T])

	// Trsm solves op(a)*x = alpha*b or x*op(a) = alpha*b in place on b,
	// depending on side.
	Trsm(side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, m, n int, alpha T, a Mat[T], b Mat[T])

	// Trmm computes b := alpha*op(a)*b or b := alpha*b*op(a) in place.
	Trmm(side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, m, n int, alpha T, a Mat[T], b Mat[T])

	// Syr2k computes c := alpha*a*b^H + conj(alpha)*b*a^H + beta*c (or
	// the NoTrans-input dual) over one triangle of c.
	Syr2k(uplo blas.Uplo, trans blas.Transpose, n, k int, alpha T, a Mat[T], b Mat[T], beta float64, c Mat[T])

	// Potrf computes the Cholesky factorization of the n×n tile a in
	// place; ok is false if a leading minor was not positive definite,
	// with info its 1-based order.
	Potrf(uplo blas.Uplo, n int, a Mat[T]) (ok bool, info int)

	// Geqrf computes the QR factorization of the m×n tile a in place:
	// the upper triangle (m>=n) holds R, the lower trapezoid holds the
	// Householder vectors, and tau (length min(m,n)) holds their scales.
	Geqrf(m, n int, a Mat[T], tau []T)

	// Gelqf computes the LQ factorization of the m×n tile a in place,
	// dual to Geqrf.
	Gelqf(m, n int, a Mat[T], tau []T)
}
