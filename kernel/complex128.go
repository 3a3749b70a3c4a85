// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Complex128Backend binds the complex-double tile kernels to gonum's
// cblas128 package.
type Complex128Backend struct{}

var _ Backend[complex128] = Complex128Backend{}

func (Complex128Backend) Gemm(transA, transB blas.Transpose, m, n, k int, alpha complex128, a, b Mat[complex128], beta complex128, c Mat[complex128]) {
	cblas128.Implementation().Zgemm(transA, transB, m, n, k,
		alpha, a.Data, max1(a.Stride),
		b.Data, max1(b.Stride),
		beta, c.Data, max1(c.Stride))
}

func (Complex128Backend) Trsm(side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, m, n int, alpha complex128, a, b Mat[complex128]) {
	cblas128.Implementation().Ztrsm(side, uplo, transA, diag, m, n,
		alpha, a.Data, max1(a.Stride), b.Data, max1(b.Stride))
}

func (Complex128Backend) Trmm(side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, m, n int, alpha complex128, a, b Mat[complex128]) {
	cblas128.Implementation().Ztrmm(side, uplo, transA, diag, m, n,
		alpha, a.Data, max1(a.Stride), b.Data, max1(b.Stride))
}

// Syr2k uses the Hermitian rank-2k update (Zher2k), since spec §4.6.2 and
// the PLASMA original (zsyr2k.c over a complex Hermitian matrix) update
// C := alpha*A*B^H + conj(alpha)*B*A^H + beta*C with C Hermitian, hence
// the real-valued beta.
func (Complex128Backend) Syr2k(uplo blas.Uplo, trans blas.Transpose, n, k int, alpha complex128, a, b Mat[complex128], beta float64, c Mat[complex128]) {
	cblas128.Implementation().Zher2k(uplo, trans, n, k,
		alpha, a.Data, max1(a.Stride), b.Data, max1(b.Stride),
		beta, c.Data, max1(c.Stride))
}

func (b Complex128Backend) Potrf(uplo blas.Uplo, n int, a Mat[complex128]) (ok bool, info int) {
	return potrfUnblocked(b, uplo, n, a)
}

func (b Complex128Backend) Geqrf(m, n int, a Mat[complex128], tau []complex128) {
	geqrfUnblocked(b, m, n, a, tau)
}

func (b Complex128Backend) Gelqf(m, n int, a Mat[complex128], tau []complex128) {
	gelqfUnblocked(b, m, n, a, tau)
}
