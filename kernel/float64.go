// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Float64Backend binds the real-double tile kernels to gonum's blas64
// package (spec Design Notes §9: one precision's binding, generalized by
// Go generics rather than by code generation).
type Float64Backend struct{}

var _ Backend[float64] = Float64Backend{}

func (Float64Backend) Gemm(transA, transB blas.Transpose, m, n, k int, alpha float64, a, b Mat[float64], beta float64, c Mat[float64]) {
	blas64.Implementation().Dgemm(transA, transB, m, n, k,
		alpha, a.Data, max1(a.Stride),
		b.Data, max1(b.Stride),
		beta, c.Data, max1(c.Stride))
}

func (Float64Backend) Trsm(side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, m, n int, alpha float64, a, b Mat[float64]) {
	blas64.Implementation().Dtrsm(side, uplo, transA, diag, m, n,
		alpha, a.Data, max1(a.Stride), b.Data, max1(b.Stride))
}

func (Float64Backend) Trmm(side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, m, n int, alpha float64, a, b Mat[float64]) {
	blas64.Implementation().Dtrmm(side, uplo, transA, diag, m, n,
		alpha, a.Data, max1(a.Stride), b.Data, max1(b.Stride))
}

func (Float64Backend) Syr2k(uplo blas.Uplo, trans blas.Transpose, n, k int, alpha float64, a, b Mat[float64], beta float64, c Mat[float64]) {
	blas64.Implementation().Dsyr2k(uplo, trans, n, k,
		alpha, a.Data, max1(a.Stride), b.Data, max1(b.Stride),
		beta, c.Data, max1(c.Stride))
}

func (b Float64Backend) Potrf(uplo blas.Uplo, n int, a Mat[float64]) (ok bool, info int) {
	return potrfUnblocked(b, uplo, n, a)
}

func (b Float64Backend) Geqrf(m, n int, a Mat[float64], tau []float64) {
	geqrfUnblocked(b, m, n, a, tau)
}

func (b Float64Backend) Gelqf(m, n int, a Mat[float64], tau []float64) {
	gelqfUnblocked(b, m, n, a, tau)
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
