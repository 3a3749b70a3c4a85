// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tessera

import (
	"gonum.org/v1/gonum/blas"

	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/blocked"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/layout"
)

// dims returns the row/column extent of a trans-qualified operand: for
// NoTrans that is (rows, cols) as stated by the caller; for Trans/ConjTrans
// the operand is stored transposed, so the physical extent is (cols, rows).
func dims(trans blas.Transpose, rows, cols int) (r, c int) {
	if trans == blas.NoTrans {
		return rows, cols
	}
	return cols, rows
}

// Gemm computes c := alpha*op(a)*op(b) + beta*c where a is m×k (or k×m
// if transA transposes it), b is k×n (or n×k), and c is m×n, all in the
// caller's column-major storage with the given leading dimensions.
func Gemm[T kernel.Scalar](ctx *Context, backend kernel.Backend[T], transA, transB blas.Transpose, m, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int) error {
	if m < 0 || n < 0 || k < 0 {
		return &async.Error{Kind: async.IllegalValue}
	}
	aRows, aCols := dims(transA, m, k)
	bRows, bCols := dims(transB, k, n)

	ad, err := newGeneral[T](ctx, aRows, aCols)
	if err != nil {
		return err
	}
	bd, err := newGeneral[T](ctx, bRows, bCols)
	if err != nil {
		return err
	}
	cd, err := newGeneral[T](ctx, m, n)
	if err != nil {
		return err
	}

	pool, seq, req := ctx.open()

	if err := layout.CM2CCRB(a, lda, ad); err != nil {
		return err
	}
	if err := layout.CM2CCRB(b, ldb, bd); err != nil {
		return err
	}
	if err := layout.CM2CCRB(c, ldc, cd); err != nil {
		return err
	}

	blocked.Gemm(pool, seq, req, backend, transA, transB, alpha, ad, bd, beta, cd)

	if err := join(pool, seq); err != nil {
		return err
	}
	return layout.CCRB2CM(cd, c, ldc)
}
