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

// Syr2k computes c := alpha*op(a)*op(b)^H + conj(alpha)*op(b)*op(a)^H +
// beta*c on the triangle of the n×n Hermitian/symmetric matrix c selected
// by uplo, where a and b are n×k (or k×n if trans transposes them).
func Syr2k[T kernel.Scalar](ctx *Context, backend kernel.Backend[T], uplo blas.Uplo, trans blas.Transpose, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta float64, c []T, ldc int) error {
	if n < 0 || k < 0 {
		return &async.Error{Kind: async.IllegalValue}
	}
	aRows, aCols := dims(trans, n, k)

	ad, err := newGeneral[T](ctx, aRows, aCols)
	if err != nil {
		return err
	}
	bd, err := newGeneral[T](ctx, aRows, aCols)
	if err != nil {
		return err
	}
	cd, err := newGeneral[T](ctx, n, n)
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

	blocked.Syr2k(pool, seq, req, backend, uplo, trans, alpha, ad, bd, beta, cd)

	if err := join(pool, seq); err != nil {
		return err
	}
	return layout.CCRB2CM(cd, c, ldc)
}
