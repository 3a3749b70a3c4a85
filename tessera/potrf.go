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

// Potrf computes the Cholesky factorization of the n×n Hermitian positive
// definite matrix a (one triangle, selected by uplo) in place. A
// NotPositiveDefinite error reports the leading minor that failed.
func Potrf[T kernel.Scalar](ctx *Context, backend kernel.Backend[T], uplo blas.Uplo, n int, a []T, lda int) error {
	if n < 0 {
		return &async.Error{Kind: async.IllegalValue}
	}
	ad, err := newGeneral[T](ctx, n, n)
	if err != nil {
		return err
	}

	pool, seq, req := ctx.open()

	if err := layout.CM2CCRB(a, lda, ad); err != nil {
		return err
	}

	blocked.Potrf(pool, seq, req, backend, uplo, ad)

	if err := join(pool, seq); err != nil {
		return err
	}
	return layout.CCRB2CM(ad, a, lda)
}
