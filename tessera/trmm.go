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

// Trmm computes b := alpha*op(a)*b (side==Left) or b := alpha*b*op(a)
// (side==Right), overwriting the m×n matrix b, where a is triangular
// (uplo, diag) and square with extent triOrder(side, m, n).
func Trmm[T kernel.Scalar](ctx *Context, backend kernel.Backend[T], side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, m, n int, alpha T, a []T, lda int, b []T, ldb int) error {
	if m < 0 || n < 0 {
		return &async.Error{Kind: async.IllegalValue}
	}
	na := triOrder(side, m, n)
	ad, err := newGeneral[T](ctx, na, na)
	if err != nil {
		return err
	}
	bd, err := newGeneral[T](ctx, m, n)
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

	blocked.Trmm(pool, seq, req, backend, side, uplo, transA, diag, alpha, ad, bd)

	if err := join(pool, seq); err != nil {
		return err
	}
	return layout.CCRB2CM(bd, b, ldb)
}
