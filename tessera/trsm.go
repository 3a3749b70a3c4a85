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

// triOrder returns a's square extent for a side-qualified triangular
// operand applied to an m×n right-hand side: side==Left means a is m×m,
// side==Right means a is n×n.
func triOrder(side blas.Side, m, n int) int {
	if side == blas.Left {
		return m
	}
	return n
}

// Trsm solves op(a)*x = alpha*b (side==Left) or x*op(a) = alpha*b
// (side==Right) for x, overwriting the m×n matrix b, where a is
// triangular (uplo, diag) and square with extent triOrder(side, m, n).
func Trsm[T kernel.Scalar](ctx *Context, backend kernel.Backend[T], side blas.Side, uplo blas.Uplo, transA blas.Transpose, diag blas.Diag, m, n int, alpha T, a []T, lda int, b []T, ldb int) error {
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

	blocked.Trsm(pool, seq, req, backend, side, uplo, transA, diag, alpha, ad, bd)

	if err := join(pool, seq); err != nil {
		return err
	}
	return layout.CCRB2CM(bd, b, ldb)
}
