// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tessera

import (
	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/blocked"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/layout"
	"github.com/tessera-hpc/tessera/tile"
)

// Lange returns the Frobenius norm of the m×n matrix a.
func Lange[T kernel.Scalar](ctx *Context, m, n int, a []T, lda int) (float64, error) {
	if m < 0 || n < 0 {
		return 0, &async.Error{Kind: async.IllegalValue}
	}
	ad, err := newGeneral[T](ctx, m, n)
	if err != nil {
		return 0, err
	}

	pool, seq, req := ctx.open()

	if err := layout.CM2CCRB(a, lda, ad); err != nil {
		return 0, err
	}

	res := blocked.Lange(pool, seq, req, ad)

	if err := join(pool, seq); err != nil {
		return 0, err
	}
	return res.Value(), nil
}

// Lansy returns the Frobenius norm of the n×n Hermitian/symmetric matrix
// a, stored on the triangle selected by uplo.
func Lansy[T kernel.Scalar](ctx *Context, uplo tile.Uplo, n int, a []T, lda int) (float64, error) {
	if n < 0 {
		return 0, &async.Error{Kind: async.IllegalValue}
	}
	ad, err := newGeneral[T](ctx, n, n)
	if err != nil {
		return 0, err
	}

	pool, seq, req := ctx.open()

	if err := layout.CM2CCRB(a, lda, ad); err != nil {
		return 0, err
	}

	res := blocked.Lansy(pool, seq, req, uplo, ad)

	if err := join(pool, seq); err != nil {
		return 0, err
	}
	return res.Value(), nil
}
