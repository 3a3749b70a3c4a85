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

// Laset sets the off-diagonal entries of the region selected by uplo to
// alpha and the diagonal to beta, over the m×n matrix a.
func Laset[T kernel.Scalar](ctx *Context, uplo tile.Uplo, m, n int, alpha, beta T, a []T, lda int) error {
	if m < 0 || n < 0 {
		return &async.Error{Kind: async.IllegalValue}
	}
	ad, err := newGeneral[T](ctx, m, n)
	if err != nil {
		return err
	}

	pool, seq, req := ctx.open()

	if err := layout.CM2CCRB(a, lda, ad); err != nil {
		return err
	}

	blocked.Laset(pool, seq, req, uplo, alpha, beta, ad)

	if err := join(pool, seq); err != nil {
		return err
	}
	return layout.CCRB2CM(ad, a, lda)
}
