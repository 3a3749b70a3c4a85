// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tessera

import (
	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/blocked"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/layout"
)

// Gelqf computes the blocked LQ factorization of the m×n matrix a, the
// row-based dual of Geqrf: L in the lower triangle, the Householder
// vectors to its right.
func Gelqf[T kernel.Scalar](ctx *Context, backend kernel.Backend[T], m, n int, a []T, lda int) (*Factored[T], error) {
	if m < 0 || n < 0 {
		return nil, &async.Error{Kind: async.IllegalValue}
	}
	ad, err := newGeneral[T](ctx, m, n)
	if err != nil {
		return nil, err
	}
	td, err := newGeneral[T](ctx, m, n)
	if err != nil {
		return nil, err
	}

	pool, seq, req := ctx.open()

	if err := layout.CM2CCRB(a, lda, ad); err != nil {
		return nil, err
	}

	blocked.Gelqf(pool, seq, req, backend, ad, td, panelWorkspace[T](ctx))

	if err := join(pool, seq); err != nil {
		return nil, err
	}
	if err := layout.CCRB2CM(ad, a, lda); err != nil {
		return nil, err
	}
	return &Factored[T]{a: ad, t: td}, nil
}
