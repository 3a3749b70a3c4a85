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

// Factored bundles a factorization's two outputs: the reflectors left in
// place of a's original entries, and the per-tile tau scales needed to
// apply or reconstruct Q.
type Factored[T kernel.Scalar] struct {
	a *tile.Desc[T]
	t *tile.Desc[T]
}

// Geqrf computes the blocked QR factorization of the m×n matrix a,
// overwriting it with the reflectors (R in the upper triangle, the
// Householder vectors below) and returning the factored handle Geqrs
// needs to apply Q.
func Geqrf[T kernel.Scalar](ctx *Context, backend kernel.Backend[T], m, n int, a []T, lda int) (*Factored[T], error) {
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

	blocked.Geqrf(pool, seq, req, backend, ad, td, panelWorkspace[T](ctx))

	if err := join(pool, seq); err != nil {
		return nil, err
	}
	if err := layout.CCRB2CM(ad, a, lda); err != nil {
		return nil, err
	}
	return &Factored[T]{a: ad, t: td}, nil
}
