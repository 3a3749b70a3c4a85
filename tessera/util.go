// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tessera

import (
	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/tile"
)

// panelWorkspace allocates the per-worker reflector scratch buffers the
// QR/LQ panel kernels need (spec §3.3), one per pool worker, sized for
// the largest tile dimension this Context will ever pass to them.
func panelWorkspace[T kernel.Scalar](ctx *Context) *async.Workspace[T] {
	return async.NewWorkspace[T](ctx.workers(), ctx.Nb+1)
}

// newGeneral allocates an m×n general tile descriptor at ctx's tile size,
// translating a tile package error into the IllegalValue every entry
// point reports for a malformed dimension.
func newGeneral[T kernel.Scalar](ctx *Context, m, n int) (*tile.Desc[T], error) {
	d, err := tile.NewGeneral[T](ctx.Nb, ctx.Nb, m, n, 0, 0, m, n)
	if err != nil {
		return nil, &async.Error{Kind: async.IllegalValue}
	}
	return d, nil
}
