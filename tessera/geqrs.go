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

// Geqrs solves the minimum-norm / least-squares problem min‖a*x-b‖ for
// the overdetermined (m>=n) system factored by Geqrf into f. b is the
// m×nrhs right-hand side; on return its first n rows hold x, the rest
// the residual in transformed space.
func Geqrs[T kernel.Scalar](ctx *Context, backend kernel.Backend[T], f *Factored[T], nrhs int, b []T, ldb int) error {
	if nrhs < 0 {
		return &async.Error{Kind: async.IllegalValue}
	}
	m := f.a.M()

	pool, seq, req := ctx.open()

	bd, err := newGeneral[T](ctx, m, nrhs)
	if err != nil {
		return err
	}
	if err := layout.CM2CCRB(b, ldb, bd); err != nil {
		return err
	}

	blocked.Geqrs(pool, seq, req, backend, f.a, f.t, bd, panelWorkspace[T](ctx))

	if err := join(pool, seq); err != nil {
		return err
	}
	return layout.CCRB2CM(bd, b, ldb)
}
