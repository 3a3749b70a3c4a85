// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout translates between the caller-facing, plain column-major
// matrix layout and the tile (CCRB — Column-Column Rectangular Block)
// layout a tile.Desc stores internally. It is grounded on PLASMA's
// pzoocm2ccrb_band.c: translation runs tile by tile, copying each tile's
// (possibly short, on an edge) rows/cols independently. The tile loops
// run serially in the calling goroutine.
package layout

import (
	"fmt"

	"github.com/tessera-hpc/tessera/tile"
)

// CM2CCRB copies the dense, column-major, ld-strided matrix src into the
// tile storage of d. d must describe the whole matrix (origin (0,0)); use
// a fresh *tile.Desc for the translation, not an interior view.
func CM2CCRB[T any](src []T, ld int, d *tile.Desc[T]) error {
	if d.I() != 0 || d.J() != 0 {
		return fmt.Errorf("layout: CM2CCRB requires a whole-matrix descriptor, got origin (%d,%d)", d.I(), d.J())
	}
	for tm := 0; tm < d.Mt(); tm++ {
		rowOff := tm * d.Mb()
		rows := d.TileMView(tm)
		for tn := 0; tn < d.Nt(); tn++ {
			colOff := tn * d.Nb()
			cols := d.TileNView(tn)
			dst := d.Tile(tm, tn)
			ldDst := d.TileMMain(tm)
			for jj := 0; jj < cols; jj++ {
				for ii := 0; ii < rows; ii++ {
					dst[jj*ldDst+ii] = src[(colOff+jj)*ld+(rowOff+ii)]
				}
			}
		}
	}
	return nil
}

// CCRB2CM is the inverse of CM2CCRB: it copies d's tile storage back into
// the dense, column-major, ld-strided matrix dst.
func CCRB2CM[T any](d *tile.Desc[T], dst []T, ld int) error {
	if d.I() != 0 || d.J() != 0 {
		return fmt.Errorf("layout: CCRB2CM requires a whole-matrix descriptor, got origin (%d,%d)", d.I(), d.J())
	}
	for tm := 0; tm < d.Mt(); tm++ {
		rowOff := tm * d.Mb()
		rows := d.TileMView(tm)
		for tn := 0; tn < d.Nt(); tn++ {
			colOff := tn * d.Nb()
			cols := d.TileNView(tn)
			src := d.Tile(tm, tn)
			ldSrc := d.TileMMain(tm)
			for jj := 0; jj < cols; jj++ {
				for ii := 0; ii < rows; ii++ {
					dst[(colOff+jj)*ld+(rowOff+ii)] = src[jj*ldSrc+ii]
				}
			}
		}
	}
	return nil
}
