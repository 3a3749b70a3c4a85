// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"

	"github.com/tessera-hpc/tessera/tile"
)

// bandBase returns the LAPACK packed-band-storage offset of the (0,0)
// corner of tile (tm, tn), per PLASMA's bandA(m,n) macro in
// compute/pzoocm2ccrb_band.c: lda*(nb*n) + (Upper ? ku : 0) + mb*(m-n).
// ld is the band buffer's leading dimension (lda >= kl+ku+1); advancing
// one column within the tile moves by ld-1, not ld, because the packed
// row index ku+row-col shifts by -1 for every +1 in col.
func bandBase[T any](d *tile.Desc[T], ld, tm, tn int) int {
	uploOff := 0
	if d.Uplo() == tile.Upper {
		uploOff = d.Ku()
	}
	return ld*d.Nb()*tn + uploOff + d.Mb()*(tm-tn)
}

// CM2CCRBBand copies an LAPACK packed-band matrix (lda >= kl+ku+1,
// element (i,j) at src[j*lda+ku+i-j] for Upper, src[j*lda+i-j] otherwise)
// into the packed tile storage of d, touching only the tiles the band
// descriptor actually allocated (see tile.NewGeneralBand). Entries
// outside the band are never read.
func CM2CCRBBand[T any](src []T, ld int, d *tile.Desc[T]) error {
	if d.I() != 0 || d.J() != 0 {
		return fmt.Errorf("layout: CM2CCRBBand requires a whole-matrix descriptor, got origin (%d,%d)", d.I(), d.J())
	}
	for tn := 0; tn < d.Lnt(); tn++ {
		cols := d.TileNMain(tn)
		tmLo, tmHi := bandRowRange(d, tn)
		for tm := tmLo; tm <= tmHi; tm++ {
			rows := d.TileMMain(tm)
			dst := d.Tile(tm, tn)
			ldDst := rows
			base := bandBase(d, ld, tm, tn)
			for jj := 0; jj < cols; jj++ {
				for ii := 0; ii < rows; ii++ {
					dst[jj*ldDst+ii] = src[base+jj*(ld-1)+ii]
				}
			}
		}
	}
	return nil
}

// CCRB2CMBand is the inverse of CM2CCRBBand. Entries of dst outside the
// band are left untouched by this call.
func CCRB2CMBand[T any](d *tile.Desc[T], dst []T, ld int) error {
	if d.I() != 0 || d.J() != 0 {
		return fmt.Errorf("layout: CCRB2CMBand requires a whole-matrix descriptor, got origin (%d,%d)", d.I(), d.J())
	}
	for tn := 0; tn < d.Lnt(); tn++ {
		cols := d.TileNMain(tn)
		tmLo, tmHi := bandRowRange(d, tn)
		for tm := tmLo; tm <= tmHi; tm++ {
			rows := d.TileMMain(tm)
			src := d.Tile(tm, tn)
			ldSrc := rows
			base := bandBase(d, ld, tm, tn)
			for jj := 0; jj < cols; jj++ {
				for ii := 0; ii < rows; ii++ {
					dst[base+jj*(ld-1)+ii] = src[jj*ldSrc+ii]
				}
			}
		}
	}
	return nil
}

// bandRowRange returns the inclusive range of dense tile rows allocated
// for band tile column tn: [tn-Kut, tn+Klt] clamped to [0, Lmt-1].
func bandRowRange[T any](d *tile.Desc[T], tn int) (lo, hi int) {
	lo = tn - d.Kut()
	if lo < 0 {
		lo = 0
	}
	hi = tn + d.Klt()
	if hi > d.Lmt()-1 {
		hi = d.Lmt() - 1
	}
	return lo, hi
}
