// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tile

// NewGeneralBand allocates a descriptor and backing store for a banded
// lm×ln matrix with kl subdiagonals and ku superdiagonals, viewed as the
// i,j-origin m×n submatrix, tiled at mb×nb. Only tiles intersecting the
// band (plus the fill-in reserve needed by factorization) are stored; see
// kut below.
//
// kut follows the formula in the original PLASMA descriptor (see
// DESIGN.md and SPEC_FULL.md §12.1): (kl+kl+nb-1)/nb for a General-uplo
// band, not (kl+ku+nb-1)/nb. This is the fill-in reserve a factorization
// of a banded matrix needs along the superdiagonal tile band, and changing
// it would desynchronize the tile grid from kernels written against it.
func NewGeneralBand[T any](uplo Uplo, mb, nb, lm, ln, i, j, m, n, kl, ku int) (*Desc[T], error) {
	if err := checkGeneralArgs(mb, nb, lm, ln, i, j, m, n); err != nil {
		return nil, err
	}
	if kl < 0 || ku < 0 {
		return nil, errNegativeBand(kl, ku)
	}
	d := &Desc[T]{
		typ: GeneralBand, uplo: uplo,
		mb: mb, nb: nb, lm: lm, ln: ln,
		kl: kl, ku: ku,
	}
	d.lmt = ceilDiv(lm, mb)
	d.lnt = ceilDiv(ln, nb)
	d.klt = ceilDiv(kl, mb)
	d.kut = kutFor(uplo, kl, ku, nb)

	// Band storage keeps, for every tile column n, the tile rows from
	// n-kut to n+klt (inclusive) mapped onto general storage column n;
	// see tileAddrGeneralBand. The general-storage grid therefore has
	// klt+kut+1 tile rows and lnt tile columns: zoneLm must reflect that
	// synthetic height, not lm, or tileAddrGeneral misclassifies tiles in
	// the last general-storage row whenever bandRows*mb > lm (lm and lmt
	// stay at the matrix's real height; bandRowRange's Lmt() clamp and the
	// Lm() accessor both depend on that).
	bandRows := d.klt + d.kut + 1
	d.zoneLm = bandRows * mb
	var total int
	d.a11, d.a12, d.a21, d.a22, total = generalZoneOffsets(mb, nb, d.zoneLm, ln)
	d.matrix = make([]T, total)
	d.setView(i, j, m, n)
	return d, nil
}

// kutFor computes the number of tile columns reserved above the diagonal
// tile for fill-in, per uplo.
func kutFor(uplo Uplo, kl, ku, nb int) int {
	switch uplo {
	case UploGeneral:
		return (kl + kl + nb - 1) / nb
	case Upper:
		return (ku + nb - 1) / nb
	default: // Lower
		return 0
	}
}

// Kl reports the number of subdiagonals of a band descriptor, in elements.
func (d *Desc[T]) Kl() int { return d.kl }

// Ku reports the number of superdiagonals of a band descriptor, in elements.
func (d *Desc[T]) Ku() int { return d.ku }

// Klt reports the number of tile rows below the diagonal tile.
func (d *Desc[T]) Klt() int { return d.klt }

// Kut reports the number of tile rows/columns reserved above the diagonal
// tile, including the fill-in reserve (see NewGeneralBand).
func (d *Desc[T]) Kut() int { return d.kut }

// tileAddrGeneralBand maps a band-relative tile index (tm, tn) onto the
// general-storage tile grid: tile (tm, tn) of the band is stored at
// general tile (kut+tm-tn, tn).
func (d *Desc[T]) tileAddrGeneralBand(tm, tn int) (offset, size int) {
	return d.tileAddrGeneral(d.kut+tm-tn, tn)
}

func errNegativeBand(kl, ku int) error {
	return &bandError{kl: kl, ku: ku}
}

type bandError struct{ kl, ku int }

func (e *bandError) Error() string {
	return "tile: kl and ku must be >= 0"
}
