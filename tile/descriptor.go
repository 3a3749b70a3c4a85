// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tile implements the tile descriptor: the indexing algebra that
// maps a (possibly offset) submatrix view onto a grid of fixed-size tiles,
// plus the packed band form used by banded factorizations.
//
// A descriptor never owns more than one backing array. Views narrow the
// origin and extent of an existing descriptor without copying data.
package tile

import "fmt"

// Type identifies the storage scheme of a descriptor.
type Type int

const (
	// General is dense column-major-of-tiles storage.
	General Type = iota
	// GeneralBand is packed band storage: only tiles intersecting the
	// band (plus a fill-in reserve) are stored.
	GeneralBand
)

// Uplo identifies which triangle of a matrix is significant.
type Uplo int

const (
	// Upper selects the upper triangle.
	Upper Uplo = iota
	// Lower selects the lower triangle.
	Lower
	// UploGeneral indicates the whole matrix is significant.
	UploGeneral
)

// Desc is a tile descriptor: metadata identifying a submatrix view of a
// matrix physically stored as a grid of mb×nb tiles. T is the element
// type; Desc itself places no constraint on T; callers that drive BLAS or
// LAPACK kernels over the tiles restrict T with kernel.Scalar.
type Desc[T any] struct {
	typ  Type
	uplo Uplo

	matrix []T

	mb, nb int
	lm, ln int
	lmt, lnt int

	// zoneLm is the backing-store height tileAddrGeneral classifies tiles
	// against: equal to lm for General storage, but equal to the synthetic
	// (klt+kut+1)*mb band storage height for GeneralBand, since the two
	// diverge whenever the band's fill-in reserve needs more general-
	// storage tile rows than the matrix itself has (see NewGeneralBand).
	zoneLm int

	i, j int
	m, n int
	mt, nt int

	kl, ku   int
	klt, kut int

	a11, a12, a21, a22 int // zone offsets, in elements, into matrix
}

// NewGeneral allocates a descriptor and its backing store for a dense lm×ln
// matrix, viewed as the i,j-origin m×n submatrix, tiled at mb×nb.
func NewGeneral[T any](mb, nb, lm, ln, i, j, m, n int) (*Desc[T], error) {
	if err := checkGeneralArgs(mb, nb, lm, ln, i, j, m, n); err != nil {
		return nil, err
	}
	d := &Desc[T]{typ: General, uplo: UploGeneral, mb: mb, nb: nb, lm: lm, ln: ln, zoneLm: lm}
	d.lmt = ceilDiv(lm, mb)
	d.lnt = ceilDiv(ln, nb)
	var total int
	d.a11, d.a12, d.a21, d.a22, total = generalZoneOffsets(mb, nb, lm, ln)
	d.matrix = make([]T, total)
	d.setView(i, j, m, n)
	return d, nil
}

// View returns a non-owning descriptor sharing the backing store of d,
// narrowed to the i,j-origin m×n submatrix (offsets are relative to d's
// own origin).
func (d *Desc[T]) View(i, j, m, n int) (*Desc[T], error) {
	ai, aj := d.i+i, d.j+j
	if err := checkGeneralArgs(d.mb, d.nb, d.lm, d.ln, ai, aj, m, n); err != nil {
		return nil, err
	}
	v := *d
	v.setView(ai, aj, m, n)
	return &v, nil
}

func (d *Desc[T]) setView(i, j, m, n int) {
	d.i, d.j, d.m, d.n = i, j, m, n
	d.mt = ceilDiv(i%d.mb+m, d.mb)
	d.nt = ceilDiv(j%d.nb+n, d.nb)
}

// Destroy releases the descriptor's backing store. Go's garbage collector
// reclaims the memory on its own; Destroy exists so a use-after-destroy bug
// in calling code (holding a stale *Desc across a Destroy) surfaces as a
// nil-slice panic instead of silently reading freed foreign memory, the way
// it would in the originating C implementation.
func (d *Desc[T]) Destroy() {
	d.matrix = nil
}

// Type reports the descriptor's storage scheme.
func (d *Desc[T]) Type() Type { return d.typ }

// Uplo reports which triangle is significant.
func (d *Desc[T]) Uplo() Uplo { return d.uplo }

// Mb reports the nominal tile height.
func (d *Desc[T]) Mb() int { return d.mb }

// Nb reports the nominal tile width.
func (d *Desc[T]) Nb() int { return d.nb }

// Lm reports the total matrix height in elements.
func (d *Desc[T]) Lm() int { return d.lm }

// Ln reports the total matrix width in elements.
func (d *Desc[T]) Ln() int { return d.ln }

// Lmt reports the total number of tile rows in the whole matrix.
func (d *Desc[T]) Lmt() int { return d.lmt }

// Lnt reports the total number of tile columns in the whole matrix.
func (d *Desc[T]) Lnt() int { return d.lnt }

// I reports the submatrix row origin, in elements.
func (d *Desc[T]) I() int { return d.i }

// J reports the submatrix column origin, in elements.
func (d *Desc[T]) J() int { return d.j }

// M reports the submatrix height, in elements.
func (d *Desc[T]) M() int { return d.m }

// N reports the submatrix width, in elements.
func (d *Desc[T]) N() int { return d.n }

// Mt reports the submatrix height in tiles.
func (d *Desc[T]) Mt() int { return d.mt }

// Nt reports the submatrix width in tiles.
func (d *Desc[T]) Nt() int { return d.nt }

// Matrix returns the backing store. It is shared by every view derived
// from this descriptor.
func (d *Desc[T]) Matrix() []T { return d.matrix }

// TileMMain returns the storage height of tile row k: mb for an interior
// tile row, lm mod mb for the last.
func (d *Desc[T]) TileMMain(k int) int {
	if d.i/d.mb+k < d.lm/d.mb {
		return d.mb
	}
	return d.lm % d.mb
}

// TileNMain returns the storage width of tile column k: nb for an interior
// tile column, ln mod nb for the last.
func (d *Desc[T]) TileNMain(k int) int {
	if d.j/d.nb+k < d.ln/d.nb {
		return d.nb
	}
	return d.ln % d.nb
}

// TileMView returns the height of the submatrix's intersection with tile
// row k, which may be shorter than TileMMain(k) when the submatrix is a
// proper view.
func (d *Desc[T]) TileMView(k int) int {
	lo := (d.i/d.mb + k) * d.mb
	hi := lo + d.mb
	if lo < d.i {
		lo = d.i
	}
	if hi > d.i+d.m {
		hi = d.i + d.m
	}
	return hi - lo
}

// TileNView returns the width of the submatrix's intersection with tile
// column k, which may be shorter than TileNMain(k) when the submatrix is a
// proper view.
func (d *Desc[T]) TileNView(k int) int {
	lo := (d.j/d.nb + k) * d.nb
	hi := lo + d.nb
	if lo < d.j {
		lo = d.j
	}
	if hi > d.j+d.n {
		hi = d.j + d.n
	}
	return hi - lo
}

// Tile returns the backing slice for submatrix-local tile (tm, tn),
// addressed per the zone rule of the descriptor's Type. For a General
// descriptor it is sized TileMMain(tm)*TileNMain(tn). A GeneralBand tile
// always has mb rows of storage, so in the last tile row of a matrix
// whose lm is not a multiple of mb its slice is longer than
// TileMMain(tm)*TileNMain(tn).
func (d *Desc[T]) Tile(tm, tn int) []T {
	off, size := d.tileAddr(tm, tn)
	return d.matrix[off : off+size]
}

// tileAddr returns the element offset and storage size (mmain*nmain) of
// tile (tm, tn), submatrix-local, per the addressing rule of spec §3.1.
func (d *Desc[T]) tileAddr(tm, tn int) (offset, size int) {
	switch d.typ {
	case General:
		return d.tileAddrGeneral(tm, tn)
	case GeneralBand:
		return d.tileAddrGeneralBand(tm, tn)
	default:
		panic(fmt.Sprintf("tile: invalid descriptor type %d", d.typ))
	}
}

// tileAddrGeneral classifies (tm, tn) against the backing store's own
// height, zoneLm — which for a band descriptor is the synthetic
// (klt+kut+1)*mb storage height, not the matrix's logical lm (see
// NewGeneralBand and zoneLm's doc comment). Using the wrong height here
// misclassifies tiles in the edge row/column against the wrong remainder
// size, corrupting offsets and sizes for every tile past the mismatch.
func (d *Desc[T]) tileAddrGeneral(tm, tn int) (offset, size int) {
	mm := tm + d.i/d.mb
	nn := tn + d.j/d.nb
	lm1 := d.zoneLm / d.mb
	ln1 := d.ln / d.nb

	mmain := d.mb
	if mm >= lm1 {
		mmain = d.zoneLm % d.mb
	}
	nmain := d.nb
	if nn >= ln1 {
		nmain = d.ln % d.nb
	}
	size = mmain * nmain

	switch {
	case mm < lm1 && nn < ln1:
		offset = d.mb * d.nb * (mm + lm1*nn)
	case mm < lm1 && nn >= ln1:
		offset = d.a12 + d.mb*(d.ln%d.nb)*mm
	case mm >= lm1 && nn < ln1:
		offset = d.a21 + d.nb*(d.zoneLm%d.mb)*nn
	default:
		offset = d.a22
	}
	return offset, size
}

// ceilDiv returns ⌈a/b⌉ for non-negative a and positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func checkGeneralArgs(mb, nb, lm, ln, i, j, m, n int) error {
	switch {
	case mb < 1 || nb < 1:
		return fmt.Errorf("tile: mb and nb must be >= 1, got mb=%d nb=%d", mb, nb)
	case i < 0 || j < 0 || m < 0 || n < 0:
		return fmt.Errorf("tile: negative offset or extent")
	case i+m > lm:
		return fmt.Errorf("tile: i+m=%d exceeds lm=%d", i+m, lm)
	case j+n > ln:
		return fmt.Errorf("tile: j+n=%d exceeds ln=%d", j+n, ln)
	}
	return nil
}

// generalZoneOffsets computes the four zone offsets (A11 interior, A12
// right edge, A21 bottom edge, A22 corner) and the total backing-store
// size, in elements, for a dense lm×ln matrix tiled at mb×nb.
func generalZoneOffsets(mb, nb, lm, ln int) (a11, a12, a21, a22, total int) {
	lm1t := lm / mb // full tile rows
	ln1t := ln / nb // full tile columns
	m2 := lm % mb   // height of the bottom edge strip
	n2 := ln % nb   // width of the right edge strip

	a11 = 0
	sizeA11 := mb * nb * lm1t * ln1t

	a12 = sizeA11
	sizeA12 := mb * n2 * lm1t

	a21 = a12 + sizeA12
	sizeA21 := nb * m2 * ln1t

	a22 = a21 + sizeA21
	sizeA22 := m2 * n2

	total = a22 + sizeA22
	return a11, a12, a21, a22, total
}

// Check validates the descriptor's invariants (spec §3.1).
func (d *Desc[T]) Check() error {
	if err := checkGeneralArgs(d.mb, d.nb, d.lm, d.ln, d.i, d.j, d.m, d.n); err != nil {
		return err
	}
	if d.typ == GeneralBand {
		if d.kl < 0 || d.ku < 0 {
			return fmt.Errorf("tile: band descriptor has negative kl/ku")
		}
	}
	return nil
}
