// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tile

import "testing"

// TestGeneralBandTileGrid calls Tile on every band-grid coordinate of a
// descriptor with nonzero kl/ku and lm divisible by mb. With lm=9, mb=3,
// kl=2, ku=2, General, NewGeneralBand's synthetic storage height
// (klt+kut+1)*mb=12 exceeds lm=9: before zoneLm was introduced to track
// that height separately from lm, tile (tm=1,tn=0) classified against the
// wrong (real-matrix) height and came back as a zero-size slice, so
// writing through it panicked with an out-of-range index.
func TestGeneralBandTileGrid(t *testing.T) {
	const lm, ln, mb, nb, kl, ku = 9, 9, 3, 3, 2, 2
	d, err := NewGeneralBand[float64](UploGeneral, mb, nb, lm, ln, 0, 0, lm, ln, kl, ku)
	if err != nil {
		t.Fatal(err)
	}
	for tn := 0; tn < d.Lnt(); tn++ {
		lo := tn - d.Kut()
		if lo < 0 {
			lo = 0
		}
		hi := tn + d.Klt()
		if hi > d.Lmt()-1 {
			hi = d.Lmt() - 1
		}
		for tm := lo; tm <= hi; tm++ {
			got := d.Tile(tm, tn)
			want := d.TileMMain(tm) * d.TileNMain(tn)
			if len(got) != want {
				t.Errorf("Tile(%d,%d) has length %d, want %d (lm=%d divisible by mb=%d, tile should be full-size)", tm, tn, len(got), want, lm, mb)
			}
			for i := range got {
				got[i] = float64(tm*100 + tn)
			}
		}
	}
}
