// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/blas"
)

func colMajor(rows, cols int, data []float64) Mat[float64] {
	return Mat[float64]{Rows: rows, Cols: cols, Stride: rows, Data: data}
}

func TestPotrfUnblockedLowerMatchesKnownFactor(t *testing.T) {
	// A = L*L^T for L = [[2,0],[1,3]] -> A = [[4,2],[2,10]].
	a := colMajor(2, 2, []float64{4, 2, 2, 10})
	ok, info := potrfUnblocked[float64](Float64Backend{}, blas.Lower, 2, a)
	if !ok {
		t.Fatalf("potrf failed, info=%d", info)
	}
	want := []float64{2, 1, 2 /* upper untouched */, 3}
	if math.Abs(a.Data[0]-want[0]) > 1e-12 || math.Abs(a.Data[1]-want[1]) > 1e-12 || math.Abs(a.Data[3]-want[3]) > 1e-12 {
		t.Fatalf("got %v, want L=[[2,_],[1,3]]", a.Data)
	}
}

func TestPotrfUnblockedRejectsNonPositiveDefinite(t *testing.T) {
	a := colMajor(2, 2, []float64{1, 2, 2, 1})
	ok, info := potrfUnblocked[float64](Float64Backend{}, blas.Lower, 2, a)
	if ok {
		t.Fatal("expected failure on indefinite matrix")
	}
	if info != 2 {
		t.Fatalf("info = %d, want 2", info)
	}
}

func TestGeqrfUnblockedRDiagonalNotNaN(t *testing.T) {
	a := colMajor(3, 2, []float64{1, 2, 2, 4, 5, 6})
	tau := make([]float64, 2)
	geqrfUnblocked[float64](Float64Backend{}, 3, 2, a, tau)
	// Below-diagonal entries are overwritten with reflector data; R's
	// diagonal entries (0,0) and (1,1) must not be NaN.
	if math.IsNaN(a.Data[0]) || math.IsNaN(a.Data[colMajorIdx(1, 1, 3)]) {
		t.Fatal("R entries are NaN")
	}
}

func colMajorIdx(i, j, stride int) int { return j*stride + i }

func TestHouseGenZeroesTail(t *testing.T) {
	x := []float64{3, 4}
	v, tau, beta := houseGen(x)
	if math.Abs(beta*beta-25) > 1e-9 {
		t.Fatalf("beta=%v, want |beta|=5", beta)
	}
	if tau == 0 {
		t.Fatal("tau should be nonzero for a vector with nonzero tail")
	}
	if v[0] != 1 {
		t.Fatalf("v[0] = %v, want 1", v[0])
	}
}

func TestGeqtUnmqrRoundTrip(t *testing.T) {
	// Applying Q^H then Q to a vector recovers it: verifies Unmqr's
	// order/conjugation logic against Geqrt's storage.
	a := colMajor(3, 3, []float64{1, 2, 2, 2, -1, 1, 3, 1, 4})
	tTile := colMajor(3, 1, make([]float64, 3))
	orig := append([]float64(nil), a.Data...)
	scratch := make([]float64, 3)
	Geqrt[float64](Float64Backend{}, 3, 3, a, tTile, scratch)

	c := colMajor(3, 1, []float64{1, 0, 0})
	cOrig := append([]float64(nil), c.Data...)
	Unmqr[float64](Float64Backend{}, blas.Left, blas.Trans, a, tTile, c, scratch)
	Unmqr[float64](Float64Backend{}, blas.Left, blas.NoTrans, a, tTile, c, scratch)
	for i := range c.Data {
		if math.Abs(c.Data[i]-cOrig[i]) > 1e-9 {
			t.Fatalf("Q*(Q^T*c) != c at %d: got %v want %v", i, c.Data[i], cOrig[i])
		}
	}
	_ = orig
}
