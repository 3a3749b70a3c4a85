// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocked

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/blas"

	"github.com/tessera-hpc/tessera/async"
	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/layout"
	"github.com/tessera-hpc/tessera/sched"
	"github.com/tessera-hpc/tessera/tile"
)

func newDense(t *testing.T, rows, cols, nb int, fill func(i, j int) float64) (*tile.Desc[float64], []float64) {
	t.Helper()
	src := make([]float64, rows*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			src[j*rows+i] = fill(i, j)
		}
	}
	d, err := tile.NewGeneral[float64](nb, nb, rows, cols, 0, 0, rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	if err := layout.CM2CCRB(src, rows, d); err != nil {
		t.Fatal(err)
	}
	return d, src
}

// TestGemmMatchesReference exercises the spec §8 "7×5·5×9" GEMM scenario
// against a direct triple loop over the dense reference matrices.
func TestGemmMatchesReference(t *testing.T) {
	const m, k, n, nb = 7, 5, 9, 3
	a, aDense := newDense(t, m, k, nb, func(i, j int) float64 { return float64(i+1) * float64(j+2) })
	b, bDense := newDense(t, k, n, nb, func(i, j int) float64 { return float64(i-j) })
	c, cDense := newDense(t, m, n, nb, func(i, j int) float64 { return float64(i + j) })

	pool := sched.NewPool(4)
	seq := async.NewSequence()
	req := async.NewRequest(seq)
	Gemm[float64](pool, seq, req, kernel.Float64Backend{}, blas.NoTrans, blas.NoTrans, 2, a, b, 0.5, c)
	pool.Wait()
	pool.Close()
	if err := seq.Status(); err != nil {
		t.Fatal(err)
	}

	want := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			var s float64
			for l := 0; l < k; l++ {
				s += aDense[l*m+i] * bDense[j*k+l]
			}
			want[j*m+i] = 2*s + 0.5*cDense[j*m+i]
		}
	}
	got := make([]float64, m*n)
	if err := layout.CCRB2CM(c, got, m); err != nil {
		t.Fatal(err)
	}
	for idx := range want {
		if math.Abs(got[idx]-want[idx]) > 1e-9 {
			t.Fatalf("entry %d: got %v want %v", idx, got[idx], want[idx])
		}
	}
}

// TestPotrfLowerReproducesFactor is the spec §8 "POTRF Lower n=10"
// scenario: factor a known SPD matrix and check L*L^T reconstructs it.
func TestPotrfLowerReproducesFactor(t *testing.T) {
	const n, nb = 10, 4
	// A = B^T*B + n*I is SPD for any B.
	dense := make([]float64, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			var s float64
			for l := 0; l < n; l++ {
				bi := float64((i + l) % 7)
				bj := float64((j + l) % 7)
				s += bi * bj
			}
			if i == j {
				s += float64(n)
			}
			dense[j*n+i] = s
		}
	}
	d, err := tile.NewGeneral[float64](nb, nb, n, n, 0, 0, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if err := layout.CM2CCRB(dense, n, d); err != nil {
		t.Fatal(err)
	}

	pool := sched.NewPool(4)
	seq := async.NewSequence()
	req := async.NewRequest(seq)
	Potrf[float64](pool, seq, req, kernel.Float64Backend{}, blas.Lower, d)
	pool.Wait()
	pool.Close()
	if err := seq.Status(); err != nil {
		t.Fatalf("unexpected factorization failure: %v", err)
	}

	l := make([]float64, n*n)
	if err := layout.CCRB2CM(d, l, n); err != nil {
		t.Fatal(err)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if j > i {
				continue // strict upper is not part of L and is not checked
			}
			var s float64
			for p := 0; p <= j; p++ {
				s += l[p*n+i] * l[p*n+j]
			}
			if math.Abs(s-dense[j*n+i]) > 1e-8 {
				t.Fatalf("(LL^T)(%d,%d) = %v, want %v", i, j, s, dense[j*n+i])
			}
		}
	}
}

// TestPotrfFailsOnIndefiniteMatrix is the spec §8 "POTRF failure, n=6"
// scenario.
func TestPotrfFailsOnIndefiniteMatrix(t *testing.T) {
	const n, nb = 6, 3
	dense := make([]float64, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i == j {
				dense[j*n+i] = -1
			}
		}
	}
	d, err := tile.NewGeneral[float64](nb, nb, n, n, 0, 0, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if err := layout.CM2CCRB(dense, n, d); err != nil {
		t.Fatal(err)
	}

	pool := sched.NewPool(2)
	seq := async.NewSequence()
	req := async.NewRequest(seq)
	Potrf[float64](pool, seq, req, kernel.Float64Backend{}, blas.Lower, d)
	pool.Wait()
	pool.Close()
	if seq.Status() == nil {
		t.Fatal("expected a not-positive-definite failure")
	}
}

func TestLasetUpperRegion(t *testing.T) {
	const m, n, nb = 5, 7, 3
	d, err := tile.NewGeneral[float64](nb, nb, m, n, 0, 0, m, n)
	if err != nil {
		t.Fatal(err)
	}
	seed := make([]float64, m*n)
	for i := range seed {
		seed[i] = -99
	}
	if err := layout.CM2CCRB(seed, m, d); err != nil {
		t.Fatal(err)
	}

	pool := sched.NewPool(2)
	seqv := async.NewSequence()
	req := async.NewRequest(seqv)
	Laset[float64](pool, seqv, req, tile.Upper, 1.234, 2.345, d)
	pool.Wait()
	pool.Close()

	out := make([]float64, m*n)
	if err := layout.CCRB2CM(d, out, m); err != nil {
		t.Fatal(err)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			v := out[j*m+i]
			switch {
			case i == j:
				if v != 2.345 {
					t.Fatalf("diag(%d,%d)=%v, want 2.345", i, j, v)
				}
			case j > i:
				if v != 1.234 {
					t.Fatalf("strict-upper(%d,%d)=%v, want 1.234", i, j, v)
				}
			default:
				if v != -99 {
					t.Fatalf("strict-lower(%d,%d)=%v, want untouched -99", i, j, v)
				}
			}
		}
	}
}

func TestLansyFrobeniusNormOfIdentity(t *testing.T) {
	const n, nb = 6, 3
	dense := make([]float64, n*n)
	for i := 0; i < n; i++ {
		dense[i*n+i] = 1
	}
	d, err := tile.NewGeneral[float64](nb, nb, n, n, 0, 0, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if err := layout.CM2CCRB(dense, n, d); err != nil {
		t.Fatal(err)
	}
	pool := sched.NewPool(2)
	seqv := async.NewSequence()
	req := async.NewRequest(seqv)
	res := Lansy[float64](pool, seqv, req, tile.Lower, d)
	pool.Wait()
	pool.Close()
	got := res.Value()
	want := math.Sqrt(float64(n))
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("||I||_F = %v, want %v", got, want)
	}
}
