// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tessera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/blas"

	"github.com/tessera-hpc/tessera/kernel"
	"github.com/tessera-hpc/tessera/tile"
)

// TestGemmEndToEnd is the spec §8 "7×5·5×9" GEMM scenario driven through
// the public entry point, not blocked.Gemm directly.
func TestGemmEndToEnd(t *testing.T) {
	const m, k, n = 7, 5, 9
	a := make([]float64, m*k)
	for j := 0; j < k; j++ {
		for i := 0; i < m; i++ {
			a[j*m+i] = float64(i+1) * float64(j+2)
		}
	}
	b := make([]float64, k*n)
	for j := 0; j < n; j++ {
		for i := 0; i < k; i++ {
			b[j*k+i] = float64(i - j)
		}
	}
	c := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			c[j*m+i] = float64(i + j)
		}
	}
	want := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			var s float64
			for l := 0; l < k; l++ {
				s += a[l*m+i] * b[j*k+l]
			}
			want[j*m+i] = 2*s + 0.5*c[j*m+i]
		}
	}

	ctx := NewContext(3, 2, 4)
	if err := Gemm[float64](ctx, kernel.Float64Backend{}, blas.NoTrans, blas.NoTrans, m, n, k, 2, a, m, b, k, 0.5, c, m); err != nil {
		t.Fatal(err)
	}
	for idx := range want {
		if math.Abs(c[idx]-want[idx]) > 1e-9 {
			t.Fatalf("entry %d: got %v want %v", idx, c[idx], want[idx])
		}
	}
}

// TestPotrfEndToEnd is the spec §8 "POTRF Lower n=10" scenario.
func TestPotrfEndToEnd(t *testing.T) {
	const n = 10
	a := make([]float64, n*n)
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
			a[j*n+i] = s
		}
	}
	orig := append([]float64(nil), a...)

	ctx := NewContext(4, 2, 4)
	if err := Potrf[float64](ctx, kernel.Float64Backend{}, blas.Lower, n, a, n); err != nil {
		t.Fatalf("unexpected factorization failure: %v", err)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if j > i {
				continue
			}
			var s float64
			for p := 0; p <= j; p++ {
				s += a[p*n+i] * a[p*n+j]
			}
			if math.Abs(s-orig[j*n+i]) > 1e-8 {
				t.Fatalf("(LL^T)(%d,%d) = %v, want %v", i, j, s, orig[j*n+i])
			}
		}
	}
}

// TestPotrfEndToEndFails is the spec §8 "POTRF failure, n=6" scenario.
func TestPotrfEndToEndFails(t *testing.T) {
	const n = 6
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		a[i*n+i] = -1
	}
	ctx := NewContext(3, 2, 2)
	if err := Potrf[float64](ctx, kernel.Float64Backend{}, blas.Lower, n, a, n); err == nil {
		t.Fatal("expected a not-positive-definite failure")
	}
}

// TestGeqrfGeqrsEndToEnd is the spec §8 "GEQRF+GEQRS m=12,n=5,nrhs=3"
// least-squares scenario: a consistent system x -> b=a*x, then solve back.
func TestGeqrfGeqrsEndToEnd(t *testing.T) {
	const m, n, nrhs, nb, ib = 12, 5, 3, 4, 2
	a := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			a[j*m+i] = float64(1 + (i+2*j)%7)
		}
	}
	aOrig := append([]float64(nil), a...)

	x := make([]float64, n*nrhs)
	for j := 0; j < nrhs; j++ {
		for i := 0; i < n; i++ {
			x[j*n+i] = float64(i + j + 1)
		}
	}
	b := make([]float64, m*nrhs)
	for j := 0; j < nrhs; j++ {
		for i := 0; i < m; i++ {
			var s float64
			for l := 0; l < n; l++ {
				s += aOrig[l*m+i] * x[j*n+l]
			}
			b[j*m+i] = s
		}
	}

	ctx := NewContext(nb, ib, 4)
	f, err := Geqrf[float64](ctx, kernel.Float64Backend{}, m, n, a, m)
	if err != nil {
		t.Fatal(err)
	}
	if err := Geqrs[float64](ctx, kernel.Float64Backend{}, f, nrhs, b, m); err != nil {
		t.Fatal(err)
	}
	for j := 0; j < nrhs; j++ {
		for i := 0; i < n; i++ {
			got := b[j*m+i]
			want := x[j*n+i]
			if math.Abs(got-want) > 1e-6 {
				t.Fatalf("x(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

// TestLasetComplexEndToEnd is the spec §8 "LASET Upper m=5,n=7" scenario
// with complex alpha/beta.
func TestLasetComplexEndToEnd(t *testing.T) {
	const m, n, nb = 5, 7, 3
	alpha := complex(1.234, 5.678)
	beta := complex(2.345, 6.789)
	a := make([]complex128, m*n)
	for i := range a {
		a[i] = complex(-99, -99)
	}

	ctx := NewContext(nb, 2, 2)
	if err := Laset[complex128](ctx, tile.Upper, m, n, alpha, beta, a, m); err != nil {
		t.Fatal(err)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			v := a[j*m+i]
			switch {
			case i == j:
				if v != beta {
					t.Fatalf("diag(%d,%d)=%v, want %v", i, j, v, beta)
				}
			case j > i:
				if v != alpha {
					t.Fatalf("strict-upper(%d,%d)=%v, want %v", i, j, v, alpha)
				}
			default:
				if v != complex(-99, -99) {
					t.Fatalf("strict-lower(%d,%d)=%v, want untouched", i, j, v)
				}
			}
		}
	}
}

// TestLansyEndToEnd exercises the public Lansy entry point on a complex
// Hermitian-like diagonal matrix.
func TestLansyEndToEnd(t *testing.T) {
	const n, nb = 6, 3
	a := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		a[i*n+i] = complex(float64(i+1), 0)
	}
	ctx := NewContext(nb, 2, 2)
	got, err := Lansy[complex128](ctx, tile.Lower, n, a, n)
	if err != nil {
		t.Fatal(err)
	}
	var want float64
	for i := 0; i < n; i++ {
		want += float64((i + 1) * (i + 1))
	}
	want = math.Sqrt(want)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("||A||_F = %v, want %v", got, want)
	}
}

// TestTrsmSolvesConsistentSystem checks Trsm against a known triangular
// solve on the left, no-transpose, lower, unit-diagonal case.
func TestTrsmSolvesConsistentSystem(t *testing.T) {
	const n, nrhs, nb = 6, 2, 3
	a := make([]float64, n*n)
	for j := 0; j < n; j++ {
		a[j*n+j] = 1
		for i := j + 1; i < n; i++ {
			a[j*n+i] = float64((i - j) % 3)
		}
	}
	x := make([]float64, n*nrhs)
	for j := 0; j < nrhs; j++ {
		for i := 0; i < n; i++ {
			x[j*n+i] = float64(i + j + 1)
		}
	}
	b := make([]float64, n*nrhs)
	for j := 0; j < nrhs; j++ {
		for i := 0; i < n; i++ {
			var s float64
			for l := 0; l <= i; l++ {
				s += a[l*n+i] * x[j*n+l]
			}
			b[j*n+i] = s
		}
	}

	ctx := NewContext(nb, 2, 2)
	if err := Trsm[float64](ctx, kernel.Float64Backend{}, blas.Left, blas.Lower, blas.NoTrans, blas.Unit, n, nrhs, 1, a, n, b, n); err != nil {
		t.Fatal(err)
	}
	for idx := range x {
		if math.Abs(b[idx]-x[idx]) > 1e-9 {
			t.Fatalf("entry %d: got %v want %v", idx, b[idx], x[idx])
		}
	}
}

