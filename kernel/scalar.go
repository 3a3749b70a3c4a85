// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel binds the single-tile numerical kernels spec.md §1 treats
// as opaque, correct implementations reached through a BLAS/LAPACK
// binding (GEMM, TRSM, TRMM, SYR2K/HER2K, POTRF, and the QR/LQ panel
// kernels GEQRT/TSQRT/UNMQR/TSMQR and their LQ duals): GEMM, TRSM, TRMM
// and SYR2K/HER2K go to gonum's BLAS, while POTRF and the QR/LQ kernels
// are this package's own unblocked implementations. The generic numeric type parameter replaces the original
// per-precision code generation (spec Design Notes §9): a single template
// here compiles for every type satisfying Scalar, rather than four
// generated source trees.
package kernel

import "math"

// Scalar is the capability set a tile element type needs: the arithmetic
// BLAS bindings require. Its type set is float64 and complex128 (and
// types derived from them), the two element types with a Backend in this
// tree (gonum blas64 and cblas128); float32 and complex64 are not in the
// type set (see DESIGN.md "dropped / not wired").
type Scalar interface {
	~float64 | ~complex128
}

func zero[T Scalar]() T { var z T; return z }

// One returns the multiplicative identity of T; blocked algorithms use it
// as the accumulation factor for every reduction step after the first.
func One[T Scalar]() T { return one[T]() }

func one[T Scalar]() T {
	var z T
	switch any(z).(type) {
	case complex128:
		return any(complex128(1)).(T)
	default:
		return any(float64(1)).(T)
	}
}

// FromFloat embeds a real value into T (imaginary part 0 for complex T).
func FromFloat[T Scalar](f float64) T { return fromFloat[T](f) }

// ConjOf returns the complex conjugate of x, or x itself when T is real.
func ConjOf[T Scalar](x T) T { return conjT(x) }

func fromFloat[T Scalar](f float64) T {
	var z T
	switch any(z).(type) {
	case complex128:
		return any(complex(f, 0)).(T)
	default:
		return any(f).(T)
	}
}

func realPart[T Scalar](x T) float64 {
	switch v := any(x).(type) {
	case complex128:
		return real(v)
	default:
		return any(x).(float64)
	}
}

// conjT returns the complex conjugate of x, or x itself when T is real.
func conjT[T Scalar](x T) T {
	if v, ok := any(x).(complex128); ok {
		return any(complex(real(v), -imag(v))).(T)
	}
	return x
}

func absSq[T Scalar](x T) float64 {
	if v, ok := any(x).(complex128); ok {
		return real(v)*real(v) + imag(v)*imag(v)
	}
	f := any(x).(float64)
	return f * f
}

func cabs[T Scalar](x T) float64 {
	return math.Sqrt(absSq(x))
}

// Cabs returns the magnitude of x (absolute value for real T, modulus
// for complex T).
func Cabs[T Scalar](x T) float64 { return cabs(x) }

func addT[T Scalar](a, b T) T { return a + b }
func subT[T Scalar](a, b T) T { return a - b }
func mulT[T Scalar](a, b T) T { return a * b }
func divT[T Scalar](a, b T) T { return a / b }

// houseGen computes a Householder reflector H = I - tau*v*v^H with
// H^H*x = (beta, 0, ..., 0) and beta real, for the vector x (x[0] the
// "alpha" entry, x[1:] the tail to annihilate), following the LAPACK
// *LARFG convention. LAPACK leaves v[0] = 1 implicit; the returned v
// carries it explicitly in v[0], and callers store only v[1:]. When x
// already has a zero tail and a real x[0], tau is 0 (H is the identity),
// beta is x[0], and v is a copy of x.
//
// This is a direct, unblocked implementation of the reflector-generation
// step LAPACK's *LARFG performs; spec §1 treats the exact numerics of
// panel kernels as opaque, so this stands in for what would otherwise be
// an external call.
func houseGen[T Scalar](x []T) (v []T, tau T, beta float64) {
	n := len(x)
	v = make([]T, n)
	copy(v, x)
	var tailNormSq float64
	for _, xi := range x[1:] {
		tailNormSq += absSq(xi)
	}
	alpha := x[0]
	if tailNormSq == 0 && conjT(alpha) == alpha {
		return v, zero[T](), realPart(alpha)
	}
	normX := math.Sqrt(absSq(alpha) + tailNormSq)
	if realPart(alpha) >= 0 {
		beta = -normX
	} else {
		beta = normX
	}
	betaT := fromFloat[T](beta)
	tau = divT(subT(betaT, alpha), betaT)
	scale := divT(one[T](), subT(alpha, betaT))
	for i := 1; i < n; i++ {
		v[i] = mulT(v[i], scale)
	}
	v[0] = one[T]()
	return v, tau, beta
}
