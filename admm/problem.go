// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LooseBoundsThreshold is the magnitude beyond which a bound is treated
// as infinite (spec.md §4.1, T).
const LooseBoundsThreshold = 1e16

// Problem is the immutable input to Solver.Solve:
//
//	minimize     ½ xᵀPx + qᵀx
//	subject to   l ≤ Ax ≤ u
//
// P must be symmetric positive semidefinite; A, l, u encode both
// equality and inequality constraints uniformly: a row with
// u[i] − l[i] < 1e-4 is an equality, a wider row an inequality
// (spec.md §4.1 classifies rows from l, u alone). Entries of l/u with magnitude beyond LooseBoundsThreshold are
// treated as ±∞.
type Problem struct {
	P *mat.SymDense // n x n
	Q []float64     // n
	A mat.Matrix    // m x n
	L []float64     // m
	U []float64     // m
}

// dims returns (n, m) as implied by P and A, independent of Solver sizing.
func (p *Problem) dims() (n, m int) {
	if p.P != nil {
		n = p.P.SymmetricDim()
	}
	if p.A != nil {
		m, _ = p.A.Dims()
	}
	return
}

// validate checks spec.md §7's InvalidProblem conditions against a
// solver already sized to (n, m).
func (p *Problem) validate(n, m int) error {
	if p == nil {
		return errf(InvalidProblem, "problem is nil")
	}
	if p.P == nil {
		return errf(InvalidProblem, "P is required")
	}
	if got := p.P.SymmetricDim(); got != n {
		return errf(InvalidProblem, "P has dimension %d, solver was constructed for n=%d", got, n)
	}
	if len(p.Q) != n {
		return errf(InvalidProblem, "q has length %d, want %d", len(p.Q), n)
	}
	if m > 0 {
		if p.A == nil {
			return errf(InvalidProblem, "A is required when m>0")
		}
		rows, cols := p.A.Dims()
		if rows != m || cols != n {
			return errf(InvalidProblem, "A has shape (%d,%d), want (%d,%d)", rows, cols, m, n)
		}
	}
	if len(p.L) != m {
		return errf(InvalidProblem, "l has length %d, want %d", len(p.L), m)
	}
	if len(p.U) != m {
		return errf(InvalidProblem, "u has length %d, want %d", len(p.U), m)
	}

	for i := 0; i < n; i++ {
		if math.IsNaN(p.Q[i]) || math.IsInf(p.Q[i], 0) {
			return errf(InvalidProblem, "q[%d] must be finite", i)
		}
		for j := 0; j < n; j++ {
			v := p.P.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errf(InvalidProblem, "P[%d,%d] must be finite", i, j)
			}
		}
	}

	for i := 0; i < m; i++ {
		l, u := p.L[i], p.U[i]
		if math.IsNaN(l) || math.IsNaN(u) {
			return errf(InvalidProblem, "l[%d]/u[%d] must not be NaN", i, i)
		}
		// Only the outward side of a bound may be infinite: l may be
		// -∞ (a missing lower bound), u may be +∞ (a missing upper
		// bound); the opposite, "finite side" per spec.md §7 must stay
		// finite.
		if math.IsInf(l, 1) {
			return errf(InvalidProblem, "l[%d] must not be +Inf", i)
		}
		if math.IsInf(u, -1) {
			return errf(InvalidProblem, "u[%d] must not be -Inf", i)
		}
		if l > u {
			return errf(InvalidProblem, "l[%d]=%v exceeds u[%d]=%v", i, l, i, u)
		}
		for j := 0; j < n; j++ {
			v := p.A.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errf(InvalidProblem, "A[%d,%d] must be finite", i, j)
			}
		}
	}

	return nil
}
