// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// infNorm is the ∞-norm used throughout spec.md §4.7/§4.8, grounded on
// the corpus's own use of gonum/floats for vector reductions (e.g.
// vladimir-ch-iterative's iterative solvers use floats.Dot/AddScaled for
// the same kind of per-iteration vector arithmetic).
func infNorm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, math.Inf(1))
}

// mulVec computes a*x into a fresh slice, where a is any gonum matrix
// (used for A*x, Aᵀ*y and P*x in residual and scale-reference
// computations).
func mulVec(a mat.Matrix, x []float64) []float64 {
	rows, _ := a.Dims()
	var out mat.VecDense
	out.MulVec(a, mat.NewVecDense(len(x), x))
	res := make([]float64, rows)
	for i := 0; i < rows; i++ {
		res[i] = out.AtVec(i)
	}
	return res
}

// scaleRefs holds the infinity-norm scale references cached by
// updateResiduals and reused by the adaptive-rho estimate (spec.md §4.8)
// without recomputation.
type scaleRefs struct {
	sPrim float64 // max(‖Ax‖∞, ‖z‖∞)
	sDual float64 // max(‖Px‖∞, ‖Aᵀy‖∞, ‖q‖∞)
}

// updateResiduals computes r_prim, r_dual and their scale references
// (spec.md §4.7):
//
//	r_prim = ‖Ax − z‖∞                s_prim = max(‖Ax‖∞, ‖z‖∞)
//	r_dual = ‖Px + q + Aᵀy‖∞          s_dual = max(‖Px‖∞, ‖Aᵀy‖∞, ‖q‖∞)
func updateResiduals(p *Problem, x, z, y []float64) (rPrim, rDual float64, refs scaleRefs) {
	m := len(z)
	Ax := make([]float64, m)
	ATy := make([]float64, len(x))
	if m > 0 {
		Ax = mulVec(p.A, x)
		ATy = mulVec(p.A.T(), y)
	}
	Px := mulVec(p.P, x)

	primRes := make([]float64, len(Ax))
	for i := range primRes {
		primRes[i] = Ax[i] - z[i]
	}
	rPrim = infNorm(primRes)

	dualRes := make([]float64, len(Px))
	for i := range dualRes {
		dualRes[i] = Px[i] + p.Q[i] + ATy[i]
	}
	rDual = infNorm(dualRes)

	refs.sPrim = math.Max(infNorm(Ax), infNorm(z))
	refs.sDual = math.Max(infNorm(Px), math.Max(infNorm(ATy), infNorm(p.Q)))
	return
}

// tolerances computes ε_prim, ε_dual from the cached scale references
// (spec.md §4.7).
func tolerances(s Settings, refs scaleRefs) (epsPrim, epsDual float64) {
	epsPrim = s.EpsAbs + s.EpsRel*refs.sPrim
	epsDual = s.EpsAbs + s.EpsRel*refs.sDual
	return
}

// converged reports whether the residuals satisfy the termination
// criteria of spec.md §4.7.
func converged(rPrim, rDual, epsPrim, epsDual float64) bool {
	return rPrim <= epsPrim && rDual <= epsDual
}

// rhoEstimate computes the adaptive-ρ candidate of spec.md §4.8, clamped
// to [rhoMin, rhoMax]:
//
//	r̃_p = r_prim / (s_prim + ζ)
//	r̃_d = r_dual / (s_dual + ζ)
//	ρ_new = ρ · √( r̃_p / (r̃_d + ζ) )
func rhoEstimate(rho, rPrim, rDual float64, refs scaleRefs) float64 {
	rp := rPrim / (refs.sPrim + divByZeroRegul)
	rd := rDual / (refs.sDual + divByZeroRegul)
	rhoNew := rho * math.Sqrt(rp/(rd+divByZeroRegul))
	return math.Max(rhoMin, math.Min(rhoNew, rhoMax))
}

// rhoShouldUpdate reports whether rhoNew differs from rho by more than
// the multiplicative trigger (spec.md §4.8).
func rhoShouldUpdate(rho, rhoNew, tolerance float64) bool {
	return rhoNew < rho/tolerance || rhoNew > rho*tolerance
}
