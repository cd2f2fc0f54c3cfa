package numdiff

import (
	"errors"
	"math"
)

var cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)

// GradSpec approximates the Jacobian of Object at a point by second-order
// accurate central differences.
//
// It exists in this module only to cross-check admm's own, hand-derived
// KKT gradient formulas (the dual residual Px + q + Aᵀy, in particular)
// against a finite-difference gradient of the QP's Lagrangian — see
// admm/residual_numdiff_test.go. Unlike a general-purpose differentiation
// library this adapts only the central-difference path: the forward
// difference and variable-bound machinery a constrained NLP solver needs
// (clamping the probe step to stay inside box bounds, one-sided schemes
// near a bound) have no analogue here, because the Lagrangian is
// evaluated at an unconstrained point in x — the QP's own l ≤ Ax ≤ u
// constraints are checked separately, by admm itself.
//
// # Reference
//
//   - https://en.wikipedia.org/wiki/Finite_difference
//   - https://github.com/scipy/scipy/blob/main/scipy/optimize/_numdiff.py
//
// # License
//
//   - https://github.com/scipy/scipy/blob/main/LICENSE.txt
type GradSpec struct {
	N, M int
	// Object is the function whose Jacobian is approximated. x is an
	// n-vector, the result is stored into the m-vector y.
	Object func(x, y []float64)
	// RelStep is the relative step size used to compute the absolute
	// step size. The default, used when RelStep and AbsStep are both
	// zero or when the resulting step is zero or vanishes against x0, is
	// h = cubeEps * max(1, abs(x0)); steps are always positive.
	RelStep float64
	// AbsStep overrides RelStep when non-zero. Its sign is ignored: a
	// central difference always probes symmetrically around x0.
	AbsStep float64

	absStep []float64
	f1, f2  []float64
}

// check validates the parameters and (re)allocates the scratch buffers.
func (g *GradSpec) check(x0, diff []float64) error {
	switch {
	case g.N <= 0 || g.M <= 0:
		return errors.New("negative dimensions")
	case g.Object == nil:
		return errors.New("object function is required")
	case g.N != len(x0):
		return errors.New("invalid x0 dimensions")
	case g.N*g.M != len(diff):
		return errors.New("invalid diff dimensions")
	}
	if len(g.f1) != g.M {
		g.f1 = make([]float64, g.M)
		g.f2 = make([]float64, g.M)
	}
	if len(g.absStep) != g.N {
		g.absStep = make([]float64, g.N)
	}
	return nil
}

// Diff computes the central-difference approximation of the Jacobian of
// Object at x0, storing it column-major (diff[i+j*N] is ∂y_j/∂x_i) into
// diff. x0 is restored to its original values before Diff returns.
func (g *GradSpec) Diff(x0, diff []float64) error {
	if err := g.check(x0, diff); err != nil {
		return err
	}
	g.absoluteStep(x0)
	g.central(x0, diff)
	return nil
}

func (g *GradSpec) absoluteStep(x0 []float64) {
	h := g.absStep
	abs, rel := math.Abs(g.AbsStep), g.RelStep
	for i, v := range x0 {
		s := abs
		if s == 0 {
			s = rel * math.Abs(v)
		}
		if s == 0 || (v+s)-v == 0 {
			s = cubeEps * math.Max(1.0, math.Abs(v))
		}
		h[i] = s
	}
}

func (g *GradSpec) central(x0, diff []float64) {
	f1, f2, n := g.f1, g.f2, g.N
	fun := g.Object
	for i, s := range g.absStep {
		x := x0[i]
		d := 1.0 / (2 * s)

		x0[i] = x - s
		fun(x0, f1)
		x0[i] = x + s
		fun(x0, f2)
		x0[i] = x

		for j := range f1 {
			diff[i+j*n] = (f2[j] - f1[j]) * d
		}
	}
}
