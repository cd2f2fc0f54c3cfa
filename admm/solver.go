// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package admm implements the ADMM splitting for convex quadratic
// programs
//
//	minimize     ½ xᵀPx + qᵀx
//	subject to   l ≤ Ax ≤ u
//
// (spec.md §1). The outer loop — variable updates with over-relaxation,
// box projection, residual-based termination, and adaptive penalty
// refactorization — is the entire subject of this package; the linear
// algebra collaborator that factorizes the KKT system lives in
// github.com/kingdwd/polympc/linsolve (spec.md §4.4, §6).
package admm

import (
	"github.com/kingdwd/polympc/linsolve"
)

// Status is the terminal state of a Solve call (spec.md §3, info_t).
type Status int

const (
	// Unsolved is the zero value: Solve has not completed yet. A Solve
	// call that fails validation leaves the previous Info unchanged; one
	// that fails with a factorization error inside the iteration loop
	// leaves the Status Unsolved.
	Unsolved Status = iota
	// Solved: the residuals satisfied the termination criteria of
	// spec.md §4.7 before max_iter was reached.
	Solved
	// MaxIterReached: the loop ran to max_iter without converging. Not
	// an error (spec.md §7) — inspect Info to decide whether to retry
	// with a larger MaxIter or warm start.
	MaxIterReached
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case MaxIterReached:
		return "max iter reached"
	default:
		return "unsolved"
	}
}

// Info reports the outcome of the most recent Solve call (spec.md §3).
type Info struct {
	Status  Status
	Iter    int
	ResPrim float64
	ResDual float64
}

// Solver holds the fixed dimensions (n, m), the current Settings, the
// working vectors of spec.md §3 ("Solver state"), and one KKT
// factorization. The working vectors and the factorizer are allocated
// once, at NewSolver time, and reused across Solve calls. The KKT matrix
// is allocated anew at the start of each Solve and on each rho update,
// and each iteration allocates the linear solve's result (plus the
// residual vectors on iterations that compute residuals).
//
// Solve is not safe for concurrent use on the same Solver (spec.md §5);
// distinct Solvers are fully independent.
type Solver struct {
	n, m int

	settings Settings
	logger   Logger

	// Primal/dual/slack state, persisted across Solve calls for
	// warm_start (spec.md §3, §4.6).
	x, z, y       []float64
	xTilde        []float64
	zTilde        []float64
	zPrev         []float64
	rho           float64
	rhoVec        []float64
	rhoInvVec     []float64
	constrType    []constrType

	info Info

	factorizer linsolve.Factorizer
	rhs        []float64
}

// NewSolver constructs a Solver for an n-variable, m-constraint QP with
// the given Settings. The returned Solver's state is zero-initialized
// (spec.md §3, §6).
func NewSolver(n, m int, settings Settings) (*Solver, error) {
	if n <= 0 {
		return nil, errf(InvalidSettings, "n must be positive, got %d", n)
	}
	if m < 0 {
		return nil, errf(InvalidSettings, "m must not be negative, got %d", m)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}

	s := &Solver{
		n: n, m: m,
		settings:   settings,
		x:          make([]float64, n),
		z:          make([]float64, m),
		y:          make([]float64, m),
		xTilde:     make([]float64, n),
		zTilde:     make([]float64, m),
		zPrev:      make([]float64, m),
		rhoVec:     make([]float64, m),
		rhoInvVec:  make([]float64, m),
		constrType: make([]constrType, m),
		rhs:        make([]float64, n+m),
		factorizer: linsolve.NewDenseLU(n + m),
	}
	return s, nil
}

// Settings returns the Solver's current configuration.
func (s *Solver) Settings() Settings { return s.settings }

// SetSettings replaces the Solver's configuration, validating it first.
// It does not reset the solver's working state; call Solve with
// WarmStart = false to reset x, z, y to zero.
func (s *Solver) SetSettings(settings Settings) error {
	if err := settings.validate(); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// SetLogger installs a Logger; the zero Logger is silent.
func (s *Solver) SetLogger(l Logger) { s.logger = l }

// PrimalSolution returns x from the most recent Solve call.
func (s *Solver) PrimalSolution() []float64 { return s.x }

// DualSolution returns y from the most recent Solve call.
func (s *Solver) DualSolution() []float64 { return s.y }

// SlackSolution returns z from the most recent Solve call.
func (s *Solver) SlackSolution() []float64 { return s.z }

// Info returns the outcome of the most recent Solve call.
func (s *Solver) Info() Info { return s.info }

// Solve runs the ADMM iteration to completion or MaxIter (spec.md §4.5),
// mutating the Solver's state and Info. problem is borrowed read-only for
// the duration of the call (spec.md §9).
func (s *Solver) Solve(problem *Problem) (Info, error) {
	if err := problem.validate(s.n, s.m); err != nil {
		return s.info, err
	}

	n, m, set := s.n, s.m, s.settings

	if !set.WarmStart {
		zero(s.x)
		zero(s.z)
		zero(s.y)
	}

	classify(problem.L, problem.U, s.constrType)
	s.rho = rhoUpdate(set.Rho, s.constrType, s.rhoVec, s.rhoInvVec)

	M := kktMatrix(problem, set.Sigma, s.rhoInvVec, n, m)
	if err := s.factorizer.Compute(M); err != nil {
		return s.info, errf(FactorizationError, "%v", err)
	}

	s.info = Info{Status: Unsolved}
	var refs scaleRefs
	refsValid := false

	iter := 1
	for ; iter <= set.MaxIter; iter++ {
		copy(s.zPrev, s.z)

		kktRHS(problem.Q, set.Sigma, s.x, s.z, s.y, s.rhoInvVec, s.rhs)
		w, err := s.factorizer.Solve(s.rhs)
		if err != nil {
			return s.info, errf(FactorizationError, "%v", err)
		}
		copy(s.xTilde, w[:n])
		nu := w[n:]

		for i := 0; i < m; i++ {
			s.zTilde[i] = s.zPrev[i] + s.rhoInvVec[i]*(nu[i]-s.y[i])
		}

		alpha := set.Alpha
		for i := 0; i < n; i++ {
			s.x[i] = alpha*s.xTilde[i] + (1-alpha)*s.x[i]
		}

		for i := 0; i < m; i++ {
			s.z[i] = alpha*s.zTilde[i] + (1-alpha)*s.zPrev[i] + s.rhoInvVec[i]*s.y[i]
		}
		boxProject(s.z, problem.L, problem.U)

		for i := 0; i < m; i++ {
			relaxed := alpha*s.zTilde[i] + (1-alpha)*s.zPrev[i] - s.z[i]
			s.y[i] += s.rhoVec[i] * relaxed
		}

		refsValid = false
		if set.CheckTermination != 0 && iter%set.CheckTermination == 0 {
			rPrim, rDual, r := updateResiduals(problem, s.x, s.z, s.y)
			refs, refsValid = r, true
			s.info.ResPrim, s.info.ResDual = rPrim, rDual

			if s.logger.enabled(LogIteration) {
				obj := 0.5*dot(s.x, mulVec(problem.P, s.x)) + dot(problem.Q, s.x)
				s.logger.logf("iter %4d  obj %.6e  rp %.3e  rd %.3e\n", iter, obj, rPrim, rDual)
			}

			epsPrim, epsDual := tolerances(set, refs)
			if converged(rPrim, rDual, epsPrim, epsDual) {
				s.info.Status = Solved
				s.info.Iter = iter
				break
			}
		}

		if set.AdaptiveRho && iter%set.AdaptiveRhoInterval == 0 {
			if !refsValid {
				rPrim, rDual, r := updateResiduals(problem, s.x, s.z, s.y)
				refs, refsValid = r, true
				s.info.ResPrim, s.info.ResDual = rPrim, rDual
			}
			rhoNew := rhoEstimate(s.rho, s.info.ResPrim, s.info.ResDual, refs)
			if rhoShouldUpdate(s.rho, rhoNew, set.AdaptiveRhoTolerance) {
				if s.logger.enabled(LogVerbose) {
					s.logger.logf("iter %4d  rho %.3e -> %.3e\n", iter, s.rho, rhoNew)
				}
				s.rho = rhoUpdate(rhoNew, s.constrType, s.rhoVec, s.rhoInvVec)
				M = kktMatrix(problem, set.Sigma, s.rhoInvVec, n, m)
				if err := s.factorizer.Factorize(M); err != nil {
					return s.info, errf(FactorizationError, "%v", err)
				}
			}
		}
	}

	if s.info.Status != Solved {
		s.info.Status = MaxIterReached
	}
	s.info.Iter = iter

	if s.logger.enabled(LogSummary) {
		s.logger.logf("solve finished: %s after %d iterations (rp=%.3e rd=%.3e)\n",
			s.info.Status, s.info.Iter, s.info.ResPrim, s.info.ResDual)
	}

	return s.info, nil
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
