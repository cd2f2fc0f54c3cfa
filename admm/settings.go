// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

import "math"

// Settings configures the ADMM iteration. The zero value is not valid;
// start from DefaultSettings and override only the fields that need to
// change.
type Settings struct {
	// Rho is the initial ADMM penalty, 0 < Rho.
	Rho float64
	// Sigma is the proximal regularization, 0 < Sigma (small).
	Sigma float64
	// Alpha is the over-relaxation parameter, 0 < Alpha < 2; values in
	// [1.5, 1.8] give good results empirically.
	Alpha float64
	// EpsRel is the relative residual tolerance, 0 <= EpsRel.
	EpsRel float64
	// EpsAbs is the absolute residual tolerance, 0 <= EpsAbs.
	EpsAbs float64
	// MaxIter caps the number of iterations, 1 <= MaxIter.
	MaxIter int
	// CheckTermination is the cadence (in iterations) at which residuals
	// are evaluated; 0 disables early termination checks entirely.
	CheckTermination int
	// WarmStart reuses the solver's previous x, z, y instead of
	// zero-initializing them at the start of Solve.
	WarmStart bool
	// AdaptiveRho enables the rho re-estimation of spec.md §4.8.
	AdaptiveRho bool
	// AdaptiveRhoTolerance is the multiplicative trigger for applying a
	// new rho estimate, 1 < AdaptiveRhoTolerance.
	AdaptiveRhoTolerance float64
	// AdaptiveRhoInterval is the cadence (in iterations) at which rho is
	// re-estimated, 1 <= AdaptiveRhoInterval.
	AdaptiveRhoInterval int
}

// DefaultSettings returns the documented defaults from spec.md §3.
func DefaultSettings() Settings {
	return Settings{
		Rho:                  1e-1,
		Sigma:                1e-6,
		Alpha:                1.0,
		EpsRel:               1e-3,
		EpsAbs:               1e-3,
		MaxIter:              1000,
		CheckTermination:     25,
		WarmStart:            false,
		AdaptiveRho:          false,
		AdaptiveRhoTolerance: 5,
		AdaptiveRhoInterval:  25,
	}
}

// validate checks the documented domain of every field (spec.md §7,
// InvalidSettings). Grounded on lbfgsb.Problem.New / slsqp.Problem.New:
// a single switch collects the first violated constraint.
func (s Settings) validate() error {
	switch {
	case s.Rho <= 0:
		return errf(InvalidSettings, "rho must be positive, got %v", s.Rho)
	case s.Sigma <= 0:
		return errf(InvalidSettings, "sigma must be positive, got %v", s.Sigma)
	case s.Alpha <= 0 || s.Alpha >= 2:
		return errf(InvalidSettings, "alpha must be in (0,2), got %v", s.Alpha)
	case s.EpsRel < 0:
		return errf(InvalidSettings, "eps_rel must not be negative, got %v", s.EpsRel)
	case s.EpsAbs < 0:
		return errf(InvalidSettings, "eps_abs must not be negative, got %v", s.EpsAbs)
	case s.MaxIter < 1:
		return errf(InvalidSettings, "max_iter must be at least 1, got %v", s.MaxIter)
	case s.CheckTermination < 0:
		return errf(InvalidSettings, "check_termination must not be negative, got %v", s.CheckTermination)
	case s.AdaptiveRho && s.AdaptiveRhoTolerance <= 1:
		return errf(InvalidSettings, "adaptive_rho_tolerance must be greater than 1, got %v", s.AdaptiveRhoTolerance)
	case s.AdaptiveRho && s.AdaptiveRhoInterval < 1:
		return errf(InvalidSettings, "adaptive_rho_interval must be at least 1, got %v", s.AdaptiveRhoInterval)
	case math.IsNaN(s.Rho) || math.IsNaN(s.Sigma) || math.IsNaN(s.Alpha):
		return errf(InvalidSettings, "rho, sigma and alpha must be finite numbers")
	}
	return nil
}
