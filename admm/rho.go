// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

const (
	// rhoMin is the floor applied to both loose-bounds rows (spec.md
	// §4.2) and the adaptive-rho clamp (spec.md §4.8).
	rhoMin = 1e-6
	// rhoMax is the ceiling applied to the adaptive-rho clamp.
	rhoMax = 1e6
	// rhoEqFactor scales rho up for equality rows (spec.md §4.2).
	rhoEqFactor = 1e3
	// divByZeroRegul regularizes the adaptive-rho estimate's divisions
	// (spec.md §4.8, ζ).
	divByZeroRegul = 1e-10
)

// rhoUpdate fills rhoVec/rhoInvVec from a scalar rho0 and the (already
// computed) constraint classification, per spec.md §4.2:
//
//	LOOSE_BOUNDS -> rhoMin
//	EQUALITY     -> 1e3 * rho0
//	INEQUALITY   -> rho0
//
// It returns rho0 unchanged so callers can assign it straight to the
// solver's scalar rho field.
func rhoUpdate(rho0 float64, constrType []constrType, rhoVec, rhoInvVec []float64) float64 {
	for i, t := range constrType {
		switch t {
		case looseBounds:
			rhoVec[i] = rhoMin
		case equalityConstraint:
			rhoVec[i] = rhoEqFactor * rho0
		default: // inequalityConstraint
			rhoVec[i] = rho0
		}
		rhoInvVec[i] = 1 / rhoVec[i]
	}
	return rho0
}
