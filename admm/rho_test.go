// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

import "testing"

func TestRhoUpdate(t *testing.T) {
	constrTypes := []constrType{looseBounds, equalityConstraint, inequalityConstraint}
	rhoVec := make([]float64, 3)
	rhoInvVec := make([]float64, 3)

	rho0 := 0.25
	got := rhoUpdate(rho0, constrTypes, rhoVec, rhoInvVec)
	if got != rho0 {
		t.Fatalf("rhoUpdate returned %v, want %v", got, rho0)
	}

	want := []float64{rhoMin, rhoEqFactor * rho0, rho0}
	for i, w := range want {
		if rhoVec[i] != w {
			t.Errorf("rhoVec[%d] = %v, want %v", i, rhoVec[i], w)
		}
		if rhoVec[i] <= 0 {
			t.Errorf("rhoVec[%d] = %v, must be positive", i, rhoVec[i])
		}
		if got := rhoInvVec[i]; got != 1/rhoVec[i] {
			t.Errorf("rhoInvVec[%d] = %v, want %v", i, got, 1/rhoVec[i])
		}
	}
}

func TestRhoUpdateAllRowTypes(t *testing.T) {
	n := 50
	constrTypes := make([]constrType, n)
	for i := range constrTypes {
		constrTypes[i] = constrType(i % 3)
	}
	rhoVec := make([]float64, n)
	rhoInvVec := make([]float64, n)
	rhoUpdate(3.0, constrTypes, rhoVec, rhoInvVec)

	for i, ct := range constrTypes {
		if rhoVec[i] <= 0 {
			t.Fatalf("rhoVec[%d] not positive", i)
		}
		switch ct {
		case looseBounds:
			if rhoVec[i] != rhoMin {
				t.Errorf("loose row %d: got %v, want rhoMin", i, rhoVec[i])
			}
		case equalityConstraint:
			if rhoVec[i] != rhoEqFactor*3.0 {
				t.Errorf("equality row %d: got %v, want %v", i, rhoVec[i], rhoEqFactor*3.0)
			}
		case inequalityConstraint:
			if rhoVec[i] != 3.0 {
				t.Errorf("inequality row %d: got %v, want 3.0", i, rhoVec[i])
			}
		}
	}
}
