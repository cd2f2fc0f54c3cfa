// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

import "fmt"

// Kind classifies the reason a Solver operation failed.
//
// NonConvergence is deliberately not part of this taxonomy: hitting
// max_iter without satisfying the termination criteria is a normal
// outcome, reported through Info.Status rather than returned as an error.
type Kind int

const (
	// InvalidSettings: a Settings field is outside its documented domain
	// (nonpositive rho/sigma, alpha not in (0,2), negative tolerance, ...).
	InvalidSettings Kind = iota
	// InvalidProblem: l[i] > u[i], or a non-finite entry in P, q, A, or the
	// finite side of l/u.
	InvalidProblem
	// FactorizationError: the linear-solver adapter could not factorize
	// the KKT matrix.
	FactorizationError
)

func (k Kind) String() string {
	switch k {
	case InvalidSettings:
		return "invalid settings"
	case InvalidProblem:
		return "invalid problem"
	case FactorizationError:
		return "factorization error"
	default:
		return "unknown error"
	}
}

// Error reports a Kind together with a human-readable cause. It is the
// only error type returned from this package's exported functions.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("admm: %s: %s", e.Kind, e.Msg)
}

// Is allows errors.Is(err, &Error{Kind: k}) style matching on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func errf(kind Kind, format string, a ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}
