// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

import "gonum.org/v1/gonum/mat"

// kktMatrix builds the symmetric (n+m)x(n+m) matrix
//
//	M = [ P + σI      Aᵀ     ]
//	    [   A      −diag(ρ⁻¹) ]
//
// (spec.md §4.3). Its sparsity pattern (here: dimension, since the KKT
// matrix is dense throughout this port — SPEC_FULL.md §2) depends only
// on P and A and so is constant across the iterations of one Solve call.
func kktMatrix(p *Problem, sigma float64, rhoInvVec []float64, n, m int) *mat.SymDense {
	dim := n + m
	data := make([]float64, dim*dim)
	M := mat.NewSymDense(dim, data)

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := p.P.At(i, j)
			if i == j {
				v += sigma
			}
			M.SetSym(i, j, v)
		}
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			M.SetSym(n+i, j, p.A.At(i, j))
		}
	}
	for i := 0; i < m; i++ {
		M.SetSym(n+i, n+i, -rhoInvVec[i])
	}
	return M
}

// kktRHS builds the right-hand side
//
//	rhs = [ σx − q         ]
//	      [ z − ρ⁻¹ ⊙ y    ]
//
// (spec.md §4.3).
func kktRHS(q []float64, sigma float64, x, z, y, rhoInvVec []float64, rhs []float64) {
	n, m := len(x), len(z)
	for i := 0; i < n; i++ {
		rhs[i] = sigma*x[i] - q[i]
	}
	for i := 0; i < m; i++ {
		rhs[n+i] = z[i] - rhoInvVec[i]*y[i]
	}
}
