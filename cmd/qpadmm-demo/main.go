// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qpadmm-demo solves the box-constrained QP of spec.md §8
// scenario 3 (minimize ½(x₁²+x₂²) − x₁ − x₂ subject to 0 ≤ xᵢ ≤ 0.5) and
// prints the resulting Info. It carries no algorithmic content of its
// own — it only builds a Problem/Settings pair and calls admm.Solve.
package main

import (
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/kingdwd/polympc/admm"
)

func main() {
	maxIter := flag.Int("max-iter", 1000, "maximum ADMM iterations")
	rho := flag.Float64("rho", 1e-1, "initial penalty parameter")
	adaptiveRho := flag.Bool("adaptive-rho", false, "enable adaptive rho re-estimation")
	verbose := flag.Bool("verbose", false, "log every termination-check iteration")
	flag.Parse()

	n, m := 2, 2
	problem := &admm.Problem{
		P: mat.NewSymDense(n, []float64{1, 0, 0, 1}),
		Q: []float64{-1, -1},
		A: mat.NewDense(m, n, []float64{1, 0, 0, 1}),
		L: []float64{0, 0},
		U: []float64{0.5, 0.5},
	}

	settings := admm.DefaultSettings()
	settings.Rho = *rho
	settings.MaxIter = *maxIter
	settings.AdaptiveRho = *adaptiveRho

	solver, err := admm.NewSolver(n, m, settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qpadmm-demo:", err)
		os.Exit(1)
	}
	if *verbose {
		solver.SetLogger(admm.Logger{Level: admm.LogIteration, Msg: os.Stdout})
	}

	info, err := solver.Solve(problem)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qpadmm-demo:", err)
		os.Exit(1)
	}

	fmt.Printf("status:  %s\n", info.Status)
	fmt.Printf("iter:    %d\n", info.Iter)
	fmt.Printf("res rp:  %.6e\n", info.ResPrim)
	fmt.Printf("res rd:  %.6e\n", info.ResDual)
	fmt.Printf("x:       %v\n", solver.PrimalSolution())
	fmt.Printf("y:       %v\n", solver.DualSolution())
}
