// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

import (
	"fmt"
	"io"
)

// LogLevel controls the frequency of logger output.
type LogLevel int

const (
	// LogSilent: no output is generated (default).
	LogSilent LogLevel = iota
	// LogSummary: print one line when the solve finishes.
	LogSummary
	// LogIteration: also print iter, objective, r_prim, r_dual every
	// time the termination criteria are evaluated. This is the runtime
	// equivalent of the reference source's OSQP_PRINTING build switch
	// (spec.md §6) — see SPEC_FULL.md §1.2.
	LogIteration
	// LogVerbose: also print rho and its adaptation decisions.
	LogVerbose
)

// Logger handles logging output for a Solver. The zero value is silent.
// Msg must be safe for use from a single goroutine; Solve is not
// concurrency-safe regardless (spec.md §5).
type Logger struct {
	Level LogLevel
	Msg   io.Writer
}

func (l *Logger) enabled(level LogLevel) bool {
	return l != nil && l.Msg != nil && l.Level >= level
}

func (l *Logger) logf(format string, a ...any) {
	_, _ = fmt.Fprintf(l.Msg, format, a...)
}
