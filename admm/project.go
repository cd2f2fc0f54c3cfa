// Copyright ©2026 polympc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package admm

import "math"

// boxProject applies z ← max(l, min(u, z)) componentwise (spec.md §4.9).
// Idempotent: boxProject(boxProject(v)) == boxProject(v).
func boxProject(z, l, u []float64) {
	for i := range z {
		z[i] = math.Max(l[i], math.Min(u[i], z[i]))
	}
}
