// Package simplex implements the revised simplex method with a product-form
// (eta file) basis inverse.
//
// Problem form:
//
//	max (or min)  c·x   s.t.  A·x ≤ b,  x ≥ 0
//
// Every row gets a slack, so the engine always starts from the all-slack
// basis B = I with an empty eta file. Minimization negates c internally; the
// objective and shadow prices in Result are reported back in the model's
// direction.
//
// A primal-infeasible basis (some B⁻¹b entry below −tolerance.Feasibility,
// typically from ≥ rows or from a warm-started cut) is repaired inside
// Optimize: dual pivots when the basis is dual feasible, phase-one pivots
// otherwise. Callers never choose a phase.
//
// The engine is built to be kept alive: AddRowAndWarmStart appends a row and
// keeps the basis, which is how the cutting-plane solver re-optimizes after
// each cut without rebuilding. Refactor (automatic every RefactorEvery etas)
// rebuilds the eta file for the current basis to bound its growth.
//
// Basic usage:
//
//	e, err := simplex.New(m)
//	if err != nil {
//		return err
//	}
//	res := e.Optimize(ctx)
//	if res.Status == simplex.StatusOptimal {
//		fmt.Println(res.Objective, res.X[:m.N()])
//	}
//
// Complexity: each iteration costs O(k·m + n·m) for an eta file of length k.
package simplex
