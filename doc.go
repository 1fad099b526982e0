// Package lvlp is an exact optimization toolkit for small and medium linear
// and integer programs.
//
// What is inside?
//
//	model/        – LinearModel: objective, ≤ rows, integrality flags, validation
//	simplex/      – revised simplex on a product-form (eta) inverse with dual
//	                pivots, warm start after row appends and periodic reinversion
//	branchbound/  – depth-first branch-and-bound over LP relaxations
//	cutplane/     – Gomory fractional cuts with a knapsack-cover fallback on one
//	                warm-started engine
//	knapsack/     – 0/1 knapsack search with a greedy seed and fractional bound
//	sensitivity/  – ranging, what-if re-solves and duality on an optimal basis
//	solver/       – one entry point over all engines with a uniform Report
//	trace/        – ordered, typed solve events and their text rendering
//	matrix/       – dense matrices with LU inversion for explicit B⁻¹
//	tolerance/    – the fixed numeric tolerances
//
// Ambient packages: logging (slog JSON with file rotation and trace ids),
// metrics (Prometheus), tracing (OpenTelemetry spans) and config (viper files
// validated with go-playground/validator).
//
// Quick start:
//
//	m := model.New(model.Maximize, []float64{5, 4})
//	_ = m.AddLe([]float64{6, 4}, 24)
//	_ = m.AddLe([]float64{1, 2}, 6)
//	rep, err := solver.Solve(ctx, m, solver.MethodBranchBound)
//	// rep.Objective == 20, rep.X == [4 0]
//
// Every engine is single-threaded and deterministic: ties are broken by the
// lowest index, so the same model always yields the same trace.
package lvlp
