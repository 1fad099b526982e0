package simplex

import (
	"context"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvlp/tolerance"
	"github.com/katalvlaran/lvlp/trace"
)

// Optimize pivots from the current basis until a terminal status.
//
// Each iteration:
//  1. xB = B⁻¹b. If some xB_i < −tolerance.Feasibility the basis is primal
//     infeasible: from a dual-feasible basis take a dual pivot on the most
//     negative row, otherwise a phase-one pivot that shrinks the total
//     infeasibility. Either rule finding no column proves infeasibility.
//  2. y = B⁻ᵀc_B and the improvement rate c_j − y·A_j of every nonbasic
//     column (slack columns: −y_i).
//  3. Entering column: most positive rate, lowest index on ties. None means
//     optimal.
//  4. d = B⁻¹A_enter; ratio test xB_i/d_i over d_i > tolerance.Zero, lowest
//     row on ties. None means unbounded.
//  5. Pivot: basis swap and a new eta (r, d).
//
// After blandAfter consecutive degenerate pivots, steps 3 and 4 switch to
// Bland's rule until a pivot makes progress.
//
// The context and the MaxIterations budget are checked at the top of every
// iteration.
func (e *Engine) Optimize(ctx context.Context) Result {
	start := e.iterations
	e.opts.Logger.DebugContext(ctx, "simplex: optimize",
		slog.Int("rows", e.m), slog.Int("cols", e.n), slog.Int("etas", len(e.etas)))

	e.status = e.run(ctx, start)
	res := e.result(e.status, e.iterations-start)

	e.opts.Logger.DebugContext(ctx, "simplex: done",
		slog.String("status", res.Status.String()),
		slog.Float64("objective", res.Objective),
		slog.Int("iterations", res.Iterations))

	return res
}

func (e *Engine) run(ctx context.Context, start int) Status {
	var (
		xB    = make([]float64, e.m)
		y     = make([]float64, e.m)
		d     = make([]float64, e.m)
		r, j  int
		ratio float64
		bland bool
	)
	for {
		if ctx.Err() != nil {
			return StatusCanceled
		}
		if e.iterations-start >= e.opts.MaxIterations {
			return StatusIterationLimit
		}

		copy(xB, e.b)
		e.etas.ftran(xB)
		e.duals(y)

		if r = mostNegative(xB); r >= 0 {
			if e.dualFeasible(y) {
				if j, ratio = e.dualEntering(r, y); j < 0 {
					return StatusInfeasible
				}
				e.column(j, d)
				e.etas.ftran(d)
				e.pivot(trace.PivotDual, r, j, d, ratio)

				continue
			}
			if j = e.phaseOneEntering(xB); j < 0 {
				return StatusInfeasible
			}
			e.column(j, d)
			e.etas.ftran(d)
			if r, ratio = phaseOneRow(xB, d); r < 0 {
				return StatusInfeasible
			}
			e.pivot(trace.PivotPhaseOne, r, j, d, ratio)

			continue
		}

		bland = e.degenerate >= blandAfter
		if j = e.primalEntering(y, bland); j < 0 {
			return StatusOptimal
		}
		e.column(j, d)
		e.etas.ftran(d)
		if r, ratio = e.ratioTest(xB, d, bland); r < 0 {
			return StatusUnbounded
		}
		if ratio <= tolerance.Zero {
			e.degenerate++
		} else {
			e.degenerate = 0
		}
		e.pivot(trace.PivotPrimal, r, j, d, ratio)
	}
}

// mostNegative returns the row with the smallest xB_i < −Feasibility, lowest
// row on ties, or −1.
func mostNegative(xB []float64) int {
	r, worst := -1, -tolerance.Feasibility
	for i, v := range xB {
		if v < worst {
			r, worst = i, v
		}
	}

	return r
}

// dualFeasible reports whether every nonbasic price-out value is ≥ −Zero.
func (e *Engine) dualFeasible(y []float64) bool {
	for j := 0; j < e.n+e.m; j++ {
		if e.where[j] < 0 && e.price(j, y) < -tolerance.Zero {
			return false
		}
	}

	return true
}

// dualEntering picks the entering column for leaving row r: among nonbasic
// j with (B⁻¹A)_{r,j} < −Zero, minimize max(d_j, 0)/−(B⁻¹A)_{r,j}, lowest
// index on ties. Returns −1 when no column qualifies.
func (e *Engine) dualEntering(r int, y []float64) (int, float64) {
	rho := make([]float64, e.m)
	rho[r] = 1
	e.etas.btran(rho)

	var (
		best      = math.Inf(1)
		enter     = -1
		i, j      int
		drj, cand float64
	)
	for j = 0; j < e.n+e.m; j++ {
		if e.where[j] >= 0 {
			continue
		}
		if j >= e.n {
			drj = rho[j-e.n]
		} else {
			drj = 0
			for i = 0; i < e.m; i++ {
				drj += rho[i] * e.a[i][j]
			}
		}
		if drj >= -tolerance.Zero {
			continue
		}
		cand = math.Max(e.price(j, y), 0) / -drj
		if cand < best {
			best, enter = cand, j
		}
	}

	return enter, best
}

// phaseOneEntering picks the column that most increases the sum of the
// negative basic values, lowest index on ties, or −1.
func (e *Engine) phaseOneEntering(xB []float64) int {
	w := make([]float64, e.m)
	for i, v := range xB {
		if v < -tolerance.Feasibility {
			w[i] = 1
		}
	}
	e.etas.btran(w)

	best, enter := tolerance.Zero, -1
	for j := 0; j < e.n+e.m; j++ {
		if e.where[j] >= 0 {
			continue
		}
		// rate = −w·A_j, i.e. price(j, w) with zero cost, negated
		rate := -e.price(j, w)
		if j < e.n {
			rate -= e.c[j]
		}
		if rate > best {
			best, enter = rate, j
		}
	}

	return enter
}

// phaseOneRow bounds the step so that feasible rows stay feasible and stops
// at the first infeasible row that reaches zero. Lowest row on ties.
func phaseOneRow(xB, d []float64) (int, float64) {
	r, best := -1, math.Inf(1)
	var t float64
	for i := range xB {
		switch {
		case xB[i] >= -tolerance.Feasibility && d[i] > tolerance.Zero:
			t = math.Max(xB[i], 0) / d[i]
		case xB[i] < -tolerance.Feasibility && d[i] < -tolerance.Zero:
			t = xB[i] / d[i]
		default:
			continue
		}
		if t < best {
			r, best = i, t
		}
	}

	return r, best
}

// primalEntering returns the nonbasic column with the most positive
// improvement rate c_j − y·A_j (or the lowest-index positive one under
// Bland's rule), or −1 at optimum.
func (e *Engine) primalEntering(y []float64, bland bool) int {
	best, enter := tolerance.Zero, -1
	for j := 0; j < e.n+e.m; j++ {
		if e.where[j] >= 0 {
			continue
		}
		rate := -e.price(j, y)
		if rate > best {
			if bland {
				return j
			}
			best, enter = rate, j
		}
	}

	return enter
}

// ratioTest returns the leaving row: minimum xB_i/d_i over d_i > Zero,
// lowest row on ties (lowest basic column under Bland's rule), or −1.
func (e *Engine) ratioTest(xB, d []float64, bland bool) (int, float64) {
	r, best := -1, math.Inf(1)
	var t float64
	for i := range d {
		if d[i] <= tolerance.Zero {
			continue
		}
		t = math.Max(xB[i], 0) / d[i]
		switch {
		case t < best:
			r, best = i, t
		case bland && t == best && e.basis[i] < e.basis[r]:
			r = i
		}
	}

	return r, best
}

// pivot swaps column j into row r and appends the eta (r, d).
func (e *Engine) pivot(rule trace.PivotKind, r, j int, d []float64, ratio float64) {
	leaving := e.basis[r]
	e.where[leaving] = -1
	e.basis[r] = j
	e.where[j] = r
	e.etas = append(e.etas, eta{r: r, d: append([]float64(nil), d...)})
	e.iterations++

	e.opts.Trace.Emit(trace.Pivot{
		Rule:      rule,
		Iteration: e.iterations,
		Entering:  trace.Var{Index: j, N: e.n},
		Leaving:   trace.Var{Index: leaving, N: e.n},
		Row:       r,
		Ratio:     ratio,
	})
	e.opts.Metrics.ObservePivot(rule.String())

	if e.opts.RefactorEvery > 0 && len(e.etas) >= e.opts.RefactorEvery {
		if err := e.Refactor(); err != nil {
			e.opts.Logger.Warn("simplex: reinversion skipped", slog.Any("error", err))
		}
	}
}

// result snapshots the engine state for status s.
func (e *Engine) result(s Status, iterations int) Result {
	res := Result{
		Status:     s,
		Objective:  math.NaN(),
		Basis:      e.Basis(),
		Iterations: iterations,
	}
	switch s {
	case StatusUnbounded:
		res.Objective = math.Inf(int(e.sign))
	case StatusOptimal:
		xB := e.XB()
		x := make([]float64, e.n+e.m)
		for i, j := range e.basis {
			x[j] = clean(xB[i])
		}
		var z float64
		for j := 0; j < e.n; j++ {
			z += e.c[j] * x[j]
		}
		res.X = x
		res.Objective = clean(e.sign * z)

		y := make([]float64, e.m)
		e.duals(y)
		res.ShadowPrices = make([]float64, e.m)
		for i := range y {
			res.ShadowPrices[i] = clean(e.sign * y[i])
		}
		res.ReducedCosts = make([]float64, e.n+e.m)
		for j := range res.ReducedCosts {
			if e.where[j] < 0 {
				res.ReducedCosts[j] = clean(e.price(j, y))
			}
		}
	}

	return res
}
