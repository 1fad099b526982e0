package simplex

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlp/matrix"
	"github.com/katalvlaran/lvlp/tolerance"
	"github.com/katalvlaran/lvlp/trace"
)

// Refactor rebuilds the eta file from the identity for the current basis.
//
// Basic slack columns keep the identity row they own and need no eta. Each
// basic structural column is then pivoted in, in basis order, on the free
// row with the largest |d_r| (lowest row on ties). The basis row order may
// change; the basic set does not. B is LU-factorized first; on a numerically
// singular basis the engine is left untouched and ErrSingularBasis is
// returned.
//
// Complexity: O(m³ + s·k·m) for s structural basic columns and k ≤ s etas.
func (e *Engine) Refactor() error {
	if e.m > 0 {
		B, err := e.BasisMatrix()
		if err != nil {
			return fmt.Errorf("Refactor: %w", err)
		}
		if _, err = matrix.Factorize(B); err != nil {
			return fmt.Errorf("Refactor: %w: %w", ErrSingularBasis, err)
		}
	}

	before := len(e.etas)
	order := make([]int, e.m)
	for i := range order {
		order[i] = -1
	}
	structural := make([]int, 0, e.m)
	for _, j := range e.basis {
		if j >= e.n {
			order[j-e.n] = j
		} else {
			structural = append(structural, j)
		}
	}

	var (
		etas    etaFile
		d       = make([]float64, e.m)
		r, i    int
		best, v float64
	)
	for _, j := range structural {
		e.column(j, d)
		etas.ftran(d)
		r, best = -1, tolerance.Zero
		for i = 0; i < e.m; i++ {
			if order[i] < 0 {
				if v = math.Abs(d[i]); v > best {
					r, best = i, v
				}
			}
		}
		if r < 0 {
			return fmt.Errorf("Refactor: column %s: %w", trace.Var{Index: j, N: e.n}, ErrSingularBasis)
		}
		etas = append(etas, eta{r: r, d: append([]float64(nil), d...)})
		order[r] = j
	}

	e.basis = order
	for j := range e.where {
		e.where[j] = -1
	}
	for i, j := range e.basis {
		e.where[j] = i
	}
	e.etas = etas

	e.opts.Trace.Emit(trace.Refactor{Iteration: e.iterations, EtasIn: before, EtasOut: len(etas)})
	e.opts.Metrics.ObserveRefactor()

	return nil
}
