package sensitivity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/tolerance"
)

// Activity is the verdict on a hypothetical new column.
//
// ReducedCost is the price-out y·a − c in the internal maximization: ≥ 0
// means the column would stay nonbasic; < 0 means it would enter and Result
// holds the re-optimized model with the column appended as x_{n+1}.
type Activity struct {
	ReducedCost float64
	Enters      bool
	Result      *simplex.Result
}

// AddActivity prices a new variable with objective coefficient cost and
// constraint coefficients a (one per row).
func (a *Analyzer) AddActivity(ctx context.Context, cost float64, col []float64) (Activity, error) {
	if len(col) != a.m {
		return Activity{}, fmt.Errorf("activity: %d coefficients for %d rows: %w", len(col), a.m, ErrLength)
	}
	var d float64
	for i, v := range col {
		d += a.y[i] * v
	}
	d -= a.sign * cost

	act := Activity{ReducedCost: d, Enters: d < -tolerance.Zero}
	if !act.Enters {
		return act, nil
	}

	lm := a.lm.Clone()
	lm.Objective = append(lm.Objective, cost)
	for i := range lm.Rows {
		row := make([]float64, a.n+1)
		copy(row, lm.Rows[i][:a.n])
		row[a.n] = col[i]
		lm.Rows[i] = row
	}
	if lm.Integral != nil {
		lm.Integral = append(lm.Integral, false)
	}
	res, err := a.resolve(ctx, lm)
	if err != nil {
		return Activity{}, err
	}
	act.Result = &res

	return act, nil
}

// Constraint is the verdict on a hypothetical new row a·x ≤ b.
//
// A satisfied row keeps the current solution and Result is nil. A violated
// row is appended to a clone of the engine and re-optimized from the current
// basis by dual pivots.
type Constraint struct {
	LHS       float64
	Satisfied bool
	Result    *simplex.Result
}

// AddConstraint evaluates the row a·x ≤ b at the analyzed solution.
func (a *Analyzer) AddConstraint(ctx context.Context, row []float64, b float64) (Constraint, error) {
	if len(row) != a.n {
		return Constraint{}, fmt.Errorf("constraint: %d coefficients for %d variables: %w", len(row), a.n, ErrLength)
	}
	var lhs float64
	for j, v := range row {
		lhs += v * a.x[j]
	}
	c := Constraint{LHS: lhs, Satisfied: lhs <= b+tolerance.Feasibility}
	if c.Satisfied {
		return c, nil
	}

	eng := a.eng.Clone()
	if err := eng.AddRowAndWarmStart(row, b); err != nil {
		return Constraint{}, fmt.Errorf("constraint: %w", err)
	}
	res := eng.Optimize(ctx)
	a.opts.Logger.Debug("sensitivity: constraint re-optimized",
		slog.String("status", res.Status.String()),
		slog.Int("iterations", res.Iterations))
	c.Result = &res

	return c, nil
}

// Change is the verdict on replacing one coefficient.
//
// Within the range the basis is unchanged and Objective is updated
// analytically; outside it the modified model is re-solved and Result holds
// the new optimum.
type Change struct {
	Range       Range
	WithinRange bool
	Objective   float64
	Result      *simplex.Result
}

// ApplyCostChange evaluates replacing c_j with cost.
func (a *Analyzer) ApplyCostChange(ctx context.Context, j int, cost float64) (Change, error) {
	r, err := a.CostRange(j)
	if err != nil {
		return Change{}, err
	}
	ch := Change{Range: r, WithinRange: r.Contains(cost)}
	if ch.WithinRange {
		ch.Objective = a.Objective() + (cost-r.Current)*a.x[j]
		return ch, nil
	}

	lm := a.lm.Clone()
	lm.Objective[j] = cost
	res, err := a.resolve(ctx, lm)
	if err != nil {
		return Change{}, err
	}
	ch.Objective, ch.Result = res.Objective, &res

	return ch, nil
}

// ApplyRHSChange evaluates replacing b_i with b.
func (a *Analyzer) ApplyRHSChange(ctx context.Context, i int, b float64) (Change, error) {
	r, err := a.RHSRange(i)
	if err != nil {
		return Change{}, err
	}
	ch := Change{Range: r, WithinRange: r.Contains(b)}
	if ch.WithinRange {
		ch.Objective = a.Objective() + (b-r.Current)*a.sign*a.y[i]
		return ch, nil
	}

	lm := a.lm.Clone()
	lm.RHS[i] = b
	res, err := a.resolve(ctx, lm)
	if err != nil {
		return Change{}, err
	}
	ch.Objective, ch.Result = res.Objective, &res

	return ch, nil
}

// resolve solves lm from scratch.
func (a *Analyzer) resolve(ctx context.Context, lm *model.LinearModel) (simplex.Result, error) {
	opts := append([]simplex.Option{simplex.WithLogger(a.opts.Logger)}, a.opts.Simplex...)
	eng, err := simplex.New(lm, opts...)
	if err != nil {
		return simplex.Result{}, fmt.Errorf("sensitivity: %w", err)
	}

	return eng.Optimize(ctx), nil
}
