package sensitivity

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlp/tolerance"
	"github.com/katalvlaran/lvlp/trace"
)

// Range is the interval of allowed changes [Lower, Upper] to a coefficient
// whose current value is Current, within which the analyzed basis stays
// optimal (cost and coefficient ranges) or feasible (rhs ranges). Lower ≤ 0
// ≤ Upper; either end may be infinite.
type Range struct {
	Current float64
	Lower   float64
	Upper   float64
}

func fullRange(cur float64) Range {
	return Range{Current: cur, Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Min returns the smallest allowed value.
func (r Range) Min() float64 { return r.Current + r.Lower }

// Max returns the largest allowed value.
func (r Range) Max() float64 { return r.Current + r.Upper }

// Contains reports whether v is an allowed value.
func (r Range) Contains(v float64) bool {
	delta := v - r.Current

	return delta >= r.Lower-tolerance.Zero && delta <= r.Upper+tolerance.Zero
}

// String renders "[min, max]" with inf for open ends.
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", trace.Num(r.Min()), trace.Num(r.Max()))
}

// tighten narrows r with a bound on the change: lower when isLower, upper
// otherwise.
func (r *Range) tighten(bound float64, isLower bool) {
	if isLower {
		r.Lower = math.Max(r.Lower, bound)
	} else {
		r.Upper = math.Min(r.Upper, bound)
	}
}

// flip converts a range on the internal (maximization) cost into the
// model's direction for minimization models.
func (a *Analyzer) flip(r Range) Range {
	if a.sign > 0 {
		return r
	}
	r.Lower, r.Upper = -r.Upper, -r.Lower

	return r
}

// NonbasicCostRange returns the range of c_j for a nonbasic structural j.
//
// Raising the internal cost by δ lowers d_j by δ, so the basis stays optimal
// while δ ≤ d_j: (−∞, c_j + d_j] for maximization and [c_j − d_j, +∞)
// for minimization.
func (a *Analyzer) NonbasicCostRange(j int) (Range, error) {
	if err := a.checkColumn(j); err != nil {
		return Range{}, err
	}
	if a.eng.IsBasic(j) {
		return Range{}, fmt.Errorf("x%d: %w", j+1, ErrBasicColumn)
	}

	return a.flip(Range{Current: a.lm.Objective[j], Lower: math.Inf(-1), Upper: a.d[j]}), nil
}

// BasicCostRange returns the range of the cost of the structural variable
// basic in row i.
//
// A change δ of that internal cost moves every nonbasic d_k by δ·w_k with
// w_k = (B⁻¹A)_{i,k}; d_k + δ·w_k ≥ 0 gives a lower bound −d_k/w_k for
// w_k > 0 and an upper bound for w_k < 0. |w_k| ≤ tolerance.Zero is ignored.
//
// Complexity: O(m·(n+m)).
func (a *Analyzer) BasicCostRange(i int) (Range, error) {
	if err := a.checkRow(i); err != nil {
		return Range{}, err
	}
	j := a.basis[i]
	if j >= a.n {
		return Range{}, fmt.Errorf("row %d: %w", i, ErrSlackColumn)
	}

	r := Range{Current: a.lm.Objective[j], Lower: math.Inf(-1), Upper: math.Inf(1)}
	var w float64
	for k := 0; k < a.n+a.m; k++ {
		if a.eng.IsBasic(k) {
			continue
		}
		w = a.tableau(i, k)
		if math.Abs(w) <= tolerance.Zero {
			continue
		}
		r.tighten(-a.d[k]/w, w > 0)
	}

	return a.flip(r), nil
}

// CostRange dispatches to NonbasicCostRange or BasicCostRange for the
// structural variable j.
func (a *Analyzer) CostRange(j int) (Range, error) {
	if err := a.checkColumn(j); err != nil {
		return Range{}, err
	}
	if row := a.eng.BasisRow(j); row >= 0 {
		return a.BasicCostRange(row)
	}

	return a.NonbasicCostRange(j)
}

// RHSRange returns the range of b_i over which the basis stays feasible.
//
// b_i + δ moves xB by δ·B⁻¹e_i; for each row k with d = B⁻¹_{k,i},
// xB_k + δ·d ≥ 0 bounds δ from below (d > 0) or above (d < 0) by −xB_k/d.
// The range does not depend on the objective direction.
//
// Complexity: O(m).
func (a *Analyzer) RHSRange(i int) (Range, error) {
	if err := a.checkRow(i); err != nil {
		return Range{}, err
	}
	r := fullRange(a.lm.RHS[i])
	col := a.binv.Col(i)
	for k, d := range col {
		if math.Abs(d) <= tolerance.Zero {
			continue
		}
		r.tighten(-math.Max(a.xB[k], 0)/d, d > 0)
	}

	return r, nil
}

// ColumnRange returns the range of the coefficient A_{i,j} of a nonbasic
// structural j over which the basis stays optimal.
//
// A change δ moves d_j by δ·y_i: the bound −d_j/y_i is a lower bound for
// y_i > 0 and an upper bound for y_i < 0. A row with |y_i| ≤ tolerance.Zero
// does not price the column, so every change is allowed.
func (a *Analyzer) ColumnRange(j, i int) (Range, error) {
	if err := a.checkColumn(j); err != nil {
		return Range{}, err
	}
	if err := a.checkRow(i); err != nil {
		return Range{}, err
	}
	if a.eng.IsBasic(j) {
		return Range{}, fmt.Errorf("x%d: %w", j+1, ErrBasicColumn)
	}

	r := fullRange(a.lm.Rows[i][j])
	if y := a.y[i]; math.Abs(y) > tolerance.Zero {
		r.tighten(-a.d[j]/y, y > 0)
	}

	return r, nil
}
