package sensitivity

import (
	"context"
	"math"

	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/tolerance"
)

// Duality compares the primal objective with the dual objective Σ b_i·y_i.
type Duality struct {
	Primal float64
	Dual   float64
	Gap    float64
	Strong bool // |Gap| ≤ tolerance.Duality
}

// Duality evaluates the dual objective with the model-direction shadow
// prices. At an optimal basis strong duality must hold.
func (a *Analyzer) Duality() Duality {
	var dual float64
	for i, y := range a.ShadowPrices() {
		dual += a.lm.RHS[i] * y
	}
	p := a.Objective()
	gap := p - dual

	return Duality{Primal: p, Dual: dual, Gap: gap, Strong: math.Abs(gap) <= tolerance.Duality}
}

// DualModel builds the LP dual of the analyzed model in ≤ form.
//
// For max c·x, A·x ≤ b, x ≥ 0 the dual is min b·y, Aᵀy ≥ c, y ≥ 0, written
// as −Aᵀy ≤ −c. For min c·x it is max b·y, Aᵀy ≤ c, y ≤ 0; with u = −y ≥ 0
// that is max −b·u, −Aᵀu ≤ c. Both share the primal optimum; the
// minimization case recovers the shadow prices as −u. The dual variables are
// continuous.
func (a *Analyzer) DualModel() *model.LinearModel {
	dm := &model.LinearModel{
		Objective: make([]float64, a.m),
		Rows:      make([][]float64, a.n),
		RHS:       make([]float64, a.n),
		Integral:  make([]bool, a.m),
	}
	if a.sense == model.Maximize {
		dm.Sense = model.Minimize
		copy(dm.Objective, a.lm.RHS)
	} else {
		dm.Sense = model.Maximize
		for i, b := range a.lm.RHS {
			dm.Objective[i] = -b
		}
	}
	for j := 0; j < a.n; j++ {
		row := a.at.Row(j)
		for i := range row {
			row[i] = -row[i]
		}
		dm.Rows[j] = row
		dm.RHS[j] = -a.sign * a.lm.Objective[j]
	}

	return dm
}

// SolveDual solves DualModel from scratch. Its objective equals the primal
// optimum.
func (a *Analyzer) SolveDual(ctx context.Context) (simplex.Result, error) {
	return a.resolve(ctx, a.DualModel())
}
