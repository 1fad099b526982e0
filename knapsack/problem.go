package knapsack

import (
	"errors"
	"math"
	"sort"

	"github.com/katalvlaran/lvlp/model"
)

// Sentinel errors. Input errors are wrapped in a *model.InputError, so
// errors.Is(err, model.ErrInvalidModel) holds for all of them.
var (
	// ErrNotSingleConstraint indicates a model with zero or several rows.
	ErrNotSingleConstraint = errors.New("knapsack: model must have exactly one constraint")

	// ErrNegativeWeight indicates an item with negative weight.
	ErrNegativeWeight = errors.New("knapsack: negative weight")

	// ErrNegativeCapacity indicates a negative capacity.
	ErrNegativeCapacity = errors.New("knapsack: negative capacity")

	// ErrMinimize indicates a minimization model.
	ErrMinimize = errors.New("knapsack: only maximization is supported")

	// ErrBadMaxNodes indicates a non-positive node budget.
	ErrBadMaxNodes = errors.New("knapsack: max nodes must be > 0")

	// ErrBadTimeLimit indicates a negative wall-clock budget.
	ErrBadTimeLimit = errors.New("knapsack: time limit must be >= 0")
)

// Problem is a 0/1 knapsack instance with its search order.
//
// Eligible[j] false excludes item j from every solution. Order lists the
// eligible items by value/weight ratio descending (zero weight ranks as +Inf),
// then higher value, then lower index.
type Problem struct {
	Values   []float64
	Weights  []float64
	Capacity float64
	Eligible []bool
	Order    []int
}

// NewProblem validates the instance and computes the search order. A nil
// eligible means every item is eligible.
func NewProblem(values, weights []float64, capacity float64, eligible []bool) (*Problem, error) {
	n := len(values)
	if n == 0 {
		return nil, &model.InputError{Field: "objective", Index: -1, Err: model.ErrEmptyObjective}
	}
	if len(weights) != n {
		return nil, &model.InputError{Field: "weights", Index: -1, Err: model.ErrDimensionMismatch}
	}
	if eligible != nil && len(eligible) != n {
		return nil, &model.InputError{Field: "integral", Index: -1, Err: model.ErrDimensionMismatch}
	}
	if !finite(capacity) {
		return nil, &model.InputError{Field: "capacity", Index: -1, Err: model.ErrNonFinite}
	}
	if capacity < 0 {
		return nil, &model.InputError{Field: "capacity", Index: -1, Err: ErrNegativeCapacity}
	}
	for j := 0; j < n; j++ {
		if !finite(values[j]) {
			return nil, &model.InputError{Field: "objective", Index: j, Err: model.ErrNonFinite}
		}
		if !finite(weights[j]) {
			return nil, &model.InputError{Field: "weights", Index: j, Err: model.ErrNonFinite}
		}
		if weights[j] < 0 {
			return nil, &model.InputError{Field: "weights", Index: j, Err: ErrNegativeWeight}
		}
	}

	p := &Problem{
		Values:   append([]float64(nil), values...),
		Weights:  append([]float64(nil), weights...),
		Capacity: capacity,
		Eligible: make([]bool, n),
	}
	for j := range p.Eligible {
		p.Eligible[j] = eligible == nil || eligible[j]
		if p.Eligible[j] {
			p.Order = append(p.Order, j)
		}
	}
	sort.SliceStable(p.Order, func(a, b int) bool {
		i, k := p.Order[a], p.Order[b]
		ri, rk := p.ratio(i), p.ratio(k)
		if ri != rk {
			return ri > rk
		}
		if p.Values[i] != p.Values[k] {
			return p.Values[i] > p.Values[k]
		}

		return i < k
	})

	return p, nil
}

// FromModel reads a single-row maximization model: values are the
// objective, weights the row and capacity its rhs. Items whose integrality
// flag is false are ineligible.
func FromModel(m *model.LinearModel) (*Problem, error) {
	if m == nil {
		return nil, model.ErrInvalidModel
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Sense != model.Maximize {
		return nil, &model.InputError{Field: "sense", Index: -1, Err: ErrMinimize}
	}
	if m.M() != 1 {
		return nil, &model.InputError{Field: "rows", Index: m.M(), Err: ErrNotSingleConstraint}
	}

	return NewProblem(m.Objective, m.Row(0), m.RHS[0], m.IntegralMask())
}

// N returns the number of items, eligible or not.
func (p *Problem) N() int { return len(p.Values) }

func (p *Problem) ratio(j int) float64 {
	if p.Weights[j] == 0 {
		return math.Inf(1)
	}

	return p.Values[j] / p.Weights[j]
}

// Bound returns the fractional-relaxation upper bound on the value that the
// items Order[pos:] can add when weight is already used.
//
// Items are filled greedily in ratio order; the first one that does not fit
// contributes the fraction that does. Items with value ≤ 0 are skipped and
// zero-weight items always count, even at full capacity.
//
// Complexity: O(n).
func (p *Problem) Bound(pos int, weight float64) float64 {
	var (
		rem   = p.Capacity - weight
		bound float64
		j     int
	)
	for k := pos; k < len(p.Order); k++ {
		j = p.Order[k]
		if p.Values[j] <= 0 {
			continue
		}
		switch {
		case p.Weights[j] <= rem:
			rem -= p.Weights[j]
			bound += p.Values[j]
		case rem > 0:
			bound += p.Values[j] * rem / p.Weights[j]
			rem = 0
		}
	}

	return bound
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
