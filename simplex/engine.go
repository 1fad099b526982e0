package simplex

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlp/matrix"
	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/tolerance"
)

// Engine is a revised simplex solver over one LinearModel.
//
// Columns 0..n−1 are the structural variables, n..n+m−1 the slacks of rows
// 0..m−1. The basis inverse lives only in the eta file; the engine starts
// from the all-slack basis with an empty file (B = I).
//
// An Engine is not safe for concurrent use. Clone it for what-if work.
type Engine struct {
	sense model.Sense
	sign  float64 // +1 max, −1 min; internal costs are sign·c
	n, m  int

	a        [][]float64 // m×n structural coefficients
	b        []float64
	c        []float64 // internal (maximization) costs
	integral []bool

	basis []int // basis[i] = column basic in row i
	where []int // where[j] = basis row of column j, −1 when nonbasic
	etas  etaFile

	status     Status
	iterations int // lifetime pivot count
	degenerate int // consecutive degenerate primal pivots

	opts Options
}

// New validates m and builds the all-slack starting basis. The model is
// copied; later changes to m do not affect the engine.
func New(m *model.LinearModel, opts ...Option) (*Engine, error) {
	if m == nil {
		return nil, fmt.Errorf("simplex: nil model: %w", model.ErrInvalidModel)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("simplex: %w", err)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n, rows := m.N(), m.M()
	e := &Engine{
		sense:    m.Sense,
		sign:     m.Sense.Sign(),
		n:        n,
		m:        rows,
		a:        make([][]float64, rows),
		b:        append([]float64(nil), m.RHS...),
		c:        make([]float64, n),
		integral: m.IntegralMask(),
		basis:    make([]int, rows),
		where:    make([]int, n+rows),
		opts:     o,
	}
	var i, j int
	for j = 0; j < n; j++ {
		e.c[j] = e.sign * m.Objective[j]
		e.where[j] = -1
	}
	for i = 0; i < rows; i++ {
		e.a[i] = append([]float64(nil), m.Rows[i][:n]...)
		e.basis[i] = n + i
		e.where[n+i] = i
	}

	return e, nil
}

// Sense is the model's objective direction.
func (e *Engine) Sense() model.Sense { return e.sense }

// Status is the outcome of the last Optimize, or StatusUnsolved after a
// change.
func (e *Engine) Status() Status { return e.status }

// Rows is the current number of constraint rows m.
func (e *Engine) Rows() int { return e.m }

// Cols is the number of structural variables n.
func (e *Engine) Cols() int { return e.n }

// Iterations is the number of pivots performed over the engine's lifetime.
func (e *Engine) Iterations() int { return e.iterations }

// EtaCount is the current length of the eta file.
func (e *Engine) EtaCount() int { return len(e.etas) }

// Basis returns a copy of the basic column indices in row order.
func (e *Engine) Basis() []int { return append([]int(nil), e.basis...) }

// IsBasic reports whether column j is in the basis.
func (e *Engine) IsBasic(j int) bool { return j >= 0 && j < len(e.where) && e.where[j] >= 0 }

// BasisRow returns the basis row holding column j, or −1.
func (e *Engine) BasisRow(j int) int {
	if j < 0 || j >= len(e.where) {
		return -1
	}

	return e.where[j]
}

// XB returns B⁻¹b, the basic values in row order.
func (e *Engine) XB() []float64 {
	v := append([]float64(nil), e.b...)
	e.etas.ftran(v)

	return v
}

// Column returns column j of [A | I].
func (e *Engine) Column(j int) ([]float64, error) {
	if j < 0 || j >= e.n+e.m {
		return nil, fmt.Errorf("Column(%d): %w", j, ErrIndexRange)
	}
	d := make([]float64, e.m)
	e.column(j, d)

	return d, nil
}

// column writes column j of [A | I] into d.
func (e *Engine) column(j int, d []float64) {
	if j >= e.n {
		for i := range d {
			d[i] = 0
		}
		d[j-e.n] = 1

		return
	}
	for i := range d {
		d[i] = e.a[i][j]
	}
}

// SolveB returns B⁻¹v.
func (e *Engine) SolveB(v []float64) ([]float64, error) {
	if len(v) != e.m {
		return nil, fmt.Errorf("SolveB: len %d, rows %d: %w", len(v), e.m, ErrIndexRange)
	}
	out := append([]float64(nil), v...)
	e.etas.ftran(out)

	return out, nil
}

// SolveBT returns B⁻ᵀv.
func (e *Engine) SolveBT(v []float64) ([]float64, error) {
	if len(v) != e.m {
		return nil, fmt.Errorf("SolveBT: len %d, rows %d: %w", len(v), e.m, ErrIndexRange)
	}
	out := append([]float64(nil), v...)
	e.etas.btran(out)

	return out, nil
}

// BinvRow returns row i of B⁻¹, computed as B⁻ᵀe_i.
func (e *Engine) BinvRow(i int) ([]float64, error) {
	if i < 0 || i >= e.m {
		return nil, fmt.Errorf("BinvRow(%d): %w", i, ErrIndexRange)
	}
	v := make([]float64, e.m)
	v[i] = 1
	e.etas.btran(v)

	return v, nil
}

// BasisMatrix materializes B, whose column i is the column basic in row i.
func (e *Engine) BasisMatrix() (*matrix.Dense, error) {
	if e.m == 0 {
		return nil, ErrNoRows
	}
	rows := make([][]float64, e.m)
	for k := range rows {
		rows[k] = make([]float64, e.m)
	}
	col := make([]float64, e.m)
	for i, j := range e.basis {
		e.column(j, col)
		for k, v := range col {
			rows[k][i] = v
		}
	}

	return matrix.FromRows(rows)
}

// BasisInverse materializes B⁻¹ from the eta file, column by column.
func (e *Engine) BasisInverse() (*matrix.Dense, error) {
	if e.m == 0 {
		return nil, ErrNoRows
	}
	rows := make([][]float64, e.m)
	for k := range rows {
		rows[k] = make([]float64, e.m)
	}
	v := make([]float64, e.m)
	var i, k int
	for i = 0; i < e.m; i++ {
		for k = range v {
			v[k] = 0
		}
		v[i] = 1
		e.etas.ftran(v)
		for k = range v {
			rows[k][i] = v[k]
		}
	}

	return matrix.FromRows(rows)
}

// Model returns the engine's current problem, including rows appended by
// AddRowAndWarmStart, as a fresh LinearModel.
func (e *Engine) Model() *model.LinearModel {
	lm := &model.LinearModel{
		Sense:     e.sense,
		Objective: make([]float64, e.n),
		Rows:      make([][]float64, e.m),
		RHS:       append([]float64(nil), e.b...),
		Integral:  append([]bool(nil), e.integral...),
	}
	for j := range e.c {
		lm.Objective[j] = e.sign * e.c[j]
	}
	for i := range e.a {
		lm.Rows[i] = append([]float64(nil), e.a[i]...)
	}

	return lm
}

// Clone returns an independent copy sharing no mutable state. The clone
// keeps limits, logger and metrics but records no trace events.
func (e *Engine) Clone() *Engine {
	cp := *e
	cp.a = make([][]float64, e.m)
	for i := range e.a {
		cp.a[i] = append([]float64(nil), e.a[i]...)
	}
	cp.b = append([]float64(nil), e.b...)
	cp.c = append([]float64(nil), e.c...)
	cp.integral = append([]bool(nil), e.integral...)
	cp.basis = append([]int(nil), e.basis...)
	cp.where = append([]int(nil), e.where...)
	cp.etas = e.etas.clone()
	cp.opts.Trace = nil

	return &cp
}

// AddRowAndWarmStart appends the row a·x ≤ b with its slack as the new
// basic variable and keeps the current basis.
//
// The eta file is zero-padded to the new dimension and extended with one
// row eta per basic structural column the new row touches, so that the
// file still represents the inverse of the bordered basis
//
//	[ B    0 ]
//	[ a_B  1 ]
//
// No reinversion happens. If the current point violates the row, the new
// slack is negative and the next Optimize starts with dual pivots.
func (e *Engine) AddRowAndWarmStart(a []float64, b float64) error {
	if len(a) < e.n {
		return fmt.Errorf("AddRowAndWarmStart: %d coefficients for %d variables: %w", len(a), e.n, ErrRowLength)
	}
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return fmt.Errorf("AddRowAndWarmStart: rhs: %w", ErrNonFinite)
	}
	row := make([]float64, e.n)
	for j := 0; j < e.n; j++ {
		if math.IsNaN(a[j]) || math.IsInf(a[j], 0) {
			return fmt.Errorf("AddRowAndWarmStart: x%d: %w", j+1, ErrNonFinite)
		}
		row[j] = a[j]
	}

	i := e.m // index of the new row
	e.a = append(e.a, row)
	e.b = append(e.b, b)
	e.m++
	e.etas = e.etas.grow(e.m)

	for k, col := range e.basis {
		if col >= e.n || row[col] == 0 {
			continue
		}
		d := make([]float64, e.m)
		d[k] = 1
		d[i] = row[col]
		e.etas = append(e.etas, eta{r: k, d: d})
	}

	slack := e.n + i
	e.basis = append(e.basis, slack)
	e.where = append(e.where, i)
	e.status = StatusUnsolved

	return nil
}

// price is the price-out value d_j = y·A_j − c_j of column j.
func (e *Engine) price(j int, y []float64) float64 {
	if j >= e.n {
		return y[j-e.n]
	}
	s := -e.c[j]
	for i := 0; i < e.m; i++ {
		s += y[i] * e.a[i][j]
	}

	return s
}

// duals writes y = B⁻ᵀc_B into y.
func (e *Engine) duals(y []float64) {
	for i, j := range e.basis {
		if j < e.n {
			y[i] = e.c[j]
		} else {
			y[i] = 0
		}
	}
	e.etas.btran(y)
}

func clean(v float64) float64 {
	if tolerance.IsZero(v) {
		return 0
	}

	return v
}
