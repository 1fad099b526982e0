package sensitivity

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvlp/matrix"
	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/tolerance"
	"github.com/katalvlaran/lvlp/trace"
)

// Sentinel errors.
var (
	// ErrNotOptimal indicates an engine whose last Optimize did not end
	// optimal; there is no basis to analyze.
	ErrNotOptimal = errors.New("sensitivity: engine is not at an optimal basis")

	// ErrIndexRange indicates a row or column index outside the model.
	ErrIndexRange = errors.New("sensitivity: index out of range")

	// ErrBasicColumn indicates a nonbasic-only query on a basic column.
	ErrBasicColumn = errors.New("sensitivity: column is basic")

	// ErrSlackColumn indicates a cost or coefficient query on a slack column.
	ErrSlackColumn = errors.New("sensitivity: column is a slack")

	// ErrLength indicates a coefficient vector whose length is not the row count
	// (activities) or the variable count (constraints).
	ErrLength = errors.New("sensitivity: wrong coefficient vector length")

	// ErrInverseDrift indicates an eta-file inverse that no longer matches a
	// fresh LU inverse of the basis within tolerance.Inverse.
	ErrInverseDrift = errors.New("sensitivity: basis inverse drifted")
)

// Options configures an Analyzer.
//
// Simplex – options for the engines built by re-solving what-if questions.
// Logger  – debug logging; defaults to a discard logger.
type Options struct {
	Simplex []simplex.Option
	Logger  *slog.Logger
}

// Option represents a functional option for configuring an Analyzer.
type Option func(*Options)

// WithSimplexOptions appends options for re-solve engines.
func WithSimplexOptions(opts ...simplex.Option) Option {
	return func(o *Options) { o.Simplex = append(o.Simplex, opts...) }
}

// WithLogger routes debug output to l. A nil l keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Analyzer answers post-optimal questions about one optimal basis.
//
// Internally the analysis works in the engine's maximization form: y are the
// duals of the internal objective and d_j = y·A_j − c_j are the price-out
// values (≥ 0 at optimum). Public results are translated back to the model's
// direction where noted.
type Analyzer struct {
	opts Options

	eng   *simplex.Engine // private clone
	lm    *model.LinearModel
	sense model.Sense
	sign  float64
	n, m  int

	basis []int
	binv  *matrix.Dense
	at    *matrix.Dense // Aᵀ, n×m
	xB    []float64
	x     []float64 // n+m
	y     []float64 // internal duals
	d     []float64 // internal price-out, n+m
}

// New captures the optimal state of e. The engine is cloned, so later use of
// e does not affect the Analyzer.
//
// Complexity: O(m·(k·m + n)) for an eta file of length k.
func New(e *simplex.Engine, opts ...Option) (*Analyzer, error) {
	if e == nil || e.Status() != simplex.StatusOptimal {
		return nil, ErrNotOptimal
	}
	o := Options{Logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	a := &Analyzer{
		opts:  o,
		eng:   e.Clone(),
		sense: e.Sense(),
		sign:  e.Sense().Sign(),
		n:     e.Cols(),
		m:     e.Rows(),
	}
	a.lm = a.eng.Model()
	a.basis = a.eng.Basis()
	a.xB = a.eng.XB()

	binv, err := a.eng.BasisInverse()
	if err != nil {
		return nil, fmt.Errorf("sensitivity: %w", err)
	}
	B, err := a.eng.BasisMatrix()
	if err != nil {
		return nil, fmt.Errorf("sensitivity: %w", err)
	}
	if err = checkInverse(B, binv); err != nil {
		return nil, fmt.Errorf("sensitivity: %w", err)
	}
	a.binv = binv

	rows := make([][]float64, a.m)
	for i := range rows {
		rows[i] = a.lm.Row(i)
	}
	A, err := matrix.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sensitivity: %w", err)
	}
	if a.at, err = matrix.Transpose(A); err != nil {
		return nil, fmt.Errorf("sensitivity: %w", err)
	}

	cB := make([]float64, a.m)
	for i, j := range a.basis {
		if j < a.n {
			cB[i] = a.sign * a.lm.Objective[j]
		}
	}
	if a.y, err = a.eng.SolveBT(cB); err != nil {
		return nil, fmt.Errorf("sensitivity: %w", err)
	}

	a.x = make([]float64, a.n+a.m)
	for i, j := range a.basis {
		a.x[j] = a.xB[i]
	}
	a.d = make([]float64, a.n+a.m)
	for j := range a.d {
		if !a.eng.IsBasic(j) {
			a.d[j] = a.price(j)
		}
	}

	return a, nil
}

// checkInverse compares binv with an LU inverse of B.
func checkInverse(B, binv *matrix.Dense) error {
	ref, err := matrix.Inverse(B)
	if err != nil {
		return err
	}
	if !matrix.AllClose(ref, binv, tolerance.Inverse) {
		return ErrInverseDrift
	}

	return nil
}

// price is y·A_j − c_j in the internal maximization.
func (a *Analyzer) price(j int) float64 {
	if j >= a.n {
		return a.y[j-a.n]
	}
	var v float64
	for i := 0; i < a.m; i++ {
		v += a.y[i] * a.lm.Rows[i][j]
	}

	return v - a.sign*a.lm.Objective[j]
}

// tableau returns (B⁻¹A)_{i,j}.
func (a *Analyzer) tableau(i, j int) float64 {
	row := a.binv.Row(i)
	if j >= a.n {
		return row[j-a.n]
	}
	var v float64
	for k := 0; k < a.m; k++ {
		v += row[k] * a.lm.Rows[k][j]
	}

	return v
}

// Objective returns c·x at the analyzed basis.
func (a *Analyzer) Objective() float64 {
	return a.lm.Value(a.x)
}

// X returns the structural then slack values at the analyzed basis.
func (a *Analyzer) X() []float64 { return append([]float64(nil), a.x...) }

// ShadowPrices returns the duals in the model's direction, so that
// Σ b_i·ShadowPrices_i equals Objective.
func (a *Analyzer) ShadowPrices() []float64 {
	out := make([]float64, a.m)
	for i, v := range a.y {
		out[i] = a.sign * v
	}

	return out
}

// ReducedCosts returns the internal price-out values d_j (zero for basic
// columns, ≥ 0 for every column).
func (a *Analyzer) ReducedCosts() []float64 { return append([]float64(nil), a.d...) }

// BasisInverse returns a copy of the dense B⁻¹ captured by New.
func (a *Analyzer) BasisInverse() *matrix.Dense {
	return a.binv.Clone().(*matrix.Dense)
}

// Column describes one column of the final basis.
type Column struct {
	Name        string
	Basic       bool
	Value       float64
	Cost        float64 // model objective coefficient; 0 for slacks
	ReducedCost float64
}

// Summary lists every structural and slack column at the analyzed basis.
func (a *Analyzer) Summary() []Column {
	out := make([]Column, a.n+a.m)
	for j := range out {
		out[j] = Column{
			Name:        trace.Var{Index: j, N: a.n}.String(),
			Basic:       a.eng.IsBasic(j),
			Value:       a.x[j],
			ReducedCost: a.d[j],
		}
		if j < a.n {
			out[j].Cost = a.lm.Objective[j]
		}
	}

	return out
}

func (a *Analyzer) checkColumn(j int) error {
	if j < 0 || j >= a.n+a.m {
		return fmt.Errorf("column %d: %w", j, ErrIndexRange)
	}
	if j >= a.n {
		return fmt.Errorf("column %d: %w", j, ErrSlackColumn)
	}

	return nil
}

func (a *Analyzer) checkRow(i int) error {
	if i < 0 || i >= a.m {
		return fmt.Errorf("row %d: %w", i, ErrIndexRange)
	}

	return nil
}
