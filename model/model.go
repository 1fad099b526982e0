package model

import (
	"fmt"
	"math"
)

// LinearModel is max/min c·x subject to A·x ≤ b, x ≥ 0.
//
// Rows may be longer than Objective; only the first N() coefficients of a
// row are read. Integral nil means every variable is integral.
type LinearModel struct {
	Sense     Sense       `yaml:"sense"`
	Objective []float64   `yaml:"objective"`
	Rows      [][]float64 `yaml:"rows"`
	RHS       []float64   `yaml:"rhs"`
	Integral  []bool      `yaml:"integral,omitempty"`
}

// BoundOp selects the direction of a single-variable bound.
type BoundOp int

const (
	// LE bounds x_k ≤ v.
	LE BoundOp = iota
	// GE bounds x_k ≥ v.
	GE
)

// String returns "<=" or ">=".
func (op BoundOp) String() string {
	if op == GE {
		return ">="
	}

	return "<="
}

// New returns a model with the given direction and objective and no rows.
// The objective slice is copied.
func New(sense Sense, objective []float64) *LinearModel {
	return &LinearModel{Sense: sense, Objective: append([]float64(nil), objective...)}
}

// N is the number of decision variables.
func (m *LinearModel) N() int { return len(m.Objective) }

// M is the number of constraint rows.
func (m *LinearModel) M() int { return len(m.Rows) }

// Validate checks the structural invariants and returns the first violation
// as an *InputError.
//
// Stage 1: sense and objective.
// Stage 2: row/RHS counts, row lengths, finiteness.
// Stage 3: integrality mask length.
func (m *LinearModel) Validate() error {
	if !m.Sense.Valid() {
		return inputErr("sense", -1, ErrInvalidSense)
	}
	n := len(m.Objective)
	if n == 0 {
		return inputErr("objective", -1, ErrEmptyObjective)
	}

	var i, j int
	for j = 0; j < n; j++ {
		if !finite(m.Objective[j]) {
			return inputErr("objective", j, ErrNonFinite)
		}
	}
	if len(m.RHS) < len(m.Rows) {
		return inputErr("rhs", len(m.RHS), ErrMissingRHS)
	}
	if len(m.RHS) > len(m.Rows) {
		return inputErr("rhs", -1, fmt.Errorf("%d values for %d rows: %w", len(m.RHS), len(m.Rows), ErrDimensionMismatch))
	}
	for i = range m.Rows {
		if len(m.Rows[i]) < n {
			return inputErr("rows", i, fmt.Errorf("%d coefficients for %d variables: %w", len(m.Rows[i]), n, ErrDimensionMismatch))
		}
		for j = 0; j < n; j++ {
			if !finite(m.Rows[i][j]) {
				return inputErr("rows", i, ErrNonFinite)
			}
		}
		if !finite(m.RHS[i]) {
			return inputErr("rhs", i, ErrNonFinite)
		}
	}
	if m.Integral != nil && len(m.Integral) != n {
		return inputErr("integral", -1, fmt.Errorf("%d flags for %d variables: %w", len(m.Integral), n, ErrDimensionMismatch))
	}

	return nil
}

// Clone returns a deep copy; appending rows to the clone never affects m.
func (m *LinearModel) Clone() *LinearModel {
	cp := &LinearModel{
		Sense:     m.Sense,
		Objective: append([]float64(nil), m.Objective...),
		Rows:      make([][]float64, len(m.Rows)),
		RHS:       append([]float64(nil), m.RHS...),
	}
	for i := range m.Rows {
		cp.Rows[i] = append([]float64(nil), m.Rows[i]...)
	}
	if m.Integral != nil {
		cp.Integral = append([]bool(nil), m.Integral...)
	}

	return cp
}

// Row returns row i truncated to N() coefficients. The slice aliases the
// model's storage.
func (m *LinearModel) Row(i int) []float64 { return m.Rows[i][:m.N()] }

// AddLe appends a·x ≤ b. Only the first N() coefficients are kept.
func (m *LinearModel) AddLe(a []float64, b float64) error {
	n := m.N()
	if len(a) < n {
		return inputErr("rows", len(m.Rows), fmt.Errorf("%d coefficients for %d variables: %w", len(a), n, ErrDimensionMismatch))
	}
	if !finite(b) {
		return inputErr("rhs", len(m.Rows), ErrNonFinite)
	}
	row := make([]float64, n)
	for j := 0; j < n; j++ {
		if !finite(a[j]) {
			return inputErr("rows", len(m.Rows), ErrNonFinite)
		}
		row[j] = a[j]
	}
	m.Rows = append(m.Rows, row)
	m.RHS = append(m.RHS, b)

	return nil
}

// AddGe appends a·x ≥ b, stored as −a·x ≤ −b.
func (m *LinearModel) AddGe(a []float64, b float64) error {
	neg := make([]float64, len(a))
	for j, v := range a {
		neg[j] = -v
	}

	return m.AddLe(neg, -b)
}

// AddBound appends the single-variable row x_k ≤ v (LE) or −x_k ≤ −v (GE).
func (m *LinearModel) AddBound(k int, op BoundOp, v float64) error {
	if k < 0 || k >= m.N() {
		return inputErr("rows", len(m.Rows), fmt.Errorf("x%d: %w", k+1, ErrVariableRange))
	}
	a := make([]float64, m.N())
	a[k] = 1
	if op == GE {
		return m.AddGe(a, v)
	}

	return m.AddLe(a, v)
}

// IntegralMask resolves the default: nil Integral means all integral.
func (m *LinearModel) IntegralMask() []bool {
	mask := make([]bool, m.N())
	for j := range mask {
		mask[j] = m.Integral == nil || m.Integral[j]
	}

	return mask
}

// BinaryMask flags integral variables that some row bounds to at most 1,
// i.e. a row whose only non-zero coefficient is a positive a_k with
// b/a_k < 2. Combined with x ≥ 0 and integrality that pins x_k to {0, 1}.
func (m *LinearModel) BinaryMask() []bool {
	n := m.N()
	mask := make([]bool, n)
	integral := m.IntegralMask()

	var (
		i, j, k int
		nz      int
	)
	for i = range m.Rows {
		nz, k = 0, -1
		for j = 0; j < n; j++ {
			if m.Rows[i][j] != 0 {
				nz++
				k = j
			}
		}
		if nz == 1 && m.Rows[i][k] > 0 && m.RHS[i]/m.Rows[i][k] < 2 && integral[k] {
			mask[k] = true
		}
	}

	return mask
}

// Value returns c·x over the first N() entries of x.
func (m *LinearModel) Value(x []float64) float64 {
	var z float64
	for j := 0; j < m.N() && j < len(x); j++ {
		z += m.Objective[j] * x[j]
	}

	return z
}

// Feasible reports whether x ≥ −tol and every row holds within tol.
func (m *LinearModel) Feasible(x []float64, tol float64) bool {
	n := m.N()
	if len(x) < n {
		return false
	}
	var (
		i, j int
		lhs  float64
	)
	for j = 0; j < n; j++ {
		if x[j] < -tol {
			return false
		}
	}
	for i = range m.Rows {
		lhs = 0
		for j = 0; j < n; j++ {
			lhs += m.Rows[i][j] * x[j]
		}
		if lhs > m.RHS[i]+tol {
			return false
		}
	}

	return true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
