// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// pivotFloor is the smallest |pivot| accepted during factorization.
const pivotFloor = 1e-12

// LU holds a partially pivoted factorization P·A = L·U of a square matrix.
// L (unit diagonal) and U share one row-major buffer; piv[i] is the original
// row placed at position i.
type LU struct {
	n   int
	lu  []float64
	piv []int
}

// Factorize computes the LU factorization of a square matrix with partial
// (row) pivoting. Ties between equal-magnitude pivots pick the lowest row,
// so results are deterministic.
//
// Stage 1 (Validate): non-nil, square, finite.
// Stage 2 (Eliminate): for each column k pick the largest |a[i,k]|, i ≥ k,
// swap it into place, then eliminate below.
//
// Complexity: O(n³) time, O(n²) space.
func Factorize(m Matrix) (*LU, error) {
	if m == nil {
		return nil, matrixErrorf(opFactorize, ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return nil, matrixErrorf(opFactorize, fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrNonSquare))
	}
	n := m.Rows()
	f := &LU{n: n, lu: make([]float64, n*n), piv: make([]int, n)}

	var (
		i, j, k, p int
		v, best    float64
		err        error
	)
	for i = 0; i < n; i++ {
		f.piv[i] = i
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opFactorize, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opFactorize, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
			f.lu[i*n+j] = v
		}
	}

	for k = 0; k < n; k++ {
		p, best = k, math.Abs(f.lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(f.lu[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= pivotFloor {
			return nil, matrixErrorf(opFactorize, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				f.lu[k*n+j], f.lu[p*n+j] = f.lu[p*n+j], f.lu[k*n+j]
			}
			f.piv[k], f.piv[p] = f.piv[p], f.piv[k]
		}
		for i = k + 1; i < n; i++ {
			f.lu[i*n+k] /= f.lu[k*n+k]
			v = f.lu[i*n+k]
			if v == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				f.lu[i*n+j] -= v * f.lu[k*n+j]
			}
		}
	}

	return f, nil
}

// Solve returns x with A·x = b using the stored factors.
func (f *LU) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, matrixErrorf(opSolve, fmt.Errorf("len(b)=%d, n=%d: %w", len(b), f.n, ErrDimensionMismatch))
	}
	n := f.n
	x := make([]float64, n)

	var (
		i, k int
		sum  float64
	)
	// forward: L·y = P·b (y stored in x)
	for i = 0; i < n; i++ {
		sum = b[f.piv[i]]
		for k = 0; k < i; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// backward: U·x = y
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum / f.lu[i*n+i]
	}

	return x, nil
}

// Inverse returns A⁻¹ by solving A·x = e_j for every column j.
// Complexity: O(n³).
func Inverse(m Matrix) (*Dense, error) {
	f, err := Factorize(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := f.n
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		i, j int
		x    []float64
		e    = make([]float64, n)
	)
	for j = 0; j < n; j++ {
		e[j] = 1
		if x, err = f.Solve(e); err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
		e[j] = 0
		for i = 0; i < n; i++ {
			inv.data[i*n+j] = x[i]
		}
	}

	return inv, nil
}
