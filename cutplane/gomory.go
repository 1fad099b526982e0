package cutplane

import (
	"math"

	"github.com/katalvlaran/lvlp/tolerance"
)

// sourceRow returns the basis row holding an integral-flagged structural
// variable whose fractional part f lies in (Fraction, 1−Fraction) and is
// closest to 0.5, lowest row on ties; −1 when there is none.
func (r *runner) sourceRow(xB []float64, basis []int) (int, float64) {
	var (
		row  = -1
		f    float64
		best = math.Inf(1)
		dist float64
	)
	for i, j := range basis {
		if j >= r.n || !r.mask[j] {
			continue
		}
		fi := tolerance.Frac(xB[i])
		if fi <= tolerance.Fraction || fi >= 1-tolerance.Fraction {
			continue
		}
		dist = math.Abs(fi - 0.5)
		if dist < best {
			row, f, best = i, fi, dist
		}
	}

	return row, f
}

// gomory builds the fractional cut from the most fractional basis row.
//
// With ρ = B⁻ᵀe_r the source row reads x_B(r) + Σ_N ā_j x_j = ρ·b where
// ā_j = ρ·A_j and the slack column of row i contributes ρ_i. The fractional
// cut Σ_N frac(ā_j) x_j ≥ f, with s = b − A·x substituted, becomes
//
//	(α·A − g)·x ≤ α·b − f,   α = frac(ρ),  g_j = frac(ā_j) for nonbasic x_j
//
// which for integral A and b has integral coefficients, so its own slack
// is integral and later cuts may use it as a source.
//
// Complexity: O(k·m + m·n) for an eta file of length k.
func (r *runner) gomory(x []float64) (Cut, bool) {
	xB, basis := r.eng.XB(), r.eng.Basis()
	src, f := r.sourceRow(xB, basis)
	if src < 0 {
		r.reject(KindGomory, "no fractional basic row")
		return Cut{}, false
	}
	rho, err := r.eng.BinvRow(src)
	if err != nil {
		return Cut{}, false
	}
	snap := r.eng.Model()

	var (
		i, j  int
		m     = len(rho)
		alpha = make([]float64, m)
		row   = make([]float64, r.n)
		rhs   float64
		abar  float64
	)
	for i = 0; i < m; i++ {
		alpha[i] = tolerance.Frac(rho[i])
		if alpha[i] == 0 {
			continue
		}
		for j = 0; j < r.n; j++ {
			row[j] += alpha[i] * snap.Rows[i][j]
		}
		rhs += alpha[i] * snap.RHS[i]
	}
	for j = 0; j < r.n; j++ {
		if r.eng.IsBasic(j) {
			continue
		}
		abar = 0
		for i = 0; i < m; i++ {
			abar += rho[i] * snap.Rows[i][j]
		}
		row[j] -= tolerance.Frac(abar)
	}
	for j = range row {
		row[j] = tolerance.Snap(row[j])
	}
	rhs = tolerance.Snap(rhs - f)

	if !r.gate(KindGomory, row, rhs, x) {
		return Cut{}, false
	}

	return Cut{Kind: KindGomory, SourceRow: src, Alpha: alpha, F: f, Coeffs: row, RHS: rhs}, true
}
