package cutplane

import "sort"

// cover looks for a knapsack cover cut on the binary variables.
//
// Rows are scanned in order. A row qualifies when every structural
// coefficient and the rhs are non-negative. Its binary items with positive
// weight are taken heaviest first (lowest index on ties) until their weight
// exceeds the rhs; that set C yields Σ_{j∈C} x_j ≤ |C|−1. The first row whose
// cut passes the violation and duplicate gates wins.
func (r *runner) cover(x []float64) (Cut, bool) {
	bin := r.work.BinaryMask()
	var (
		i, j  int
		items []int
		sum   float64
	)
rows:
	for i = range r.work.Rows {
		a := r.work.Row(i)
		if r.work.RHS[i] < 0 {
			continue
		}
		items = items[:0]
		for j = range a {
			if a[j] < 0 {
				continue rows
			}
			if a[j] > 0 && bin[j] {
				items = append(items, j)
			}
		}
		sort.SliceStable(items, func(p, q int) bool { return a[items[p]] > a[items[q]] })

		sum = 0
		k := 0
		for k < len(items) && sum <= r.work.RHS[i] {
			sum += a[items[k]]
			k++
		}
		if sum <= r.work.RHS[i] {
			continue
		}

		row := make([]float64, r.n)
		for _, j = range items[:k] {
			row[j] = 1
		}
		rhs := float64(k - 1)
		if !r.gate(KindCover, row, rhs, x) {
			continue
		}

		return Cut{Kind: KindCover, SourceRow: i, Coeffs: row, RHS: rhs}, true
	}

	return Cut{}, false
}
