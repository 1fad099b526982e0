package simplex

// eta is one elementary transformation of the product-form inverse: the
// identity with column r replaced so that it maps the pivot column d onto
// e_r. Only (r, d) is stored.
type eta struct {
	r int
	d []float64
}

// etaFile is B⁻¹ = E_k ⋯ E_2 E_1 in product form. The empty file is the
// identity.
type etaFile []eta

// ftran overwrites v with B⁻¹v, applying E_1 first.
// Complexity: O(k·m).
func (f etaFile) ftran(v []float64) {
	var (
		i, k int
		yr   float64
	)
	for k = 0; k < len(f); k++ {
		e := f[k]
		yr = v[e.r] / e.d[e.r]
		if yr == 0 {
			v[e.r] = 0
			continue
		}
		for i = range v {
			if i != e.r {
				v[i] -= e.d[i] * yr
			}
		}
		v[e.r] = yr
	}
}

// btran overwrites v with B⁻ᵀv, applying E_kᵀ first. Each transposed eta
// only changes component r.
// Complexity: O(k·m).
func (f etaFile) btran(v []float64) {
	var (
		i, k int
		s    float64
	)
	for k = len(f) - 1; k >= 0; k-- {
		e := f[k]
		s = 0
		for i = range v {
			if i != e.r {
				s += e.d[i] * v[i]
			}
		}
		v[e.r] = (v[e.r] - s) / e.d[e.r]
	}
}

// grow returns a copy of f with every eta zero-padded to length m.
func (f etaFile) grow(m int) etaFile {
	out := make(etaFile, len(f))
	for k, e := range f {
		d := make([]float64, m)
		copy(d, e.d)
		out[k] = eta{r: e.r, d: d}
	}

	return out
}

// clone deep-copies f.
func (f etaFile) clone() etaFile {
	out := make(etaFile, len(f))
	for k, e := range f {
		out[k] = eta{r: e.r, d: append([]float64(nil), e.d...)}
	}

	return out
}
