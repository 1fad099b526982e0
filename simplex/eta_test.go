package simplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlp/matrix"
	"github.com/katalvlaran/lvlp/model"
)

func TestEtaFile_EmptyIsIdentity(t *testing.T) {
	var f etaFile
	v := []float64{1, -2, 3}
	f.ftran(v)
	assert.Equal(t, []float64{1, -2, 3}, v)
	f.btran(v)
	assert.Equal(t, []float64{1, -2, 3}, v)
}

func TestEtaFile_FtranBtranAgreeWithDense(t *testing.T) {
	// B = [[2, 0], [1, 1]] built by pivoting column (2, 1) into row 0.
	f := etaFile{{r: 0, d: []float64{2, 1}}}

	v := []float64{3, 1}
	f.ftran(v)
	// B⁻¹ = [[0.5, 0], [-0.5, 1]]
	assert.InDeltaSlice(t, []float64{1.5, -0.5}, v, 1e-12)

	w := []float64{1, 0}
	f.btran(w)
	// B⁻ᵀe_0 = first row of B⁻¹ = (0.5, 0)
	assert.InDeltaSlice(t, []float64{0.5, 0}, w, 1e-12)
}

func TestEtaFile_GrowPadsWithZeros(t *testing.T) {
	f := etaFile{{r: 1, d: []float64{0.5, 2}}}
	g := f.grow(3)
	require.Len(t, g[0].d, 3)
	assert.Equal(t, 0.0, g[0].d[2])

	g[0].d[0] = 9
	assert.Equal(t, 0.5, f[0].d[0], "grow must not alias the source")
}

func TestNew_AllSlackBasis(t *testing.T) {
	m := &model.LinearModel{
		Sense:     model.Maximize,
		Objective: []float64{3, 2},
		Rows:      [][]float64{{1, 1}, {1, 3}},
		RHS:       []float64{4, 6},
	}
	e, err := New(m)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, e.basis)
	assert.Empty(t, e.etas)
	assert.Equal(t, []int{-1, -1, 0, 1}, e.where)
	assert.Equal(t, StatusUnsolved, e.Status())
}

func TestWarmStart_RowEtasKeepInverseConsistent(t *testing.T) {
	m := &model.LinearModel{
		Sense:     model.Maximize,
		Objective: []float64{1, 1},
		Rows:      [][]float64{{2, 2}},
		RHS:       []float64{3},
	}
	e, err := New(m)
	require.NoError(t, err)
	_ = e.Optimize(t.Context())
	require.Equal(t, []int{0}, e.basis)

	require.NoError(t, e.AddRowAndWarmStart([]float64{1, 1}, 1))
	// one padded eta from the solve plus one row eta for x1 in the new row
	require.Len(t, e.etas, 2)
	assert.Equal(t, []float64{1.5, -0.5}, e.XB())
}

func TestRefactor_SingularBasisLeavesEngineUntouched(t *testing.T) {
	m := model.New(model.Maximize, []float64{1, 1})
	require.NoError(t, m.AddLe([]float64{1, 1}, 2))
	require.NoError(t, m.AddLe([]float64{2, 2}, 5))
	e, err := New(m)
	require.NoError(t, err)

	// x1 and x2 share the column (1, 2), so a basis holding both is singular.
	e.basis = []int{0, 1}
	etas := len(e.etas)

	err = e.Refactor()
	require.ErrorIs(t, err, ErrSingularBasis)
	assert.ErrorIs(t, err, matrix.ErrSingular)
	assert.Equal(t, []int{0, 1}, e.basis)
	assert.Len(t, e.etas, etas)
}
