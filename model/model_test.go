package model_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlp/model"
)

func twoProducts() *model.LinearModel {
	return &model.LinearModel{
		Sense:     model.Maximize,
		Objective: []float64{3, 2},
		Rows:      [][]float64{{1, 1}, {1, 3}},
		RHS:       []float64{4, 6},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, twoProducts().Validate())
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(m *model.LinearModel)
		want  error
		field string
	}{
		{"empty objective", func(m *model.LinearModel) { m.Objective = nil }, model.ErrEmptyObjective, "objective"},
		{"missing rhs", func(m *model.LinearModel) { m.RHS = m.RHS[:1] }, model.ErrMissingRHS, "rhs"},
		{"extra rhs", func(m *model.LinearModel) { m.RHS = append(m.RHS, 1) }, model.ErrDimensionMismatch, "rhs"},
		{"short row", func(m *model.LinearModel) { m.Rows[1] = []float64{1} }, model.ErrDimensionMismatch, "rows"},
		{"nan coefficient", func(m *model.LinearModel) { m.Rows[0][1] = math.NaN() }, model.ErrNonFinite, "rows"},
		{"inf rhs", func(m *model.LinearModel) { m.RHS[1] = math.Inf(1) }, model.ErrNonFinite, "rhs"},
		{"bad mask", func(m *model.LinearModel) { m.Integral = []bool{true} }, model.ErrDimensionMismatch, "integral"},
		{"bad sense", func(m *model.LinearModel) { m.Sense = 7 }, model.ErrInvalidSense, "sense"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := twoProducts()
			tc.edit(m)
			err := m.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, model.ErrInvalidModel)

			var ie *model.InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tc.field, ie.Field)
		})
	}
}

func TestClone_Deep(t *testing.T) {
	m := twoProducts()
	m.Integral = []bool{true, false}
	cp := m.Clone()
	require.NoError(t, cp.AddLe([]float64{1, 0}, 2))
	cp.Rows[0][0] = 99
	cp.Integral[0] = false

	assert.Equal(t, 2, m.M())
	assert.Equal(t, 1.0, m.Rows[0][0])
	assert.True(t, m.Integral[0])
	assert.Equal(t, 3, cp.M())
}

func TestAddGeAndBound(t *testing.T) {
	m := twoProducts()
	require.NoError(t, m.AddGe([]float64{1, 1}, 2))
	require.NoError(t, m.AddBound(1, model.GE, 3))
	require.NoError(t, m.AddBound(0, model.LE, 1))

	assert.Equal(t, []float64{-1, -1}, m.Rows[2])
	assert.Equal(t, -2.0, m.RHS[2])
	assert.Equal(t, []float64{0, -1}, m.Rows[3])
	assert.Equal(t, -3.0, m.RHS[3])
	assert.Equal(t, []float64{1, 0}, m.Rows[4])

	assert.ErrorIs(t, m.AddBound(5, model.LE, 1), model.ErrVariableRange)
	assert.ErrorIs(t, m.AddLe([]float64{1}, 1), model.ErrDimensionMismatch)
}

func TestIntegralAndBinaryMask(t *testing.T) {
	m := twoProducts()
	assert.Equal(t, []bool{true, true}, m.IntegralMask())
	assert.Equal(t, []bool{false, false}, m.BinaryMask())

	require.NoError(t, m.AddBound(0, model.LE, 1))
	assert.Equal(t, []bool{true, false}, m.BinaryMask())

	m.Integral = []bool{false, true}
	assert.Equal(t, []bool{false, true}, m.IntegralMask())
	assert.Equal(t, []bool{false, false}, m.BinaryMask())
}

func TestSense(t *testing.T) {
	assert.True(t, model.Maximize.Better(2, 1))
	assert.False(t, model.Maximize.Better(1+1e-12, 1))
	assert.True(t, model.Minimize.Better(1, 2))
	assert.Equal(t, math.Inf(-1), model.Maximize.Worst())
	assert.Equal(t, math.Inf(1), model.Minimize.Worst())

	var s model.Sense
	require.NoError(t, s.UnmarshalText([]byte("Minimize")))
	assert.Equal(t, model.Minimize, s)
	assert.ErrorIs(t, s.UnmarshalText([]byte("sideways")), model.ErrInvalidSense)
}

func TestYAMLRoundTrip(t *testing.T) {
	src := `
sense: min
objective: [2, 3]
rows:
  - [-1, -1]
rhs: [-4]
integral: [true, false]
`
	var m model.LinearModel
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))
	require.NoError(t, m.Validate())
	assert.Equal(t, model.Minimize, m.Sense)
	assert.Equal(t, []bool{true, false}, m.Integral)

	out, err := yaml.Marshal(&m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "sense: min")
}

func TestCanonical(t *testing.T) {
	want := "z - 3x1 - 2x2 = 0\n" +
		"c1: x1 + x2 + s1 = 4\n" +
		"c2: x1 + 3x2 + s2 = 6\n"
	assert.Equal(t, want, twoProducts().Canonical())
}

func TestValueAndFeasible(t *testing.T) {
	m := twoProducts()
	assert.Equal(t, 12.0, m.Value([]float64{4, 0}))
	assert.True(t, m.Feasible([]float64{4, 0}, 1e-9))
	assert.False(t, m.Feasible([]float64{4, 1}, 1e-9))
	assert.False(t, m.Feasible([]float64{-1, 0}, 1e-9))
}
