package cutplane_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvlp/cutplane"
	"github.com/katalvlaran/lvlp/metrics"
	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/tolerance"
	"github.com/katalvlaran/lvlp/trace"
)

const eps = 1e-6

// halfUnits has the fractional relaxation x = (1.5, 0).
func halfUnits() *model.LinearModel {
	return &model.LinearModel{
		Sense:     model.Maximize,
		Objective: []float64{1, 1},
		Rows:      [][]float64{{2, 2}},
		RHS:       []float64{3},
	}
}

// twoCuts is max x2 s.t. 3x1 + 2x2 ≤ 6, −3x1 + 2x2 ≤ 0: relaxation (1, 1.5),
// integer optimum x2 = 1. The first Gomory cut is x2 ≤ 1 and leaves x1
// fractional.
func twoCuts() *model.LinearModel {
	return &model.LinearModel{
		Sense:     model.Maximize,
		Objective: []float64{0, 1},
		Rows:      [][]float64{{3, 2}, {-3, 2}},
		RHS:       []float64{6, 0},
	}
}

// CutPlaneSuite exercises the cutting-plane loop end to end.
type CutPlaneSuite struct {
	suite.Suite
	ctx context.Context
}

func TestCutPlaneSuite(t *testing.T) {
	suite.Run(t, new(CutPlaneSuite))
}

func (s *CutPlaneSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *CutPlaneSuite) TestHalfUnits_SingleCut() {
	res, err := cutplane.Solve(s.ctx, halfUnits())
	require.NoError(s.T(), err)

	s.Equal(cutplane.StatusIntegral, res.Status)
	s.InDelta(1, res.Objective, eps)
	s.InDeltaSlice([]float64{1, 0}, res.X, eps)

	require.Len(s.T(), res.Cuts, 1)
	c := res.Cuts[0]
	s.Equal(1, c.Seq)
	s.Equal(cutplane.KindGomory, c.Kind)
	s.Equal(0, c.SourceRow)
	s.InDelta(0.5, c.F, eps)
	s.InDeltaSlice([]float64{0.5}, c.Alpha, eps)
	s.InDeltaSlice([]float64{1, 1}, c.Coeffs, eps)
	s.InDelta(1, c.RHS, eps)

	s.Equal(2, res.Model.M())
	s.Equal(1, res.Trace.Count(trace.KindCutAdded))
	s.Equal("cut 1 (gomory, row 1): x1 + x2 <= 1", trace.Line(res.Trace.Filter(trace.KindCutAdded)[0]))
	// the re-solve after the cut is a dual pivot
	pivots := res.Trace.Filter(trace.KindPivot)
	s.Equal(trace.PivotDual, pivots[len(pivots)-1].(trace.Pivot).Rule)
}

func (s *CutPlaneSuite) TestCutsKeepEveryIntegerPoint() {
	m := twoCuts()
	res, err := cutplane.Solve(s.ctx, m)
	require.NoError(s.T(), err)

	s.Equal(cutplane.StatusIntegral, res.Status)
	s.InDelta(1, res.Objective, eps)
	for _, v := range res.X {
		s.True(tolerance.IsIntegral(v))
	}
	s.True(m.Feasible(res.X, eps))

	require.NotEmpty(s.T(), res.Cuts)
	s.InDeltaSlice([]float64{0, 1}, res.Cuts[0].Coeffs, eps)
	s.InDelta(1, res.Cuts[0].RHS, eps)

	// no cut removes an integer point of the original model
	var x1, x2 float64
	for x1 = 0; x1 <= 3; x1++ {
		for x2 = 0; x2 <= 3; x2++ {
			p := []float64{x1, x2}
			if !m.Feasible(p, 0) {
				continue
			}
			for _, c := range res.Cuts {
				s.LessOrEqual(c.Coeffs[0]*x1+c.Coeffs[1]*x2, c.RHS+eps, "cut %d removes %v", c.Seq, p)
			}
		}
	}
	// integral data gives integral cut coefficients
	for _, c := range res.Cuts {
		for _, a := range c.Coeffs {
			s.True(tolerance.IsIntegral(a))
		}
		s.True(tolerance.IsIntegral(c.RHS))
	}
}

func (s *CutPlaneSuite) TestCutLimit() {
	res, err := cutplane.Solve(s.ctx, twoCuts(), cutplane.WithMaxCuts(1))
	require.NoError(s.T(), err)

	s.Equal(cutplane.StatusCutLimit, res.Status)
	s.Len(res.Cuts, 1)
	s.InDelta(1, res.Objective, eps)
	s.Equal(1, res.Trace.Count(trace.KindStop))

	s.Panics(func() { cutplane.WithMaxCuts(0)(&cutplane.Options{}) })
}

func (s *CutPlaneSuite) TestContinuousModelNeedsNoCut() {
	m := halfUnits()
	m.Integral = []bool{false, false}

	res, err := cutplane.Solve(s.ctx, m)
	require.NoError(s.T(), err)
	s.Equal(cutplane.StatusIntegral, res.Status)
	s.Empty(res.Cuts)
	s.InDelta(1.5, res.Objective, eps)
}

func (s *CutPlaneSuite) TestLPStatuses() {
	unb := model.New(model.Maximize, []float64{1, 1})
	require.NoError(s.T(), unb.AddLe([]float64{1, -1}, 1))
	res, err := cutplane.Solve(s.ctx, unb)
	require.NoError(s.T(), err)
	s.Equal(cutplane.StatusUnbounded, res.Status)

	inf := model.New(model.Maximize, []float64{1})
	require.NoError(s.T(), inf.AddLe([]float64{1}, 1))
	require.NoError(s.T(), inf.AddGe([]float64{1}, 2))
	res, err = cutplane.Solve(s.ctx, inf)
	require.NoError(s.T(), err)
	s.Equal(cutplane.StatusInfeasible, res.Status)
	s.Nil(res.X)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	res, err = cutplane.Solve(ctx, halfUnits())
	require.NoError(s.T(), err)
	s.Equal(cutplane.StatusCanceled, res.Status)
}

func (s *CutPlaneSuite) TestMetrics() {
	reg := prometheus.NewRegistry()
	mt := metrics.New(reg)

	_, err := cutplane.Solve(s.ctx, halfUnits(), cutplane.WithMetrics(mt))
	require.NoError(s.T(), err)
	s.Equal(1.0, testutil.ToFloat64(mt.Cuts.WithLabelValues("gomory", "added")))
	s.Equal(1.0, testutil.ToFloat64(mt.Pivots.WithLabelValues("dual")))
}

func TestSolve_RejectsMalformedModel(t *testing.T) {
	_, err := cutplane.Solve(context.Background(), nil)
	require.ErrorIs(t, err, model.ErrInvalidModel)

	m := halfUnits()
	m.RHS = nil
	_, err = cutplane.Solve(context.Background(), m)
	assert.ErrorIs(t, err, model.ErrMissingRHS)
}
