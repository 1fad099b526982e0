package cutplane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/trace"
)

// knapsackRunner builds a runner over 3x1 + 3x2 + 3x3 ≤ 5 with x_j ≤ 1.
func knapsackRunner(t *testing.T) *runner {
	t.Helper()
	m := model.New(model.Maximize, []float64{5, 4, 3})
	require.NoError(t, m.AddLe([]float64{3, 3, 3}, 5))
	for k := 0; k < 3; k++ {
		require.NoError(t, m.AddBound(k, model.LE, 1))
	}

	return &runner{
		opts: DefaultOptions(),
		log:  trace.NewLog("test"),
		n:    m.N(),
		mask: m.IntegralMask(),
		work: m,
	}
}

func TestCover_HeaviestFirstLowestIndex(t *testing.T) {
	r := knapsackRunner(t)

	cut, ok := r.cover([]float64{1, 2.0 / 3, 0})
	require.True(t, ok)
	assert.Equal(t, KindCover, cut.Kind)
	assert.Equal(t, 0, cut.SourceRow)
	assert.Equal(t, []float64{1, 1, 0}, cut.Coeffs)
	assert.Equal(t, 1.0, cut.RHS)
	assert.Nil(t, cut.Alpha)
}

func TestCover_Gates(t *testing.T) {
	r := knapsackRunner(t)

	// x1 + x2 = 1 is not cut off
	_, ok := r.cover([]float64{0.5, 0.5, 0})
	assert.False(t, ok)
	assert.Equal(t, 1, r.log.Count(trace.KindCutRejected))

	r.cuts = []Cut{{Seq: 1, Kind: KindCover, Coeffs: []float64{1, 1, 0}, RHS: 1}}
	require.NoError(t, r.work.AddLe(r.cuts[0].Coeffs, r.cuts[0].RHS))
	_, ok = r.cover([]float64{1, 2.0 / 3, 0})
	assert.False(t, ok)
	last := r.log.Filter(trace.KindCutRejected)
	assert.Equal(t, "duplicate", last[len(last)-1].(trace.CutRejected).Reason)
}

func TestCover_SkipsRowsWithNegativeCoefficients(t *testing.T) {
	m := model.New(model.Maximize, []float64{1, 1})
	require.NoError(t, m.AddLe([]float64{3, -1}, 2))
	require.NoError(t, m.AddBound(0, model.LE, 1))
	require.NoError(t, m.AddBound(1, model.LE, 1))
	r := &runner{opts: DefaultOptions(), log: trace.NewLog("test"), n: 2, mask: m.IntegralMask(), work: m}

	_, ok := r.cover([]float64{1, 1})
	assert.False(t, ok)
}

func TestSourceRow_ClosestToHalf(t *testing.T) {
	r := &runner{n: 3, mask: []bool{true, true, false}}

	row, f := r.sourceRow([]float64{1.2, 2.6, 0.5, 3}, []int{0, 1, 2, 3})
	assert.Equal(t, 1, row)
	assert.InDelta(t, 0.6, f, 1e-12)

	// continuous and slack columns never qualify
	row, _ = r.sourceRow([]float64{0.5, 0.5}, []int{2, 4})
	assert.Equal(t, -1, row)
}

func TestGate_RejectsCopyOfInputRow(t *testing.T) {
	r := knapsackRunner(t)

	// x = (1, 1, 1) violates both the knapsack row and its copy.
	assert.False(t, r.gate(KindGomory, []float64{3, 3, 3}, 5, []float64{1, 1, 1}))
	last := r.log.Filter(trace.KindCutRejected)
	require.Len(t, last, 1)
	assert.Equal(t, "duplicate", last[0].(trace.CutRejected).Reason)

	assert.True(t, r.gate(KindGomory, []float64{1, 1, 1}, 2, []float64{1, 1, 1}))
}
