package trace_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlp/trace"
)

func TestNum(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{12, "12"},
		{1.5, "1.5"},
		{1.0 / 3, "0.333"},
		{2.0 / 3, "0.667"},
		{-0.0001, "0"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	} {
		assert.Equal(t, tc.want, trace.Num(tc.in), "Num(%v)", tc.in)
	}
}

func TestRow(t *testing.T) {
	assert.Equal(t, "2x1 + x2 - 0.5x3", trace.Row([]float64{2, 1, -0.5}, "x"))
	assert.Equal(t, "-s1 + s3", trace.Row([]float64{-1, 0, 1}, "s"))
	assert.Equal(t, "0", trace.Row([]float64{0, 0}, "x"))
}

func TestNilLogIsNoop(t *testing.T) {
	var l *trace.Log
	l.Emit(trace.Stop{Reason: "x"})
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Events())
	assert.Equal(t, uuid.Nil, l.RunID())
}

func TestLog_FilterCountAndSink(t *testing.T) {
	var seen []trace.Kind
	sink := func(_ uuid.UUID, e trace.Event) { seen = append(seen, e.Kind()) }

	l := trace.NewLog("simplex", sink)
	require.NotEqual(t, uuid.Nil, l.RunID())

	l.Emit(trace.Pivot{Iteration: 1, Entering: trace.Var{Index: 0, N: 2}, Leaving: trace.Var{Index: 2, N: 2}, Ratio: 4})
	l.Emit(trace.Stop{Reason: "optimal"})
	l.Emit(trace.Pivot{Iteration: 2, Rule: trace.PivotDual, Entering: trace.Var{Index: 3, N: 2}, Leaving: trace.Var{Index: 1, N: 2}})

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 2, l.Count(trace.KindPivot))
	assert.Len(t, l.Filter(trace.KindStop), 1)
	assert.Equal(t, []trace.Kind{trace.KindPivot, trace.KindStop, trace.KindPivot}, seen)
}

func TestFormat(t *testing.T) {
	l := trace.NewLog("branch-and-bound")
	l.Emit(trace.Relaxation{Node: "T-1", Status: "optimal", Objective: 12.5, X: []float64{2.5, 1}})
	l.Emit(trace.Branch{Node: "T-1", Var: 0, Value: 2.5, Floor: 2, Ceil: 3, Left: "T-2", Right: "T-3"})
	l.Emit(trace.Prune{Node: "T-3", Reason: trace.PruneInfeasible, Bound: math.NaN(), Incumbent: math.NaN()})
	l.Emit(trace.Prune{Node: "T-4", Reason: trace.PruneBound, Bound: 9, Incumbent: 10})
	l.Emit(trace.CutAdded{Seq: 1, CutKind: "gomory", SourceRow: 0, Coeffs: []float64{1, 1}, RHS: 1})

	var buf bytes.Buffer
	require.NoError(t, trace.Format(&buf, l))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)

	assert.True(t, strings.HasPrefix(lines[0], "# branch-and-bound run "))
	assert.Equal(t, "T-1: LP optimal, z = 12.5, x = (2.5, 1)", lines[1])
	assert.Equal(t, "T-1: branch on x1 = 2.5 -> T-2 (x1 <= 2), T-3 (x1 >= 3)", lines[2])
	assert.Equal(t, "T-3: pruned (infeasible)", lines[3])
	assert.Equal(t, "T-4: pruned (bound), bound 9 vs incumbent 10", lines[4])
	assert.Equal(t, "cut 1 (gomory, row 1): x1 + x2 <= 1", lines[5])
	assert.Equal(t, buf.String(), l.String())
}

func TestSlogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l := trace.NewLog("knapsack", trace.SlogSink(logger, slog.LevelDebug))
	l.Emit(trace.IncumbentUpdated{Source: "greedy", Objective: 7, Previous: math.Inf(-1)})

	out := buf.String()
	assert.Contains(t, out, `"event":"incumbent"`)
	assert.Contains(t, out, l.RunID().String())
	assert.Contains(t, out, "incumbent from greedy: z = 7 (was -inf)")
}

func TestCutEvents(t *testing.T) {
	events := []trace.Event{
		trace.CutAdded{Seq: 2, CutKind: "cover", SourceRow: 1, Coeffs: []float64{1, 1, 0}, RHS: 1},
		trace.CutRejected{CutKind: "gomory", Reason: "not violated"},
	}
	assert.Equal(t, trace.KindCutAdded, events[0].Kind())
	assert.Equal(t, trace.KindCutRejected, events[1].Kind())
	assert.Equal(t, "cut 2 (cover, row 2): x1 + x2 <= 1", trace.Line(events[0]))
	assert.Equal(t, "gomory cut rejected: not violated", trace.Line(events[1]))
}
