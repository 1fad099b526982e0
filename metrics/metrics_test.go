package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlp/metrics"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObservePivot("primal")
		m.ObserveRefactor()
		m.ObserveNode("branched")
		m.ObserveCut("gomory", "accepted")
		m.ObserveSolve("simplex", time.Millisecond)
	})
}

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObservePivot("primal")
	m.ObservePivot("primal")
	m.ObservePivot("dual")
	m.ObserveNode("pruned_bound")
	m.ObserveCut("cover", "accepted")
	m.ObserveRefactor()
	m.ObserveSolve("simplex", 2*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Pivots.WithLabelValues("primal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pivots.WithLabelValues("dual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Nodes.WithLabelValues("pruned_bound")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Cuts.WithLabelValues("cover", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refactors))

	n, err := testutil.GatherAndCount(reg, "lvlp_solve_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
