// Package metrics exposes solver counters and timings to Prometheus.
//
// A nil *Metrics is valid: every Observe method is a no-op on it, so
// engines can record unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lvlp"

// Metrics holds the solver collectors registered on one registry.
type Metrics struct {
	Pivots        *prometheus.CounterVec   // simplex pivots by rule (primal, dual, phase1)
	Refactors     prometheus.Counter       // eta-file reinversions
	Nodes         *prometheus.CounterVec   // search nodes by outcome
	Cuts          *prometheus.CounterVec   // cuts by kind and result
	SolveDuration *prometheus.HistogramVec // wall time per solve by method
}

// New creates the collectors and registers them on reg. A nil reg uses a
// fresh private registry, which keeps tests independent of the global one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		Pivots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simplex_pivots_total",
			Help:      "Simplex basis changes by pivot rule.",
		}, []string{"kind"}),
		Refactors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simplex_refactors_total",
			Help:      "Product-form reinversions of the eta file.",
		}),
		Nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bb_nodes_total",
			Help:      "Branch-and-bound and knapsack search nodes by outcome.",
		}, []string{"outcome"}),
		Cuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cuts_total",
			Help:      "Cutting-plane candidates by kind and result.",
		}, []string{"kind", "result"}),
		SolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a complete solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"method"}),
	}
	reg.MustRegister(m.Pivots, m.Refactors, m.Nodes, m.Cuts, m.SolveDuration)

	return m
}

// ObservePivot counts one pivot of the given rule.
func (m *Metrics) ObservePivot(kind string) {
	if m == nil {
		return
	}
	m.Pivots.WithLabelValues(kind).Inc()
}

// ObserveRefactor counts one reinversion.
func (m *Metrics) ObserveRefactor() {
	if m == nil {
		return
	}
	m.Refactors.Inc()
}

// ObserveNode counts one search node with its outcome
// ("branched", "integral", "pruned_bound", "pruned_infeasible", ...).
func (m *Metrics) ObserveNode(outcome string) {
	if m == nil {
		return
	}
	m.Nodes.WithLabelValues(outcome).Inc()
}

// ObserveCut counts one cut candidate ("gomory"/"cover", "accepted"/"rejected").
func (m *Metrics) ObserveCut(kind, result string) {
	if m == nil {
		return
	}
	m.Cuts.WithLabelValues(kind, result).Inc()
}

// ObserveSolve records the duration of one solve.
func (m *Metrics) ObserveSolve(method string, d time.Duration) {
	if m == nil {
		return
	}
	m.SolveDuration.WithLabelValues(method).Observe(d.Seconds())
}
