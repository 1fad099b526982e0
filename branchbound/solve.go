package branchbound

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/tolerance"
	"github.com/katalvlaran/lvlp/trace"
	"github.com/katalvlaran/lvlp/tracing"
)

// node is one pending relaxation: the parent model plus its branching rows.
type node struct {
	label string
	depth int
	m     *model.LinearModel
}

// search holds the state of one Solve call.
type search struct {
	ctx    context.Context
	opts   Options
	lpOpts []simplex.Option
	log    *trace.Log
	logger *slog.Logger

	sense model.Sense
	n     int
	mask  []bool

	stack  []*node
	labels int
	nodes  int

	useDeadline bool
	deadline    time.Time

	best       []float64
	bestZ      float64
	have       bool
	cands      []Candidate
	incumbents []float64

	rootUnbounded bool
	incomplete    bool
}

// Solve runs depth-first branch-and-bound over LP relaxations of m.
//
// Stage 1 (validate): m is checked once; nodes only ever add bound rows.
// Stage 2 (search): pop a node, solve its relaxation with a fresh simplex
// engine, then prune (non-optimal, or cannot beat the incumbent by more than
// tolerance.Improvement), record a candidate (all flagged variables within
// tolerance.Integrality), or branch on the flagged variable whose fractional
// part is closest to 0.5. The right child (x_k ≥ ceil) is pushed first so the
// left child (x_k ≤ floor) is explored first.
// Stage 3 (report): rank candidates best first and derive the status.
//
// Budgets (node count, wall time, ctx) are checked at the loop head; hitting
// one returns the partial result with the matching status and no error.
// Errors are returned only for a malformed model.
//
// Complexity: exponential in the worst case; each node costs one LP solve.
func Solve(ctx context.Context, m *model.LinearModel, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, fmt.Errorf("branchbound: %w", model.ErrInvalidModel)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("branchbound: %w", err)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Trace == nil {
		o.Trace = trace.NewLog("branch-and-bound")
	}

	ctx, span := tracing.Start(ctx, "branchbound.Solve", tracing.Size(m.M(), m.N())...)
	start := time.Now()

	s := &search{
		ctx:    ctx,
		opts:   o,
		log:    o.Trace,
		logger: o.Logger,
		sense:  m.Sense,
		n:      m.N(),
		mask:   m.IntegralMask(),
		bestZ:  m.Sense.Worst(),
	}
	s.lpOpts = append([]simplex.Option{
		simplex.WithLogger(o.Logger),
		simplex.WithMetrics(o.Metrics),
	}, o.Simplex...)
	if o.TimeLimit > 0 {
		s.useDeadline = true
		s.deadline = start.Add(o.TimeLimit)
	}

	status := s.run(m.Clone())
	res := s.result(status)

	o.Metrics.ObserveSolve("branch-and-bound", time.Since(start))
	o.Logger.Debug("branch-and-bound finished",
		slog.String("status", status.String()),
		slog.Int("nodes", s.nodes),
		slog.Int("candidates", len(s.cands)))
	tracing.Finish(span, status.String(), res.Objective, nil)

	return res, nil
}

// run drives the explicit stack until it empties or a budget stops it.
func (s *search) run(root *model.LinearModel) Status {
	s.stack = append(s.stack, &node{label: s.nextLabel(), m: root})

	var nd *node
	for len(s.stack) > 0 {
		if st, stop := s.budget(); stop {
			s.log.Emit(trace.Stop{Reason: st.String()})
			return st
		}
		nd = s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.nodes++
		s.visit(nd)
	}

	switch {
	case s.rootUnbounded:
		return StatusUnbounded
	case s.incomplete:
		return StatusIterationLimit
	case s.have:
		return StatusOptimal
	default:
		return StatusInfeasible
	}
}

// budget reports whether a limit stops the search before the next node.
func (s *search) budget() (Status, bool) {
	if s.ctx.Err() != nil {
		return StatusCanceled, true
	}
	if s.nodes >= s.opts.MaxNodes {
		return StatusNodeLimit, true
	}
	if s.useDeadline && time.Now().After(s.deadline) {
		return StatusTimeLimit, true
	}

	return 0, false
}

// visit solves one relaxation and applies the prune/record/branch policy.
func (s *search) visit(nd *node) {
	eng, err := simplex.New(nd.m, s.lpOpts...)
	if err != nil {
		// nodes only add finite bound rows to a validated model
		s.logger.Error("branch-and-bound node rejected", slog.String("node", nd.label), slog.Any("err", err))
		s.incomplete = true
		return
	}
	lp := eng.Optimize(s.ctx)
	x := lp.Structural(s.n)
	s.log.Emit(trace.Relaxation{
		Node:       nd.label,
		Status:     lp.Status.String(),
		Objective:  lp.Objective,
		X:          x,
		Iterations: lp.Iterations,
	})

	switch lp.Status {
	case simplex.StatusOptimal:
	case simplex.StatusInfeasible:
		s.prune(nd, trace.PruneInfeasible, math.NaN())
		return
	case simplex.StatusUnbounded:
		if nd.depth == 0 {
			s.rootUnbounded = true
		}
		s.prune(nd, trace.PruneUnbounded, math.NaN())
		return
	default:
		s.incomplete = true
		s.prune(nd, trace.PruneLimit, math.NaN())
		return
	}

	if s.have && !s.sense.Better(lp.Objective, s.bestZ) {
		s.prune(nd, trace.PruneBound, lp.Objective)
		return
	}

	k := s.branchVar(x)
	if k < 0 {
		s.record(nd, x)
		return
	}
	s.branch(nd, k, x[k])
}

// branchVar returns the flagged variable with fractional part closest to
// 0.5 (lowest index on ties), or −1 when all flagged variables are integral.
func (s *search) branchVar(x []float64) int {
	var (
		best  = -1
		score = math.Inf(-1)
		f, sc float64
	)
	for j, v := range x {
		if !s.mask[j] || tolerance.IsIntegral(v) {
			continue
		}
		f = v - math.Floor(v)
		sc = 0.5 - math.Abs(f-0.5)
		if sc > score {
			best, score = j, sc
		}
	}

	return best
}

// branch pushes x_k ≥ ceil (right) then x_k ≤ floor (left).
func (s *search) branch(nd *node, k int, v float64) {
	lo, hi := math.Floor(v), math.Ceil(v)
	left := &node{label: s.nextLabel(), depth: nd.depth + 1, m: nd.m.Clone()}
	right := &node{label: s.nextLabel(), depth: nd.depth + 1, m: nd.m.Clone()}
	// k < N() on a validated model, so AddBound cannot fail here
	_ = left.m.AddBound(k, model.LE, lo)
	_ = right.m.AddBound(k, model.GE, hi)

	s.log.Emit(trace.Branch{
		Node:  nd.label,
		Var:   k,
		Value: v,
		Floor: lo,
		Ceil:  hi,
		Left:  left.label,
		Right: right.label,
	})
	s.opts.Metrics.ObserveNode("branched")
	s.stack = append(s.stack, right, left)
}

// record stores an integer-feasible relaxation and updates the incumbent
// when it is strictly better. Flagged values are rounded and the objective
// is re-evaluated at the rounded point.
func (s *search) record(nd *node, relaxed []float64) {
	x := append([]float64(nil), relaxed...)
	for j := range x {
		if s.mask[j] {
			x[j] = math.Round(x[j])
		}
	}
	z := nd.m.Value(x)
	c := Candidate{Name: candidateName(len(s.cands)), Node: nd.label, X: x, Objective: z}
	s.cands = append(s.cands, c)
	s.log.Emit(trace.Candidate{Name: c.Name, Node: c.Node, Objective: z, X: x})
	s.opts.Metrics.ObserveNode("integral")

	if s.have && !s.sense.Better(z, s.bestZ) {
		return
	}
	s.log.Emit(trace.IncumbentUpdated{Source: c.Name, Objective: z, Previous: s.bestZ, X: x})
	s.best, s.bestZ, s.have = x, z, true
	s.incumbents = append(s.incumbents, z)
}

// prune discards nd; bound is the relaxation value for PruneBound, NaN
// otherwise.
func (s *search) prune(nd *node, reason trace.PruneReason, bound float64) {
	inc := math.NaN()
	if !math.IsNaN(bound) {
		inc = s.bestZ
	}
	s.log.Emit(trace.Prune{Node: nd.label, Reason: reason, Bound: bound, Incumbent: inc})

	switch reason {
	case trace.PruneInfeasible:
		s.opts.Metrics.ObserveNode("pruned_infeasible")
	case trace.PruneUnbounded:
		s.opts.Metrics.ObserveNode("pruned_unbounded")
	case trace.PruneBound:
		s.opts.Metrics.ObserveNode("pruned_bound")
	default:
		s.opts.Metrics.ObserveNode("pruned_limit")
	}
}

func (s *search) nextLabel() string {
	s.labels++
	return "T-" + strconv.Itoa(s.labels)
}

// result assembles the public Result.
func (s *search) result(st Status) *Result {
	cands := append([]Candidate(nil), s.cands...)
	sign := s.sense.Sign()
	sort.SliceStable(cands, func(i, j int) bool {
		return sign*cands[i].Objective > sign*cands[j].Objective
	})

	res := &Result{
		Status:       st,
		HasIncumbent: s.have,
		Candidates:   cands,
		Incumbents:   s.incumbents,
		Nodes:        s.nodes,
		Trace:        s.log,
		Objective:    math.NaN(),
	}
	switch {
	case s.have:
		res.X = append([]float64(nil), s.best...)
		res.Objective = s.bestZ
	case st == StatusUnbounded:
		res.Objective = math.Inf(int(sign))
	}

	return res
}
