package knapsack

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/tolerance"
	"github.com/katalvlaran/lvlp/trace"
	"github.com/katalvlaran/lvlp/tracing"
)

// Status is the outcome of a search.
type Status int

const (
	// StatusOptimal means the search tree was exhausted.
	StatusOptimal Status = iota
	// StatusNodeLimit means MaxNodes nodes were visited.
	StatusNodeLimit
	// StatusTimeLimit means the wall-clock budget ran out.
	StatusTimeLimit
	// StatusCanceled means the context was done.
	StatusCanceled
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusNodeLimit:
		return "node limit"
	case StatusTimeLimit:
		return "time limit"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result summarizes a search. Items are 0-based and ascending; on a limit
// status they describe the best set found so far.
type Result struct {
	Status Status
	Items  []int
	Value  float64
	Weight float64
	Order  []int
	Nodes  int
	Trace  *trace.Log
}

// Solve builds a Problem from a single-row maximization model and searches
// it. Malformed models yield a *model.InputError.
func Solve(ctx context.Context, m *model.LinearModel, opts ...Option) (*Result, error) {
	p, err := FromModel(m)
	if err != nil {
		return nil, fmt.Errorf("knapsack: %w", err)
	}

	return p.Solve(ctx, opts...), nil
}

// searcher holds the state of one search.
type searcher struct {
	ctx  context.Context
	p    *Problem
	opts Options
	log  *trace.Log

	useDeadline bool
	deadline    time.Time
	stopped     bool
	status      Status

	cur     []bool
	best    []bool
	bestVal float64
	nodes   int
}

// Solve finds a maximum-value subset of eligible items within capacity.
//
// Stage 1 (seed): take items greedily in Order while they fit; that set is
// the first incumbent.
// Stage 2 (search): depth-first over Order positions. At each node the
// current set replaces the incumbent when it is better by more than
// tolerance.Improvement; the node is pruned when value + Bound cannot beat
// the incumbent by more than tolerance.Improvement; otherwise the include
// branch (if the item fits) is explored before the exclude branch.
//
// Complexity: O(2ⁿ) nodes in the worst case, O(n) per node.
func (p *Problem) Solve(ctx context.Context, opts ...Option) *Result {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Trace == nil {
		o.Trace = trace.NewLog("knapsack")
	}

	ctx, span := tracing.Start(ctx, "knapsack.Solve", tracing.Size(1, p.N())...)
	start := time.Now()

	s := &searcher{
		ctx:  ctx,
		p:    p,
		opts: o,
		log:  o.Trace,
		cur:  make([]bool, p.N()),
	}
	if o.TimeLimit > 0 {
		s.useDeadline = true
		s.deadline = start.Add(o.TimeLimit)
	}

	s.greedy()
	if o.Iterative {
		s.iterative()
	} else {
		s.recursive(0, 0, 0)
	}
	if s.stopped {
		s.log.Emit(trace.Stop{Reason: s.status.String()})
	}

	res := s.result()
	o.Metrics.ObserveSolve("knapsack", time.Since(start))
	o.Logger.Debug("knapsack finished",
		slog.String("status", res.Status.String()),
		slog.Int("nodes", res.Nodes),
		slog.Float64("value", res.Value))
	tracing.Finish(span, res.Status.String(), res.Value, nil)

	return res
}

// greedy seeds the incumbent with the ratio-order fill.
func (s *searcher) greedy() {
	var w, v float64
	set := make([]bool, s.p.N())
	for _, j := range s.p.Order {
		if s.p.Values[j] > 0 && w+s.p.Weights[j] <= s.p.Capacity {
			set[j] = true
			w += s.p.Weights[j]
			v += s.p.Values[j]
		}
	}
	s.best, s.bestVal = set, v
	s.log.Emit(trace.IncumbentUpdated{Source: "greedy", Objective: v, Previous: math.Inf(-1), X: indicator(set)})
}

// budget reports whether a limit stops the search; the first hit is sticky.
func (s *searcher) budget() bool {
	if s.stopped {
		return true
	}
	switch {
	case s.ctx.Err() != nil:
		s.status = StatusCanceled
	case s.nodes >= s.opts.MaxNodes:
		s.status = StatusNodeLimit
	case s.useDeadline && time.Now().After(s.deadline):
		s.status = StatusTimeLimit
	default:
		return false
	}
	s.stopped = true

	return true
}

// enter processes the node at pos with running weight w and value v and
// reports whether its children should be explored.
func (s *searcher) enter(pos int, w, v float64) bool {
	s.nodes++
	label := "K-" + strconv.Itoa(s.nodes)

	if v > s.bestVal+tolerance.Improvement {
		s.log.Emit(trace.IncumbentUpdated{Source: label, Objective: v, Previous: s.bestVal, X: indicator(s.cur)})
		s.best = append(s.best[:0], s.cur...)
		s.bestVal = v
	}
	if pos == len(s.p.Order) {
		s.opts.Metrics.ObserveNode("leaf")
		return false
	}
	if bound := v + s.p.Bound(pos, w); bound <= s.bestVal+tolerance.Improvement {
		s.log.Emit(trace.Prune{Node: label, Reason: trace.PruneBound, Bound: bound, Incumbent: s.bestVal})
		s.opts.Metrics.ObserveNode("pruned_bound")
		return false
	}
	s.opts.Metrics.ObserveNode("branched")

	return true
}

// fits reports whether the item at pos fits; a miss is traced as a capacity
// prune of the include branch.
func (s *searcher) fits(pos int, w float64) bool {
	j := s.p.Order[pos]
	if w+s.p.Weights[j] <= s.p.Capacity {
		return true
	}
	s.log.Emit(trace.Prune{
		Node:      "K-" + strconv.Itoa(s.nodes) + "+" + strconv.Itoa(j+1),
		Reason:    trace.PruneCapacity,
		Bound:     math.NaN(),
		Incumbent: math.NaN(),
	})

	return false
}

func (s *searcher) recursive(pos int, w, v float64) {
	if s.budget() || !s.enter(pos, w, v) {
		return
	}
	j := s.p.Order[pos]
	if s.fits(pos, w) {
		s.cur[j] = true
		s.recursive(pos+1, w+s.p.Weights[j], v+s.p.Values[j])
		s.cur[j] = false
	}
	s.recursive(pos+1, w, v)
}

// frame is one pending step of the iterative search: visit the node at pos,
// or (undo) drop item from the current set.
type frame struct {
	pos  int
	w, v float64
	set  int // item to add before visiting; −1 for none
	undo bool
}

// iterative replays recursive with an explicit stack: for each expanded node
// it pushes exclude, undo(include), include, so include is visited first.
func (s *searcher) iterative() {
	stack := []frame{{set: -1}}
	var f frame
	for len(stack) > 0 {
		f = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.undo {
			s.cur[f.set] = false
			continue
		}
		if f.set >= 0 {
			s.cur[f.set] = true
		}
		if s.budget() || !s.enter(f.pos, f.w, f.v) {
			continue
		}
		j := s.p.Order[f.pos]
		stack = append(stack, frame{pos: f.pos + 1, w: f.w, v: f.v, set: -1})
		if s.fits(f.pos, f.w) {
			stack = append(stack,
				frame{set: j, undo: true},
				frame{pos: f.pos + 1, w: f.w + s.p.Weights[j], v: f.v + s.p.Values[j], set: j},
			)
		}
	}
}

func (s *searcher) result() *Result {
	res := &Result{
		Status: s.status,
		Value:  s.bestVal,
		Order:  append([]int(nil), s.p.Order...),
		Nodes:  s.nodes,
		Trace:  s.log,
	}
	for j, in := range s.best {
		if in {
			res.Items = append(res.Items, j)
			res.Weight += s.p.Weights[j]
		}
	}

	return res
}

func indicator(set []bool) []float64 {
	x := make([]float64, len(set))
	for j, in := range set {
		if in {
			x[j] = 1
		}
	}

	return x
}
