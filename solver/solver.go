// Package solver is the single entry point over the engines: it picks one by
// Method, wires the shared logger, trace log and metrics into it, and folds
// the engine-specific result into a uniform Report.
//
// Engine results are kept on the Report for callers that need candidates,
// cuts or knapsack ordering.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/katalvlaran/lvlp/branchbound"
	"github.com/katalvlaran/lvlp/config"
	"github.com/katalvlaran/lvlp/cutplane"
	"github.com/katalvlaran/lvlp/knapsack"
	"github.com/katalvlaran/lvlp/logging"
	"github.com/katalvlaran/lvlp/metrics"
	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/sensitivity"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/trace"
	"github.com/katalvlaran/lvlp/tracing"
)

// Method names an engine.
type Method string

const (
	MethodSimplex      Method = "simplex"
	MethodBranchBound  Method = "branch-and-bound"
	MethodCuttingPlane Method = "cutting-plane"
	MethodKnapsack     Method = "knapsack"
)

// Methods lists every supported method in presentation order.
var Methods = []Method{MethodSimplex, MethodBranchBound, MethodCuttingPlane, MethodKnapsack}

// ErrUnknownMethod indicates a method name outside Methods.
var ErrUnknownMethod = errors.New("solver: unknown method")

// ParseMethod matches s case-insensitively against Methods. "bb", "cuts" and
// "lp" are accepted as short forms.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simplex", "lp":
		return MethodSimplex, nil
	case "branch-and-bound", "bb":
		return MethodBranchBound, nil
	case "cutting-plane", "cuts":
		return MethodCuttingPlane, nil
	case "knapsack":
		return MethodKnapsack, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Report is the method-independent outcome of Solve.
//
// Optimal is true only when the engine proved optimality (for cutting planes:
// an integral optimum). X holds the n structural values and is nil when the
// run produced no solution; Objective is then NaN. Exactly one of LP, Search,
// Cuts and Knapsack is set. Analyzer is set for optimal simplex runs when
// WithSensitivity was given. Metrics holds the collectors the run recorded
// into, if any.
type Report struct {
	Method    Method
	Status    string
	Optimal   bool
	X         []float64
	Objective float64
	Duration  time.Duration
	Trace     *trace.Log
	Metrics   *metrics.Metrics

	LP       *simplex.Result
	Search   *branchbound.Result
	Cuts     *cutplane.Result
	Knapsack *knapsack.Result
	Analyzer *sensitivity.Analyzer
}

// Solve validates m and runs method on it.
//
// Errors are returned for a nil or malformed model, an unknown method, or a
// model the method cannot accept (knapsack needs a single-row maximization).
// Infeasible, unbounded and budget outcomes are statuses on the Report.
func Solve(ctx context.Context, m *model.LinearModel, method Method, opts ...Option) (*Report, error) {
	if m == nil {
		return nil, fmt.Errorf("solver: %w", model.ErrInvalidModel)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if cfg := o.Config; cfg != nil {
		if o.Logger == nil {
			l := logging.New(cfg.Log)
			defer l.Close()
			o.Logger = l.Logger
		}
		if o.Metrics == nil && cfg.Metrics.Enabled {
			o.Metrics = metrics.New(nil)
		}
		if !cfg.Tracing.Enabled {
			ctx = tracing.Disable(ctx)
		}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Trace == nil {
		o.Trace = trace.NewLog(string(method))
	}

	ctx, span := tracing.Start(ctx, "solver.Solve",
		append(tracing.Size(m.M(), m.N()), tracing.Method(string(method)))...)
	logger := o.Logger.With(
		slog.String("method", string(method)),
		slog.String("run", o.Trace.RunID().String()),
	)
	logger.InfoContext(ctx, "solver: start", slog.Int("rows", m.M()), slog.Int("cols", m.N()))
	start := time.Now()

	var (
		rep *Report
		err error
	)
	switch method {
	case MethodSimplex:
		rep, err = solveSimplex(ctx, m, o)
	case MethodBranchBound:
		rep, err = solveBranchBound(ctx, m, o)
	case MethodCuttingPlane:
		rep, err = solveCuttingPlane(ctx, m, o)
	case MethodKnapsack:
		rep, err = solveKnapsack(ctx, m, o)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if err != nil {
		logger.ErrorContext(ctx, "solver: failed", slog.Any("error", err))
		tracing.Finish(span, "error", math.NaN(), err)

		return nil, err
	}

	rep.Method = method
	rep.Duration = time.Since(start)
	rep.Trace = o.Trace
	rep.Metrics = o.Metrics
	logger.InfoContext(ctx, "solver: done",
		slog.String("status", rep.Status),
		slog.Float64("objective", rep.Objective),
		slog.Duration("elapsed", rep.Duration),
		slog.Int("events", o.Trace.Len()))
	tracing.Finish(span, rep.Status, rep.Objective, nil)

	return rep, nil
}

// SolveConfig runs Solve with every section of cfg applied and cfg.Method
// as the method (simplex when empty). A nil cfg means config.Default().
// opts are applied after cfg, so WithLogger and WithMetrics still override.
func SolveConfig(ctx context.Context, m *model.LinearModel, cfg *config.Config, opts ...Option) (*Report, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	method := MethodSimplex
	if cfg.Method != "" {
		var err error
		if method, err = ParseMethod(cfg.Method); err != nil {
			return nil, err
		}
	}

	return Solve(ctx, m, method, append([]Option{WithConfig(cfg)}, opts...)...)
}

// lpOptions puts the ambient options first so caller overrides win.
func lpOptions(o Options) []simplex.Option {
	return append([]simplex.Option{
		simplex.WithLogger(o.Logger),
		simplex.WithTrace(o.Trace),
		simplex.WithMetrics(o.Metrics),
	}, o.Simplex...)
}

func solveSimplex(ctx context.Context, m *model.LinearModel, o Options) (*Report, error) {
	eng, err := simplex.New(m, lpOptions(o)...)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	ctx, span := tracing.Start(ctx, "simplex.Optimize", tracing.Size(m.M(), m.N())...)
	start := time.Now()
	lp := eng.Optimize(ctx)
	o.Metrics.ObserveSolve(string(MethodSimplex), time.Since(start))
	tracing.Finish(span, lp.Status.String(), lp.Objective, nil)

	rep := &Report{
		Status:    lp.Status.String(),
		Optimal:   lp.Status == simplex.StatusOptimal,
		Objective: math.NaN(),
		LP:        &lp,
	}
	if !rep.Optimal {
		return rep, nil
	}
	rep.X = lp.Structural(m.N())
	rep.Objective = lp.Objective

	if o.Analyze {
		a, err := sensitivity.New(eng,
			sensitivity.WithLogger(o.Logger),
			sensitivity.WithSimplexOptions(o.Simplex...))
		if err != nil {
			return nil, fmt.Errorf("solver: %w", err)
		}
		rep.Analyzer = a
	}

	return rep, nil
}

func solveBranchBound(ctx context.Context, m *model.LinearModel, o Options) (*Report, error) {
	res, err := branchbound.Solve(ctx, m, append([]branchbound.Option{
		branchbound.WithLogger(o.Logger),
		branchbound.WithTrace(o.Trace),
		branchbound.WithMetrics(o.Metrics),
		branchbound.WithSimplexOptions(o.Simplex...),
	}, o.BranchBound...)...)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	rep := &Report{
		Status:    res.Status.String(),
		Optimal:   res.Status == branchbound.StatusOptimal,
		Objective: math.NaN(),
		Search:    res,
	}
	if res.HasIncumbent {
		rep.X = res.X
		rep.Objective = res.Objective
	}

	return rep, nil
}

func solveCuttingPlane(ctx context.Context, m *model.LinearModel, o Options) (*Report, error) {
	res, err := cutplane.Solve(ctx, m, append([]cutplane.Option{
		cutplane.WithLogger(o.Logger),
		cutplane.WithTrace(o.Trace),
		cutplane.WithMetrics(o.Metrics),
		cutplane.WithSimplexOptions(o.Simplex...),
	}, o.CutPlane...)...)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	return &Report{
		Status:    res.Status.String(),
		Optimal:   res.Status == cutplane.StatusIntegral,
		X:         res.X,
		Objective: res.Objective,
		Cuts:      res,
	}, nil
}

func solveKnapsack(ctx context.Context, m *model.LinearModel, o Options) (*Report, error) {
	res, err := knapsack.Solve(ctx, m, append([]knapsack.Option{
		knapsack.WithLogger(o.Logger),
		knapsack.WithTrace(o.Trace),
		knapsack.WithMetrics(o.Metrics),
	}, o.Knapsack...)...)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	x := make([]float64, m.N())
	for _, j := range res.Items {
		x[j] = 1
	}

	return &Report{
		Status:    res.Status.String(),
		Optimal:   res.Status == knapsack.StatusOptimal,
		X:         x,
		Objective: res.Value,
		Knapsack:  res,
	}, nil
}
