package cutplane

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/tolerance"
	"github.com/katalvlaran/lvlp/trace"
	"github.com/katalvlaran/lvlp/tracing"
)

// runner holds the state of one Solve call.
type runner struct {
	opts   Options
	log    *trace.Log
	logger *slog.Logger

	n    int
	mask []bool
	work *model.LinearModel // input rows plus accepted cuts
	eng  *simplex.Engine
	cuts []Cut
}

// Solve runs the cutting-plane method on m with a single warm-started
// simplex engine.
//
// Each round reads the optimal relaxation and stops when every
// integral-flagged variable is integral. Otherwise it derives a Gomory
// fractional cut from the basis row whose value is most fractional; if that
// cut does not cut off the point by more than tolerance.Violation, or
// duplicates an earlier cut, a knapsack cover cut is tried on the binary
// variables. An accepted cut is appended to the engine with
// AddRowAndWarmStart and re-optimized, usually by a few dual pivots.
//
// Hitting MaxCuts, finding no cut, or an LP status other than optimal ends the
// run with the matching Status; these are not errors. Errors are returned
// only for a malformed model.
func Solve(ctx context.Context, m *model.LinearModel, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, fmt.Errorf("cutplane: %w", model.ErrInvalidModel)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Trace == nil {
		o.Trace = trace.NewLog("cutting-plane")
	}

	lpOpts := append([]simplex.Option{
		simplex.WithLogger(o.Logger),
		simplex.WithMetrics(o.Metrics),
		simplex.WithTrace(o.Trace),
	}, o.Simplex...)
	eng, err := simplex.New(m, lpOpts...)
	if err != nil {
		return nil, fmt.Errorf("cutplane: %w", err)
	}

	ctx, span := tracing.Start(ctx, "cutplane.Solve", tracing.Size(m.M(), m.N())...)
	start := time.Now()

	r := &runner{
		opts:   o,
		log:    o.Trace,
		logger: o.Logger,
		n:      m.N(),
		mask:   m.IntegralMask(),
		work:   m.Clone(),
		eng:    eng,
	}
	res := r.run(ctx)

	o.Metrics.ObserveSolve("cutting-plane", time.Since(start))
	o.Logger.Debug("cutting-plane finished",
		slog.String("status", res.Status.String()),
		slog.Int("cuts", len(res.Cuts)),
		slog.Int("iterations", res.Iterations))
	tracing.Finish(span, res.Status.String(), res.Objective, nil)

	return res, nil
}

func (r *runner) run(ctx context.Context) *Result {
	var (
		lp  simplex.Result
		st  Status
		cut Cut
		ok  bool
	)
	for {
		lp = r.eng.Optimize(ctx)
		if lp.Status != simplex.StatusOptimal {
			return r.result(lpStatus(lp.Status), lp)
		}
		x := lp.Structural(r.n)
		if r.integral(x) {
			return r.result(StatusIntegral, lp)
		}
		if len(r.cuts) >= r.opts.MaxCuts {
			r.log.Emit(trace.Stop{Reason: StatusCutLimit.String()})
			return r.result(StatusCutLimit, lp)
		}

		if cut, ok = r.gomory(x); !ok {
			if cut, ok = r.cover(x); !ok {
				st = StatusNoCut
				r.log.Emit(trace.Stop{Reason: st.String()})
				return r.result(st, lp)
			}
		}
		if err := r.accept(cut); err != nil {
			// cut rows are finite and full length
			r.logger.Error("cutting-plane cut rejected by engine", slog.Any("err", err))
			return r.result(StatusNoCut, lp)
		}
	}
}

// accept appends cut to the work model and the engine.
func (r *runner) accept(c Cut) error {
	if err := r.eng.AddRowAndWarmStart(c.Coeffs, c.RHS); err != nil {
		return err
	}
	c.Seq = len(r.cuts) + 1
	r.cuts = append(r.cuts, c)
	_ = r.work.AddLe(c.Coeffs, c.RHS)

	r.log.Emit(trace.CutAdded{
		Seq:       c.Seq,
		CutKind:   c.Kind.String(),
		SourceRow: c.SourceRow,
		Alpha:     c.Alpha,
		F:         c.F,
		Coeffs:    c.Coeffs,
		RHS:       c.RHS,
	})
	r.opts.Metrics.ObserveCut(c.Kind.String(), "added")

	return nil
}

// reject records a failed gate for a candidate cut.
func (r *runner) reject(k Kind, reason string) {
	r.log.Emit(trace.CutRejected{CutKind: k.String(), Reason: reason})
	r.opts.Metrics.ObserveCut(k.String(), "rejected")
}

// gate applies the violation and duplicate tests to coeffs·x ≤ rhs. A cut
// duplicates any current row of the working model: an input row or an
// accepted cut.
func (r *runner) gate(k Kind, coeffs []float64, rhs float64, x []float64) bool {
	var lhs float64
	for j, a := range coeffs {
		lhs += a * x[j]
	}
	if lhs <= rhs+tolerance.Violation {
		r.reject(k, "not violated")
		return false
	}
	for i := range r.work.Rows {
		if duplicate(r.work.Row(i), r.work.RHS[i], coeffs, rhs) {
			r.reject(k, "duplicate")
			return false
		}
	}

	return true
}

func duplicate(row []float64, b float64, coeffs []float64, rhs float64) bool {
	if math.Abs(b-rhs) > tolerance.Duplicate {
		return false
	}
	for j, a := range coeffs {
		if math.Abs(row[j]-a) > tolerance.Duplicate {
			return false
		}
	}

	return true
}

func (r *runner) integral(x []float64) bool {
	for j, v := range x {
		if r.mask[j] && !tolerance.IsIntegral(v) {
			return false
		}
	}

	return true
}

func (r *runner) result(st Status, lp simplex.Result) *Result {
	res := &Result{
		Status:     st,
		Objective:  math.NaN(),
		Cuts:       r.cuts,
		Model:      r.work,
		Iterations: r.eng.Iterations(),
		Trace:      r.log,
	}
	switch lp.Status {
	case simplex.StatusOptimal:
		res.X = lp.Structural(r.n)
		res.Objective = lp.Objective
	case simplex.StatusUnbounded:
		res.Objective = lp.Objective
	}

	return res
}

func lpStatus(s simplex.Status) Status {
	switch s {
	case simplex.StatusInfeasible:
		return StatusInfeasible
	case simplex.StatusUnbounded:
		return StatusUnbounded
	case simplex.StatusCanceled:
		return StatusCanceled
	default:
		return StatusIterationLimit
	}
}
