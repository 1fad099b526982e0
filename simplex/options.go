package simplex

import (
	"log/slog"

	"github.com/katalvlaran/lvlp/metrics"
	"github.com/katalvlaran/lvlp/trace"
)

const (
	// DefaultMaxIterations caps pivots per Optimize call.
	DefaultMaxIterations = 10000

	// DefaultRefactorEvery is the eta-file length that triggers reinversion.
	DefaultRefactorEvery = 64

	// blandAfter is the number of consecutive degenerate primal pivots after
	// which entering/leaving selection switches to Bland's rule.
	blandAfter = 50
)

// Options configures an Engine.
//
// MaxIterations – pivot budget per Optimize call; exhausting it yields
//
//	StatusIterationLimit. Must be > 0.
//
// RefactorEvery – reinvert once the eta file holds this many etas; 0 disables.
// Logger        – debug logging of run boundaries; defaults to a discard logger.
// Trace         – event log receiving Pivot/Refactor events; nil discards.
// Metrics       – pivot counters; nil disables.
type Options struct {
	MaxIterations int
	RefactorEvery int
	Logger        *slog.Logger
	Trace         *trace.Log
	Metrics       *metrics.Metrics
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// DefaultOptions returns the engine defaults.
//
// Defaults:
//   - MaxIterations: DefaultMaxIterations.
//   - RefactorEvery: DefaultRefactorEvery.
//   - Logger:        discard.
//   - Trace/Metrics: nil (disabled).
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		RefactorEvery: DefaultRefactorEvery,
		Logger:        slog.New(slog.DiscardHandler),
	}
}

// WithMaxIterations sets the per-call pivot budget. Panics on n ≤ 0.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxIterations.Error())
		}
		o.MaxIterations = n
	}
}

// WithRefactorEvery sets the reinversion threshold; 0 disables reinversion.
// Panics on k < 0.
func WithRefactorEvery(k int) Option {
	return func(o *Options) {
		if k < 0 {
			panic(ErrBadRefactorEvery.Error())
		}
		o.RefactorEvery = k
	}
}

// WithLogger routes debug output to l. A nil l keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTrace records pivot events into l.
func WithTrace(l *trace.Log) Option {
	return func(o *Options) { o.Trace = l }
}

// WithMetrics counts pivots and reinversions into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
