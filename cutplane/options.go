package cutplane

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/lvlp/metrics"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/trace"
)

// DefaultMaxCuts caps the number of accepted cuts per run.
const DefaultMaxCuts = 25

// ErrBadMaxCuts indicates a non-positive cut budget.
var ErrBadMaxCuts = errors.New("cutplane: max cuts must be > 0")

// Options configures a run.
//
// MaxCuts – accepted cuts before stopping with StatusCutLimit.
// Simplex – options forwarded to the single LP engine.
// Logger  – debug logging; defaults to a discard logger.
// Trace   – event log; when nil Solve creates one and returns it in Result.
// Metrics – cut counters and solve duration; nil disables.
type Options struct {
	MaxCuts int
	Simplex []simplex.Option
	Logger  *slog.Logger
	Trace   *trace.Log
	Metrics *metrics.Metrics
}

// Option represents a functional option for configuring a run.
type Option func(*Options)

// DefaultOptions returns the run defaults.
func DefaultOptions() Options {
	return Options{
		MaxCuts: DefaultMaxCuts,
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// WithMaxCuts sets the cut budget. Panics on n ≤ 0.
func WithMaxCuts(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxCuts.Error())
		}
		o.MaxCuts = n
	}
}

// WithSimplexOptions appends options for the LP engine.
func WithSimplexOptions(opts ...simplex.Option) Option {
	return func(o *Options) { o.Simplex = append(o.Simplex, opts...) }
}

// WithLogger routes debug output to l. A nil l keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTrace records cut events into l.
func WithTrace(l *trace.Log) Option {
	return func(o *Options) { o.Trace = l }
}

// WithMetrics counts cuts and observes solve time into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
