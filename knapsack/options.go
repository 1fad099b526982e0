package knapsack

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/lvlp/metrics"
	"github.com/katalvlaran/lvlp/trace"
)

// DefaultMaxNodes caps the number of search nodes.
const DefaultMaxNodes = 1 << 20

// Options configures a search.
//
// MaxNodes  – nodes visited before stopping with StatusNodeLimit.
// TimeLimit – wall-clock budget; 0 disables.
// Iterative – explicit-stack search instead of recursion; both visit the
//
//	same nodes in the same order.
//
// Logger    – debug logging; defaults to a discard logger.
// Trace     – event log; when nil Solve creates one and returns it in Result.
// Metrics   – node counters and solve duration; nil disables.
type Options struct {
	MaxNodes  int
	TimeLimit time.Duration
	Iterative bool
	Logger    *slog.Logger
	Trace     *trace.Log
	Metrics   *metrics.Metrics
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns the search defaults: recursive, DefaultMaxNodes,
// no time limit.
func DefaultOptions() Options {
	return Options{
		MaxNodes: DefaultMaxNodes,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// WithMaxNodes sets the node budget. Panics on n ≤ 0.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxNodes.Error())
		}
		o.MaxNodes = n
	}
}

// WithTimeLimit sets the wall-clock budget; 0 disables. Panics on d < 0.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			panic(ErrBadTimeLimit.Error())
		}
		o.TimeLimit = d
	}
}

// WithIterative selects the explicit-stack search.
func WithIterative() Option {
	return func(o *Options) { o.Iterative = true }
}

// WithLogger routes debug output to l. A nil l keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTrace records search events into l.
func WithTrace(l *trace.Log) Option {
	return func(o *Options) { o.Trace = l }
}

// WithMetrics counts nodes and observes solve time into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
