package branchbound

import (
	"errors"
	"log/slog"
	"time"

	"github.com/katalvlaran/lvlp/metrics"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/trace"
)

// DefaultMaxNodes caps the number of relaxations solved by one search.
const DefaultMaxNodes = 10000

// Sentinel errors.
var (
	// ErrBadMaxNodes indicates a non-positive node budget.
	ErrBadMaxNodes = errors.New("branchbound: max nodes must be > 0")

	// ErrBadTimeLimit indicates a negative wall-clock budget.
	ErrBadTimeLimit = errors.New("branchbound: time limit must be >= 0")
)

// Options configures a search.
//
// MaxNodes  – relaxations solved before giving up with StatusNodeLimit.
// TimeLimit – wall-clock budget checked at the loop head; 0 disables.
// Simplex   – options forwarded to every node's simplex engine.
// Logger    – debug logging; defaults to a discard logger.
// Trace     – event log; when nil Solve creates one and returns it in Result.
// Metrics   – node counters and solve duration; nil disables.
type Options struct {
	MaxNodes  int
	TimeLimit time.Duration
	Simplex   []simplex.Option
	Logger    *slog.Logger
	Trace     *trace.Log
	Metrics   *metrics.Metrics
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns the search defaults.
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

// WithSimplexOptions appends options for the per-node LP engines.
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

// WithTrace records search events into l.
func WithTrace(l *trace.Log) Option {
	return func(o *Options) { o.Trace = l }
}

// WithMetrics counts nodes and observes solve time into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
