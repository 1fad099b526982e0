package solver

import (
	"log/slog"

	"github.com/katalvlaran/lvlp/branchbound"
	"github.com/katalvlaran/lvlp/config"
	"github.com/katalvlaran/lvlp/cutplane"
	"github.com/katalvlaran/lvlp/knapsack"
	"github.com/katalvlaran/lvlp/metrics"
	"github.com/katalvlaran/lvlp/simplex"
	"github.com/katalvlaran/lvlp/trace"
)

// Options configures Solve.
//
// Logger  – run boundaries at info level and engine output at debug level;
//
//	nil means a logger built from Config.Log, or a discard logger.
//
// Trace   – event log for the run; nil creates one named after the method.
// Metrics – prometheus collectors shared by every engine; nil disables unless
//
//	Config.Metrics.Enabled, which creates them on a private registry.
//
// Analyze – build a sensitivity analyzer for optimal simplex runs.
// Config  – set by WithConfig; its log, metrics and tracing sections apply
//
//	where the options above leave a gap.
//
// The per-engine slices are appended after the ambient options, so they win.
type Options struct {
	Config      *config.Config
	Logger      *slog.Logger
	Trace       *trace.Log
	Metrics     *metrics.Metrics
	Analyze     bool
	Simplex     []simplex.Option
	BranchBound []branchbound.Option
	CutPlane    []cutplane.Option
	Knapsack    []knapsack.Option
}

// Option represents a functional option for configuring Solve.
type Option func(*Options)

// DefaultOptions returns no logger, trace, metrics or engine overrides;
// Solve falls back to a discard logger.
func DefaultOptions() Options {
	return Options{}
}

// WithLogger routes logging to l, taking precedence over Config.Log. A nil l
// is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTrace records the run into l.
func WithTrace(l *trace.Log) Option {
	return func(o *Options) { o.Trace = l }
}

// WithMetrics records pivots, nodes, cuts and durations into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithSensitivity attaches a sensitivity.Analyzer to optimal simplex reports.
func WithSensitivity() Option {
	return func(o *Options) { o.Analyze = true }
}

// WithSimplexOptions forwards options to every simplex engine of the run.
func WithSimplexOptions(opts ...simplex.Option) Option {
	return func(o *Options) { o.Simplex = append(o.Simplex, opts...) }
}

// WithBranchBoundOptions forwards options to branchbound.Solve.
func WithBranchBoundOptions(opts ...branchbound.Option) Option {
	return func(o *Options) { o.BranchBound = append(o.BranchBound, opts...) }
}

// WithCutPlaneOptions forwards options to cutplane.Solve.
func WithCutPlaneOptions(opts ...cutplane.Option) Option {
	return func(o *Options) { o.CutPlane = append(o.CutPlane, opts...) }
}

// WithKnapsackOptions forwards options to knapsack.Solve.
func WithKnapsackOptions(opts ...knapsack.Option) Option {
	return func(o *Options) { o.Knapsack = append(o.Knapsack, opts...) }
}

// WithConfig applies the limits of every engine section of cfg and keeps cfg
// for its log, metrics and tracing sections.
func WithConfig(cfg *config.Config) Option {
	return func(o *Options) {
		if cfg == nil {
			return
		}
		o.Config = cfg
		o.Simplex = append(o.Simplex, cfg.SimplexOptions()...)
		o.BranchBound = append(o.BranchBound, cfg.BranchBoundOptions()...)
		o.CutPlane = append(o.CutPlane, cfg.CutPlaneOptions()...)
		o.Knapsack = append(o.Knapsack, cfg.KnapsackOptions()...)
	}
}
