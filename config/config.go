// Package config loads solver limits and ambient settings from a YAML, TOML
// or JSON file and turns them into engine options.
//
// Tolerances are deliberately absent: they are fixed in package tolerance.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvlp/branchbound"
	"github.com/katalvlaran/lvlp/cutplane"
	"github.com/katalvlaran/lvlp/knapsack"
	"github.com/katalvlaran/lvlp/logging"
	"github.com/katalvlaran/lvlp/simplex"
)

// ErrInvalidConfig wraps every load or validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the top-level configuration.
type Config struct {
	Method      string            `mapstructure:"method" validate:"omitempty,oneof=simplex branch-and-bound cutting-plane knapsack"`
	Simplex     SimplexConfig     `mapstructure:"simplex"`
	BranchBound BranchBoundConfig `mapstructure:"branch_bound"`
	CutPlane    CutPlaneConfig    `mapstructure:"cut_plane"`
	Knapsack    KnapsackConfig    `mapstructure:"knapsack"`
	Log         logging.Config    `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
}

// SimplexConfig bounds each LP solve.
type SimplexConfig struct {
	MaxIterations int `mapstructure:"max_iterations" validate:"min=1"`
	RefactorEvery int `mapstructure:"refactor_every" validate:"min=0"`
}

// BranchBoundConfig bounds the branch-and-bound search.
type BranchBoundConfig struct {
	MaxNodes  int           `mapstructure:"max_nodes"  validate:"min=1"`
	TimeLimit time.Duration `mapstructure:"time_limit" validate:"min=0"`
}

// CutPlaneConfig bounds the cutting-plane loop.
type CutPlaneConfig struct {
	MaxCuts int `mapstructure:"max_cuts" validate:"min=1"`
}

// KnapsackConfig bounds the knapsack search.
type KnapsackConfig struct {
	MaxNodes  int           `mapstructure:"max_nodes"  validate:"min=1"`
	TimeLimit time.Duration `mapstructure:"time_limit" validate:"min=0"`
	Iterative bool          `mapstructure:"iterative"`
}

// MetricsConfig switches Prometheus collection on a private registry.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TracingConfig switches OpenTelemetry spans; they are on by default.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Method: "simplex",
		Simplex: SimplexConfig{
			MaxIterations: simplex.DefaultMaxIterations,
			RefactorEvery: simplex.DefaultRefactorEvery,
		},
		BranchBound: BranchBoundConfig{MaxNodes: branchbound.DefaultMaxNodes},
		CutPlane:    CutPlaneConfig{MaxCuts: cutplane.DefaultMaxCuts},
		Knapsack:    KnapsackConfig{MaxNodes: knapsack.DefaultMaxNodes},
		Log:         logging.Config{Service: "lvlp", Level: "info"},
		Tracing:     TracingConfig{Enabled: true},
	}
}

// setDefaults mirrors Default into v so that absent keys keep their
// built-in values.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("method", d.Method)
	v.SetDefault("simplex.max_iterations", d.Simplex.MaxIterations)
	v.SetDefault("simplex.refactor_every", d.Simplex.RefactorEvery)
	v.SetDefault("branch_bound.max_nodes", d.BranchBound.MaxNodes)
	v.SetDefault("branch_bound.time_limit", d.BranchBound.TimeLimit)
	v.SetDefault("cut_plane.max_cuts", d.CutPlane.MaxCuts)
	v.SetDefault("knapsack.max_nodes", d.Knapsack.MaxNodes)
	v.SetDefault("knapsack.time_limit", d.Knapsack.TimeLimit)
	v.SetDefault("log.service", d.Log.Service)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
}

// Load reads path (format chosen by extension), applies defaults for missing
// keys and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// SimplexOptions converts the simplex section.
func (c *Config) SimplexOptions() []simplex.Option {
	return []simplex.Option{
		simplex.WithMaxIterations(c.Simplex.MaxIterations),
		simplex.WithRefactorEvery(c.Simplex.RefactorEvery),
	}
}

// BranchBoundOptions converts the branch_bound section, including the
// per-node simplex limits.
func (c *Config) BranchBoundOptions() []branchbound.Option {
	return []branchbound.Option{
		branchbound.WithMaxNodes(c.BranchBound.MaxNodes),
		branchbound.WithTimeLimit(c.BranchBound.TimeLimit),
		branchbound.WithSimplexOptions(c.SimplexOptions()...),
	}
}

// CutPlaneOptions converts the cut_plane section, including the simplex
// limits.
func (c *Config) CutPlaneOptions() []cutplane.Option {
	return []cutplane.Option{
		cutplane.WithMaxCuts(c.CutPlane.MaxCuts),
		cutplane.WithSimplexOptions(c.SimplexOptions()...),
	}
}

// KnapsackOptions converts the knapsack section.
func (c *Config) KnapsackOptions() []knapsack.Option {
	opts := []knapsack.Option{
		knapsack.WithMaxNodes(c.Knapsack.MaxNodes),
		knapsack.WithTimeLimit(c.Knapsack.TimeLimit),
	}
	if c.Knapsack.Iterative {
		opts = append(opts, knapsack.WithIterative())
	}

	return opts
}
