package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlp/branchbound"
	"github.com/katalvlaran/lvlp/config"
	"github.com/katalvlaran/lvlp/cutplane"
	"github.com/katalvlaran/lvlp/knapsack"
	"github.com/katalvlaran/lvlp/simplex"
)

func write(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestLoad_YAMLWithDefaults(t *testing.T) {
	doc := map[string]any{
		"method": "branch-and-bound",
		"branch_bound": map[string]any{
			"max_nodes":  500,
			"time_limit": "2s",
		},
		"knapsack": map[string]any{"iterative": true},
		"log":      map[string]any{"level": "debug", "file": "/tmp/lvlp.log"},
		"metrics":  map[string]any{"enabled": true},
	}
	raw, err := yaml.Marshal(doc)
	require.NoError(t, err)

	cfg, err := config.Load(write(t, "lvlp.yaml", raw))
	require.NoError(t, err)

	assert.Equal(t, "branch-and-bound", cfg.Method)
	assert.Equal(t, 500, cfg.BranchBound.MaxNodes)
	assert.Equal(t, 2*time.Second, cfg.BranchBound.TimeLimit)
	assert.True(t, cfg.Knapsack.Iterative)
	assert.Equal(t, knapsack.DefaultMaxNodes, cfg.Knapsack.MaxNodes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "lvlp", cfg.Log.Service)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Tracing.Enabled)

	// untouched sections keep their defaults
	assert.Equal(t, simplex.DefaultMaxIterations, cfg.Simplex.MaxIterations)
	assert.Equal(t, simplex.DefaultRefactorEvery, cfg.Simplex.RefactorEvery)
	assert.Equal(t, cutplane.DefaultMaxCuts, cfg.CutPlane.MaxCuts)
}

func TestLoad_TOML(t *testing.T) {
	path := write(t, "lvlp.toml", []byte("[cut_plane]\nmax_cuts = 7\n\n[simplex]\nrefactor_every = 0\n"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.CutPlane.MaxCuts)
	assert.Equal(t, 0, cfg.Simplex.RefactorEvery)
	assert.Equal(t, "simplex", cfg.Method)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	path := write(t, "bad.yaml", []byte("cut_plane:\n  max_cuts: 0\nmethod: guess\n"))
	_, err = config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := map[string]bool{}
	for _, fe := range verrs {
		fields[fe.Field()] = true
	}
	assert.True(t, fields["MaxCuts"])
	assert.True(t, fields["Method"])
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())

	bad := config.Default()
	bad.Log.Level = "loud"
	assert.ErrorIs(t, bad.Validate(), config.ErrInvalidConfig)
}

func TestOptionsConversion(t *testing.T) {
	cfg := config.Default()
	cfg.Simplex.MaxIterations = 42
	cfg.BranchBound.MaxNodes = 9
	cfg.BranchBound.TimeLimit = time.Minute
	cfg.CutPlane.MaxCuts = 3
	cfg.Knapsack.Iterative = true

	so := simplex.DefaultOptions()
	for _, opt := range cfg.SimplexOptions() {
		opt(&so)
	}
	assert.Equal(t, 42, so.MaxIterations)

	bo := branchbound.DefaultOptions()
	for _, opt := range cfg.BranchBoundOptions() {
		opt(&bo)
	}
	assert.Equal(t, 9, bo.MaxNodes)
	assert.Equal(t, time.Minute, bo.TimeLimit)
	assert.Len(t, bo.Simplex, 2)

	co := cutplane.DefaultOptions()
	for _, opt := range cfg.CutPlaneOptions() {
		opt(&co)
	}
	assert.Equal(t, 3, co.MaxCuts)

	ko := knapsack.DefaultOptions()
	for _, opt := range cfg.KnapsackOptions() {
		opt(&ko)
	}
	assert.True(t, ko.Iterative)
}
