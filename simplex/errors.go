package simplex

import "errors"

var (
	// ErrBadMaxIterations indicates a non-positive iteration budget.
	ErrBadMaxIterations = errors.New("simplex: MaxIterations must be > 0")

	// ErrBadRefactorEvery indicates a negative reinversion threshold.
	ErrBadRefactorEvery = errors.New("simplex: RefactorEvery must be ≥ 0")

	// ErrRowLength indicates a warm-start row shorter than the variable count.
	ErrRowLength = errors.New("simplex: row shorter than variable count")

	// ErrNonFinite indicates a NaN or ±Inf warm-start coefficient.
	ErrNonFinite = errors.New("simplex: NaN or Inf coefficient")

	// ErrNoRows indicates a basis query on a model without constraints.
	ErrNoRows = errors.New("simplex: model has no constraint rows")

	// ErrIndexRange indicates a row or column index outside the engine's shape.
	ErrIndexRange = errors.New("simplex: index out of range")

	// ErrSingularBasis indicates reinversion met a basis column with no
	// usable pivot; the previous eta file is kept.
	ErrSingularBasis = errors.New("simplex: basis is numerically singular")
)
