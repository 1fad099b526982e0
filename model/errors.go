package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidModel is matched by every InputError.
	ErrInvalidModel = errors.New("model: invalid model")

	// ErrEmptyObjective indicates a model with no decision variables.
	ErrEmptyObjective = errors.New("model: objective has no coefficients")

	// ErrMissingRHS indicates fewer right-hand sides than constraint rows.
	ErrMissingRHS = errors.New("model: constraint row has no right-hand side")

	// ErrDimensionMismatch indicates a row, RHS vector or integrality mask
	// whose length does not fit the number of variables or rows.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")

	// ErrNonFinite indicates a NaN or ±Inf coefficient.
	ErrNonFinite = errors.New("model: NaN or Inf coefficient")

	// ErrInvalidSense indicates an objective direction other than Maximize/Minimize.
	ErrInvalidSense = errors.New("model: unknown objective sense")

	// ErrVariableRange indicates a variable index outside [0, n).
	ErrVariableRange = errors.New("model: variable index out of range")
)

// InputError reports a malformed model. Field names the offending part
// ("objective", "rows", "rhs", "integral", "sense"); Index is the row or
// variable index, or -1 when the error concerns the whole field.
type InputError struct {
	Field string
	Index int
	Err   error
}

// Error implements error.
func (e *InputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d]: %v", e.Field, e.Index, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap exposes the specific sentinel.
func (e *InputError) Unwrap() error { return e.Err }

// Is makes every InputError match ErrInvalidModel.
func (e *InputError) Is(target error) bool { return target == ErrInvalidModel }

func inputErr(field string, index int, err error) *InputError {
	return &InputError{Field: field, Index: index, Err: err}
}
