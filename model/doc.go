// Package model defines LinearModel, the value object every solver in the
// module consumes.
//
// A LinearModel describes
//
//	max (or min)  c·x
//	subject to    A·x ≤ b,  x ≥ 0
//
// with an optional per-variable integrality mask. All constraints are stored
// in ≤ form: AddGe normalizes a ≥ row by negating both sides, and bounds on a
// single variable are ordinary rows (AddBound). Rows are only ever appended,
// never removed; branch-and-bound and the cutting-plane loop rely on that to
// keep row indices stable while they grow a cloned model.
//
// Validate fails fast with an *InputError. Every InputError also matches
// ErrInvalidModel, so callers that only care about "the model is malformed"
// can test a single sentinel:
//
//	if errors.Is(err, model.ErrInvalidModel) { ... }
//
// while errors.As exposes the offending field and row.
package model
