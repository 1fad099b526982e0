// Package tolerance centralizes the numeric thresholds used by every solver
// in the module. Each semantic category has exactly one constant so that a
// "zero" in the ratio test and a "zero" in the cut generator can never drift
// apart silently.
//
// The values are fixed: tolerances are not a tuning surface.
package tolerance

import "math"

const (
	// Zero is the pivot and coefficient threshold: |v| ≤ Zero is treated as 0
	// in ratio tests, entering-column eligibility and eta application.
	Zero = 1e-9

	// Feasibility bounds primal infeasibility: a basic value below
	// −Feasibility triggers the dual fallback.
	Feasibility = 1e-9

	// Improvement is the minimum strict gain for an incumbent update and the
	// pruning margin for bound tests.
	Improvement = 1e-9

	// Integrality is the distance to the nearest integer under which a value
	// counts as integral.
	Integrality = 1e-6

	// Fraction bounds the usable fractional part of a cut source row:
	// f must lie in (Fraction, 1−Fraction).
	Fraction = 1e-8

	// Violation is the margin by which a candidate cut must cut off the
	// current point (lhs > rhs + Violation).
	Violation = 1e-8

	// Duplicate is the per-coefficient distance under which two cut rows are
	// considered identical.
	Duplicate = 1e-8

	// Duality is the allowed gap between primal and dual objectives for
	// strong duality to hold.
	Duality = 1e-6

	// Inverse is the per-entry distance allowed between the eta-file B⁻¹ and
	// a fresh LU inverse of B before the eta file counts as drifted.
	Inverse = 1e-6
)

// IsZero reports whether |v| ≤ Zero.
func IsZero(v float64) bool { return math.Abs(v) <= Zero }

// IsIntegral reports whether v is within Integrality of an integer.
func IsIntegral(v float64) bool { return math.Abs(v-math.Round(v)) <= Integrality }

// Frac returns the fractional part v − ⌊v⌋ in [0, 1). Values within Zero of
// an integer snap to 0 so that 0.9999999999 does not read as "almost 1".
func Frac(v float64) float64 {
	f := v - math.Floor(v)
	if f <= Zero || f >= 1-Zero {
		return 0
	}

	return f
}

// Snap rounds v to the nearest integer when it is within Zero of it.
func Snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) <= Zero {
		return r
	}

	return v
}
