package cutplane

import (
	"github.com/katalvlaran/lvlp/model"
	"github.com/katalvlaran/lvlp/trace"
)

// Status is the outcome of a run.
type Status int

const (
	// StatusIntegral means every integral-flagged variable is integral.
	StatusIntegral Status = iota
	// StatusCutLimit means MaxCuts cuts were accepted without reaching an
	// integral point.
	StatusCutLimit
	// StatusNoCut means the point is fractional but no valid cut was found.
	StatusNoCut
	// StatusInfeasible means the relaxation (possibly after cuts) is empty.
	StatusInfeasible
	// StatusUnbounded means the relaxation is unbounded.
	StatusUnbounded
	// StatusIterationLimit means the LP engine ran out of pivots.
	StatusIterationLimit
	// StatusCanceled means the context was done.
	StatusCanceled
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusIntegral:
		return "integral"
	case StatusCutLimit:
		return "cut limit"
	case StatusNoCut:
		return "no cut"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusIterationLimit:
		return "iteration limit"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Kind names the cut family.
type Kind int

const (
	KindGomory Kind = iota
	KindCover
)

// String returns "gomory" or "cover".
func (k Kind) String() string {
	if k == KindCover {
		return "cover"
	}

	return "gomory"
}

// Cut is an accepted cut Coeffs·x ≤ RHS.
//
// For Gomory cuts SourceRow is the basis row, Alpha the fractional parts of
// that row of B⁻¹ (one per constraint row at the time of the cut) and F the
// fractional part of the basic value. For cover cuts SourceRow is the
// constraint row and Alpha is nil.
type Cut struct {
	Seq       int
	Kind      Kind
	SourceRow int
	Alpha     []float64
	F         float64
	Coeffs    []float64
	RHS       float64
}

// Result summarizes a run.
//
// X and Objective describe the last optimal relaxation (nil / NaN when the
// last LP was not optimal). Model is the input model with every accepted cut
// appended.
type Result struct {
	Status     Status
	X          []float64
	Objective  float64
	Cuts       []Cut
	Model      *model.LinearModel
	Iterations int
	Trace      *trace.Log
}
