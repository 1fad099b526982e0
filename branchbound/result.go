package branchbound

import (
	"strings"

	"github.com/katalvlaran/lvlp/trace"
)

// Status is the outcome of a search.
type Status int

const (
	// StatusOptimal means the tree was exhausted and an incumbent exists.
	StatusOptimal Status = iota
	// StatusInfeasible means the tree was exhausted without an integer point.
	StatusInfeasible
	// StatusUnbounded means the root relaxation is unbounded.
	StatusUnbounded
	// StatusNodeLimit means MaxNodes relaxations were solved.
	StatusNodeLimit
	// StatusTimeLimit means the wall-clock budget ran out.
	StatusTimeLimit
	// StatusCanceled means the context was done.
	StatusCanceled
	// StatusIterationLimit means the tree was exhausted but at least one
	// relaxation stopped on its simplex budget, so the result is unproven.
	StatusIterationLimit
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusNodeLimit:
		return "node limit"
	case StatusTimeLimit:
		return "time limit"
	case StatusCanceled:
		return "canceled"
	case StatusIterationLimit:
		return "iteration limit"
	default:
		return "unknown"
	}
}

// Candidate is an integer-feasible relaxation found during the search.
// Integral-flagged entries of X are rounded.
type Candidate struct {
	Name      string
	Node      string
	X         []float64
	Objective float64
}

// Result summarizes a search.
//
// X and Objective describe the incumbent and are meaningful only when
// HasIncumbent is true; a limit status may still carry one. Candidates are
// ranked best first (stable, so equal objectives keep discovery order).
// Incumbents lists every incumbent objective in the order it was accepted.
type Result struct {
	Status       Status
	X            []float64
	Objective    float64
	HasIncumbent bool
	Candidates   []Candidate
	Incumbents   []float64
	Nodes        int
	Trace        *trace.Log
}

// candidateName maps 0, 1, ..., 25, 26 to A, B, ..., Z, AA.
func candidateName(i int) string {
	var sb strings.Builder
	var buf []byte
	for i++; i > 0; i = (i - 1) / 26 {
		buf = append(buf, byte('A'+(i-1)%26))
	}
	for k := len(buf) - 1; k >= 0; k-- {
		sb.WriteByte(buf[k])
	}

	return sb.String()
}
