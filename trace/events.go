package trace

import (
	"strconv"
)

// Kind tags an Event.
type Kind int

const (
	KindPivot Kind = iota
	KindRefactor
	KindRelaxation
	KindBranch
	KindPrune
	KindCandidate
	KindIncumbent
	KindCutAdded
	KindCutRejected
	KindStop
)

var kindNames = [...]string{
	KindPivot:       "pivot",
	KindRefactor:    "refactor",
	KindRelaxation:  "relaxation",
	KindBranch:      "branch",
	KindPrune:       "prune",
	KindCandidate:   "candidate",
	KindIncumbent:   "incumbent",
	KindCutAdded:    "cut_added",
	KindCutRejected: "cut_rejected",
	KindStop:        "stop",
}

// String returns the snake_case name used in logs.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Event is one step of a solver run.
type Event interface {
	Kind() Kind
}

// Var names a simplex column: structural columns are x1..xn, slack columns
// s1..sm.
type Var struct {
	Index int // column index in 0..n+m−1
	N     int // number of structural columns
}

// String renders "x3" or "s1".
func (v Var) String() string {
	if v.Index < v.N {
		return "x" + strconv.Itoa(v.Index+1)
	}

	return "s" + strconv.Itoa(v.Index-v.N+1)
}

// PivotKind distinguishes the three pivot rules of the simplex engine.
type PivotKind int

const (
	// PivotPrimal is an ordinary improving pivot.
	PivotPrimal PivotKind = iota
	// PivotDual restores primal feasibility from a dual-feasible basis.
	PivotDual
	// PivotPhaseOne reduces total infeasibility from a basis that is
	// neither primal nor dual feasible.
	PivotPhaseOne
)

// String returns "primal", "dual" or "phase1".
func (k PivotKind) String() string {
	switch k {
	case PivotDual:
		return "dual"
	case PivotPhaseOne:
		return "phase1"
	default:
		return "primal"
	}
}

// Pivot records one basis change.
type Pivot struct {
	Rule      PivotKind
	Iteration int
	Entering  Var
	Leaving   Var
	Row       int
	Ratio     float64
}

// Refactor records an eta-file reinversion.
type Refactor struct {
	Iteration int
	EtasIn    int // eta count before reinversion
	EtasOut   int // eta count after reinversion
}

// Relaxation records the LP solve at a search node.
type Relaxation struct {
	Node       string
	Status     string
	Objective  float64
	X          []float64
	Iterations int
}

// Branch records the split of a node on a fractional variable.
type Branch struct {
	Node  string
	Var   int // 0-based structural index
	Value float64
	Floor float64
	Ceil  float64
	Left  string // x ≤ floor child
	Right string // x ≥ ceil child
}

// PruneReason explains a discarded node.
type PruneReason int

const (
	PruneInfeasible PruneReason = iota
	PruneUnbounded
	PruneBound
	PruneLimit
	PruneCapacity
)

// String returns the lower-case reason.
func (r PruneReason) String() string {
	switch r {
	case PruneInfeasible:
		return "infeasible"
	case PruneUnbounded:
		return "unbounded"
	case PruneBound:
		return "bound"
	case PruneLimit:
		return "iteration limit"
	case PruneCapacity:
		return "capacity"
	default:
		return "reason(" + strconv.Itoa(int(r)) + ")"
	}
}

// Prune records a discarded node. Bound and Incumbent are NaN when they do
// not apply.
type Prune struct {
	Node      string
	Reason    PruneReason
	Bound     float64
	Incumbent float64
}

// Candidate records an integer-feasible node.
type Candidate struct {
	Name      string
	Node      string
	Objective float64
	X         []float64
}

// IncumbentUpdated records a strictly better solution.
type IncumbentUpdated struct {
	Source    string // node label, candidate name or "greedy"
	Objective float64
	Previous  float64
	X         []float64
}

// CutAdded records an accepted cut in both slack and x space.
type CutAdded struct {
	Seq       int
	CutKind   string // "gomory" or "cover"
	SourceRow int    // basis row for gomory, constraint row for cover; −1 if n/a
	Alpha     []float64
	F         float64
	Coeffs    []float64
	RHS       float64
}

// CutRejected records a candidate cut that failed a gate.
type CutRejected struct {
	CutKind string
	Reason  string
}

// Stop records why a run ended.
type Stop struct {
	Reason string
}

func (Pivot) Kind() Kind            { return KindPivot }
func (Refactor) Kind() Kind         { return KindRefactor }
func (Relaxation) Kind() Kind       { return KindRelaxation }
func (Branch) Kind() Kind           { return KindBranch }
func (Prune) Kind() Kind            { return KindPrune }
func (Candidate) Kind() Kind        { return KindCandidate }
func (IncumbentUpdated) Kind() Kind { return KindIncumbent }
func (CutAdded) Kind() Kind         { return KindCutAdded }
func (CutRejected) Kind() Kind      { return KindCutRejected }
func (Stop) Kind() Kind             { return KindStop }
