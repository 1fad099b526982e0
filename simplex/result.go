package simplex

// Status is the outcome of Optimize.
type Status int

const (
	// StatusUnsolved means Optimize has not run since the last change.
	StatusUnsolved Status = iota
	// StatusOptimal means no improving column exists and the basis is feasible.
	StatusOptimal
	// StatusInfeasible means the constraint set is empty.
	StatusInfeasible
	// StatusUnbounded means the objective improves without limit.
	StatusUnbounded
	// StatusIterationLimit means the pivot budget ran out.
	StatusIterationLimit
	// StatusCanceled means the context was done before termination.
	StatusCanceled
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
	case StatusIterationLimit:
		return "iteration limit"
	case StatusCanceled:
		return "canceled"
	default:
		return "unsolved"
	}
}

// Result is a snapshot of an Optimize call.
//
// X, ShadowPrices and ReducedCosts are populated only for StatusOptimal.
// X holds n structural values followed by m slack values. Objective and
// ShadowPrices are in the model's direction, so Σ b_i·ShadowPrices_i equals
// Objective at optimum. ReducedCosts are the price-out values
// d_j = y·A_j − c_j of the internal maximization: zero for basic columns and
// non-negative for every column at optimum.
type Result struct {
	Status       Status
	X            []float64
	Objective    float64
	Basis        []int
	ShadowPrices []float64
	ReducedCosts []float64
	Iterations   int
}

// Structural returns the first n entries of X.
func (r Result) Structural(n int) []float64 {
	if len(r.X) < n {
		return nil
	}

	return append([]float64(nil), r.X[:n]...)
}
