// Package knapsack solves the 0/1 knapsack problem exactly by depth-first
// branch-and-bound with a fractional-relaxation bound.
//
// A knapsack is read from a single-row maximization model (values =
// objective, weights = row, capacity = rhs) or built directly with
// NewProblem. Items are searched in value/weight ratio order, the greedy fill
// of that order seeds the incumbent, and Bound (the LP relaxation of the
// remaining items) prunes subtrees that cannot improve on it.
//
// The search is recursive by default; WithIterative runs the same search on
// an explicit stack, visiting identical nodes in identical order, for
// instances deep enough to matter.
package knapsack
