// Package sensitivity answers post-optimal questions about an optimal
// simplex basis: how far a cost, a right-hand side or a coefficient may move
// before the basis changes, whether a new variable or constraint would alter
// the solution, and whether strong duality holds.
//
// An Analyzer is built from an engine in StatusOptimal and works on a private
// clone, so the caller may keep using the engine. Ranges are reported as a
// Range of allowed changes around the current value. What-if methods answer
// analytically inside the range and re-solve outside it.
package sensitivity
