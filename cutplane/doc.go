// Package cutplane solves pure and mixed integer programs by adding valid
// inequalities to the LP relaxation until its optimum is integral.
//
// A single simplex.Engine lives for the whole run. Every accepted cut is
// appended with AddRowAndWarmStart, so re-optimization continues from the
// previous basis; the cut makes that basis primal infeasible and a handful of
// dual pivots restore optimality.
//
// Two cut families are used:
//
//   - Gomory fractional cuts from the basis row whose basic integral variable
//     is most fractional. Coefficients are expressed in x space and are
//     integral for integral data, so cut slacks can source later cuts.
//   - Knapsack cover cuts on binary variables, tried only when the Gomory cut
//     fails its violation or duplicate gate.
//
// Every cut must cut off the current point by more than tolerance.Violation
// and must differ from every earlier cut by more than tolerance.Duplicate.
package cutplane
