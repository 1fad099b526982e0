// Package branchbound solves mixed-integer linear programs by depth-first
// branch-and-bound over LP relaxations.
//
// Each node is a copy of the root model plus the bound rows added along its
// path. Its relaxation is solved by a fresh simplex.Engine; the engine repairs
// the primal-infeasible starting basis that ≥ bound rows produce, so no phase
// bookkeeping leaks into the search.
//
// Policy:
//   - prune a node whose relaxation is infeasible, unbounded or stopped on a
//     budget;
//   - prune a node whose relaxation cannot beat the incumbent by more than
//     tolerance.Improvement;
//   - record a candidate when every integral-flagged variable is within
//     tolerance.Integrality of an integer;
//   - otherwise branch on the flagged variable whose fractional part is
//     closest to 0.5 (lowest index on ties).
//
// Nodes are labeled T-1, T-2, ... in creation order and candidates A, B, ...
// in discovery order. Every decision is emitted to a trace.Log.
package branchbound
