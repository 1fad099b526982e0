// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernels used around the
// simplex engine.
//
// The simplex engine itself never stores an explicit basis inverse: it keeps
// a product-form eta file. This package is what the rest of the module uses
// when an explicit matrix is required:
//
//   - Dense: row-major float64 storage with bounds-checked At/Set.
//   - Mul, MatVec, Transpose: deterministic fixed-order kernels.
//   - Factorize / Inverse: LU with partial pivoting, used to cross-check the
//     eta file and to materialize B⁻¹ for post-optimal analysis.
//
// All kernels validate shapes up front and return sentinel errors wrapped
// with the operation tag ("Mul: matrix: dimension mismatch"); callers match
// them with errors.Is. Inputs are never mutated.
package matrix
