// Package geom provides the two-dimensional vector primitives, convexity
// predicates, and intersection/projection routines shared by every other
// treemaker package: the polygon network, the crease builder, and the
// differentiable function library all sit on top of these few dozen
// functions instead of duplicating vector arithmetic.
//
// Design goals:
//   - Determinism: no floating-point shortcuts that depend on evaluation
//     order; every predicate documents its tolerance.
//   - Zero surprises: tolerances are named constants with accessor
//     functions (DistTol, MoveTol, ConvexityTol, VertexSameTol), never
//     inlined magic numbers, so a single place controls them.
//   - Pure functions: nothing in this package allocates beyond its
//     return value or mutates its arguments.
package geom
