// Package nlco is the nonlinear constrained optimiser core: an
// Augmented-Lagrangian outer loop around a damped-BFGS inner loop, plus
// the square dense-matrix kernels the inverse-Hessian update needs.
//
// The inverse-Hessian storage and mat-vec products use a small private
// dense-matrix type with fail-fast kernels; outer- and inner-loop state
// lives in explicit engine structs rather than closures, which keeps
// the hot-path state predictable and each loop independently testable.
//
// Minimize is the sole public entry point; everything else is assembled
// by package optimize, which builds fn.Tagged objective/constraint lists
// from the tree model and calls into a Problem.
package nlco
