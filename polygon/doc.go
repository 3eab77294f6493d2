// Package polygon builds a poly's inset sub-structure. Given a
// Poly whose ring is a CCW cycle of nodes and paths, BuildPolyContents
// computes the inset node(s) one insetting step produces and the
// spoke/ridge sub-paths connecting the ring to them. When exactly one
// or two distinct inset nodes survive the step, the poly's contents are
// complete (apex or ridge). When three or more survive, an inset
// sub-path is built between every pair of distinct inset nodes
// (ring-adjacent pairs become the nested ring, the rest cross paths)
// and the construction recurses into the nested Poly they bound, until
// every branch of the molecule terminates in an apex or a ridge.
//
// One file per structurally distinct inset case: triangle.go (n=3,
// incenter placement) and ngon.go (n>=4, bisector and quadratic-height
// solve, recursive ring rebuild).
package polygon
