package crease

import "errors"

// Sentinel errors returned by BuildCreases.
var (
	// ErrMissingContents indicates BuildCreases was invoked on a poly
	// that has no inset sub-structure yet -- package polygon must run
	// first, per the cleanup pipeline's step-15 ordering.
	ErrMissingContents = errors.New("crease: poly has no inset contents")

	// ErrNonPlanar indicates two creases built for the same poly cross
	// in their interiors, violating the planarity precondition for
	// BuildFacetsFromCreases.
	ErrNonPlanar = errors.New("crease: crease set is not planar")
)
