package optimize

import "errors"

// Sentinel errors returned by the optimiser façades. Callers branch with
// errors.Is, per the tree package's own error-handling convention.
var (
	// ErrBadOffset indicates a part was asked for its index into a
	// façade's variable vector but is not one of that façade's
	// variables (e.g. a non-leaf node's coordinates under
	// ScaleOptimizer, or a pinned edge's strain under StrainOptimizer).
	ErrBadOffset = errors.New("optimize: part is not an optimisation variable")

	// ErrBadScale indicates ScaleOptimizer.Optimize converged to a
	// non-positive or otherwise infeasible scale.
	ErrBadScale = errors.New("optimize: scale optimisation produced an infeasible scale")

	// ErrNotInitialised indicates Optimize was called before Initialise.
	ErrNotInitialised = errors.New("optimize: facade not initialised")
)
