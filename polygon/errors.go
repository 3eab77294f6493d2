package polygon

import "errors"

// Sentinel errors returned by BuildPolyContents.
var (
	// ErrTooFewRingNodes indicates a poly's ring has fewer than 3 nodes
	// -- not a valid polygon, and never expected to reach this package
	// given cleanup step 11 deletes such polys before contents are
	// built.
	ErrTooFewRingNodes = errors.New("polygon: ring has fewer than 3 nodes")

	// ErrDegenerateInset indicates every candidate inset height for an
	// n>=4 ring was non-positive: the ring is too thin or too close to
	// collinear to inset. Cleanup treats this as "contents not filled"
	// and aborts the pipeline at step 15, same as any other
	// BuildPolyContents failure.
	ErrDegenerateInset = errors.New("polygon: no positive inset height found")
)
