package tree

import "errors"

// Sentinel errors returned by tree operations. Callers branch with
// errors.Is.
var (
	ErrNilNode      = errors.New("tree: nil node")
	ErrNodeNotFound = errors.New("tree: node not found")
	ErrEdgeNotFound = errors.New("tree: edge not found")
	ErrPathNotFound = errors.New("tree: path not found")
	ErrPolyNotFound = errors.New("tree: poly not found")

	// ErrBadSplitEdge indicates split_edge was asked to split at l == 0
	// or l == the edge's strained length.
	ErrBadSplitEdge = errors.New("tree: split position must be strictly interior to the edge")

	// ErrBadAbsorbNode indicates AbsorbNode was called on a node that is
	// not redundant (its degree is not exactly 2).
	ErrBadAbsorbNode = errors.New("tree: only a degree-2 node can be absorbed")

	// ErrBadRemoveStub indicates RemoveStub was called on an edge neither
	// of whose endpoints is a leaf.
	ErrBadRemoveStub = errors.New("tree: edge is not a stub")

	// ErrBadKillParts indicates KillSomeNodesAndEdges was handed a handle
	// that does not resolve to a live part.
	ErrBadKillParts = errors.New("tree: kill list references a part that does not exist")

	// ErrReentrantCleanup indicates CleanupAfterEdit was invoked while
	// already running; this is forbidden and indicates an internal
	// mutator called another mutator without going through beginEdit.
	ErrReentrantCleanup = errors.New("tree: reentrant cleanup")
)
