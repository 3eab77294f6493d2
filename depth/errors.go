package depth

import "errors"

// Sentinel errors returned by this package's hook methods.
var (
	// ErrNoRootVertex indicates the tree has no resolvable root node, so
	// neither hop counts nor vertex depths can be established.
	ErrNoRootVertex = errors.New("depth: tree has no root node")

	// ErrVertexDepthUnset indicates at least one vertex was left without
	// a depth assignment -- the signature of two consecutive inactive
	// border paths, whose shared structure no active band's metric
	// reaches.
	ErrVertexDepthUnset = errors.New("depth: vertex left without a depth assignment")
)
