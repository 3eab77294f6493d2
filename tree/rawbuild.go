package tree

import "github.com/katalvlaran/treemaker/geom"

// This file is the exported surface package format builds a Tree's
// top-level nodes/edges against when reconstructing one from a
// persistent-format payload: raw inserts with no per-call cleanup
// pass, followed by one path rebuild and one cleanup pass for the whole
// load, mirroring how every other mutator in mutate.go composes multiple
// low-level steps under a single beginEdit guard.

// BeginRawLoad opens the cleanup guard spanning an entire raw
// reconstruction. Callers must arrange for the returned func to run
// exactly once, after every AddRawNode/AddRawEdge/AddCondition call and
// after FinishRawLoad.
func (t *Tree) BeginRawLoad() func() { return beginEdit(t) }

// AddRawNode inserts a node with no incident edges and no cleanup pass.
// The first node added becomes the provisional root (overridden by
// SetRootNode if the payload names one explicitly).
func (t *Tree) AddRawNode(loc geom.Vec, label string) Handle {
	h := t.nodes.New(Node{Loc: loc, Label: label})
	if !t.RootNode.Valid() {
		t.RootNode = h
	}

	return h
}

// AddRawEdge inserts an edge between two already-added raw nodes.
func (t *Tree) AddRawEdge(n1, n2 Handle, length, strain, stiffness float64) Handle {
	h := t.edges.New(Edge{N1: n1, N2: n2, Length: length, Strain: strain, Stiffness: stiffness})
	t.attachEdge(n1, h)
	t.attachEdge(n2, h)

	return h
}

// SetRootNode overrides the provisional root picked by the first
// AddRawNode call, for payloads that name their root explicitly.
func (t *Tree) SetRootNode(h Handle) {
	if _, ok := t.nodes.Get(h); ok {
		t.RootNode = h
	}
}

// FinishRawLoad rebuilds every top-level path from the raw node/edge
// graph just constructed. Call once, before the BeginRawLoad guard's end
// func runs.
func (t *Tree) FinishRawLoad() { t.rebuildAllPaths() }

// Bootstrap seeds a brand-new, empty Tree with its first two nodes and
// the edge between them, running exactly one cleanup pass. AddNode
// cannot create the very first node (it always requires an existing
// parent to hang off of), so every test and every file-format-less
// caller that needs a tree to grow from starts here, exactly the way
// the persistent-format loader starts from AddRawNode/AddRawEdge/
// FinishRawLoad but collapsed into one call for the common two-node
// case.
func (t *Tree) Bootstrap(edgeLength float64, locA, locB geom.Vec) (root, n2, e1 Handle) {
	end := t.BeginRawLoad()
	root = t.AddRawNode(locA, "")
	n2 = t.AddRawNode(locB, "")
	e1 = t.AddRawEdge(root, n2, edgeLength, 0, 1)
	t.SetRootNode(root)
	t.FinishRawLoad()
	end()

	return root, n2, e1
}
