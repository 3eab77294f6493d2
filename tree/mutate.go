package tree

import "github.com/katalvlaran/treemaker/geom"

// AddNode adds a new leaf node at loc, connected to parent by a new edge
// of the given rest length and default stiffness 1. Returns the new
// node's and edge's handles.
func (t *Tree) AddNode(parent Handle, length float64, loc geom.Vec) (Handle, Handle, error) {
	defer beginEdit(t)()

	if _, ok := t.nodes.Get(parent); !ok {
		return Handle{}, Handle{}, ErrNodeNotFound
	}

	nh := t.nodes.New(Node{Loc: loc})
	eh := t.edges.New(Edge{N1: parent, N2: nh, Length: length, Stiffness: 1})

	t.attachEdge(parent, eh)
	t.attachEdge(nh, eh)

	if !t.RootNode.Valid() {
		t.RootNode = parent
	}

	t.rebuildAllPaths()

	return nh, eh, nil
}

func (t *Tree) attachEdge(nh, eh Handle) {
	n, ok := t.nodes.Get(nh)
	if !ok {
		return
	}
	n.Edges = append(n.Edges, eh)
}

func (t *Tree) detachEdge(nh, eh Handle) {
	n, ok := t.nodes.Get(nh)
	if !ok {
		return
	}
	for i, e := range n.Edges {
		if e == eh {
			n.Edges = append(n.Edges[:i], n.Edges[i+1:]...)

			return
		}
	}
}

// SplitEdge splits edge e at tree-unit length l from its N1 endpoint,
// inserting a new degree-2 node. l must be strictly interior to the
// edge's strained length, else ErrBadSplitEdge.
func (t *Tree) SplitEdge(e Handle, l float64) (Handle, Handle, error) {
	defer beginEdit(t)()

	edge, ok := t.edges.Get(e)
	if !ok {
		return Handle{}, Handle{}, ErrEdgeNotFound
	}
	strained := edge.StrainedLength()
	if l <= 0 || l >= strained {
		return Handle{}, Handle{}, ErrBadSplitEdge
	}

	n1, ok1 := t.nodes.Get(edge.N1)
	n2, ok2 := t.nodes.Get(edge.N2)
	if !ok1 || !ok2 {
		return Handle{}, Handle{}, ErrNodeNotFound
	}

	frac := l / strained
	mid := geom.Lerp(n1.Loc, n2.Loc, frac)
	midH := t.nodes.New(Node{Loc: mid})

	restLen1 := edge.Length * frac
	restLen2 := edge.Length - restLen1
	strain := edge.Strain
	stiffness := edge.Stiffness
	n2Handle := edge.N2

	t.detachEdge(edge.N2, e)
	edge.N2 = midH
	edge.Length = restLen1

	newEdge := t.edges.New(Edge{N1: midH, N2: n2Handle, Length: restLen2, Strain: strain, Stiffness: stiffness})
	t.attachEdge(midH, e)
	t.attachEdge(midH, newEdge)
	t.attachEdge(n2Handle, newEdge)

	t.rebuildAllPaths()

	return midH, newEdge, nil
}

// AbsorbNode removes a degree-2 node, merging its two incident edges
// into one whose length is their sum and whose strain/stiffness come
// from the first edge encountered at that node.
func (t *Tree) AbsorbNode(n Handle) error {
	defer beginEdit(t)()

	node, ok := t.nodes.Get(n)
	if !ok {
		return ErrNodeNotFound
	}
	if len(node.Edges) != 2 {
		return ErrBadAbsorbNode
	}

	e1h, e2h := node.Edges[0], node.Edges[1]
	e1, ok1 := t.edges.Get(e1h)
	e2, ok2 := t.edges.Get(e2h)
	if !ok1 || !ok2 {
		return ErrEdgeNotFound
	}

	far1 := other(e1, n)
	far2 := other(e2, n)

	e1.Length += e2.Length
	if far1 == e1.N1 {
		e1.N2 = far2
	} else {
		e1.N1 = far2
	}

	t.detachEdge(far2, e2h)
	t.attachEdge(far2, e1h)
	t.edges.Delete(e2h)
	t.nodes.Delete(n)

	t.rebuildAllPaths()

	return nil
}

func other(e *Edge, n Handle) Handle {
	if e.N1 == n {
		return e.N2
	}

	return e.N1
}

// AbsorbEdge removes edge e, merging its two endpoint nodes into one
// (n1 survives at its own location; n2's other incident edges are
// reattached to n1).
func (t *Tree) AbsorbEdge(e Handle) error {
	defer beginEdit(t)()

	edge, ok := t.edges.Get(e)
	if !ok {
		return ErrEdgeNotFound
	}
	n1, n2 := edge.N1, edge.N2
	n2Node, ok := t.nodes.Get(n2)
	if !ok {
		return ErrNodeNotFound
	}

	for _, eh := range n2Node.Edges {
		if eh == e {
			continue
		}
		if oe, ok := t.edges.Get(eh); ok {
			if oe.N1 == n2 {
				oe.N1 = n1
			}
			if oe.N2 == n2 {
				oe.N2 = n1
			}
			t.attachEdge(n1, eh)
		}
	}

	t.detachEdge(n1, e)
	t.edges.Delete(e)
	t.nodes.Delete(n2)

	t.rebuildAllPaths()

	return nil
}

// AddStub splits edge e at tree-unit offset l, then grows a new leaf of
// the given rest length off the resulting split node toward loc.
func (t *Tree) AddStub(e Handle, l, stubLength float64, loc geom.Vec) (Handle, Handle, error) {
	defer beginEdit(t)()

	splitNode, _, err := t.splitEdgeNoCleanup(e, l)
	if err != nil {
		return Handle{}, Handle{}, err
	}

	leaf := t.nodes.New(Node{Loc: loc})
	stubEdge := t.edges.New(Edge{N1: splitNode, N2: leaf, Length: stubLength, Stiffness: 1})
	t.attachEdge(splitNode, stubEdge)
	t.attachEdge(leaf, stubEdge)

	t.rebuildAllPaths()

	return leaf, stubEdge, nil
}

// splitEdgeNoCleanup is SplitEdge's body without the outer beginEdit or
// the final rebuildAllPaths, so AddStub/RemoveStub can compose a split
// and a second edit into one cleanup pass.
func (t *Tree) splitEdgeNoCleanup(e Handle, l float64) (Handle, Handle, error) {
	edge, ok := t.edges.Get(e)
	if !ok {
		return Handle{}, Handle{}, ErrEdgeNotFound
	}
	strained := edge.StrainedLength()
	if l <= 0 || l >= strained {
		return Handle{}, Handle{}, ErrBadSplitEdge
	}
	n1, ok1 := t.nodes.Get(edge.N1)
	n2, ok2 := t.nodes.Get(edge.N2)
	if !ok1 || !ok2 {
		return Handle{}, Handle{}, ErrNodeNotFound
	}
	frac := l / strained
	mid := geom.Lerp(n1.Loc, n2.Loc, frac)
	midH := t.nodes.New(Node{Loc: mid})

	restLen1 := edge.Length * frac
	restLen2 := edge.Length - restLen1
	strain := edge.Strain
	stiffness := edge.Stiffness
	n2Handle := edge.N2

	t.detachEdge(edge.N2, e)
	edge.N2 = midH
	edge.Length = restLen1

	newEdge := t.edges.New(Edge{N1: midH, N2: n2Handle, Length: restLen2, Strain: strain, Stiffness: stiffness})
	t.attachEdge(midH, e)
	t.attachEdge(midH, newEdge)
	t.attachEdge(n2Handle, newEdge)

	return midH, newEdge, nil
}

// RemoveStub removes the leaf node at the far end of stubEdge and its
// degree-2 parent node, reabsorbing the parent's two remaining edges
// into one (undoing a prior AddStub).
func (t *Tree) RemoveStub(stubEdge Handle) error {
	defer beginEdit(t)()

	edge, ok := t.edges.Get(stubEdge)
	if !ok {
		return ErrEdgeNotFound
	}

	n1, ok1 := t.nodes.Get(edge.N1)
	n2, ok2 := t.nodes.Get(edge.N2)
	if !ok1 || !ok2 {
		return ErrNodeNotFound
	}

	var parent, leaf Handle
	switch {
	case len(n1.Edges) == 1:
		leaf, parent = edge.N1, edge.N2
	case len(n2.Edges) == 1:
		leaf, parent = edge.N2, edge.N1
	default:
		return ErrBadRemoveStub
	}

	t.detachEdge(parent, stubEdge)
	t.edges.Delete(stubEdge)
	t.nodes.Delete(leaf)

	if parentNode, ok := t.nodes.Get(parent); ok && len(parentNode.Edges) == 2 {
		if err := t.absorbNodeNoCleanup(parent); err != nil {
			return err
		}
	}

	t.rebuildAllPaths()

	return nil
}

func (t *Tree) absorbNodeNoCleanup(n Handle) error {
	node, ok := t.nodes.Get(n)
	if !ok || len(node.Edges) != 2 {
		return ErrNodeNotFound
	}
	e1h, e2h := node.Edges[0], node.Edges[1]
	e1, ok1 := t.edges.Get(e1h)
	e2, ok2 := t.edges.Get(e2h)
	if !ok1 || !ok2 {
		return ErrEdgeNotFound
	}
	far1 := other(e1, n)
	far2 := other(e2, n)
	e1.Length += e2.Length
	if far1 == e1.N1 {
		e1.N2 = far2
	} else {
		e1.N1 = far2
	}
	t.detachEdge(far2, e2h)
	t.attachEdge(far2, e1h)
	t.edges.Delete(e2h)
	t.nodes.Delete(n)

	return nil
}

// KillSomeNodesAndEdges deletes the given nodes and edges (and anything
// they make dangling) in one cleanup pass. Every handle must resolve to
// a live part, else ErrBadKillParts and the tree is left unchanged.
func (t *Tree) KillSomeNodesAndEdges(nodes, edges []Handle) error {
	defer beginEdit(t)()

	for _, nh := range nodes {
		if _, ok := t.nodes.Get(nh); !ok {
			return ErrBadKillParts
		}
	}
	for _, eh := range edges {
		if _, ok := t.edges.Get(eh); !ok {
			return ErrBadKillParts
		}
	}

	for _, eh := range edges {
		if e, ok := t.edges.Get(eh); ok {
			t.detachEdge(e.N1, eh)
			t.detachEdge(e.N2, eh)
			t.edges.Delete(eh)
		}
	}
	for _, nh := range nodes {
		if n, ok := t.nodes.Get(nh); ok {
			for _, eh := range append([]Handle{}, n.Edges...) {
				if e, ok := t.edges.Get(eh); ok {
					t.detachEdge(e.N1, eh)
					t.detachEdge(e.N2, eh)
					t.edges.Delete(eh)
				}
			}
			t.nodes.Delete(nh)
		}
	}

	t.rebuildAllPaths()

	return nil
}

// KillSomeConditions deletes the given conditions.
func (t *Tree) KillSomeConditions(conds []Handle) {
	defer beginEdit(t)()

	for _, h := range conds {
		t.conditions.Delete(h)
	}
}

// SetNodeLocs overwrites the given nodes' locations in one cleanup pass.
func (t *Tree) SetNodeLocs(locs map[Handle]geom.Vec) {
	defer beginEdit(t)()

	for h, loc := range locs {
		if n, ok := t.nodes.Get(h); ok {
			n.Loc = loc
		}
	}
}

// SetEdgeLengths overwrites the given edges' rest lengths in one cleanup
// pass.
func (t *Tree) SetEdgeLengths(lengths map[Handle]float64) {
	defer beginEdit(t)()

	for h, l := range lengths {
		if e, ok := t.edges.Get(h); ok {
			e.Length = l
		}
	}
}

// ScaleTree multiplies every edge's rest length and every node's
// location by factor, about the origin, adjusting the tree's own Scale
// field inversely so every edge's paper-unit length (ScaledLength) is
// unchanged; node locations, which are paper coordinates, do move.
func (t *Tree) ScaleTree(factor float64) {
	defer beginEdit(t)()

	if factor == 0 {
		return
	}
	t.edges.Each(func(_ Handle, e *Edge) { e.Length *= factor })
	t.nodes.Each(func(_ Handle, n *Node) { n.Loc = geom.Scale(n.Loc, factor) })
	t.Scale /= factor
}

// PerturbNodes replaces every node's location with delta(h, loc), the
// location returned by the caller-supplied func for that node.
func (t *Tree) PerturbNodes(delta func(Handle, geom.Vec) geom.Vec) {
	defer beginEdit(t)()

	t.nodes.Each(func(h Handle, n *Node) {
		n.Loc = delta(h, n.Loc)
	})
}

// SetPaperSize changes the paper's width/height.
func (t *Tree) SetPaperSize(w, h float64) {
	defer beginEdit(t)()

	t.Width, t.Height = w, h
}

// SetSymmetry installs or clears the tree's reflective symmetry axis.
func (t *Tree) SetSymmetry(has bool, axis SymmetryAxis) {
	defer beginEdit(t)()

	t.HasSymmetry = has
	t.Symmetry = axis
}

// SetScale overwrites the tree's global paper scale directly, unlike
// ScaleTree which rescales node locations and edge lengths to keep
// every edge's paper-unit length fixed.
func (t *Tree) SetScale(s float64) {
	defer beginEdit(t)()

	t.Scale = s
}

// SetEdgeStrain overwrites one edge's strain.
func (t *Tree) SetEdgeStrain(e Handle, strain float64) {
	defer beginEdit(t)()

	if edge, ok := t.edges.Get(e); ok {
		edge.Strain = strain
	}
}

// RelieveStrain folds every edge's current strain into its rest length
// (length becomes the strained length) and zeroes the strain, leaving
// every path's minimum length unchanged.
func (t *Tree) RelieveStrain() {
	defer beginEdit(t)()

	t.edges.Each(func(_ Handle, e *Edge) {
		e.Length = e.StrainedLength()
		e.Strain = 0
	})
}

// RemoveAllStrain zeroes every edge's strain without touching its rest
// length, shrinking strained paths back to their rest metric.
func (t *Tree) RemoveAllStrain() {
	defer beginEdit(t)()

	t.edges.Each(func(_ Handle, e *Edge) { e.Strain = 0 })
}

// AddCondition registers a new condition.
func (t *Tree) AddCondition(c Condition) Handle {
	defer beginEdit(t)()

	return t.conditions.New(c)
}
