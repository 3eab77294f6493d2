package tree

// cuDeleteOrphanVertsAndCreases is step 13. Poly deletion in step 11
// cascades away poly-owned vertices and creases, but the vertices owned
// by the deleted poly's ring (tree) nodes survive, as do the stale
// crease handles still listed on them. This step prunes dead crease
// handles from every surviving vertex and deletes any vertex left with
// no live creases at all, clearing its owner node's vertex slot so the
// next fill allocates a fresh one.
func (t *Tree) cuDeleteOrphanVertsAndCreases() {
	var dead []Handle
	t.vertices.Each(func(h Handle, v *Vertex) {
		live := v.Creases[:0]
		for _, ch := range v.Creases {
			if _, ok := t.creases.Get(ch); ok {
				live = append(live, ch)
			}
		}
		v.Creases = live
		if len(v.Creases) == 0 {
			dead = append(dead, h)
		}
	})
	for _, h := range dead {
		v, ok := t.vertices.Get(h)
		if !ok {
			continue
		}
		if !v.Owner.IsPath {
			if n, nodeOK := t.nodes.Get(v.Owner.Node); nodeOK && n.Vertex == h {
				n.Vertex = Handle{}
			}
		}
		t.vertices.Delete(h)
	}
}

// cuEnsureRootAndRenumber is step 14: ensure the root node has
// graph-theoretic index 1 (i.e. is in fact a node the tree recognises as
// its root), and renumber is a no-op under the handle-arena design since
// handles already serve as stable indices; we only need to make sure
// RootNode still resolves, picking a new root deterministically if not.
func (t *Tree) cuEnsureRootAndRenumber() {
	if _, ok := t.nodes.Get(t.RootNode); ok {
		return
	}
	handles := t.nodes.Handles()
	if len(handles) == 0 {
		t.RootNode = Handle{}

		return
	}
	t.RootNode = handles[0]
}

// cuClearCleanupDataAndFill is step 15. When every top-level poly
// already has both inset contents and facets, there is nothing to do
// beyond clearing per-cleanup scratch data, which keeps a redundant
// cleanup bitwise idempotent. Otherwise the crease-level state of the
// whole tree (vertices, creases, facets) is wiped and rebuilt from
// scratch: hinge feet on a ring path shared between two polys depend on
// both polys' ridge structure, so a partial per-poly rebuild cannot be
// made consistent. polygons_filled holds iff every poly ends up with
// contents and the crease build succeeds; if it doesn't, the caller
// aborts the remaining pipeline.
func (t *Tree) cuClearCleanupDataAndFill() bool {
	needFill := t.polysChanged
	t.polysChanged = false
	t.polys.Each(func(_ Handle, p *Poly) {
		if p.Sub {
			return
		}
		if len(p.SubNodes) == 0 || len(p.Facets) == 0 {
			needFill = true
		}
	})

	if !needFill {
		t.clearFacetScratch()
		t.PolygonsFilled = t.polys.Len() > 0 || t.hooks.contents == nil

		return t.PolygonsFilled
	}

	t.clearCreaseLevel()

	allFilled := true
	t.polys.Each(func(h Handle, p *Poly) {
		if p.Sub || t.hooks.contents == nil {
			return
		}
		if len(p.SubNodes) > 0 {
			return
		}
		if err := t.hooks.contents.BuildPolyContents(t, h); err != nil {
			allFilled = false
		}
	})

	if allFilled && t.hooks.creases != nil {
		if err := t.hooks.creases.BuildCreases(t); err != nil {
			allFilled = false
		}
	}

	t.PolygonsFilled = allFilled

	return allFilled
}

// clearFacetScratch resets the per-cleanup derived fields on every
// facet, vertex, and crease without touching the structures themselves.
func (t *Tree) clearFacetScratch() {
	t.facets.Each(func(_ Handle, f *Facet) {
		f.Head = nil
		f.Tail = nil
		f.Order = 0
		f.Colour = Unoriented
	})
	t.creases.Each(func(_ Handle, c *Crease) {
		c.Fold = FoldFlat
	})
	t.vertices.Each(func(_ Handle, v *Vertex) {
		v.Depth = 0
		v.DiscreteDepth = 0
	})
}

// clearCreaseLevel deletes every vertex, crease, and facet in the tree
// and empties the corresponding membership lists on every poly and the
// vertex slot on every node, leaving the inset node/path substructure in
// place for the crease builder to rebuild against.
func (t *Tree) clearCreaseLevel() {
	for _, h := range t.facets.Handles() {
		t.facets.Delete(h)
	}
	for _, h := range t.creases.Handles() {
		t.creases.Delete(h)
	}
	for _, h := range t.vertices.Handles() {
		t.vertices.Delete(h)
	}
	t.nodes.Each(func(_ Handle, n *Node) { n.Vertex = Handle{} })
	t.polys.Each(func(_ Handle, p *Poly) {
		p.Creases = nil
		p.Vertices = nil
		p.Facets = nil
		p.LocalRootVertices = nil
		p.LocalRootCreases = nil
	})
}
