package tree

import "github.com/katalvlaran/treemaker/geom"

// This file is the exported surface packages polygon, crease, depth, and
// assign build against: creating a poly's nested sub-structure (inset
// nodes/paths/polys) and a poly's crease-pattern contents (vertices,
// creases, facets), all stored in the tree's own global arenas per the
// design note on Poly in types.go.

// Vertex, Crease, Facet resolve a Handle against the tree-wide arena for
// that kind, regardless of which node/path/poly owns the part.
func (t *Tree) Vertex(h Handle) (*Vertex, bool) { return t.vertices.Get(h) }
func (t *Tree) Crease(h Handle) (*Crease, bool) { return t.creases.Get(h) }
func (t *Tree) Facet(h Handle) (*Facet, bool)   { return t.facets.Get(h) }

// MustVertexLoc returns h's location, or the zero Vec if h does not
// resolve to a live vertex. Exported for packages (crease, depth, assign)
// that need a vertex's location without round-tripping through
// Vertex/Get themselves for every call site.
func (t *Tree) MustVertexLoc(h Handle) geom.Vec {
	v, ok := t.vertices.Get(h)
	if !ok {
		return geom.Vec{}
	}

	return v.Loc
}

// PathBetween returns the top-level path whose front/back nodes are
// {a,b} in either order, if one exists. Exported for package format,
// which must resolve a PathCombo condition's path after raw-loading
// nodes/edges and rebuilding paths, since the path itself is never
// persisted (it is always rebuilt deterministically from the node/edge
// graph cleanup already reconstructs).
func (t *Tree) PathBetween(a, b Handle) (Handle, bool) {
	h, _, ok := t.pathHandleBetween(a, b)

	return h, ok
}

// AnyPathBetween is PathBetween without the top-level restriction: it
// also finds inset sub-paths, which package polygon needs when resolving
// the outset path of a deeper insetting round.
func (t *Tree) AnyPathBetween(a, b Handle) (Handle, bool) {
	var foundH Handle
	found := false
	t.paths.Each(func(h Handle, p *Path) {
		if found {
			return
		}
		if (p.Front == a && p.Back == b) || (p.Front == b && p.Back == a) {
			foundH, found = h, true
		}
	})

	return foundH, found
}

// VertexHandles, CreaseHandles, FacetHandles return every live handle of that kind,
// tree-wide, in allocation order.
func (t *Tree) VertexHandles() []Handle { return t.vertices.Handles() }
func (t *Tree) CreaseHandles() []Handle { return t.creases.Handles() }
func (t *Tree) FacetHandles() []Handle  { return t.facets.Handles() }

// NewSubNode allocates a sub-node owned by poly (an inset node created
// during insetting) and registers it in poly's membership list.
func (t *Tree) NewSubNode(poly Handle, n Node) (Handle, bool) {
	p, ok := t.polys.Get(poly)
	if !ok {
		return Handle{}, false
	}
	n.Owner = Owner{IsPoly: true, Poly: poly}
	n.Sub = true
	h := t.nodes.New(n)
	p.SubNodes = append(p.SubNodes, h)

	return h, true
}

// NewSubPath allocates an inset sub-path owned by poly and registers it
// in poly's membership list.
func (t *Tree) NewSubPath(poly Handle, p Path) (Handle, bool) {
	owner, ok := t.polys.Get(poly)
	if !ok {
		return Handle{}, false
	}
	p.Owner = Owner{IsPoly: true, Poly: poly}
	p.Sub = true
	p.IsInset = true
	h := t.paths.New(p)
	owner.SubPaths = append(owner.SubPaths, h)

	return h, true
}

// NewSubPoly allocates a nested Poly owned by parent and registers it in
// parent's membership list.
func (t *Tree) NewSubPoly(parent Handle, p Poly) (Handle, bool) {
	owner, ok := t.polys.Get(parent)
	if !ok {
		return Handle{}, false
	}
	p.Owner = Owner{IsPoly: true, Poly: parent}
	p.Sub = true
	h := t.polys.New(p)
	owner.SubPolys = append(owner.SubPolys, h)

	return h, true
}

// NewNodeVertex allocates (or returns the existing) vertex owned by a
// tree or sub- node. Tree nodes always have exactly one.
func (t *Tree) NewNodeVertex(node Handle, loc func() Vertex) (Handle, bool) {
	n, ok := t.nodes.Get(node)
	if !ok {
		return Handle{}, false
	}
	if n.Vertex.Valid() {
		if _, stillLive := t.vertices.Get(n.Vertex); stillLive {
			return n.Vertex, true
		}
	}
	v := loc()
	v.Owner = VertexOwner{Node: node}
	h := t.vertices.New(v)
	n.Vertex = h
	if n.Owner.IsPoly {
		if p, ok := t.polys.Get(n.Owner.Poly); ok {
			p.Vertices = append(p.Vertices, h)
		}
	}

	return h, true
}

// NewPathVertex allocates a vertex owned by a path, registering it under
// owningPoly's membership list (the poly that will use this vertex in
// its facet structure -- normally the path's Forward or Backward poly).
func (t *Tree) NewPathVertex(path, owningPoly Handle, v Vertex) Handle {
	v.Owner = VertexOwner{IsPath: true, Path: path}
	h := t.vertices.New(v)
	if p, ok := t.polys.Get(owningPoly); ok {
		p.Vertices = append(p.Vertices, h)
	}

	return h
}

// NewCrease allocates a crease owned by owningPoly (every crease is
// registered under exactly one poly's membership list, even when its
// logical owner is a Path, since creases are only ever consumed
// by facet construction inside one poly's local structure).
func (t *Tree) NewCrease(owningPoly Handle, c Crease) Handle {
	h := t.creases.New(c)
	if p, ok := t.polys.Get(owningPoly); ok {
		p.Creases = append(p.Creases, h)
	}
	if v1, ok := t.vertices.Get(c.V1); ok {
		v1.Creases = append(v1.Creases, h)
	}
	if c.V2 != c.V1 {
		if v2, ok := t.vertices.Get(c.V2); ok {
			v2.Creases = append(v2.Creases, h)
		}
	}

	return h
}

// NewFacet allocates a facet owned by poly.
func (t *Tree) NewFacet(poly Handle, f Facet) Handle {
	f.Owner = poly
	h := t.facets.New(f)
	if p, ok := t.polys.Get(poly); ok {
		p.Facets = append(p.Facets, h)
	}

	return h
}

// WalkPolys calls fn for every poly in the tree -- every top-level poly
// and, recursively, every nested sub-poly -- in a deterministic
// pre-order (a poly always visited before its own sub-polys).
func (t *Tree) WalkPolys(fn func(Handle, *Poly)) {
	var visit func(h Handle)
	visit = func(h Handle) {
		p, ok := t.polys.Get(h)
		if !ok {
			return
		}
		fn(h, p)
		for _, sh := range p.SubPolys {
			visit(sh)
		}
	}
	for _, h := range t.polys.Handles() {
		if p, ok := t.polys.Get(h); ok && !p.Sub {
			visit(h)
		}
	}
}

// deletePolyCascade removes poly and everything it owns -- its nested
// sub-nodes, sub-paths, sub-polys (recursively), creases, vertices, and
// facets -- from the tree's global arenas.
func (t *Tree) deletePolyCascade(h Handle) {
	p, ok := t.polys.Get(h)
	if !ok {
		return
	}
	for _, sh := range p.SubPolys {
		t.deletePolyCascade(sh)
	}
	for _, fh := range p.Facets {
		t.facets.Delete(fh)
	}
	for _, ch := range p.Creases {
		t.creases.Delete(ch)
	}
	for _, vh := range p.Vertices {
		t.vertices.Delete(vh)
	}
	for _, ph := range p.SubPaths {
		t.paths.Delete(ph)
	}
	for _, nh := range p.SubNodes {
		t.nodes.Delete(nh)
	}
	t.polys.Delete(h)
}
