package crease

import (
	"sort"

	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// Builder implements tree.CreaseBuilder. A zero value is ready to use.
type Builder struct{}

// BuildCreases populates every poly's vertices, creases, and facets from
// the (already built) inset sub-structure. The build is tree-wide and
// staged: branch-node vertices first, then the hinges that rise from
// active bands onto their ridgelines (creating the ridge-side vertices),
// then gusset segmentation, ridge creases and the downward hinge pass
// over inactive borders (where pseudohinges arise), then axial
// segmentation, and finally one facet construction per top-level poly.
func (Builder) BuildCreases(t *tree.Tree) error {
	b := &builder{
		t:          t,
		donePaths:  map[tree.Handle]bool{},
		pathVerts:  map[tree.Handle][]foot{},
		pathKind:   map[tree.Handle]tree.CreaseKind{},
		pathTops:   map[tree.Handle][]tree.Handle{},
		creases:    map[creaseKey]tree.Handle{},
		topCreases: map[tree.Handle][]tree.Handle{},
	}

	for _, top := range t.Polys() {
		p, ok := t.Poly(top)
		if !ok || p.Sub {
			continue
		}
		b.tops = append(b.tops, top)
		if err := b.collectLevels(top, top); err != nil {
			return err
		}
	}

	for _, bd := range b.bands {
		if err := b.buildSelfVertices(bd); err != nil {
			return err
		}
	}
	for _, bd := range b.bands {
		if bd.active {
			b.buildUpwardHinges(bd)
		}
	}
	for _, bd := range b.bands {
		if !bd.axial {
			b.connectSelfVertices(bd)
		}
	}
	for _, bd := range b.bands {
		ridge := b.ridgelineVertices(bd)
		b.buildRidgeCreases(bd, ridge)
		if bd.axial && !bd.active {
			b.buildDownwardHinges(bd, ridge)
		}
	}
	for _, bd := range b.bands {
		if bd.axial {
			b.connectSelfVertices(bd)
		}
	}
	for _, top := range b.tops {
		if err := b.buildFacets(top); err != nil {
			return err
		}
	}

	return nil
}

// foot is a vertex on a structural path, at param (fraction of the way
// from the path's own front node to its back node).
type foot struct {
	vertex tree.Handle
	param  float64
}

// band is one crease-bearing ring path: a top-level (axial) ring path,
// or an active inset ring path (gusset). Inactive inset ring paths form
// no band; the band below them sees through to their ridgeline.
type band struct {
	poly, top   tree.Handle
	ringIndex   int
	path        tree.Handle
	front, back tree.Handle // CCW ring order, not necessarily path order
	axial       bool
	active      bool
}

type creaseKey struct{ v1, v2 tree.Handle }

func pairKey(v1, v2 tree.Handle) creaseKey {
	if v2.Less(v1) {
		v1, v2 = v2, v1
	}

	return creaseKey{v1, v2}
}

type builder struct {
	t         *tree.Tree
	tops      []tree.Handle
	bands     []band
	donePaths map[tree.Handle]bool

	pathVerts map[tree.Handle][]foot
	pathKind  map[tree.Handle]tree.CreaseKind
	pathTops  map[tree.Handle][]tree.Handle
	creases   map[creaseKey]tree.Handle

	// topCreases accumulates, per top-level poly, every crease bounding a
	// region of its molecule: its facet walk runs over exactly this set.
	topCreases map[tree.Handle][]tree.Handle
}

// collectLevels walks poly and its nested sub-polys, validating their
// ring structure, ensuring every ring and inset node has its vertex, and
// registering each crease-bearing ring path as a band of top's molecule.
func (b *builder) collectLevels(poly, top tree.Handle) error {
	p, ok := b.t.Poly(poly)
	if !ok {
		return ErrMissingContents
	}
	n := len(p.RingNodes)
	if n < 3 || len(p.RingPaths) != n || len(p.InsetNodeOf) != n || len(p.SpokePaths) != n {
		return ErrMissingContents
	}

	for i, rn := range p.RingNodes {
		if _, ok := b.nodeVertex(rn); !ok {
			return ErrMissingContents
		}
		if _, ok := b.nodeVertex(p.InsetNodeOf[i]); !ok {
			return ErrMissingContents
		}
		ph := p.RingPaths[i]
		path, ok := b.t.Path(ph)
		if !ok {
			return ErrMissingContents
		}
		if path.Sub && !path.Active {
			// No band: the ridgeline of the band below climbs through.
			continue
		}
		kind := tree.CreaseAxial
		if path.Sub {
			kind = tree.CreaseGusset
		}
		b.pathKind[ph] = kind
		if !containsHandle(b.pathTops[ph], top) {
			b.pathTops[ph] = append(b.pathTops[ph], top)
		}
		b.bands = append(b.bands, band{
			poly: poly, top: top, ringIndex: i, path: ph,
			front: p.RingNodes[i], back: p.RingNodes[(i+1)%n],
			axial: !path.Sub, active: path.Active,
		})
	}

	for _, sh := range p.SubPolys {
		if err := b.collectLevels(sh, top); err != nil {
			return err
		}
	}

	return nil
}

// nodeVertex returns (creating if needed) the vertex for a node handle,
// at that node's own location and elevation.
func (b *builder) nodeVertex(node tree.Handle) (tree.Handle, bool) {
	return b.t.NewNodeVertex(node, func() tree.Vertex {
		n, ok := b.t.Node(node)
		if !ok {
			return tree.Vertex{}
		}
		v := tree.Vertex{Loc: n.Loc, Elevation: n.Elevation, Border: n.Border, DiscreteDepth: -1}
		if !n.Sub {
			v.HasTreeNode = true
			v.TreeNode = node
		}

		return v
	})
}

// vertexOnPath returns the vertex for a point on a path: the front or
// back node's own vertex when the point falls within VertexSameTol of an
// endpoint, an existing path-owned vertex within the same tolerance, or
// a freshly created one. A tree node passed alongside is recorded on the
// resulting vertex if it has none yet.
func (b *builder) vertexOnPath(ph, owningTop tree.Handle, loc geom.Vec, treeNode tree.Handle) (tree.Handle, bool) {
	p, ok := b.t.Path(ph)
	if !ok {
		return tree.Handle{}, false
	}
	frontLoc := b.t.MustLoc(p.Front)
	backLoc := b.t.MustLoc(p.Back)

	promote := func(vh tree.Handle) (tree.Handle, bool) {
		if v, ok := b.t.Vertex(vh); ok && treeNode.Valid() && !v.HasTreeNode {
			v.HasTreeNode = true
			v.TreeNode = treeNode
		}

		return vh, true
	}

	if geom.Dist(loc, frontLoc) <= geom.VertexSameTol() {
		if vh, ok := b.nodeVertex(p.Front); ok {
			return promote(vh)
		}
	}
	if geom.Dist(loc, backLoc) <= geom.VertexSameTol() {
		if vh, ok := b.nodeVertex(p.Back); ok {
			return promote(vh)
		}
	}
	for _, f := range b.pathVerts[ph] {
		if v, ok := b.t.Vertex(f.vertex); ok && geom.Dist(v.Loc, loc) <= geom.VertexSameTol() {
			return promote(f.vertex)
		}
	}

	segLen := geom.Dist(frontLoc, backLoc)
	param := 0.0
	if segLen > geom.DistTol() {
		param = geom.Dist(loc, frontLoc) / segLen
	}
	frontNode, okF := b.t.Node(p.Front)
	backNode, okB := b.t.Node(p.Back)
	elevation := 0.0
	if okF && okB {
		elevation = (1-param)*frontNode.Elevation + param*backNode.Elevation
	}
	v := tree.Vertex{Loc: loc, Elevation: elevation, Border: p.Border, DiscreteDepth: -1}
	if treeNode.Valid() {
		v.HasTreeNode = true
		v.TreeNode = treeNode
	}
	vh := b.t.NewPathVertex(ph, owningTop, v)
	b.pathVerts[ph] = append(b.pathVerts[ph], foot{vertex: vh, param: param})

	return vh, true
}

// getOrMakeCrease returns the existing crease between the two vertices,
// or creates a new one of the given kind with the given owner. Either
// way the crease ends up registered under top's crease set.
func (b *builder) getOrMakeCrease(top, v1, v2 tree.Handle, kind tree.CreaseKind, owner tree.CreaseOwner) tree.Handle {
	key := pairKey(v1, v2)
	if ch, ok := b.creases[key]; ok {
		if !containsHandle(b.topCreases[top], ch) {
			b.topCreases[top] = append(b.topCreases[top], ch)
		}

		return ch
	}
	ch := b.t.NewCrease(top, tree.Crease{V1: v1, V2: v2, Kind: kind, Owner: owner})
	b.creases[key] = ch
	b.topCreases[top] = append(b.topCreases[top], ch)

	return ch
}

// buildSelfVertices places the endpoint vertices of a band's path and,
// when the band is active, a vertex at every branch node of the tree
// that falls within the band: the maximally outset tree path is walked
// in the strained scaled metric, offset by the accumulated front
// reductions, and every node position strictly interior to the band gets
// a vertex projecting that node.
func (b *builder) buildSelfVertices(bd band) error {
	p, ok := b.t.Path(bd.path)
	if !ok {
		return ErrMissingContents
	}
	if _, ok := b.nodeVertex(p.Front); !ok {
		return ErrMissingContents
	}
	if _, ok := b.nodeVertex(p.Back); !ok {
		return ErrMissingContents
	}
	if !bd.active {
		return nil
	}

	outset := p
	frontAcc := 0.0
	for outset.IsInset {
		frontAcc += outset.FrontReduction
		next, ok := b.t.Path(outset.Outset)
		if !ok {
			return ErrMissingContents
		}
		outset = next
	}

	frontLoc := b.t.MustLoc(p.Front)
	backLoc := b.t.MustLoc(p.Back)
	actLen := geom.Dist(frontLoc, backLoc)
	if actLen < geom.DistTol() {
		return ErrMissingContents
	}
	unit := geom.Scale(geom.Sub(backLoc, frontLoc), 1/actLen)

	margin := geom.VertexSameTol()
	pos := -frontAcc
	for k, eh := range outset.Edges {
		e, ok := b.t.Edge(eh)
		if !ok {
			continue
		}
		pos += e.ScaledLength(b.t)
		if k+1 >= len(outset.Nodes)-1 {
			break
		}
		if pos <= margin {
			continue
		}
		if pos >= actLen-margin {
			break
		}
		loc := geom.Add(frontLoc, geom.Scale(unit, pos))
		if _, ok := b.vertexOnPath(bd.path, bd.top, loc, outset.Nodes[k+1]); !ok {
			return ErrMissingContents
		}
	}

	return nil
}

// connectSelfVertices joins the band path's endpoint vertices and owned
// vertices with creases of the band's kind, in order along the path.
func (b *builder) connectSelfVertices(bd band) {
	if b.donePaths[bd.path] {
		return
	}
	b.donePaths[bd.path] = true

	p, ok := b.t.Path(bd.path)
	if !ok {
		return
	}
	frontV, ok1 := b.nodeVertex(p.Front)
	backV, ok2 := b.nodeVertex(p.Back)
	if !ok1 || !ok2 {
		return
	}

	feet := b.pathVerts[bd.path]
	sort.SliceStable(feet, func(i, j int) bool { return feet[i].param < feet[j].param })

	chain := make([]tree.Handle, 0, len(feet)+2)
	chain = append(chain, frontV)
	for _, f := range feet {
		chain = append(chain, f.vertex)
	}
	chain = append(chain, backV)

	owner := tree.CreaseOwner{Path: bd.path}
	for i := 0; i+1 < len(chain); i++ {
		ch := b.getOrMakeCrease(bd.top, chain[i], chain[i+1], b.pathKind[bd.path], owner)
		for _, top := range b.pathTops[bd.path] {
			if !containsHandle(b.topCreases[top], ch) {
				b.topCreases[top] = append(b.topCreases[top], ch)
			}
		}
	}
}

// buildRidgeCreases connects the band's sorted ridgeline vertices with
// ridge creases. A consecutive pair already joined by a gusset crease is
// left as the gusset: the crease map returns the existing crease
// untouched.
func (b *builder) buildRidgeCreases(bd band, ridge []tree.Handle) {
	owner := tree.CreaseOwner{IsPoly: true, Poly: bd.top}
	for i := 0; i+1 < len(ridge); i++ {
		b.getOrMakeCrease(bd.top, ridge[i], ridge[i+1], tree.CreaseRidge, owner)
	}
}

func containsHandle(hs []tree.Handle, h tree.Handle) bool {
	for _, c := range hs {
		if c == h {
			return true
		}
	}

	return false
}
