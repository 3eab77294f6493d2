package depth

import (
	"sort"

	"github.com/katalvlaran/treemaker/crease"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// Builder implements tree.DepthComputer and tree.FacetPipeline. A zero
// value is ready to use.
type Builder struct{}

// ComputeVertexDepth is cleanup step 16's vertex half. Every active
// axial and gusset band establishes a depth metric (minDepth +
// |d - minDepthDist| for the signed projection d along the band), which
// is applied to the band's own path vertices and to every vertex on its
// ridgeline. Feet on inactive border paths then take the depth of the
// ridge vertex at the upper end of their hinge crease. A vertex left
// unset -- which happens around two consecutive inactive border paths --
// fails the computation, and with it the tree's vertex-depth validity.
//
// Discrete depth is also refreshed here: the hop count of the projected
// tree node for vertices that have one, -1 for all others.
func (Builder) ComputeVertexDepth(t *tree.Tree) error {
	hop, err := hopDepths(t)
	if err != nil {
		return err
	}

	assigned := map[tree.Handle]bool{}
	for _, vh := range t.VertexHandles() {
		v, ok := t.Vertex(vh)
		if !ok {
			continue
		}
		if v.HasTreeNode {
			v.DiscreteDepth = hop[v.TreeNode]
		} else {
			v.DiscreteDepth = -1
		}
	}

	pathVerts := vertsByPath(t)

	t.WalkPolys(func(ph tree.Handle, p *tree.Poly) {
		n := len(p.RingNodes)
		if len(p.RingPaths) != n {
			return
		}
		for i := 0; i < n; i++ {
			path, ok := t.Path(p.RingPaths[i])
			if !ok || !path.Active {
				continue
			}
			minDepth, mdd, ok := pathMetric(t, path)
			if !ok {
				continue
			}
			frontLoc := t.MustLoc(path.Front)
			backLoc := t.MustLoc(path.Back)
			axis, okA := geom.Normalize(geom.Sub(backLoc, frontLoc))
			if !okA {
				continue
			}
			setDepth := func(vh tree.Handle) {
				v, ok := t.Vertex(vh)
				if !ok {
					return
				}
				d := geom.Inner(geom.Sub(v.Loc, frontLoc), axis)
				if d < mdd {
					v.Depth = minDepth + mdd - d
				} else {
					v.Depth = minDepth + d - mdd
				}
				assigned[vh] = true
			}

			nodes, paths := crease.RidgelineNodesAndPaths(t, ph, i)
			for _, nh := range nodes {
				if node, ok := t.Node(nh); ok && node.Vertex.Valid() {
					setDepth(node.Vertex)
				}
			}
			for _, rp := range paths {
				for _, vh := range pathVerts[rp] {
					setDepth(vh)
				}
			}
			for _, vh := range pathVerts[p.RingPaths[i]] {
				setDepth(vh)
			}
		}
	})

	// Feet on inactive border paths inherit the depth of the ridge
	// vertex at the top of their hinge.
	for _, phh := range t.Paths() {
		path, ok := t.Path(phh)
		if !ok || path.Sub || !path.Border || path.Active {
			continue
		}
		for _, vh := range pathVerts[phh] {
			upper, ok := hingeUpper(t, vh)
			if !ok || !assigned[upper] {
				continue
			}
			uv, okU := t.Vertex(upper)
			v, okV := t.Vertex(vh)
			if !okU || !okV {
				continue
			}
			v.Depth = uv.Depth
			assigned[vh] = true
		}
	}

	for _, vh := range t.VertexHandles() {
		if !assigned[vh] {
			return ErrVertexDepthUnset
		}
	}

	return nil
}

// vertsByPath groups every path-owned vertex under its owning path.
func vertsByPath(t *tree.Tree) map[tree.Handle][]tree.Handle {
	out := map[tree.Handle][]tree.Handle{}
	for _, vh := range t.VertexHandles() {
		v, ok := t.Vertex(vh)
		if !ok || !v.Owner.IsPath {
			continue
		}
		out[v.Owner.Path] = append(out[v.Owner.Path], vh)
	}

	return out
}

// pathMetric returns a path's (minDepth, minDepthDist) in paper units,
// measured from the path's own front. Top-level paths carry the values
// cleanup step 16 computed; an inset path inherits its maximally outset
// path's metric shifted by the accumulated front reductions.
func pathMetric(t *tree.Tree, p *tree.Path) (minDepth, mdd float64, ok bool) {
	frontAcc := 0.0
	cur := p
	for cur.IsInset {
		frontAcc += cur.FrontReduction
		outset, found := t.Path(cur.Outset)
		if !found {
			return 0, 0, false
		}
		cur = outset
	}

	return cur.MinDepth, cur.MinDepthDist - frontAcc, true
}

// hingeUpper returns the ridge-vertex end of the first hinge crease
// incident to foot.
func hingeUpper(t *tree.Tree, foot tree.Handle) (tree.Handle, bool) {
	v, ok := t.Vertex(foot)
	if !ok {
		return tree.Handle{}, false
	}
	for _, ch := range v.Creases {
		c, ok := t.Crease(ch)
		if !ok || !isHinge(c.Kind) {
			continue
		}
		if c.V1 == foot {
			return c.V2, true
		}

		return c.V1, true
	}

	return tree.Handle{}, false
}

func isHinge(k tree.CreaseKind) bool {
	return k == tree.CreaseUnfoldedHinge || k == tree.CreaseFoldedHinge || k == tree.CreasePseudohinge
}

// ComputeCreaseBend is cleanup step 17: reclassify each regular hinge
// crease as folded or unfolded from the depth profile at its foot. The
// foot is a local extremum of depth along its path (depth falls then
// rises, or rises then falls, through it) exactly when the hinge folds.
// Pseudohinges keep their kind.
func (Builder) ComputeCreaseBend(t *tree.Tree) error {
	pathVerts := vertsByPath(t)

	for _, ch := range t.CreaseHandles() {
		c, ok := t.Crease(ch)
		if !ok || !isHinge(c.Kind) || c.Kind == tree.CreasePseudohinge {
			continue
		}
		foot := c.V1
		fv, ok := t.Vertex(foot)
		if !ok || !fv.Owner.IsPath {
			foot = c.V2
			fv, ok = t.Vertex(foot)
			if !ok || !fv.Owner.IsPath {
				continue
			}
		}
		prev, next, found := pathNeighbours(t, fv, foot, pathVerts[fv.Owner.Path])
		if !found {
			continue
		}
		dPrev := prev - fv.Depth
		dNext := next - fv.Depth
		if dPrev*dNext > 0 {
			c.Kind = tree.CreaseFoldedHinge
		} else {
			c.Kind = tree.CreaseUnfoldedHinge
		}
	}

	return nil
}

// pathNeighbours returns the depths of the vertices immediately before
// and after foot along its owning path.
func pathNeighbours(t *tree.Tree, fv *tree.Vertex, foot tree.Handle, owned []tree.Handle) (prev, next float64, ok bool) {
	p, found := t.Path(fv.Owner.Path)
	if !found {
		return 0, 0, false
	}
	frontLoc := t.MustLoc(p.Front)

	type entry struct {
		vertex tree.Handle
		arc    float64
	}
	entries := make([]entry, 0, len(owned)+2)
	addNodeVertex := func(nh tree.Handle) {
		if n, ok := t.Node(nh); ok && n.Vertex.Valid() {
			entries = append(entries, entry{vertex: n.Vertex, arc: geom.Dist(frontLoc, n.Loc)})
		}
	}
	addNodeVertex(p.Front)
	for _, vh := range owned {
		if v, ok := t.Vertex(vh); ok {
			entries = append(entries, entry{vertex: vh, arc: geom.Dist(frontLoc, v.Loc)})
		}
	}
	addNodeVertex(p.Back)
	sort.Slice(entries, func(i, j int) bool { return entries[i].arc < entries[j].arc })

	for i, e := range entries {
		if e.vertex != foot {
			continue
		}
		if i == 0 || i == len(entries)-1 {
			return 0, 0, false
		}
		pv, ok1 := t.Vertex(entries[i-1].vertex)
		nv, ok2 := t.Vertex(entries[i+1].vertex)
		if !ok1 || !ok2 {
			return 0, 0, false
		}

		return pv.Depth, nv.Depth, true
	}

	return 0, 0, false
}

// hopDepths returns, for every tree node reachable from the root, its
// edge-count distance from the root -- the discrete analogue of
// Node.Depth (which is a min-paper-length, not a hop count), computed
// with the same frontier-relaxation shape cleanup step 16 uses for the
// continuous metric.
func hopDepths(t *tree.Tree) (map[tree.Handle]int, error) {
	if !t.RootNode.Valid() {
		return nil, ErrNoRootVertex
	}
	hop := map[tree.Handle]int{t.RootNode: 0}
	frontier := []tree.Handle{t.RootNode}
	for len(frontier) > 0 {
		var next []tree.Handle
		for _, h := range frontier {
			n, ok := t.Node(h)
			if !ok {
				continue
			}
			for _, eh := range n.Edges {
				e, ok := t.Edge(eh)
				if !ok {
					continue
				}
				other := e.N1
				if other == h {
					other = e.N2
				}
				if _, seen := hop[other]; seen {
					continue
				}
				hop[other] = hop[h] + 1
				next = append(next, other)
			}
		}
		frontier = next
	}

	return hop, nil
}
