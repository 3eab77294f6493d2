package crease

import (
	"math"
	"sort"

	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// RidgelineNodesAndPaths returns the chain of nodes and connecting
// sub-paths that climbs from ring corner i of poly up over the ridge and
// back down to corner i+1: front corner, its spoke, the inset nodes
// (recursing through the nested sub-poly whenever the two corners map to
// different inset nodes), the back corner's spoke, and the back corner.
// The recursion stops at an active inset ring path: an active path forms
// its own gusset band with its own ridgeline, so anything deeper belongs
// to that band, not this one.
func RidgelineNodesAndPaths(t *tree.Tree, poly tree.Handle, i int) (nodes, paths []tree.Handle) {
	p, ok := t.Poly(poly)
	if !ok {
		return nil, nil
	}
	n := len(p.RingNodes)
	if n == 0 || len(p.InsetNodeOf) != n || len(p.SpokePaths) != n || i >= n {
		return nil, nil
	}
	j := (i + 1) % n

	nodes = append(nodes, p.RingNodes[i])
	paths = append(paths, p.SpokePaths[i])
	inner, innerPaths := innerChain(t, p, p.InsetNodeOf[i], p.InsetNodeOf[j])
	nodes = append(nodes, inner...)
	paths = append(paths, innerPaths...)
	paths = append(paths, p.SpokePaths[j])
	nodes = append(nodes, p.RingNodes[j])

	return nodes, paths
}

// innerChain returns the ridge nodes from a to b inclusive, with the
// sub-paths between them.
func innerChain(t *tree.Tree, p *tree.Poly, a, b tree.Handle) (nodes, paths []tree.Handle) {
	if a == b {
		return []tree.Handle{a}, nil
	}
	if p.RidgePath.Valid() {
		if rp, ok := t.Path(p.RidgePath); ok &&
			((rp.Front == a && rp.Back == b) || (rp.Front == b && rp.Back == a)) {
			return []tree.Handle{a, b}, []tree.Handle{p.RidgePath}
		}
	}
	for _, sh := range p.SubPolys {
		sub, ok := t.Poly(sh)
		if !ok {
			continue
		}
		m := len(sub.RingNodes)
		if m == 0 || len(sub.RingPaths) != m {
			continue
		}
		for si, rn := range sub.RingNodes {
			var edge int
			switch {
			case rn == a && sub.RingNodes[(si+1)%m] == b:
				edge = si
			case rn == b && sub.RingNodes[(si+1)%m] == a:
				edge = si
			default:
				continue
			}
			path, ok := t.Path(sub.RingPaths[edge])
			if !ok {
				continue
			}
			if path.Active {
				// A gusset bounds this band; the climb stops here.
				return []tree.Handle{a, b}, []tree.Handle{sub.RingPaths[edge]}
			}
			innerNodes, innerPaths := RidgelineNodesAndPaths(t, sh, edge)
			if len(innerNodes) < 2 {
				return []tree.Handle{a, b}, nil
			}
			if innerNodes[0] != a {
				innerNodes = reverseHandles(innerNodes)
				innerPaths = reverseHandles(innerPaths)
			}

			return innerNodes, innerPaths
		}
	}

	return []tree.Handle{a, b}, nil
}

func reverseHandles(hs []tree.Handle) []tree.Handle {
	out := make([]tree.Handle, len(hs))
	for i, h := range hs {
		out[len(hs)-1-i] = h
	}

	return out
}

// ridgelineVertices collects every vertex on the band's ridgeline -- the
// chain nodes' own vertices plus any vertex the upward hinge pass placed
// on a chain sub-path -- sorted along the ridgeline. The sort key is the
// angle about the band's midpoint, mapping the front corner to -pi/2 and
// the back corner to +pi/2: an angle sort rather than a dot product
// along the band, because the two ends of a 90-degree ridge crease have
// the same dot product and would otherwise be ordered by roundoff.
func (b *builder) ridgelineVertices(bd band) []tree.Handle {
	nodes, paths := RidgelineNodesAndPaths(b.t, bd.poly, bd.ringIndex)
	if len(nodes) == 0 {
		return nil
	}

	frontLoc := b.t.MustLoc(bd.front)
	backLoc := b.t.MustLoc(bd.back)
	pu, ok := geom.Normalize(geom.Sub(backLoc, frontLoc))
	if !ok {
		return nil
	}
	pv := geom.RotateCCW90(pu)
	mid := geom.Scale(geom.Add(frontLoc, backLoc), 0.5)

	type entry struct {
		vertex tree.Handle
		sort   float64
	}
	sortValue := func(loc geom.Vec) float64 {
		dp := geom.Sub(loc, mid)

		return math.Atan2(geom.Inner(dp, pu), geom.Inner(dp, pv))
	}

	var entries []entry
	seen := map[tree.Handle]bool{}
	add := func(vh tree.Handle) {
		if !vh.Valid() || seen[vh] {
			return
		}
		seen[vh] = true
		entries = append(entries, entry{vertex: vh, sort: sortValue(b.t.MustVertexLoc(vh))})
	}

	for _, nh := range nodes {
		if v, ok := b.nodeVertex(nh); ok {
			add(v)
		}
	}
	for _, ph := range paths {
		for _, f := range b.pathVerts[ph] {
			add(f.vertex)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].sort < entries[j].sort })

	out := make([]tree.Handle, len(entries))
	for i, e := range entries {
		out[i] = e.vertex
	}

	return out
}
