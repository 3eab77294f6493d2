package tree

import (
	"sort"

	"github.com/katalvlaran/treemaker/geom"
)

// cuBuildPolygonNetwork is step 10. It first computes the polygon-path
// and polygon-node flag sets by fixpoint iteration, then
// traces the bounded faces of the resulting planar subgraph and creates
// or refreshes a Poly for each one not already represented.
func (t *Tree) cuBuildPolygonNetwork() {
	// Initial sets.
	t.paths.Each(func(_ Handle, p *Path) {
		if p.Sub {
			return
		}
		p.Polygon = p.Active || (p.Border && p.Feasible)
	})
	t.nodes.Each(func(_ Handle, n *Node) {
		n.Polygon = n.Pinned || n.Border
	})

	for {
		changed := false

		t.nodes.Each(func(_ Handle, n *Node) {
			if !n.Polygon {
				return
			}
			if n.Leaf && t.incidentInfeasiblePolygonPath(n) {
				n.Polygon = false
				changed = true
			}
		})

		t.paths.Each(func(_ Handle, p *Path) {
			if p.Sub || !p.Polygon {
				return
			}
			front, ok1 := t.nodes.Get(p.Front)
			back, ok2 := t.nodes.Get(p.Back)
			if !ok1 || !ok2 || !front.Polygon || !back.Polygon {
				p.Polygon = false
				changed = true
			}
		})

		t.nodes.Each(func(h Handle, n *Node) {
			if !n.Polygon {
				return
			}
			if t.countIncidentPolygonPaths(h) < 2 {
				n.Polygon = false
				changed = true
			}
		})

		if !changed {
			break
		}
	}

	t.traceAndBuildFaces()
	t.registerPathPolys()
}

// registerPathPolys refreshes every top-level path's forward/backward
// poly pointers from the current poly set.
func (t *Tree) registerPathPolys() {
	t.paths.Each(func(_ Handle, p *Path) {
		if !p.Sub {
			p.ForwardPoly, p.BackwardPoly = Handle{}, Handle{}
		}
	})
	t.polys.Each(func(ph Handle, poly *Poly) {
		if poly.Sub {
			return
		}
		for _, rp := range poly.RingPaths {
			path, ok := t.paths.Get(rp)
			if !ok {
				continue
			}
			if !path.ForwardPoly.Valid() {
				path.ForwardPoly = ph
			} else if path.ForwardPoly != ph {
				path.BackwardPoly = ph
			}
		}
	})
}

func (t *Tree) incidentInfeasiblePolygonPath(n *Node) bool {
	for _, ph := range n.LeafPaths {
		if p, ok := t.paths.Get(ph); ok && p.Polygon && !p.Feasible {
			return true
		}
	}

	return false
}

func (t *Tree) countIncidentPolygonPaths(h Handle) int {
	count := 0
	t.paths.Each(func(_ Handle, p *Path) {
		if p.Sub || !p.Polygon {
			return
		}
		if p.Front == h || p.Back == h {
			count++
		}
	})

	return count
}

// directedEdge identifies one direction of travel along a polygon path.
type directedEdge struct {
	from, to Handle
	path     Handle
}

// traceAndBuildFaces extracts every bounded face of the planar subgraph
// induced by polygon-flagged nodes and paths (a standard planar-graph
// face trace: sort each node's incident directed edges by angle, then
// walk "next edge clockwise from the reverse of the one just arrived
// on" until back at the start; the one face walked with net clockwise
// turning, i.e. negative signed area, is the unbounded outer face and
// is discarded).
func (t *Tree) traceAndBuildFaces() {
	neighbours := map[Handle][]directedEdge{}
	t.paths.Each(func(ph Handle, p *Path) {
		if p.Sub || !p.Polygon {
			return
		}
		neighbours[p.Front] = append(neighbours[p.Front], directedEdge{p.Front, p.Back, ph})
		neighbours[p.Back] = append(neighbours[p.Back], directedEdge{p.Back, p.Front, ph})
	})
	for h, edges := range neighbours {
		loc := t.mustLoc(h)
		sort.Slice(edges, func(i, j int) bool {
			ai := geom.Angle(geom.Sub(t.mustLoc(edges[i].to), loc))
			aj := geom.Angle(geom.Sub(t.mustLoc(edges[j].to), loc))

			return ai < aj
		})
		neighbours[h] = edges
	}

	nextOf := func(e directedEdge) directedEdge {
		out := neighbours[e.to]
		for i, cand := range out {
			if cand.to == e.from && cand.path == e.path {
				// the edge immediately before the reverse direction in
				// CCW rotation order (the next one clockwise) traces the
				// face to the left.
				return out[(i-1+len(out))%len(out)]
			}
		}

		return e
	}

	visited := map[directedEdge]bool{}
	var faces [][]Handle

	for _, edges := range neighbours {
		for _, start := range edges {
			if visited[start] {
				continue
			}
			var ring []Handle
			e := start
			for i := 0; i < len(neighbours)*2+4; i++ {
				if visited[e] {
					break
				}
				visited[e] = true
				ring = append(ring, e.from)
				e = nextOf(e)
				if e == start {
					break
				}
			}
			if len(ring) >= 3 {
				faces = append(faces, ring)
			}
		}
	}

	// Discard the one face with the largest enclosed area with negative
	// (clockwise) orientation: the unbounded outer face.
	outerIdx := -1
	var outerArea float64
	for i, ring := range faces {
		area := signedArea(t, ring)
		if area < outerArea {
			outerArea = area
			outerIdx = i
		}
	}

	existing := map[string]Handle{}
	t.polys.Each(func(h Handle, p *Poly) {
		if !p.Sub {
			existing[ringKey(p.RingNodes)] = h
		}
	})

	seen := map[string]bool{}
	for i, ring := range faces {
		if i == outerIdx {
			continue
		}
		if signedArea(t, ring) < 0 {
			ring = reversed(ring)
		}
		key := ringKey(ring)
		seen[key] = true
		if _, ok := existing[key]; ok {
			continue
		}
		poly := newPoly()
		poly.RingNodes = ring
		poly.RingPaths = ringPaths(t, ring)
		poly.Centroid = centroidOf(t, ring)
		poly.LastNodeLocs = make([]geom.Vec, len(ring))
		for ri, nh := range ring {
			poly.LastNodeLocs[ri] = t.mustLoc(nh)
		}
		t.polys.New(*poly)
		t.polysChanged = true
	}
}

func signedArea(t *Tree, ring []Handle) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		a := t.mustLoc(ring[i])
		b := t.mustLoc(ring[(i+1)%n])
		sum += a.X*b.Y - b.X*a.Y
	}

	return sum / 2
}

func centroidOf(t *Tree, ring []Handle) geom.Vec {
	var sum geom.Vec
	for _, h := range ring {
		sum = geom.Add(sum, t.mustLoc(h))
	}
	if len(ring) == 0 {
		return sum
	}

	return geom.Scale(sum, 1/float64(len(ring)))
}

func ringPaths(t *Tree, ring []Handle) []Handle {
	out := make([]Handle, 0, len(ring))
	n := len(ring)
	for i := 0; i < n; i++ {
		if h, _, ok := t.pathHandleBetween(ring[i], ring[(i+1)%n]); ok {
			out = append(out, h)
		}
	}

	return out
}

func ringKey(ring []Handle) string {
	if len(ring) == 0 {
		return ""
	}
	minI := 0
	for i, h := range ring {
		if h.idx < ring[minI].idx {
			minI = i
		}
	}
	rotated := append(append([]Handle{}, ring[minI:]...), ring[:minI]...)
	key := ""
	for _, h := range rotated {
		key += handleKey(h)
	}

	return key
}

func handleKey(h Handle) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 0, 16)
	for shift := 28; shift >= 0; shift -= 4 {
		buf = append(buf, hexDigits[(h.idx>>uint(shift))&0xF])
	}
	buf = append(buf, '-')

	return string(buf)
}

func reversed(hs []Handle) []Handle {
	out := make([]Handle, len(hs))
	for i, h := range hs {
		out[len(hs)-1-i] = h
	}

	return out
}

// cuDeleteInvalidPolys is step 11: delete every poly whose contents are
// stale relative to its ring nodes' current locations, whose ring is no
// longer convex CCW, whose ring path is no longer marked Polygon, or
// which encloses a non-ring leaf node.
func (t *Tree) cuDeleteInvalidPolys() {
	var dead []Handle
	t.polys.Each(func(h Handle, p *Poly) {
		if p.Sub {
			return
		}
		if !t.calcPolyIsValid(p) {
			dead = append(dead, h)
		}
	})
	for _, h := range dead {
		t.deletePolyCascade(h)
		t.polysChanged = true
	}
}

func (t *Tree) calcPolyIsValid(p *Poly) bool {
	if len(p.RingNodes) < 3 {
		return false
	}
	ring := make([]geom.Vec, len(p.RingNodes))
	for i, h := range p.RingNodes {
		n, ok := t.nodes.Get(h)
		if !ok {
			return false
		}
		ring[i] = n.Loc
	}
	if len(p.LastNodeLocs) == len(ring) {
		for i := range ring {
			if geom.Dist(ring[i], p.LastNodeLocs[i]) > geom.MoveTol() {
				return false
			}
		}
	}
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		c := ring[(i+2)%len(ring)]
		if !geom.AreCCW(a, b, c) {
			return false
		}
	}
	for _, ph := range p.RingPaths {
		path, ok := t.paths.Get(ph)
		if !ok || !path.Polygon {
			return false
		}
	}

	var enclosesForeignLeaf bool
	t.nodes.Each(func(h Handle, n *Node) {
		if enclosesForeignLeaf || !n.Leaf {
			return
		}
		for _, rh := range p.RingNodes {
			if rh == h {
				return
			}
		}
		if geom.ConvexEncloses(ring, n.Loc) {
			enclosesForeignLeaf = true
		}
	})

	return !enclosesForeignLeaf
}

// cuComputePolygonsValid is step 12: polygons_valid holds iff every leaf
// node has >=2 incident polygon paths and every polygon path has the
// right number of incident polys (exactly 1 if border, exactly 2 if
// interior).
func (t *Tree) cuComputePolygonsValid() {
	valid := true
	t.nodes.Each(func(h Handle, n *Node) {
		if n.Leaf && t.countIncidentPolygonPaths(h) < 2 {
			valid = false
		}
	})

	incidentCount := map[Handle]int{}
	t.polys.Each(func(_ Handle, p *Poly) {
		if p.Sub {
			return
		}
		for _, ph := range p.RingPaths {
			incidentCount[ph]++
		}
	})
	t.paths.Each(func(h Handle, p *Path) {
		if p.Sub || !p.Polygon {
			return
		}
		want := 2
		if p.Border {
			want = 1
		}
		if incidentCount[h] != want {
			valid = false
		}
	})

	t.PolygonsValid = valid
}
