package crease

import (
	"sort"

	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// buildFacets runs BuildFacetsFromCreases for one top-level poly: a
// planarity check over its full crease set, then the CCW walk that
// traces every bounded region, creates a Facet for it, links each
// traversed crease's forward/backward facet pointer, and rotates the
// facet so an axial-or-gusset crease sits at index 0 (the "bottom").
func (b *builder) buildFacets(top tree.Handle) error {
	creases := b.topCreases[top]
	if err := planarityCheck(b.t, creases); err != nil {
		return err
	}

	type arc struct {
		crease tree.Handle
		to     tree.Handle
	}
	adj := map[tree.Handle][]arc{}
	for _, ch := range creases {
		c, ok := b.t.Crease(ch)
		if !ok {
			continue
		}
		adj[c.V1] = append(adj[c.V1], arc{crease: ch, to: c.V2})
		adj[c.V2] = append(adj[c.V2], arc{crease: ch, to: c.V1})
	}
	for vh, arcs := range adj {
		loc := b.t.MustVertexLoc(vh)
		sort.SliceStable(arcs, func(i, j int) bool {
			ai := geom.Angle(geom.Sub(b.t.MustVertexLoc(arcs[i].to), loc))
			aj := geom.Angle(geom.Sub(b.t.MustVertexLoc(arcs[j].to), loc))

			return ai < aj
		})
		adj[vh] = arcs
	}

	type directed struct {
		crease tree.Handle
		from   tree.Handle
	}
	next := func(d directed) (directed, bool) {
		c, ok := b.t.Crease(d.crease)
		if !ok {
			return directed{}, false
		}
		to := c.V1
		if d.from == c.V1 {
			to = c.V2
		}
		arcs := adj[to]
		for i, a := range arcs {
			if a.crease == d.crease && a.to == d.from {
				n := arcs[(i-1+len(arcs))%len(arcs)]

				return directed{crease: n.crease, from: to}, true
			}
		}

		return directed{}, false
	}

	type tracedFace struct {
		vertices []tree.Handle
		creases  []tree.Handle
		area     float64
	}

	visited := map[directed]bool{}
	var faces []tracedFace
	for _, ch := range creases {
		c, ok := b.t.Crease(ch)
		if !ok {
			continue
		}
		for _, start := range []directed{{crease: ch, from: c.V1}, {crease: ch, from: c.V2}} {
			if visited[start] {
				continue
			}
			var verts, walkCreases []tree.Handle
			d := start
			closed := false
			for step := 0; step < len(creases)*2+4; step++ {
				if visited[d] {
					break
				}
				visited[d] = true
				verts = append(verts, d.from)
				walkCreases = append(walkCreases, d.crease)
				nd, ok := next(d)
				if !ok {
					break
				}
				d = nd
				if d == start {
					closed = true

					break
				}
			}
			if closed && len(verts) >= 3 {
				faces = append(faces, tracedFace{vertices: verts, creases: walkCreases, area: b.faceArea(verts)})
			}
		}
	}

	// The one face with the most negative area is the unbounded outer
	// region; everything else is a facet.
	outer := -1
	var outerArea float64
	for i, f := range faces {
		if f.area < outerArea {
			outerArea = f.area
			outer = i
		}
	}

	for i, f := range faces {
		if i == outer {
			continue
		}
		verts, walkCreases := f.vertices, f.creases
		if f.area < 0 {
			verts, walkCreases = reverseFace(verts, walkCreases)
		}
		fh := b.t.NewFacet(top, tree.Facet{})
		facet, _ := b.t.Facet(fh)
		facet.Vertices = verts
		facet.Creases = walkCreases
		facet.Centroid = b.faceCentroid(verts)
		rotateToBottom(b.t, facet)

		for _, ch := range walkCreases {
			c, ok := b.t.Crease(ch)
			if !ok {
				continue
			}
			if !c.HasForwardFacet {
				c.ForwardFacet = fh
				c.HasForwardFacet = true
			} else if !c.HasBackwardFacet && c.ForwardFacet != fh {
				c.BackwardFacet = fh
				c.HasBackwardFacet = true
			}
		}
	}

	return nil
}

func (b *builder) faceArea(verts []tree.Handle) float64 {
	var sum float64
	n := len(verts)
	for i := 0; i < n; i++ {
		p := b.t.MustVertexLoc(verts[i])
		q := b.t.MustVertexLoc(verts[(i+1)%n])
		sum += p.X*q.Y - q.X*p.Y
	}

	return sum / 2
}

func (b *builder) faceCentroid(verts []tree.Handle) geom.Vec {
	var sum geom.Vec
	for _, vh := range verts {
		sum = geom.Add(sum, b.t.MustVertexLoc(vh))
	}
	if len(verts) == 0 {
		return sum
	}

	return geom.Scale(sum, 1/float64(len(verts)))
}

// reverseFace flips a clockwise face to CCW, keeping the alignment
// invariant that creases[i] joins vertices[i] and vertices[i+1].
func reverseFace(verts, creases []tree.Handle) ([]tree.Handle, []tree.Handle) {
	n := len(verts)
	rv := make([]tree.Handle, n)
	for i, v := range verts {
		rv[n-1-i] = v
	}
	rc := make([]tree.Handle, n)
	for i, c := range creases {
		rc[n-1-i] = c
	}
	// The reversed crease list pairs creases[i] with vertices[i+1], so
	// rotate it left once to restore the vertices[i]-leads convention.
	rc = append(rc[1:], rc[0])

	return rv, rc
}

// rotateToBottom rotates the facet's rings so an axial-or-gusset crease
// sits at index 0; among several candidates (a shared interior path's
// passthrough vertex yields consecutive axial segments) the one nearest
// the paper axis, i.e. with the lowest mean endpoint elevation, is the
// bottom. A facet with no axial-or-gusset boundary at all is left
// unrotated and marked not well-formed.
func rotateToBottom(t *tree.Tree, f *tree.Facet) {
	best := -1
	var bestElev float64
	for i, ch := range f.Creases {
		c, ok := t.Crease(ch)
		if !ok {
			continue
		}
		if c.Kind != tree.CreaseAxial && c.Kind != tree.CreaseGusset {
			continue
		}
		elev := 0.0
		if v1, ok := t.Vertex(c.V1); ok {
			elev += v1.Elevation
		}
		if v2, ok := t.Vertex(c.V2); ok {
			elev += v2.Elevation
		}
		if best == -1 || elev < bestElev {
			best = i
			bestElev = elev
		}
	}
	if best == -1 {
		f.WellFormed = false

		return
	}

	f.Vertices = append(f.Vertices[best:], f.Vertices[:best]...)
	f.Creases = append(f.Creases[best:], f.Creases[:best]...)
	f.WellFormed = true
}

// planarityCheck verifies no two creases in the set cross in their
// interiors, the precondition for the facet walk.
// Creases sharing an endpoint are expected and excluded.
func planarityCheck(t *tree.Tree, creases []tree.Handle) error {
	segs := make([]segment, 0, len(creases))
	for _, ch := range creases {
		c, ok := t.Crease(ch)
		if !ok {
			continue
		}
		segs = append(segs, segment{a: t.MustVertexLoc(c.V1), b: t.MustVertexLoc(c.V2), v1: c.V1, v2: c.V2})
	}
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			if shareEndpoint(segs[i], segs[j]) {
				continue
			}
			if segmentsCross(segs[i], segs[j]) {
				return ErrNonPlanar
			}
		}
	}

	return nil
}

type segment struct {
	a, b   geom.Vec
	v1, v2 tree.Handle
}

func shareEndpoint(s1, s2 segment) bool {
	return s1.v1 == s2.v1 || s1.v1 == s2.v2 || s1.v2 == s2.v1 || s1.v2 == s2.v2
}

// segmentsCross reports whether two segments properly intersect, i.e.
// at a point interior to both, using the line-parameter test.
func segmentsCross(s1, s2 segment) bool {
	tp, tq, ok := geom.LineIntersect(s1.a, s1.b, s2.a, s2.b)
	if !ok {
		return false
	}

	return tp > geom.ConvexityTol() && tp < 1-geom.ConvexityTol() &&
		tq > geom.ConvexityTol() && tq < 1-geom.ConvexityTol()
}
