package crease

import (
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// buildUpwardHinges propagates hinges up from an active band: for each
// vertex on the band's path, the perpendicular to the band through the
// vertex is intersected with every segment of the band's ridgeline; a
// hit creates (or reuses) a ridge-side vertex on that segment's
// sub-path, carrying the same tree node as the foot below it, joined to
// the foot by an UnfoldedHinge crease. A hit at a ridge node itself
// resolves to the node's own vertex, which then inherits the tree node;
// that inheritance is what later stitches the local-root networks
// together.
func (b *builder) buildUpwardHinges(bd band) {
	nodes, paths := RidgelineNodesAndPaths(b.t, bd.poly, bd.ringIndex)
	if len(nodes) < 2 || len(paths) != len(nodes)-1 {
		return
	}

	frontLoc := b.t.MustLoc(bd.front)
	backLoc := b.t.MustLoc(bd.back)
	axis, ok := geom.Normalize(geom.Sub(backLoc, frontLoc))
	if !ok {
		return
	}
	perp := geom.RotateCCW90(axis)

	feet := append([]foot{}, b.pathVerts[bd.path]...)
	for _, f := range feet {
		fv, ok := b.t.Vertex(f.vertex)
		if !ok {
			continue
		}
		for k := 0; k+1 < len(nodes); k++ {
			q1 := b.t.MustLoc(nodes[k])
			q2 := b.t.MustLoc(nodes[k+1])
			hit, ok := perpendicularHit(fv.Loc, perp, q1, q2)
			if !ok {
				continue
			}
			top, ok := b.vertexOnPath(paths[k], bd.top, hit, fv.TreeNode)
			if !ok || top == f.vertex {
				continue
			}
			b.getOrMakeCrease(bd.top, f.vertex, top, tree.CreaseUnfoldedHinge,
				tree.CreaseOwner{IsPoly: true, Poly: bd.top})
		}
	}
}

// perpendicularHit intersects the line through p along dir with the
// segment (q1, q2), reporting the intersection point when it falls
// within the segment (endpoints included) on the interior side of the
// band.
func perpendicularHit(p, dir, q1, q2 geom.Vec) (geom.Vec, bool) {
	tq, tp, ok := geom.LineIntersect(q1, q2, p, geom.Add(p, dir))
	if !ok {
		return geom.Vec{}, false
	}
	segLen := geom.Dist(q1, q2)
	if segLen < geom.DistTol() {
		return geom.Vec{}, false
	}
	slack := geom.VertexSameTol() / segLen
	if tq < -slack || tq > 1+slack {
		return geom.Vec{}, false
	}
	if tp < 0 {
		return geom.Vec{}, false
	}

	return geom.Lerp(q1, q2, geom.ClampF(tq, 0, 1)), true
}

// buildDownwardHinges propagates hinges down from the ridgeline of an
// inactive axial band onto the band's path. Only some ridgeline vertices
// drop a hinge: one that projects a tree node gets a regular hinge; one
// that projects no tree node but whose neighbours both project the same
// tree node gets a pseudohinge. Whenever the three most recent creases
// form a regular-pseudo-regular triplet, the two regular feet record
// each other as pseudohinge mates.
func (b *builder) buildDownwardHinges(bd band, ridge []tree.Handle) {
	if len(ridge) < 3 {
		return
	}
	frontLoc := b.t.MustLoc(bd.front)
	backLoc := b.t.MustLoc(bd.back)
	segLen := geom.Dist(frontLoc, backLoc)
	if segLen < geom.DistTol() {
		return
	}
	axis := geom.Scale(geom.Sub(backLoc, frontLoc), 1/segLen)
	margin := geom.VertexSameTol() / segLen

	var crease0, crease1, crease2 tree.Handle
	for m := 1; m+1 < len(ridge); m++ {
		rv, ok := b.t.Vertex(ridge[m])
		if !ok {
			continue
		}
		kind := tree.CreaseUnfoldedHinge
		switch {
		case rv.HasTreeNode:
		default:
			prev, okP := b.t.Vertex(ridge[m-1])
			next, okN := b.t.Vertex(ridge[m+1])
			if !okP || !okN || !prev.HasTreeNode || !next.HasTreeNode ||
				prev.TreeNode != next.TreeNode {
				continue
			}
			kind = tree.CreasePseudohinge
		}

		d := geom.Inner(geom.Sub(rv.Loc, frontLoc), axis)
		param := d / segLen
		if param <= margin || param >= 1-margin {
			continue
		}
		loc := geom.Add(frontLoc, geom.Scale(axis, d))
		bot, ok := b.vertexOnPath(bd.path, bd.top, loc, rv.TreeNode)
		if !ok {
			continue
		}
		crease2 = crease1
		crease1 = crease0
		crease0 = b.getOrMakeCrease(bd.top, bot, ridge[m], kind,
			tree.CreaseOwner{IsPoly: true, Poly: bd.top})

		b.recordPseudohingeMates(crease0, crease1, crease2)
	}
}

// recordPseudohingeMates marks the lower vertices of the two regular
// hinges flanking a pseudohinge as each other's mates, once the three
// most recent downward creases complete a triplet.
func (b *builder) recordPseudohingeMates(crease0, crease1, crease2 tree.Handle) {
	c0, ok0 := b.t.Crease(crease0)
	c1, ok1 := b.t.Crease(crease1)
	c2, ok2 := b.t.Crease(crease2)
	if !ok0 || !ok1 || !ok2 {
		return
	}
	if c0.Kind != tree.CreaseUnfoldedHinge || c1.Kind != tree.CreasePseudohinge ||
		c2.Kind != tree.CreaseUnfoldedHinge {
		return
	}
	mate0, ok0 := b.t.Vertex(c0.V1)
	mate2, ok2 := b.t.Vertex(c2.V1)
	if !ok0 || !ok2 {
		return
	}
	mate0.RightPseudohingeMate = c2.V1
	mate2.LeftPseudohingeMate = c0.V1
}
