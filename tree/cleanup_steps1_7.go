package tree

import "github.com/katalvlaran/treemaker/geom"

// cuInvalidateFlags is step 1: invalidate every tree-wide status flag to
// false; the remaining steps recompute them (or leave them false if a
// step aborts the pipeline early).
func (t *Tree) cuInvalidateFlags() {
	t.Feasible = false
	t.PolygonsValid = false
	t.PolygonsFilled = false
	t.VertexDepthValid = false
	t.FacetDataValid = false
	t.LocalRootConnectable = false
	t.LocalRootDiagnosticVertices = nil
	t.LocalRootDiagnosticCreases = nil
}

// cuDeleteInvalidConditions is step 2: delete every condition whose
// IsValid is false because a part it referenced was removed.
func (t *Tree) cuDeleteInvalidConditions() {
	var dead []Handle
	t.conditions.Each(func(h Handle, c *Condition) {
		if !(*c).IsValid(t) {
			dead = append(dead, h)
		}
	})
	for _, h := range dead {
		t.conditions.Delete(h)
	}
}

// cuClampAndClearNodeFlags is step 3: clamp every node's location into
// the paper rectangle and clear its border/pinned/polygon/conditioned
// flags (recomputed by later steps).
func (t *Tree) cuClampAndClearNodeFlags() {
	t.nodes.Each(func(_ Handle, n *Node) {
		n.Loc.X = geom.ClampF(n.Loc.X, 0, t.Width)
		n.Loc.Y = geom.ClampF(n.Loc.Y, 0, t.Height)
		n.Border = false
		n.Pinned = false
		n.Polygon = false
		n.Conditioned = false
	})
}

// cuClearEdgeFlags is step 4: clear every edge's pinned/conditioned
// flags.
func (t *Tree) cuClearEdgeFlags() {
	t.edges.Each(func(_ Handle, e *Edge) {
		e.Pinned = false
		e.Conditioned = false
	})
}

// feasibilityEps1/2 are the path feasibility tolerances: a path is feasible iff
// actPaper >= minPaper - eps1, and active iff |actPaper-minPaper| < eps2.
const (
	feasibilityEps1 = 1e-5
	feasibilityEps2 = 1e-4
)

// cuPathLengthsAndFeasibility is step 5: collect leaf nodes/paths,
// recompute every top-level path's feasibility/activity, and clear
// border/polygon/conditioned on every path. Returns false if the tree
// has no nodes (nothing further to do this edit).
func (t *Tree) cuPathLengthsAndFeasibility() bool {
	if t.nodes.Len() == 0 {
		return false
	}
	t.recomputeLeafCaches()

	t.paths.Each(func(_ Handle, p *Path) {
		if p.Sub {
			return
		}
		minPaper := p.MinPaper(t)
		actPaper := p.ActPaper(t)
		p.Feasible = actPaper >= minPaper-feasibilityEps1
		p.Active = absf(actPaper-minPaper) < feasibilityEps2
		p.Border = false
		p.Polygon = false
		p.Conditioned = false
	})

	return true
}

// recomputeLeafCaches recomputes every node's Leaf flag (exactly one
// incident edge) and LeafPaths cache (paths whose front or back is this
// leaf node).
func (t *Tree) recomputeLeafCaches() {
	t.nodes.Each(func(_ Handle, n *Node) {
		n.Leaf = len(n.Edges) == 1
		n.LeafPaths = n.LeafPaths[:0]
	})
	t.paths.Each(func(h Handle, p *Path) {
		if p.Sub {
			return
		}
		front, ok1 := t.nodes.Get(p.Front)
		back, ok2 := t.nodes.Get(p.Back)
		p.Leaf = ok1 && ok2 && front.Leaf && back.Leaf
		if ok1 && front.Leaf {
			front.LeafPaths = append(front.LeafPaths, h)
		}
		if ok2 && back.Leaf {
			back.LeafPaths = append(back.LeafPaths, h)
		}
	})
}

// cuComputeFeasible is step 6: the tree is feasible iff every leaf path
// is feasible and every condition is feasible.
func (t *Tree) cuComputeFeasible() {
	feasible := true
	t.paths.Each(func(_ Handle, p *Path) {
		if p.Leaf && !p.Feasible {
			feasible = false
		}
	})
	t.conditions.Each(func(_ Handle, c *Condition) {
		if !(*c).ComputeFeasibility(t) {
			feasible = false
		}
	})
	t.Feasible = feasible
}

// cuPropagateConditioned is step 7: for every condition, mark the parts
// it uses as conditioned.
func (t *Tree) cuPropagateConditioned() {
	t.conditions.Each(func(_ Handle, c *Condition) {
		t.nodes.Each(func(h Handle, n *Node) {
			if (*c).Uses(h) {
				n.Conditioned = true
			}
		})
		t.edges.Each(func(h Handle, e *Edge) {
			if (*c).Uses(h) {
				e.Conditioned = true
			}
		})
		t.paths.Each(func(h Handle, p *Path) {
			if (*c).Uses(h) {
				p.Conditioned = true
			}
		})
	})
}
