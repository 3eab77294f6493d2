package depth

import (
	"github.com/katalvlaran/treemaker/assign"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// ValidateFacets is cleanup step 18: every facet must be the well-formed
// ring package crease built it as, and every non-border vertex must
// carry an even number of creases, the cheap structural necessary
// condition for local flat-foldability Maekawa's theorem gives us
// (mountain count minus valley count is always +-2 at a flat-foldable
// interior vertex, so the total crease count there is always even).
func (Builder) ValidateFacets(t *tree.Tree) (bool, error) {
	ok := true
	for _, fh := range t.FacetHandles() {
		f, found := t.Facet(fh)
		if !found {
			continue
		}
		if !f.WellFormed || len(f.Vertices) < 3 || len(f.Vertices) != len(f.Creases) {
			ok = false
		}
	}
	for _, vh := range t.VertexHandles() {
		v, found := t.Vertex(vh)
		if !found || v.Border {
			continue
		}
		if len(v.Creases)%2 != 0 {
			ok = false
		}
	}

	return ok, nil
}

// TagCorridors is cleanup step 19: tag every facet with the tree edge
// whose corridor contains it. The facet's bottom crease lies on a
// structural path; the bottom's midpoint arc, carried up the outset
// chain to the top-level tree path, lands inside exactly one of that
// path's edges.
func (Builder) TagCorridors(t *tree.Tree) error {
	for _, fh := range t.FacetHandles() {
		f, ok := t.Facet(fh)
		if !ok || !f.WellFormed || len(f.Creases) == 0 {
			continue
		}
		bottom, ok := t.Crease(f.Creases[0])
		if !ok || bottom.Owner.IsPoly {
			continue
		}
		p, ok := t.Path(bottom.Owner.Path)
		if !ok {
			continue
		}
		mid := geom.Scale(geom.Add(t.MustVertexLoc(bottom.V1), t.MustVertexLoc(bottom.V2)), 0.5)
		arc := geom.Dist(t.MustLoc(p.Front), mid)

		// Carry the arc up to the maximally outset tree path.
		cur := p
		for cur.IsInset {
			arc += cur.FrontReduction
			outset, found := t.Path(cur.Outset)
			if !found {
				break
			}
			cur = outset
		}

		f.CorridorEdge = edgeAtArc(t, cur, arc)
	}

	return nil
}

// edgeAtArc walks a tree path's edges, accumulating strained scaled
// lengths, and returns the edge containing the given arc from the
// path's front (the last edge if the arc overshoots).
func edgeAtArc(t *tree.Tree, p *tree.Path, arc float64) tree.Handle {
	var last tree.Handle
	acc := 0.0
	for _, eh := range p.Edges {
		e, ok := t.Edge(eh)
		if !ok {
			continue
		}
		last = eh
		acc += e.ScaledLength(t)
		if arc <= acc {
			return eh
		}
	}

	return last
}

// BuildOrderingDAG is cleanup step 20. Per molecule, the axial loop with
// its corridor crossings gives the local facet ordering; the local-root
// networks are then identified and verified (exactly one at discrete
// depth 0, every deeper one connectable -- else the offending networks'
// parts go into the tree's diagnostics and the step fails); each
// network's cc2-st2 vertices splice their surrounding loop pieces; the
// depth-0 network absorbs the rest at shared axial vertices; and one
// link is broken to leave a single-source, single-sink ordering graph,
// which assign.Order then numbers.
func (Builder) BuildOrderingDAG(t *tree.Tree) (bool, error) {
	networks := analyzeLocalRoots(t)
	if len(networks) == 0 {
		return false, nil
	}

	var global *rootNetwork
	var others []*rootNetwork
	numZero := 0
	connectable := true
	for _, net := range networks {
		if net.depth == 0 {
			numZero++
			if global == nil {
				global = net
			}
		} else if !net.connectable {
			connectable = false
		}
	}
	if numZero != 1 || !connectable {
		for _, net := range networks {
			switch {
			case net.depth == 0 && numZero > 1:
				t.LocalRootDiagnosticVertices = append(t.LocalRootDiagnosticVertices, net.vertices...)
				t.LocalRootDiagnosticCreases = append(t.LocalRootDiagnosticCreases, net.creases...)
			case net.depth != 0 && !net.connectable:
				t.LocalRootDiagnosticVertices = append(t.LocalRootDiagnosticVertices, net.vertices...)
				t.LocalRootDiagnosticCreases = append(t.LocalRootDiagnosticCreases, net.creases...)
			}
		}

		return false, nil
	}
	for _, net := range networks {
		if net != global {
			others = append(others, net)
		}
	}

	for _, fh := range t.FacetHandles() {
		if f, ok := t.Facet(fh); ok {
			f.Head = nil
			f.Tail = nil
		}
	}
	for _, ph := range t.Polys() {
		if p, ok := t.Poly(ph); ok && !p.Sub {
			calcLocalFacetOrder(t, ph)
		}
	}

	for _, net := range networks {
		connectFacetGraph(t, net)
	}
	absorb(t, global, others)
	breakOneLink(t, global)

	if err := assign.Order(t); err != nil {
		return false, err
	}

	return true, nil
}
