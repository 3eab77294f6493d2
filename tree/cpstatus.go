package tree

import "github.com/katalvlaran/treemaker/geom"

// CPStatus summarises how far the cleanup pipeline got on its way to a
// complete crease pattern, in pipeline order: the first failed stage
// wins.
type CPStatus int

const (
	// StatusHasFullCP means every cleanup validity flag is set: the tree
	// carries a complete, ordered, coloured, MV-assigned crease pattern.
	StatusHasFullCP CPStatus = iota

	// StatusEdgesTooShort means at least one edge's rest length is below
	// MinEdgeLength.
	StatusEdgesTooShort

	// StatusPolysNotValid means the polygon network could not be
	// established (step 12 failed).
	StatusPolysNotValid

	// StatusPolysNotFilled means a poly's inset contents or creases
	// could not be built (step 15 failed).
	StatusPolysNotFilled

	// StatusPolysMultipleIBPs means a poly's ring carries more than one
	// maximal run of inactive border paths, a shape the insetting
	// construction cannot fold.
	StatusPolysMultipleIBPs

	// StatusVerticesLackDepth means at least one vertex was left with no
	// depth assignment (step 16 failed).
	StatusVerticesLackDepth

	// StatusFacetsNotValid means facet well-formedness or the even-
	// crease-count condition failed (step 18).
	StatusFacetsNotValid

	// StatusNotLocalRootConnectable means the facet ordering graph's
	// local-root networks could not be connected (step 20).
	StatusNotLocalRootConnectable
)

// HasFullCP reports whether all five cleanup validity flags are set,
// i.e. the tree currently carries a complete crease pattern.
func (t *Tree) HasFullCP() bool {
	return t.PolygonsValid && t.PolygonsFilled &&
		t.VertexDepthValid && t.FacetDataValid && t.LocalRootConnectable
}

// GetCPStatus reports the first pipeline stage that blocked a complete
// crease pattern, along with the handles of the offending parts (edges
// for StatusEdgesTooShort, polys for StatusPolysNotFilled and
// StatusPolysMultipleIBPs, and so on; empty when the stage has no
// natural part list).
func (t *Tree) GetCPStatus() (CPStatus, []Handle) {
	var short []Handle
	t.edges.Each(func(h Handle, e *Edge) {
		if e.Length < geom.MinEdgeLength() {
			short = append(short, h)
		}
	})
	if len(short) > 0 {
		return StatusEdgesTooShort, short
	}

	if !t.PolygonsValid {
		var bad []Handle
		t.nodes.Each(func(h Handle, n *Node) {
			if n.Leaf && t.countIncidentPolygonPaths(h) < 2 {
				bad = append(bad, h)
			}
		})

		return StatusPolysNotValid, bad
	}

	if !t.PolygonsFilled {
		var bad []Handle
		t.polys.Each(func(h Handle, p *Poly) {
			if !p.Sub && (len(p.SubNodes) == 0 || len(p.Facets) == 0) {
				bad = append(bad, h)
			}
		})
		// A build that failed on a poly with several separated runs of
		// inactive border paths gets the more specific diagnosis.
		if multi := t.polysWithMultipleIBPs(); len(multi) > 0 {
			return StatusPolysMultipleIBPs, multi
		}

		return StatusPolysNotFilled, bad
	}

	if !t.VertexDepthValid {
		return StatusVerticesLackDepth, nil
	}

	if !t.FacetDataValid {
		var bad []Handle
		t.facets.Each(func(h Handle, f *Facet) {
			if !f.WellFormed {
				bad = append(bad, h)
			}
		})

		return StatusFacetsNotValid, bad
	}

	if !t.LocalRootConnectable {
		return StatusNotLocalRootConnectable, t.LocalRootDiagnosticVertices
	}

	return StatusHasFullCP, nil
}

// polysWithMultipleIBPs returns every top-level poly whose ring contains
// more than one maximal cyclic run of inactive border paths.
func (t *Tree) polysWithMultipleIBPs() []Handle {
	var out []Handle
	t.polys.Each(func(h Handle, p *Poly) {
		if p.Sub {
			return
		}
		n := len(p.RingPaths)
		if n == 0 {
			return
		}
		isIBP := make([]bool, n)
		any := false
		for i, ph := range p.RingPaths {
			if path, ok := t.paths.Get(ph); ok && path.Border && !path.Active {
				isIBP[i] = true
				any = true
			}
		}
		if !any {
			return
		}
		runs := 0
		for i := 0; i < n; i++ {
			if isIBP[i] && !isIBP[(i-1+n)%n] {
				runs++
			}
		}
		if runs == 0 {
			// Every ring path inactive-border: one cyclic run.
			runs = 1
		}
		if runs > 1 {
			out = append(out, h)
		}
	})

	return out
}
