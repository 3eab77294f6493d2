package depth

import "github.com/katalvlaran/treemaker/tree"

// Facet-ordering-graph primitives. A link f -> g means g is stacked
// above f; the graph lives in Facet.Head/Tail.

func linkTo(t *tree.Tree, f, g tree.Handle) {
	ff, ok1 := t.Facet(f)
	gf, ok2 := t.Facet(g)
	if !ok1 || !ok2 || f == g {
		return
	}
	ff.Head = append(ff.Head, g)
	gf.Tail = append(gf.Tail, f)
}

func areLinked(t *tree.Tree, f, g tree.Handle) bool {
	ff, ok := t.Facet(f)
	if !ok {
		return false
	}

	return containsHandle(ff.Head, g) || containsHandle(ff.Tail, g)
}

func unlink(t *tree.Tree, f, g tree.Handle) {
	ff, ok1 := t.Facet(f)
	gf, ok2 := t.Facet(g)
	if !ok1 || !ok2 {
		return
	}
	if containsHandle(ff.Head, g) {
		ff.Head = removeHandle(ff.Head, g)
		gf.Tail = removeHandle(gf.Tail, f)

		return
	}
	ff.Tail = removeHandle(ff.Tail, g)
	gf.Head = removeHandle(gf.Head, f)
}

// link adds the edge between two facets in whichever direction keeps the
// graph sortable: the sink of the pair links to the source.
func link(t *tree.Tree, f, g tree.Handle) {
	ff, ok1 := t.Facet(f)
	gf, ok2 := t.Facet(g)
	if !ok1 || !ok2 {
		return
	}
	if len(ff.Tail) > 0 && len(ff.Head) == 0 {
		linkTo(t, f, g)

		return
	}
	if len(gf.Tail) > 0 && len(gf.Head) == 0 {
		linkTo(t, g, f)

		return
	}
	linkTo(t, f, g)
}

func containsHandle(hs []tree.Handle, h tree.Handle) bool {
	for _, c := range hs {
		if c == h {
			return true
		}
	}

	return false
}

func removeHandle(hs []tree.Handle, h tree.Handle) []tree.Handle {
	out := hs[:0]
	for _, c := range hs {
		if c != h {
			out = append(out, c)
		}
	}

	return out
}

// Facet geometry accessors, all relying on the well-formed rotation:
// creases[0] is the bottom, creases[1] the right side, the last crease
// the left side.

func bottomCrease(t *tree.Tree, fh tree.Handle) (tree.Handle, bool) {
	f, ok := t.Facet(fh)
	if !ok || !f.WellFormed || len(f.Creases) < 3 {
		return tree.Handle{}, false
	}

	return f.Creases[0], true
}

func rightCrease(t *tree.Tree, fh tree.Handle) (tree.Handle, bool) {
	f, ok := t.Facet(fh)
	if !ok || !f.WellFormed || len(f.Creases) < 3 {
		return tree.Handle{}, false
	}

	return f.Creases[1], true
}

func leftCrease(t *tree.Tree, fh tree.Handle) (tree.Handle, bool) {
	f, ok := t.Facet(fh)
	if !ok || !f.WellFormed || len(f.Creases) < 3 {
		return tree.Handle{}, false
	}

	return f.Creases[len(f.Creases)-1], true
}

// creaseLeftFacet returns the facet on the left of a hinge or ridge
// crease: the incident facet whose right crease it is.
func creaseLeftFacet(t *tree.Tree, ch tree.Handle) (tree.Handle, bool) {
	c, ok := t.Crease(ch)
	if !ok {
		return tree.Handle{}, false
	}
	if c.HasForwardFacet {
		if rc, ok := rightCrease(t, c.ForwardFacet); ok && rc == ch {
			return c.ForwardFacet, true
		}
	}
	if c.HasBackwardFacet {
		if rc, ok := rightCrease(t, c.BackwardFacet); ok && rc == ch {
			return c.BackwardFacet, true
		}
	}

	return tree.Handle{}, false
}

// creaseRightFacet returns the facet on the right of a hinge or ridge
// crease: the incident facet whose left crease it is.
func creaseRightFacet(t *tree.Tree, ch tree.Handle) (tree.Handle, bool) {
	c, ok := t.Crease(ch)
	if !ok {
		return tree.Handle{}, false
	}
	if c.HasForwardFacet {
		if lc, ok := leftCrease(t, c.ForwardFacet); ok && lc == ch {
			return c.ForwardFacet, true
		}
	}
	if c.HasBackwardFacet {
		if lc, ok := leftCrease(t, c.BackwardFacet); ok && lc == ch {
			return c.BackwardFacet, true
		}
	}

	return tree.Handle{}, false
}

func isPseudohingeFacet(t *tree.Tree, fh tree.Handle) bool {
	if lc, ok := leftCrease(t, fh); ok {
		if c, ok := t.Crease(lc); ok && c.Kind == tree.CreasePseudohinge {
			return true
		}
	}
	if rc, ok := rightCrease(t, fh); ok {
		if c, ok := t.Crease(rc); ok && c.Kind == tree.CreasePseudohinge {
			return true
		}
	}

	return false
}

// facetRightFacet returns the facet immediately CCW of fh along the
// axial loop.
func facetRightFacet(t *tree.Tree, fh tree.Handle) (tree.Handle, bool) {
	rc, ok := rightCrease(t, fh)
	if !ok {
		return tree.Handle{}, false
	}

	return creaseRightFacet(t, rc)
}

func facetLeftFacet(t *tree.Tree, fh tree.Handle) (tree.Handle, bool) {
	lc, ok := leftCrease(t, fh)
	if !ok {
		return tree.Handle{}, false
	}

	return creaseLeftFacet(t, lc)
}

// rightNonPseudohingeFacet walks right from fh until the facet is not a
// pseudohinge facet.
func rightNonPseudohingeFacet(t *tree.Tree, fh tree.Handle) (tree.Handle, bool) {
	cur, ok := facetRightFacet(t, fh)
	for guard := 0; ok && isPseudohingeFacet(t, cur); guard++ {
		if guard > len(t.FacetHandles()) {
			return tree.Handle{}, false
		}
		cur, ok = facetRightFacet(t, cur)
	}

	return cur, ok
}

func creaseLeftNonPseudohingeFacet(t *tree.Tree, ch tree.Handle) (tree.Handle, bool) {
	cur, ok := creaseLeftFacet(t, ch)
	for guard := 0; ok && isPseudohingeFacet(t, cur); guard++ {
		if guard > len(t.FacetHandles()) {
			return tree.Handle{}, false
		}
		cur, ok = facetLeftFacet(t, cur)
	}

	return cur, ok
}

func creaseRightNonPseudohingeFacet(t *tree.Tree, ch tree.Handle) (tree.Handle, bool) {
	cur, ok := creaseRightFacet(t, ch)
	for guard := 0; ok && isPseudohingeFacet(t, cur); guard++ {
		if guard > len(t.FacetHandles()) {
			return tree.Handle{}, false
		}
		cur, ok = facetRightFacet(t, cur)
	}

	return cur, ok
}

// hingeCreasesOf returns the first one or two hinge creases incident to
// the vertex.
func hingeCreasesOf(t *tree.Tree, vh tree.Handle) (c1, c2 tree.Handle) {
	v, ok := t.Vertex(vh)
	if !ok {
		return
	}
	for _, ch := range v.Creases {
		c, ok := t.Crease(ch)
		if !ok || !isHinge(c.Kind) {
			continue
		}
		if !c1.Valid() {
			c1 = ch
		} else if !c2.Valid() {
			c2 = ch

			return
		}
	}

	return
}

// swapLinks rewires the facet loop at an axial hinge vertex from running
// along the axial creases to running across them, splicing the loops on
// the two sides of the vertex together.
func swapLinks(t *tree.Tree, vh tree.Handle) {
	hinge1, hinge2 := hingeCreasesOf(t, vh)
	if !hinge1.Valid() || !hinge2.Valid() {
		return
	}
	facetA, okA := creaseLeftFacet(t, hinge1)
	facetB, okB := creaseRightFacet(t, hinge1)
	facetC, okC := creaseRightFacet(t, hinge2)
	facetD, okD := creaseLeftFacet(t, hinge2)
	if !okA || !okB || !okC || !okD {
		return
	}
	unlink(t, facetA, facetB)
	unlink(t, facetC, facetD)
	linkTo(t, facetA, facetC)
	linkTo(t, facetD, facetB)
}

// calcLocalFacetOrder builds the facet ordering within one top-level
// poly: a complete axial loop with corridor crossings launched at each
// facet. Breaking the loop at any local-root vertex later gives a valid
// ordering graph for the molecule.
func calcLocalFacetOrder(t *tree.Tree, top tree.Handle) {
	p, ok := t.Poly(top)
	if !ok {
		return
	}

	var startVertex tree.Handle
	for _, vh := range p.LocalRootVertices {
		if v, ok := t.Vertex(vh); ok && isAxialVertex(t, v) {
			startVertex = vh

			break
		}
	}
	var startFacet tree.Handle
	if startVertex.Valid() {
		if ch, ok := interiorCreaseAt(t, startVertex); ok {
			startFacet, _ = creaseRightNonPseudohingeFacet(t, ch)
		}
	}
	if !startFacet.Valid() {
		// No axial local-root vertex resolved a start; fall back to the
		// first well-formed axial-bottom facet of the molecule.
		for _, fh := range p.Facets {
			if bc, ok := bottomCrease(t, fh); ok {
				if c, ok := t.Crease(bc); ok && c.Kind == tree.CreaseAxial && !isPseudohingeFacet(t, fh) {
					startFacet = fh

					break
				}
			}
		}
	}
	if !startFacet.Valid() {
		return
	}

	cur := startFacet
	for guard := 0; guard <= len(p.Facets)+2; guard++ {
		next, ok := rightNonPseudohingeFacet(t, cur)
		if !ok {
			return
		}
		linkTo(t, cur, next)
		if bc, ok := bottomCrease(t, cur); ok {
			buildCorridorLinks(t, bc, cur)
		}
		cur = next
		if cur == startFacet {
			return
		}
	}
}

// interiorCreaseAt returns a hinge or ridge crease incident to the axial
// vertex, the crease the axial loop starts from.
func interiorCreaseAt(t *tree.Tree, vh tree.Handle) (tree.Handle, bool) {
	v, ok := t.Vertex(vh)
	if !ok {
		return tree.Handle{}, false
	}
	for _, ch := range v.Creases {
		c, ok := t.Crease(ch)
		if !ok {
			continue
		}
		if isHinge(c.Kind) || c.Kind == tree.CreaseRidge {
			return ch, true
		}
	}

	return tree.Handle{}, false
}

// buildCorridorLinks builds the orderings that run along corridors,
// sourced from fromFacet. Going up, the ordering propagates across every
// ridge crease of the facet (except the two the axial loop itself
// crosses); coming down, it propagates through a gusset bottom, stops at
// a regular axial bottom, and jumps sideways to the partner at a
// pseudohinge facet before climbing again.
func buildCorridorLinks(t *tree.Tree, fromCrease, fromFacet tree.Handle) {
	bc, ok := bottomCrease(t, fromFacet)
	if !ok {
		return
	}
	if bc == fromCrease {
		// Going up: propagate across every ridge crease of the facet.
		f, ok := t.Facet(fromFacet)
		if !ok {
			return
		}
		bcCrease, ok := t.Crease(bc)
		if !ok {
			return
		}
		for _, ch := range f.Creases[1:] {
			c, ok := t.Crease(ch)
			if !ok || c.Kind != tree.CreaseRidge {
				continue
			}
			next, ok := otherFacet(c, fromFacet)
			if !ok {
				continue
			}
			if bcCrease.Kind == tree.CreaseAxial {
				if lf, ok := facetLeftFacet(t, fromFacet); ok && next == lf {
					continue
				}
				if rf, ok := facetRightFacet(t, fromFacet); ok && next == rf {
					continue
				}
			}
			if areLinked(t, fromFacet, next) {
				continue
			}
			linkTo(t, fromFacet, next)
			buildCorridorLinks(t, ch, next)
		}

		return
	}

	bcCrease, ok := t.Crease(bc)
	if !ok {
		return
	}
	if bcCrease.Kind == tree.CreaseGusset {
		// Going down through a gusset bottom.
		next, ok := otherFacet(bcCrease, fromFacet)
		if !ok || areLinked(t, fromFacet, next) {
			return
		}
		linkTo(t, fromFacet, next)
		buildCorridorLinks(t, bc, next)

		return
	}

	// Going down onto an axial bottom: stop, unless this is a
	// pseudohinge facet, in which case jump sideways to the partner and
	// climb again.
	if !isPseudohingeFacet(t, fromFacet) {
		return
	}
	var next tree.Handle
	okNext := false
	if lc, ok := leftCrease(t, fromFacet); ok {
		if c, ok := t.Crease(lc); ok && c.Kind == tree.CreasePseudohinge {
			next, okNext = creaseLeftFacet(t, lc)
		}
	}
	if !okNext {
		if rc, ok := rightCrease(t, fromFacet); ok {
			if c, ok := t.Crease(rc); ok && c.Kind == tree.CreasePseudohinge {
				next, okNext = creaseRightFacet(t, rc)
			}
		}
	}
	if !okNext || areLinked(t, fromFacet, next) {
		return
	}
	linkTo(t, fromFacet, next)
	if nbc, ok := bottomCrease(t, next); ok {
		buildCorridorLinks(t, nbc, next)
	}
}

func otherFacet(c *tree.Crease, fh tree.Handle) (tree.Handle, bool) {
	if c.HasForwardFacet && c.ForwardFacet != fh {
		return c.ForwardFacet, true
	}
	if c.HasBackwardFacet && c.BackwardFacet != fh {
		return c.BackwardFacet, true
	}

	return tree.Handle{}, false
}

// connectFacetGraph splices the loop pieces around one component into a
// single loop (or, for the component holding a leaf-node root, a graph
// already missing one link so it stays sortable).
func connectFacetGraph(t *tree.Tree, net *rootNetwork) {
	if len(net.cc0) > 1 {
		panic("depth: more than one isolated local-root vertex in a component")
	}
	if len(net.cc0) == 1 {
		vh := net.cc0[0]
		v, ok := t.Vertex(vh)
		if !ok {
			return
		}
		// Unlink across all ridge creases at the vertex, then re-link
		// across the non-border axial creases -- all of them for a border
		// vertex, all but one for an interior vertex, so a loop gap
		// remains.
		for _, ch := range v.Creases {
			c, ok := t.Crease(ch)
			if !ok || c.Kind != tree.CreaseRidge {
				continue
			}
			if c.HasForwardFacet && c.HasBackwardFacet {
				unlink(t, c.ForwardFacet, c.BackwardFacet)
			}
		}
		needsSkip := !v.Border
		for _, ch := range v.Creases {
			c, ok := t.Crease(ch)
			if !ok || c.Kind != tree.CreaseAxial {
				continue
			}
			if !c.HasForwardFacet || !c.HasBackwardFacet {
				continue
			}
			if needsSkip {
				needsSkip = false

				continue
			}
			link(t, c.ForwardFacet, c.BackwardFacet)
		}

		return
	}

	for _, vh := range net.cc2st2 {
		swapLinks(t, vh)
	}
}

// absorb lets the depth-0 network take over every other network: a
// candidate is absorbable when one of its cc1 axial vertices lies on a
// ring path of a poly already reachable from the global network; the
// links are swapped at that vertex and the candidate's polys merge in.
// Failure to absorb every network is a program invariant violation, not
// user error.
func absorb(t *tree.Tree, global *rootNetwork, others []*rootNetwork) {
	pathVerts := vertsByPath(t)

	remaining := append([]*rootNetwork{}, others...)
	for len(remaining) > 0 {
		absorbed := -1
		for i, net := range remaining {
			vh, ok := canAbsorb(t, global, net, pathVerts)
			if !ok {
				continue
			}
			swapLinks(t, vh)
			for _, ph := range net.polys {
				if !containsHandle(global.polys, ph) {
					global.polys = append(global.polys, ph)
				}
			}
			absorbed = i

			break
		}
		if absorbed < 0 {
			panic("depth: local-root network survived absorption")
		}
		remaining = append(remaining[:absorbed], remaining[absorbed+1:]...)
	}
}

func canAbsorb(t *tree.Tree, global, net *rootNetwork, pathVerts map[tree.Handle][]tree.Handle) (tree.Handle, bool) {
	for _, ph := range global.polys {
		p, ok := t.Poly(ph)
		if !ok {
			continue
		}
		for _, rp := range p.RingPaths {
			for _, vh := range pathVerts[rp] {
				v, ok := t.Vertex(vh)
				if !ok || v.DiscreteDepth != net.depth {
					continue
				}
				if containsHandle(net.cc1, vh) {
					return vh, true
				}
			}
		}
	}

	return tree.Handle{}, false
}

// breakOneLink cuts a single link in the assembled loop, turning it into
// a sortable graph. A component whose root projects a leaf node already
// has its gap; otherwise the cut lands at a cc1 vertex's hinge, falling
// back to a cc2-st1 vertex.
func breakOneLink(t *tree.Tree, global *rootNetwork) {
	if len(global.cc0) > 0 {
		return
	}
	if len(global.cc1) > 0 {
		vh := global.cc1[0]
		hinge, _ := hingeCreasesOf(t, vh)
		if hinge.Valid() {
			lf, ok1 := creaseLeftNonPseudohingeFacet(t, hinge)
			rf, ok2 := creaseRightNonPseudohingeFacet(t, hinge)
			if ok1 && ok2 {
				unlink(t, lf, rf)

				return
			}
		}
	}
	if len(global.cc2st1) == 0 {
		panic("depth: no vertex eligible to break the facet ordering loop")
	}
	vh := global.cc2st1[0]
	hinge1, _ := hingeCreasesOf(t, vh)
	if c, ok := t.Crease(hinge1); ok && c.HasForwardFacet && c.HasBackwardFacet {
		unlink(t, c.ForwardFacet, c.BackwardFacet)
	}
}
