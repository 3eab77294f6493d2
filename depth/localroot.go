package depth

import (
	"sort"

	"github.com/katalvlaran/treemaker/tree"
)

// rootNetwork is one connected component of the graph of local-root
// vertices and local-root hinge creases, together with its spanning tree
// and the degree classification of its axial vertices.
type rootNetwork struct {
	depth       int
	connectable bool

	vertices []tree.Handle
	creases  []tree.Handle
	polys    []tree.Handle // top-level polys the component touches

	stCreases map[tree.Handle]bool

	cc0, cc1, cc2st1, cc2st2 []tree.Handle
}

// analyzeLocalRoots recomputes every top-level poly's local-root
// vertices and creases (the minimum-discrete-depth vertices of its
// molecule and the hinge creases joining them), then groups them into
// connected components across the whole tree -- pseudohinge mates
// collapse into one component -- builds each component's spanning tree,
// and classifies its axial vertices by degree.
func analyzeLocalRoots(t *tree.Tree) []*rootNetwork {
	localRoot := map[tree.Handle]bool{}
	eligibleCrease := map[tree.Handle]bool{}
	creaseTop := map[tree.Handle]tree.Handle{}

	var tops []tree.Handle
	for _, ph := range t.Polys() {
		p, ok := t.Poly(ph)
		if !ok || p.Sub {
			continue
		}
		tops = append(tops, ph)

		// Vertices of the molecule: the endpoints of its hinge and ridge
		// creases, plus the ring corners.
		var verts []tree.Handle
		seen := map[tree.Handle]bool{}
		add := func(vh tree.Handle) {
			if vh.Valid() && !seen[vh] {
				seen[vh] = true
				verts = append(verts, vh)
			}
		}
		for _, ch := range p.Creases {
			c, ok := t.Crease(ch)
			if !ok || (!isHinge(c.Kind) && c.Kind != tree.CreaseRidge) {
				continue
			}
			creaseTop[ch] = ph
			add(c.V1)
			add(c.V2)
		}
		for _, rn := range p.RingNodes {
			if n, ok := t.Node(rn); ok {
				add(n.Vertex)
			}
		}

		minDepth := -1
		for _, vh := range verts {
			v, ok := t.Vertex(vh)
			if !ok || v.DiscreteDepth < 0 {
				continue
			}
			if minDepth < 0 || v.DiscreteDepth < minDepth {
				minDepth = v.DiscreteDepth
			}
		}
		p.LocalRootVertices = nil
		p.LocalRootCreases = nil
		if minDepth < 0 {
			continue
		}
		for _, vh := range verts {
			if v, ok := t.Vertex(vh); ok && v.DiscreteDepth == minDepth {
				p.LocalRootVertices = append(p.LocalRootVertices, vh)
				localRoot[vh] = true
			}
		}
		sort.Slice(p.LocalRootVertices, func(i, j int) bool {
			return p.LocalRootVertices[i].Less(p.LocalRootVertices[j])
		})
	}

	// Local-root creases: hinge creases both of whose endpoints are
	// local-root vertices.
	for _, ph := range tops {
		p, ok := t.Poly(ph)
		if !ok {
			continue
		}
		for _, ch := range p.Creases {
			c, ok := t.Crease(ch)
			if !ok || !isHinge(c.Kind) {
				continue
			}
			if localRoot[c.V1] && localRoot[c.V2] {
				eligibleCrease[ch] = true
				p.LocalRootCreases = append(p.LocalRootCreases, ch)
			}
		}
	}

	// Flood the connected components: a vertex pulls in its eligible
	// hinge creases, their far vertices, and its pseudohinge mates.
	visited := map[tree.Handle]bool{}
	var networks []*rootNetwork

	var flood func(net *rootNetwork, vh tree.Handle)
	flood = func(net *rootNetwork, vh tree.Handle) {
		if visited[vh] || !localRoot[vh] {
			return
		}
		visited[vh] = true
		net.vertices = append(net.vertices, vh)
		v, ok := t.Vertex(vh)
		if !ok {
			return
		}
		if v.DiscreteDepth >= 0 && (net.depth < 0 || v.DiscreteDepth < net.depth) {
			net.depth = v.DiscreteDepth
		}
		for _, ch := range v.Creases {
			if !eligibleCrease[ch] || containsHandle(net.creases, ch) {
				continue
			}
			c, ok := t.Crease(ch)
			if !ok {
				continue
			}
			net.creases = append(net.creases, ch)
			if top, ok := creaseTop[ch]; ok && !containsHandle(net.polys, top) {
				net.polys = append(net.polys, top)
			}
			other := c.V1
			if other == vh {
				other = c.V2
			}
			flood(net, other)
		}
		flood(net, v.LeftPseudohingeMate)
		flood(net, v.RightPseudohingeMate)

		// A local-root vertex projecting a leaf node is the root-as-leaf
		// case: no creases extend into its polys from here, so pull in
		// the owners of its incident ridge creases directly.
		if v.HasTreeNode {
			if n, ok := t.Node(v.TreeNode); ok && n.Leaf {
				for _, ch := range v.Creases {
					c, ok := t.Crease(ch)
					if !ok || c.Kind != tree.CreaseRidge {
						continue
					}
					if top, ok := creaseTop[ch]; ok && !containsHandle(net.polys, top) {
						net.polys = append(net.polys, top)
					}
				}
			}
		}
	}

	var roots []tree.Handle
	for vh := range localRoot {
		roots = append(roots, vh)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Less(roots[j]) })
	for _, vh := range roots {
		if visited[vh] {
			continue
		}
		net := &rootNetwork{depth: -1}
		flood(net, vh)
		networks = append(networks, net)
	}

	for _, net := range networks {
		buildSpanningTree(t, net)
		classifyByDegree(t, net)
	}

	return networks
}

// buildSpanningTree floods the component again, this time admitting a
// crease only while at least one of its endpoints is still outside the
// tree, which leaves exactly the creases of a spanning tree marked.
func buildSpanningTree(t *tree.Tree, net *rootNetwork) {
	net.stCreases = map[tree.Handle]bool{}
	if len(net.vertices) == 0 {
		return
	}
	inCC := map[tree.Handle]bool{}
	for _, ch := range net.creases {
		inCC[ch] = true
	}
	stVertex := map[tree.Handle]bool{}

	var visit func(vh tree.Handle)
	visit = func(vh tree.Handle) {
		if stVertex[vh] {
			return
		}
		stVertex[vh] = true
		v, ok := t.Vertex(vh)
		if !ok {
			return
		}
		for _, ch := range v.Creases {
			if !inCC[ch] || net.stCreases[ch] {
				continue
			}
			c, ok := t.Crease(ch)
			if !ok {
				continue
			}
			if stVertex[c.V1] && stVertex[c.V2] {
				continue
			}
			net.stCreases[ch] = true
			visit(c.V1)
			visit(c.V2)
		}
		if v.LeftPseudohingeMate.Valid() && containsHandle(net.vertices, v.LeftPseudohingeMate) {
			visit(v.LeftPseudohingeMate)
		}
		if v.RightPseudohingeMate.Valid() && containsHandle(net.vertices, v.RightPseudohingeMate) {
			visit(v.RightPseudohingeMate)
		}
	}
	visit(net.vertices[0])
}

// classifyByDegree sorts the component's axial vertices into the cc0,
// cc1, cc2-st1, and cc2-st2 classes, and notes whether any vertex can
// serve as an attachment point for another polygon cluster (two incident
// hinge creases, one of them in the component).
func classifyByDegree(t *tree.Tree, net *rootNetwork) {
	inCC := map[tree.Handle]bool{}
	for _, ch := range net.creases {
		inCC[ch] = true
	}
	for _, vh := range net.vertices {
		v, ok := t.Vertex(vh)
		if !ok || !isAxialVertex(t, v) {
			continue
		}
		ccDeg, stDeg, hingeDeg := 0, 0, 0
		for _, ch := range v.Creases {
			c, ok := t.Crease(ch)
			if !ok {
				continue
			}
			if isHinge(c.Kind) {
				hingeDeg++
			}
			if inCC[ch] {
				ccDeg++
			}
			if net.stCreases[ch] {
				stDeg++
			}
		}
		switch ccDeg {
		case 0:
			net.cc0 = append(net.cc0, vh)
		case 1:
			net.cc1 = append(net.cc1, vh)
		case 2:
			if stDeg == 1 {
				net.cc2st1 = append(net.cc2st1, vh)
			} else {
				net.cc2st2 = append(net.cc2st2, vh)
			}
		default:
			panic("depth: axial vertex with more than two local-root hinge creases")
		}
		net.connectable = net.connectable || (hingeDeg == 2 && ccDeg == 1)
	}
}

// isAxialVertex reports whether v lies on an axial crease.
func isAxialVertex(t *tree.Tree, v *tree.Vertex) bool {
	for _, ch := range v.Creases {
		if c, ok := t.Crease(ch); ok && c.Kind == tree.CreaseAxial {
			return true
		}
	}

	return false
}
