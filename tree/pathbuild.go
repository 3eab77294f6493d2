package tree

// parentInfo is a BFS parent pointer plus depth, used by rebuildAllPaths
// and walkBetween to reconstruct the unique walk between any two nodes.
type parentInfo struct {
	parent     Handle
	parentEdge Handle
	depth      int
	hasParent  bool
}

// rebuildAllPaths regenerates every top-level Path so that, per the
// path-count invariant, exactly |N|*(|N|-1)/2 exist: one between every
// pair of tree nodes. A tree (N-1 edges, connected, acyclic) has exactly
// one simple walk between any two nodes, found here via a single BFS
// giving parent pointers and depths, then an LCA walk per pair.
func (t *Tree) rebuildAllPaths() {
	for _, h := range t.paths.Handles() {
		if p, ok := t.paths.Get(h); ok && !p.Sub {
			t.paths.Delete(h)
		}
	}

	nodes := t.nodes.Handles()
	if len(nodes) == 0 {
		return
	}

	info := make(map[Handle]parentInfo, len(nodes))
	root := nodes[0]
	info[root] = parentInfo{}

	queue := []Handle{root}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		n, ok := t.nodes.Get(h)
		if !ok {
			continue
		}
		for _, eh := range n.Edges {
			e, ok := t.edges.Get(eh)
			if !ok {
				continue
			}
			other := e.N1
			if other == h {
				other = e.N2
			}
			if _, seen := info[other]; seen {
				continue
			}
			info[other] = parentInfo{parent: h, parentEdge: eh, depth: info[h].depth + 1, hasParent: true}
			queue = append(queue, other)
		}
	}

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			nodesWalk, edgesWalk := walkBetween(info, a, b)
			p := Path{Front: a, Back: b, Nodes: nodesWalk, Edges: edgesWalk}
			t.paths.New(p)
		}
	}
}

// walkBetween reconstructs the unique tree walk between a and b from BFS
// parent pointers, returning the node and edge sequences from a to b
// inclusive of both endpoints (nodes) and the len(nodes)-1 edges between
// them.
func walkBetween(info map[Handle]parentInfo, a, b Handle) ([]Handle, []Handle) {
	upA := []Handle{a}
	upAEdges := []Handle{}
	upB := []Handle{b}
	upBEdges := []Handle{}

	ia, ib := a, b
	for info[ia].depth > info[ib].depth {
		upAEdges = append(upAEdges, info[ia].parentEdge)
		ia = info[ia].parent
		upA = append(upA, ia)
	}
	for info[ib].depth > info[ia].depth {
		upBEdges = append(upBEdges, info[ib].parentEdge)
		ib = info[ib].parent
		upB = append(upB, ib)
	}
	for ia != ib {
		upAEdges = append(upAEdges, info[ia].parentEdge)
		ia = info[ia].parent
		upA = append(upA, ia)

		upBEdges = append(upBEdges, info[ib].parentEdge)
		ib = info[ib].parent
		upB = append(upB, ib)
	}

	// upA: a -> ... -> lca ; upB: b -> ... -> lca. Path a->b is
	// upA (forward) + reverse(upB minus its last element, the lca).
	nodes := append([]Handle{}, upA...)
	for k := len(upB) - 2; k >= 0; k-- {
		nodes = append(nodes, upB[k])
	}

	edges := append([]Handle{}, upAEdges...)
	for k := len(upBEdges) - 1; k >= 0; k-- {
		edges = append(edges, upBEdges[k])
	}

	return nodes, edges
}
