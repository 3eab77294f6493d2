package tree

import "github.com/katalvlaran/treemaker/geom"

// cuComputeBorder is step 8: the convex-hull walk. Starting from the
// leaf node closest to a tangent line below-left of the paper (smallest
// Y, ties broken by smallest X), walk CCW always taking the next leaf
// node with the smallest turning angle, breaking near-ties by distance
// (nearer first, so collinear border runs are visited node-by-node
// rather than jumped over). Marks every visited node Border and every
// leaf path between consecutive border nodes as a border path.
func (t *Tree) cuComputeBorder() {
	leaves := t.leafHandles()
	if len(leaves) < 3 {
		// A degenerate tree (fewer than 3 leaves) has no meaningful hull;
		// nothing to mark.
		return
	}

	start := leaves[0]
	startLoc := t.mustLoc(start)
	for _, h := range leaves[1:] {
		loc := t.mustLoc(h)
		if loc.Y < startLoc.Y || (loc.Y == startLoc.Y && loc.X < startLoc.X) {
			start, startLoc = h, loc
		}
	}

	visited := make(map[Handle]bool, len(leaves))
	order := []Handle{start}
	visited[start] = true

	current := start

	for i := 0; i < len(leaves)+1; i++ {
		currentLoc := t.mustLoc(current)
		var next Handle
		var nextLoc geom.Vec
		haveNext := false

		for _, cand := range leaves {
			if cand == current {
				continue
			}
			candLoc := t.mustLoc(cand)
			if !haveNext {
				next, nextLoc, haveNext = cand, candLoc, true
				continue
			}
			turn := geom.Cross(geom.Sub(nextLoc, currentLoc), geom.Sub(candLoc, currentLoc))
			switch {
			case turn < -geom.ConvexityTol():
				// cand is strictly more clockwise from current->next,
				// meaning current->cand is the tighter CCW turn: replace.
				next, nextLoc = cand, candLoc
			case turn > geom.ConvexityTol():
				// current->next remains the tighter turn; keep it.
			default:
				// Collinear within tolerance: prefer the nearer point so
				// the walk passes through every node on a straight run.
				if geom.Dist(currentLoc, candLoc) < geom.Dist(currentLoc, nextLoc) {
					next, nextLoc = cand, candLoc
				}
			}
		}
		if !haveNext {
			break
		}

		if next == start {
			break
		}
		if visited[next] {
			// Should not happen on a true convex hull walk; guard against
			// an infinite loop on degenerate (all-collinear) input.
			break
		}
		visited[next] = true
		order = append(order, next)
		current = next
	}

	for _, h := range order {
		if n, ok := t.nodes.Get(h); ok {
			n.Border = true
		}
	}

	for i := range order {
		a := order[i]
		b := order[(i+1)%len(order)]
		if p, ok := t.pathBetween(a, b); ok {
			p.Border = true
		}
	}
}

// leafHandles returns every live node handle with exactly one incident
// edge, in arena order.
func (t *Tree) leafHandles() []Handle {
	var out []Handle
	t.nodes.Each(func(h Handle, n *Node) {
		if n.Leaf {
			out = append(out, h)
		}
	})

	return out
}

func (t *Tree) mustLoc(h Handle) geom.Vec {
	n, ok := t.nodes.Get(h)
	if !ok {
		return geom.Vec{}
	}

	return n.Loc
}

// pathBetween returns the top-level leaf path whose front/back nodes are
// {a,b} in either order, if one exists.
func (t *Tree) pathBetween(a, b Handle) (*Path, bool) {
	_, p, ok := t.pathHandleBetween(a, b)

	return p, ok
}

// pathHandleBetween is pathBetween but also returns the path's Handle.
func (t *Tree) pathHandleBetween(a, b Handle) (Handle, *Path, bool) {
	var foundH Handle
	var found *Path
	t.paths.Each(func(h Handle, p *Path) {
		if p.Sub || found != nil {
			return
		}
		if (p.Front == a && p.Back == b) || (p.Front == b && p.Back == a) {
			foundH, found = h, p
		}
	})

	return foundH, found, found != nil
}
