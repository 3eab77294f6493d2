package assign

import "github.com/katalvlaran/treemaker/tree"

// Builder implements tree.Assigner. A zero value is ready to use.
type Builder struct{}

type queueEntry struct {
	facet  tree.Handle
	colour tree.Colour
}

// AssignColour propagates the two-colouring of cleanup step 21: the source
// facet (order 0, no tails) is ColorUp, and the colour alternates across
// every crease except an UnfoldedHinge, which preserves it -- an
// unfolded hinge leaves both sides facing the same way in the folded
// form, every other crease kind turns the paper over.
func (Builder) AssignColour(t *tree.Tree) error {
	visited := make(map[tree.Handle]bool)

	flood := func(start tree.Handle) {
		queue := []queueEntry{{start, tree.ColorUp}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if visited[cur.facet] {
				continue
			}
			f, ok := t.Facet(cur.facet)
			if !ok {
				continue
			}
			f.Colour = cur.colour
			visited[cur.facet] = true

			for _, ch := range f.Creases {
				c, ok := t.Crease(ch)
				if !ok {
					continue
				}
				next := cur.colour
				if c.Kind != tree.CreaseUnfoldedHinge {
					if next == tree.ColorUp {
						next = tree.WhiteUp
					} else {
						next = tree.ColorUp
					}
				}
				if c.HasForwardFacet && !visited[c.ForwardFacet] {
					queue = append(queue, queueEntry{c.ForwardFacet, next})
				}
				if c.HasBackwardFacet && !visited[c.BackwardFacet] {
					queue = append(queue, queueEntry{c.BackwardFacet, next})
				}
			}
		}
	}

	// Start from the ordering DAG's source facet; any facet the crease
	// graph doesn't reach from there (disjoint polygon groups) seeds its
	// own flood.
	for _, fh := range t.FacetHandles() {
		if f, ok := t.Facet(fh); ok && len(f.Tail) == 0 {
			flood(fh)
		}
	}
	for _, fh := range t.FacetHandles() {
		if !visited[fh] {
			flood(fh)
		}
	}

	return nil
}
