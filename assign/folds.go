package assign

import "github.com/katalvlaran/treemaker/tree"

// AssignFolds derives each crease's fold direction, cleanup step 22:
// Border with one incident facet; Flat when both facets share a colour
// (an unfolded crease); else mountain/valley from the colour of the
// facet stacked higher, inverted when the forward facet is white side
// up (the fold's handedness flips with the paper's orientation).
func (Builder) AssignFolds(t *tree.Tree) error {
	for _, ch := range t.CreaseHandles() {
		c, ok := t.Crease(ch)
		if !ok {
			continue
		}
		if !c.HasForwardFacet || !c.HasBackwardFacet {
			c.Fold = tree.FoldBorder

			continue
		}
		ff, fok := t.Facet(c.ForwardFacet)
		bf, bok := t.Facet(c.BackwardFacet)
		if !fok || !bok {
			c.Fold = tree.FoldBorder

			continue
		}
		if ff.Colour == bf.Colour {
			c.Fold = tree.FoldFlat

			continue
		}
		c.Fold = mvFold(ff, bf)
	}

	return nil
}

// mvFold implements the step-22 table: the crease is Mountain when the
// higher-stacked facet shows colour up, Valley otherwise, with the
// result inverted when the forward facet is WhiteUp.
func mvFold(forward, backward *tree.Facet) tree.FoldDirection {
	higher := forward
	if backward.Order > forward.Order {
		higher = backward
	}
	fold := tree.FoldValley
	if higher.Colour == tree.ColorUp {
		fold = tree.FoldMountain
	}
	if forward.Colour == tree.WhiteUp {
		if fold == tree.FoldMountain {
			fold = tree.FoldValley
		} else {
			fold = tree.FoldMountain
		}
	}

	return fold
}
