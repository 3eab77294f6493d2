package polygon

import (
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// insetTriangle handles a three-cornered ring: a single inset node at the
// incenter, all three ring nodes mapping to it, joined by three spoke
// sub-paths.
func insetTriangle(t *tree.Tree, poly tree.Handle) error {
	p, ok := t.Poly(poly)
	if !ok {
		return ErrTooFewRingNodes
	}
	locs := make([]geom.Vec, 3)
	for i, h := range p.RingNodes {
		locs[i] = t.MustLoc(h)
	}
	centre := geom.Incenter(locs[0], locs[1], locs[2])
	radius := geom.Inradius(locs[0], locs[1], locs[2])
	elevation := ringElevation(t, p.RingNodes) + radius

	apex, ok := t.NewSubNode(poly, tree.Node{Loc: centre, Elevation: elevation})
	if !ok {
		return ErrTooFewRingNodes
	}

	p.InsetNodeOf = make([]tree.Handle, 3)
	p.SpokePaths = make([]tree.Handle, 0, 3)
	for i, ringNode := range p.RingNodes {
		p.InsetNodeOf[i] = apex
		spoke, ok := t.NewSubPath(poly, tree.Path{
			Front: ringNode,
			Back:  apex,
			Nodes: []tree.Handle{ringNode, apex},
		})
		if ok {
			p.SpokePaths = append(p.SpokePaths, spoke)
		}
	}

	return nil
}
