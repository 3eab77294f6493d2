package polygon

import (
	"github.com/katalvlaran/treemaker/tree"
)

// Builder implements tree.ContentsBuilder. It is stateless; a zero value
// is ready to use. Installed via tree.WithPolygonBuilder by the package
// that wires the full pipeline together (the root treemaker package's
// NewTree).
type Builder struct{}

// BuildPolyContents dispatches to the triangle (n==3) or n-gon (n>=4)
// inset case. An n-gon whose inset collapses to one or two
// distinct nodes is complete after one step (apex or ridge); one that
// collapses to three or more recurses into the nested ring those nodes
// bound.
func (Builder) BuildPolyContents(t *tree.Tree, poly tree.Handle) error {
	return buildPolyContents(t, poly)
}

func buildPolyContents(t *tree.Tree, poly tree.Handle) error {
	p, ok := t.Poly(poly)
	if !ok {
		return ErrTooFewRingNodes
	}
	n := len(p.RingNodes)
	if n < 3 {
		return ErrTooFewRingNodes
	}
	if n == 3 {
		return insetTriangle(t, poly)
	}

	return insetNGon(t, poly)
}

// ringElevation returns the elevation shared by every ring node of poly
// (accumulated during any outer insetting step that produced this ring;
// zero for a top-level poly's own ring).
func ringElevation(t *tree.Tree, ring []tree.Handle) float64 {
	for _, h := range ring {
		if n, ok := t.Node(h); ok {
			return n.Elevation
		}
	}

	return 0
}
