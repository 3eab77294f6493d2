package polygon_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	treemaker "github.com/katalvlaran/treemaker"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// rabbitEarTree builds the simplest fully active base: three unit legs
// with leaves at the corners of an equilateral triangle of side 2,
// taking BuildPolyContents through the n==3 incenter case.
func rabbitEarTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := treemaker.NewTree(tree.WithPaperSize(10, 10))
	root, _, _ := tr.Bootstrap(1, geom.Vec{X: 5, Y: 4 + 1/math.Sqrt(3)}, geom.Vec{X: 4, Y: 4})
	_, _, err := tr.AddNode(root, 1, geom.Vec{X: 6, Y: 4})
	require.NoError(t, err)
	_, _, err = tr.AddNode(root, 1, geom.Vec{X: 5, Y: 4 + math.Sqrt(3)})
	require.NoError(t, err)

	return tr
}

// doubleStarTree builds a fully active 8x2 rectangle: two branch nodes
// joined by a length-6 stem, each carrying two unit legs to the
// rectangle's corners. Every side path is exactly active, and the
// rectangle insets to two junction nodes joined by a ridge.
func doubleStarTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := treemaker.NewTree(tree.WithPaperSize(10, 10))
	r1, r2, _ := tr.Bootstrap(6, geom.Vec{X: 2, Y: 5}, geom.Vec{X: 8, Y: 5})
	for _, loc := range []geom.Vec{{X: 1, Y: 4}, {X: 1, Y: 6}} {
		_, _, err := tr.AddNode(r1, 1, loc)
		require.NoError(t, err)
	}
	for _, loc := range []geom.Vec{{X: 9, Y: 4}, {X: 9, Y: 6}} {
		_, _, err := tr.AddNode(r2, 1, loc)
		require.NoError(t, err)
	}

	return tr
}

// TestTriangleInsetsToSingleIncenterApex exercises the triangle case:
// all three ring corners should map to one shared inset node located at
// the triangle's incenter, with three spoke sub-paths connecting to it.
func TestTriangleInsetsToSingleIncenterApex(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.PolygonsFilled)

	var tops []tree.Handle
	for _, h := range tr.Polys() {
		if p, ok := tr.Poly(h); ok && !p.Sub {
			tops = append(tops, h)
		}
	}
	require.Len(t, tops, 1)

	p, ok := tr.Poly(tops[0])
	require.True(t, ok)
	require.Len(t, p.RingNodes, 3)
	require.Len(t, p.InsetNodeOf, 3)

	apex := p.InsetNodeOf[0]
	for _, h := range p.InsetNodeOf {
		assert.Equal(t, apex, h, "every ring corner should map to the same incenter apex")
	}
	assert.Len(t, p.SpokePaths, 3)

	locs := make([]geom.Vec, 3)
	for i, h := range p.RingNodes {
		locs[i] = tr.MustLoc(h)
	}
	wantCentre := geom.Incenter(locs[0], locs[1], locs[2])
	apexNode, ok := tr.Node(apex)
	require.True(t, ok)
	assert.InDelta(t, wantCentre.X, apexNode.Loc.X, 1e-9)
	assert.InDelta(t, wantCentre.Y, apexNode.Loc.Y, 1e-9)
	assert.InDelta(t, 1/math.Sqrt(3), apexNode.Elevation, 1e-9)
}

// TestRectangleInsetsToRidgeBetweenJunctions exercises the n>=4 case
// with two distinct inset nodes: each short side's corner pair merges
// into a junction, and a ridge path joins the two junctions.
func TestRectangleInsetsToRidgeBetweenJunctions(t *testing.T) {
	tr := doubleStarTree(t)
	require.True(t, tr.PolygonsFilled)

	var top tree.Handle
	count := 0
	for _, h := range tr.Polys() {
		if p, ok := tr.Poly(h); ok && !p.Sub {
			top = h
			count++
		}
	}
	require.Equal(t, 1, count)

	p, ok := tr.Poly(top)
	require.True(t, ok)
	require.Len(t, p.RingNodes, 4)

	distinct := map[tree.Handle]bool{}
	for _, h := range p.InsetNodeOf {
		distinct[h] = true
	}
	require.Len(t, distinct, 2)
	require.True(t, p.RidgePath.Valid())

	for h := range distinct {
		n, ok := tr.Node(h)
		require.True(t, ok)
		assert.True(t, n.Junction, "a merged corner pair should be marked junction")
		assert.InDelta(t, 5.0, n.Loc.Y, 1e-6)
		assert.InDelta(t, 1.0, n.Elevation, 1e-6)
		if n.Loc.X < 5 {
			assert.InDelta(t, 2.0, n.Loc.X, 1e-6)
		} else {
			assert.InDelta(t, 8.0, n.Loc.X, 1e-6)
		}
	}
}
