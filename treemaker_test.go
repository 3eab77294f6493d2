package treemaker_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	treemaker "github.com/katalvlaran/treemaker"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// rabbitEarTree builds the classic one-molecule base: three unit legs
// whose leaves sit at the corners of an equilateral triangle of side 2,
// so every leaf path is exactly active. The molecule is the rabbit ear:
// incenter apex, one ridge per corner, one folded hinge per side from
// the tangency foot up to the apex.
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

func TestFullPipelineProducesOrderedFoldableFacets(t *testing.T) {
	tr := rabbitEarTree(t)

	assert.True(t, tr.Feasible)
	assert.True(t, tr.PolygonsValid)
	assert.True(t, tr.PolygonsFilled)
	assert.True(t, tr.VertexDepthValid)
	assert.True(t, tr.FacetDataValid)
	assert.True(t, tr.LocalRootConnectable)
	assert.True(t, tr.HasFullCP())

	facets := tr.FacetHandles()
	require.NotEmpty(t, facets)

	seenOrder := make(map[int]bool)
	for _, fh := range facets {
		f, ok := tr.Facet(fh)
		require.True(t, ok)
		assert.True(t, f.WellFormed)
		assert.GreaterOrEqual(t, len(f.Vertices), 3)
		assert.False(t, seenOrder[f.Order], "facet order values must be distinct")
		seenOrder[f.Order] = true
	}

	for _, ch := range tr.CreaseHandles() {
		c, ok := tr.Crease(ch)
		require.True(t, ok)
		assert.NotEqual(t, tree.FoldFlat, c.Fold, "every built crease should get a definite fold")
	}
}

func TestNewTreeAppliesOptionsAfterHooks(t *testing.T) {
	tr := treemaker.NewTree(tree.WithPaperSize(5, 7))
	assert.Equal(t, 5.0, tr.Width)
	assert.Equal(t, 7.0, tr.Height)
}
