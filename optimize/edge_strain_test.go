package optimize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	treemaker "github.com/katalvlaran/treemaker"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/optimize"
	"github.com/katalvlaran/treemaker/tree"
)

// TestEdgeOptimizerConverges exercises EdgeOptimizer on the same
// three-star tree as the scale scenario: every leg shares one strain
// variable, and each leaf path's equality pins its paper length to its
// strained minimum, so after convergence every leaf path is active
// within solver tolerance.
func TestEdgeOptimizerConverges(t *testing.T) {
	tr := threeStarTree(t)

	eo := optimize.NewEdgeOptimizer(tr)
	require.NoError(t, eo.Initialise())
	res, err := eo.Optimize()
	require.NoError(t, err)
	assert.True(t, res.Converged)

	for _, ph := range tr.Paths() {
		p, ok := tr.Path(ph)
		require.True(t, ok)
		if !p.Leaf {
			continue
		}
		assert.InDelta(t, p.MinPaper(tr), p.ActPaper(tr), 1e-3,
			"the shared-strain equality should leave every leaf path at its minimum")
	}
}

// TestEdgeOptimizerBaseOffsets pins the base-offset contract: a movable
// edge maps to the shared strain slot, and an unknown (zero) edge handle
// reports ErrBadOffset.
func TestEdgeOptimizerBaseOffsets(t *testing.T) {
	tr := threeStarTree(t)

	eo := optimize.NewEdgeOptimizer(tr)
	require.NoError(t, eo.Initialise())

	edges := tr.Edges()
	require.NotEmpty(t, edges)
	idx, err := eo.BaseOffsetEdge(edges[0])
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = eo.BaseOffsetEdge(tree.Handle{})
	assert.ErrorIs(t, err, optimize.ErrBadOffset)
}

// TestStrainOptimizerConverges exercises StrainOptimizer on a slightly
// asymmetric star (legs of different rest length), where each edge gets
// its own strain variable absent an EdgesSameStrain condition.
func TestStrainOptimizerConverges(t *testing.T) {
	tr := treemaker.NewTree(tree.WithPaperSize(10, 10))
	root, _, _ := tr.Bootstrap(1, geom.Vec{X: 5, Y: 5}, geom.Vec{X: 6, Y: 5})
	_, _, err := tr.AddNode(root, 1.2, geom.Vec{X: 5.5, Y: 6})
	require.NoError(t, err)

	so := optimize.NewStrainOptimizer(tr)
	require.NoError(t, so.Initialise())
	res, err := so.Optimize()
	require.NoError(t, err)
	assert.True(t, res.Converged)

	for _, eh := range tr.Edges() {
		e, ok := tr.Edge(eh)
		require.True(t, ok)
		assert.GreaterOrEqual(t, e.Strain, -0.999)
		assert.LessOrEqual(t, math.Abs(e.Strain), 1.0)
	}
}

// TestEdgesSameStrainGroupsShareOneVariable pins the strain optimiser's
// union-find grouping: two edges tied by an EdgesSameStrain condition
// resolve to the same strain slot.
func TestEdgesSameStrainGroupsShareOneVariable(t *testing.T) {
	tr := treemaker.NewTree(tree.WithPaperSize(10, 10))
	root, _, _ := tr.Bootstrap(1, geom.Vec{X: 5, Y: 5}, geom.Vec{X: 6, Y: 5})
	_, e2, err := tr.AddNode(root, 1, geom.Vec{X: 5, Y: 6})
	require.NoError(t, err)
	_, e3, err := tr.AddNode(root, 1, geom.Vec{X: 4, Y: 5})
	require.NoError(t, err)
	tr.AddCondition(&tree.EdgesSameStrain{Edge1: e2, Edge2: e3})

	so := optimize.NewStrainOptimizer(tr)
	require.NoError(t, so.Initialise())

	i2, err := so.BaseOffsetEdge(e2)
	require.NoError(t, err)
	i3, err := so.BaseOffsetEdge(e3)
	require.NoError(t, err)
	assert.Equal(t, i2, i3)
}
