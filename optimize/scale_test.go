package optimize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	treemaker "github.com/katalvlaran/treemaker"
	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/optimize"
	"github.com/katalvlaran/treemaker/tree"
)

// threeStarTree builds scenario S4's literal input: three unit-length
// leaves at (0,0), (1,0), (0.5,0.866) around a central branch node, on
// a unit square of paper.
func threeStarTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := treemaker.NewTree(tree.WithPaperSize(1, 1))
	root, _, _ := tr.Bootstrap(1, geom.Vec{X: 0.5, Y: 0.3}, geom.Vec{X: 0, Y: 0})
	_, _, err := tr.AddNode(root, 1, geom.Vec{X: 1, Y: 0})
	require.NoError(t, err)
	_, _, err = tr.AddNode(root, 1, geom.Vec{X: 0.5, Y: 0.866})
	require.NoError(t, err)

	return tr
}

func leafPathsFeasible(t *testing.T, tr *tree.Tree, slack float64) {
	t.Helper()
	for _, ph := range tr.Paths() {
		p, ok := tr.Path(ph)
		require.True(t, ok)
		if !p.Leaf {
			continue
		}
		assert.GreaterOrEqual(t, p.ActPaper(tr), p.MinPaper(tr)-slack,
			"leaf path infeasible after scale optimisation")
	}
}

// TestScenarioS4ThreeStarTree pins the S4 scenario: scale optimisation of
// the three-star on a unit square must reach at least the symmetric
// optimum 1/sqrt(12) ~ 0.289 while keeping every leaf path feasible.
func TestScenarioS4ThreeStarTree(t *testing.T) {
	tr := threeStarTree(t)

	so := optimize.NewScaleOptimizer(tr)
	require.NoError(t, so.Initialise())
	res, err := so.Optimize()
	require.NoError(t, err)
	assert.True(t, res.Converged)

	floor := 1/math.Sqrt(12) - 1e-3
	assert.GreaterOrEqual(t, tr.Scale, floor)
	leafPathsFeasible(t, tr, 1e-4)
}

// symmetricCentipedeTree builds a reduced stand-in for scenario S5: a
// stem (root-n2) lying on a horizontal mirror axis through (5,5), with
// two off-axis leaves mirrored across that axis and tied together by a
// Symmetric condition. This exercises the same HasSymmetry/Symmetric/
// PairFn dispatch machinery a full multi-leaf centipede would, at a
// size small enough to read in one sitting.
func symmetricCentipedeTree(t *testing.T) (tr *tree.Tree, leafA, leafB tree.Handle, dir geom.Vec) {
	t.Helper()
	tr = treemaker.NewTree(tree.WithPaperSize(10, 10))
	root, _, _ := tr.Bootstrap(1, geom.Vec{X: 5, Y: 5}, geom.Vec{X: 6, Y: 5})

	leafA, _, err := tr.AddNode(root, 1, geom.Vec{X: 5.3, Y: 5.3})
	require.NoError(t, err)
	leafB, _, err = tr.AddNode(root, 1, geom.Vec{X: 5.3, Y: 4.7})
	require.NoError(t, err)

	// Angle -pi/2 makes symmetryDir (cos, -sin of it, rotated) land on
	// the horizontal (1,0) axis through Anchor, mirroring leafA/leafB
	// across the stem's line.
	tr.SetSymmetry(true, tree.SymmetryAxis{Anchor: geom.Vec{X: 5, Y: 5}, Angle: -math.Pi / 2})
	tr.AddCondition(&tree.Symmetric{Node1: leafA, Node2: leafB})

	return tr, leafA, leafB, geom.Vec{X: 1, Y: 0}
}

// TestScenarioS5SymmetricCentipede pins the S5 scenario: a symmetric base
// keeps its mirrored leaf pair feasible and on-axis through scale
// optimisation. It exercises HasSymmetry/Symmetric end to end through
// ScaleOptimizer's dispatch of emitSymmetricScale, then re-evaluates
// the dispatcher's own PairFn1A/PairFn2A residuals directly on the
// optimised coordinates to confirm the emitted equalities actually
// converged rather than merely asserting textbook mirror geometry.
func TestScenarioS5SymmetricCentipede(t *testing.T) {
	tr, leafA, leafB, dir := symmetricCentipedeTree(t)

	so := optimize.NewScaleOptimizer(tr)
	require.NoError(t, so.Initialise())
	res, err := so.Optimize()
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.True(t, tr.HasSymmetry)
	leafPathsFeasible(t, tr, 1e-3)

	a, ok := tr.Node(leafA)
	require.True(t, ok)
	b, ok := tr.Node(leafB)
	require.True(t, ok)

	x := []float64{a.Loc.X, a.Loc.Y, b.Loc.X, b.Loc.Y}
	midOnAxis := fn.NewPairFn1A(0, 1, 2, 3, tr.Symmetry.Anchor, dir)
	segNormal := fn.NewPairFn2A(0, 1, 2, 3, dir)
	assert.InDelta(t, 0, midOnAxis.Value(x), 1e-3)
	assert.InDelta(t, 0, segNormal.Value(x), 1e-3)
}

// TestScaleOptimizerRevertRestoresSnapshot checks that Revert undoes an
// Initialise/Optimize attempt back to the state captured at Initialise,
// including the global scale.
func TestScaleOptimizerRevertRestoresSnapshot(t *testing.T) {
	tr := threeStarTree(t)
	before := tr.Scale

	so := optimize.NewScaleOptimizer(tr)
	require.NoError(t, so.Initialise())
	_, err := so.Optimize()
	require.NoError(t, err)
	assert.NotEqual(t, before, tr.Scale)

	so.Revert()
	assert.Equal(t, before, tr.Scale)
}
