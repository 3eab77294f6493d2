package depth_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	treemaker "github.com/katalvlaran/treemaker"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

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

// activeSquareTree puts four unit legs on one branch node, leaves at the
// corners of a side-2 square: every side path is exactly active, and the
// root projects onto every side's midpoint.
func activeSquareTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := treemaker.NewTree(tree.WithPaperSize(10, 10))
	root, _, _ := tr.Bootstrap(1, geom.Vec{X: 5, Y: 5}, geom.Vec{X: 4, Y: 4})
	for _, loc := range []geom.Vec{{X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}} {
		_, _, err := tr.AddNode(root, 1, loc)
		require.NoError(t, err)
	}

	return tr
}

// TestRootProjectionsHaveZeroDepth pins cleanup step 16 and the depth
// invariant: every vertex projecting the root node carries depth 0 and
// discrete depth 0, and every other vertex's depth is non-negative.
func TestRootProjectionsHaveZeroDepth(t *testing.T) {
	tr := activeSquareTree(t)
	require.True(t, tr.VertexDepthValid)

	rootProjections := 0
	for _, vh := range tr.VertexHandles() {
		v, ok := tr.Vertex(vh)
		require.True(t, ok)
		assert.GreaterOrEqual(t, v.Depth, 0.0)
		if v.HasTreeNode && v.TreeNode == tr.RootNode {
			rootProjections++
			assert.InDelta(t, 0.0, v.Depth, 1e-9)
			assert.Equal(t, 0, v.DiscreteDepth)
		}
	}
	// The four side midpoints plus the apex the hinges climb to.
	assert.Equal(t, 5, rootProjections)
}

// TestLeafCornerDepthMatchesTreeMetric pins the leaf half of the depth
// invariant: every hull corner's vertex carries its node's distance from
// the root along the tree.
func TestLeafCornerDepthMatchesTreeMetric(t *testing.T) {
	tr := activeSquareTree(t)
	require.True(t, tr.VertexDepthValid)

	for _, nh := range tr.Nodes() {
		n, ok := tr.Node(nh)
		require.True(t, ok)
		if !n.Leaf || !n.Vertex.Valid() {
			continue
		}
		v, ok := tr.Vertex(n.Vertex)
		require.True(t, ok)
		assert.InDelta(t, 1.0, v.Depth, 1e-9, "unit leg at scale 1")
		assert.Equal(t, 1, v.DiscreteDepth)
	}
}

// TestNonTreeVerticesHaveNoDiscreteDepth pins the discrete-depth
// convention: only tree-node projections carry one.
func TestNonTreeVerticesHaveNoDiscreteDepth(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.VertexDepthValid)

	for _, vh := range tr.VertexHandles() {
		v, ok := tr.Vertex(vh)
		require.True(t, ok)
		if v.HasTreeNode {
			assert.GreaterOrEqual(t, v.DiscreteDepth, 0)
		} else {
			assert.Equal(t, -1, v.DiscreteDepth)
		}
	}
}

// TestFacetOrderingIsAcyclicAndTotal pins the facet-ordering graph
// invariant: every live facet gets a distinct order value, the graph is
// acyclic (FacetDataValid implies assign.Order ran without ErrCycle),
// and breaking exactly one link left a single source and a single sink.
func TestFacetOrderingIsAcyclicAndTotal(t *testing.T) {
	for name, build := range map[string]func(*testing.T) *tree.Tree{
		"rabbit ear": rabbitEarTree,
		"square":     activeSquareTree,
	} {
		t.Run(name, func(t *testing.T) {
			tr := build(t)
			require.True(t, tr.FacetDataValid)
			require.True(t, tr.LocalRootConnectable)

			seen := make(map[int]bool)
			sources, sinks := 0, 0
			for _, fh := range tr.FacetHandles() {
				f, ok := tr.Facet(fh)
				require.True(t, ok)
				require.False(t, seen[f.Order], "facet order values must be unique")
				seen[f.Order] = true
				if len(f.Tail) == 0 {
					sources++
				}
				if len(f.Head) == 0 {
					sinks++
				}
			}
			assert.Equal(t, 1, sources)
			assert.Equal(t, 1, sinks)
		})
	}
}

// TestLocalRootNetworkIsIdentified pins the local-root bookkeeping: the
// one molecule's minimum-discrete-depth vertices and the hinge creases
// joining them end up recorded on the poly.
func TestLocalRootNetworkIsIdentified(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.FacetDataValid)

	for _, ph := range tr.Polys() {
		p, ok := tr.Poly(ph)
		require.True(t, ok)
		if p.Sub {
			continue
		}
		// Three tangency feet plus the apex, all projecting the root.
		assert.Len(t, p.LocalRootVertices, 4)
		assert.Len(t, p.LocalRootCreases, 3)
		for _, vh := range p.LocalRootVertices {
			v, ok := tr.Vertex(vh)
			require.True(t, ok)
			assert.Equal(t, 0, v.DiscreteDepth)
		}
	}
}

// TestHingeBendClassification pins cleanup step 17 on the rabbit ear:
// each side's tangency foot sits at a local depth minimum (corner depths
// 1, foot at the apex's depth 0), so all three hinges classify folded.
func TestHingeBendClassification(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.FacetDataValid)

	folded, unfolded := 0, 0
	for _, ch := range tr.CreaseHandles() {
		c, ok := tr.Crease(ch)
		require.True(t, ok)
		switch c.Kind {
		case tree.CreaseFoldedHinge:
			folded++
		case tree.CreaseUnfoldedHinge:
			unfolded++
		}
	}
	assert.Equal(t, 3, folded)
	assert.Zero(t, unfolded)
}
