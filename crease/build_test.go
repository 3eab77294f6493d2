package crease_test

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

// pseudohingeTree builds an 8x2.5 rectangle over a two-branch stem: the
// long sides are exactly active, the short sides are slack borders. The
// inset junctions above the short sides project no tree node, but both
// flanking ridgeline vertices project the same branch node, so each
// short side gets a regular-pseudohinge-regular triplet.
func pseudohingeTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := treemaker.NewTree(tree.WithPaperSize(10, 10))
	r1, r2, _ := tr.Bootstrap(6, geom.Vec{X: 2, Y: 4.75}, geom.Vec{X: 8, Y: 4.75})
	for _, loc := range []geom.Vec{{X: 1, Y: 3.5}, {X: 1, Y: 6}} {
		_, _, err := tr.AddNode(r1, 1, loc)
		require.NoError(t, err)
	}
	for _, loc := range []geom.Vec{{X: 9, Y: 3.5}, {X: 9, Y: 6}} {
		_, _, err := tr.AddNode(r2, 1, loc)
		require.NoError(t, err)
	}

	return tr
}

// TestRabbitEarCreaseCensus pins the crease pattern of the one-molecule
// rabbit ear: each of the three sides splits at the tangency foot of
// the folded hinge rising to the incenter apex (two axial segments per
// side), and each corner sends one ridge to the apex. Every bounded
// region becomes a facet with an axial bottom at index 0.
func TestRabbitEarCreaseCensus(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.FacetDataValid)

	var top tree.Handle
	topCount := 0
	for _, h := range tr.Polys() {
		if p, ok := tr.Poly(h); ok && !p.Sub {
			top = h
			topCount++
		}
	}
	require.Equal(t, 1, topCount)

	p, ok := tr.Poly(top)
	require.True(t, ok)
	require.Len(t, p.Facets, 6)

	kinds := map[tree.CreaseKind]int{}
	for _, ch := range tr.CreaseHandles() {
		c, ok := tr.Crease(ch)
		require.True(t, ok)
		kinds[c.Kind]++
	}
	assert.Equal(t, 6, kinds[tree.CreaseAxial])
	assert.Equal(t, 3, kinds[tree.CreaseRidge])
	assert.Equal(t, 3, kinds[tree.CreaseFoldedHinge])
	assert.Zero(t, kinds[tree.CreaseGusset])
	assert.Zero(t, kinds[tree.CreasePseudohinge])

	for _, fh := range p.Facets {
		f, ok := tr.Facet(fh)
		require.True(t, ok)
		assert.True(t, f.WellFormed)
		require.GreaterOrEqual(t, len(f.Vertices), 3)
		assert.Equal(t, len(f.Vertices), len(f.Creases))

		bottom, ok := tr.Crease(f.Creases[0])
		require.True(t, ok)
		assert.Contains(t, []tree.CreaseKind{tree.CreaseAxial, tree.CreaseGusset}, bottom.Kind)
	}
}

// TestHingesInheritTreeNodesUpTheRidgeline pins the upward propagation:
// the apex vertex of the rabbit ear receives the branch node its hinges
// project, which is what later anchors the local-root network.
func TestHingesInheritTreeNodesUpTheRidgeline(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.FacetDataValid)

	rootProjections := 0
	for _, vh := range tr.VertexHandles() {
		v, ok := tr.Vertex(vh)
		require.True(t, ok)
		if v.HasTreeNode && v.TreeNode == tr.RootNode {
			rootProjections++
		}
	}
	// Three tangency feet plus the apex itself.
	assert.Equal(t, 4, rootProjections)
}

// TestInactiveBordersGetPseudohingeTriplets pins the downward pass: each
// slack short side of the pseudohinge fixture carries a regular hinge, a
// pseudohinge from the junction (which projects no tree node), and a
// second regular hinge, with the two regular feet recorded as mates.
func TestInactiveBordersGetPseudohingeTriplets(t *testing.T) {
	tr := pseudohingeTree(t)
	require.True(t, tr.PolygonsFilled)
	require.True(t, tr.VertexDepthValid)
	require.True(t, tr.FacetDataValid)

	pseudo := 0
	for _, ch := range tr.CreaseHandles() {
		c, ok := tr.Crease(ch)
		require.True(t, ok)
		if c.Kind != tree.CreasePseudohinge {
			continue
		}
		pseudo++

		foot, ok := tr.Vertex(c.V1)
		require.True(t, ok)
		if !foot.Owner.IsPath {
			foot, ok = tr.Vertex(c.V2)
			require.True(t, ok)
		}
		assert.False(t, foot.HasTreeNode, "a pseudohinge foot projects no tree node")
	}
	assert.Equal(t, 2, pseudo)

	mated := 0
	for _, vh := range tr.VertexHandles() {
		v, ok := tr.Vertex(vh)
		require.True(t, ok)
		if v.LeftPseudohingeMate.Valid() || v.RightPseudohingeMate.Valid() {
			mated++
			assert.True(t, v.HasTreeNode, "pseudohinge mates are the triplet's regular feet")
		}
	}
	assert.Equal(t, 4, mated, "each triplet's two regular feet carry mate pointers")
}

// TestInteriorVerticesHaveEvenCreaseCount pins the cleanup-step-18
// two-colourability precondition on both fixtures.
func TestInteriorVerticesHaveEvenCreaseCount(t *testing.T) {
	for name, build := range map[string]func(*testing.T) *tree.Tree{
		"rabbit ear":  rabbitEarTree,
		"pseudohinge": pseudohingeTree,
	} {
		t.Run(name, func(t *testing.T) {
			tr := build(t)
			require.True(t, tr.FacetDataValid)

			for _, vh := range tr.VertexHandles() {
				v, ok := tr.Vertex(vh)
				require.True(t, ok)
				if v.Border {
					continue
				}
				assert.Zero(t, len(v.Creases)%2, "interior vertex with odd crease count")
			}
		})
	}
}
