package assign_test

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

// TestFacetsGetOrientedColour pins the facet-colour invariant: once
// FacetDataValid, every live facet's colour is WhiteUp or ColorUp, never
// Unoriented, and the ordering graph's source facet is ColorUp.
func TestFacetsGetOrientedColour(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.FacetDataValid)

	for _, fh := range tr.FacetHandles() {
		f, ok := tr.Facet(fh)
		require.True(t, ok)
		assert.Contains(t, []tree.Colour{tree.WhiteUp, tree.ColorUp}, f.Colour)
		if len(f.Tail) == 0 {
			assert.Equal(t, tree.ColorUp, f.Colour, "the source facet seeds the colouring")
		}
	}
}

// TestColourAlternatesAcrossFoldedCreases pins step 21's propagation
// rule on the built pattern: facets on the two sides of any crease that
// is not an unfolded hinge carry opposite colours.
func TestColourAlternatesAcrossFoldedCreases(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.FacetDataValid)

	for _, ch := range tr.CreaseHandles() {
		c, ok := tr.Crease(ch)
		require.True(t, ok)
		if !c.HasForwardFacet || !c.HasBackwardFacet {
			continue
		}
		ff, fok := tr.Facet(c.ForwardFacet)
		bf, bok := tr.Facet(c.BackwardFacet)
		require.True(t, fok)
		require.True(t, bok)
		if c.Kind == tree.CreaseUnfoldedHinge {
			assert.Equal(t, ff.Colour, bf.Colour)
		} else {
			assert.NotEqual(t, ff.Colour, bf.Colour)
		}
	}
}

// TestFoldDirectionMatchesColourAndOrderRule pins AssignFolds's rule
// (doc.go): Border with one incident facet, Flat when the two facets
// share a colour, else mountain/valley from the higher-stacked facet's
// colour, inverted when the forward facet is WhiteUp.
func TestFoldDirectionMatchesColourAndOrderRule(t *testing.T) {
	tr := rabbitEarTree(t)
	require.True(t, tr.FacetDataValid)

	for _, ch := range tr.CreaseHandles() {
		c, ok := tr.Crease(ch)
		require.True(t, ok)

		if !c.HasForwardFacet || !c.HasBackwardFacet {
			assert.Equal(t, tree.FoldBorder, c.Fold)

			continue
		}
		ff, fok := tr.Facet(c.ForwardFacet)
		bf, bok := tr.Facet(c.BackwardFacet)
		require.True(t, fok)
		require.True(t, bok)

		if ff.Colour == bf.Colour {
			assert.Equal(t, tree.FoldFlat, c.Fold)

			continue
		}
		higher := ff
		if bf.Order > ff.Order {
			higher = bf
		}
		want := tree.FoldValley
		if higher.Colour == tree.ColorUp {
			want = tree.FoldMountain
		}
		if ff.Colour == tree.WhiteUp {
			if want == tree.FoldMountain {
				want = tree.FoldValley
			} else {
				want = tree.FoldMountain
			}
		}
		assert.Equal(t, want, c.Fold)
	}
}
