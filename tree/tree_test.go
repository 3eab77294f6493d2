package tree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// newSeededTree builds a minimal two-node, one-edge tree by reaching
// into the package's exported surface the way a real caller would: seed
// a root via AddNode against itself is not possible, so tests use the
// lower-level SplitEdge/AddStub entry points starting from a tree built
// by the package's own bootstrap helper.
func newSeededTree(t *testing.T, edgeLength float64) (*tree.Tree, tree.Handle, tree.Handle, tree.Handle) {
	t.Helper()
	tr := tree.NewTree(tree.WithPaperSize(1, 1))
	root, n2, e1 := tr.Bootstrap(edgeLength, geom.Vec{X: 0, Y: 0}, geom.Vec{X: edgeLength, Y: 0})

	return tr, root, n2, e1
}

func TestBootstrapAndCounts(t *testing.T) {
	tr, root, n2, e1 := newSeededTree(t, 1)
	assert.True(t, root.Valid())
	assert.True(t, n2.Valid())
	assert.True(t, e1.Valid())
	assert.Equal(t, 2, tr.NodeCount())
	assert.Equal(t, 1, tr.EdgeCount())
	assert.Equal(t, 1, tr.PathCount())
}

func TestAddNodeGrowsPathsQuadratically(t *testing.T) {
	tr, root, _, _ := newSeededTree(t, 1)
	_, _, err := tr.AddNode(root, 1, geom.Vec{X: 0.5, Y: 0.5})
	require.NoError(t, err)

	n := tr.NodeCount()
	want := n * (n - 1) / 2
	assert.Equal(t, want, tr.PathCount())
}

func TestSplitEdgeRejectsBoundaryOffsets(t *testing.T) {
	tr, _, _, e1 := newSeededTree(t, 1)
	_, _, err := tr.SplitEdge(e1, 0)
	assert.ErrorIs(t, err, tree.ErrBadSplitEdge)

	edge, ok := tr.Edge(e1)
	require.True(t, ok)
	_, _, err = tr.SplitEdge(e1, edge.StrainedLength())
	assert.ErrorIs(t, err, tree.ErrBadSplitEdge)
}

func TestSplitThenAbsorbRoundTrips(t *testing.T) {
	tr, root, n2, e1 := newSeededTree(t, 1)
	mid, _, err := tr.SplitEdge(e1, 0.4)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.NodeCount())
	assert.Equal(t, 2, tr.EdgeCount())

	require.NoError(t, tr.AbsorbNode(mid))
	assert.Equal(t, 2, tr.NodeCount())
	assert.Equal(t, 1, tr.EdgeCount())

	edges := tr.Edges()
	require.Len(t, edges, 1)
	e, ok := tr.Edge(edges[0])
	require.True(t, ok)
	assert.InDelta(t, 1.0, e.Length, 1e-9)

	endpoints := map[tree.Handle]bool{e.N1: true, e.N2: true}
	assert.True(t, endpoints[root] || endpoints[n2])
}

func TestAddStubThenRemoveStubRoundTrips(t *testing.T) {
	tr, _, _, e1 := newSeededTree(t, 1)

	_, stubEdge, err := tr.AddStub(e1, 0.5, 0.3, geom.Vec{X: 0.3, Y: 0.1})
	require.NoError(t, err)
	assert.Equal(t, 4, tr.NodeCount())
	assert.Equal(t, 3, tr.EdgeCount())

	leafPairs := 0
	for _, h := range tr.Nodes() {
		n, _ := tr.Node(h)
		if n.Leaf {
			leafPairs++
		}
	}
	assert.Equal(t, 3, leafPairs)

	require.NoError(t, tr.RemoveStub(stubEdge))
	assert.Equal(t, 2, tr.NodeCount())
	assert.Equal(t, 1, tr.EdgeCount())
	assert.Equal(t, 1, tr.PathCount())
}

func TestNodeLocationsClampToPaper(t *testing.T) {
	tr, root, _, _ := newSeededTree(t, 1)
	tr.SetNodeLocs(map[tree.Handle]geom.Vec{root: {X: -5, Y: 5}})

	n, ok := tr.Node(root)
	require.True(t, ok)
	assert.Equal(t, 0.0, n.Loc.X)
	assert.Equal(t, 1.0, n.Loc.Y)
}

func TestEmptyTreeIsNotPolygonsValid(t *testing.T) {
	tr := tree.NewTree()
	tr.CleanupAfterEdit()
	assert.False(t, tr.PolygonsValid)

	status, _ := tr.GetCPStatus()
	assert.Equal(t, tree.StatusPolysNotValid, status)
}

func TestShortEdgeIsFlaggedByEdgeLengthCheck(t *testing.T) {
	tr, _, _, e1 := newSeededTree(t, 0.005)
	edge, ok := tr.Edge(e1)
	require.True(t, ok)
	assert.Less(t, edge.Length, geom.MinEdgeLength())

	status, offending := tr.GetCPStatus()
	assert.Equal(t, tree.StatusEdgesTooShort, status)
	assert.Contains(t, offending, e1)
}

func TestAbsorbNodeRejectsNonRedundantNode(t *testing.T) {
	tr, root, _, _ := newSeededTree(t, 1)
	assert.ErrorIs(t, tr.AbsorbNode(root), tree.ErrBadAbsorbNode)
}

func TestRemoveStubRejectsInteriorEdge(t *testing.T) {
	tr, root, n2, e1 := newSeededTree(t, 1)
	_, _, err := tr.AddNode(root, 1, geom.Vec{X: 0.2, Y: 0.8})
	require.NoError(t, err)
	_, _, err = tr.AddNode(root, 1, geom.Vec{X: 0.8, Y: 0.8})
	require.NoError(t, err)
	_, _, err = tr.AddNode(n2, 1, geom.Vec{X: 0.5, Y: 0.2})
	require.NoError(t, err)
	_, _, err = tr.AddNode(n2, 1, geom.Vec{X: 0.9, Y: 0.2})
	require.NoError(t, err)

	// Both of e1's endpoints now have degree 3: it is not a stub.
	assert.ErrorIs(t, tr.RemoveStub(e1), tree.ErrBadRemoveStub)
}

func TestKillSomeNodesAndEdgesRejectsDeadHandles(t *testing.T) {
	tr, _, _, _ := newSeededTree(t, 1)
	err := tr.KillSomeNodesAndEdges([]tree.Handle{{}}, nil)
	assert.ErrorIs(t, err, tree.ErrBadKillParts)
	assert.Equal(t, 2, tr.NodeCount())
}

// TestRelieveThenRemoveAllStrain pins the strain round-trip law: relieving
// strain folds it into rest length, so a subsequent RemoveAllStrain
// leaves every edge with strain zero and its old strained length.
func TestRelieveThenRemoveAllStrain(t *testing.T) {
	tr, _, _, e1 := newSeededTree(t, 1)
	tr.SetEdgeStrain(e1, 0.25)

	tr.RelieveStrain()
	tr.RemoveAllStrain()

	e, ok := tr.Edge(e1)
	require.True(t, ok)
	assert.Equal(t, 0.0, e.Strain)
	assert.InDelta(t, 1.25, e.Length, 1e-12)
}

// TestCleanupAfterEditIsIdempotent pins the cleanup idempotence law: calling
// CleanupAfterEdit twice with no intervening edit must leave every
// node, edge, and path bitwise identical the second time. Handles are
// stable across the redundant call (nothing is added or removed), so
// the whole-tree go-cmp diff compares matching handles directly rather
// than needing a content sort.
func TestCleanupAfterEditIsIdempotent(t *testing.T) {
	tr, root, _, _ := newSeededTree(t, 1)
	_, _, err := tr.AddNode(root, 1, geom.Vec{X: 0.5, Y: 0.5})
	require.NoError(t, err)

	type snapshot struct {
		nodes map[tree.Handle]tree.Node
		edges map[tree.Handle]tree.Edge
		paths map[tree.Handle]tree.Path
	}
	snap := func() snapshot {
		s := snapshot{
			nodes: make(map[tree.Handle]tree.Node),
			edges: make(map[tree.Handle]tree.Edge),
			paths: make(map[tree.Handle]tree.Path),
		}
		for _, h := range tr.Nodes() {
			n, _ := tr.Node(h)
			s.nodes[h] = *n
		}
		for _, h := range tr.Edges() {
			e, _ := tr.Edge(h)
			s.edges[h] = *e
		}
		for _, h := range tr.Paths() {
			p, _ := tr.Path(h)
			s.paths[h] = *p
		}

		return s
	}

	before := snap()
	tr.CleanupAfterEdit()
	after := snap()

	if diff := cmp.Diff(before.nodes, after.nodes); diff != "" {
		t.Errorf("nodes changed on redundant cleanup (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before.edges, after.edges); diff != "" {
		t.Errorf("edges changed on redundant cleanup (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before.paths, after.paths); diff != "" {
		t.Errorf("paths changed on redundant cleanup (-before +after):\n%s", diff)
	}
}
