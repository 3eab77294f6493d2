package format_test

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	treemaker "github.com/katalvlaran/treemaker"
	"github.com/katalvlaran/treemaker/format"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// nodeSnapshot and edgeSnapshot hold exactly the per-part fields
// format/doc.go persists -- location/label for nodes, length/strain/
// stiffness for edges -- so a whole-tree round-trip diff compares what
// Save/Load actually carries, not derived state cleanup recomputes.
type nodeSnapshot struct {
	Loc   geom.Vec
	Label string
}

type edgeSnapshot struct {
	Length, Strain, Stiffness float64
}

// treeSnapshot builds an order-independent, comparable view of t's
// persisted nodes and edges for a whole-tree go-cmp diff: Save/Load may
// renumber handles, so comparing snapshots sorted by content (rather
// than by handle) is what makes the comparison round-trip-stable.
func treeSnapshot(t *tree.Tree) ([]nodeSnapshot, []edgeSnapshot) {
	nodes := make([]nodeSnapshot, 0, t.NodeCount())
	for _, h := range t.Nodes() {
		n, _ := t.Node(h)
		nodes = append(nodes, nodeSnapshot{Loc: n.Loc, Label: n.Label})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Loc != nodes[j].Loc {
			return nodes[i].Loc.X < nodes[j].Loc.X || (nodes[i].Loc.X == nodes[j].Loc.X && nodes[i].Loc.Y < nodes[j].Loc.Y)
		}

		return nodes[i].Label < nodes[j].Label
	})

	edges := make([]edgeSnapshot, 0, t.EdgeCount())
	for _, h := range t.Edges() {
		e, _ := t.Edge(h)
		edges = append(edges, edgeSnapshot{Length: e.Length, Strain: e.Strain, Stiffness: e.Stiffness})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Length != edges[j].Length {
			return edges[i].Length < edges[j].Length
		}

		return edges[i].Strain < edges[j].Strain
	})

	return nodes, edges
}

// triangleTree uses exact-decimal coordinates on purpose: the snapshot
// diff below compares locations byte-for-byte across the 10-digit
// fixed-point encoding, so the fixture must survive that encoding
// without rounding.
func triangleTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := treemaker.NewTree(tree.WithPaperSize(10, 10))
	root, _, _ := tr.Bootstrap(1, geom.Vec{X: 5, Y: 5}, geom.Vec{X: 9, Y: 5})
	_, _, err := tr.AddNode(root, 1, geom.Vec{X: 1, Y: 5})
	require.NoError(t, err)
	_, _, err = tr.AddNode(root, 1, geom.Vec{X: 5, Y: 9})
	require.NoError(t, err)

	return tr
}

// TestSaveLoadRoundTripsNodesEdgesAndScale pins the round-trip law for
// the state this package actually persists (doc.go): every node's
// location and label, every edge's length/strain/stiffness, and the
// tree's paper size and scale survive Save then Load unchanged, and the
// reloaded tree reaches the same cleanup-derived flags.
func TestSaveLoadRoundTripsNodesEdgesAndScale(t *testing.T) {
	tr := triangleTree(t)

	var buf bytes.Buffer
	require.NoError(t, format.Save(tr, &buf))

	loaded, err := format.Load(&buf, treemaker.NewTree)
	require.NoError(t, err)

	assert.Equal(t, tr.Width, loaded.Width)
	assert.Equal(t, tr.Height, loaded.Height)
	assert.Equal(t, tr.Scale, loaded.Scale)
	assert.Equal(t, tr.NodeCount(), loaded.NodeCount())
	assert.Equal(t, tr.EdgeCount(), loaded.EdgeCount())
	assert.True(t, loaded.PolygonsFilled)

	origNodes, origEdges := treeSnapshot(tr)
	loadedNodes, loadedEdges := treeSnapshot(loaded)
	if diff := cmp.Diff(origNodes, loadedNodes); diff != "" {
		t.Errorf("reloaded nodes differ from original (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(origEdges, loadedEdges); diff != "" {
		t.Errorf("reloaded edges differ from original (-want +got):\n%s", diff)
	}
}

// TestLoadToleratesCRLF pins the line-ending tolerance: a payload using
// "\r\n" terminators parses identically to one using "\n".
func TestLoadToleratesCRLF(t *testing.T) {
	tr := triangleTree(t)

	var buf bytes.Buffer
	require.NoError(t, format.Save(tr, &buf))
	crlf := strings.ReplaceAll(buf.String(), "\n", "\r\n")

	loaded, err := format.Load(strings.NewReader(crlf), treemaker.NewTree)
	require.NoError(t, err)
	assert.Equal(t, tr.NodeCount(), loaded.NodeCount())
}

// TestLoadSkipsUnknownConditionTags pins the unknown-tag tolerance: a
// condition record with an unrecognised tag is skipped by its declared
// line count, the rest of the payload still loads, and the skip count
// is reported as an IoUnrecognizedCondition-style error alongside the
// usable tree.
func TestLoadSkipsUnknownConditionTags(t *testing.T) {
	payload := strings.Join([]string{
		"tree",
		"5.0",
		"10.0000000000 10.0000000000 1.0000000000",
		"false 0.0000000000 0.0000000000 0.0000000000",
		"false false false false false false false",
		"2 1 0 0",
		"0 0 0 1",
		"node",
		"0.0000000000 0.0000000000",
		"",
		"node",
		"1.0000000000 0.0000000000",
		"",
		"edge",
		"0 1",
		"1.0000000000 0.0000000000 1.0000000000",
		"0",
		"CNxx",
		"1",
		"0",
		"",
	}, "\n")

	loaded, err := format.Load(strings.NewReader(payload), treemaker.NewTree)
	require.NotNil(t, loaded)
	require.Error(t, err)
	var ioErr *format.IoError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "UnrecognizedCondition", ioErr.Kind)
	assert.Equal(t, "1", ioErr.Token)
	assert.Equal(t, 2, loaded.NodeCount())
	assert.Equal(t, 1, loaded.EdgeCount())
}

// TestLoadRejectsBadTreeTag pins the IoBadTreeTag error path.
func TestLoadRejectsBadTreeTag(t *testing.T) {
	_, err := format.Load(strings.NewReader("nottree\n5.0\n"), treemaker.NewTree)
	assert.Error(t, err)
}

// TestSaveLegacyLineEndingsEmitsCR pins the legacy export mode: a bare
// "\r" terminator instead of "\n".
func TestSaveLegacyLineEndingsEmitsCR(t *testing.T) {
	tr := triangleTree(t)

	var buf bytes.Buffer
	require.NoError(t, format.Save(tr, &buf, format.WithLegacyLineEndings()))
	assert.NotContains(t, buf.String(), "\n")
	assert.Contains(t, buf.String(), "\r")
}
