package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/treemaker/tree"
)

// SaveOption configures Save.
type SaveOption func(*saveConfig)

type saveConfig struct {
	legacyCR bool
}

// WithLegacyLineEndings makes Save emit a bare "\r" line terminator
// instead of "\n", the legacy export mode.
func WithLegacyLineEndings() SaveOption {
	return func(c *saveConfig) { c.legacyCR = true }
}

// Save writes t to w in the persistent format. See doc.go for the
// scope decision limiting persisted state to nodes, edges, paper/scale/
// symmetry, and conditions.
func Save(t *tree.Tree, w io.Writer, opts ...SaveOption) error {
	cfg := saveConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	nl := "\n"
	if cfg.legacyCR {
		nl = "\r"
	}

	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
		bw.WriteString(nl)
	}

	var nodes []tree.Handle
	for _, h := range t.Nodes() {
		if n, ok := t.Node(h); ok && !n.Sub {
			nodes = append(nodes, h)
		}
	}
	edges := t.Edges()
	conditions := t.Conditions()
	nodeIndex := make(map[tree.Handle]int, len(nodes))
	for i, h := range nodes {
		nodeIndex[h] = i
	}
	edgeIndex := make(map[tree.Handle]int, len(edges))
	for i, h := range edges {
		edgeIndex[h] = i
	}

	line("tree")
	line("5.0")
	line("%s %s %s", formatFloat(t.Width), formatFloat(t.Height), formatFloat(t.Scale))
	line("%s %s %s %s", formatBool(t.HasSymmetry), formatFloat(t.Symmetry.Anchor.X),
		formatFloat(t.Symmetry.Anchor.Y), formatFloat(t.Symmetry.Angle))
	line("%s %s %s %s %s %s %s", formatBool(t.Feasible), formatBool(t.PolygonsValid),
		formatBool(t.PolygonsFilled), formatBool(t.VertexDepthValid), formatBool(t.FacetDataValid),
		formatBool(t.LocalRootConnectable), formatBool(false))
	line("%d %d %d %d", len(nodes), len(edges), 0, 0)
	line("%d %d %d %d", 0, 0, 0, len(conditions))

	for _, h := range nodes {
		n, ok := t.Node(h)
		if !ok {
			continue
		}
		line("node")
		line("%s %s", formatFloat(n.Loc.X), formatFloat(n.Loc.Y))
		line("%s", escapeString(n.Label))
	}

	for _, h := range edges {
		e, ok := t.Edge(h)
		if !ok {
			continue
		}
		line("edge")
		line("%d %d", nodeIndex[e.N1], nodeIndex[e.N2])
		line("%s %s %s", formatFloat(e.Length), formatFloat(e.Strain), formatFloat(e.Stiffness))
	}

	root := 0
	if i, ok := nodeIndex[t.RootNode]; ok {
		root = i
	}
	line("%d", root)

	for _, h := range conditions {
		c, ok := t.Condition(h)
		if !ok {
			continue
		}
		writeCondition(line, c, nodeIndex, edgeIndex, t)
	}

	return bw.Flush()
}

func writeCondition(line func(string, ...any), c tree.Condition, nodeIndex, edgeIndex map[tree.Handle]int, t *tree.Tree) {
	switch v := c.(type) {
	case *tree.NodeCombo:
		line("CNnc")
		line("3")
		line("%d", nodeIndex[v.Node])
		line("%s %s %d %s %d", formatBool(v.OnSymLine), formatBool(v.OnEdge), int(v.Edge),
			formatBool(v.OnCorner), int(v.Corner))
		line("%s %s %s %s", formatBool(v.FixX), formatFloat(v.XVal), formatBool(v.FixY), formatFloat(v.YVal))
	case *tree.EdgeLengthFixed:
		line("CNel")
		line("2")
		line("%d", edgeIndex[v.Edge])
		line("%s", formatFloat(v.Length))
	case *tree.EdgesSameStrain:
		line("CNss")
		line("1")
		line("%d %d", edgeIndex[v.Edge1], edgeIndex[v.Edge2])
	case *tree.PathCombo:
		line("CNpc")
		line("2")
		line("%d %d", nodeIndex[v.Node1()], nodeIndex[v.Node2()])
		line("%s %s %s %s %d %s", formatBool(v.Active), formatBool(v.AngleFixed), formatFloat(v.Angle),
			formatBool(v.AngleQuantized), v.Quanta, formatFloat(v.Offset))
	case *tree.NodesCollinear:
		line("CNcl")
		line("1")
		line("%d %d %d", nodeIndex[v.N1], nodeIndex[v.N2], nodeIndex[v.N3])
	default:
		// Legacy-only variants (Symmetric, Paired, OnEdge, OnCorner,
		// PathActive, PathAngleFixed, PathAngleQuantized) exist for
		// in-memory compatibility and are never persisted; saving a tree
		// that carries one silently drops it from the payload.
	}
}
