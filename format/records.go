package format

import (
	"strings"

	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

func geomVec(x, y float64) geom.Vec { return geom.Vec{X: x, Y: y} }

func readNode(ls *lineScanner, t *tree.Tree) (tree.Handle, error) {
	tag, ok := ls.next()
	if !ok {
		return tree.Handle{}, ioErr("BadTag", "", ls.line)
	}
	if tag != "node" {
		return tree.Handle{}, ioErr("UnrecognizedTag", tag, ls.line)
	}
	loc, ok := ls.fields()
	if !ok || len(loc) != 2 {
		return tree.Handle{}, ioErr("BadToken", strings.Join(loc, " "), ls.line)
	}
	x, err := parseFloat(loc[0], ls.line)
	if err != nil {
		return tree.Handle{}, err
	}
	y, err := parseFloat(loc[1], ls.line)
	if err != nil {
		return tree.Handle{}, err
	}
	labelLine, ok := ls.next()
	if !ok {
		return tree.Handle{}, ioErr("BadToken", "", ls.line)
	}
	label, err := unescapeString(labelLine, ls.line)
	if err != nil {
		return tree.Handle{}, err
	}

	return t.AddRawNode(geomVec(x, y), label), nil
}

func readEdge(ls *lineScanner, t *tree.Tree, nodes []tree.Handle) (tree.Handle, error) {
	tag, ok := ls.next()
	if !ok {
		return tree.Handle{}, ioErr("BadTag", "", ls.line)
	}
	if tag != "edge" {
		return tree.Handle{}, ioErr("UnrecognizedTag", tag, ls.line)
	}
	ends, ok := ls.fields()
	if !ok || len(ends) != 2 {
		return tree.Handle{}, ioErr("BadToken", strings.Join(ends, " "), ls.line)
	}
	n1idx, err := parseInt(ends[0], ls.line)
	if err != nil {
		return tree.Handle{}, err
	}
	n2idx, err := parseInt(ends[1], ls.line)
	if err != nil {
		return tree.Handle{}, err
	}
	if n1idx < 0 || n1idx >= len(nodes) || n2idx < 0 || n2idx >= len(nodes) {
		return tree.Handle{}, ioErr("BadToken", ends[0]+" "+ends[1], ls.line)
	}

	props, ok := ls.fields()
	if !ok || len(props) != 3 {
		return tree.Handle{}, ioErr("BadToken", strings.Join(props, " "), ls.line)
	}
	length, err := parseFloat(props[0], ls.line)
	if err != nil {
		return tree.Handle{}, err
	}
	strain, err := parseFloat(props[1], ls.line)
	if err != nil {
		return tree.Handle{}, err
	}
	stiffness, err := parseFloat(props[2], ls.line)
	if err != nil {
		return tree.Handle{}, err
	}

	return t.AddRawEdge(nodes[n1idx], nodes[n2idx], length, strain, stiffness), nil
}

// readCondition parses one condition record. Unknown tags are skipped
// by their declared line count and counted in *skipped;
// PathCombo resolves its path via Tree.PathBetween, which only
// succeeds because FinishRawLoad has already rebuilt paths by the time
// conditions are read.
func readCondition(ls *lineScanner, t *tree.Tree, nodes, edges []tree.Handle, skipped *int) error {
	tag, ok := ls.next()
	if !ok {
		return ioErr("BadTag", "", ls.line)
	}
	countTok, ok := ls.next()
	if !ok {
		return ioErr("BadToken", "", ls.line)
	}
	count, err := parseInt(countTok, ls.line)
	if err != nil {
		return err
	}
	payload := make([][]string, count)
	for i := 0; i < count; i++ {
		f, ok := ls.fields()
		if !ok {
			return ioErr("BadToken", "", ls.line)
		}
		payload[i] = f
	}

	switch tag {
	case "CNnc":
		if count != 3 {
			break
		}
		nodeIdx, _ := parseInt(payload[0][0], ls.line)
		if nodeIdx < 0 || nodeIdx >= len(nodes) {
			break
		}
		onSym, _ := parseBool(payload[1][0], ls.line)
		onEdge, _ := parseBool(payload[1][1], ls.line)
		edgeSide, _ := parseInt(payload[1][2], ls.line)
		onCorner, _ := parseBool(payload[1][3], ls.line)
		corner, _ := parseInt(payload[1][4], ls.line)
		fixX, _ := parseBool(payload[2][0], ls.line)
		xVal, _ := parseFloat(payload[2][1], ls.line)
		fixY, _ := parseBool(payload[2][2], ls.line)
		yVal, _ := parseFloat(payload[2][3], ls.line)
		t.AddCondition(&tree.NodeCombo{
			Node: nodes[nodeIdx], OnSymLine: onSym, OnEdge: onEdge, Edge: tree.PaperEdgeSide(edgeSide),
			OnCorner: onCorner, Corner: tree.PaperCornerSide(corner),
			FixX: fixX, XVal: xVal, FixY: fixY, YVal: yVal,
		})
	case "CNel":
		if count != 2 {
			break
		}
		edgeIdx, _ := parseInt(payload[0][0], ls.line)
		if edgeIdx < 0 || edgeIdx >= len(edges) {
			break
		}
		length, _ := parseFloat(payload[1][0], ls.line)
		t.AddCondition(&tree.EdgeLengthFixed{Edge: edges[edgeIdx], Length: length})
	case "CNss":
		if count != 1 || len(payload[0]) != 2 {
			break
		}
		e1, _ := parseInt(payload[0][0], ls.line)
		e2, _ := parseInt(payload[0][1], ls.line)
		if e1 < 0 || e1 >= len(edges) || e2 < 0 || e2 >= len(edges) {
			break
		}
		t.AddCondition(&tree.EdgesSameStrain{Edge1: edges[e1], Edge2: edges[e2]})
	case "CNpc":
		if count != 2 {
			break
		}
		n1, _ := parseInt(payload[0][0], ls.line)
		n2, _ := parseInt(payload[0][1], ls.line)
		if n1 < 0 || n1 >= len(nodes) || n2 < 0 || n2 >= len(nodes) {
			break
		}
		pathH, ok := t.PathBetween(nodes[n1], nodes[n2])
		if !ok {
			break
		}
		active, _ := parseBool(payload[1][0], ls.line)
		angleFixed, _ := parseBool(payload[1][1], ls.line)
		angle, _ := parseFloat(payload[1][2], ls.line)
		angleQuant, _ := parseBool(payload[1][3], ls.line)
		quanta, _ := parseInt(payload[1][4], ls.line)
		offset, _ := parseFloat(payload[1][5], ls.line)
		pc := tree.NewPathCombo(pathH, nodes[n1], nodes[n2])
		pc.Active = active
		pc.AngleFixed = angleFixed
		pc.Angle = angle
		pc.AngleQuantized = angleQuant
		pc.Quanta = quanta
		pc.Offset = offset
		t.AddCondition(pc)
	case "CNcl":
		if count != 1 || len(payload[0]) != 3 {
			break
		}
		n1, _ := parseInt(payload[0][0], ls.line)
		n2, _ := parseInt(payload[0][1], ls.line)
		n3, _ := parseInt(payload[0][2], ls.line)
		if n1 < 0 || n1 >= len(nodes) || n2 < 0 || n2 >= len(nodes) || n3 < 0 || n3 >= len(nodes) {
			break
		}
		t.AddCondition(&tree.NodesCollinear{N1: nodes[n1], N2: nodes[n2], N3: nodes[n3]})
	default:
		*skipped++
	}

	return nil
}
