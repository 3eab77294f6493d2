package format

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/treemaker/tree"
)

// lineScanner wraps bufio.Scanner with a running line counter and
// tolerance for both "\n" and "\r\n" terminators (bufio's default
// ScanLines already strips a trailing "\r", so no extra handling is
// needed there).
type lineScanner struct {
	sc   *bufio.Scanner
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxStringLen)

	return &lineScanner{sc: sc}
}

func (ls *lineScanner) next() (string, bool) {
	if !ls.sc.Scan() {
		return "", false
	}
	ls.line++

	return ls.sc.Text(), true
}

func (ls *lineScanner) fields() ([]string, bool) {
	s, ok := ls.next()
	if !ok {
		return nil, false
	}

	return strings.Fields(s), true
}

// Load parses a persistent-format payload and reconstructs a Tree.
// newTree is the constructor to use (so a caller can pass
// treemaker.NewTree to get every cleanup hook wired, or tree.NewTree for
// a bare tree with no hooks); Load never imports the root package
// itself, avoiding an import cycle.
func Load(r io.Reader, newTree func(opts ...tree.TreeOption) *tree.Tree) (*tree.Tree, error) {
	ls := newLineScanner(r)

	tag, ok := ls.next()
	if !ok {
		return nil, ioErr("BadTreeTag", "", ls.line)
	}
	if tag != "tree" {
		return nil, ioErr("BadTreeTag", tag, ls.line)
	}

	version, ok := ls.next()
	if !ok {
		return nil, ioErr("BadTreeVersion", "", ls.line)
	}
	switch version {
	case "5.0", "4.0", "3.0":
	default:
		return nil, ioErr("BadTreeVersion", version, ls.line)
	}

	paper, ok := ls.fields()
	if !ok || len(paper) != 3 {
		return nil, ioErr("BadToken", strings.Join(paper, " "), ls.line)
	}
	width, err := parseFloat(paper[0], ls.line)
	if err != nil {
		return nil, err
	}
	height, err := parseFloat(paper[1], ls.line)
	if err != nil {
		return nil, err
	}
	scale, err := parseFloat(paper[2], ls.line)
	if err != nil {
		return nil, err
	}

	sym, ok := ls.fields()
	if !ok || len(sym) != 4 {
		return nil, ioErr("BadToken", strings.Join(sym, " "), ls.line)
	}
	hasSym, err := parseBool(sym[0], ls.line)
	if err != nil {
		return nil, err
	}
	symX, err := parseFloat(sym[1], ls.line)
	if err != nil {
		return nil, err
	}
	symY, err := parseFloat(sym[2], ls.line)
	if err != nil {
		return nil, err
	}
	symAngle, err := parseFloat(sym[3], ls.line)
	if err != nil {
		return nil, err
	}

	if _, ok := ls.fields(); !ok { // flags line: recomputed by cleanup, not trusted
		return nil, ioErr("BadToken", "", ls.line)
	}

	counts1, ok := ls.fields()
	if !ok || len(counts1) != 4 {
		return nil, ioErr("BadToken", strings.Join(counts1, " "), ls.line)
	}
	numNodes, err := parseInt(counts1[0], ls.line)
	if err != nil {
		return nil, err
	}
	numEdges, err := parseInt(counts1[1], ls.line)
	if err != nil {
		return nil, err
	}

	counts2, ok := ls.fields()
	if !ok || len(counts2) != 4 {
		return nil, ioErr("BadToken", strings.Join(counts2, " "), ls.line)
	}
	numConditions, err := parseInt(counts2[3], ls.line)
	if err != nil {
		return nil, err
	}

	t := newTree(tree.WithPaperSize(width, height))
	t.SetScale(scale)
	t.SetSymmetry(hasSym, tree.SymmetryAxis{Anchor: geomVec(symX, symY), Angle: symAngle})

	end := t.BeginRawLoad()
	nodes := make([]tree.Handle, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		h, err := readNode(ls, t)
		if err != nil {
			end()

			return nil, err
		}
		nodes = append(nodes, h)
	}

	edges := make([]tree.Handle, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		h, err := readEdge(ls, t, nodes)
		if err != nil {
			end()

			return nil, err
		}
		edges = append(edges, h)
	}

	rootTok, ok := ls.next()
	if !ok {
		end()

		return nil, ioErr("BadToken", "", ls.line)
	}
	rootIdx, err := parseInt(strings.TrimSpace(rootTok), ls.line)
	if err != nil {
		end()

		return nil, err
	}
	if rootIdx >= 0 && rootIdx < len(nodes) {
		t.SetRootNode(nodes[rootIdx])
	}

	t.FinishRawLoad()

	skipped := 0
	for i := 0; i < numConditions; i++ {
		if err := readCondition(ls, t, nodes, edges, &skipped); err != nil {
			end()

			return nil, err
		}
	}

	end()

	if skipped > 0 {
		return t, ioErr("UnrecognizedCondition", strconv.Itoa(skipped), ls.line)
	}

	return t, nil
}
