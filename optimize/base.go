// Package optimize wires the differentiable function library (package
// fn) and the Augmented-Lagrangian engine (package nlco) into the three
// optimiser façades a TreeMaker-style solver drives in sequence: scale,
// edge (shared strain), and per-edge strain. Each façade owns its own
// variable layout and dispatches each installed tree.Condition to the
// emitter appropriate for that layout (one struct assembled by the
// caller, one entry point that runs the engine).
package optimize

import (
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/nlco"
	"github.com/katalvlaran/treemaker/tree"
)

// snapshot captures exactly the state Revert restores: every node's
// location and every edge's strain, as they stood when Initialise ran.
// A façade's Optimize only ever copies its solution into the tree at the
// very end, so a snapshot taken at Initialise
// time is sufficient to undo the whole attempt.
type snapshot struct {
	nodeLocs    map[tree.Handle]geom.Vec
	edgeStrains map[tree.Handle]float64
	scale       float64
}

func takeSnapshot(t *tree.Tree) snapshot {
	s := snapshot{
		nodeLocs:    make(map[tree.Handle]geom.Vec, t.NodeCount()),
		edgeStrains: make(map[tree.Handle]float64, t.EdgeCount()),
		scale:       t.Scale,
	}
	for _, h := range t.Nodes() {
		if n, ok := t.Node(h); ok {
			s.nodeLocs[h] = n.Loc
		}
	}
	for _, h := range t.Edges() {
		if e, ok := t.Edge(h); ok {
			s.edgeStrains[h] = e.Strain
		}
	}

	return s
}

func (s snapshot) restore(t *tree.Tree) {
	t.SetNodeLocs(s.nodeLocs)
	for h, strain := range s.edgeStrains {
		t.SetEdgeStrain(h, strain)
	}
	t.SetScale(s.scale)
}

// optimizerBase is the shared state every façade embeds: the tree being
// optimised, the assembled NLCO problem, the current variable vector,
// the pre-Initialise snapshot for Revert, and the coordinate-index map
// for whichever nodes this façade treats as variables.
type optimizerBase struct {
	t       *tree.Tree
	problem *nlco.Problem
	x       []float64
	snap    snapshot

	// nodeOffset maps a node handle to its x-coordinate's index in x (y
	// is always the following index); present only for nodes this
	// façade's variable layout includes.
	nodeOffset map[tree.Handle]int
}

// BaseOffsetNode returns the index of node n's x-coordinate in the
// façade's variable vector (y is at +1), or ErrBadOffset if n is not one
// of this façade's variables.
func (b *optimizerBase) BaseOffsetNode(n tree.Handle) (int, error) {
	off, ok := b.nodeOffset[n]
	if !ok {
		return 0, ErrBadOffset
	}

	return off, nil
}

// coordVars resolves node n to its (ix, iy) variable indices, reporting
// ok=false if n is not a variable under this façade (the caller then
// falls back to treating n's current location as a fixed constant).
func (b *optimizerBase) coordVars(n tree.Handle) (ix, iy int, ok bool) {
	off, ok := b.nodeOffset[n]

	return off, off + 1, ok
}

// Revert restores every node location and edge strain to the state
// captured when Initialise last ran. The tree is otherwise left
// with whatever Optimize last copied in; Revert is the only way back.
func (b *optimizerBase) Revert() { b.snap.restore(b.t) }

// TreeToData refreshes the façade's variable vector from the tree's
// current node locations (the coordinate slots only; scale/strain slots
// are left as Optimize last set them). Used by callers that perturb the
// tree between an Initialise and a re-Optimize.
func (b *optimizerBase) TreeToData() {
	for h, off := range b.nodeOffset {
		if n, ok := b.t.Node(h); ok {
			b.x[off], b.x[off+1] = n.Loc.X, n.Loc.Y
		}
	}
}

func leafNodes(t *tree.Tree) []tree.Handle {
	var out []tree.Handle
	for _, h := range t.Nodes() {
		if n, ok := t.Node(h); ok && n.Leaf {
			out = append(out, h)
		}
	}

	return out
}

func leafPaths(t *tree.Tree) []tree.Handle {
	var out []tree.Handle
	for _, h := range t.Paths() {
		if p, ok := t.Path(h); ok && p.Leaf {
			out = append(out, h)
		}
	}

	return out
}

// activeConditionedPaths returns the set of leaf paths that carry an
// active-path condition (PathCombo.Active, or its legacy PathActive
// equivalent): these are skipped when a façade would otherwise add its
// own feasibility/strain constraint for the path, since the condition
// already pins it active.
func activeConditionedPaths(t *tree.Tree) map[tree.Handle]bool {
	set := map[tree.Handle]bool{}
	for _, ch := range t.Conditions() {
		c, ok := t.Condition(ch)
		if !ok {
			continue
		}
		switch cc := c.(type) {
		case *tree.PathCombo:
			if cc.Active {
				set[cc.Path()] = true
			}
		case *tree.PathActive:
			set[cc.PathHandle] = true
		}
	}

	return set
}
