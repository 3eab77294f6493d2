package optimize

import (
	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/nlco"
	"github.com/katalvlaran/treemaker/tree"
)

// EdgeOptimizer searches for the largest single strain every movable edge
// can share while keeping every leaf path feasible. Its variables
// are (common_strain, x1,y1,...,xM,yM) over movable nodes; every pinned
// node keeps the location it had when Initialise ran, and every pinned
// edge keeps its current strain.
type EdgeOptimizer struct {
	optimizerBase
	strainIdx int
}

// NewEdgeOptimizer constructs an EdgeOptimizer over t. Call Initialise,
// then Optimize.
func NewEdgeOptimizer(t *tree.Tree) *EdgeOptimizer {
	return &EdgeOptimizer{optimizerBase: optimizerBase{t: t}}
}

func movableNode(n *tree.Node) bool { return !n.Pinned }
func movableEdge(e *tree.Edge) bool { return !e.Pinned }

// Initialise builds the NLCO problem: objective -common_strain, strain
// bounded to [-0.999,1], movable-node coordinates bounded to the paper
// rectangle, a per-leaf-path StrainPathFnk equality decomposing its
// minimum length into the fixed contribution of pinned edges plus the
// shared-strain contribution of movable edges, and each installed
// condition's edge-side emitter.
func (o *EdgeOptimizer) Initialise() error {
	o.snap = takeSnapshot(o.t)

	var movable []tree.Handle
	for _, h := range o.t.Nodes() {
		if n, ok := o.t.Node(h); ok && movableNode(n) {
			movable = append(movable, h)
		}
	}

	n := 1 + 2*len(movable)
	o.x = make([]float64, n)
	o.nodeOffset = make(map[tree.Handle]int, len(movable))

	o.strainIdx = 0
	o.x[o.strainIdx] = commonStrain(o.t)
	for i, h := range movable {
		node, _ := o.t.Node(h)
		off := 1 + 2*i
		o.nodeOffset[h] = off
		o.x[off], o.x[off+1] = node.Loc.X, node.Loc.Y
	}

	p := nlco.NewProblem(n)
	p.SetObjective(fn.NewOneVarFn(o.strainIdx, -1, 0))
	p.SetBound(o.strainIdx, -0.999, 1)
	for _, off := range o.nodeOffset {
		p.SetBound(off, 0, o.t.Width)
		p.SetBound(off+1, 0, o.t.Height)
	}

	skip := activeConditionedPaths(o.t)
	for _, ph := range leafPaths(o.t) {
		if skip[ph] {
			continue
		}
		path, ok := o.t.Path(ph)
		if !ok {
			continue
		}
		o.addPathEquality(p, path)
	}

	for _, ch := range o.t.Conditions() {
		c, ok := o.t.Condition(ch)
		if !ok {
			continue
		}
		dispatchEdgeCondition(o.t, c, p, o)
	}

	o.problem = p

	return nil
}

// addPathEquality decomposes path's minimum paper length into the fixed
// part (pinned edges at their strained length, plus every movable edge's
// rest length) and the part that moves with the shared strain variable
// (each movable edge contributes length*strain on top of its rest
// length), then adds the StrainPathFnk matching how many of its
// endpoints are variables under this façade. Both parts carry the
// tree's paper scale, since the constraint compares against paper-space
// distances.
func (o *EdgeOptimizer) addPathEquality(p *nlco.Problem, path *tree.Path) {
	var fixedLen, strainCoef float64
	for _, eh := range path.Edges {
		e, ok := o.t.Edge(eh)
		if !ok {
			continue
		}
		if movableEdge(e) {
			strainCoef += e.Length
			fixedLen += e.Length
		} else {
			fixedLen += e.StrainedLength()
		}
	}
	fixedLen *= o.t.Scale
	strainCoef *= o.t.Scale

	ix, iy, okI := o.coordVars(path.Front)
	jx, jy, okJ := o.coordVars(path.Back)
	switch {
	case okI && okJ:
		p.AddEquality(fn.NewStrainPathFn1(ix, iy, jx, jy, o.strainIdx, strainCoef, fixedLen))
	case okI:
		p.AddEquality(fn.NewStrainPathFn2(ix, iy, o.t.MustLoc(path.Back), o.strainIdx, strainCoef, fixedLen))
	case okJ:
		p.AddEquality(fn.NewStrainPathFn2(jx, jy, o.t.MustLoc(path.Front), o.strainIdx, strainCoef, fixedLen))
	default:
		actDist := geom.Dist(o.t.MustLoc(path.Front), o.t.MustLoc(path.Back))
		p.AddEquality(fn.NewStrainPathFn3(o.strainIdx, strainCoef, fixedLen, actDist))
	}
}

// commonStrain returns the current tree's representative movable-edge
// strain, used as the starting point for the shared strain variable: the
// mean strain across movable edges, or 0 if there are none.
func commonStrain(t *tree.Tree) float64 {
	var sum float64
	var n int
	for _, h := range t.Edges() {
		e, ok := t.Edge(h)
		if !ok || !movableEdge(e) {
			continue
		}
		sum += e.Strain
		n++
	}
	if n == 0 {
		return 0
	}

	return sum / float64(n)
}

// BaseOffsetEdge returns the index of the shared strain variable when e
// is movable (every movable edge maps to the one common slot), or
// ErrBadOffset for a pinned edge.
func (o *EdgeOptimizer) BaseOffsetEdge(e tree.Handle) (int, error) {
	edge, ok := o.t.Edge(e)
	if !ok || !movableEdge(edge) {
		return 0, ErrBadOffset
	}

	return o.strainIdx, nil
}

// Optimize runs the NLCO engine and, on success, copies the solution into
// the tree (every movable node's location and every movable edge's
// strain), triggering one cleanup pass.
func (o *EdgeOptimizer) Optimize(opts ...nlco.Option) (nlco.Result, error) {
	if o.problem == nil {
		return nlco.Result{}, ErrNotInitialised
	}
	res, err := o.problem.Minimize(o.x, opts...)
	if err != nil {
		return res, err
	}
	o.DataToTree()

	return res, nil
}

// DataToTree copies the current solution vector into the tree: every
// movable node's location, then the shared strain onto every movable
// edge.
func (o *EdgeOptimizer) DataToTree() {
	locs := make(map[tree.Handle]geom.Vec, len(o.nodeOffset))
	for h, off := range o.nodeOffset {
		locs[h] = geom.Vec{X: o.x[off], Y: o.x[off+1]}
	}
	o.t.SetNodeLocs(locs)

	strain := o.x[o.strainIdx]
	for _, h := range o.t.Edges() {
		e, ok := o.t.Edge(h)
		if !ok || !movableEdge(e) {
			continue
		}
		o.t.SetEdgeStrain(h, strain)
	}
}
