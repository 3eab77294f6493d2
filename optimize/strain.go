package optimize

import (
	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/nlco"
	"github.com/katalvlaran/treemaker/tree"
	"github.com/spakin/disjoint"
)

// regularizeWeight is the small coordinate-regulariser coefficient added
// to the strain optimiser's objective, anchoring each movable node near
// its Initialise-time location so the solver doesn't drift to a distant
// equally-feasible layout while chasing the strain term.
const regularizeWeight = 1e-6

// StrainOptimizer searches for the per-edge strain assignment (one free
// variable per group of edges tied together by an EdgesSameStrain
// condition, one each otherwise) that minimises stiffness-weighted strain
// energy while keeping every leaf path feasible. Its variables are
// (group-strain-1,...,group-strain-G, x1,y1,...,xM,yM) over movable
// nodes.
type StrainOptimizer struct {
	optimizerBase

	// strainGroup maps a movable edge handle to its shared strain
	// variable's index in x.
	strainGroup map[tree.Handle]int
	groupEdges  [][]tree.Handle
}

// NewStrainOptimizer constructs a StrainOptimizer over t. Call
// Initialise, then Optimize.
func NewStrainOptimizer(t *tree.Tree) *StrainOptimizer {
	return &StrainOptimizer{optimizerBase: optimizerBase{t: t}}
}

// Initialise builds the NLCO problem: one strain variable per
// EdgesSameStrain-linked group of movable edges, movable-node coordinate
// variables, objective = stiffness-weighted sum of group strain squares
// plus a small per-node coordinate regulariser, a per-leaf-path
// MultiStrainPathFnk equality decomposing its minimum length into pinned-
// edge fixed length plus each movable edge's own strain contribution, and
// each installed condition's strain-side emitter.
func (o *StrainOptimizer) Initialise() error {
	o.snap = takeSnapshot(o.t)

	o.groupStrainVars()

	var movable []tree.Handle
	for _, h := range o.t.Nodes() {
		if n, ok := o.t.Node(h); ok && movableNode(n) {
			movable = append(movable, h)
		}
	}

	numGroups := len(o.groupEdges)
	n := numGroups + 2*len(movable)
	o.x = make([]float64, n)
	o.nodeOffset = make(map[tree.Handle]int, len(movable))

	for gi, edges := range o.groupEdges {
		o.x[gi] = groupMeanStrain(o.t, edges)
	}
	for i, h := range movable {
		node, _ := o.t.Node(h)
		off := numGroups + 2*i
		o.nodeOffset[h] = off
		o.x[off], o.x[off+1] = node.Loc.X, node.Loc.Y
	}

	p := nlco.NewProblem(n)
	objective := fn.NewSumFn()
	for gi, edges := range o.groupEdges {
		objective.Add(fn.NewSquareFn(gi, groupStiffness(o.t, edges)), 1)
	}
	for h, off := range o.nodeOffset {
		loc := o.t.MustLoc(h)
		objective.Add(fn.NewOffsetSquareFn(off, loc.X, regularizeWeight), 1)
		objective.Add(fn.NewOffsetSquareFn(off+1, loc.Y, regularizeWeight), 1)
	}
	p.SetObjective(objective)

	for gi := range o.groupEdges {
		p.SetBound(gi, -0.999, 1)
	}
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
		dispatchStrainCondition(o.t, c, p, o)
	}

	o.problem = p

	return nil
}

// groupStrainVars partitions every movable edge into EdgesSameStrain-
// linked groups via union-find, then assigns each group a dense index.
func (o *StrainOptimizer) groupStrainVars() {
	var movable []tree.Handle
	elems := map[tree.Handle]*disjoint.Element{}
	for _, h := range o.t.Edges() {
		if e, ok := o.t.Edge(h); ok && movableEdge(e) {
			movable = append(movable, h)
			elems[h] = disjoint.NewElement()
		}
	}

	for _, ch := range o.t.Conditions() {
		c, ok := o.t.Condition(ch)
		if !ok {
			continue
		}
		same, ok := c.(*tree.EdgesSameStrain)
		if !ok {
			continue
		}
		e1, ok1 := elems[same.Edge1]
		e2, ok2 := elems[same.Edge2]
		if ok1 && ok2 {
			disjoint.Union(e1, e2)
		}
	}

	roots := map[*disjoint.Element]int{}
	o.strainGroup = make(map[tree.Handle]int, len(movable))
	o.groupEdges = nil
	for _, h := range movable {
		root := elems[h].Find()
		gi, seen := roots[root]
		if !seen {
			gi = len(o.groupEdges)
			roots[root] = gi
			o.groupEdges = append(o.groupEdges, nil)
		}
		o.groupEdges[gi] = append(o.groupEdges[gi], h)
		o.strainGroup[h] = gi
	}
}

func groupStiffness(t *tree.Tree, edges []tree.Handle) float64 {
	var sum float64
	for _, h := range edges {
		if e, ok := t.Edge(h); ok {
			sum += e.Stiffness
		}
	}

	return sum
}

func groupMeanStrain(t *tree.Tree, edges []tree.Handle) float64 {
	var sum float64
	for _, h := range edges {
		if e, ok := t.Edge(h); ok {
			sum += e.Strain
		}
	}
	if len(edges) == 0 {
		return 0
	}

	return sum / float64(len(edges))
}

// addPathEquality decomposes path's minimum paper length into the fixed
// part (pinned edges at their strained length, plus every movable edge's
// rest length) and each strain group's variable contribution, then adds
// the MultiStrainPathFnk matching how many of its endpoints are
// variables under this façade. Both parts carry the tree's paper scale.
func (o *StrainOptimizer) addPathEquality(p *nlco.Problem, path *tree.Path) {
	var fixedLen float64
	var strainIdx []int
	var strainCoef []float64
	for _, eh := range path.Edges {
		e, ok := o.t.Edge(eh)
		if !ok {
			continue
		}
		if gi, ok := o.strainGroup[eh]; ok {
			strainIdx = append(strainIdx, gi)
			strainCoef = append(strainCoef, e.Length*o.t.Scale)
			fixedLen += e.Length
		} else {
			fixedLen += e.StrainedLength()
		}
	}
	fixedLen *= o.t.Scale

	ix, iy, okI := o.coordVars(path.Front)
	jx, jy, okJ := o.coordVars(path.Back)
	switch {
	case okI && okJ:
		p.AddEquality(fn.NewMultiStrainPathFn1(ix, iy, jx, jy, strainIdx, strainCoef, fixedLen))
	case okI:
		p.AddEquality(fn.NewMultiStrainPathFn2(ix, iy, o.t.MustLoc(path.Back), strainIdx, strainCoef, fixedLen))
	case okJ:
		p.AddEquality(fn.NewMultiStrainPathFn2(jx, jy, o.t.MustLoc(path.Front), strainIdx, strainCoef, fixedLen))
	default:
		actDist := geom.Dist(o.t.MustLoc(path.Front), o.t.MustLoc(path.Back))
		p.AddEquality(fn.NewMultiStrainPathFn3(strainIdx, strainCoef, fixedLen, actDist))
	}
}

// BaseOffsetEdge returns the index of a movable edge's strain group in
// the variable vector, or ErrBadOffset for a pinned edge.
func (o *StrainOptimizer) BaseOffsetEdge(e tree.Handle) (int, error) {
	gi, ok := o.strainGroup[e]
	if !ok {
		return 0, ErrBadOffset
	}

	return gi, nil
}

// Optimize runs the NLCO engine and, on success, copies the solution into
// the tree (every movable node's location and every movable edge's
// group-representative strain), triggering one cleanup pass.
func (o *StrainOptimizer) Optimize(opts ...nlco.Option) (nlco.Result, error) {
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
// movable node's location, then each movable edge's group strain value.
func (o *StrainOptimizer) DataToTree() {
	locs := make(map[tree.Handle]geom.Vec, len(o.nodeOffset))
	for h, off := range o.nodeOffset {
		locs[h] = geom.Vec{X: o.x[off], Y: o.x[off+1]}
	}
	o.t.SetNodeLocs(locs)

	for h, gi := range o.strainGroup {
		o.t.SetEdgeStrain(h, o.x[gi])
	}
}
