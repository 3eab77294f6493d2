package optimize

import (
	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/nlco"
	"github.com/katalvlaran/treemaker/tree"
)

// ScaleOptimizer searches for the largest global paper scale at which
// every leaf path remains feasible. Its variables are (scale,
// x1,y1,...,xL,yL) over leaf nodes only; every other node keeps the
// location it had when Initialise ran.
type ScaleOptimizer struct {
	optimizerBase
	scaleIdx int
}

// NewScaleOptimizer constructs a ScaleOptimizer over t. Call Initialise,
// then Optimize.
func NewScaleOptimizer(t *tree.Tree) *ScaleOptimizer {
	return &ScaleOptimizer{optimizerBase: optimizerBase{t: t}}
}

// Initialise builds the NLCO problem: objective -scale, scale bounded to
// [0,2], leaf coordinates bounded to the paper rectangle, a floor
// inequality scale > 0.1*current_scale, a ScaleBoundFn inequality per
// leaf path not already pinned active by a condition, and each
// installed condition's scale-side emitter.
func (o *ScaleOptimizer) Initialise() error {
	o.snap = takeSnapshot(o.t)

	leaves := leafNodes(o.t)
	n := 1 + 2*len(leaves)
	o.x = make([]float64, n)
	o.nodeOffset = make(map[tree.Handle]int, len(leaves))

	o.scaleIdx = 0
	o.x[o.scaleIdx] = o.t.Scale
	for i, h := range leaves {
		node, _ := o.t.Node(h)
		off := 1 + 2*i
		o.nodeOffset[h] = off
		o.x[off], o.x[off+1] = node.Loc.X, node.Loc.Y
	}

	p := nlco.NewProblem(n)
	p.SetObjective(fn.NewOneVarFn(o.scaleIdx, -1, 0))
	p.SetBound(o.scaleIdx, 0, 2)
	for _, off := range o.nodeOffset {
		p.SetBound(off, 0, o.t.Width)
		p.SetBound(off+1, 0, o.t.Height)
	}
	p.AddInequality(fn.NewOneVarFn(o.scaleIdx, -1, 0.1*o.t.Scale))

	skip := activeConditionedPaths(o.t)
	for _, ph := range leafPaths(o.t) {
		if skip[ph] {
			continue
		}
		path, ok := o.t.Path(ph)
		if !ok {
			continue
		}
		ix, iy, okI := o.coordVars(path.Front)
		jx, jy, okJ := o.coordVars(path.Back)
		if !okI || !okJ {
			continue
		}
		p.AddInequality(fn.NewScaleBoundFn(ix, iy, jx, jy, o.scaleIdx, path.MinLength(o.t)))
	}

	for _, ch := range o.t.Conditions() {
		c, ok := o.t.Condition(ch)
		if !ok {
			continue
		}
		dispatchScaleCondition(o.t, c, p, o)
	}

	o.problem = p

	return nil
}

// Optimize runs the NLCO engine and, on success, copies the solution
// into the tree (scale and every leaf node's location), triggering one
// cleanup pass. Returns ErrBadScale if the resulting scale is
// non-positive.
func (o *ScaleOptimizer) Optimize(opts ...nlco.Option) (nlco.Result, error) {
	if o.problem == nil {
		return nlco.Result{}, ErrNotInitialised
	}
	res, err := o.problem.Minimize(o.x, opts...)
	if err != nil {
		return res, err
	}
	if o.x[o.scaleIdx] <= 0 {
		return res, ErrBadScale
	}
	o.DataToTree()

	return res, nil
}

// DataToTree copies the current solution vector into the tree: every
// leaf node's location, then the global scale.
func (o *ScaleOptimizer) DataToTree() {
	locs := make(map[tree.Handle]geom.Vec, len(o.nodeOffset))
	for h, off := range o.nodeOffset {
		locs[h] = geom.Vec{X: o.x[off], Y: o.x[off+1]}
	}
	o.t.SetNodeLocs(locs)
	o.t.SetScale(o.x[o.scaleIdx])
}
