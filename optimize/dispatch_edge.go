package optimize

import (
	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/nlco"
	"github.com/katalvlaran/treemaker/tree"
)

// dispatchEdgeCondition adds the edge-optimiser-side emitter for c, if c
// constrains any part that is a variable under o (a movable node's
// coordinates). EdgeLengthFixed and EdgesSameStrain are not dispatched
// here: an edge under EdgeLengthFixed takes the shared strain like any
// other movable edge (cleanup's pinning pass does not look at
// conditions), and the latter only distinguishes strain variables in
// the strain optimiser, where every edge owns its own.
func dispatchEdgeCondition(t *tree.Tree, c tree.Condition, p *nlco.Problem, o *EdgeOptimizer) {
	switch cc := c.(type) {
	case *tree.NodeCombo:
		emitNodeComboEdge(t, cc.Node, cc, p, o)
	case *tree.OnEdge:
		if ix, iy, ok := o.coordVars(cc.Node); ok {
			p.AddEquality(fn.NewStickToEdgeFn(toFnEdge(cc.Edge), ix, iy, t.Width, t.Height))
		}
	case *tree.OnCorner:
		emitCornerEdge(t, cc.Node, p, o)
	case *tree.PathCombo:
		emitPathAngleEdge(t, cc.Node1(), cc.Node2(), cc.AngleFixed, cc.Angle, cc.AngleQuantized, cc.Quanta, cc.Offset, p, o)
	case *tree.PathAngleFixed:
		emitPathAngleFromPathEdge(t, cc.PathHandle, true, cc.Angle, false, 0, 0, p, o)
	case *tree.PathAngleQuantized:
		emitPathAngleFromPathEdge(t, cc.PathHandle, false, 0, true, cc.Quanta, cc.Offset, p, o)
	case *tree.NodesCollinear:
		emitCollinearEdge(cc.N1, cc.N2, cc.N3, p, o)
	case *tree.Symmetric:
		emitSymmetricEdge(t, cc.Node1, cc.Node2, p, o)
	}
}

func emitCornerEdge(t *tree.Tree, node tree.Handle, p *nlco.Problem, o *EdgeOptimizer) {
	ix, iy, ok := o.coordVars(node)
	if !ok {
		return
	}
	p.AddEquality(fn.NewCornerFn(ix, t.Width))
	p.AddEquality(fn.NewCornerFn(iy, t.Height))
}

func emitNodeComboEdge(t *tree.Tree, node tree.Handle, cc *tree.NodeCombo, p *nlco.Problem, o *EdgeOptimizer) {
	ix, iy, ok := o.coordVars(node)
	if !ok {
		return
	}
	if cc.OnSymLine && t.HasSymmetry {
		p.AddEquality(fn.NewStickToLineFn(ix, iy, t.Symmetry.Anchor, symmetryDir(t)))
	}
	if cc.OnEdge {
		p.AddEquality(fn.NewStickToEdgeFn(toFnEdge(cc.Edge), ix, iy, t.Width, t.Height))
	}
	if cc.OnCorner {
		emitCornerEdge(t, node, p, o)
	}
	if cc.FixX {
		p.AddEquality(fn.NewOneVarFn(ix, 1, -cc.XVal))
	}
	if cc.FixY {
		p.AddEquality(fn.NewOneVarFn(iy, 1, -cc.YVal))
	}
}

func emitPathAngleEdge(t *tree.Tree, n1, n2 tree.Handle, angleFixed bool, angle float64, quantized bool, quanta int, offset float64, p *nlco.Problem, o *EdgeOptimizer) {
	if !angleFixed && !quantized {
		return
	}
	ix, iy, okI := o.coordVars(n1)
	jx, jy, okJ := o.coordVars(n2)
	switch {
	case okI && okJ:
		if quantized {
			p.AddEquality(fn.NewQuantizeAngleFn1(ix, iy, jx, jy, o.x, quanta, offset))
		} else {
			p.AddEquality(fn.NewPathAngleFn1(ix, iy, jx, jy, angle))
		}
	case okI:
		other := t.MustLoc(n2)
		if quantized {
			p.AddEquality(fn.NewQuantizeAngleFn2(ix, iy, [2]float64{other.X, other.Y}, o.x, quanta, offset))
		} else {
			p.AddEquality(fn.NewPathAngleFn2(ix, iy, other, angle))
		}
	case okJ:
		other := t.MustLoc(n1)
		if quantized {
			p.AddEquality(fn.NewQuantizeAngleFn2(jx, jy, [2]float64{other.X, other.Y}, o.x, quanta, offset))
		} else {
			p.AddEquality(fn.NewPathAngleFn2(jx, jy, other, angle))
		}
	}
}

func emitPathAngleFromPathEdge(t *tree.Tree, ph tree.Handle, angleFixed bool, angle float64, quantized bool, quanta int, offset float64, p *nlco.Problem, o *EdgeOptimizer) {
	path, ok := t.Path(ph)
	if !ok {
		return
	}
	emitPathAngleEdge(t, path.Front, path.Back, angleFixed, angle, quantized, quanta, offset, p, o)
}

func emitCollinearEdge(n1, n2, n3 tree.Handle, p *nlco.Problem, o *EdgeOptimizer) {
	ix, iy, ok1 := o.coordVars(n1)
	qx, qy, ok2 := o.coordVars(n2)
	rx, ry, ok3 := o.coordVars(n3)
	t := o.t
	switch {
	case ok1 && ok2 && ok3:
		p.AddEquality(fn.NewCollinearFn1(ix, iy, qx, qy, rx, ry))
	case ok1 && ok2:
		p.AddEquality(fn.NewCollinearFn2(ix, iy, qx, qy, t.MustLoc(n3)))
	case ok1 && ok3:
		p.AddEquality(fn.NewCollinearFn2(ix, iy, rx, ry, t.MustLoc(n2)))
	case ok2 && ok3:
		p.AddEquality(fn.NewCollinearFn2(qx, qy, rx, ry, t.MustLoc(n1)))
	case ok1:
		p.AddEquality(fn.NewCollinearFn3(ix, iy, t.MustLoc(n2), t.MustLoc(n3)))
	case ok2:
		p.AddEquality(fn.NewCollinearFn3(qx, qy, t.MustLoc(n1), t.MustLoc(n3)))
	case ok3:
		p.AddEquality(fn.NewCollinearFn3(rx, ry, t.MustLoc(n1), t.MustLoc(n2)))
	}
}

func emitSymmetricEdge(t *tree.Tree, n1, n2 tree.Handle, p *nlco.Problem, o *EdgeOptimizer) {
	if !t.HasSymmetry {
		return
	}
	dir := symmetryDir(t)
	ix, iy, okI := o.coordVars(n1)
	jx, jy, okJ := o.coordVars(n2)
	switch {
	case okI && okJ:
		p.AddEquality(fn.NewPairFn1A(ix, iy, jx, jy, t.Symmetry.Anchor, dir))
		p.AddEquality(fn.NewPairFn2A(ix, iy, jx, jy, dir))
	case okI:
		other := t.MustLoc(n2)
		p.AddEquality(fn.NewPairFn1B(ix, iy, other, t.Symmetry.Anchor, dir))
		p.AddEquality(fn.NewPairFn2B(ix, iy, other, dir))
	case okJ:
		other := t.MustLoc(n1)
		p.AddEquality(fn.NewPairFn1B(jx, jy, other, t.Symmetry.Anchor, dir))
		p.AddEquality(fn.NewPairFn2B(jx, jy, other, dir))
	}
}
