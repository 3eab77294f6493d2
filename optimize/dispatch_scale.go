package optimize

import (
	"math"

	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/nlco"
	"github.com/katalvlaran/treemaker/tree"
)

// symmetryDir returns the unit direction of t's symmetry axis.
func symmetryDir(t *tree.Tree) geom.Vec {
	return geom.Vec{X: -math.Sin(t.Symmetry.Angle), Y: math.Cos(t.Symmetry.Angle)}
}

// dispatchScaleCondition adds the scale-optimiser-side emitter for c, if
// c constrains any part that is a variable under o (a leaf node's
// coordinates). Conditions over non-variable parts (branch nodes, edge
// strain/length) have no effect on this façade and are silently skipped:
// each façade only dispatches the emitters relevant to its own
// variable layout.
func dispatchScaleCondition(t *tree.Tree, c tree.Condition, p *nlco.Problem, o *ScaleOptimizer) {
	switch cc := c.(type) {
	case *tree.NodeCombo:
		emitNodeComboScale(t, cc.Node, cc, p, o)
	case *tree.OnEdge:
		if ix, iy, ok := o.coordVars(cc.Node); ok {
			p.AddEquality(fn.NewStickToEdgeFn(toFnEdge(cc.Edge), ix, iy, t.Width, t.Height))
		}
	case *tree.OnCorner:
		emitCornerScale(t, cc.Node, cc.Corner, p, o)
	case *tree.PathCombo:
		emitPathAngleScale(t, cc.Node1(), cc.Node2(), cc.AngleFixed, cc.Angle, cc.AngleQuantized, cc.Quanta, cc.Offset, p, o)
	case *tree.PathAngleFixed:
		emitPathAngleFromPathScale(t, cc.PathHandle, true, cc.Angle, false, 0, 0, p, o)
	case *tree.PathAngleQuantized:
		emitPathAngleFromPathScale(t, cc.PathHandle, false, 0, true, cc.Quanta, cc.Offset, p, o)
	case *tree.NodesCollinear:
		emitCollinearScale(cc.N1, cc.N2, cc.N3, p, o)
	case *tree.Symmetric:
		emitSymmetricScale(t, cc.Node1, cc.Node2, p, o)
	}
}

func toFnEdge(e tree.PaperEdgeSide) fn.PaperEdge {
	switch e {
	case tree.EdgeLeft:
		return fn.EdgeLeft
	case tree.EdgeRight:
		return fn.EdgeRight
	case tree.EdgeBottom:
		return fn.EdgeBottom
	default:
		return fn.EdgeTop
	}
}

func emitCornerScale(t *tree.Tree, node tree.Handle, _ tree.PaperCornerSide, p *nlco.Problem, o *ScaleOptimizer) {
	ix, iy, ok := o.coordVars(node)
	if !ok {
		return
	}
	p.AddEquality(fn.NewCornerFn(ix, t.Width))
	p.AddEquality(fn.NewCornerFn(iy, t.Height))
}

func emitNodeComboScale(t *tree.Tree, node tree.Handle, cc *tree.NodeCombo, p *nlco.Problem, o *ScaleOptimizer) {
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
		emitCornerScale(t, node, cc.Corner, p, o)
	}
	if cc.FixX {
		p.AddEquality(fn.NewOneVarFn(ix, 1, -cc.XVal))
	}
	if cc.FixY {
		p.AddEquality(fn.NewOneVarFn(iy, 1, -cc.YVal))
	}
}

func emitPathAngleScale(t *tree.Tree, n1, n2 tree.Handle, angleFixed bool, angle float64, quantized bool, quanta int, offset float64, p *nlco.Problem, o *ScaleOptimizer) {
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

func emitPathAngleFromPathScale(t *tree.Tree, ph tree.Handle, angleFixed bool, angle float64, quantized bool, quanta int, offset float64, p *nlco.Problem, o *ScaleOptimizer) {
	path, ok := t.Path(ph)
	if !ok {
		return
	}
	emitPathAngleScale(t, path.Front, path.Back, angleFixed, angle, quantized, quanta, offset, p, o)
}

func emitCollinearScale(n1, n2, n3 tree.Handle, p *nlco.Problem, o *ScaleOptimizer) {
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

func emitSymmetricScale(t *tree.Tree, n1, n2 tree.Handle, p *nlco.Problem, o *ScaleOptimizer) {
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
