package fn

import "github.com/katalvlaran/treemaker/geom"

// A symmetry line is given by an anchor point and a unit direction d; its
// unit normal is n = rotateCCW90(d). Two nodes P, Q mirror each other
// about the line iff:
//
//	(1) their midpoint lies on the line:      inner(mid-anchor, n) == 0
//	(2) the segment PQ is parallel to n:      cross(Q-P, n) == 0
//
// PairFn1{A,B} implement (1); PairFn2{A,B} implement (2). The "A" variant
// has both nodes moving, the "B" variant has one node moving and the other
// fixed (e.g. mirrored against a border/pinned node).

// PairFn1A: midpoint-on-axis, both nodes moving.
type PairFn1A struct {
	ix, iy, jx, jy int
	anchor, n      geom.Vec
}

func NewPairFn1A(ix, iy, jx, jy int, anchor, dir geom.Vec) *PairFn1A {
	unit, ok := geom.Normalize(dir)
	if !ok {
		unit = geom.Vec{X: 1, Y: 0}
	}

	return &PairFn1A{ix: ix, iy: iy, jx: jx, jy: jy, anchor: anchor, n: geom.RotateCCW90(unit)}
}

func (f *PairFn1A) Value(x []float64) float64 {
	recordValue()
	mid := geom.Vec{X: (x[f.ix] + x[f.jx]) / 2, Y: (x[f.iy] + x[f.jy]) / 2}

	return geom.Inner(geom.Sub(mid, f.anchor), f.n)
}

func (f *PairFn1A) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.ix] = f.n.X / 2
	out[f.iy] = f.n.Y / 2
	out[f.jx] = f.n.X / 2
	out[f.jy] = f.n.Y / 2
}

func (f *PairFn1A) Vars() []int { return []int{f.ix, f.iy, f.jx, f.jy} }

// PairFn1B: midpoint-on-axis, one node moving, the other fixed.
type PairFn1B struct {
	ix, iy    int
	fixed     geom.Vec
	anchor, n geom.Vec
}

func NewPairFn1B(ix, iy int, fixed, anchor, dir geom.Vec) *PairFn1B {
	unit, ok := geom.Normalize(dir)
	if !ok {
		unit = geom.Vec{X: 1, Y: 0}
	}

	return &PairFn1B{ix: ix, iy: iy, fixed: fixed, anchor: anchor, n: geom.RotateCCW90(unit)}
}

func (f *PairFn1B) Value(x []float64) float64 {
	recordValue()
	mid := geom.Vec{X: (x[f.ix] + f.fixed.X) / 2, Y: (x[f.iy] + f.fixed.Y) / 2}

	return geom.Inner(geom.Sub(mid, f.anchor), f.n)
}

func (f *PairFn1B) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.ix] = f.n.X / 2
	out[f.iy] = f.n.Y / 2
}

func (f *PairFn1B) Vars() []int { return []int{f.ix, f.iy} }

// PairFn2A: PQ parallel to the symmetry normal, both nodes moving.
type PairFn2A struct {
	ix, iy, jx, jy int
	n              geom.Vec
}

func NewPairFn2A(ix, iy, jx, jy int, dir geom.Vec) *PairFn2A {
	unit, ok := geom.Normalize(dir)
	if !ok {
		unit = geom.Vec{X: 1, Y: 0}
	}

	return &PairFn2A{ix: ix, iy: iy, jx: jx, jy: jy, n: geom.RotateCCW90(unit)}
}

func (f *PairFn2A) Value(x []float64) float64 {
	recordValue()
	seg := geom.Vec{X: x[f.jx] - x[f.ix], Y: x[f.jy] - x[f.iy]}

	return geom.Cross(seg, f.n)
}

func (f *PairFn2A) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.ix] = -f.n.Y
	out[f.iy] = f.n.X
	out[f.jx] = f.n.Y
	out[f.jy] = -f.n.X
}

func (f *PairFn2A) Vars() []int { return []int{f.ix, f.iy, f.jx, f.jy} }

// PairFn2B: PQ parallel to the symmetry normal, one node moving, the
// other fixed.
type PairFn2B struct {
	ix, iy int
	fixed  geom.Vec
	n      geom.Vec
}

func NewPairFn2B(ix, iy int, fixed, dir geom.Vec) *PairFn2B {
	unit, ok := geom.Normalize(dir)
	if !ok {
		unit = geom.Vec{X: 1, Y: 0}
	}

	return &PairFn2B{ix: ix, iy: iy, fixed: fixed, n: geom.RotateCCW90(unit)}
}

func (f *PairFn2B) Value(x []float64) float64 {
	recordValue()
	seg := geom.Vec{X: f.fixed.X - x[f.ix], Y: f.fixed.Y - x[f.iy]}

	return geom.Cross(seg, f.n)
}

func (f *PairFn2B) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.ix] = -f.n.Y
	out[f.iy] = f.n.X
}

func (f *PairFn2B) Vars() []int { return []int{f.ix, f.iy} }
