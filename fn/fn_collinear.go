package fn

import "github.com/katalvlaran/treemaker/geom"

// Three-point collinearity is cross(Q-P, R-P) == 0. CollinearFn1 has all
// three nodes moving; CollinearFn2 has two moving and one fixed;
// CollinearFn3 has one moving and two fixed.

// CollinearFn1: P, Q, R all moving.
type CollinearFn1 struct {
	px, py, qx, qy, rx, ry int
}

func NewCollinearFn1(px, py, qx, qy, rx, ry int) *CollinearFn1 {
	return &CollinearFn1{px: px, py: py, qx: qx, qy: qy, rx: rx, ry: ry}
}

func (f *CollinearFn1) Value(x []float64) float64 {
	recordValue()
	qp := geom.Vec{X: x[f.qx] - x[f.px], Y: x[f.qy] - x[f.py]}
	rp := geom.Vec{X: x[f.rx] - x[f.px], Y: x[f.ry] - x[f.py]}

	return geom.Cross(qp, rp)
}

func (f *CollinearFn1) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	qpx, qpy := x[f.qx]-x[f.px], x[f.qy]-x[f.py]
	rpx, rpy := x[f.rx]-x[f.px], x[f.ry]-x[f.py]
	// cross = qpx*rpy - qpy*rpx
	out[f.qx] += rpy
	out[f.qy] += -rpx
	out[f.rx] += -qpy
	out[f.ry] += qpx
	out[f.px] += -(rpy - qpy)
	out[f.py] += -(qpx - rpx)
}

func (f *CollinearFn1) Vars() []int {
	return []int{f.px, f.py, f.qx, f.qy, f.rx, f.ry}
}

// CollinearFn2: P, Q moving; R fixed.
type CollinearFn2 struct {
	px, py, qx, qy int
	r              geom.Vec
}

func NewCollinearFn2(px, py, qx, qy int, r geom.Vec) *CollinearFn2 {
	return &CollinearFn2{px: px, py: py, qx: qx, qy: qy, r: r}
}

func (f *CollinearFn2) Value(x []float64) float64 {
	recordValue()
	qp := geom.Vec{X: x[f.qx] - x[f.px], Y: x[f.qy] - x[f.py]}
	rp := geom.Vec{X: f.r.X - x[f.px], Y: f.r.Y - x[f.py]}

	return geom.Cross(qp, rp)
}

func (f *CollinearFn2) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	qpx, qpy := x[f.qx]-x[f.px], x[f.qy]-x[f.py]
	rpx, rpy := f.r.X-x[f.px], f.r.Y-x[f.py]
	out[f.qx] += rpy
	out[f.qy] += -rpx
	out[f.px] += -(rpy - qpy)
	out[f.py] += -(qpx - rpx)
}

func (f *CollinearFn2) Vars() []int { return []int{f.px, f.py, f.qx, f.qy} }

// CollinearFn3: P moving; Q, R fixed.
type CollinearFn3 struct {
	px, py int
	q, r   geom.Vec
}

func NewCollinearFn3(px, py int, q, r geom.Vec) *CollinearFn3 {
	return &CollinearFn3{px: px, py: py, q: q, r: r}
}

func (f *CollinearFn3) Value(x []float64) float64 {
	recordValue()
	qp := geom.Vec{X: f.q.X - x[f.px], Y: f.q.Y - x[f.py]}
	rp := geom.Vec{X: f.r.X - x[f.px], Y: f.r.Y - x[f.py]}

	return geom.Cross(qp, rp)
}

func (f *CollinearFn3) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	qpx, qpy := f.q.X-x[f.px], f.q.Y-x[f.py]
	rpx, rpy := f.r.X-x[f.px], f.r.Y-x[f.py]
	out[f.px] += -(rpy - qpy)
	out[f.py] += -(qpx - rpx)
}

func (f *CollinearFn3) Vars() []int { return []int{f.px, f.py} }
