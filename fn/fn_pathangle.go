package fn

import (
	"math"

	"github.com/katalvlaran/treemaker/geom"
)

// PathAngleFn1 is the linearised angle-equality constraint used when both
// path endpoints move: it demands the direction (x[jx]-x[ix], x[jy]-x[iy])
// be parallel to (cos(theta), sin(theta)), via a zero cross product. This
// avoids the discontinuity of an atan2-based residual and stays smooth
// near theta's wraparound.
type PathAngleFn1 struct {
	ix, iy, jx, jy int
	cosT, sinT     float64
}

func NewPathAngleFn1(ix, iy, jx, jy int, theta float64) *PathAngleFn1 {
	return &PathAngleFn1{ix: ix, iy: iy, jx: jx, jy: jy, cosT: math.Cos(theta), sinT: math.Sin(theta)}
}

func (f *PathAngleFn1) Value(x []float64) float64 {
	recordValue()
	dx := x[f.jx] - x[f.ix]
	dy := x[f.jy] - x[f.iy]

	return -f.sinT*dx + f.cosT*dy
}

func (f *PathAngleFn1) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.ix] = f.sinT
	out[f.iy] = -f.cosT
	out[f.jx] = -f.sinT
	out[f.jy] = f.cosT
}

func (f *PathAngleFn1) Vars() []int { return []int{f.ix, f.iy, f.jx, f.jy} }

// PathAngleFn2 is the nonlinear angle-equality constraint used when only
// one path endpoint moves: atan2(other.y - x[iy], other.x - x[ix]) - theta.
type PathAngleFn2 struct {
	ix, iy int
	other  geom.Vec
	theta  float64
}

func NewPathAngleFn2(ix, iy int, other geom.Vec, theta float64) *PathAngleFn2 {
	return &PathAngleFn2{ix: ix, iy: iy, other: other, theta: theta}
}

func (f *PathAngleFn2) Value(x []float64) float64 {
	recordValue()
	dx := f.other.X - x[f.ix]
	dy := f.other.Y - x[f.iy]

	return wrapAngle(math.Atan2(dy, dx) - f.theta)
}

func (f *PathAngleFn2) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	dx := f.other.X - x[f.ix]
	dy := f.other.Y - x[f.iy]
	r2 := dx*dx + dy*dy
	if r2 < 1e-18 {
		return
	}
	// dx,dy run toward other.X/Y as x[ix]/x[iy] decrease, flipping the
	// sign of d(atan2(dy,dx))/d(dx),d(dy) once through the chain rule.
	out[f.ix] = dy / r2
	out[f.iy] = -dx / r2
}

func (f *PathAngleFn2) Vars() []int { return []int{f.ix, f.iy} }

// wrapAngle reduces a to (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}

	return a
}
