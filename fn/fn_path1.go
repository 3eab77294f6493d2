package fn

import "math"

// PathFn1 computes the scale-optimiser path-feasibility inequality
// L - |(x[ix],x[iy]) - (x[jx],x[jy])| <= 0, i.e. the paper distance
// between two leaf nodes must be at least the path's minimum length L.
type PathFn1 struct {
	ix, iy, jx, jy int
	l              float64
}

// NewPathFn1 constructs the path-feasibility inequality for minimum length l.
func NewPathFn1(ix, iy, jx, jy int, l float64) *PathFn1 {
	return &PathFn1{ix: ix, iy: iy, jx: jx, jy: jy, l: l}
}

func (f *PathFn1) dx(x []float64) (dx, dy, dist float64) {
	dx = x[f.ix] - x[f.jx]
	dy = x[f.iy] - x[f.jy]
	dist = math.Hypot(dx, dy)

	return dx, dy, dist
}

func (f *PathFn1) Value(x []float64) float64 {
	recordValue()
	_, _, dist := f.dx(x)

	return f.l - dist
}

func (f *PathFn1) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	dx, dy, dist := f.dx(x)
	if dist < 1e-12 {
		// Gradient of |.| is undefined at 0; report zero, the AL engine
		// will still make progress from the constraint value alone.
		return
	}
	out[f.ix] = -dx / dist
	out[f.iy] = -dy / dist
	out[f.jx] = dx / dist
	out[f.jy] = dy / dist
}

func (f *PathFn1) Vars() []int { return []int{f.ix, f.iy, f.jx, f.jy} }
