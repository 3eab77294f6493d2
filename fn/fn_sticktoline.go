package fn

import "github.com/katalvlaran/treemaker/geom"

// StickToLineFn sticks node (ix,iy) to the infinite line through anchor
// with unit direction dir, via the signed perpendicular distance
// cross(point-anchor, dir) == 0.
type StickToLineFn struct {
	ix, iy int
	anchor geom.Vec
	dir    geom.Vec
}

// NewStickToLineFn constructs the constraint; dir need not be pre-normalised.
func NewStickToLineFn(ix, iy int, anchor, dir geom.Vec) *StickToLineFn {
	unit, ok := geom.Normalize(dir)
	if !ok {
		unit = geom.Vec{X: 1, Y: 0}
	}

	return &StickToLineFn{ix: ix, iy: iy, anchor: anchor, dir: unit}
}

func (f *StickToLineFn) Value(x []float64) float64 {
	recordValue()
	p := geom.Vec{X: x[f.ix], Y: x[f.iy]}

	return geom.Cross(geom.Sub(p, f.anchor), f.dir)
}

func (f *StickToLineFn) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	// d/dp cross(p-anchor, dir) = (dir.y, -dir.x) via d/dp (px*dir.y - py*dir.x)
	out[f.ix] = f.dir.Y
	out[f.iy] = -f.dir.X
}

func (f *StickToLineFn) Vars() []int { return []int{f.ix, f.iy} }
