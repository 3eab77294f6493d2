package fn

import (
	"math"

	"github.com/katalvlaran/treemaker/geom"
)

// StrainPathFn1 is a path-length equality with two moving endpoints and a
// single scalar strain variable (the edge optimiser's one common_strain
// variable): the constraint is
//
//	(fixedLen + strainCoef*x[strainIdx]) - |(x[ix],x[iy]) - (x[jx],x[jy])| == 0
//
// fixedLen is the sum of the path's edge lengths that do not move with the
// strain variable (already-pinned/conditioned edges); strainCoef is the
// summed rest length of the edges that do scale with the shared strain.
type StrainPathFn1 struct {
	ix, iy, jx, jy int
	strainIdx      int
	strainCoef     float64
	fixedLen       float64
}

func NewStrainPathFn1(ix, iy, jx, jy, strainIdx int, strainCoef, fixedLen float64) *StrainPathFn1 {
	return &StrainPathFn1{ix: ix, iy: iy, jx: jx, jy: jy, strainIdx: strainIdx, strainCoef: strainCoef, fixedLen: fixedLen}
}

func (f *StrainPathFn1) Value(x []float64) float64 {
	recordValue()
	dist := math.Hypot(x[f.ix]-x[f.jx], x[f.iy]-x[f.jy])

	return f.fixedLen + f.strainCoef*x[f.strainIdx] - dist
}

func (f *StrainPathFn1) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	dx := x[f.ix] - x[f.jx]
	dy := x[f.iy] - x[f.jy]
	dist := math.Hypot(dx, dy)
	out[f.strainIdx] = f.strainCoef
	if dist < 1e-12 {
		return
	}
	out[f.ix] = -dx / dist
	out[f.iy] = -dy / dist
	out[f.jx] = dx / dist
	out[f.jy] = dy / dist
}

func (f *StrainPathFn1) Vars() []int {
	return []int{f.ix, f.iy, f.jx, f.jy, f.strainIdx}
}

// StrainPathFn2 is a path-length equality with one moving endpoint (ix,iy)
// and one fixed endpoint (a pinned/border node location), one scalar
// strain variable.
type StrainPathFn2 struct {
	ix, iy     int
	fixed      geom.Vec
	strainIdx  int
	strainCoef float64
	fixedLen   float64
}

func NewStrainPathFn2(ix, iy int, fixed geom.Vec, strainIdx int, strainCoef, fixedLen float64) *StrainPathFn2 {
	return &StrainPathFn2{ix: ix, iy: iy, fixed: fixed, strainIdx: strainIdx, strainCoef: strainCoef, fixedLen: fixedLen}
}

func (f *StrainPathFn2) Value(x []float64) float64 {
	recordValue()
	dist := math.Hypot(x[f.ix]-f.fixed.X, x[f.iy]-f.fixed.Y)

	return f.fixedLen + f.strainCoef*x[f.strainIdx] - dist
}

func (f *StrainPathFn2) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	dx := x[f.ix] - f.fixed.X
	dy := x[f.iy] - f.fixed.Y
	dist := math.Hypot(dx, dy)
	out[f.strainIdx] = f.strainCoef
	if dist < 1e-12 {
		return
	}
	out[f.ix] = -dx / dist
	out[f.iy] = -dy / dist
}

func (f *StrainPathFn2) Vars() []int { return []int{f.ix, f.iy, f.strainIdx} }

// StrainPathFn3 is a path-length equality with zero moving endpoints: both
// path endpoints are fixed (pinned) locations, so only the strain variable
// appears; actDist is the constant paper distance between the two fixed
// endpoints.
type StrainPathFn3 struct {
	strainIdx  int
	strainCoef float64
	fixedLen   float64
	actDist    float64
}

func NewStrainPathFn3(strainIdx int, strainCoef, fixedLen, actDist float64) *StrainPathFn3 {
	return &StrainPathFn3{strainIdx: strainIdx, strainCoef: strainCoef, fixedLen: fixedLen, actDist: actDist}
}

func (f *StrainPathFn3) Value(x []float64) float64 {
	recordValue()

	return f.fixedLen + f.strainCoef*x[f.strainIdx] - f.actDist
}

func (f *StrainPathFn3) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.strainIdx] = f.strainCoef
}

func (f *StrainPathFn3) Vars() []int { return []int{f.strainIdx} }

// MultiStrainPathFn1 generalizes StrainPathFn1 to the strain optimiser,
// where every edge along the path owns its own strain variable instead of
// sharing one: the variable contribution is sum(strainCoef[k]*x[strainIdx[k]]).
type MultiStrainPathFn1 struct {
	ix, iy, jx, jy int
	strainIdx      []int
	strainCoef     []float64
	fixedLen       float64
}

func NewMultiStrainPathFn1(ix, iy, jx, jy int, strainIdx []int, strainCoef []float64, fixedLen float64) *MultiStrainPathFn1 {
	return &MultiStrainPathFn1{ix: ix, iy: iy, jx: jx, jy: jy, strainIdx: strainIdx, strainCoef: strainCoef, fixedLen: fixedLen}
}

func (f *MultiStrainPathFn1) variable(x []float64) float64 {
	sum := f.fixedLen
	for k, idx := range f.strainIdx {
		sum += f.strainCoef[k] * x[idx]
	}

	return sum
}

func (f *MultiStrainPathFn1) Value(x []float64) float64 {
	recordValue()
	dist := math.Hypot(x[f.ix]-x[f.jx], x[f.iy]-x[f.jy])

	return f.variable(x) - dist
}

func (f *MultiStrainPathFn1) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	for k, idx := range f.strainIdx {
		out[idx] += f.strainCoef[k]
	}
	dx := x[f.ix] - x[f.jx]
	dy := x[f.iy] - x[f.jy]
	dist := math.Hypot(dx, dy)
	if dist < 1e-12 {
		return
	}
	out[f.ix] = -dx / dist
	out[f.iy] = -dy / dist
	out[f.jx] = dx / dist
	out[f.jy] = dy / dist
}

func (f *MultiStrainPathFn1) Vars() []int {
	vars := append([]int{f.ix, f.iy, f.jx, f.jy}, f.strainIdx...)

	return vars
}

// MultiStrainPathFn2 generalizes StrainPathFn2 (one moving endpoint) to
// per-edge strain variables.
type MultiStrainPathFn2 struct {
	ix, iy     int
	fixed      geom.Vec
	strainIdx  []int
	strainCoef []float64
	fixedLen   float64
}

func NewMultiStrainPathFn2(ix, iy int, fixed geom.Vec, strainIdx []int, strainCoef []float64, fixedLen float64) *MultiStrainPathFn2 {
	return &MultiStrainPathFn2{ix: ix, iy: iy, fixed: fixed, strainIdx: strainIdx, strainCoef: strainCoef, fixedLen: fixedLen}
}

func (f *MultiStrainPathFn2) variable(x []float64) float64 {
	sum := f.fixedLen
	for k, idx := range f.strainIdx {
		sum += f.strainCoef[k] * x[idx]
	}

	return sum
}

func (f *MultiStrainPathFn2) Value(x []float64) float64 {
	recordValue()
	dist := math.Hypot(x[f.ix]-f.fixed.X, x[f.iy]-f.fixed.Y)

	return f.variable(x) - dist
}

func (f *MultiStrainPathFn2) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	for k, idx := range f.strainIdx {
		out[idx] += f.strainCoef[k]
	}
	dx := x[f.ix] - f.fixed.X
	dy := x[f.iy] - f.fixed.Y
	dist := math.Hypot(dx, dy)
	if dist < 1e-12 {
		return
	}
	out[f.ix] = -dx / dist
	out[f.iy] = -dy / dist
}

func (f *MultiStrainPathFn2) Vars() []int {
	return append([]int{f.ix, f.iy}, f.strainIdx...)
}

// MultiStrainPathFn3 generalizes StrainPathFn3 (zero moving endpoints) to
// per-edge strain variables.
type MultiStrainPathFn3 struct {
	strainIdx  []int
	strainCoef []float64
	fixedLen   float64
	actDist    float64
}

func NewMultiStrainPathFn3(strainIdx []int, strainCoef []float64, fixedLen, actDist float64) *MultiStrainPathFn3 {
	return &MultiStrainPathFn3{strainIdx: strainIdx, strainCoef: strainCoef, fixedLen: fixedLen, actDist: actDist}
}

func (f *MultiStrainPathFn3) Value(x []float64) float64 {
	recordValue()
	sum := f.fixedLen
	for k, idx := range f.strainIdx {
		sum += f.strainCoef[k] * x[idx]
	}

	return sum - f.actDist
}

func (f *MultiStrainPathFn3) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	for k, idx := range f.strainIdx {
		out[idx] += f.strainCoef[k]
	}
}

func (f *MultiStrainPathFn3) Vars() []int {
	return append([]int{}, f.strainIdx...)
}
