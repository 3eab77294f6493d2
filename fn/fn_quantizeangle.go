package fn

import (
	"math"

	"github.com/katalvlaran/treemaker/geom"
)

// quantizeTarget picks theta = k*pi/Q + offset, with k the integer nearest
// the current angle, baked in at construction time.
func quantizeTarget(current float64, q int, offset float64) float64 {
	step := math.Pi / float64(q)
	k := math.Round((current - offset) / step)

	return k*step + offset
}

// QuantizeAngleFn1 snaps the direction between two moving nodes to the
// nearest multiple of pi/Q (plus offset), using the same linearised
// cross-product form as PathAngleFn1.
type QuantizeAngleFn1 struct {
	*PathAngleFn1
}

// NewQuantizeAngleFn1 builds the quantised-angle constraint for two moving
// nodes, given their current positions (used only to pick k).
func NewQuantizeAngleFn1(ix, iy, jx, jy int, x0 []float64, q int, offset float64) *QuantizeAngleFn1 {
	current := wrapAngle(angleOf(x0[jx]-x0[ix], x0[jy]-x0[iy]))
	theta := quantizeTarget(current, q, offset)

	return &QuantizeAngleFn1{PathAngleFn1: NewPathAngleFn1(ix, iy, jx, jy, theta)}
}

// QuantizeAngleFn2 snaps the direction from one moving node to a fixed
// point to the nearest multiple of pi/Q (plus offset).
type QuantizeAngleFn2 struct {
	*PathAngleFn2
}

// NewQuantizeAngleFn2 builds the quantised-angle constraint for one moving
// node and one fixed point.
func NewQuantizeAngleFn2(ix, iy int, other [2]float64, x0 []float64, q int, offset float64) *QuantizeAngleFn2 {
	current := wrapAngle(angleOf(other[0]-x0[ix], other[1]-x0[iy]))
	theta := quantizeTarget(current, q, offset)

	return &QuantizeAngleFn2{PathAngleFn2: NewPathAngleFn2(ix, iy, vecOf(other), theta)}
}

func angleOf(dx, dy float64) float64 { return math.Atan2(dy, dx) }

func vecOf(p [2]float64) geom.Vec { return geom.Vec{X: p[0], Y: p[1]} }
