package nlco_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/treemaker/nlco"
)

// quadratic2 implements x0^2 + x1^2 for scenario S1.
type quadratic2 struct{}

func (quadratic2) Value(x []float64) float64 { return x[0]*x[0] + x[1]*x[1] }
func (quadratic2) Grad(x []float64, out []float64) {
	out[0] = 2 * x[0]
	out[1] = 2 * x[1]
}
func (quadratic2) Vars() []int { return []int{0, 1} }

// linearEq implements a*x0 + b*x1 + c == 0.
type linearEq struct{ a, b, c float64 }

func (f linearEq) Value(x []float64) float64 { return f.a*x[0] + f.b*x[1] + f.c }
func (f linearEq) Grad(x []float64, out []float64) {
	out[0] = f.a
	out[1] = f.b
}
func (f linearEq) Vars() []int { return []int{0, 1} }

// S1 -- Simple minimiser: minimize x0^2+x1^2 s.t. x0-x1=1, x in [-1,1]^2.
func TestScenarioS1SimpleMinimiser(t *testing.T) {
	p := nlco.NewProblem(2)
	p.SetObjective(quadratic2{})
	p.AddEquality(linearEq{a: 1, b: -1, c: -1})
	p.SetBound(0, -1, 1)
	p.SetBound(1, -1, 1)

	x := []float64{2.3, 4.7}
	res, err := p.Minimize(x)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.5, x[0], 1e-3)
	assert.InDelta(t, -0.5, x[1], 1e-3)
}

// cfsqpObjective implements (x0+3x1+x2)^2 + 4(x0-x1)^2 for scenario S2.
type cfsqpObjective struct{}

func (cfsqpObjective) Value(x []float64) float64 {
	a := x[0] + 3*x[1] + x[2]
	b := x[0] - x[1]

	return a*a + 4*b*b
}

func (cfsqpObjective) Grad(x []float64, out []float64) {
	a := x[0] + 3*x[1] + x[2]
	b := x[0] - x[1]
	out[0] = 2*a + 8*b
	out[1] = 6*a - 8*b
	out[2] = 2 * a
}

func (cfsqpObjective) Vars() []int { return []int{0, 1, 2} }

// cfsqpIneq implements x0^3 - 6x1 - 4x2 + 3 <= 0.
type cfsqpIneq struct{}

func (cfsqpIneq) Value(x []float64) float64 { return x[0]*x[0]*x[0] - 6*x[1] - 4*x[2] + 3 }
func (cfsqpIneq) Grad(x []float64, out []float64) {
	out[0] = 3 * x[0] * x[0]
	out[1] = -6
	out[2] = -4
}
func (cfsqpIneq) Vars() []int { return []int{0, 1, 2} }

// cfsqpEq implements x0+x1+x2-1 == 0.
type cfsqpEq struct{}

func (cfsqpEq) Value(x []float64) float64 { return x[0] + x[1] + x[2] - 1 }
func (cfsqpEq) Grad(x []float64, out []float64) {
	out[0] = 1
	out[1] = 1
	out[2] = 1
}
func (cfsqpEq) Vars() []int { return []int{0, 1, 2} }

// S2 -- the CFSQP sample problem.
func TestScenarioS2CFSQPSample(t *testing.T) {
	p := nlco.NewProblem(3)
	p.SetObjective(cfsqpObjective{})
	p.AddInequality(cfsqpIneq{})
	p.AddEquality(cfsqpEq{})
	for i := 0; i < 3; i++ {
		p.SetBound(i, 0, math.Inf(1))
	}

	x := []float64{0.1, 0.7, 0.2}
	res, err := p.Minimize(x)
	require.NoError(t, err)
	assert.True(t, res.Converged)

	obj := cfsqpObjective{}.Value(x)
	assert.InDelta(t, 1.0, obj, 1e-3)
	assert.Less(t, math.Abs(cfsqpEq{}.Value(x)), 1e-4)
	assert.Less(t, math.Max(0, cfsqpIneq{}.Value(x)), 1e-4)
}

// circlePackIneq implements 2*r - dist((xi,yi),(xj,yj)) <= 0 for one pair
// of circles i<j, for scenario S3.
type circlePackIneq struct {
	ri, ix, iy, jx, jy int
}

func (f circlePackIneq) Value(x []float64) float64 {
	dx := x[f.ix] - x[f.jx]
	dy := x[f.iy] - x[f.jy]

	return 2*x[f.ri] - math.Hypot(dx, dy)
}

func (f circlePackIneq) Grad(x []float64, out []float64) {
	dx := x[f.ix] - x[f.jx]
	dy := x[f.iy] - x[f.jy]
	dist := math.Hypot(dx, dy)
	out[f.ri] = 2
	if dist < 1e-12 {
		return
	}
	out[f.ix] = -dx / dist
	out[f.iy] = -dy / dist
	out[f.jx] = dx / dist
	out[f.jy] = dy / dist
}

func (f circlePackIneq) Vars() []int { return []int{f.ri, f.ix, f.iy, f.jx, f.jy} }

type negR struct{ ri int }

func (f negR) Value(x []float64) float64 { return -x[f.ri] }
func (f negR) Grad(x []float64, out []float64) {
	out[f.ri] = -1
}
func (f negR) Vars() []int { return []int{f.ri} }

// S3 -- circle packing, N=10, no symmetry.
func TestScenarioS3CirclePacking(t *testing.T) {
	const nCircles = 10
	n := 1 + 2*nCircles // r, then (x,y) per circle
	p := nlco.NewProblem(n)
	p.SetObjective(negR{ri: 0})
	p.SetBound(0, 0.001, math.Inf(1))
	for i := 0; i < nCircles; i++ {
		p.SetBound(1+2*i, 0, 1)
		p.SetBound(2+2*i, 0, 1)
	}
	for i := 0; i < nCircles; i++ {
		for j := i + 1; j < nCircles; j++ {
			p.AddInequality(circlePackIneq{ri: 0, ix: 1 + 2*i, iy: 2 + 2*i, jx: 1 + 2*j, jy: 2 + 2*j})
		}
	}

	x := make([]float64, n)
	x[0] = 0
	for i := 0; i < nCircles; i++ {
		x[1+2*i] = math.Mod(float64(i)*math.Sqrt(1e9), 1.5) - 0.25
		x[2+2*i] = math.Mod(float64(i+1)*math.Sqrt(1e9), 1.5) - 0.25
	}

	res, err := p.Minimize(x, nlco.WithMaxOuterIters(80))
	_ = res
	// This is a hard non-convex packing problem; the AL/BFGS core is not
	// guaranteed to find the global optimum from an arbitrary start, so
	// we assert the weaker, still-meaningful properties: no crash, and
	// every pairwise constraint respected within tolerance at whatever
	// local optimum was found.
	require.True(t, err == nil || res.Feasibility < 1e-3)
	for i := 0; i < nCircles; i++ {
		for j := i + 1; j < nCircles; j++ {
			c := circlePackIneq{ri: 0, ix: 1 + 2*i, iy: 2 + 2*i, jx: 1 + 2*j, jy: 2 + 2*j}
			assert.Less(t, math.Max(0, c.Value(x)), 1e-3)
		}
	}
	// The known optimum for this packing is r ~ 0.148; a single local-
	// search run from this fixed start is not guaranteed to reach it
	// exactly, but a regression that collapses the packing radius back
	// toward its r=0 start must still fail here. 0.10 is a reasonably
	// toleranced floor well below the documented optimum, not the
	// optimum itself.
	assert.GreaterOrEqual(t, x[0], 0.10, "packing radius collapsed toward the r=0 start; the known optimum is ~0.148")
}
