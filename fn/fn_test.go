package fn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/geom"
)

// numGrad computes a central-difference gradient for comparison against
// each Fn's analytic Grad.
func numGrad(f fn.Fn, x []float64) []float64 {
	const h = 1e-6
	out := make([]float64, len(x))
	for i := range x {
		xp := append([]float64{}, x...)
		xm := append([]float64{}, x...)
		xp[i] += h
		xm[i] -= h
		out[i] = (f.Value(xp) - f.Value(xm)) / (2 * h)
	}

	return out
}

func assertGradMatches(t *testing.T, f fn.Fn, x []float64) {
	t.Helper()
	want := numGrad(f, x)
	got := make([]float64, len(x))
	f.Grad(x, got)
	for i := range x {
		assert.InDelta(t, want[i], got[i], 1e-4, "index %d", i)
	}
}

func TestFnGradients(t *testing.T) {
	t.Run("OneVarFn", func(t *testing.T) {
		f := fn.NewOneVarFn(1, 2.5, -1)
		x := []float64{0.1, 0.2, 0.3}
		assertGradMatches(t, f, x)
		assert.InDelta(t, 2.5*0.2-1, f.Value(x), 1e-9)
	})

	t.Run("TwoVarFn", func(t *testing.T) {
		f := fn.NewTwoVarFn(0, 1.5, 2, -2.0, 0.5)
		x := []float64{1, 2, 3}
		assertGradMatches(t, f, x)
	})

	t.Run("PathFn1", func(t *testing.T) {
		f := fn.NewPathFn1(0, 1, 2, 3, 5)
		x := []float64{0, 0, 3, 4}
		assert.InDelta(t, 0, f.Value(x), 1e-9)
		assertGradMatches(t, f, x)
	})

	t.Run("StrainPathFn1", func(t *testing.T) {
		f := fn.NewStrainPathFn1(0, 1, 2, 3, 4, 2.0, 1.0)
		x := []float64{0, 0, 3, 4, 0.5}
		assertGradMatches(t, f, x)
	})

	t.Run("StrainPathFn2", func(t *testing.T) {
		f := fn.NewStrainPathFn2(0, 1, geom.Vec{X: 3, Y: 4}, 2, 2.0, 1.0)
		x := []float64{0, 0, 0.2}
		assertGradMatches(t, f, x)
	})

	t.Run("MultiStrainPathFn1", func(t *testing.T) {
		f := fn.NewMultiStrainPathFn1(0, 1, 2, 3, []int{4, 5}, []float64{1.0, 2.0}, 0.5)
		x := []float64{0, 0, 3, 4, 0.1, 0.2}
		assertGradMatches(t, f, x)
	})

	t.Run("PathAngleFn1", func(t *testing.T) {
		f := fn.NewPathAngleFn1(0, 1, 2, 3, 0)
		x := []float64{0, 0, 1, 0}
		assert.InDelta(t, 0, f.Value(x), 1e-9)
		assertGradMatches(t, f, x)
	})

	t.Run("PathAngleFn2", func(t *testing.T) {
		f := fn.NewPathAngleFn2(0, 1, geom.Vec{X: 1, Y: 0}, 0)
		x := []float64{0, 0.01}
		assertGradMatches(t, f, x)
	})

	t.Run("StickToLineFn", func(t *testing.T) {
		f := fn.NewStickToLineFn(0, 1, geom.Vec{X: 0, Y: 0}, geom.Vec{X: 1, Y: 0})
		x := []float64{2, 0.3}
		assertGradMatches(t, f, x)
	})

	t.Run("StickToEdgeFn", func(t *testing.T) {
		f := fn.NewStickToEdgeFn(fn.EdgeRight, 0, 1, 1.0, 1.0)
		x := []float64{1, 0.5}
		assert.InDelta(t, 0, f.Value(x), 1e-9)
		assertGradMatches(t, f, x)
	})

	t.Run("CornerFn", func(t *testing.T) {
		f := fn.NewCornerFn(0, 1.0)
		x := []float64{0.3}
		assertGradMatches(t, f, x)
		assert.InDelta(t, 0, fn.NewCornerFn(0, 1.0).Value([]float64{0}), 1e-9)
		assert.InDelta(t, 0, fn.NewCornerFn(0, 1.0).Value([]float64{1}), 1e-9)
	})

	t.Run("PairFn1A and PairFn2A", func(t *testing.T) {
		anchor := geom.Vec{X: 0, Y: 0}
		dir := geom.Vec{X: 0, Y: 1} // symmetry axis is vertical
		f1 := fn.NewPairFn1A(0, 1, 2, 3, anchor, dir)
		f2 := fn.NewPairFn2A(0, 1, 2, 3, dir)
		// Mirrored pair about the y-axis: (-1,2) and (1,2).
		x := []float64{-1, 2, 1, 2}
		assert.InDelta(t, 0, f1.Value(x), 1e-9)
		assert.InDelta(t, 0, f2.Value(x), 1e-9)
		assertGradMatches(t, f1, x)
		assertGradMatches(t, f2, x)
	})

	t.Run("CollinearFn1", func(t *testing.T) {
		f := fn.NewCollinearFn1(0, 1, 2, 3, 4, 5)
		x := []float64{0, 0, 1, 1, 2, 2}
		assert.InDelta(t, 0, f.Value(x), 1e-9)
		assertGradMatches(t, f, x)
	})

	t.Run("CollinearFn3", func(t *testing.T) {
		f := fn.NewCollinearFn3(0, 1, geom.Vec{X: 1, Y: 1}, geom.Vec{X: 2, Y: 2})
		x := []float64{0.01, -0.01}
		assertGradMatches(t, f, x)
	})
}
