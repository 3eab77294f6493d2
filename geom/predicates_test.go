package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/treemaker/geom"
)

func TestAreCCW(t *testing.T) {
	t.Run("ccw triangle", func(t *testing.T) {
		assert.True(t, geom.AreCCW(geom.Vec{X: 0, Y: 0}, geom.Vec{X: 1, Y: 0}, geom.Vec{X: 0, Y: 1}))
	})
	t.Run("cw triangle is not ccw", func(t *testing.T) {
		assert.False(t, geom.AreCCW(geom.Vec{X: 0, Y: 0}, geom.Vec{X: 0, Y: 1}, geom.Vec{X: 1, Y: 0}))
	})
	t.Run("collinear points are not ccw", func(t *testing.T) {
		assert.False(t, geom.AreCCW(geom.Vec{X: 0, Y: 0}, geom.Vec{X: 1, Y: 0}, geom.Vec{X: 2, Y: 0}))
	})
}

func TestLineIntersect(t *testing.T) {
	tp, tq, ok := geom.LineIntersect(
		geom.Vec{X: 0, Y: 0}, geom.Vec{X: 2, Y: 0},
		geom.Vec{X: 1, Y: -1}, geom.Vec{X: 1, Y: 1},
	)
	require.True(t, ok)
	assert.InDelta(t, 0.5, tp, 1e-9)
	assert.InDelta(t, 0.5, tq, 1e-9)

	_, _, ok = geom.LineIntersect(
		geom.Vec{X: 0, Y: 0}, geom.Vec{X: 1, Y: 0},
		geom.Vec{X: 0, Y: 1}, geom.Vec{X: 1, Y: 1},
	)
	assert.False(t, ok, "parallel lines must not report an intersection")
}

func TestProjectPointToSegment(t *testing.T) {
	t.Run("clamped to segment", func(t *testing.T) {
		proj, tParam, ok := geom.ProjectPointToSegment(
			geom.Vec{X: 5, Y: 1}, geom.Vec{X: 0, Y: 0}, geom.Vec{X: 2, Y: 0}, false)
		require.True(t, ok)
		assert.Equal(t, geom.Vec{X: 2, Y: 0}, proj)
		assert.Equal(t, 1.0, tParam)
	})
	t.Run("as infinite line", func(t *testing.T) {
		proj, tParam, ok := geom.ProjectPointToSegment(
			geom.Vec{X: 5, Y: 1}, geom.Vec{X: 0, Y: 0}, geom.Vec{X: 2, Y: 0}, true)
		require.True(t, ok)
		assert.InDelta(t, 5.0, proj.X, 1e-9)
		assert.Greater(t, tParam, 1.0)
	})
	t.Run("degenerate segment", func(t *testing.T) {
		_, _, ok := geom.ProjectPointToSegment(
			geom.Vec{X: 1, Y: 1}, geom.Vec{X: 0, Y: 0}, geom.Vec{X: 0, Y: 0}, false)
		assert.False(t, ok)
	})
}

func TestConvexEncloses(t *testing.T) {
	square := []geom.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	assert.True(t, geom.ConvexEncloses(square, geom.Vec{X: 0.5, Y: 0.5}))
	assert.False(t, geom.ConvexEncloses(square, geom.Vec{X: 1.5, Y: 0.5}))
}

func TestIncenterInradius(t *testing.T) {
	p := geom.Vec{X: 0, Y: 0}
	q := geom.Vec{X: 1, Y: 0}
	r := geom.Vec{X: 0, Y: 1}
	c := geom.Incenter(p, q, r)
	ir := geom.Inradius(p, q, r)
	assert.Greater(t, ir, 0.0)
	// Incenter of a right isoceles triangle lies on the y=x line.
	assert.InDelta(t, c.X, c.Y, 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, geom.Vec{X: 0, Y: 2}, geom.Clamp(geom.Vec{X: -1, Y: 2}, 3, 3))
	assert.Equal(t, geom.Vec{X: 3, Y: 3}, geom.Clamp(geom.Vec{X: 10, Y: 10}, 3, 3))
}
