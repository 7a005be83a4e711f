package voronoi

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParabolaY(t *testing.T) {
	focus := orb.Point{512, 200}
	directrix := 400.0

	y, ok := parabolaY(512, focus, directrix)
	require.True(t, ok)
	assert.InDelta(t, 300, y, 1e-9, "apex sits halfway between focus and directrix")

	y, ok = parabolaY(612, focus, directrix)
	require.True(t, ok)
	assert.InDelta(t, 275, y, 1e-9)

	// any point of the parabola is equidistant from focus and directrix
	p := orb.Point{612, y}
	assert.InDelta(t, dist(p, focus), math.Abs(y-directrix), 1e-9)

	_, ok = parabolaY(100, orb.Point{50, 400}, 400)
	assert.False(t, ok, "focus on the directrix has no parabola")
}

func TestIntersectEdges(t *testing.T) {
	a := &halfEdge{origin: orb.Point{0, 0}, dir: orb.Point{1, 0}}
	b := &halfEdge{origin: orb.Point{2, 2}, dir: orb.Point{0, -1}}

	p, ok := intersectEdges(a, b)
	require.True(t, ok)
	assert.InDelta(t, 2, p.X(), 1e-9)
	assert.InDelta(t, 0, p.Y(), 1e-9)

	// same crossing point, but behind b's ray
	b2 := &halfEdge{origin: orb.Point{2, 2}, dir: orb.Point{0, 1}}
	_, ok = intersectEdges(a, b2)
	assert.False(t, ok)

	// parallel rays never meet
	c := &halfEdge{origin: orb.Point{0, 5}, dir: orb.Point{1, 0}}
	_, ok = intersectEdges(a, c)
	assert.False(t, ok)

	// freshly split twins share an origin and have zero length
	d1 := &halfEdge{origin: orb.Point{3, 3}, dir: orb.Point{1, 0}}
	d2 := &halfEdge{origin: orb.Point{3, 3}, dir: orb.Point{0, 1}}
	_, ok = intersectEdges(d1, d2)
	assert.False(t, ok)
}

func TestIntersectArcEdge(t *testing.T) {
	// focus (0,1), directrix -1: the parabola y = x^2/4
	focus := orb.Point{0, 1}
	directrix := -1.0

	t.Run("vertical edge", func(t *testing.T) {
		e := &halfEdge{origin: orb.Point{2, 0}, dir: orb.Point{0, 1}}
		p, ok := intersectArcEdge(focus, directrix, e, DefaultSweepEpsilon, DefaultDiscriminantEpsilon)
		require.True(t, ok)
		assert.InDelta(t, 2, p.X(), 1e-9)
		assert.InDelta(t, 1, p.Y(), 1e-9)
	})

	t.Run("horizontal edge", func(t *testing.T) {
		e := &halfEdge{origin: orb.Point{0, 2}, dir: orb.Point{1, 0}}
		p, ok := intersectArcEdge(focus, directrix, e, DefaultSweepEpsilon, DefaultDiscriminantEpsilon)
		require.True(t, ok)
		assert.InDelta(t, 2*math.Sqrt2, p.X(), 1e-9)
		assert.InDelta(t, 2, p.Y(), 1e-9)
	})

	t.Run("degenerate arc", func(t *testing.T) {
		// focus on the sweep line: the arc is a vertical ray through its x
		f := orb.Point{1, directrix}
		e := &halfEdge{origin: orb.Point{0, 0}, dir: orb.Point{1, 0}}
		p, ok := intersectArcEdge(f, directrix, e, DefaultSweepEpsilon, DefaultDiscriminantEpsilon)
		require.True(t, ok)
		assert.InDelta(t, 1, p.X(), 1e-9)
		assert.InDelta(t, 0, p.Y(), 1e-9)

		behind := &halfEdge{origin: orb.Point{5, 0}, dir: orb.Point{1, 0}}
		_, ok = intersectArcEdge(f, directrix, behind, DefaultSweepEpsilon, DefaultDiscriminantEpsilon)
		assert.False(t, ok, "intersection behind the ray origin is rejected")
	})
}

func TestClampPointOnLine(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	// y = x, overshooting the far corner
	p := clampPointOnLine(r, orb.Point{12, 12}, 1, 0, false)
	assert.InDelta(t, 10, p.X(), 1e-9)
	assert.InDelta(t, 10, p.Y(), 1e-9)

	// y = 2x - 5, clamping y after x stays on the line
	p = clampPointOnLine(r, orb.Point{12, 19}, 2, -5, false)
	assert.InDelta(t, 7.5, p.X(), 1e-9)
	assert.InDelta(t, 10, p.Y(), 1e-9)

	p = clampPointOnLine(r, orb.Point{5, -3}, 0, 0, true)
	assert.InDelta(t, 5, p.X(), 1e-9)
	assert.InDelta(t, 0, p.Y(), 1e-9)

	inside := orb.Point{4, 4}
	assert.True(t, inside.Equal(clampPointOnLine(r, inside, 1, 0, false)))
}

func TestExtendEdge(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	t.Run("hits far x boundary", func(t *testing.T) {
		e := &halfEdge{origin: orb.Point{5, 5}, dir: normalize(orb.Point{1, 0.5})}
		start, end := extendEdge(e, r)
		assert.True(t, start.Equal(orb.Point{5, 5}))
		assert.InDelta(t, 10, end.X(), 1e-9)
		assert.InDelta(t, 7.5, end.Y(), 1e-9)
	})

	t.Run("falls back to y boundary", func(t *testing.T) {
		e := &halfEdge{origin: orb.Point{5, 5}, dir: normalize(orb.Point{1, 2})}
		start, end := extendEdge(e, r)
		assert.True(t, start.Equal(orb.Point{5, 5}))
		assert.InDelta(t, 7.5, end.X(), 1e-9)
		assert.InDelta(t, 10, end.Y(), 1e-9)
	})

	t.Run("vertical", func(t *testing.T) {
		e := &halfEdge{origin: orb.Point{3, 4}, dir: orb.Point{0, 1}}
		start, end := extendEdge(e, r)
		assert.True(t, start.Equal(orb.Point{3, 4}))
		assert.True(t, end.Equal(orb.Point{3, 10}))
	})

	t.Run("origin outside is clamped", func(t *testing.T) {
		e := &halfEdge{origin: orb.Point{-2, -2}, dir: normalize(orb.Point{1, 1})}
		start, end := extendEdge(e, r)
		assert.True(t, start.Equal(orb.Point{0, 0}))
		assert.True(t, end.Equal(orb.Point{10, 10}))
	})
}

func TestSegmentTouchesRect(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	assert.True(t, segmentTouchesRect(orb.Point{2, 2}, orb.Point{8, 8}, r))
	assert.True(t, segmentTouchesRect(orb.Point{-5, 5}, orb.Point{15, 5}, r), "crossing segment with both endpoints outside")
	assert.False(t, segmentTouchesRect(orb.Point{-5, -5}, orb.Point{-1, -1}, r))
	assert.False(t, segmentTouchesRect(orb.Point{-5, 20}, orb.Point{15, 20}, r), "parallel run above the rectangle")
}

func TestRingCentroid(t *testing.T) {
	square := []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	c := ringCentroid(square)
	assert.InDelta(t, 0.5, c.X(), 1e-9)
	assert.InDelta(t, 0.5, c.Y(), 1e-9)

	// shifted triangle
	tri := []orb.Point{{3, 0}, {9, 0}, {6, 6}}
	c = ringCentroid(tri)
	assert.InDelta(t, 6, c.X(), 1e-9)
	assert.InDelta(t, 2, c.Y(), 1e-9)
}
