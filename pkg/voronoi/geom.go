package voronoi

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Rect is the axis-aligned rectangle the diagram is confined to.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds the bounding rectangle for a diagram.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func (r Rect) contains(p orb.Point) bool {
	return p.X() >= r.MinX && p.X() <= r.MaxX &&
		p.Y() >= r.MinY && p.Y() <= r.MaxY
}

func (r Rect) corners() [4]orb.Point {
	return [4]orb.Point{
		{r.MinX, r.MinY},
		{r.MaxX, r.MinY},
		{r.MaxX, r.MaxY},
		{r.MinX, r.MaxY},
	}
}

// parabolaY evaluates, at x, the parabola equidistant from focus and the
// horizontal directrix. ok is false when the focus lies on the directrix:
// the locus degenerates into a vertical line and has no y for arbitrary x.
func parabolaY(x float64, focus orb.Point, directrix float64) (float64, bool) {
	p := focus.Y() - directrix
	if p == 0 {
		return 0, false
	}
	dx := x - focus.X()
	return dx*dx/(2*p) + (focus.Y()+directrix)/2, true
}

// intersectArcEdge returns the point where the arc with the given focus
// meets the dividing half-edge ray, for the current directrix position.
func intersectArcEdge(focus orb.Point, directrix float64, e *halfEdge, sweepEps, discEps float64) (orb.Point, bool) {
	degenerate := math.Abs(focus.Y()-directrix) < sweepEps

	if e.vertical() {
		if degenerate {
			// two vertical loci only meet when stacked on the same x
			if math.Abs(e.origin.X()-focus.X()) < sweepEps {
				return orb.Point{e.origin.X(), focus.Y()}, true
			}
			return orb.Point{}, false
		}
		y, ok := parabolaY(e.origin.X(), focus, directrix)
		if !ok {
			return orb.Point{}, false
		}
		return orb.Point{e.origin.X(), y}, true
	}

	m := e.dir.Y() / e.dir.X()
	k := e.origin.Y() - m*e.origin.X()

	if degenerate {
		// the arc is a vertical ray through its focus
		p := orb.Point{focus.X(), m*focus.X() + k}
		if dot(sub(p, e.origin), e.dir) < 0 {
			return orb.Point{}, false
		}
		return p, true
	}

	// solve y=mx+k against the parabola
	fp := focus.Y() - directrix
	b := -2 * (focus.X() + fp*m)
	c := focus.X()*focus.X() + fp*(focus.Y()+directrix) - 2*fp*k
	disc := b*b - 4*c
	if math.Abs(disc) < discEps {
		// float noise around tangency produces tiny negative discriminants
		disc = 0
	}
	if disc < 0 {
		return orb.Point{}, false
	}
	root := math.Sqrt(disc)
	p1 := pointOnLine((-b+root)/2, m, k)
	p2 := pointOnLine((-b-root)/2, m, k)
	t1 := dot(sub(p1, e.origin), e.dir)
	t2 := dot(sub(p2, e.origin), e.dir)
	switch {
	case t1 >= 0 && t2 < 0:
		return p1, true
	case t2 >= 0 && t1 < 0:
		return p2, true
	default:
		// both or neither lie ahead of the ray: take the smaller offset
		if math.Abs(t1) <= math.Abs(t2) {
			return p1, true
		}
		return p2, true
	}
}

func pointOnLine(x, m, k float64) orb.Point {
	return orb.Point{x, m*x + k}
}

// intersectEdges computes the ray/ray intersection of two half-edges via
// the determinant method. Intersections behind either ray are rejected, as
// are edges that share an origin and have not grown yet.
func intersectEdges(a, b *halfEdge) (orb.Point, bool) {
	d := cross(a.dir, b.dir)
	if d == 0 {
		return orb.Point{}, false
	}
	w := sub(b.origin, a.origin)
	t := cross(w, b.dir) / d
	u := cross(w, a.dir) / d
	if t < 0 || u < 0 || (t == 0 && u == 0) {
		return orb.Point{}, false
	}
	return add(a.origin, scale(a.dir, t)), true
}

// clampPointOnLine pushes p into the rectangle while keeping it on the line
// y=mx+c (or on the vertical line through p when vertical is set). X is
// clamped first with y recomputed, then y with x recomputed.
func clampPointOnLine(r Rect, p orb.Point, m, c float64, vertical bool) orb.Point {
	x, y := p.X(), p.Y()
	if vertical {
		return orb.Point{clamp(x, r.MinX, r.MaxX), clamp(y, r.MinY, r.MaxY)}
	}
	if cx := clamp(x, r.MinX, r.MaxX); cx != x {
		x = cx
		y = m*x + c
	}
	if cy := clamp(y, r.MinY, r.MaxY); cy != y {
		y = cy
		if m != 0 {
			x = (y - c) / m
		}
	}
	return orb.Point{x, y}
}

// extendEdge grows a still-open beach line edge from its (clamped) origin
// out to whichever rectangle boundary its direction points toward, falling
// back to the Y boundary when the far-X intersection is out of range.
func extendEdge(e *halfEdge, r Rect) (orb.Point, orb.Point) {
	if e.vertical() {
		start := orb.Point{clamp(e.origin.X(), r.MinX, r.MaxX), clamp(e.origin.Y(), r.MinY, r.MaxY)}
		farY := r.MaxY
		if e.dir.Y() < 0 {
			farY = r.MinY
		}
		return start, orb.Point{start.X(), farY}
	}
	m := e.dir.Y() / e.dir.X()
	c := e.origin.Y() - m*e.origin.X()
	start := clampPointOnLine(r, e.origin, m, c, false)
	farX := r.MaxX
	if e.dir.X() < 0 {
		farX = r.MinX
	}
	if y := m*farX + c; y >= r.MinY && y <= r.MaxY {
		return start, orb.Point{farX, y}
	}
	farY := r.MaxY
	if e.dir.Y() < 0 {
		farY = r.MinY
	}
	return start, orb.Point{(farY - c) / m, farY}
}

// ringCentroid is the signed-area (shoelace) centroid of an ordered polygon.
func ringCentroid(points []orb.Point) orb.Point {
	ring := make(orb.Ring, 0, len(points)+1)
	ring = append(ring, points...)
	if len(ring) > 0 && !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	c, _ := planar.CentroidArea(ring)
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sub(a, b orb.Point) orb.Point   { return orb.Point{a.X() - b.X(), a.Y() - b.Y()} }
func add(a, b orb.Point) orb.Point   { return orb.Point{a.X() + b.X(), a.Y() + b.Y()} }
func scale(p orb.Point, s float64) orb.Point {
	return orb.Point{p.X() * s, p.Y() * s}
}
func dot(a, b orb.Point) float64   { return a.X()*b.X() + a.Y()*b.Y() }
func cross(a, b orb.Point) float64 { return a.X()*b.Y() - a.Y()*b.X() }

func dist(a, b orb.Point) float64 {
	return math.Hypot(a.X()-b.X(), a.Y()-b.Y())
}

func midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a.X() + b.X()) / 2, (a.Y() + b.Y()) / 2}
}

func normalize(p orb.Point) orb.Point {
	l := math.Hypot(p.X(), p.Y())
	if l == 0 {
		return p
	}
	return orb.Point{p.X() / l, p.Y() / l}
}

func parallel(a, b orb.Point) bool {
	return math.Abs(cross(normalize(a), normalize(b))) < 1e-9
}
