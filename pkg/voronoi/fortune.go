package voronoi

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/voxterra/voronoi/pkg/logger"
)

const (
	// DefaultSweepEpsilon decides when an arc focus counts as lying on the
	// sweep line. Tuned for coordinates in the unit-to-thousands range.
	DefaultSweepEpsilon = 1e-3
	// DefaultDiscriminantEpsilon snaps near-zero discriminants in the
	// arc/edge quadratic to exactly zero.
	DefaultDiscriminantEpsilon = 1e-3
)

// Options tune a single GenerateDiagram run. The zero value is usable.
type Options struct {
	SweepEpsilon        float64
	DiscriminantEpsilon float64

	// Logger, when set, narrates the sweep at debug level.
	Logger *logger.ZapLogger

	// Trace, when set, receives a snapshot of the finished sweep state.
	// TraceEvents additionally snapshots after every processed event.
	Trace       TraceHook
	TraceEvents bool
}

func (o Options) withDefaults() Options {
	if o.SweepEpsilon == 0 {
		o.SweepEpsilon = DefaultSweepEpsilon
	}
	if o.DiscriminantEpsilon == 0 {
		o.DiscriminantEpsilon = DefaultDiscriminantEpsilon
	}
	return o
}

// completedEdge is a finished, rectangle-clamped segment together with the
// pair of sites it separates. The assembler turns these into the graph.
type completedEdge struct {
	a, b  orb.Point
	left  int
	right int
}

type generator struct {
	sites []orb.Point
	rect  Rect
	opts  Options

	beach     beachLine
	queue     eventQueue
	completed []completedEdge
	directrix float64
}

// GenerateDiagram computes the Voronoi diagram of sites clipped to rect.
func GenerateDiagram(sites []orb.Point, rect Rect) (*Diagram, error) {
	return GenerateDiagramOptions(sites, rect, Options{})
}

// GenerateDiagramOptions is GenerateDiagram with explicit tuning options.
func GenerateDiagramOptions(sites []orb.Point, rect Rect, opts Options) (*Diagram, error) {
	if len(sites) == 0 {
		return nil, ErrNoSites
	}
	g := &generator{sites: sites, rect: rect, opts: opts.withDefaults()}
	if err := g.sweep(); err != nil {
		return nil, err
	}
	return assemble(g.sites, g.completed, g.rect)
}

func (g *generator) sweep() error {
	for i, s := range g.sites {
		g.queue.push(&event{kind: eventSite, y: s.Y(), site: s, index: i})
	}

	// the first site becomes the lone initial arc
	first := g.queue.pop()
	g.directrix = first.y
	g.beach.items = append(g.beach.items, arcItem(g.beach.newArc(first.index, first.site)))
	g.debug("sweep started", zap.Int("sites", len(g.sites)))

	seen := map[orb.Point]bool{first.site: true}

	for g.queue.Len() > 0 {
		ev := g.queue.pop()
		g.directrix = ev.y
		switch ev.kind {
		case eventSite:
			if seen[ev.site] {
				g.debug("duplicate site skipped", zap.Int("index", ev.index))
				continue
			}
			seen[ev.site] = true
			if err := g.siteEvent(ev); err != nil {
				return err
			}
		case eventVertex:
			if err := g.vertexEvent(ev); err != nil {
				return err
			}
		}
		if g.opts.TraceEvents && g.opts.Trace != nil {
			g.opts.Trace(g.snapshot())
		}
	}

	g.flush()
	g.debug("sweep finished",
		zap.Int("completed_edges", len(g.completed)),
		zap.Float64("directrix", g.directrix))
	if g.opts.Trace != nil {
		g.opts.Trace(g.snapshot())
	}
	return nil
}

// siteEvent inserts a new arc for the site that just crossed the sweep
// line, splitting the arc above it.
func (g *generator) siteEvent(ev *event) error {
	i, covered := g.arcAbove(ev.site.X(), ev.y)
	if i < 0 {
		return fmt.Errorf("no arc above x=%g at y=%g: %w", ev.site.X(), ev.y, ErrInternal)
	}
	old := g.beach.items[i].arc
	g.debug("site event",
		zap.Int("site", ev.index),
		zap.Float64("x", ev.site.X()),
		zap.Float64("y", ev.site.Y()))

	if math.Abs(old.focus.Y()-ev.y) < g.opts.SweepEpsilon {
		// no real parabola to split: every live arc shares the new site's Y
		g.insertVertical(i, ev)
		return nil
	}
	if !covered {
		// a non-degenerate beach line must cover every x
		return fmt.Errorf("arc %d does not cover x=%g at y=%g: %w", old.id, ev.site.X(), ev.y, ErrInternal)
	}

	splitY, ok := parabolaY(ev.site.X(), old.focus, ev.y)
	if !ok {
		return fmt.Errorf("arc above site %d is degenerate beyond epsilon: %w", ev.index, ErrInternal)
	}
	split := orb.Point{ev.site.X(), splitY}

	// two mirrored rays, perpendicular to the focus-focus segment
	d := sub(ev.site, old.focus)
	eL := &halfEdge{origin: split, dir: normalize(orb.Point{-d.Y(), d.X()}), left: old.site, right: ev.index}
	eR := &halfEdge{origin: split, dir: normalize(orb.Point{d.Y(), -d.X()}), left: ev.index, right: old.site}

	aL := g.beach.newArc(old.site, old.focus)
	aNew := g.beach.newArc(ev.index, ev.site)
	aR := g.beach.newArc(old.site, old.focus)

	// the split arc disappears, and any vertex event pending on it with it
	g.beach.replaceSpan(i, i+1,
		arcItem(aL), edgeItem(eL), arcItem(aNew), edgeItem(eR), arcItem(aR))

	g.scheduleVertexEvent(i)
	g.scheduleVertexEvent(i + 4)
	return nil
}

// insertVertical handles the all-sites-on-one-Y degeneracy: instead of a
// split, one vertical edge is inserted at the horizontal midpoint between
// the neighbouring arc and the new one. Anchoring the origin at the top of
// the rectangle makes the later vertex clamp produce the full upper run.
func (g *generator) insertVertical(i int, ev *event) {
	a := g.beach.items[i].arc
	aNew := g.beach.newArc(ev.index, ev.site)
	mid := (a.focus.X() + ev.site.X()) / 2
	origin := orb.Point{mid, g.rect.MinY}
	down := orb.Point{0, 1}

	if ev.site.X() >= a.focus.X() {
		e := &halfEdge{origin: origin, dir: down, left: a.site, right: ev.index}
		g.beach.insertAt(i+1, edgeItem(e), arcItem(aNew))
	} else {
		e := &halfEdge{origin: origin, dir: down, left: ev.index, right: a.site}
		g.beach.insertAt(i, arcItem(aNew), edgeItem(e))
	}
	g.scheduleVertexEvent(i)
	g.scheduleVertexEvent(i + 2)
}

// vertexEvent removes the arc squeezed out at a circle event, finishing the
// two edges that bounded it and opening one new edge from the circle
// center.
func (g *generator) vertexEvent(ev *event) error {
	i := g.beach.indexOfArc(ev.arcID)
	if i < 0 {
		// the arc was already removed by a superseding event
		return nil
	}
	a := g.beach.items[i].arc
	if a.epoch != ev.epoch {
		// stale: the arc's neighbourhood changed after scheduling
		return nil
	}
	if i < 2 || i > len(g.beach.items)-3 {
		return fmt.Errorf("vertex event on boundary arc %d: %w", a.id, ErrInternal)
	}

	eL := g.beach.items[i-1].edge
	eR := g.beach.items[i+1].edge
	aL := g.beach.items[i-2].arc
	aR := g.beach.items[i+2].arc
	g.debug("vertex event",
		zap.Int("site", a.site),
		zap.Float64("vx", ev.center.X()),
		zap.Float64("vy", ev.center.Y()))

	g.complete(eL.origin, ev.center, eL.left, eL.right)
	g.complete(eR.origin, ev.center, eR.left, eR.right)

	// one new ray from the vertex between the now-adjacent arcs. Its
	// direction is where their breakpoint travels as the sweep advances:
	// the left-normal of the left-to-right focus segment, same convention
	// as the split edges in siteEvent.
	d := sub(aR.focus, aL.focus)
	e := &halfEdge{origin: ev.center, dir: normalize(orb.Point{-d.Y(), d.X()}), left: aL.site, right: aR.site}
	g.beach.replaceSpan(i-1, i+2, edgeItem(e))

	g.scheduleVertexEvent(i - 2)
	g.scheduleVertexEvent(i)
	return nil
}

// scheduleVertexEvent recomputes the circle event for the arc at beach
// index i. Bumping the epoch first kills whichever event was pending.
func (g *generator) scheduleVertexEvent(i int) {
	if i < 0 || i >= len(g.beach.items) || g.beach.items[i].kind != itemArc {
		return
	}
	a := g.beach.items[i].arc
	a.epoch++
	if i == 0 || i == len(g.beach.items)-1 {
		return
	}
	p, ok := intersectEdges(g.beach.items[i-1].edge, g.beach.items[i+1].edge)
	if !ok {
		return
	}
	r := dist(a.focus, p)
	g.queue.push(&event{
		kind:   eventVertex,
		y:      p.Y() + r,
		center: p,
		arcID:  a.id,
		epoch:  a.epoch,
	})
}

// arcAbove locates the arc whose x-range contains x for the given
// directrix, bounds taken from intersecting the arc with its neighbouring
// edges. When nothing covers x (all live arcs are vertical) the nearest arc
// is returned with covered=false.
func (g *generator) arcAbove(x, directrix float64) (int, bool) {
	bestIdx := -1
	bestDist := math.Inf(1)
	for i, it := range g.beach.items {
		if it.kind != itemArc {
			continue
		}
		left, right := g.arcBounds(i, directrix)
		if left <= x && x <= right {
			return i, true
		}
		if d := math.Abs(it.arc.focus.X() - x); d < bestDist {
			bestIdx, bestDist = i, d
		}
	}
	return bestIdx, false
}

// arcBounds intersects the arc at beach index i with its neighbouring
// edges. An arc whose focus sits on the sweep line is a vertical ray and
// spans only its own x.
func (g *generator) arcBounds(i int, directrix float64) (float64, float64) {
	a := g.beach.items[i].arc
	if math.Abs(a.focus.Y()-directrix) < g.opts.SweepEpsilon {
		return a.focus.X(), a.focus.X()
	}
	left, right := math.Inf(-1), math.Inf(1)
	if i > 0 {
		if p, ok := intersectArcEdge(a.focus, directrix, g.beach.items[i-1].edge,
			g.opts.SweepEpsilon, g.opts.DiscriminantEpsilon); ok {
			left = p.X()
		}
	}
	if i < len(g.beach.items)-1 {
		if p, ok := intersectArcEdge(a.focus, directrix, g.beach.items[i+1].edge,
			g.opts.SweepEpsilon, g.opts.DiscriminantEpsilon); ok {
			right = p.X()
		}
	}
	return left, right
}

// complete clamps a finished segment into the rectangle and records it.
// Segments the clamp collapses to a point are dropped, as are segments that
// never enter the rectangle at all.
func (g *generator) complete(from, to orb.Point, left, right int) {
	d := sub(to, from)
	if d.X() == 0 && d.Y() == 0 {
		return
	}
	if !g.rect.contains(from) && !g.rect.contains(to) && !segmentTouchesRect(from, to, g.rect) {
		return
	}
	vertical := math.Abs(d.X()) < 1e-12
	var m, c float64
	if !vertical {
		m = d.Y() / d.X()
		c = from.Y() - m*from.X()
	}
	a := clampPointOnLine(g.rect, from, m, c, vertical)
	b := clampPointOnLine(g.rect, to, m, c, vertical)
	if a.Equal(b) {
		return
	}
	g.completed = append(g.completed, completedEdge{a: a, b: b, left: left, right: right})
}

// segmentTouchesRect is a Liang-Barsky style accept test for a segment
// against the rectangle.
func segmentTouchesRect(a, b orb.Point, r Rect) bool {
	t0, t1 := 0.0, 1.0
	dx := b.X() - a.X()
	dy := b.Y() - a.Y()
	for _, c := range [4][2]float64{
		{-dx, a.X() - r.MinX},
		{dx, r.MaxX - a.X()},
		{-dy, a.Y() - r.MinY},
		{dy, r.MaxY - a.Y()},
	} {
		p, q := c[0], c[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return true
}

// flush extends every edge still open on the beach line out to the
// rectangle once the queue drains. Twin edges that grew from one split
// point in opposite directions are merged back into a single segment.
func (g *generator) flush() {
	last := -1 // completed index of the previously flushed edge
	for _, it := range g.beach.items {
		if it.kind != itemEdge {
			continue
		}
		start, end := extendEdge(it.edge, g.rect)
		if start.Equal(end) {
			continue
		}
		if last >= 0 {
			prev := g.completed[last]
			if start.Equal(prev.a) && parallel(it.edge.dir, sub(prev.b, prev.a)) {
				g.completed[last] = completedEdge{a: prev.b, b: end, left: prev.left, right: prev.right}
				continue
			}
		}
		g.completed = append(g.completed, completedEdge{a: start, b: end, left: it.edge.left, right: it.edge.right})
		last = len(g.completed) - 1
	}
}

func (g *generator) debug(msg string, fields ...zap.Field) {
	if g.opts.Logger != nil {
		g.opts.Logger.Debug(msg, fields...)
	}
}
