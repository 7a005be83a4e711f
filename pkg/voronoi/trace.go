package voronoi

import "github.com/paulmach/orb"

// TraceSegment is a paintable line segment.
type TraceSegment struct {
	A, B orb.Point
}

// TraceFrame is a snapshot of sweep state for visual debugging: the input
// sites, the foci of the arcs currently on the beach line, the dividing
// rays extended to the rectangle, and every segment finished so far.
type TraceFrame struct {
	Directrix  float64
	Sites      []orb.Point
	ArcFoci    []orb.Point
	BeachEdges []TraceSegment
	Completed  []TraceSegment
}

// SampleArc evaluates the parabola of one of the frame's arcs at x, so a
// painter can rasterize the beach line. ok is false for a vertical arc.
func (f TraceFrame) SampleArc(focus orb.Point, x float64) (float64, bool) {
	return parabolaY(x, focus, f.Directrix)
}

// TraceHook receives sweep snapshots. Not part of the functional contract;
// hooks must not retain the slices past the call.
type TraceHook func(TraceFrame)

func (g *generator) snapshot() TraceFrame {
	f := TraceFrame{Directrix: g.directrix, Sites: g.sites}
	for _, it := range g.beach.items {
		switch it.kind {
		case itemArc:
			f.ArcFoci = append(f.ArcFoci, it.arc.focus)
		case itemEdge:
			a, b := extendEdge(it.edge, g.rect)
			f.BeachEdges = append(f.BeachEdges, TraceSegment{A: a, B: b})
		}
	}
	for _, ce := range g.completed {
		f.Completed = append(f.Completed, TraceSegment{A: ce.a, B: ce.b})
	}
	return f
}
