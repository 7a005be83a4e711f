package voronoi

import (
	"math"

	"github.com/paulmach/orb"
)

// Relax performs one Lloyd iteration: every site moves to the centroid of
// its cell polygon and the diagram is generated anew. The input diagram is
// left untouched.
func Relax(d *Diagram, rect Rect) (*Diagram, error) {
	sites := make([]orb.Point, len(d.Sites))
	for i, s := range d.Sites {
		sites[i] = s.Point
		poly := s.Polygon()
		if len(poly) < 3 {
			continue
		}
		if c := ringCentroid(poly); usable(c, rect) {
			sites[i] = c
		}
	}
	return GenerateDiagram(sites, rect)
}

// RelaxMidpoints is the cheaper variant: the new site position is the
// unweighted average of its incident edge midpoints. Equivalent to Relax
// for convex cells, more forgiving for degenerate ones.
func RelaxMidpoints(d *Diagram, rect Rect) (*Diagram, error) {
	sites := make([]orb.Point, len(d.Sites))
	for i, s := range d.Sites {
		sites[i] = s.Point
		if len(s.Edges) == 0 {
			continue
		}
		var sum orb.Point
		for _, e := range s.Edges {
			sum = add(sum, e.midpoint())
		}
		if c := scale(sum, 1/float64(len(s.Edges))); usable(c, rect) {
			sites[i] = c
		}
	}
	return GenerateDiagram(sites, rect)
}

// RelaxN generates a diagram and applies n Lloyd iterations to it.
func RelaxN(sites []orb.Point, rect Rect, n int) (*Diagram, error) {
	d, err := GenerateDiagram(sites, rect)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if d, err = Relax(d, rect); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func usable(p orb.Point, r Rect) bool {
	return !math.IsNaN(p.X()) && !math.IsNaN(p.Y()) && r.contains(p)
}
