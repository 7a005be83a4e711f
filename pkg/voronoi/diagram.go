package voronoi

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// NoSite marks the missing side of a one-sided border edge.
const NoSite = -1

// Vertex is a corner of the diagram graph. Vertices are deduplicated by
// position: identical coordinates always reference the same *Vertex.
type Vertex struct {
	Point orb.Point
	Edges []*Edge
}

// Edge connects two vertices and records the pair of sites it separates,
// which doubles as the Delaunay dual edge. Border edges stitched along the
// rectangle may carry only one site.
type Edge struct {
	Va, Vb *Vertex
	Left   int
	Right  int
}

// Other returns the endpoint opposite v, or nil when v is not an endpoint.
func (e *Edge) Other(v *Vertex) *Vertex {
	switch v {
	case e.Va:
		return e.Vb
	case e.Vb:
		return e.Va
	}
	return nil
}

// HasSite reports whether the edge borders the given site index.
func (e *Edge) HasSite(i int) bool { return e.Left == i || e.Right == i }

func (e *Edge) midpoint() orb.Point { return midpoint(e.Va.Point, e.Vb.Point) }

func (e *Edge) direction() orb.Point { return normalize(sub(e.Vb.Point, e.Va.Point)) }

// Site is an input site together with the edges bounding its cell, ordered
// into a closed loop by the assembler.
type Site struct {
	Index int
	Point orb.Point
	Edges []*Edge
}

// Polygon returns the cell boundary as an ordered vertex ring.
func (s *Site) Polygon() []orb.Point {
	if len(s.Edges) == 0 {
		return nil
	}
	pts := make([]orb.Point, 0, len(s.Edges))
	cur := s.Edges[0].Va
	pts = append(pts, cur.Point)
	for _, e := range s.Edges {
		next := e.Other(cur)
		if next == nil {
			break
		}
		pts = append(pts, next.Point)
		cur = next
	}
	if len(pts) > 1 && pts[0].Equal(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// Diagram is the finished, immutable vertex/edge/site graph.
type Diagram struct {
	Sites    []*Site
	Vertices []*Vertex
	Edges    []*Edge
	Rect     Rect
}

type assembler struct {
	rect     Rect
	sites    []orb.Point
	vertices map[orb.Point]*Vertex
	edges    []*Edge
}

// assemble turns the raw completed segments into the deduplicated graph:
// corner seeding, collinear-pair merging, boundary stitching and per-cell
// loop ordering.
func assemble(sites []orb.Point, completed []completedEdge, rect Rect) (*Diagram, error) {
	b := &assembler{rect: rect, sites: sites, vertices: make(map[orb.Point]*Vertex)}
	for _, c := range rect.corners() {
		b.vertex(c)
	}
	for _, ce := range completed {
		if ce.a.Equal(ce.b) {
			continue
		}
		b.addEdge(b.vertex(ce.a), b.vertex(ce.b), ce.left, ce.right)
	}

	b.mergeRedundant()
	b.stitchBoundary()

	d := b.finish()
	for _, s := range d.Sites {
		if err := orderLoop(s); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (b *assembler) vertex(p orb.Point) *Vertex {
	if v, ok := b.vertices[p]; ok {
		return v
	}
	v := &Vertex{Point: p}
	b.vertices[p] = v
	return v
}

func (b *assembler) addEdge(va, vb *Vertex, left, right int) *Edge {
	if va == vb {
		return nil
	}
	for _, e := range va.Edges {
		if (e.Va == va && e.Vb == vb) || (e.Va == vb && e.Vb == va) {
			return e
		}
	}
	e := &Edge{Va: va, Vb: vb, Left: left, Right: right}
	va.Edges = append(va.Edges, e)
	vb.Edges = append(vb.Edges, e)
	b.edges = append(b.edges, e)
	return e
}

func (b *assembler) removeEdge(e *Edge) {
	e.Va.Edges = dropEdge(e.Va.Edges, e)
	e.Vb.Edges = dropEdge(e.Vb.Edges, e)
	b.edges = dropEdge(b.edges, e)
}

func dropEdge(edges []*Edge, e *Edge) []*Edge {
	out := edges[:0]
	for _, it := range edges {
		if it != e {
			out = append(out, it)
		}
	}
	return out
}

func (b *assembler) isCorner(p orb.Point) bool {
	for _, c := range b.rect.corners() {
		if p.Equal(c) {
			return true
		}
	}
	return false
}

// mergeRedundant elides vertices that only join two collinear edges. Twin
// edges growing in opposite directions from one split point leave such
// vertices behind.
func (b *assembler) mergeRedundant() {
	for changed := true; changed; {
		changed = false
		for p, v := range b.vertices {
			if len(v.Edges) != 2 || b.isCorner(p) {
				continue
			}
			e1, e2 := v.Edges[0], v.Edges[1]
			if math.Abs(cross(e1.direction(), e2.direction())) > 1e-9 {
				continue
			}
			va := e1.Other(v)
			vb := e2.Other(v)
			if va == nil || vb == nil || va == vb {
				continue
			}
			b.removeEdge(e1)
			b.removeEdge(e2)
			delete(b.vertices, p)
			b.addEdge(va, vb, e1.Left, e1.Right)
			changed = true
			break
		}
	}
}

// stitchBoundary chains the vertices lying on each rectangle side with new
// border edges, so every boundary run belongs to the graph. Each stitch
// edge is attributed to the site nearest its midpoint among the sites
// already touching its endpoints; best effort, possibly one-sided.
func (b *assembler) stitchBoundary() {
	const eps = 1e-6
	sides := []struct {
		onSide func(orb.Point) bool
		along  func(orb.Point) float64
	}{
		{func(p orb.Point) bool { return math.Abs(p.X()-b.rect.MinX) < eps }, orb.Point.Y},
		{func(p orb.Point) bool { return math.Abs(p.X()-b.rect.MaxX) < eps }, orb.Point.Y},
		{func(p orb.Point) bool { return math.Abs(p.Y()-b.rect.MinY) < eps }, orb.Point.X},
		{func(p orb.Point) bool { return math.Abs(p.Y()-b.rect.MaxY) < eps }, orb.Point.X},
	}
	for _, s := range sides {
		var on []*Vertex
		for _, v := range b.vertices {
			if s.onSide(v.Point) {
				on = append(on, v)
			}
		}
		sort.Slice(on, func(i, j int) bool { return s.along(on[i].Point) < s.along(on[j].Point) })
		for i := 0; i+1 < len(on); i++ {
			va, vb := on[i], on[i+1]
			site := b.nearestSite(midpoint(va.Point, vb.Point), candidateSites(va, vb))
			b.addEdge(va, vb, site, NoSite)
		}
	}
}

func candidateSites(vs ...*Vertex) []int {
	seen := make(map[int]bool)
	var out []int
	for _, v := range vs {
		for _, e := range v.Edges {
			for _, s := range [2]int{e.Left, e.Right} {
				if s != NoSite && !seen[s] {
					seen[s] = true
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func (b *assembler) nearestSite(p orb.Point, candidates []int) int {
	if len(candidates) == 0 {
		candidates = make([]int, len(b.sites))
		for i := range b.sites {
			candidates[i] = i
		}
	}
	best, bestDist := NoSite, math.Inf(1)
	for _, i := range candidates {
		if d := dist(p, b.sites[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (b *assembler) finish() *Diagram {
	verts := make([]*Vertex, 0, len(b.vertices))
	for _, v := range b.vertices {
		verts = append(verts, v)
	}
	sort.Slice(verts, func(i, j int) bool {
		p, q := verts[i].Point, verts[j].Point
		if p.Y() != q.Y() {
			return p.Y() < q.Y()
		}
		return p.X() < q.X()
	})

	d := &Diagram{Vertices: verts, Edges: b.edges, Rect: b.rect}
	d.Sites = make([]*Site, len(b.sites))
	for i, p := range b.sites {
		d.Sites[i] = &Site{Index: i, Point: p}
	}
	for _, e := range b.edges {
		if e.Left != NoSite {
			d.Sites[e.Left].Edges = append(d.Sites[e.Left].Edges, e)
		}
		if e.Right != NoSite && e.Right != e.Left {
			d.Sites[e.Right].Edges = append(d.Sites[e.Right].Edges, e)
		}
	}
	return d
}

// orderLoop reorders a site's edges into one closed traversal, walking from
// shared vertex to shared vertex. A cell that cannot close means the sweep
// emitted an inconsistent boundary.
func orderLoop(s *Site) error {
	if len(s.Edges) == 0 {
		return nil
	}
	ordered := make([]*Edge, 0, len(s.Edges))
	used := make(map[*Edge]bool, len(s.Edges))

	first := s.Edges[0]
	ordered = append(ordered, first)
	used[first] = true
	start := first.Va
	cur := first.Vb

	for cur != start {
		var next *Edge
		for _, e := range s.Edges {
			if !used[e] && (e.Va == cur || e.Vb == cur) {
				next = e
				break
			}
		}
		if next == nil {
			return fmt.Errorf("cell of site %d does not close: %w", s.Index, ErrInternal)
		}
		used[next] = true
		ordered = append(ordered, next)
		cur = next.Other(cur)
	}
	if len(ordered) != len(s.Edges) {
		return fmt.Errorf("cell of site %d has disconnected edges: %w", s.Index, ErrInternal)
	}
	s.Edges = ordered
	return nil
}
