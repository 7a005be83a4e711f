package voronoi

import (
	"math"

	"github.com/paulmach/orb"
)

// The beach line is a flat ordered sequence alternating arcs and the
// half-edge rays dividing them. It always starts and ends with an arc.

type itemKind uint8

const (
	itemArc itemKind = iota
	itemEdge
)

// arc is one site's parabola section on the beach line. Its id stays stable
// for the whole sweep while its slice position does not, so vertex events
// reference the id. epoch counts event reschedules: an event stamped with an
// older epoch is dead.
type arc struct {
	id    int64
	site  int
	focus orb.Point
	epoch int64
}

// halfEdge is a dividing ray between two arcs. left and right are the site
// indices it separates, seen along the beach line.
type halfEdge struct {
	origin orb.Point
	dir    orb.Point // unit length
	left   int
	right  int
}

func (e *halfEdge) vertical() bool {
	return math.Abs(e.dir.X()) < 1e-12
}

type beachItem struct {
	kind itemKind
	arc  *arc
	edge *halfEdge
}

func arcItem(a *arc) beachItem       { return beachItem{kind: itemArc, arc: a} }
func edgeItem(e *halfEdge) beachItem { return beachItem{kind: itemEdge, edge: e} }

// beachLine is the arc/edge arena. Linear scans are acceptable here: the
// item count is O(sites) and the constant is small.
type beachLine struct {
	items  []beachItem
	nextID int64
}

func (b *beachLine) newArc(site int, focus orb.Point) *arc {
	b.nextID++
	return &arc{id: b.nextID, site: site, focus: focus}
}

func (b *beachLine) indexOfArc(id int64) int {
	for i, it := range b.items {
		if it.kind == itemArc && it.arc.id == id {
			return i
		}
	}
	return -1
}

// replaceSpan substitutes items[from:to] with the replacement items.
func (b *beachLine) replaceSpan(from, to int, repl ...beachItem) {
	tail := append([]beachItem(nil), b.items[to:]...)
	b.items = append(b.items[:from], repl...)
	b.items = append(b.items, tail...)
}

func (b *beachLine) insertAt(i int, items ...beachItem) {
	b.replaceSpan(i, i, items...)
}
