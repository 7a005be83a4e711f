package voronoi

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestEventQueueOrdering(t *testing.T) {
	var q eventQueue
	q.push(&event{kind: eventSite, y: 5, index: 0})
	q.push(&event{kind: eventSite, y: 1, index: 1})
	q.push(&event{kind: eventVertex, y: 3, center: orb.Point{1, 3}})
	q.push(&event{kind: eventSite, y: 1, index: 2})

	assert.Equal(t, 1, q.pop().index)
	assert.Equal(t, 2, q.pop().index, "equal sweep coordinates pop in push order")
	assert.Equal(t, eventVertex, q.pop().kind)
	assert.Equal(t, 0, q.pop().index)
	assert.Zero(t, q.Len())
}

func TestBeachLineReplaceSpan(t *testing.T) {
	var b beachLine
	a1 := b.newArc(0, orb.Point{1, 1})
	a2 := b.newArc(1, orb.Point{2, 2})
	a3 := b.newArc(2, orb.Point{3, 3})
	b.items = []beachItem{arcItem(a1), edgeItem(&halfEdge{}), arcItem(a2), edgeItem(&halfEdge{}), arcItem(a3)}

	repl := b.newArc(3, orb.Point{4, 4})
	b.replaceSpan(1, 4, arcItem(repl))

	assert.Len(t, b.items, 3)
	assert.Equal(t, a1.id, b.items[0].arc.id)
	assert.Equal(t, repl.id, b.items[1].arc.id)
	assert.Equal(t, a3.id, b.items[2].arc.id)

	assert.Equal(t, 1, b.indexOfArc(repl.id))
	assert.Equal(t, -1, b.indexOfArc(a2.id), "replaced arc is gone")
}
