package voronoi

import (
	"container/heap"

	"github.com/paulmach/orb"
)

type eventKind uint8

const (
	eventSite eventKind = iota
	eventVertex
)

// event is either a site appearing under the sweep line or an arc being
// squeezed to nothing (a circle event). Both kinds order by sweep
// coordinate, FIFO among equals for reproducibility.
type event struct {
	kind eventKind
	y    float64
	seq  int64

	// site events
	site  orb.Point
	index int

	// vertex events
	center orb.Point // circumcenter, the future diagram vertex
	arcID  int64
	epoch  int64
}

type eventQueue struct {
	items []*event
	seq   int64
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(i, j int) bool {
	if q.items[i].y != q.items[j].y {
		return q.items[i].y < q.items[j].y
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *eventQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *eventQueue) Push(x any) { q.items = append(q.items, x.(*event)) }

func (q *eventQueue) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return it
}

func (q *eventQueue) push(ev *event) {
	q.seq++
	ev.seq = q.seq
	heap.Push(q, ev)
}

func (q *eventQueue) pop() *event {
	return heap.Pop(q).(*event)
}
