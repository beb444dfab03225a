package whitespace

import (
	"container/heap"

	"github.com/tsawler/pageseg/model"
)

// obstacle is a rectangle a candidate should avoid. Accepted whitespace
// becomes an obstacle for every candidate queued before it was accepted.
type obstacle struct {
	rect       model.BBox
	whitespace bool
}

// entry is one candidate rectangle waiting in the search queue.
type entry struct {
	rect      model.BBox
	obstacles []obstacle

	// generation is the accepted count when the entry was queued
	generation int
	// seen is the accepted count already folded into obstacles
	seen int

	quality float64
	seq     int
	index   int
}

// quality ranks candidates by area, biased toward tall narrow gaps.
func quality(r model.BBox) float64 {
	w, h := r.Width, r.Height
	if w <= 0 || h <= 0 {
		return 0
	}
	if h > w {
		return r.Area() * 2 * h / w
	}
	return r.Area() * w / h
}

// entryQueue implements heap.Interface as a max-queue on quality. Equal
// qualities pop in insertion order.
type entryQueue []*entry

func (q entryQueue) Len() int { return len(q) }

func (q entryQueue) Less(i, j int) bool {
	if q[i].quality != q[j].quality {
		return q[i].quality > q[j].quality
	}
	return q[i].seq < q[j].seq
}

func (q entryQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *entryQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *entryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

func (q *entryQueue) push(e *entry) {
	heap.Push(q, e)
}

func (q *entryQueue) pop() *entry {
	return heap.Pop(q).(*entry)
}
