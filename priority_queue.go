package framesched

import (
	"container/heap"
	"math"
	"sort"
)

// heapQueue orders entries in a max-heap on their cached priority.
//
// The cache is refreshed through the jobs' priority-changed signal and
// after every step of a job, so Next is O(1) and a priority change costs
// O(log n). Parked entries leave the heap until Unpark.
type heapQueue struct {
	h      priorityHeap
	parked []*entry
}

// newHeapQueue creates an empty heap queue.
func newHeapQueue(capacity int) *heapQueue {
	q := &heapQueue{h: make(priorityHeap, 0, capacity)}
	heap.Init(&q.h)
	return q
}

func (q *heapQueue) Len() int { return q.h.Len() + len(q.parked) }

// Push reads the job's current priority and inserts the entry.
func (q *heapQueue) Push(e *entry) {
	e.prio = priorityOf(e.job)
	heap.Push(&q.h, e)
}

func (q *heapQueue) Next() (*entry, bool) {
	schedDbgIncSelections()
	if q.h.Len() == 0 {
		return nil, false
	}
	return q.h[0], true
}

func (q *heapQueue) Park(e *entry) {
	if e.parked || e.index < 0 {
		return
	}
	heap.Remove(&q.h, e.index)
	e.parked = true
	q.parked = append(q.parked, e)
}

// Unpark reinserts parked entries with their cached priority, which the
// signal kept current while they were out of the heap.
func (q *heapQueue) Unpark() {
	for i, e := range q.parked {
		e.parked = false
		heap.Push(&q.h, e)
		q.parked[i] = nil
	}
	q.parked = q.parked[:0]
}

func (q *heapQueue) Remove(e *entry) {
	if e.index >= 0 {
		heap.Remove(&q.h, e.index)
		return
	}
	for i, other := range q.parked {
		if other == e {
			q.parked = append(q.parked[:i], q.parked[i+1:]...)
			e.parked = false
			return
		}
	}
}

func (q *heapQueue) Reprioritize(e *entry, p float64) {
	if math.IsNaN(p) {
		p = math.Inf(-1)
	}
	if e.prio == p {
		return
	}
	e.prio = p
	if e.index >= 0 {
		heap.Fix(&q.h, e.index)
		schedDbgIncHeapFixes()
	}
}

func (q *heapQueue) Entries() []*entry {
	out := make([]*entry, 0, q.Len())
	out = append(out, q.h...)
	out = append(out, q.parked...)
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
