package framesched

const (
	initialQueueCapacity = 64
)

// scanQueue keeps entries in push order and selects by a linear scan.
//
// Priorities are read from the jobs on every Next call and never cached,
// so a job that changes priority without notifying is still ordered
// correctly. Next costs O(n) priority reads.
type scanQueue struct {
	entries []*entry
}

func newScanQueue(capacity int) *scanQueue {
	return &scanQueue{entries: make([]*entry, 0, capacity)}
}

func (q *scanQueue) Len() int { return len(q.entries) }

func (q *scanQueue) Push(e *entry) {
	e.index = -1
	q.entries = append(q.entries, e)
}

func (q *scanQueue) Next() (*entry, bool) {
	var (
		best  *entry
		bestP float64
	)
	for _, e := range q.entries {
		if e.parked {
			continue
		}
		p := priorityOf(e.job)
		// strict comparison keeps the earliest pushed entry on ties
		if best == nil || p > bestP {
			best, bestP = e, p
		}
	}
	schedDbgIncSelections()
	return best, best != nil
}

func (q *scanQueue) Park(e *entry) { e.parked = true }

func (q *scanQueue) Unpark() {
	for _, e := range q.entries {
		e.parked = false
	}
}

func (q *scanQueue) Remove(e *entry) {
	for i, other := range q.entries {
		if other == e {
			copy(q.entries[i:], q.entries[i+1:])
			q.entries[len(q.entries)-1] = nil
			q.entries = q.entries[:len(q.entries)-1]
			return
		}
	}
}

// Reprioritize only records the value; selection reads priorities fresh.
func (q *scanQueue) Reprioritize(e *entry, p float64) { e.prio = p }

func (q *scanQueue) Entries() []*entry {
	out := make([]*entry, len(q.entries))
	copy(out, q.entries)
	return out
}
