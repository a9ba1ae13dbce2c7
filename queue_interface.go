package framesched

import (
	"math"
)

// entry is the scheduler's record of one active job.
type entry struct {
	// job is the tracked job.
	job Job

	// seq is the push sequence number. Lower seq wins priority ties.
	seq uint64

	// slot is the job's priority-changed subscription.
	slot *Slot

	// parked marks a one-step-per-frame job that already stepped this tick.
	parked bool

	// prio is the cached priority. Only the heap queue reads it.
	prio float64

	// index is the position in the heap, -1 when not in the heap.
	index int
}

// before reports whether e should be selected ahead of other.
func (e *entry) before(other *entry) bool {
	if e.prio != other.prio {
		return e.prio > other.prio
	}
	return e.seq < other.seq
}

// runQueue is the active job collection.
//
// It decides which active job is stepped next. Implementations are used
// from the scheduler's goroutine only. Push may be called while a tick is
// selecting from the queue, and the pushed entry must be a valid candidate
// for the following Next call.
type runQueue interface {
	// Push appends a newly registered entry.
	Push(e *entry)

	// Next returns the unparked entry with the highest priority, earliest
	// pushed first on ties. It does not remove the entry.
	Next() (*entry, bool)

	// Park excludes e from Next until Unpark.
	Park(e *entry)

	// Unpark makes every parked entry selectable again.
	Unpark()

	// Remove drops e, parked or not.
	Remove(e *entry)

	// Reprioritize records p as the new priority of e.
	Reprioritize(e *entry, p float64)

	// Len returns the number of entries, parked ones included.
	Len() int

	// Entries returns the entries in push order.
	Entries() []*entry
}

// priorityOf reads a job's priority. NaN sorts below every number.
func priorityOf(j Job) float64 {
	p := j.Priority()
	if math.IsNaN(p) {
		return math.Inf(-1)
	}
	return p
}
