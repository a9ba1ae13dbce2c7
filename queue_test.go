package framesched

import (
	"math"
	"testing"
)

type prioJob struct {
	BaseJob
	p float64
}

func (j *prioJob) Complete() bool    { return false }
func (j *prioJob) BeforeFirstStep()  {}
func (j *prioJob) Step()             {}
func (j *prioJob) AfterLastStep()    {}
func (j *prioJob) Priority() float64 { return j.p }

func newEntries(prios ...float64) []*entry {
	es := make([]*entry, len(prios))
	for i, p := range prios {
		es[i] = &entry{job: &prioJob{p: p}, seq: uint64(i + 1), index: -1}
	}
	return es
}

var queueMakers = map[string]func() runQueue{
	"scan": func() runQueue { return newScanQueue(4) },
	"heap": func() runQueue { return newHeapQueue(4) },
}

func TestRunQueueSelection(t *testing.T) {
	for name, mk := range queueMakers {
		t.Run(name, func(t *testing.T) {
			q := mk()
			es := newEntries(3, 7, 7, math.NaN(), 1)
			for _, e := range es {
				q.Push(e)
			}
			if q.Len() != 5 {
				t.Fatalf("Len = %d; want 5", q.Len())
			}

			var order []uint64
			for q.Len() > 0 {
				e, ok := q.Next()
				if !ok {
					t.Fatal("Next on non-empty queue returned false")
				}
				order = append(order, e.seq)
				q.Remove(e)
			}

			want := []uint64{2, 3, 1, 5, 4}
			for i := range want {
				if order[i] != want[i] {
					t.Fatalf("selection order = %v; want %v", order, want)
				}
			}
			if _, ok := q.Next(); ok {
				t.Fatal("Next on empty queue returned true")
			}
		})
	}
}

func TestRunQueueParking(t *testing.T) {
	for name, mk := range queueMakers {
		t.Run(name, func(t *testing.T) {
			q := mk()
			es := newEntries(9, 5, 1)
			for _, e := range es {
				q.Push(e)
			}

			q.Park(es[0])
			if e, _ := q.Next(); e != es[1] {
				t.Fatalf("Next = seq %d; want seq 2 while seq 1 is parked", e.seq)
			}
			q.Park(es[1])
			q.Park(es[2])
			if _, ok := q.Next(); ok {
				t.Fatal("Next returned a parked entry")
			}
			if q.Len() != 3 {
				t.Fatalf("Len = %d; parked entries must still count", q.Len())
			}

			q.Remove(es[1])
			q.Unpark()
			if q.Len() != 2 {
				t.Fatalf("Len = %d; want 2 after removing a parked entry", q.Len())
			}
			if e, _ := q.Next(); e != es[0] {
				t.Fatalf("Next = seq %d; want seq 1 after Unpark", e.seq)
			}

			got := q.Entries()
			if len(got) != 2 || got[0] != es[0] || got[1] != es[2] {
				t.Fatal("Entries not in push order")
			}
		})
	}
}

func TestHeapQueueReprioritize(t *testing.T) {
	q := newHeapQueue(4)
	es := newEntries(1, 2, 3)
	for _, e := range es {
		q.Push(e)
	}

	q.Reprioritize(es[0], 10)
	if e, _ := q.Next(); e != es[0] {
		t.Fatalf("Next = seq %d; want seq 1 after raising its priority", e.seq)
	}

	// parked entries keep the new value and return with it
	q.Park(es[0])
	q.Reprioritize(es[0], 0)
	q.Unpark()
	if e, _ := q.Next(); e != es[2] {
		t.Fatalf("Next = seq %d; want seq 3", e.seq)
	}

	q.Reprioritize(es[1], math.NaN())
	if es[1].prio != math.Inf(-1) {
		t.Fatalf("NaN priority cached as %v; want -Inf", es[1].prio)
	}
}

func TestSignal(t *testing.T) {
	var s Signal
	var got []float64

	a := s.Connect(func(p float64) { got = append(got, p) })
	var b *Slot
	b = s.Connect(func(p float64) {
		got = append(got, -p)
		b.Disconnect()
	})

	s.Emit(1)
	s.Emit(2)
	a.Disconnect()
	a.Disconnect()
	s.Emit(3)

	want := []float64{1, -1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v; want %v", got, want)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d; want 0", s.Len())
	}
}
