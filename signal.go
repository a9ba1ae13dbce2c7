package framesched

import (
	"sync"
)

// Signal is a synchronous observer list carrying a job's new priority.
//
// Listeners run on the goroutine that calls Emit, in connection order.
// A job must emit from the goroutine that drives its scheduler.
type Signal struct {
	mu    sync.Mutex
	slots []*Slot
}

// Slot is a single connection to a Signal.
type Slot struct {
	sig *Signal
	fn  func(float64)
}

// Connect registers fn and returns the slot that disconnects it.
func (s *Signal) Connect(fn func(float64)) *Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := &Slot{sig: s, fn: fn}
	s.slots = append(s.slots, sl)
	return sl
}

// Emit calls every connected listener with p.
//
// A listener disconnected by an earlier listener of the same emission
// is skipped. Listeners connected during Emit are called from the next
// emission on.
func (s *Signal) Emit(p float64) {
	s.mu.Lock()
	snapshot := make([]*Slot, len(s.slots))
	copy(snapshot, s.slots)
	s.mu.Unlock()

	for _, sl := range snapshot {
		if s.has(sl) {
			sl.fn(p)
		}
	}
}

// Len returns the number of connected listeners.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

func (s *Signal) has(sl *Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.slots {
		if other == sl {
			return true
		}
	}
	return false
}

// Disconnect removes the slot from its signal. It is safe to call twice.
func (sl *Slot) Disconnect() {
	if sl == nil || sl.sig == nil {
		return
	}
	s := sl.sig
	s.mu.Lock()
	for i, other := range s.slots {
		if other == sl {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			break
		}
	}
	sl.sig = nil
	s.mu.Unlock()
}
