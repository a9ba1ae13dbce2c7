package framesched

import (
	"sync/atomic"
	"time"
)

// MetricsPolicy defines hooks used by the scheduler to report
// registration, stepping and per-tick timing.
//
// Methods are called from the goroutine driving the scheduler, but an
// implementation may be read from elsewhere, so AtomicMetrics is safe for
// concurrent observation. All methods are expected to be lightweight and
// non-blocking.
type MetricsPolicy interface {
	// IncPushed increments the registered jobs counter.
	IncPushed()

	// IncStepped increments the executed steps counter.
	IncStepped()

	// IncCompleted increments the finished jobs counter.
	IncCompleted()

	// IncReprioritized counts priority-changed notifications received
	// from active jobs.
	IncReprioritized()

	// ObserveTick records one Update call that performed steps.
	ObserveTick(steps int, elapsed, budget time.Duration)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
//
// Writes happen on the frame loop. Reads are intended for cold-path
// observation, e.g. a debug overlay or a periodic log line.
type AtomicMetrics struct {
	pushed        atomic.Uint64
	stepped       atomic.Uint64
	completed     atomic.Uint64
	reprioritized atomic.Uint64
	ticks         atomic.Uint64

	// overruns counts ticks whose elapsed time exceeded the budget.
	overruns atomic.Uint64

	// worstOverrun is the largest observed excess over the budget, in ns.
	worstOverrun atomic.Int64
}

// Pushed returns the total number of registered jobs.
func (m *AtomicMetrics) Pushed() uint64 { return m.pushed.Load() }

// Stepped returns the total number of steps executed.
func (m *AtomicMetrics) Stepped() uint64 { return m.stepped.Load() }

// Completed returns the total number of jobs that finished.
func (m *AtomicMetrics) Completed() uint64 { return m.completed.Load() }

// Reprioritized returns the number of priority notifications received.
func (m *AtomicMetrics) Reprioritized() uint64 { return m.reprioritized.Load() }

// Ticks returns the number of Update calls that stepped at least one job.
func (m *AtomicMetrics) Ticks() uint64 { return m.ticks.Load() }

// Overruns returns the number of ticks that ran past their budget.
func (m *AtomicMetrics) Overruns() uint64 { return m.overruns.Load() }

// WorstOverrun returns the largest time a tick ran past its budget.
func (m *AtomicMetrics) WorstOverrun() time.Duration {
	return time.Duration(m.worstOverrun.Load())
}

func (m *AtomicMetrics) IncPushed()        { m.pushed.Add(1) }
func (m *AtomicMetrics) IncStepped()       { m.stepped.Add(1) }
func (m *AtomicMetrics) IncCompleted()     { m.completed.Add(1) }
func (m *AtomicMetrics) IncReprioritized() { m.reprioritized.Add(1) }

// ObserveTick counts the tick and tracks overruns.
func (m *AtomicMetrics) ObserveTick(_ int, elapsed, budget time.Duration) {
	m.ticks.Add(1)
	over := elapsed - budget
	if over <= 0 {
		return
	}
	m.overruns.Add(1)
	for {
		old := m.worstOverrun.Load()
		if int64(over) <= old || m.worstOverrun.CompareAndSwap(old, int64(over)) {
			return
		}
	}
}

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards
// all metric updates.
type NoopMetrics struct{}

func (m *NoopMetrics) IncPushed()                                    {}
func (m *NoopMetrics) IncStepped()                                   {}
func (m *NoopMetrics) IncCompleted()                                 {}
func (m *NoopMetrics) IncReprioritized()                             {}
func (m *NoopMetrics) ObserveTick(int, time.Duration, time.Duration) {}
