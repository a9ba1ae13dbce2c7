package framesched

import (
	"context"
	"fmt"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Scheduler steps registered jobs in priority order within a per-frame
// time budget.
//
// A Scheduler is not safe for concurrent use. Update and End must be
// called from the goroutine running the frame loop; jobs may call PushJob
// from inside their callbacks.
type Scheduler struct {
	opts    Options
	budget  time.Duration
	queue   runQueue
	metrics MetricsPolicy

	// slots maps each active job to its priority-changed subscription.
	// A job has an entry here iff it is in queue.
	slots map[*BaseJob]*Slot

	seq  uint64
	busy bool
}

// New creates a scheduler from opts. Zero fields take their defaults.
func New(opts Options) *Scheduler {
	opts.FillDefaults()

	s := &Scheduler{
		opts:    opts,
		budget:  time.Second / time.Duration(opts.LoadingFramerate),
		metrics: opts.Metrics,
		slots:   make(map[*BaseJob]*Slot),
	}
	s.queue = s.makeQueue()
	return s
}

// NewWithFramerate creates a scheduler with the given loading framerate
// and default options otherwise.
func NewWithFramerate(loadingFramerate int) *Scheduler {
	return New(Options{LoadingFramerate: loadingFramerate})
}

// PushJob registers job for execution and returns it.
//
// The job must not be running under any scheduler. It is appended to the
// active collection and becomes selectable from the next selection, which
// may happen within the Update or End call that is currently stepping
// another job.
func (s *Scheduler) PushJob(job Job) (Job, error) {
	if job == nil {
		return nil, ErrNilJob
	}
	b := job.base()
	if b.finished {
		return job, ErrJobFinished
	}
	if b.owner != nil {
		if b.owner == s {
			return job, fmt.Errorf("%w: already pushed to this scheduler", ErrJobRunning)
		}
		return job, fmt.Errorf("%w: owned by another scheduler", ErrJobRunning)
	}

	s.seq++
	e := &entry{job: job, seq: s.seq, index: -1}

	b.owner = s
	e.slot = b.priorityChanged.Connect(func(p float64) {
		s.metrics.IncReprioritized()
		s.queue.Reprioritize(e, p)
	})
	s.slots[b] = e.slot
	s.queue.Push(e)
	s.metrics.IncPushed()

	return job, nil
}

// finish runs AfterLastStep and releases a job that reported completion.
func (s *Scheduler) finish(ctx context.Context, e *entry) {
	e.job.AfterLastStep()
	s.release(e)
	s.metrics.IncCompleted()
	lg.FromContext(ctx).Debug("job complete", lg.Any("job", e.seq), lg.Int("active", s.queue.Len()))
}

// release unsubscribes e, drops it from the active collection and marks
// the job as finished. Releasing twice is a no-op.
func (s *Scheduler) release(e *entry) {
	b := e.job.base()
	if _, ok := s.slots[b]; !ok {
		return
	}
	e.slot.Disconnect()
	delete(s.slots, b)
	s.queue.Remove(e)
	b.owner = nil
	b.finished = true
}

// Len returns the number of active jobs.
func (s *Scheduler) Len() int { return s.queue.Len() }

// Jobs returns the active jobs in push order.
func (s *Scheduler) Jobs() []Job {
	entries := s.queue.Entries()
	jobs := make([]Job, len(entries))
	for i, e := range entries {
		jobs[i] = e.job
	}
	return jobs
}

// LoadingFramerate returns the configured target framerate.
func (s *Scheduler) LoadingFramerate() int { return s.opts.LoadingFramerate }

// TickBudget returns the time one Update call may spend stepping jobs.
func (s *Scheduler) TickBudget() time.Duration { return s.budget }

// Metrics returns the metrics policy the scheduler reports to.
func (s *Scheduler) Metrics() MetricsPolicy { return s.metrics }

// QueueType returns the selection strategy in use.
func (s *Scheduler) QueueType() QueueType { return s.opts.QT }
