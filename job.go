package framesched

import (
	"time"
)

// Job is a resumable, priority-bearing unit of incremental background work.
//
// Concrete jobs embed BaseJob, which supplies the scheduler bookkeeping,
// and implement the five lifecycle methods:
//
//   - Complete reports whether the job is done. It must be side-effect free,
//     callable before any step, and monotonic: once true it stays true.
//   - BeforeFirstStep runs exactly once, right before the first Step.
//   - Step advances the job by one bounded increment. A step that makes no
//     progress toward completion keeps the job selected forever.
//   - Priority returns the current priority; higher runs first. When it
//     changes the job calls NotifyPriorityChanged.
//   - AfterLastStep runs exactly once, right after the scheduler first
//     observes Complete returning true.
type Job interface {
	Complete() bool
	BeforeFirstStep()
	Step()
	Priority() float64
	AfterLastStep()

	base() *BaseJob
}

// TargetAware is implemented by jobs that need the opaque target handed
// to Update or End. UseTarget is called before each of the job's steps.
type TargetAware interface {
	UseTarget(target any)
}

// Deferred is implemented by jobs that cannot make progress before a
// given time, such as a loader waiting out a retry backoff. End sleeps
// until ReadyAt, read on the scheduler's clock, instead of stepping such
// a job. A zero time means ready.
type Deferred interface {
	ReadyAt() time.Time
}

// BaseJob holds the state a scheduler keeps on every job.
// The zero value is a job that is not running and may step several times
// per frame.
//
// A job has one lifetime: once a scheduler has released it, after
// AfterLastStep or a recovered panic, it cannot be pushed again.
type BaseJob struct {
	owner           *Scheduler
	oneStepPerFrame bool
	priorityChanged Signal

	started  bool
	finished bool
}

func (b *BaseJob) base() *BaseJob { return b }

// Running reports whether the job is currently owned by a scheduler.
func (b *BaseJob) Running() bool { return b.owner != nil }

// Finished reports whether a scheduler has released the job for good.
func (b *BaseJob) Finished() bool { return b.finished }

// Scheduler returns the scheduler running the job, or nil.
func (b *BaseJob) Scheduler() *Scheduler { return b.owner }

// OneStepPerFrame reports whether the job is limited to one step per Update.
func (b *BaseJob) OneStepPerFrame() bool { return b.oneStepPerFrame }

// SetOneStepPerFrame limits the job to a single step per Update call.
func (b *BaseJob) SetOneStepPerFrame(v bool) { b.oneStepPerFrame = v }

// PriorityChanged is the signal emitted when the job's priority changes.
func (b *BaseJob) PriorityChanged() *Signal { return &b.priorityChanged }

// NotifyPriorityChanged emits PriorityChanged with the new priority.
func (b *BaseJob) NotifyPriorityChanged(p float64) { b.priorityChanged.Emit(p) }
