// Package framesched provides a frame-budgeted, priority-ordered
// scheduler for incremental background work.
//
// A real-time application, typically a render loop, registers long
// running work (asset streaming, geometry generation, deferred loading)
// as jobs and calls Update once per frame. Each call steps jobs until a
// fixed time budget derived from the target loading framerate is spent,
// so background work never takes more than its share of a frame.
//
// Jobs
//
// A job is any type embedding BaseJob and implementing Complete,
// BeforeFirstStep, Step, Priority and AfterLastStep. The scheduler calls
// BeforeFirstStep once before the first step, Step zero or more times,
// and AfterLastStep once after Complete first reports true, then releases
// the job. A job belongs to at most one scheduler at a time.
//
// Step must be bounded and must make progress. The budget is checked
// between steps only, so the cost of a single step is the worst case a
// tick can overrun by, and a job that never completes is selected again
// on every tick.
//
// Selection
//
// Each selection picks the eligible job with the highest priority,
// earliest pushed first on ties. Jobs flagged OneStepPerFrame are stepped
// at most once per Update. Two strategies are available through
// Options.QT:
//
//   - ScanQueue (default) reads Priority on every selection. It needs no
//     cooperation from jobs and costs O(n) per step.
//   - HeapQueue caches priorities in a heap kept current by the jobs'
//     priority-changed notifications. Selection is O(1) and a change
//     costs O(log n).
//
// Draining
//
// End steps every remaining job to completion, highest priority first,
// ignoring the budget. It is meant for shutdown or for a forced flush
// before the world is torn down.
//
// Concurrency
//
// The scheduler is cooperative and single threaded. Update and End must
// be called from the frame loop goroutine, and must not be called from
// inside a job. PushJob may be called from inside a job; the new job can
// be selected within the same Update.
//
// Failure handling
//
// The scheduler has no error path of its own. Pushing a running job is
// rejected with ErrJobRunning, and pushing a job whose lifetime already
// ended with ErrJobFinished. Panics raised by jobs propagate to the
// caller unless Options.OnJobPanic is set, in which case the job is
// released and the handler called.
package framesched
