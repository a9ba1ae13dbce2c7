package framesched

import (
	"context"
)

// advance runs the next lifecycle callbacks of e: BeforeFirstStep on first
// selection, one Step unless the job already reports completion, and
// AfterLastStep plus release once Complete turns true.
//
// stepped reports whether Step was called. finished reports whether the
// job left the scheduler, either completed or released after a recovered
// panic.
func (s *Scheduler) advance(ctx context.Context, e *entry, target any) (stepped, finished bool) {
	if s.opts.OnJobPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				s.reportJobPanic(ctx, e, r)
				finished = true
			}
		}()
	}

	if b := e.job.base(); !b.started {
		b.started = true
		e.job.BeforeFirstStep()
	}

	if !e.job.Complete() {
		if ta, ok := e.job.(TargetAware); ok {
			ta.UseTarget(target)
		}
		stepped = true
		e.job.Step()
		s.metrics.IncStepped()
	}

	if e.job.Complete() {
		s.finish(ctx, e)
		return stepped, true
	}

	s.queue.Reprioritize(e, priorityOf(e.job))
	return stepped, false
}
