package framesched

import (
	"context"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
)

// overrunWarnFactor is how many budgets a tick may take before it is
// logged as a warning.
const overrunWarnFactor = 2

// TickReport summarizes one Update call.
type TickReport struct {
	// Steps is the number of Step calls made.
	Steps int

	// Completed is the number of jobs that finished during the tick.
	Completed int

	// Elapsed is the measured time from the first selection to the last
	// budget check. Zero when there was nothing to run.
	Elapsed time.Duration

	// Budget is the tick budget, 1/LoadingFramerate.
	Budget time.Duration

	// Exhausted is true when the loop stopped because the budget ran out
	// rather than because no job was eligible.
	Exhausted bool
}

// Overrun returns how far the tick ran past its budget, or zero.
func (r TickReport) Overrun() time.Duration {
	if r.Elapsed > r.Budget {
		return r.Elapsed - r.Budget
	}
	return 0
}

// Update is the per-frame entry point.
//
// It repeatedly selects the eligible job with the highest priority (the
// earliest pushed on ties), runs BeforeFirstStep if the job has not
// started, steps it, and releases it once complete. A one-step-per-frame
// job is not selected again during the same call. The loop ends when the
// elapsed time reaches the tick budget or no eligible job is left.
//
// The budget is checked between steps only: a step is never interrupted,
// so a tick overruns by at most the cost of its last step.
//
// target is passed through to jobs implementing TargetAware.
func (s *Scheduler) Update(ctx context.Context, target any) TickReport {
	rep := TickReport{Budget: s.budget}
	if s.queue.Len() == 0 {
		return rep
	}

	s.enter()
	defer s.leave()

	start := s.opts.Now()
	for {
		e, ok := s.queue.Next()
		if !ok {
			break
		}

		stepped, finished := s.advance(ctx, e, target)
		if stepped {
			rep.Steps++
		}
		if finished {
			rep.Completed++
		} else if e.job.base().oneStepPerFrame {
			s.queue.Park(e)
		}

		rep.Elapsed = s.opts.Now().Sub(start)
		if rep.Elapsed >= s.budget {
			rep.Exhausted = true
			break
		}
	}

	s.metrics.ObserveTick(rep.Steps, rep.Elapsed, s.budget)
	if rep.Elapsed >= overrunWarnFactor*s.budget {
		lg.FromContext(ctx).Warn("tick over budget",
			lg.String("elapsed", rep.Elapsed.String()),
			lg.String("budget", s.budget.String()),
			lg.Int("steps", rep.Steps),
		)
	}
	return rep
}

// End drains the scheduler synchronously, ignoring the tick budget.
//
// It selects the highest-priority active job, steps it until it
// completes, releases it, and moves on to the next, including jobs pushed
// during the drain. A Deferred job is slept on until its ReadyAt rather
// than stepped in a loop. A job that never completes makes End run until
// ctx is done. On cancellation End returns ctx.Err() and the remaining jobs stay
// registered.
func (s *Scheduler) End(ctx context.Context, target any) error {
	if s.queue.Len() == 0 {
		return nil
	}

	s.enter()
	defer s.leave()

	logger := lg.FromContext(ctx)
	logger.Info("draining jobs", lg.Int("active", s.queue.Len()))

	for {
		e, ok := s.queue.Next()
		if !ok {
			return nil
		}
		for {
			err := ctx.Err()
			if err == nil {
				err = s.waitReady(ctx, e)
			}
			if err != nil {
				logger.Warn("drain canceled",
					lg.Int("active", s.queue.Len()),
					lg.Any("reason", err),
				)
				return err
			}
			if _, finished := s.advance(ctx, e, target); finished {
				break
			}
		}
	}
}

// waitReady blocks until a Deferred job is ready or ctx is done.
func (s *Scheduler) waitReady(ctx context.Context, e *entry) error {
	d, ok := e.job.(Deferred)
	if !ok {
		return nil
	}
	wait := d.ReadyAt().Sub(s.opts.Now())
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Scheduler) enter() {
	if s.busy {
		panic(ErrReentrant)
	}
	s.busy = true
}

func (s *Scheduler) leave() {
	s.busy = false
	s.queue.Unpark()
}
