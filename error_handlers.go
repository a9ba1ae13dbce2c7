package framesched

import (
	"context"
	"errors"

	lg "github.com/Andrej220/go-utils/zlog"
)

var (
	// ErrNilJob is returned when PushJob is given a nil job.
	ErrNilJob = errors.New("framesched: job is nil")

	// ErrJobRunning is returned when a pushed job is already owned by a
	// scheduler, this one or another.
	ErrJobRunning = errors.New("framesched: job is already running")

	// ErrJobFinished is returned when a pushed job already ran to the end
	// of its lifetime under some scheduler.
	ErrJobFinished = errors.New("framesched: job already finished")

	// ErrReentrant is the panic value raised when Update or End is called
	// from inside a job callback.
	ErrReentrant = errors.New("framesched: update or end called from a running job")
)

// reportJobPanic releases a job whose callback panicked and hands the
// recovered value to the configured handler.
//
// It is only reached when Options.OnJobPanic is set; otherwise the panic
// is left to propagate.
func (s *Scheduler) reportJobPanic(ctx context.Context, e *entry, r any) {
	s.release(e)
	lg.FromContext(ctx).Error("job panicked",
		lg.Any("job", e.seq),
		lg.Any("panic", r),
	)
	s.opts.OnJobPanic(e.job, r)
}
