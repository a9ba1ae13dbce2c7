// Package sim runs a simulated render loop that drives a framesched
// scheduler once per frame.
package sim

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
	"github.com/dustin/go-humanize"

	"github.com/Andrej220/go-utils/framesched"
	"github.com/Andrej220/go-utils/framesched/internal/config"
	"github.com/Andrej220/go-utils/framesched/jobs"
)

// World is the target handed to the scheduler each frame.
type World struct {
	Frame int
}

// Report summarizes a run.
type Report struct {
	Frames       int
	Pushed       uint64
	Steps        uint64
	Completed    uint64
	Overruns     uint64
	WorstOverrun time.Duration
	Streamed     uint64
	StreamErrors int

	// Drained is the number of jobs still active when the frame loop
	// stopped and End had to finish them.
	Drained int
}

// Run builds the jobs described by cfg, updates the scheduler once per
// render frame until it is idle or cfg.Frames frames have passed, and
// drains whatever is left.
func Run(ctx context.Context, cfg config.Config) (Report, error) {
	var rep Report
	logger := lg.FromContext(ctx)

	if err := cfg.Validate(); err != nil {
		return rep, fmt.Errorf("invalid config: %w", err)
	}
	cfg.AssignNames()

	qt, err := framesched.ParseQueueType(cfg.Queue)
	if err != nil {
		return rep, err
	}
	metrics := &framesched.AtomicMetrics{}
	s := framesched.New(framesched.Options{
		LoadingFramerate: cfg.LoadingFramerate,
		QT:               qt,
		Metrics:          metrics,
	})

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if cfg.PinCPU >= 0 {
		if err := framesched.PinToCPU(cfg.PinCPU); err != nil {
			return rep, fmt.Errorf("pin frame loop to cpu %d: %w", cfg.PinCPU, err)
		}
	}

	for _, jc := range cfg.Jobs {
		c := jobs.NewCounter(jc.Steps, jc.Priority)
		c.SetOneStepPerFrame(jc.OneStepPerFrame)
		cost := jc.StepCost
		c.Work = func(int) { burn(cost) }
		if _, err := s.PushJob(c); err != nil {
			return rep, fmt.Errorf("push %s: %w", jc.Name, err)
		}
	}

	for _, sc := range cfg.Streams {
		f, err := os.Open(sc.Path)
		if err != nil {
			return rep, fmt.Errorf("open stream %s: %w", sc.Name, err)
		}
		defer f.Close()

		name := sc.Name
		l := jobs.NewChunkLoader(name, f, sc.Priority, jobs.WithChunkSize(sc.ChunkSize))
		l.OnLoaded = func(data []byte, err error) {
			rep.Streamed += uint64(len(data))
			if err != nil {
				rep.StreamErrors++
				logger.Error("stream failed", lg.String("stream", name), lg.Any("error", err))
				return
			}
			logger.Info("stream loaded", lg.String("stream", name), lg.String("size", humanize.Bytes(uint64(len(data)))))
		}
		if _, err := s.PushJob(l); err != nil {
			return rep, fmt.Errorf("push %s: %w", name, err)
		}
	}

	frame := time.Second / time.Duration(cfg.RenderFramerate)
	world := &World{}
	for s.Len() > 0 && (cfg.Frames == 0 || rep.Frames < cfg.Frames) {
		start := time.Now()
		s.Update(ctx, world)
		rep.Frames++
		world.Frame++

		if err := sleepCtx(ctx, frame-time.Since(start)); err != nil {
			return rep, err
		}
	}

	rep.Drained = s.Len()
	if err := s.End(ctx, world); err != nil {
		return rep, fmt.Errorf("drain: %w", err)
	}

	rep.Pushed = metrics.Pushed()
	rep.Steps = metrics.Stepped()
	rep.Completed = metrics.Completed()
	rep.Overruns = metrics.Overruns()
	rep.WorstOverrun = metrics.WorstOverrun()
	return rep, nil
}

// WriteTo prints the report in a human-readable form.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"frames:        %d\n"+
			"jobs:          %d pushed, %d completed, %d drained at end\n"+
			"steps:         %d\n"+
			"overruns:      %d (worst %s)\n"+
			"streamed:      %s (%d failed)\n",
		r.Frames,
		r.Pushed, r.Completed, r.Drained,
		r.Steps,
		r.Overruns, r.WorstOverrun,
		humanize.Bytes(r.Streamed), r.StreamErrors,
	)
	return int64(n), err
}

// burn simulates the cost of one step.
func burn(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
