package framesched

import (
	"fmt"
	"strings"
	"time"
)

// QueueType defines how the scheduler picks the next job to step.
//
// Both strategies select the highest priority with earliest-pushed
// tie-break; they differ in cost and in when priorities are read. The
// type is configured via Options.QT when creating a Scheduler.
type QueueType int

const (
	// ScanQueue reads every job's priority on each selection.
	ScanQueue QueueType = iota

	// HeapQueue keeps a heap refreshed by priority-changed notifications.
	HeapQueue
)

// DefaultLoadingFramerate is used when Options.LoadingFramerate is not set.
const DefaultLoadingFramerate = 30

// Options configure a Scheduler.
//
// All zero values are replaced with sensible defaults in FillDefaults.
type Options struct {
	// LoadingFramerate is the target frames per second. Each Update may
	// spend 1/LoadingFramerate seconds stepping jobs.
	LoadingFramerate int

	// QT selects the run queue strategy. Defaults to ScanQueue.
	QT QueueType

	// Now is the clock used to measure a tick. Defaults to time.Now.
	Now func() time.Time

	// Metrics receives scheduler counters. Defaults to NoopMetrics.
	Metrics MetricsPolicy

	// OnJobPanic, if set, recovers panics raised by job callbacks. The
	// job is released without AfterLastStep and the handler is called
	// with the recovered value. When nil, panics propagate to the caller
	// of Update or End.
	OnJobPanic func(job Job, recovered any)
}

func (o *Options) FillDefaults() {
	if o.LoadingFramerate <= 0 {
		o.LoadingFramerate = DefaultLoadingFramerate
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
}

func (qt QueueType) String() string {
	switch qt {
	case ScanQueue:
		return "ScanQueue"
	case HeapQueue:
		return "HeapQueue"
	default:
		return "Unknown"
	}
}

// ParseQueueType accepts "scan" or "heap", case-insensitively.
func ParseQueueType(s string) (QueueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scan", "scanqueue":
		return ScanQueue, nil
	case "heap", "heapqueue":
		return HeapQueue, nil
	default:
		return ScanQueue, fmt.Errorf("framesched: unknown queue type %q", s)
	}
}
