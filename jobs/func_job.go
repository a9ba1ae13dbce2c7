package jobs

import (
	"github.com/Andrej220/go-utils/framesched"
)

// FuncJob adapts closures to the framesched.Job contract.
//
// Done is required; the other callbacks are optional. Priority is held by
// the job and changed with SetPriority.
type FuncJob struct {
	framesched.BaseJob

	Before func()
	StepFn func()
	Done   func() bool
	After  func()

	priority float64
}

// NewFuncJob returns a job stepping step until done reports true.
func NewFuncJob(priority float64, step func(), done func() bool) *FuncJob {
	return &FuncJob{StepFn: step, Done: done, priority: priority}
}

func (j *FuncJob) Complete() bool { return j.Done() }

func (j *FuncJob) BeforeFirstStep() {
	if j.Before != nil {
		j.Before()
	}
}

func (j *FuncJob) Step() {
	if j.StepFn != nil {
		j.StepFn()
	}
}

func (j *FuncJob) AfterLastStep() {
	if j.After != nil {
		j.After()
	}
}

func (j *FuncJob) Priority() float64 { return j.priority }

// SetPriority changes the priority and notifies the scheduler.
func (j *FuncJob) SetPriority(p float64) {
	if p == j.priority {
		return
	}
	j.priority = p
	j.NotifyPriorityChanged(p)
}

// Counter is a job that completes after a fixed number of steps.
// Work, if set, runs on every step with the zero-based step index.
type Counter struct {
	framesched.BaseJob

	Work func(i int)

	total    int
	done     int
	priority float64
}

// NewCounter returns a job completing after steps steps.
func NewCounter(steps int, priority float64) *Counter {
	return &Counter{total: steps, priority: priority}
}

func (c *Counter) Complete() bool   { return c.done >= c.total }
func (c *Counter) BeforeFirstStep() {}
func (c *Counter) AfterLastStep()   {}

func (c *Counter) Step() {
	if c.Work != nil {
		c.Work(c.done)
	}
	c.done++
}

func (c *Counter) Priority() float64 { return c.priority }

// SetPriority changes the priority and notifies the scheduler.
func (c *Counter) SetPriority(p float64) {
	if p == c.priority {
		return
	}
	c.priority = p
	c.NotifyPriorityChanged(p)
}

// Steps returns the number of steps taken so far.
func (c *Counter) Steps() int { return c.done }
