package framesched_test

import (
	"fmt"
	"testing"
	"time"

	sched "github.com/Andrej220/go-utils/framesched"
)

var queueTypes = []sched.QueueType{
	sched.ScanQueue,
	sched.HeapQueue,
}

// fakeClock advances only when a test job spends time in a step.
type fakeClock struct {
	now   time.Time
	reads int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.reads++
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// trace records lifecycle callbacks across jobs in call order.
type trace struct {
	events []string
}

func (tr *trace) add(format string, args ...any) {
	tr.events = append(tr.events, fmt.Sprintf(format, args...))
}

// recJob completes after total steps, each costing cost on the fake clock.
type recJob struct {
	sched.BaseJob

	name  string
	prio  float64
	total int
	cost  time.Duration
	clock *fakeClock
	tr    *trace

	steps  int
	before int
	after  int

	// onStep runs after the step has been counted.
	onStep func(j *recJob)
}

func (j *recJob) Complete() bool { return j.steps >= j.total }

func (j *recJob) BeforeFirstStep() {
	j.before++
	j.tr.add("%s:before", j.name)
}

func (j *recJob) Step() {
	j.steps++
	j.clock.Advance(j.cost)
	j.tr.add("%s", j.name)
	if j.onStep != nil {
		j.onStep(j)
	}
}

func (j *recJob) AfterLastStep() {
	j.after++
	j.tr.add("%s:after", j.name)
}

func (j *recJob) Priority() float64 { return j.prio }

// setPriority changes the priority, notifying only when notify is true.
func (j *recJob) setPriority(p float64, notify bool) {
	j.prio = p
	if notify {
		j.NotifyPriorityChanged(p)
	}
}

type fixture struct {
	t     *testing.T
	s     *sched.Scheduler
	clock *fakeClock
	tr    *trace
	m     *sched.AtomicMetrics
}

func newFixture(t *testing.T, qt sched.QueueType, fps int) *fixture {
	t.Helper()

	clock := newFakeClock()
	m := &sched.AtomicMetrics{}
	s := sched.New(sched.Options{
		LoadingFramerate: fps,
		QT:               qt,
		Now:              clock.Now,
		Metrics:          m,
	})
	return &fixture{t: t, s: s, clock: clock, tr: &trace{}, m: m}
}

func (f *fixture) job(name string, prio float64, total int, cost time.Duration) *recJob {
	return &recJob{name: name, prio: prio, total: total, cost: cost, clock: f.clock, tr: f.tr}
}

func (f *fixture) push(jobs ...sched.Job) {
	f.t.Helper()
	for _, j := range jobs {
		if _, err := f.s.PushJob(j); err != nil {
			f.t.Fatalf("push: %v", err)
		}
	}
}

func (f *fixture) wantEvents(want ...string) {
	f.t.Helper()
	got := f.tr.events
	if len(got) != len(want) {
		f.t.Fatalf("events = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			f.t.Fatalf("events = %v; want %v", got, want)
		}
	}
}

// runAll runs fn as a subtest for every queue type.
func runAll(t *testing.T, fn func(t *testing.T, qt sched.QueueType)) {
	t.Helper()
	for _, qt := range queueTypes {
		qt := qt
		t.Run(qt.String(), func(t *testing.T) {
			t.Parallel()
			fn(t, qt)
		})
	}
}
