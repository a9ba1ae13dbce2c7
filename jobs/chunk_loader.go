package jobs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	"github.com/Andrej220/go-utils/framesched"
)

const DefaultChunkSize = 64 << 10

var (
	// ErrTransient marks a read error worth retrying. Sources wrap it, or
	// return errors with a Temporary() bool method reporting true.
	ErrTransient = errors.New("jobs: transient read error")

	// ErrRetriesExhausted wraps the last transient error once the retry
	// policy gives up.
	ErrRetriesExhausted = errors.New("jobs: retries exhausted")
)

type nexter interface {
	Next() time.Duration
}

// ChunkLoader streams a reader into memory, one chunk per step.
//
// A transient read error does not block the frame: the loader schedules
// its next attempt with exponential backoff. Until then it reports a
// priority of -Inf and steps at most once per frame, so every other job
// runs first, and End sleeps until ReadyAt. Any other error, or
// exhausting the retry policy, completes the job with Err set. OnLoaded
// runs from AfterLastStep.
type ChunkLoader struct {
	framesched.BaseJob

	// OnLoaded receives the streamed bytes and the terminal error, nil on
	// a clean EOF.
	OnLoaded func(data []byte, err error)

	name      string
	src       io.Reader
	chunkSize int
	chunk     []byte
	buf       bytes.Buffer
	priority  float64

	policy   RetryPolicy
	now      func() time.Time
	bo       nexter
	failures int
	retryAt  time.Time
	retries  int

	// oneStep is the caller's OneStepPerFrame setting, restored when a
	// backoff ends.
	oneStep bool

	done bool
	err  error
}

// LoaderOption configures a ChunkLoader.
type LoaderOption func(*ChunkLoader)

// WithChunkSize sets the number of bytes read per step.
func WithChunkSize(n int) LoaderOption {
	return func(l *ChunkLoader) {
		if n > 0 {
			l.chunkSize = n
		}
	}
}

// WithRetryPolicy sets the retry policy for transient errors.
func WithRetryPolicy(rp RetryPolicy) LoaderOption {
	return func(l *ChunkLoader) { l.policy = rp.withDefaults() }
}

// WithClock sets the clock used for retry deadlines.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *ChunkLoader) {
		if now != nil {
			l.now = now
		}
	}
}

// WithOneStepPerFrame limits the loader to one chunk per frame.
func WithOneStepPerFrame() LoaderOption {
	return func(l *ChunkLoader) { l.SetOneStepPerFrame(true) }
}

// NewChunkLoader returns a loader streaming src at the given priority.
func NewChunkLoader(name string, src io.Reader, priority float64, opts ...LoaderOption) *ChunkLoader {
	l := &ChunkLoader{
		name:      name,
		src:       src,
		chunkSize: DefaultChunkSize,
		priority:  priority,
		policy:    DefaultRetryPolicy(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *ChunkLoader) Complete() bool { return l.done }

func (l *ChunkLoader) BeforeFirstStep() {
	l.chunk = make([]byte, l.chunkSize)
	l.resetBackoff()
}

func (l *ChunkLoader) Step() {
	if l.done {
		return
	}
	if l.backingOff() {
		if l.now().Before(l.retryAt) {
			return
		}
		l.resume()
	}

	n, err := l.src.Read(l.chunk)
	if n > 0 {
		l.buf.Write(l.chunk[:n])
	}

	switch {
	case err == nil:
		if l.failures > 0 {
			l.failures = 0
			l.resetBackoff()
		}
	case errors.Is(err, io.EOF):
		l.finish(nil)
	case isTransient(err):
		l.failures++
		if l.failures >= l.policy.Attempts {
			l.finish(fmt.Errorf("%s: %w after %d attempts: %w", l.name, ErrRetriesExhausted, l.failures, err))
			return
		}
		l.retries++
		delay := l.bo.Next()
		if delay <= 0 {
			delay = l.policy.Initial
		}
		l.backOff(delay)
	default:
		l.finish(fmt.Errorf("%s: %w", l.name, err))
	}
}

func (l *ChunkLoader) AfterLastStep() {
	l.chunk = nil
	if l.OnLoaded != nil {
		l.OnLoaded(l.buf.Bytes(), l.err)
	}
}

// Priority returns the loader's priority, or -Inf while it backs off.
func (l *ChunkLoader) Priority() float64 {
	if l.backingOff() {
		return math.Inf(-1)
	}
	return l.priority
}

// SetPriority changes the priority and notifies the scheduler, e.g. when
// the asset moves closer to the camera. During a backoff the new value
// takes effect when the retry is due.
func (l *ChunkLoader) SetPriority(p float64) {
	if p == l.priority {
		return
	}
	l.priority = p
	if !l.backingOff() {
		l.NotifyPriorityChanged(p)
	}
}

// SetOneStepPerFrame sets the per-frame limit used outside of backoffs.
func (l *ChunkLoader) SetOneStepPerFrame(v bool) {
	l.oneStep = v
	if !l.backingOff() {
		l.BaseJob.SetOneStepPerFrame(v)
	}
}

// ReadyAt returns when the pending retry is due, or the zero time.
func (l *ChunkLoader) ReadyAt() time.Time { return l.retryAt }

// Name returns the loader's name.
func (l *ChunkLoader) Name() string { return l.name }

// Bytes returns the data streamed so far.
func (l *ChunkLoader) Bytes() []byte { return l.buf.Bytes() }

// Loaded returns the number of bytes streamed so far.
func (l *ChunkLoader) Loaded() int { return l.buf.Len() }

// Retries returns the number of transient failures that were retried.
func (l *ChunkLoader) Retries() int { return l.retries }

// Err returns the terminal error, nil while running or after a clean EOF.
func (l *ChunkLoader) Err() error { return l.err }

func (l *ChunkLoader) finish(err error) {
	l.done = true
	l.err = err
}

func (l *ChunkLoader) backingOff() bool { return !l.retryAt.IsZero() }

// backOff defers the next read by delay and yields to every other job
// until then.
func (l *ChunkLoader) backOff(delay time.Duration) {
	l.retryAt = l.now().Add(delay)
	l.BaseJob.SetOneStepPerFrame(true)
	l.NotifyPriorityChanged(math.Inf(-1))
}

// resume ends a backoff, restoring the loader's own priority and frame
// limit.
func (l *ChunkLoader) resume() {
	l.retryAt = time.Time{}
	l.BaseJob.SetOneStepPerFrame(l.oneStep)
	l.NotifyPriorityChanged(l.priority)
}

func (l *ChunkLoader) resetBackoff() {
	l.bo = boff.New(l.policy.Initial, l.policy.Max, l.now().UnixNano())
}

func isTransient(err error) bool {
	if errors.Is(err, ErrTransient) {
		return true
	}
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}
