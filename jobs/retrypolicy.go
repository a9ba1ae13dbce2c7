package jobs

import (
	"time"
)

const (
	defaultAttempts     = 5
	defaultInitialRetry = 50 * time.Millisecond
	defaultMaxRetry     = 2 * time.Second
)

// RetryPolicy describes how many consecutive transient failures a
// streaming job tolerates and how long it waits between attempts.
// Zero values are treated as "use defaults".
type RetryPolicy struct {
	// Attempts is the maximum number of consecutive failed reads.
	Attempts int

	// Initial is the first backoff duration.
	Initial time.Duration

	// Max is the cap for backoff duration.
	Max time.Duration
}

// DefaultRetryPolicy returns the policy used when none is given.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: defaultAttempts,
		Initial:  defaultInitialRetry,
		Max:      defaultMaxRetry,
	}
}

// withDefaults overrides zero fields with the defaults.
func (rp RetryPolicy) withDefaults() RetryPolicy {
	def := DefaultRetryPolicy()
	if rp.Attempts <= 0 {
		rp.Attempts = def.Attempts
	}
	if rp.Initial <= 0 {
		rp.Initial = def.Initial
	}
	if rp.Max <= 0 {
		rp.Max = def.Max
	}
	return rp
}
