// Package poll implements the bounded fixed-interval wait used to observe
// asynchronous writes.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Defaults applied to zero Policy fields.
const (
	DefaultInterval    = 300 * time.Millisecond
	DefaultMaxAttempts = 100
)

// Policy bounds a poll loop.
type Policy struct {
	// Interval is the fixed wait between two checks.
	Interval time.Duration
	// MaxAttempts is the total number of checks, the first one included.
	MaxAttempts int
	// Notify, when set, is called after every unsuccessful check.
	Notify func(attempt int, next time.Duration)
}

// DefaultPolicy returns the default poll policy.
func DefaultPolicy() Policy {
	return Policy{
		Interval:    DefaultInterval,
		MaxAttempts: DefaultMaxAttempts,
	}
}

func (p Policy) withDefaults() Policy {
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	return p
}

// Budget is the worst-case time spent sleeping between checks.
func (p Policy) Budget() time.Duration {
	p = p.withDefaults()
	return time.Duration(p.MaxAttempts-1) * p.Interval
}

// ExhaustedError is returned when every attempt ran without the check
// succeeding.
type ExhaustedError struct {
	Attempts int
	Elapsed  time.Duration
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("condition not met after %d attempts (%v)", e.Attempts, e.Elapsed.Round(time.Millisecond))
}

// CheckFunc reports whether the awaited condition holds. A non-nil error
// aborts the loop and is returned unchanged.
type CheckFunc func(ctx context.Context, attempt int) (bool, error)

var errPending = errors.New("condition pending")

// Until runs check immediately, then once per Interval, until it reports
// true, returns an error, MaxAttempts is reached or ctx is done. It
// returns the number of checks performed.
func Until(ctx context.Context, policy Policy, check CheckFunc) (int, error) {
	policy = policy.withDefaults()

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(policy.Interval), uint64(policy.MaxAttempts-1)),
		ctx,
	)

	start := time.Now()
	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		done, err := check(ctx, attempts)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !done {
			return errPending
		}
		return nil
	}, b, func(_ error, next time.Duration) {
		if policy.Notify != nil {
			policy.Notify(attempts, next)
		}
	})

	if errors.Is(err, errPending) {
		return attempts, &ExhaustedError{Attempts: attempts, Elapsed: time.Since(start)}
	}
	return attempts, err
}
