// Package retry runs an operation a bounded number of times with a fixed delay.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retry loop
type Policy struct {
	Attempts int
	Interval time.Duration
}

// Notify is called after each failed attempt that will be retried.
type Notify func(attempt int, err error, wait time.Duration)

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls op until it succeeds, returns a permanent error, the attempts run
// out or ctx is done. The last error is returned.
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error), notify Notify) (T, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(policy.Interval), uint64(attempts-1)),
		ctx,
	)

	attempt := 0
	operation := func() (T, error) {
		attempt++

		return op(ctx)
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, wait time.Duration) {
			notify(attempt, err, wait)
		}
	}

	return backoff.RetryNotifyWithData(operation, b, onRetry)
}
