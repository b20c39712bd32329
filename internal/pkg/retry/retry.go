// Package retry wraps store operations with bounded exponential backoff.
// Only transient store failures (locks, serialization, timeouts) are
// retried; business errors pass through on the first attempt.
package retry

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retried operation: how many attempts in total and how the
// pause between them grows.
type Policy struct {
	MaxAttempts     uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy suits batch imports: a handful of attempts with a small
// backoff ceiling so a stuck batch fails within seconds.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     4,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

// Do runs op, retrying under the policy while it fails with a transient
// store error. Any other error aborts immediately and is returned unchanged.
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	if policy.MaxAttempts == 0 {
		policy.MaxAttempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.InitialInterval
	b.MaxInterval = policy.MaxInterval

	wrapped := func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, errs.ErrTransientStore) {
			return err
		}
		return backoff.Permanent(err)
	}

	return backoff.Retry(wrapped,
		backoff.WithContext(backoff.WithMaxRetries(b, policy.MaxAttempts-1), ctx))
}
