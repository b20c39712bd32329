package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts uint64) retry.Policy {
	return retry.Policy{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(t.Context(), fastPolicy(3), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := retry.Do(t.Context(), fastPolicy(4), func(context.Context) error {
		calls++
		if calls < 3 {
			return errs.NewTransientStoreError(errors.New("deadlock detected"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	transient := errs.NewTransientStoreError(errors.New("lock timeout"))
	err := retry.Do(t.Context(), fastPolicy(3), func(context.Context) error {
		calls++
		return transient
	})

	require.ErrorIs(t, err, errs.ErrTransientStore)
	assert.Equal(t, 3, calls)
}

func TestDo_DoesNotRetryBusinessErrors(t *testing.T) {
	calls := 0
	err := retry.Do(t.Context(), fastPolicy(5), func(context.Context) error {
		calls++
		return errs.NewConflictError("pricing agreement")
	})

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, 1, calls)
}
