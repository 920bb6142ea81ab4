package retry

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	var notified []int

	got, err := Do(context.Background(), Policy{Attempts: 5, Interval: time.Millisecond},
		func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("not yet")
			}

			return "connected", nil
		},
		func(attempt int, _ error, _ time.Duration) {
			notified = append(notified, attempt)
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "connected", got)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, notified)
}

func TestDo_StopsAfterAttempts(t *testing.T) {
	calls := 0

	_, err := Do(context.Background(), Policy{Attempts: 4, Interval: time.Millisecond},
		func(context.Context) (int, error) {
			calls++

			return 0, errors.New("refused")
		},
		nil,
	)

	require.Error(t, err)
	assert.EqualError(t, err, "refused")
	assert.Equal(t, 4, calls)
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0

	_, err := Do(context.Background(), Policy{Attempts: 10, Interval: time.Millisecond},
		func(context.Context) (int, error) {
			calls++

			return 0, Permanent(errors.New("bad credentials"))
		},
		nil,
	)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := Do(ctx, Policy{Attempts: 10, Interval: time.Hour},
		func(context.Context) (int, error) {
			calls++
			cancel()

			return 0, errors.New("refused")
		},
		nil,
	)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0

	_, _ = Do(context.Background(), Policy{}, func(context.Context) (int, error) {
		calls++

		return 0, errors.New("refused")
	}, nil)

	assert.Equal(t, 1, calls)
}
