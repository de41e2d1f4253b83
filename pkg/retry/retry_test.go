package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, WithBaseDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_MaxAttemptsExceeded(t *testing.T) {
	sentinel := errors.New("boom")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return sentinel
	}, WithMaxAttempts(2), WithBaseDelay(time.Millisecond))

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 2, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	sentinel := errors.New("bad payload")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return Permanent(sentinel)
	}, WithBaseDelay(time.Millisecond))

	assert.Equal(t, sentinel, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, func() error {
		return errors.New("transient")
	}, WithBaseDelay(time.Hour))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_OnRetryAndExhausted(t *testing.T) {
	sentinel := errors.New("recorder unavailable")
	var attempts []int
	err := Do(context.Background(), func() error {
		return sentinel
	}, WithMaxAttempts(3), WithBaseDelay(time.Millisecond), WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
		assert.Equal(t, sentinel, err)
	}))

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, []int{1, 2}, attempts, "no hook after the last attempt")
	assert.False(t, IsPermanent(err))
	assert.True(t, IsPermanent(Permanent(sentinel)))
	assert.Nil(t, Permanent(nil))
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, time.Second, Backoff(1, time.Second, 30*time.Second))
	assert.Equal(t, 4*time.Second, Backoff(3, time.Second, 30*time.Second))
	assert.Equal(t, 30*time.Second, Backoff(10, time.Second, 30*time.Second))
	assert.Equal(t, 30*time.Second, Backoff(200, time.Second, 30*time.Second))
	assert.Equal(t, time.Second, Backoff(0, time.Second, 30*time.Second))
}
