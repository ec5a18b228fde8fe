package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetrier(maxRetries int) *Retrier {
	return NewRetrier(&RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2,
	})
}

func TestRetrier_Do_RetriesTransient(t *testing.T) {
	calls := 0
	err := fastRetrier(3).Do(context.Background(), "get product", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &RemoteError{Service: "test", StatusCode: 503}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrier_Do_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := fastRetrier(3).Do(context.Background(), "get product", func(ctx context.Context) error {
		calls++
		return ErrRemoteNotFound
	})

	assert.ErrorIs(t, err, ErrRemoteNotFound)
	assert.Equal(t, 1, calls)
}

func TestRetrier_Do_GivesUp(t *testing.T) {
	calls := 0
	err := fastRetrier(2).Do(context.Background(), "list brands", func(ctx context.Context) error {
		calls++
		return &UnavailableError{Service: "test", Err: errors.New("connection refused")}
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.Contains(t, err.Error(), "max retries exceeded for list brands")
}

func TestRetrier_Do_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	retrier := NewRetrier(&RetryConfig{MaxRetries: 5, InitialBackoff: time.Hour, MaxBackoff: time.Hour, BackoffFactor: 2})

	calls := 0
	err := retrier.Do(ctx, "list brands", func(ctx context.Context) error {
		calls++
		cancel()
		return &RateLimitError{Service: "test"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetrier_CalculateBackoff(t *testing.T) {
	retrier := NewRetrier(&RetryConfig{InitialBackoff: time.Second, MaxBackoff: 10 * time.Second, BackoffFactor: 2})

	assert.Equal(t, time.Second, retrier.CalculateBackoff(0, 0))
	assert.Equal(t, 4*time.Second, retrier.CalculateBackoff(2, 0))
	assert.Equal(t, 10*time.Second, retrier.CalculateBackoff(8, 0))
	assert.Equal(t, 3*time.Second, retrier.CalculateBackoff(0, 3*time.Second))
	assert.Equal(t, 10*time.Second, retrier.CalculateBackoff(0, time.Minute))
}

func TestCircuitBreaker_Call(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Hour)
	transient := &RemoteError{Service: "test", StatusCode: 500}

	assert.ErrorIs(t, cb.Call(func() error { return ErrRemoteNotFound }), ErrRemoteNotFound)
	assert.Equal(t, CircuitClosed, cb.State())

	assert.Error(t, cb.Call(func() error { return transient }))
	assert.Error(t, cb.Call(func() error { return transient }))
	assert.Equal(t, CircuitOpen, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}
