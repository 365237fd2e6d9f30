package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/reposh/pkg/reposh"
)

// flakyOperation fails with err until it has been invoked failUntil times.
type flakyOperation struct {
	invocations int
	failUntil   int
	err         error
}

func (f *flakyOperation) execute(_ context.Context) error {
	f.invocations++
	if f.invocations < f.failUntil {
		return f.err
	}
	return nil
}

func fastBackoff(maxAttempts int) *ExponentialBackoff {
	return NewExponentialBackoff(maxAttempts, WithInitialDelay(time.Millisecond), WithJitter(0))
}

func TestExecutor_SuccessOnFirstAttempt(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(3))
	op := &flakyOperation{failUntil: 1}

	require.NoError(t, executor.Execute(context.Background(), op.execute))
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(5))
	op := &flakyOperation{failUntil: 4, err: &reposh.StatusError{Code: 503}}

	var retries []int
	err := executor.WithOnRetry(func(attempt int, _ error, _ time.Duration) {
		retries = append(retries, attempt)
	}).Execute(context.Background(), op.execute)

	require.NoError(t, err)
	assert.Equal(t, 4, op.invocations)
	assert.Equal(t, []int{0, 1, 2}, retries)
}

func TestExecutor_FatalErrorNoRetry(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(5))
	notFound := &reposh.StatusError{Code: 404}
	op := &flakyOperation{failUntil: 10, err: notFound}

	err := executor.Execute(context.Background(), op.execute)
	assert.ErrorIs(t, err, reposh.ErrNotFound)
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_ExhaustsAttempts(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(2))
	op := &flakyOperation{failUntil: 100, err: &reposh.StatusError{Code: 429}}

	err := executor.Execute(context.Background(), op.execute)
	var statusErr *reposh.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 429, statusErr.Code)
	assert.Equal(t, 3, op.invocations)
}

func TestExecutor_ContextCancelledDuringBackoff(t *testing.T) {
	strategy := NewExponentialBackoff(5, WithInitialDelay(time.Hour), WithJitter(0))
	ctx, cancel := context.WithCancel(context.Background())
	executor := NewExecutor(NewHTTPErrorClassifier(), strategy).WithOnRetry(func(int, error, time.Duration) {
		cancel()
	})
	op := &flakyOperation{failUntil: 10, err: &reposh.StatusError{Code: 502}}

	err := executor.Execute(ctx, op.execute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_WithOnRetryDoesNotMutateReceiver(t *testing.T) {
	base := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(1))
	_ = base.WithOnRetry(func(int, error, time.Duration) {})
	assert.Nil(t, base.onRetry)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewHTTPErrorClassifier(), nil) })
}
