package timeutils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrAllAttemptsFailed = errors.New("all attempts failed")
)

// FixedDelays returns attemptDelays for Retry: attempts tries spaced by delay.
func FixedDelays(attempts int, delay time.Duration) []time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	delays := make([]time.Duration, attempts)
	for i := range delays {
		delays[i] = delay
	}
	return delays
}

// Retry calls function once per element of attemptDelays, waiting the
// element's delay after a failed attempt. onFinished decides whether the
// result of an attempt should be retried; the final attempt never sleeps.
// When every attempt asked for a retry the returned error wraps both
// ErrAllAttemptsFailed and the last attempt's error.
func Retry[T any](
	ctx context.Context,
	attemptDelays []time.Duration,
	function func(context.Context) (T, error),
	onFinished func(attempt int, res T, err error) (needRetry bool),
) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for i, delay := range attemptDelays {
		if ctx.Err() != nil {
			return zero, fmt.Errorf("retry canceled: %w", ctx.Err())
		}
		res, err := function(ctx)
		if !onFinished(i+1, res, err) {
			return res, err
		}
		lastErr = err
		if i == len(attemptDelays)-1 {
			break
		}
		if err := SleepCtx(ctx, delay); err != nil {
			return zero, err
		}
	}
	if lastErr == nil {
		return zero, ErrAllAttemptsFailed
	}
	return zero, fmt.Errorf("%w: %w", ErrAllAttemptsFailed, lastErr)
}

func SleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err() //nolint:wrapcheck // unnecessary
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("sleep canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
