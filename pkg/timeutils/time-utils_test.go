package timeutils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func TestRetry(t *testing.T) {
	tests := []struct {
		name          string
		attempts      int
		failuresFirst int
		wantCalls     int
		wantErr       error
	}{
		{
			name:          "first attempt succeeds",
			attempts:      4,
			failuresFirst: 0,
			wantCalls:     1,
		},
		{
			name:          "succeeds on last attempt",
			attempts:      4,
			failuresFirst: 3,
			wantCalls:     4,
		},
		{
			name:          "budget exhausted",
			attempts:      4,
			failuresFirst: 10,
			wantCalls:     4,
			wantErr:       ErrAllAttemptsFailed,
		},
		{
			name:          "single attempt",
			attempts:      0,
			failuresFirst: 10,
			wantCalls:     1,
			wantErr:       ErrAllAttemptsFailed,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			calls := 0
			res, err := Retry(
				context.Background(),
				FixedDelays(test.attempts, time.Millisecond),
				func(context.Context) (int, error) {
					calls++
					if calls <= test.failuresFirst {
						return 0, errFlaky
					}
					return calls, nil
				},
				func(_ int, _ int, err error) bool {
					return err != nil
				},
			)
			assert.Equal(t, test.wantCalls, calls)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				assert.ErrorIs(t, err, errFlaky)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, calls, res)
		})
	}
}

func TestRetry_NonRetryableErrorStops(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	_, err := Retry(
		context.Background(),
		FixedDelays(5, time.Millisecond),
		func(context.Context) (struct{}, error) {
			calls++
			return struct{}{}, fatal
		},
		func(_ int, _ struct{}, err error) bool {
			return !errors.Is(err, fatal)
		},
	)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, fatal)
	assert.NotErrorIs(t, err, ErrAllAttemptsFailed)
}

func TestRetry_CanceledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(
		ctx,
		FixedDelays(3, time.Hour),
		func(context.Context) (int, error) {
			calls++
			cancel()
			return 0, errFlaky
		},
		func(_ int, _ int, err error) bool {
			return err != nil
		},
	)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}
