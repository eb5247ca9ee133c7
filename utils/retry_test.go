package utils

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	var slept []time.Duration
	r := &RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   10 * time.Millisecond,
		Logger:      NewLoggerWithLevel(io.Discard, "warn"),
		sleep:       func(d time.Duration) { slept = append(slept, d) },
	}

	calls := 0
	err := r.Do("ping", func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, slept)
}

func TestRetryGivesUp(t *testing.T) {
	sentinel := errors.New("down")
	r := &RetryConfig{MaxAttempts: 2, sleep: func(time.Duration) {}}

	calls := 0
	err := r.Do("ping", func() error { calls++; return sentinel })

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorContains(t, err, "ping failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestRetryRunsOnceWithoutAttempts(t *testing.T) {
	r := &RetryConfig{}
	calls := 0
	_ = r.Do("ping", func() error { calls++; return errors.New("x") })
	assert.Equal(t, 1, calls)
}
