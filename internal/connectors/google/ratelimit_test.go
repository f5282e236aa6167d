package google

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/core/domain"
)

func TestNewRateLimiter(t *testing.T) {
	for _, svc := range []ServiceType{ServiceGmail, ServiceCalendar, ServiceSheets, "other"} {
		rl := NewRateLimiter(svc)
		assert.Equal(t, svc, rl.Service())
		assert.True(t, rl.Allow(), "burst available for %s", svc)
	}
}

func TestRateLimiter_Backoff(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

	rl.RecordRateLimitError(time.Hour)
	assert.False(t, rl.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

	rl.RecordRateLimitError(0)

	rl.mu.Lock()
	retryAt := rl.retryAt
	rl.mu.Unlock()
	assert.WithinDuration(t, time.Now().Add(DefaultBackoff), retryAt, time.Second)
}

func TestRateLimiter_Do(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

	calls := 0
	require.NoError(t, rl.Do(context.Background(), func() error { calls++; return nil }))
	assert.Equal(t, 1, calls)

	err := rl.Do(context.Background(), func() error { return apiError(http.StatusTooManyRequests) })
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.False(t, rl.Allow(), "backoff opened")
}

func TestRateLimiter_Do_PlainError(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	boom := errors.New("boom")

	assert.Equal(t, boom, rl.Do(context.Background(), func() error { return boom }))
	assert.True(t, rl.Allow())
}

func TestRateLimiter_Do_CancelledContext(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := rl.Do(ctx, func() error { called = true; return nil })

	assert.Error(t, err)
	assert.False(t, called)
}
