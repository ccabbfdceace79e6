package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			krl := New(tt.rps, tt.burst)
			defer krl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if krl.Allow("client") {
					passed++
				}
			}
			assert.Equal(t, tt.wantPass, passed)
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("a"))
	assert.False(t, krl.Allow("a"))

	// A different key has its own bucket.
	assert.True(t, krl.Allow("b"))
}

func TestKeyedRateLimiter_Wait(t *testing.T) {
	krl := New(100, 1)
	defer krl.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, krl.Wait(ctx, "client"))
	require.NoError(t, krl.Wait(ctx, "client"))
}

func TestKeyedRateLimiter_WaitCanceled(t *testing.T) {
	krl := New(0.001, 1)
	defer krl.Stop()
	require.True(t, krl.Allow("client"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, krl.Wait(ctx, "client"))
}

func TestKeyedRateLimiter_EvictsIdleKeys(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	krl.Allow("idle")
	krl.Allow("active")

	// Backdate one key past the idle window.
	krl.mu.RLock()
	krl.limiters["idle"].lastSeen.Store(time.Now().Add(-2 * maxIdle).UnixNano())
	krl.mu.RUnlock()

	krl.evictIdle(time.Now().Add(-maxIdle).UnixNano())

	krl.mu.RLock()
	defer krl.mu.RUnlock()
	assert.NotContains(t, krl.limiters, "idle")
	assert.Contains(t, krl.limiters, "active")
}

func TestKeyedRateLimiter_EvictionResetsBucket(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	require.True(t, krl.Allow("client"))
	require.False(t, krl.Allow("client"))

	krl.evictIdle(time.Now().Add(time.Second).UnixNano())

	// A fresh limiter has a full burst again.
	assert.True(t, krl.Allow("client"))
}

func TestKeyedRateLimiter_StopIsIdempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
