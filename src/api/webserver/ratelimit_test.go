package webserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToRate(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("u1", now))
	}
	assert.False(t, rl.allow("u1", now))
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Now()

	assert.True(t, rl.allow("u1", now))
	assert.True(t, rl.allow("u1", now.Add(time.Second)))
	assert.False(t, rl.allow("u1", now.Add(2*time.Second)))

	// The first request ages out of the window.
	assert.True(t, rl.allow("u1", now.Add(61*time.Second)))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Now()

	assert.True(t, rl.allow("u1", now))
	assert.True(t, rl.allow("u2", now))
	assert.False(t, rl.allow("u1", now))
}

func TestRateLimiterCleanupDropsIdleKeys(t *testing.T) {
	rl := NewRateLimiter(5, time.Millisecond)

	rl.allow("u1", time.Now().Add(-time.Second))
	rl.cleanup()

	rl.mu.Lock()
	_, exists := rl.requests["u1"]
	rl.mu.Unlock()
	assert.False(t, exists)
}
