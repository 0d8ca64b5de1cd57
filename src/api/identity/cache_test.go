package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(ttl time.Duration) (*Cache, *time.Time) {
	c := NewCache(ttl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCacheHitWithinTTL(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Put("user_1", &User{ID: "user_1", Email: "a@example.com"})
	u, ok := c.Get("user_1")
	require.True(t, ok)
	assert.Equal(t, "a@example.com", u.Email)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c, now := newTestCache(time.Minute)

	c.Put("user_1", &User{ID: "user_1"})
	*now = now.Add(61 * time.Second)

	_, ok := c.Get("user_1")
	assert.False(t, ok)
}

func TestCacheNilIsAValidHit(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Put("ghost", nil)
	u, ok := c.Get("ghost")
	assert.True(t, ok)
	assert.Nil(t, u)
}

func TestCacheSweepDropsOnlyExpired(t *testing.T) {
	c, now := newTestCache(time.Minute)

	c.Put("old", &User{ID: "old"})
	*now = now.Add(30 * time.Second)
	c.Put("fresh", &User{ID: "fresh"})
	*now = now.Add(40 * time.Second)

	c.Sweep()

	_, ok := c.Get("old")
	assert.False(t, ok)
	_, ok = c.Get("fresh")
	assert.True(t, ok)
}
