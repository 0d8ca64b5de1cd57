package identity

import (
	"sync"
	"time"
)

// Cache memoizes user lookups for a fixed TTL so enriching a page of
// reviews does not hammer the provider with one call per review. It is an
// explicit object handed to whoever needs it, never package state.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	user    *User
	expires time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached user and whether a live entry was found. A cached
// nil is a valid hit: it remembers that the provider had no such user.
func (c *Cache) Get(userID string) (*User, bool) {
	c.mu.RLock()
	e, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.user, true
}

func (c *Cache) Put(userID string, user *User) {
	c.mu.Lock()
	c.entries[userID] = cacheEntry{user: user, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Sweep drops expired entries; the webserver runs this on a ticker.
func (c *Cache) Sweep() {
	now := c.now()
	c.mu.Lock()
	for id, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, id)
		}
	}
	c.mu.Unlock()
}
