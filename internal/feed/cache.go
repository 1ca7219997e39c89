// Package feed assembles the community feed: a time-bounded cache of the
// remote public collection (with built-in demo filler), merged with the
// caller's own not-yet-synced public entries, filtered and ordered.
package feed

import (
	"sync"
	"time"

	"github.com/latted-app/latted/internal/models"
)

// DefaultTTL bounds how long one remote fetch is reused.
const DefaultTTL = 30 * time.Second

// Cache holds the last fetched public collection until it expires.
// Invalidate drops it early to force a refetch.
type Cache struct {
	mu      sync.Mutex
	entries []models.FeedEntry
	expires time.Time
	ttl     time.Duration

	now func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, now: time.Now}
}

// Get returns the cached collection and whether it is still fresh.
func (c *Cache) Get() ([]models.FeedEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil || c.now().After(c.expires) {
		return nil, false
	}
	return c.entries, true
}

// Set stores a fetched collection and restarts the TTL clock.
func (c *Cache) Set(entries []models.FeedEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.expires = c.now().Add(c.ttl)
}

// Invalidate resets the cache so the next read refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.expires = time.Time{}
}
