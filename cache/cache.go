package cache

import (
	"sync"
	"time"

	"github.com/tastemap/api-go/types"
)

// PlaceCache is an in-memory TTL cache for normalized place lists, keyed by
// the serialized search filters. Stale entries are not swept; they report a
// miss on Get and are overwritten by the next Set for the same key.
type PlaceCache struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

type entry struct {
	places    []types.Place
	timestamp time.Time
}

type Option func(*PlaceCache)

// WithClock overrides the time source, for deterministic TTL tests.
func WithClock(now func() time.Time) Option {
	return func(c *PlaceCache) {
		c.now = now
	}
}

func New(ttl time.Duration, opts ...Option) *PlaceCache {
	c := &PlaceCache{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached list and true if an entry exists and is fresh.
func (c *PlaceCache) Get(key string) ([]types.Place, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.timestamp) >= c.ttl {
		return nil, false
	}
	return e.places, true
}

// Set inserts or overwrites the entry for key, stamping it with the current
// time. Last writer wins.
func (c *PlaceCache) Set(key string, places []types.Place) {
	c.mu.Lock()
	c.items[key] = entry{places: places, timestamp: c.now()}
	c.mu.Unlock()
}

// Size returns the number of entries, fresh or stale.
func (c *PlaceCache) Size() int {
	c.mu.RLock()
	sz := len(c.items)
	c.mu.RUnlock()
	return sz
}
