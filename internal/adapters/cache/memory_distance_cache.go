package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	miles     float64
	expiresAt time.Time
}

// sweepThreshold is the entry count above which PutMany drops expired entries.
const sweepThreshold = 4096

// MemoryDistanceCache is a thread-safe in-process cache with TTL expiration.
// Expired entries are skipped on read and dropped when the cache grows.
type MemoryDistanceCache struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryDistanceCache(ttl time.Duration) *MemoryDistanceCache {
	return &MemoryDistanceCache{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func pairKey(origin, dest string) string { return origin + "|" + dest }

func (c *MemoryDistanceCache) GetMany(ctx context.Context, origin string, destinations []string) (map[string]float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	out := make(map[string]float64, len(destinations))
	for _, d := range destinations {
		e, ok := c.items[pairKey(origin, d)]
		if !ok || (c.ttl > 0 && now.After(e.expiresAt)) {
			continue
		}
		out[d] = e.miles
	}
	return out, nil
}

func (c *MemoryDistanceCache) PutMany(ctx context.Context, origin string, miles map[string]float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.items) > sweepThreshold {
		c.sweepLocked(now)
	}

	expires := now.Add(c.ttl)
	for d, m := range miles {
		c.items[pairKey(origin, d)] = entry{miles: m, expiresAt: expires}
	}
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (c *MemoryDistanceCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sweepLocked(c.now())
}

func (c *MemoryDistanceCache) sweepLocked(now time.Time) int {
	if c.ttl <= 0 {
		return 0
	}

	n := 0
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Size returns the number of stored entries, including expired ones.
func (c *MemoryDistanceCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
