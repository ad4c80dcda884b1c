// Package cache provides an in-memory LRU cache with per-entry TTL for tab content.
package cache

import (
	"container/list"
	"sync"
	"time"

	"bought-tab/internal/metrics"
)

type entry struct {
	key       string
	value     string
	expiresAt time.Time
}

// LRU is a fixed-capacity string cache. Entries expire ttl after they are
// stored; reads do not extend the expiry so edits made outside this process
// become visible within one TTL. A ttl of zero disables expiry.
type LRU struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewLRU creates a cache holding at most capacity entries.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Get returns the cached value for key.
func (c *LRU) Get(key string) (string, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return "", false
	}

	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		return "", false
	}

	c.ll.MoveToFront(elem)
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.value, true
}

// Set stores value under key, evicting the least recently used entry when full.
func (c *LRU) Set(key, value string) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = value
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		key:       key,
		value:     value,
		expiresAt: c.expiryFrom(now),
	})
	c.index[key] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
}

// Delete drops key from the cache.
func (c *LRU) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.removeElement(elem)
		metrics.CacheOps.WithLabelValues("invalidated").Inc()
	}
}

// Len returns the number of cached entries, expired ones included.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *LRU) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

func (c *LRU) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(c.index, ent.key)
	c.ll.Remove(elem)
	metrics.CacheSize.Set(float64(len(c.index)))
}

func (c *LRU) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *LRU) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack removes expired entries from the tail up to the first live one.
func (c *LRU) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		if !c.isExpired(back.Value.(*entry), now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}
