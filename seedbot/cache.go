package seedbot

import (
	"sync"

	"seedbot/ark"
)

const CACHE_KEY_PROMPT_LEN = 100

// CacheKey derives the composite cache key for a generation request. The
// prompt is clipped to 100 runes, so prompts differing only past that point
// share an entry.
func CacheKey(prompt, model, size string) string {
	return ark.Truncate(prompt, CACHE_KEY_PROMPT_LEN) + "|" + model + "|" + size
}

// ResultCache is a bounded insertion-ordered map from cache key to a
// base64-encoded image. Entries are added only after a successful
// generate+encode, never mutated, and removed only by eviction or an
// explicit Remove when a stored image turns out to be undeliverable.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]string
	order   []string
	maxSize int

	hits   uint64
	misses uint64
}

func NewResultCache(maxSize int) *ResultCache {
	if maxSize <= 0 {
		maxSize = DEFAULT_CACHE_MAX_SIZE
	}
	return &ResultCache{
		entries: make(map[string]string),
		maxSize: maxSize,
	}
}

func (c *ResultCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	image, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return image, ok
}

func (c *ResultCache) Put(key, image string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = image
}

func (c *ResultCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// EvictIfOverCapacity runs the batch eviction sweep: once the entry count
// exceeds the max, the oldest floor(max/2) entries are dropped in one pass
// (at minimum enough to get back under the max). The sweep never touches the
// most recently inserted entry.
func (c *ResultCache) EvictIfOverCapacity() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.order) <= c.maxSize {
		return
	}
	n := c.maxSize / 2
	if over := len(c.order) - c.maxSize; n < over {
		n = over
	}
	for _, key := range c.order[:n] {
		delete(c.entries, key)
	}
	c.order = append([]string(nil), c.order[n:]...)
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit/miss counters and the current entry count.
func (c *ResultCache) Stats() (hits, misses uint64, entries int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.entries)
}
