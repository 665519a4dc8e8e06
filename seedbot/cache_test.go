package seedbot

import (
	"fmt"
	"strings"
	"testing"
)

func TestCacheKey(t *testing.T) {
	key := CacheKey("a red fox", "m1", "1024x1024")
	if key != "a red fox|m1|1024x1024" {
		t.Fatalf("unexpected key: %s", key)
	}

	// identical inputs, identical keys
	if key != CacheKey("a red fox", "m1", "1024x1024") {
		t.Fatal("cache key is not deterministic")
	}

	// changing any component changes the key
	if key == CacheKey("a blue fox", "m1", "1024x1024") ||
		key == CacheKey("a red fox", "m2", "1024x1024") ||
		key == CacheKey("a red fox", "m1", "512x512") {
		t.Fatal("cache key must depend on all three components")
	}
}

func TestCacheKeyPromptTruncation(t *testing.T) {
	base := strings.Repeat("a", 100)
	k1 := CacheKey(base+"tail one", "m", "s")
	k2 := CacheKey(base+"different tail", "m", "s")
	if k1 != k2 {
		t.Fatal("prompts differing past 100 chars should collide")
	}
	k3 := CacheKey(base[:99]+"X", "m", "s")
	if k1 == k3 {
		t.Fatal("change inside the first 100 chars must change the key")
	}
}

func TestCachePutGetRemove(t *testing.T) {
	c := NewResultCache(10)
	if _, ok := c.Get("k"); ok {
		t.Fatal("empty cache should miss")
	}
	c.Put("k", "img")
	if got, ok := c.Get("k"); !ok || got != "img" {
		t.Fatalf("expected hit with img, got %q %v", got, ok)
	}
	c.Remove("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("removed key should miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}

	hits, misses, _ := c.Stats()
	if hits != 1 || misses != 2 {
		t.Fatalf("unexpected stats: %d hits %d misses", hits, misses)
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewResultCache(10)
	for i := 0; i < 11; i++ {
		key := fmt.Sprintf("key%02d", i)
		c.Put(key, "img")
		c.EvictIfOverCapacity()
	}

	// the 11th insert sweeps the oldest floor(10/2)=5 entries
	if c.Len() != 6 {
		t.Fatalf("expected 6 entries after sweep, got %d", c.Len())
	}
	for i := 0; i < 5; i++ {
		if _, ok := c.Get(fmt.Sprintf("key%02d", i)); ok {
			t.Fatalf("key%02d should have been evicted", i)
		}
	}
	for i := 5; i < 11; i++ {
		if _, ok := c.Get(fmt.Sprintf("key%02d", i)); !ok {
			t.Fatalf("key%02d should have survived", i)
		}
	}
	// the just-inserted entry is always retained
	if _, ok := c.Get("key10"); !ok {
		t.Fatal("most recent entry must survive the sweep")
	}
}

func TestCacheNoEvictionAtCapacity(t *testing.T) {
	c := NewResultCache(10)
	for i := 0; i < 10; i++ {
		c.Put(fmt.Sprintf("key%02d", i), "img")
		c.EvictIfOverCapacity()
	}
	if c.Len() != 10 {
		t.Fatalf("no sweep should run at exactly max size, got %d entries", c.Len())
	}
}

func TestCacheDuplicatePutKeepsOneEntry(t *testing.T) {
	c := NewResultCache(10)
	c.Put("k", "img1")
	c.Put("k", "img1")
	if c.Len() != 1 {
		t.Fatalf("duplicate put should not grow the cache, got %d", c.Len())
	}
}
