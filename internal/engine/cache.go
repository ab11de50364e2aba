package engine

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"
)

// Cache is a small in-process TTL cache for computed aggregates. Entries are
// tagged so a journal edit can drop every derived result at once; expiry
// alone is never relied on for correctness after a data correction.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	byTag   map[string]map[string]struct{}
	now     func() time.Time
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
	tags      []string
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		byTag:   make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.remove(key, entry)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key. A zero ttl means no expiry; the entry lives
// until a tag it carries is invalidated.
func (c *Cache) Set(key string, value any, ttl time.Duration, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.remove(key, old)
	}

	entry := cacheEntry{value: value, tags: tags}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry
	for _, tag := range tags {
		if c.byTag[tag] == nil {
			c.byTag[tag] = make(map[string]struct{})
		}
		c.byTag[tag][key] = struct{}{}
	}
}

// Invalidate drops every entry carrying the tag.
func (c *Cache) Invalidate(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.byTag[tag] {
		if entry, ok := c.entries[key]; ok {
			c.remove(key, entry)
		}
	}
	delete(c.byTag, tag)
}

func (c *Cache) remove(key string, entry cacheEntry) {
	delete(c.entries, key)
	for _, tag := range entry.tags {
		if keys := c.byTag[tag]; keys != nil {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
}

// cacheKey hashes its parts into a stable key.
func cacheKey(parts ...string) string {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%x", h.Sum64())
}
