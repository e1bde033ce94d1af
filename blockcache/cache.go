// Package blockcache memoizes tree rebuilds of server-rendered markup.
//
// Entries are keyed by the markup and its render options, kept in insertion
// order and evicted oldest-first once the capacity is reached. Results
// without a tree are cached too, so markup without a sentinel is not scanned
// again. The cache lives for the process and has no invalidation hook.
package blockcache

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/nativeblocks/innerblocks/blocktree"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity is the number of entries kept when no capacity is given.
const DefaultCapacity = 100

// Builder produces the result the cache stores.
type Builder interface {
	Build(markup string, opts blocktree.Options) blocktree.Result
}

// Stats reports cache activity.
type Stats struct {
	Entries   int    `json:"entries"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// Cache is a bounded FIFO memo of build results. It is safe for concurrent
// use; concurrent misses on the same key share a single build.
//
// Cached results are shared between callers and must be treated as read-only.
type Cache struct {
	builder  Builder
	capacity int

	mu        sync.Mutex
	entries   *linkedhashmap.Map
	hits      uint64
	misses    uint64
	evictions uint64

	group singleflight.Group
}

// New creates a cache in front of builder. A capacity below one selects
// DefaultCapacity.
func New(builder Builder, capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Cache{
		builder:  builder,
		capacity: capacity,
		entries:  linkedhashmap.New(),
	}
}

// GetOrBuild returns the stored result for markup and opts, building and
// storing it on a miss.
func (c *Cache) GetOrBuild(markup string, opts blocktree.Options) blocktree.Result {
	key, err := Key(markup, opts)
	if err != nil {
		// options that cannot be encoded are built every time
		return c.builder.Build(markup, opts)
	}

	if result, ok := c.get(key, true); ok {
		return result
	}

	value, _, _ := c.group.Do(key, func() (any, error) {
		if result, ok := c.get(key, false); ok {
			return result, nil
		}
		result := c.builder.Build(markup, opts)
		c.put(key, result)
		return result, nil
	})
	return value.(blocktree.Result)
}

// Contains reports whether a result for markup and opts is stored.
func (c *Cache) Contains(markup string, opts blocktree.Options) bool {
	key, err := Key(markup, opts)
	if err != nil {
		return false
	}
	_, ok := c.get(key, false)
	return ok
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Size()
}

// Capacity returns the maximum number of stored entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:   c.entries.Size(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

func (c *Cache) get(key string, count bool) (blocktree.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, found := c.entries.Get(key)
	if !found {
		return blocktree.Result{}, false
	}
	if count {
		c.hits++
	}
	return value.(blocktree.Result), true
}

func (c *Cache) put(key string, result blocktree.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.misses++
	if _, found := c.entries.Get(key); found {
		c.entries.Put(key, result)
		return
	}

	for c.entries.Size() >= c.capacity {
		it := c.entries.Iterator()
		if !it.First() {
			break
		}
		c.entries.Remove(it.Key())
		c.evictions++
	}
	c.entries.Put(key, result)
}
