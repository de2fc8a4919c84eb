// Package cache keeps prepared statements for executed likesql statements.
package cache

import (
	"container/list"
	"database/sql"
	"sync"
	"sync/atomic"
)

const (
	// DefaultStmtCacheCapacity is the default maximum number of cached prepared statements.
	DefaultStmtCacheCapacity = 256
)

// StmtCache stores prepared statements keyed by SQL text with LRU eviction.
type StmtCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	lruList  *list.List

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key  string
	stmt *sql.Stmt
}

// NewStmtCache creates a new prepared statement cache with default capacity.
func NewStmtCache() *StmtCache {
	return NewStmtCacheWithCapacity(DefaultStmtCacheCapacity)
}

// NewStmtCacheWithCapacity creates a new prepared statement cache with specified capacity.
// A non-positive capacity falls back to DefaultStmtCacheCapacity.
func NewStmtCacheWithCapacity(capacity int) *StmtCache {
	if capacity <= 0 {
		capacity = DefaultStmtCacheCapacity
	}
	return &StmtCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		lruList:  list.New(),
	}
}

// Get returns the statement cached for key and marks it most recently used.
func (sc *StmtCache) Get(key string) (*sql.Stmt, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	elem, exists := sc.items[key]
	if !exists {
		sc.misses.Add(1)
		return nil, false
	}

	sc.lruList.MoveToFront(elem)
	sc.hits.Add(1)

	return elem.Value.(*cacheEntry).stmt, true
}

// Store caches stmt under key and returns the statement callers should use.
// When another goroutine stored key first, stmt is closed and the cached
// statement is returned instead, so a statement in use is never closed.
// If the cache is full, the least recently used statement is evicted.
func (sc *StmtCache) Store(key string, stmt *sql.Stmt) *sql.Stmt {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if elem, exists := sc.items[key]; exists {
		sc.lruList.MoveToFront(elem)
		existing := elem.Value.(*cacheEntry).stmt
		if existing != stmt {
			_ = stmt.Close()
		}
		return existing
	}

	if sc.lruList.Len() >= sc.capacity {
		sc.evictOldest()
	}

	sc.items[key] = sc.lruList.PushFront(&cacheEntry{key: key, stmt: stmt})
	return stmt
}

// Remove drops and closes the statement cached for key.
// It reports whether key was cached.
func (sc *StmtCache) Remove(key string) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	elem, exists := sc.items[key]
	if !exists {
		return false
	}
	sc.lruList.Remove(elem)
	delete(sc.items, key)
	_ = elem.Value.(*cacheEntry).stmt.Close()
	return true
}

// evictOldest removes and closes the least recently used statement.
// Must be called with lock held.
func (sc *StmtCache) evictOldest() {
	elem := sc.lruList.Back()
	if elem == nil {
		return
	}

	sc.lruList.Remove(elem)
	entry := elem.Value.(*cacheEntry)
	delete(sc.items, entry.key)

	_ = entry.stmt.Close()
	sc.evictions.Add(1)
}

// Clear closes and removes all cached prepared statements.
func (sc *StmtCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	for elem := sc.lruList.Front(); elem != nil; elem = elem.Next() {
		_ = elem.Value.(*cacheEntry).stmt.Close()
	}

	sc.items = make(map[string]*list.Element, sc.capacity)
	sc.lruList.Init()
}

// Stats holds cache performance metrics.
type Stats struct {
	Size      int     // Current number of cached statements.
	Capacity  int     // Maximum capacity.
	Hits      uint64  // Number of successful cache lookups.
	Misses    uint64  // Number of cache misses.
	Evictions uint64  // Number of evicted statements.
	HitRate   float64 // Cache hit rate (hits / total requests).
}

// Stats returns cache statistics.
func (sc *StmtCache) Stats() Stats {
	sc.mu.Lock()
	size := sc.lruList.Len()
	sc.mu.Unlock()

	hits := sc.hits.Load()
	misses := sc.misses.Load()

	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Size:      size,
		Capacity:  sc.capacity,
		Hits:      hits,
		Misses:    misses,
		Evictions: sc.evictions.Load(),
		HitRate:   hitRate,
	}
}
