package pagerank

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the number of keys CachedTable remembers,
// present and absent (Floor) keys alike; the least recently used entry
// is evicted once the bound is reached.
const defaultCacheSize = 4096

// CachedTable wraps a Table with an LRU front for repeated lookups and
// supports swapping the underlying Table atomically on reload, so a
// background refresh never blocks concurrent Lookup calls for long.
type CachedTable struct {
	mu    sync.RWMutex
	table *Table
	hits  *lru.Cache[string, float64]
}

// NewCachedTable wraps table behind an LRU cache of the given size.
// A non-positive size selects defaultCacheSize.
func NewCachedTable(table *Table, size int) (*CachedTable, error) {
	ct := &CachedTable{table: table}
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, err
	}
	ct.hits = cache
	return ct, nil
}

// Lookup returns the normalized weight for key, consulting the LRU
// first and falling back to the backing Table on a miss.
func (c *CachedTable) Lookup(key string) float64 {
	if c == nil {
		return Floor
	}
	if w, ok := c.hits.Get(key); ok {
		return w
	}

	c.mu.RLock()
	table := c.table
	c.mu.RUnlock()

	w := table.Lookup(key)
	c.hits.Add(key, w)
	return w
}

// Swap atomically replaces the backing Table, e.g. after a source
// reload, and drops the LRU's stale entries.
func (c *CachedTable) Swap(table *Table) {
	c.mu.Lock()
	c.table = table
	c.mu.Unlock()
	c.hits.Purge()
}

// Len reports the size of the backing Table (not the LRU's hit count).
func (c *CachedTable) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table.Len()
}

// Reload loads raw weights from source, builds a fresh Table, and
// swaps it in.
func (c *CachedTable) Reload(source Source) error {
	raw, err := source.Load()
	if err != nil {
		return err
	}
	c.Swap(Build(raw))
	return nil
}
