package lattice

import (
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Cache memoizes lattices by size. Entries are created on first use and
// never invalidated. A Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[int][]v3.Vec
}

// Default is the process-wide lattice cache.
var Default = NewCache()

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[int][]v3.Vec)}
}

// Get returns the lattice of size n, generating it on first request.
// The returned slice is shared and must not be modified.
func (c *Cache) Get(n int) ([]v3.Vec, error) {
	c.mu.RLock()
	dirs, ok := c.entries[n]
	c.mu.RUnlock()
	if ok {
		return dirs, nil
	}

	dirs, err := Generate(n)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have won the race; keep the first entry so
	// every caller shares the same backing array.
	if existing, ok := c.entries[n]; ok {
		return existing, nil
	}
	c.entries[n] = dirs
	return dirs, nil
}

// Len reports how many lattice sizes are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Get returns the lattice of size n from the Default cache.
func Get(n int) ([]v3.Vec, error) {
	return Default.Get(n)
}
