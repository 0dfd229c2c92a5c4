package spatial

import (
	"sync"

	"github.com/chazu/starconvex/pkg/lattice"
)

// LatticeCache memoizes indexes over lattice directions by lattice size.
// Every shape with the same ray count shares one read-only index.
type LatticeCache struct {
	build    Builder
	lattices *lattice.Cache

	mu      sync.Mutex
	entries map[int]Index
}

// DefaultLatticeCache is the process-wide R-tree cache over lattice.Default.
var DefaultLatticeCache = NewLatticeCache(DefaultBuilder, lattice.Default)

// NewLatticeCache returns an empty cache that builds indexes with build
// over directions drawn from lattices.
func NewLatticeCache(build Builder, lattices *lattice.Cache) *LatticeCache {
	return &LatticeCache{
		build:    build,
		lattices: lattices,
		entries:  make(map[int]Index),
	}
}

// Get returns the index over the lattice of size n.
func (c *LatticeCache) Get(n int) (Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx, ok := c.entries[n]; ok {
		return idx, nil
	}
	dirs, err := c.lattices.Get(n)
	if err != nil {
		return nil, err
	}
	idx := c.build(dirs)
	c.entries[n] = idx
	return idx, nil
}
