package pool

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheKey identifies a cached byte range by its exact (offset, length).
// This mirrors what callers actually ask for (whole pieces), so it caches
// at piece granularity rather than trying to reconstruct arbitrary ranges
// from page-aligned entries.
type cacheKey struct {
	offset uint64
	length uint64
}

// ChunkCache is a small bounded LRU cache of recently sliced byte ranges
// from a memory-mapped Original pool. It exists purely for locality: a
// cold mmap read can fault in a page from disk, and re-reading the same
// piece (e.g. while an iterator re-walks a region for a search) should not
// repeat that fault. The cache is fully transparent — a miss always falls
// back to slicing the mapping directly.
type ChunkCache struct {
	lru *lru.Cache[cacheKey, []byte]
}

// NewChunkCache creates a cache holding up to entries ranges.
func NewChunkCache(entries int) *ChunkCache {
	c, err := lru.New[cacheKey, []byte](entries)
	if err != nil {
		// Only returns an error for entries <= 0, which callers already
		// guard against before calling NewChunkCache.
		panic(err)
	}
	return &ChunkCache{lru: c}
}

// Get returns the cached bytes for [offset, offset+length), if present.
func (c *ChunkCache) Get(offset, length uint64) ([]byte, bool) {
	return c.lru.Get(cacheKey{offset, length})
}

// Put records b as the bytes for [offset, offset+length).
func (c *ChunkCache) Put(offset, length uint64, b []byte) {
	c.lru.Add(cacheKey{offset, length}, b)
}
