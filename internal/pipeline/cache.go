package pipeline

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
)

// CacheKey hashes the bracketed form of an input tree.
func CacheKey(bracketed string) uint64 {
	return xxh3.HashString(bracketed)
}

// Cache is a bounded least-recently-used map from input hash to result.
// A nil *Cache stores nothing.
type Cache struct {
	lru *lru.Cache[uint64, *Result]
}

// NewCache returns nil when max is not positive.
func NewCache(max int) *Cache {
	if max <= 0 {
		return nil
	}
	l, err := lru.New[uint64, *Result](max)
	if err != nil {
		return nil
	}
	return &Cache{lru: l}
}

func (c *Cache) Get(key uint64) (*Result, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *Cache) Put(key uint64, res *Result) {
	if c == nil {
		return
	}
	c.lru.Add(key, res)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
