// Package cache is a small TTL wrapper over an in-process LRU, used to keep
// hot post reads off the database. Mutations invalidate their keys
// explicitly, the TTL is a backstop.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type item struct {
	data      any
	expiresAt time.Time
}

type Cache struct {
	lru *lru.Cache[string, item]
}

func New(size int) (*Cache, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

func (c *Cache) Set(key string, data any, ttl time.Duration) {
	c.lru.Add(key, item{data: data, expiresAt: time.Now().Add(ttl)})
}

// Get returns nil when the key is absent or expired.
func (c *Cache) Get(key string) any {
	val, ok := c.lru.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.expiresAt) {
		c.lru.Remove(key)
		return nil
	}
	return val.data
}

func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}
