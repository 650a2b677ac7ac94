package cache

import (
	"context"
	"sync"

	"github.com/RyoWakabayashi/pm-study/internal/storage"
)

// Cache keeps values in process memory. Capacity bounds the total size of
// all stored values, zero means unbounded.
type Cache struct {
	mu       sync.Mutex
	values   map[string][]byte
	size     int
	capacity int
}

func NewCache(capacity int) *Cache {
	return &Cache{
		values:   make(map[string][]byte),
		capacity: capacity,
	}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, exists := c.values[key]
	if !exists {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.size - len(c.values[key]) + len(value)
	if c.capacity > 0 && size > c.capacity {
		return storage.ErrQuotaExceeded
	}

	v := make([]byte, len(value))
	copy(v, value)
	c.values[key] = v
	c.size = size
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size -= len(c.values[key])
	delete(c.values, key)
	return nil
}

func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}
