package cache

import "time"

// LayeredCache reads through a memory tier backed by a disk tier.
// Disk hits are promoted to memory; writes go to both tiers.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache combines a memory and a disk tier. Either may be nil.
func NewLayeredCache(memory, disk Cache) *LayeredCache {
	return &LayeredCache{memory: memory, disk: disk}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if c.memory != nil {
		if val, ok := c.memory.Get(key); ok {
			return val, true
		}
	}
	if c.disk != nil {
		if val, ok := c.disk.Get(key); ok {
			if c.memory != nil {
				_ = c.memory.Set(key, val, 0)
			}
			return val, true
		}
	}
	return nil, false
}

func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if c.memory != nil {
		_ = c.memory.Set(key, value, ttl)
	}
	if c.disk != nil {
		return c.disk.Set(key, value, ttl)
	}
	return nil
}

func (c *LayeredCache) Delete(key string) error {
	if c.memory != nil {
		_ = c.memory.Delete(key)
	}
	if c.disk != nil {
		return c.disk.Delete(key)
	}
	return nil
}

func (c *LayeredCache) Clear() error {
	if c.memory != nil {
		_ = c.memory.Clear()
	}
	if c.disk != nil {
		return c.disk.Clear()
	}
	return nil
}
