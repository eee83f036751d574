// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryCache is the in-process Cacher used when no Redis URL is configured.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	bytes      int64
	defaultTTL time.Duration
	maxSize    int
	closed     bool
	stop       chan struct{}
	counters
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCacheOptions configures the memory cache.
type MemoryCacheOptions struct {
	DefaultTTL      time.Duration
	MaxSize         int           // 0 = unlimited
	CleanupInterval time.Duration // 0 = expire lazily on Get only
}

// NewMemoryCache creates a memory cache. A positive CleanupInterval starts a
// sweeper goroutine that Close stops.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		entries:    make(map[string]memoryEntry),
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		stop:       make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go c.sweep(opts.CleanupInterval)
	}
	return c
}

// Get returns a copy of the stored value.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrCacheClosed
	}

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		if ok {
			c.remove(key, e)
		}
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}
	c.hits.Add(1)
	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value. When the cache is full, expired entries go
// first, then the one closest to expiry.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}

	if old, ok := c.entries[key]; ok {
		c.remove(key, old)
	} else if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.removeExpired(time.Now())
		if len(c.entries) >= c.maxSize {
			c.evictSoonest()
		}
	}

	c.entries[key] = memoryEntry{value: append([]byte(nil), value...), expiresAt: time.Now().Add(ttl)}
	c.bytes += int64(len(value))
	c.sets.Add(1)
	return nil
}

// DeleteByPrefix removes every key starting with prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	for k, e := range c.entries {
		if strings.HasPrefix(k, prefix) {
			c.remove(k, e)
		}
	}
	return nil
}

// Close stops the sweeper. Later calls fail with ErrCacheClosed.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.stop)
	}
	return nil
}

// Stats returns current cache statistics.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	items, size := len(c.entries), c.bytes
	c.mu.Unlock()
	return c.counters.stats(BackendMemory, items, size)
}

// remove, removeExpired and evictSoonest require c.mu.
func (c *MemoryCache) remove(key string, e memoryEntry) {
	delete(c.entries, key)
	c.bytes -= int64(len(e.value))
}

func (c *MemoryCache) removeExpired(now time.Time) {
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			c.remove(k, e)
		}
	}
}

func (c *MemoryCache) evictSoonest() {
	var victim string
	var soonest time.Time
	for k, e := range c.entries {
		if soonest.IsZero() || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
		}
	}
	if !soonest.IsZero() {
		c.remove(victim, c.entries[victim])
	}
}

func (c *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			c.mu.Lock()
			c.removeExpired(now)
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

var (
	_ Cacher        = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
