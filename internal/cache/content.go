// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/companysite/internal/model"
)

const contentPrefix = "content:"

// ContentCache caches public list reads per family and language filter.
// A nil *ContentCache is valid and always calls through to the loader.
//
// Each family carries a generation that Invalidate bumps before deleting
// keys. A list loaded under an older generation is returned to its caller
// but never stored, so a read racing a write cannot repopulate the cache
// with rows from before the write.
type ContentCache struct {
	backend   Cacher
	localized *TypedCache[[]model.Content]
	simple    *TypedCache[[]model.SimpleContent]

	mu          sync.RWMutex
	generations map[model.Family]uint64
}

// NewContentCache wraps backend with typed list caches.
func NewContentCache(backend Cacher, ttl time.Duration) *ContentCache {
	return &ContentCache{
		backend:     backend,
		localized:   NewTypedCache[[]model.Content](backend, ttl),
		simple:      NewTypedCache[[]model.SimpleContent](backend, ttl),
		generations: make(map[model.Family]uint64),
	}
}

// ListKey returns the cache key of a family list. An empty lang means unfiltered.
func ListKey(family model.Family, lang model.Language) string {
	if lang == "" {
		return contentPrefix + string(family) + ":all"
	}
	return contentPrefix + string(family) + ":" + string(lang)
}

// Localized returns the cached list for family and lang, loading it on a miss.
func (c *ContentCache) Localized(ctx context.Context, family model.Family, lang model.Language, load func() ([]model.Content, error)) ([]model.Content, error) {
	if c == nil {
		return load()
	}
	return cachedList(ctx, c, c.localized, family, ListKey(family, lang), load)
}

// Simple returns the cached list for a simple family, loading it on a miss.
func (c *ContentCache) Simple(ctx context.Context, family model.Family, load func() ([]model.SimpleContent, error)) ([]model.SimpleContent, error) {
	if c == nil {
		return load()
	}
	return cachedList(ctx, c, c.simple, family, ListKey(family, ""), load)
}

func cachedList[T any](ctx context.Context, c *ContentCache, tc *TypedCache[[]T], family model.Family, key string, load func() ([]T, error)) ([]T, error) {
	if list, ok := tc.Get(ctx, key); ok {
		return list, nil
	}

	gen := c.generation(family)
	list, err := load()
	if err != nil {
		return nil, err
	}

	// Invalidate cannot bump the generation between the check and the Set.
	c.mu.RLock()
	if c.generations[family] == gen {
		_ = tc.Set(ctx, key, list)
	}
	c.mu.RUnlock()
	return list, nil
}

func (c *ContentCache) generation(family model.Family) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[family]
}

// Invalidate drops every cached list of family. Failures are logged, not
// returned, so a cache outage never fails a committed write.
func (c *ContentCache) Invalidate(ctx context.Context, family model.Family) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.generations[family]++
	c.mu.Unlock()

	if err := c.backend.DeleteByPrefix(ctx, contentPrefix+string(family)+":"); err != nil {
		slog.Warn("cache invalidation failed", "family", family, "error", err, "category", model.EventCategoryCache)
	}
}

// Clear drops every cached list.
func (c *ContentCache) Clear(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	for _, f := range model.Families {
		c.generations[f]++
	}
	c.mu.Unlock()
	return c.backend.DeleteByPrefix(ctx, contentPrefix)
}

// Stats reports backend statistics when the backend tracks them.
func (c *ContentCache) Stats() (Stats, bool) {
	if c == nil {
		return Stats{}, false
	}
	sp, ok := c.backend.(StatsProvider)
	if !ok {
		return Stats{}, false
	}
	return sp.Stats(), true
}
