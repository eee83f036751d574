// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/companysite/internal/model"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for memory cache (0 = unlimited).
	MaxSize int

	// CleanupInterval is the interval for expired entry cleanup.
	CleanupInterval time.Duration

	// FallbackToMemory uses the memory cache when Redis cannot be reached.
	FallbackToMemory bool
}

// Result describes the cache built by NewCacheWithInfo.
type Result struct {
	Cache       Cacher
	BackendType string
	IsFallback  bool
}

// NewCacheWithInfo creates the configured cache and reports which backend
// ended up serving it.
func NewCacheWithInfo(cfg Config) (*Result, error) {
	if cfg.RedisURL == "" {
		return &Result{Cache: newMemory(cfg), BackendType: BackendMemory}, nil
	}

	redisCache, err := NewRedisCache(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
	if err == nil {
		slog.Info("using redis cache", "url", maskRedisURL(cfg.RedisURL), "prefix", cfg.Prefix)
		return &Result{Cache: redisCache, BackendType: BackendRedis}, nil
	}

	if !cfg.FallbackToMemory {
		return nil, fmt.Errorf("connecting to redis at %s: %w", maskRedisURL(cfg.RedisURL), err)
	}

	slog.Warn("redis unavailable, falling back to memory cache",
		"url", maskRedisURL(cfg.RedisURL),
		"error", err,
		"category", model.EventCategoryCache,
	)
	return &Result{Cache: newMemory(cfg), BackendType: BackendMemory, IsFallback: true}, nil
}

func newMemory(cfg Config) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}

// maskRedisURL hides credentials in a Redis URL for logging.
func maskRedisURL(url string) string {
	scheme := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if scheme < 0 || at < scheme {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
