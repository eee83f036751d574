// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{DefaultTTL: ttl})
}

func TestMemoryCache_SetGet(t *testing.T) {
	cache := newTestMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if _, err := cache.Get(ctx, "content:product:fa"); err != ErrCacheMiss {
		t.Fatalf("Get on empty cache = %v, want ErrCacheMiss", err)
	}

	if err := cache.Set(ctx, "content:product:fa", []byte("[]"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, err := cache.Get(ctx, "content:product:fa")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "[]" {
		t.Errorf("Get = %q, want %q", val, "[]")
	}

	_ = cache.Set(ctx, "content:product:fa", []byte(`[{"id":1}]`), 0)
	val, _ = cache.Get(ctx, "content:product:fa")
	if string(val) != `[{"id":1}]` {
		t.Errorf("Get after overwrite = %q", val)
	}
	if got := cache.Stats().Size; got != int64(len(`[{"id":1}]`)) {
		t.Errorf("Size = %d, want only the latest value counted", got)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "short", []byte("v"), 30*time.Millisecond)
	_ = cache.Set(ctx, "long", []byte("v"), 0)

	time.Sleep(50 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); err != ErrCacheMiss {
		t.Errorf("expected short TTL key to expire, got %v", err)
	}
	if _, err := cache.Get(ctx, "long"); err != nil {
		t.Errorf("expected default TTL key to survive, got %v", err)
	}
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	cache := newTestMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	for _, key := range []string{"content:product:all", "content:product:fa", "content:activity:all"} {
		_ = cache.Set(ctx, key, []byte("x"), 0)
	}

	if err := cache.DeleteByPrefix(ctx, "content:product:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}

	for _, key := range []string{"content:product:all", "content:product:fa"} {
		if _, err := cache.Get(ctx, key); err != ErrCacheMiss {
			t.Errorf("expected %s to be deleted", key)
		}
	}
	if _, err := cache.Get(ctx, "content:activity:all"); err != nil {
		t.Error("expected content:activity:all to still exist")
	}
}

func TestMemoryCache_MaxSizeEvicts(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, MaxSize: 2})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "first", []byte("1"), time.Minute)
	_ = cache.Set(ctx, "second", []byte("2"), time.Hour)
	_ = cache.Set(ctx, "third", []byte("3"), time.Hour)

	if got := cache.Stats().Items; got != 2 {
		t.Errorf("Items = %d, want 2", got)
	}
	if _, err := cache.Get(ctx, "first"); err != ErrCacheMiss {
		t.Errorf("expected entry closest to expiry to be evicted, got %v", err)
	}
	if _, err := cache.Get(ctx, "third"); err != nil {
		t.Errorf("expected newest entry to be stored, got %v", err)
	}

	// Overwriting an existing key never evicts.
	_ = cache.Set(ctx, "second", []byte("2b"), time.Hour)
	if _, err := cache.Get(ctx, "third"); err != nil {
		t.Errorf("overwrite evicted a neighbour: %v", err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := newTestMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), 0)
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	if stats.Backend != BackendMemory {
		t.Errorf("Backend = %q, want %q", stats.Backend, BackendMemory)
	}
	if stats.Hits != 2 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Items != 1 || stats.HitRate < 66 || stats.HitRate > 67 {
		t.Errorf("Items = %d, HitRate = %f", stats.Items, stats.HitRate)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := newTestMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("content:blog_post:%d", id%3)
			for j := 0; j < 50; j++ {
				_ = cache.Set(ctx, key, []byte("v"), 0)
				_, _ = cache.Get(ctx, key)
				_ = cache.DeleteByPrefix(ctx, "content:blog_post:")
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_ValueCopy(t *testing.T) {
	cache := newTestMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	original := []byte("original")
	_ = cache.Set(ctx, "key", original, 0)
	original[0] = 'X'

	val, _ := cache.Get(ctx, "key")
	if string(val) != "original" {
		t.Errorf("Get = %q, cache did not copy on Set", val)
	}
}

func TestMemoryCache_Close(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, CleanupInterval: time.Second})
	ctx := context.Background()

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := cache.Get(ctx, "key"); err != ErrCacheClosed {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
	if err := cache.DeleteByPrefix(ctx, "content:"); err != ErrCacheClosed {
		t.Errorf("expected ErrCacheClosed from DeleteByPrefix, got %v", err)
	}
	if err := cache.Set(ctx, "key", []byte("v"), 0); err != ErrCacheClosed {
		t.Errorf("expected ErrCacheClosed from Set, got %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
