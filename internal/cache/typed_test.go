// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/olegiv/companysite/internal/model"
)

func TestTypedCache_SetGet(t *testing.T) {
	mem := newTestMemoryCache(time.Hour)
	defer func() { _ = mem.Close() }()

	cache := NewTypedCache[[]model.SimpleContent](mem, time.Hour)
	ctx := context.Background()

	if _, found := cache.Get(ctx, "content:award:all"); found {
		t.Fatal("expected a miss on an empty cache")
	}

	awards := []model.SimpleContent{{ID: 7, Title: "Quality Award"}}
	if err := cache.Set(ctx, "content:award:all", awards); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := cache.Get(ctx, "content:award:all")
	if !found {
		t.Fatal("expected to find content:award:all")
	}
	if len(got) != 1 || got[0].ID != 7 || got[0].Title != "Quality Award" {
		t.Errorf("got %+v, want %+v", got, awards)
	}
}

func TestTypedCache_UsesTTL(t *testing.T) {
	mem := newTestMemoryCache(time.Hour)
	defer func() { _ = mem.Close() }()

	cache := NewTypedCache[[]model.SimpleContent](mem, 30*time.Millisecond)
	ctx := context.Background()

	_ = cache.Set(ctx, "content:award:all", []model.SimpleContent{{ID: 1}})
	time.Sleep(50 * time.Millisecond)

	if _, found := cache.Get(ctx, "content:award:all"); found {
		t.Error("expected the entry to expire with the typed cache TTL")
	}
}

func TestTypedCache_UndecodableIsMiss(t *testing.T) {
	mem := newTestMemoryCache(time.Hour)
	defer func() { _ = mem.Close() }()

	cache := NewTypedCache[[]model.SimpleContent](mem, time.Hour)
	ctx := context.Background()

	_ = mem.Set(ctx, "content:award:all", []byte("not json"), 0)
	if _, found := cache.Get(ctx, "content:award:all"); found {
		t.Error("expected undecodable value to read as a miss")
	}
}
