// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/companysite/internal/cache"
	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/store"
	"github.com/olegiv/companysite/internal/testutil"
)

type testEnv struct {
	engine *store.Engine
	files  *FileStore
	cache  *cache.ContentCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	engine, cleanup := testutil.TestEngine(t)
	t.Cleanup(cleanup)

	files, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	return &testEnv{
		engine: engine,
		files:  files,
		cache:  cache.NewContentCache(mem, time.Minute),
	}
}

func (e *testEnv) localized(t *testing.T, family model.Family) *LocalizedService {
	t.Helper()
	svc, err := NewLocalizedService(e.engine, e.files, e.cache, family)
	require.NoError(t, err)
	return svc
}

func (e *testEnv) simple(t *testing.T, family model.Family) *SimpleService {
	t.Helper()
	svc, err := NewSimpleService(e.engine, e.files, e.cache, family)
	require.NoError(t, err)
	return svc
}

func str(s string) *string { return &s }

func fields(title, description, content *string) model.TranslationFields {
	return model.TranslationFields{Title: title, Description: description, Content: content}
}

func upload(name, body string) *Upload {
	return &Upload{Reader: strings.NewReader(body), Filename: name}
}
