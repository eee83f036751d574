// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/store"
	"github.com/olegiv/companysite/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEvents(t *testing.T, db *sql.DB) []store.Event {
	t.Helper()
	events, err := store.New(db).ListEvents(context.Background(), store.ListEventsParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_PersistsWarnAndError(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Warn("slow query detected")
	logger.Error("database connection failed", "host", "localhost")

	events := listEvents(t, db)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	levels := map[string]bool{}
	for _, e := range events {
		levels[e.Level] = true
	}
	if !levels[model.EventLevelWarning] || !levels[model.EventLevelError] {
		t.Errorf("levels = %v, want warning and error", levels)
	}
}

func TestEventLogHandler_SkipsInfoAndDebug(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Info("server started")
	logger.Debug("request details")

	if events := listEvents(t, db); len(events) != 0 {
		t.Errorf("expected 0 events, got %d", len(events))
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))
	logger.Info("server started", "port", 8080)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event with custom INFO level, got %d", len(events))
	}
	if events[0].Level != model.EventLevelInfo {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelInfo)
	}
}

func TestEventLogHandler_CategoryInference(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	tests := []struct {
		message  string
		category string
	}{
		{"invalid admin token", model.EventCategoryAuth},
		{"removing uploaded file failed", model.EventCategoryUpload},
		{"cache invalidation failed", model.EventCategoryCache},
		{"product create failed", model.EventCategoryContent},
		{"unknown error occurred", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			_, _ = db.Exec("DELETE FROM events")
			logger.Error(tt.message)

			events := listEvents(t, db)
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Category != tt.category {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.category)
			}
		})
	}
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("something happened", "category", model.EventCategoryUpload)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryUpload {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryUpload)
	}
}

func TestEventLogHandler_MetadataIsJSON(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).With("service", "api")
	logger.Error("request failed",
		"status_code", 500,
		"path", `/api/v1/"products"`,
	)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	var meta map[string]any
	if err := json.Unmarshal([]byte(events[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v (%s)", err, events[0].Metadata)
	}
	if meta["service"] != "api" {
		t.Errorf("service = %v, want api", meta["service"])
	}
	if meta["status_code"] != float64(500) {
		t.Errorf("status_code = %v, want 500", meta["status_code"])
	}
	if meta["path"] != `/api/v1/"products"` {
		t.Errorf("path = %v", meta["path"])
	}
}

func TestEventLogHandler_WithAttrsCategory(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).With("category", model.EventCategoryCache)
	logger.Warn("backend slow")

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryCache {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryCache)
	}
	if events[0].Metadata != "{}" {
		t.Errorf("Metadata = %q, want {}", events[0].Metadata)
	}
}
