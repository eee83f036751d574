// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/olegiv/companysite/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	db, _, cleanup := TestDBFile(t)
	return db, cleanup
}

// TestDBFile is TestDB that also returns the database file path.
func TestDBFile(t *testing.T) (*sql.DB, string, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "companysite-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, dbPath, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// TestEngine wraps TestDB in a store.Engine.
func TestEngine(t *testing.T) (*store.Engine, func()) {
	t.Helper()
	db, cleanup := TestDB(t)
	return store.NewEngine(db), cleanup
}

// RawDB opens the database file at path through the cgo sqlite3 driver,
// independent of the application's pool. Tests use it to inspect rows
// written by the code under test.
func RawDB(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening raw db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
