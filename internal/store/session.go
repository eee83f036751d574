// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Engine hands out database sessions. It is created once at startup and
// shared by every request.
type Engine struct {
	db *sql.DB
}

// NewEngine wraps an open database.
func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// DB returns the underlying pool.
func (e *Engine) DB() *sql.DB {
	return e.db
}

// Session is a unit of work holding one dedicated connection.
type Session struct {
	*Queries
	conn *sql.Conn
}

// Session acquires a connection, runs fn with it and releases the connection
// on every exit path.
func (e *Engine) Session(ctx context.Context, fn func(*Session) error) error {
	conn, err := e.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	return fn(&Session{Queries: New(conn), conn: conn})
}

// InTx runs fn inside a transaction on the session's connection. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Session) InTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(s.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
