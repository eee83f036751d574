// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const getAbout = `-- name: GetAbout :one
SELECT id, content, image, updated_at FROM about ORDER BY id LIMIT 1
`

// GetAbout returns the first about row; the table holds at most one.
func (q *Queries) GetAbout(ctx context.Context) (About, error) {
	row := q.db.QueryRowContext(ctx, getAbout)
	var i About
	err := row.Scan(
		&i.ID,
		&i.Content,
		&i.Image,
		&i.UpdatedAt,
	)
	return i, err
}

const createAbout = `-- name: CreateAbout :one
INSERT INTO about (content, image, updated_at) VALUES (?, ?, ?)
RETURNING id, content, image, updated_at
`

type CreateAboutParams struct {
	Content   string         `json:"content"`
	Image     sql.NullString `json:"image"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (q *Queries) CreateAbout(ctx context.Context, arg CreateAboutParams) (About, error) {
	row := q.db.QueryRowContext(ctx, createAbout, arg.Content, arg.Image, arg.UpdatedAt)
	var i About
	err := row.Scan(
		&i.ID,
		&i.Content,
		&i.Image,
		&i.UpdatedAt,
	)
	return i, err
}

const updateAbout = `-- name: UpdateAbout :one
UPDATE about SET content = ?, image = ?, updated_at = ? WHERE id = ?
RETURNING id, content, image, updated_at
`

type UpdateAboutParams struct {
	Content   string         `json:"content"`
	Image     sql.NullString `json:"image"`
	UpdatedAt time.Time      `json:"updated_at"`
	ID        int64          `json:"id"`
}

func (q *Queries) UpdateAbout(ctx context.Context, arg UpdateAboutParams) (About, error) {
	row := q.db.QueryRowContext(ctx, updateAbout,
		arg.Content,
		arg.Image,
		arg.UpdatedAt,
		arg.ID,
	)
	var i About
	err := row.Scan(
		&i.ID,
		&i.Content,
		&i.Image,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteAbout = `-- name: DeleteAbout :execrows
DELETE FROM about
`

func (q *Queries) DeleteAbout(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAbout)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
