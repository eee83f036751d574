// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createAward = `-- name: CreateAward :one
INSERT INTO awards (title, description, image, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, title, description, image, created_at, updated_at
`

type CreateAwardParams struct {
	Title       string         `json:"title"`
	Description sql.NullString `json:"description"`
	Image       sql.NullString `json:"image"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (q *Queries) CreateAward(ctx context.Context, arg CreateAwardParams) (Award, error) {
	row := q.db.QueryRowContext(ctx, createAward,
		arg.Title,
		arg.Description,
		arg.Image,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Award
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Image,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAward = `-- name: GetAward :one
SELECT id, title, description, image, created_at, updated_at FROM awards WHERE id = ?
`

func (q *Queries) GetAward(ctx context.Context, id int64) (Award, error) {
	row := q.db.QueryRowContext(ctx, getAward, id)
	var i Award
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Image,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listAwards = `-- name: ListAwards :many
SELECT id, title, description, image, created_at, updated_at FROM awards ORDER BY id
`

func (q *Queries) ListAwards(ctx context.Context) ([]Award, error) {
	rows, err := q.db.QueryContext(ctx, listAwards)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Award{}
	for rows.Next() {
		var i Award
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			&i.Image,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateAward = `-- name: UpdateAward :one
UPDATE awards SET title = ?, description = ?, image = ?, updated_at = ?
WHERE id = ?
RETURNING id, title, description, image, created_at, updated_at
`

type UpdateAwardParams struct {
	Title       string         `json:"title"`
	Description sql.NullString `json:"description"`
	Image       sql.NullString `json:"image"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ID          int64          `json:"id"`
}

func (q *Queries) UpdateAward(ctx context.Context, arg UpdateAwardParams) (Award, error) {
	row := q.db.QueryRowContext(ctx, updateAward,
		arg.Title,
		arg.Description,
		arg.Image,
		arg.UpdatedAt,
		arg.ID,
	)
	var i Award
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Image,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteAward = `-- name: DeleteAward :execrows
DELETE FROM awards WHERE id = ?
`

func (q *Queries) DeleteAward(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAward, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
