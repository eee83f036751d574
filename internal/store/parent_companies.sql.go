// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createParentCompany = `-- name: CreateParentCompany :one
INSERT INTO parent_companies (title, description, website, image, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, title, description, website, image, created_at, updated_at
`

type CreateParentCompanyParams struct {
	Title       string         `json:"title"`
	Description sql.NullString `json:"description"`
	Website     sql.NullString `json:"website"`
	Image       sql.NullString `json:"image"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (q *Queries) CreateParentCompany(ctx context.Context, arg CreateParentCompanyParams) (ParentCompany, error) {
	row := q.db.QueryRowContext(ctx, createParentCompany,
		arg.Title,
		arg.Description,
		arg.Website,
		arg.Image,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanParentCompany(row)
}

const getParentCompany = `-- name: GetParentCompany :one
SELECT id, title, description, website, image, created_at, updated_at FROM parent_companies WHERE id = ?
`

func (q *Queries) GetParentCompany(ctx context.Context, id int64) (ParentCompany, error) {
	row := q.db.QueryRowContext(ctx, getParentCompany, id)
	return scanParentCompany(row)
}

const listParentCompanies = `-- name: ListParentCompanies :many
SELECT id, title, description, website, image, created_at, updated_at FROM parent_companies ORDER BY id
`

func (q *Queries) ListParentCompanies(ctx context.Context) ([]ParentCompany, error) {
	rows, err := q.db.QueryContext(ctx, listParentCompanies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ParentCompany{}
	for rows.Next() {
		i, err := scanParentCompany(rows)
		if err != nil {
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

const updateParentCompany = `-- name: UpdateParentCompany :one
UPDATE parent_companies SET title = ?, description = ?, website = ?, image = ?, updated_at = ?
WHERE id = ?
RETURNING id, title, description, website, image, created_at, updated_at
`

type UpdateParentCompanyParams struct {
	Title       string         `json:"title"`
	Description sql.NullString `json:"description"`
	Website     sql.NullString `json:"website"`
	Image       sql.NullString `json:"image"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ID          int64          `json:"id"`
}

func (q *Queries) UpdateParentCompany(ctx context.Context, arg UpdateParentCompanyParams) (ParentCompany, error) {
	row := q.db.QueryRowContext(ctx, updateParentCompany,
		arg.Title,
		arg.Description,
		arg.Website,
		arg.Image,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanParentCompany(row)
}

const deleteParentCompany = `-- name: DeleteParentCompany :execrows
DELETE FROM parent_companies WHERE id = ?
`

func (q *Queries) DeleteParentCompany(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteParentCompany, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanParentCompany(row rowScanner) (ParentCompany, error) {
	var i ParentCompany
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Website,
		&i.Image,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
