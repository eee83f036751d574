// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const listSimpleImages = `-- name: ListSimpleImages :many
SELECT image FROM awards WHERE image IS NOT NULL
UNION ALL
SELECT image FROM parent_companies WHERE image IS NOT NULL
UNION ALL
SELECT image FROM about WHERE image IS NOT NULL
`

// ListSimpleImages returns the image references held by awards, parent
// companies and the about row.
func (q *Queries) ListSimpleImages(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, q.db, listSimpleImages, nil)
}

// ListImages returns every image reference stored in the database.
func (q *Queries) ListImages(ctx context.Context) ([]string, error) {
	images, err := q.ListSimpleImages(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range []LocalizedTable{ProductTables, BlogPostTables, ActivityTables} {
		refs, err := q.Localized(t).ListImages(ctx)
		if err != nil {
			return nil, err
		}
		images = append(images, refs...)
	}
	return images, nil
}
