// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// LocalizedTable names a localized parent table, its translation table and
// the translation column that references the parent.
type LocalizedTable struct {
	Table            string
	TranslationTable string
	ForeignKey       string
}

// Localized tables.
var (
	ProductTables = LocalizedTable{
		Table:            "products",
		TranslationTable: "product_translations",
		ForeignKey:       "product_id",
	}
	BlogPostTables = LocalizedTable{
		Table:            "blog_posts",
		TranslationTable: "blog_post_translations",
		ForeignKey:       "blog_post_id",
	}
	ActivityTables = LocalizedTable{
		Table:            "activities",
		TranslationTable: "activity_translations",
		ForeignKey:       "activity_id",
	}
)

var (
	parentColumns      = []string{"id", "image", "created_at", "updated_at"}
	translationColumns = []string{"id", "%s", "language", "title", "description", "content", "created_at", "updated_at"}
)

// LocalizedQueries builds and runs statements against one LocalizedTable.
type LocalizedQueries struct {
	db DBTX
	t  LocalizedTable
	sb sq.StatementBuilderType
}

// Localized returns the queries for table t bound to the same DBTX as q.
func (q *Queries) Localized(t LocalizedTable) *LocalizedQueries {
	return &LocalizedQueries{db: q.db, t: t, sb: sq.StatementBuilder}
}

func (lq *LocalizedQueries) translationColumns() []string {
	cols := make([]string, len(translationColumns))
	copy(cols, translationColumns)
	cols[1] = lq.t.ForeignKey
	return cols
}

// CreateParent inserts a parent row.
func (lq *LocalizedQueries) CreateParent(ctx context.Context, image sql.NullString, now time.Time) (Localized, error) {
	query, args, err := lq.sb.Insert(lq.t.Table).
		Columns("image", "created_at", "updated_at").
		Values(image, now, now).
		Suffix("RETURNING id, image, created_at, updated_at").
		ToSql()
	if err != nil {
		return Localized{}, fmt.Errorf("building insert into %s: %w", lq.t.Table, err)
	}
	return scanLocalized(lq.db.QueryRowContext(ctx, query, args...))
}

// GetParent returns the parent row with id, or sql.ErrNoRows.
func (lq *LocalizedQueries) GetParent(ctx context.Context, id int64) (Localized, error) {
	query, args, err := lq.sb.Select(parentColumns...).
		From(lq.t.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return Localized{}, fmt.Errorf("building select from %s: %w", lq.t.Table, err)
	}
	return scanLocalized(lq.db.QueryRowContext(ctx, query, args...))
}

// ListParents returns all parent rows ordered by id.
func (lq *LocalizedQueries) ListParents(ctx context.Context) ([]Localized, error) {
	return lq.listParents(ctx, lq.sb.Select(parentColumns...).From(lq.t.Table))
}

// ListParentsWithLanguage returns the parent rows that own a translation in lang.
func (lq *LocalizedQueries) ListParentsWithLanguage(ctx context.Context, lang string) ([]Localized, error) {
	exists := fmt.Sprintf("EXISTS (SELECT 1 FROM %s t WHERE t.%s = %s.id AND t.language = ?)",
		lq.t.TranslationTable, lq.t.ForeignKey, lq.t.Table)
	return lq.listParents(ctx, lq.sb.Select(parentColumns...).From(lq.t.Table).Where(sq.Expr(exists, lang)))
}

func (lq *LocalizedQueries) listParents(ctx context.Context, b sq.SelectBuilder) ([]Localized, error) {
	query, args, err := b.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select from %s: %w", lq.t.Table, err)
	}
	rows, err := lq.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Localized{}
	for rows.Next() {
		i, err := scanLocalized(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// UpdateParent sets the image and updated_at of a parent row.
func (lq *LocalizedQueries) UpdateParent(ctx context.Context, id int64, image sql.NullString, now time.Time) (Localized, error) {
	query, args, err := lq.sb.Update(lq.t.Table).
		Set("image", image).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, image, created_at, updated_at").
		ToSql()
	if err != nil {
		return Localized{}, fmt.Errorf("building update of %s: %w", lq.t.Table, err)
	}
	return scanLocalized(lq.db.QueryRowContext(ctx, query, args...))
}

// DeleteParent deletes a parent row and reports the number of rows removed.
func (lq *LocalizedQueries) DeleteParent(ctx context.Context, id int64) (int64, error) {
	query, args, err := lq.sb.Delete(lq.t.Table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building delete from %s: %w", lq.t.Table, err)
	}
	return execRows(ctx, lq.db, query, args)
}

// GetTranslation returns the translation of parentID in lang, or sql.ErrNoRows.
func (lq *LocalizedQueries) GetTranslation(ctx context.Context, parentID int64, lang string) (LocalizedTranslation, error) {
	query, args, err := lq.sb.Select(lq.translationColumns()...).
		From(lq.t.TranslationTable).
		Where(sq.Eq{lq.t.ForeignKey: parentID, "language": lang}).
		Limit(1).
		ToSql()
	if err != nil {
		return LocalizedTranslation{}, fmt.Errorf("building select from %s: %w", lq.t.TranslationTable, err)
	}
	return scanTranslation(lq.db.QueryRowContext(ctx, query, args...))
}

// CreateTranslationParams holds the columns of a new translation row.
type CreateTranslationParams struct {
	ParentID    int64
	Language    string
	Title       string
	Description string
	Content     string
	CreatedAt   time.Time
}

// CreateTranslation inserts a translation row.
func (lq *LocalizedQueries) CreateTranslation(ctx context.Context, arg CreateTranslationParams) (LocalizedTranslation, error) {
	query, args, err := lq.sb.Insert(lq.t.TranslationTable).
		Columns(lq.t.ForeignKey, "language", "title", "description", "content", "created_at", "updated_at").
		Values(arg.ParentID, arg.Language, arg.Title, arg.Description, arg.Content, arg.CreatedAt, arg.CreatedAt).
		Suffix("RETURNING " + strings.Join(lq.translationColumns(), ", ")).
		ToSql()
	if err != nil {
		return LocalizedTranslation{}, fmt.Errorf("building insert into %s: %w", lq.t.TranslationTable, err)
	}
	return scanTranslation(lq.db.QueryRowContext(ctx, query, args...))
}

// UpdateTranslationParams holds the new text of an existing translation row.
type UpdateTranslationParams struct {
	ID          int64
	Title       string
	Description string
	Content     string
	UpdatedAt   time.Time
}

// UpdateTranslation rewrites the text of a translation row.
func (lq *LocalizedQueries) UpdateTranslation(ctx context.Context, arg UpdateTranslationParams) (LocalizedTranslation, error) {
	query, args, err := lq.sb.Update(lq.t.TranslationTable).
		Set("title", arg.Title).
		Set("description", arg.Description).
		Set("content", arg.Content).
		Set("updated_at", arg.UpdatedAt).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(lq.translationColumns(), ", ")).
		ToSql()
	if err != nil {
		return LocalizedTranslation{}, fmt.Errorf("building update of %s: %w", lq.t.TranslationTable, err)
	}
	return scanTranslation(lq.db.QueryRowContext(ctx, query, args...))
}

// ListTranslations returns the translations of the given parents, optionally
// restricted to one language. An empty lang matches every language.
func (lq *LocalizedQueries) ListTranslations(ctx context.Context, parentIDs []int64, lang string) ([]LocalizedTranslation, error) {
	if len(parentIDs) == 0 {
		return []LocalizedTranslation{}, nil
	}
	where := sq.Eq{lq.t.ForeignKey: parentIDs}
	if lang != "" {
		where["language"] = lang
	}
	query, args, err := lq.sb.Select(lq.translationColumns()...).
		From(lq.t.TranslationTable).
		Where(where).
		OrderBy(lq.t.ForeignKey, "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select from %s: %w", lq.t.TranslationTable, err)
	}
	rows, err := lq.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []LocalizedTranslation{}
	for rows.Next() {
		i, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// DeleteTranslations removes every translation of parentID.
func (lq *LocalizedQueries) DeleteTranslations(ctx context.Context, parentID int64) (int64, error) {
	query, args, err := lq.sb.Delete(lq.t.TranslationTable).Where(sq.Eq{lq.t.ForeignKey: parentID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building delete from %s: %w", lq.t.TranslationTable, err)
	}
	return execRows(ctx, lq.db, query, args)
}

// ListImages returns the non-null image references of the parent table.
func (lq *LocalizedQueries) ListImages(ctx context.Context) ([]string, error) {
	query, args, err := lq.sb.Select("image").
		From(lq.t.Table).
		Where(sq.NotEq{"image": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select from %s: %w", lq.t.Table, err)
	}
	return queryStrings(ctx, lq.db, query, args)
}

func scanLocalized(row rowScanner) (Localized, error) {
	var i Localized
	err := row.Scan(&i.ID, &i.Image, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func scanTranslation(row rowScanner) (LocalizedTranslation, error) {
	var i LocalizedTranslation
	err := row.Scan(
		&i.ID,
		&i.ParentID,
		&i.Language,
		&i.Title,
		&i.Description,
		&i.Content,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func execRows(ctx context.Context, db DBTX, query string, args []interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func queryStrings(ctx context.Context, db DBTX, query string, args []interface{}) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
