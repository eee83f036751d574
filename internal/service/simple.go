// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/companysite/internal/cache"
	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/store"
	"github.com/olegiv/companysite/internal/util"
)

// simpleRow is the column set shared by awards and parent companies.
type simpleRow struct {
	ID          int64
	Title       string
	Description sql.NullString
	Website     sql.NullString
	Image       sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// simpleTable adapts the per-table queries of a simple family.
type simpleTable interface {
	get(ctx context.Context, q *store.Queries, id int64) (simpleRow, error)
	list(ctx context.Context, q *store.Queries) ([]simpleRow, error)
	create(ctx context.Context, q *store.Queries, r simpleRow) (simpleRow, error)
	update(ctx context.Context, q *store.Queries, r simpleRow) (simpleRow, error)
	remove(ctx context.Context, q *store.Queries, id int64) (int64, error)
	hasWebsite() bool
}

// SimpleService manages one simple family (awards or parent companies).
type SimpleService struct {
	engine *store.Engine
	files  *FileStore
	cache  *cache.ContentCache
	family model.Family
	table  simpleTable
}

// NewSimpleService creates the service for family. cc may be nil.
func NewSimpleService(engine *store.Engine, files *FileStore, cc *cache.ContentCache, family model.Family) (*SimpleService, error) {
	var table simpleTable
	switch family {
	case model.FamilyAward:
		table = awardTable{}
	case model.FamilyParentCompany:
		table = parentCompanyTable{}
	default:
		return nil, fmt.Errorf("%s is not a simple family", family)
	}
	return &SimpleService{
		engine: engine,
		files:  files,
		cache:  cc,
		family: family,
		table:  table,
	}, nil
}

// Family returns the family served.
func (s *SimpleService) Family() model.Family {
	return s.family
}

// Create inserts a new entity. Title is required.
func (s *SimpleService) Create(ctx context.Context, in model.SimpleInput, up *Upload) (*model.SimpleContent, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, model.NewValidationError("title", "title is required")
	}

	image, err := saveUpload(ctx, s.files, up)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row := simpleRow{
		Title:       *in.Title,
		Description: util.MergeNullString(sql.NullString{}, in.Description),
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.table.hasWebsite() {
		row.Website = util.MergeNullString(sql.NullString{}, in.Website)
	}

	var created simpleRow
	err = s.engine.Session(ctx, func(sess *store.Session) error {
		return sess.InTx(ctx, func(q *store.Queries) error {
			var err error
			created, err = s.table.create(ctx, q, row)
			return err
		})
	})
	if err != nil {
		discardUpload(s.files, image)
		return nil, fmt.Errorf("inserting %s: %w", s.family, err)
	}

	s.cache.Invalidate(ctx, s.family)
	slog.Info("content created", "family", s.family, "id", created.ID)
	return s.toModel(created), nil
}

// Get returns the entity with id.
func (s *SimpleService) Get(ctx context.Context, id int64) (*model.SimpleContent, error) {
	var row simpleRow
	err := s.engine.Session(ctx, func(sess *store.Session) error {
		var err error
		row, err = s.table.get(ctx, sess.Queries, id)
		return notFound(err)
	})
	if err != nil {
		return nil, err
	}
	return s.toModel(row), nil
}

// List returns every entity ordered by id.
func (s *SimpleService) List(ctx context.Context) ([]model.SimpleContent, error) {
	return s.cache.Simple(ctx, s.family, func() ([]model.SimpleContent, error) {
		var rows []simpleRow
		err := s.engine.Session(ctx, func(sess *store.Session) error {
			var err error
			rows, err = s.table.list(ctx, sess.Queries)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", s.family, err)
		}

		result := make([]model.SimpleContent, 0, len(rows))
		for _, r := range rows {
			result = append(result, *s.toModel(r))
		}
		return result, nil
	})
}

// Update applies a partial update. An omitted field keeps its stored value,
// an empty optional field clears it and the title cannot be cleared. A new
// upload replaces the image; the previous file is left on disk.
func (s *SimpleService) Update(ctx context.Context, id int64, in model.SimpleInput, up *Upload) (*model.SimpleContent, error) {
	if in.Title != nil && *in.Title == "" {
		return nil, model.NewValidationError("title", "title cannot be empty")
	}

	newImage, err := saveUpload(ctx, s.files, up)
	if err != nil {
		return nil, err
	}

	var updated simpleRow
	err = s.engine.Session(ctx, func(sess *store.Session) error {
		return sess.InTx(ctx, func(q *store.Queries) error {
			row, err := s.table.get(ctx, q, id)
			if err != nil {
				return notFound(err)
			}

			if in.Title != nil {
				row.Title = *in.Title
			}
			row.Description = util.MergeNullString(row.Description, in.Description)
			if s.table.hasWebsite() {
				row.Website = util.MergeNullString(row.Website, in.Website)
			}
			if newImage.Valid {
				row.Image = newImage
			}
			row.UpdatedAt = time.Now()

			updated, err = s.table.update(ctx, q, row)
			return err
		})
	})
	if err != nil {
		discardUpload(s.files, newImage)
		return nil, err
	}

	s.cache.Invalidate(ctx, s.family)
	return s.toModel(updated), nil
}

// Delete removes the entity. Its image file is left on disk.
func (s *SimpleService) Delete(ctx context.Context, id int64) error {
	err := s.engine.Session(ctx, func(sess *store.Session) error {
		n, err := s.table.remove(ctx, sess.Queries, id)
		if err != nil {
			return fmt.Errorf("deleting %s %d: %w", s.family, id, err)
		}
		if n == 0 {
			return model.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, s.family)
	slog.Info("content deleted", "family", s.family, "id", id)
	return nil
}

func (s *SimpleService) toModel(r simpleRow) *model.SimpleContent {
	c := &model.SimpleContent{
		ID:          r.ID,
		Title:       r.Title,
		Description: util.PtrFromNullString(r.Description),
		Image:       util.PtrFromNullString(r.Image),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if s.table.hasWebsite() {
		c.Website = util.PtrFromNullString(r.Website)
	}
	return c
}

type awardTable struct{}

func (awardTable) hasWebsite() bool { return false }

func (awardTable) get(ctx context.Context, q *store.Queries, id int64) (simpleRow, error) {
	a, err := q.GetAward(ctx, id)
	return fromAward(a), err
}

func (awardTable) list(ctx context.Context, q *store.Queries) ([]simpleRow, error) {
	awards, err := q.ListAwards(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]simpleRow, len(awards))
	for i, a := range awards {
		rows[i] = fromAward(a)
	}
	return rows, nil
}

func (awardTable) create(ctx context.Context, q *store.Queries, r simpleRow) (simpleRow, error) {
	a, err := q.CreateAward(ctx, store.CreateAwardParams{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	})
	return fromAward(a), err
}

func (awardTable) update(ctx context.Context, q *store.Queries, r simpleRow) (simpleRow, error) {
	a, err := q.UpdateAward(ctx, store.UpdateAwardParams{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		UpdatedAt:   r.UpdatedAt,
	})
	return fromAward(a), err
}

func (awardTable) remove(ctx context.Context, q *store.Queries, id int64) (int64, error) {
	return q.DeleteAward(ctx, id)
}

func fromAward(a store.Award) simpleRow {
	return simpleRow{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Image:       a.Image,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type parentCompanyTable struct{}

func (parentCompanyTable) hasWebsite() bool { return true }

func (parentCompanyTable) get(ctx context.Context, q *store.Queries, id int64) (simpleRow, error) {
	pc, err := q.GetParentCompany(ctx, id)
	return fromParentCompany(pc), err
}

func (parentCompanyTable) list(ctx context.Context, q *store.Queries) ([]simpleRow, error) {
	companies, err := q.ListParentCompanies(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]simpleRow, len(companies))
	for i, pc := range companies {
		rows[i] = fromParentCompany(pc)
	}
	return rows, nil
}

func (parentCompanyTable) create(ctx context.Context, q *store.Queries, r simpleRow) (simpleRow, error) {
	pc, err := q.CreateParentCompany(ctx, store.CreateParentCompanyParams{
		Title:       r.Title,
		Description: r.Description,
		Website:     r.Website,
		Image:       r.Image,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	})
	return fromParentCompany(pc), err
}

func (parentCompanyTable) update(ctx context.Context, q *store.Queries, r simpleRow) (simpleRow, error) {
	pc, err := q.UpdateParentCompany(ctx, store.UpdateParentCompanyParams{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Website:     r.Website,
		Image:       r.Image,
		UpdatedAt:   r.UpdatedAt,
	})
	return fromParentCompany(pc), err
}

func (parentCompanyTable) remove(ctx context.Context, q *store.Queries, id int64) (int64, error) {
	return q.DeleteParentCompany(ctx, id)
}

func fromParentCompany(pc store.ParentCompany) simpleRow {
	return simpleRow{
		ID:          pc.ID,
		Title:       pc.Title,
		Description: pc.Description,
		Website:     pc.Website,
		Image:       pc.Image,
		CreatedAt:   pc.CreatedAt,
		UpdatedAt:   pc.UpdatedAt,
	}
}
