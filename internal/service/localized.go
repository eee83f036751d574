// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the content operations behind the HTTP API.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/companysite/internal/cache"
	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/store"
	"github.com/olegiv/companysite/internal/util"
)

// LocalizedTables maps each localized family to its tables.
var LocalizedTables = map[model.Family]store.LocalizedTable{
	model.FamilyProduct:  store.ProductTables,
	model.FamilyBlogPost: store.BlogPostTables,
	model.FamilyActivity: store.ActivityTables,
}

// LocalizedService manages one localized family (products, blog posts or activities).
type LocalizedService struct {
	engine *store.Engine
	files  *FileStore
	cache  *cache.ContentCache
	family model.Family
	table  store.LocalizedTable
}

// NewLocalizedService creates the service for family. cc may be nil.
func NewLocalizedService(engine *store.Engine, files *FileStore, cc *cache.ContentCache, family model.Family) (*LocalizedService, error) {
	table, ok := LocalizedTables[family]
	if !ok {
		return nil, fmt.Errorf("%s is not a localized family", family)
	}
	return &LocalizedService{
		engine: engine,
		files:  files,
		cache:  cc,
		family: family,
		table:  table,
	}, nil
}

// Family returns the family served.
func (s *LocalizedService) Family() model.Family {
	return s.family
}

// Create stores the image (if any), inserts the entity and its titled
// translations in one transaction and returns the stored entity.
func (s *LocalizedService) Create(ctx context.Context, in model.ContentInput, up *Upload) (*model.Content, error) {
	if len(in.Translations.Titled()) == 0 {
		return nil, model.NewValidationError("title", "at least one language needs a title")
	}

	image, err := s.saveUpload(ctx, up)
	if err != nil {
		return nil, err
	}

	var (
		result    *model.Content
		committed bool
	)
	err = s.engine.Session(ctx, func(sess *store.Session) error {
		var id int64
		if err := sess.InTx(ctx, func(q *store.Queries) error {
			lq := q.Localized(s.table)
			now := time.Now()

			parent, err := lq.CreateParent(ctx, image, now)
			if err != nil {
				return fmt.Errorf("inserting %s: %w", s.family, err)
			}
			id = parent.ID

			return ApplyTranslations(ctx, lq, id, in.Translations, now)
		}); err != nil {
			return err
		}
		committed = true

		result, err = s.load(ctx, sess.Queries, id, "")
		return err
	})
	if err != nil {
		if !committed {
			s.discardUpload(image)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, s.family)
	slog.Info("content created", "family", s.family, "id", result.ID)
	return result, nil
}

// Get returns the entity with id. A non-empty lang restricts the returned
// translations to that language; the entity is returned even when none match.
func (s *LocalizedService) Get(ctx context.Context, id int64, lang model.Language) (*model.Content, error) {
	var result *model.Content
	err := s.engine.Session(ctx, func(sess *store.Session) error {
		var err error
		result, err = s.load(ctx, sess.Queries, id, lang)
		return err
	})
	return result, err
}

// List returns every entity. A non-empty lang returns only the entities that
// own a translation in lang, each carrying only that translation.
func (s *LocalizedService) List(ctx context.Context, lang model.Language) ([]model.Content, error) {
	return s.cache.Localized(ctx, s.family, lang, func() ([]model.Content, error) {
		var result []model.Content
		err := s.engine.Session(ctx, func(sess *store.Session) error {
			var err error
			result, err = s.list(ctx, sess.Queries, lang)
			return err
		})
		return result, err
	})
}

// Update replaces the image when up is given and reconciles the submitted
// translations. A replaced image file is left on disk.
func (s *LocalizedService) Update(ctx context.Context, id int64, in model.ContentInput, up *Upload) (*model.Content, error) {
	newImage, err := s.saveUpload(ctx, up)
	if err != nil {
		return nil, err
	}

	var (
		result    *model.Content
		committed bool
	)
	err = s.engine.Session(ctx, func(sess *store.Session) error {
		if err := sess.InTx(ctx, func(q *store.Queries) error {
			lq := q.Localized(s.table)
			now := time.Now()

			parent, err := lq.GetParent(ctx, id)
			if err != nil {
				return notFound(err)
			}

			image := parent.Image
			if newImage.Valid {
				image = newImage
			}
			if _, err := lq.UpdateParent(ctx, id, image, now); err != nil {
				return fmt.Errorf("updating %s %d: %w", s.family, id, err)
			}

			return ApplyTranslations(ctx, lq, id, in.Translations, now)
		}); err != nil {
			return err
		}
		committed = true

		var err error
		result, err = s.load(ctx, sess.Queries, id, "")
		return err
	})
	if err != nil {
		if !committed {
			s.discardUpload(newImage)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, s.family)
	return result, nil
}

// Delete removes the entity and all of its translations. Its image file is left on disk.
func (s *LocalizedService) Delete(ctx context.Context, id int64) error {
	err := s.engine.Session(ctx, func(sess *store.Session) error {
		return sess.InTx(ctx, func(q *store.Queries) error {
			lq := q.Localized(s.table)

			if _, err := lq.DeleteTranslations(ctx, id); err != nil {
				return fmt.Errorf("deleting %s %d translations: %w", s.family, id, err)
			}
			n, err := lq.DeleteParent(ctx, id)
			if err != nil {
				return fmt.Errorf("deleting %s %d: %w", s.family, id, err)
			}
			if n == 0 {
				return model.ErrNotFound
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, s.family)
	slog.Info("content deleted", "family", s.family, "id", id)
	return nil
}

func (s *LocalizedService) load(ctx context.Context, q *store.Queries, id int64, lang model.Language) (*model.Content, error) {
	lq := q.Localized(s.table)

	parent, err := lq.GetParent(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	translations, err := lq.ListTranslations(ctx, []int64{id}, string(lang))
	if err != nil {
		return nil, fmt.Errorf("loading %s %d translations: %w", s.family, id, err)
	}

	c := toContent(parent, translations)
	return &c, nil
}

func (s *LocalizedService) list(ctx context.Context, q *store.Queries, lang model.Language) ([]model.Content, error) {
	lq := q.Localized(s.table)

	var (
		parents []store.Localized
		err     error
	)
	if lang == "" {
		parents, err = lq.ListParents(ctx)
	} else {
		parents, err = lq.ListParentsWithLanguage(ctx, string(lang))
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.family, err)
	}

	ids := make([]int64, len(parents))
	for i, p := range parents {
		ids[i] = p.ID
	}

	translations, err := lq.ListTranslations(ctx, ids, string(lang))
	if err != nil {
		return nil, fmt.Errorf("listing %s translations: %w", s.family, err)
	}

	byParent := make(map[int64][]store.LocalizedTranslation, len(parents))
	for _, t := range translations {
		byParent[t.ParentID] = append(byParent[t.ParentID], t)
	}

	result := make([]model.Content, 0, len(parents))
	for _, p := range parents {
		result = append(result, toContent(p, byParent[p.ID]))
	}
	return result, nil
}

func (s *LocalizedService) saveUpload(ctx context.Context, up *Upload) (sql.NullString, error) {
	return saveUpload(ctx, s.files, up)
}

func (s *LocalizedService) discardUpload(image sql.NullString) {
	discardUpload(s.files, image)
}

func saveUpload(ctx context.Context, files *FileStore, up *Upload) (sql.NullString, error) {
	if up == nil {
		return sql.NullString{}, nil
	}
	ref, err := files.SaveImage(ctx, up)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("saving upload: %w", err)
	}
	return util.NullStringFromValue(ref), nil
}

// discardUpload removes a file written for a unit of work that did not commit.
func discardUpload(files *FileStore, image sql.NullString) {
	if !image.Valid {
		return
	}
	if err := files.Remove(image.String); err != nil {
		slog.Warn("failed to remove uploaded file after rollback", "ref", image.String, "error", err, "category", model.EventCategoryUpload)
	}
}

// notFound maps sql.ErrNoRows to model.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func toContent(p store.Localized, translations []store.LocalizedTranslation) model.Content {
	c := model.Content{
		ID:           p.ID,
		Image:        util.PtrFromNullString(p.Image),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Translations: make([]model.Translation, 0, len(translations)),
	}
	for _, t := range translations {
		c.Translations = append(c.Translations, model.Translation{
			ID:          t.ID,
			ParentID:    t.ParentID,
			Language:    model.Language(t.Language),
			Title:       t.Title,
			Description: t.Description,
			Content:     t.Content,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return c
}
