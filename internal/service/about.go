// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/store"
	"github.com/olegiv/companysite/internal/util"
)

// AboutService manages the singleton about row.
type AboutService struct {
	engine *store.Engine
	files  *FileStore
}

// NewAboutService creates an AboutService.
func NewAboutService(engine *store.Engine, files *FileStore) *AboutService {
	return &AboutService{engine: engine, files: files}
}

// Get returns the about row, or nil when none exists.
func (s *AboutService) Get(ctx context.Context) (*model.About, error) {
	var result *model.About
	err := s.engine.Session(ctx, func(sess *store.Session) error {
		row, err := sess.GetAbout(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading about: %w", err)
		}
		result = toAbout(row)
		return nil
	})
	return result, err
}

// Set updates the about row, creating it when absent. A nil content keeps
// the stored text; a new upload replaces the image.
func (s *AboutService) Set(ctx context.Context, content *string, up *Upload) (*model.About, error) {
	newImage, err := saveUpload(ctx, s.files, up)
	if err != nil {
		return nil, err
	}

	var result store.About
	err = s.engine.Session(ctx, func(sess *store.Session) error {
		return sess.InTx(ctx, func(q *store.Queries) error {
			now := time.Now()

			current, err := q.GetAbout(ctx)
			if errors.Is(err, sql.ErrNoRows) {
				result, err = q.CreateAbout(ctx, store.CreateAboutParams{
					Content:   deref(content),
					Image:     newImage,
					UpdatedAt: now,
				})
				return err
			}
			if err != nil {
				return err
			}

			if content != nil {
				current.Content = *content
			}
			if newImage.Valid {
				current.Image = newImage
			}
			result, err = q.UpdateAbout(ctx, store.UpdateAboutParams{
				ID:        current.ID,
				Content:   current.Content,
				Image:     current.Image,
				UpdatedAt: now,
			})
			return err
		})
	})
	if err != nil {
		discardUpload(s.files, newImage)
		return nil, fmt.Errorf("saving about: %w", err)
	}
	return toAbout(result), nil
}

// Delete removes the about row. Deleting an absent row succeeds.
func (s *AboutService) Delete(ctx context.Context) error {
	return s.engine.Session(ctx, func(sess *store.Session) error {
		if _, err := sess.DeleteAbout(ctx); err != nil {
			return fmt.Errorf("deleting about: %w", err)
		}
		return nil
	})
}

func toAbout(r store.About) *model.About {
	return &model.About{
		ID:        r.ID,
		Content:   r.Content,
		Image:     util.PtrFromNullString(r.Image),
		UpdatedAt: r.UpdatedAt,
	}
}
