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
)

// ApplyTranslations reconciles set against the stored translations of
// parentID, one language at a time in model.Languages order:
//
//   - a language with an absent or empty title is skipped, so an existing
//     row is never removed by omission;
//   - an existing row is overwritten, and an absent description or content
//     becomes the empty string;
//   - otherwise a new row is inserted.
//
// It must run inside the transaction of the owning entity.
func ApplyTranslations(ctx context.Context, lq *store.LocalizedQueries, parentID int64, set model.TranslationSet, now time.Time) error {
	for _, lang := range model.Languages {
		fields, ok := set[lang]
		if !ok || !fields.HasTitle() {
			continue
		}

		title := *fields.Title
		description := deref(fields.Description)
		content := deref(fields.Content)

		existing, err := lq.GetTranslation(ctx, parentID, string(lang))
		switch {
		case err == nil:
			if _, err := lq.UpdateTranslation(ctx, store.UpdateTranslationParams{
				ID:          existing.ID,
				Title:       title,
				Description: description,
				Content:     content,
				UpdatedAt:   now,
			}); err != nil {
				return fmt.Errorf("updating %s translation: %w", lang, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			if _, err := lq.CreateTranslation(ctx, store.CreateTranslationParams{
				ParentID:    parentID,
				Language:    string(lang),
				Title:       title,
				Description: description,
				Content:     content,
				CreatedAt:   now,
			}); err != nil {
				return fmt.Errorf("inserting %s translation: %w", lang, err)
			}
		default:
			return fmt.Errorf("looking up %s translation: %w", lang, err)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
