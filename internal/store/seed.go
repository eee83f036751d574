// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/companysite/internal/model"
)

// Seed creates initial data in the database.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if the about row already exists
	_, err := queries.GetAbout(ctx)
	if err == nil {
		slog.Info("about content already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for about content: %w", err)
	}

	about, err := queries.CreateAbout(ctx, CreateAboutParams{
		Content:   model.DefaultAboutContent,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating about content: %w", err)
	}

	slog.Info("created default about content", "id", about.ID)
	return nil
}
