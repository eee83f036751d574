// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/olegiv/companysite/internal/store"
)

// OrphanFiles returns the stored files that no row references. Files
// uploaded through the standalone upload endpoint show up here until some
// entity points at them.
func OrphanFiles(ctx context.Context, engine *store.Engine, files *FileStore) ([]string, error) {
	stored, err := files.List()
	if err != nil {
		return nil, err
	}

	var referenced []string
	err = engine.Session(ctx, func(sess *store.Session) error {
		var err error
		referenced, err = sess.ListImages(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing image references: %w", err)
	}

	inUse := make(map[string]struct{}, len(referenced))
	for _, ref := range referenced {
		inUse[ref] = struct{}{}
	}

	var orphans []string
	for _, ref := range stored {
		if _, ok := inUse[ref]; !ok {
			orphans = append(orphans, ref)
		}
	}
	return orphans, nil
}
