// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/service"
)

// MaxImportFileSize bounds a single upload extracted from an import archive.
const MaxImportFileSize = 32 << 20

// ErrUnsupportedVersion is returned for exports written by an unknown format version.
var ErrUnsupportedVersion = errors.New("unsupported export version")

// Importer recreates exported content through the content services. Every
// entity is created anew, so imported IDs differ from the exported ones.
type Importer struct {
	src    Sources
	logger *slog.Logger
}

// NewImporter creates a new Importer instance.
func NewImporter(src Sources, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{src: src, logger: logger}
}

// ImportFromReader imports a JSON export. Image references are dropped
// because the files are not part of the payload.
func (i *Importer) ImportFromReader(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}
	return i.Import(ctx, &data, nil)
}

// ImportFromZip imports an archive written by ExportWithMedia.
func (i *Importer) ImportFromZip(ctx context.Context, zr *zip.Reader) (*ImportResult, error) {
	f, err := zr.Open(ExportFileName)
	if err != nil {
		return nil, fmt.Errorf("archive has no %s: %w", ExportFileName, err)
	}
	defer func() { _ = f.Close() }()

	var data ExportData
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ExportFileName, err)
	}
	return i.Import(ctx, &data, zr)
}

// ImportFromZipBytes imports an archive held in memory.
func (i *Importer) ImportFromZipBytes(ctx context.Context, b []byte) (*ImportResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("reading zip: %w", err)
	}
	return i.ImportFromZip(ctx, zr)
}

// Import creates every entity in data. Entity failures are collected in the
// result; only a bad version or a cancelled context abort the import. media
// supplies image files and may be nil.
func (i *Importer) Import(ctx context.Context, data *ExportData, media fs.FS) (*ImportResult, error) {
	if data.Version != ExportVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, data.Version)
	}

	result := &ImportResult{Created: make(map[model.Family]int)}

	localized := []struct {
		svc   *service.LocalizedService
		items []model.Content
	}{
		{i.src.Products, data.Products},
		{i.src.BlogPosts, data.BlogPosts},
		{i.src.Activities, data.Activities},
	}
	for _, l := range localized {
		for idx, item := range l.items {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			err := i.withImage(media, item.Image, result, func(up *service.Upload) error {
				_, err := l.svc.Create(ctx, model.ContentInput{Translations: translationSet(item.Translations)}, up)
				return err
			})
			i.record(result, l.svc.Family(), idx, err)
		}
	}

	simple := []struct {
		svc   *service.SimpleService
		items []model.SimpleContent
	}{
		{i.src.Awards, data.Awards},
		{i.src.ParentCompanies, data.ParentCompanies},
	}
	for _, s := range simple {
		for idx, item := range s.items {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			title := item.Title
			in := model.SimpleInput{Title: &title, Description: item.Description, Website: item.Website}
			err := i.withImage(media, item.Image, result, func(up *service.Upload) error {
				_, err := s.svc.Create(ctx, in, up)
				return err
			})
			i.record(result, s.svc.Family(), idx, err)
		}
	}

	if data.About != nil {
		content := data.About.Content
		err := i.withImage(media, data.About.Image, result, func(up *service.Upload) error {
			_, err := i.src.About.Set(ctx, &content, up)
			return err
		})
		i.record(result, model.FamilyAbout, 0, err)
	}

	i.logger.Info("content imported", "created", result.Created, "errors", len(result.Errors))
	return result, nil
}

func (i *Importer) record(result *ImportResult, family model.Family, idx int, err error) {
	if err == nil {
		result.Created[family]++
		return
	}
	result.Errors = append(result.Errors, ImportError{Family: family, Index: idx, Message: err.Error()})
}

// withImage calls fn with the archived file behind ref, or with no upload
// when there is none.
func (i *Importer) withImage(media fs.FS, ref *string, result *ImportResult, fn func(*service.Upload) error) error {
	if ref == nil || *ref == "" {
		return fn(nil)
	}
	if media == nil {
		result.Warnings = append(result.Warnings, "image not in payload: "+*ref)
		return fn(nil)
	}

	name := zipPathForRef(*ref)
	if !fs.ValidPath(name) {
		result.Warnings = append(result.Warnings, "invalid image reference: "+*ref)
		return fn(nil)
	}

	f, err := media.Open(name)
	if err != nil {
		result.Warnings = append(result.Warnings, "image missing from archive: "+*ref)
		return fn(nil)
	}
	defer func() { _ = f.Close() }()

	if info, err := f.Stat(); err == nil && info.Size() > MaxImportFileSize {
		result.Warnings = append(result.Warnings, "image too large: "+*ref)
		return fn(nil)
	}

	return fn(&service.Upload{
		Reader:   io.LimitReader(f, MaxImportFileSize),
		Filename: name,
	})
}

// translationSet rebuilds submitted fields from stored translations.
func translationSet(translations []model.Translation) model.TranslationSet {
	set := make(model.TranslationSet, len(translations))
	for _, t := range translations {
		if !t.Language.IsValid() {
			continue
		}
		title, description, content := t.Title, t.Description, t.Content
		set[t.Language] = model.TranslationFields{
			Title:       &title,
			Description: &description,
			Content:     &content,
		}
	}
	return set
}
