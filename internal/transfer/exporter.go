// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/olegiv/companysite/internal/service"
)

// Exporter handles exporting site content.
type Exporter struct {
	src    Sources
	logger *slog.Logger
}

// NewExporter creates a new Exporter instance.
func NewExporter(src Sources, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{src: src, logger: logger}
}

// Export reads every entity with all of its translations.
func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if data.Products, err = e.src.Products.List(ctx, ""); err != nil {
		return nil, fmt.Errorf("exporting products: %w", err)
	}
	if data.BlogPosts, err = e.src.BlogPosts.List(ctx, ""); err != nil {
		return nil, fmt.Errorf("exporting blog posts: %w", err)
	}
	if data.Activities, err = e.src.Activities.List(ctx, ""); err != nil {
		return nil, fmt.Errorf("exporting activities: %w", err)
	}
	if data.Awards, err = e.src.Awards.List(ctx); err != nil {
		return nil, fmt.Errorf("exporting awards: %w", err)
	}
	if data.ParentCompanies, err = e.src.ParentCompanies.List(ctx); err != nil {
		return nil, fmt.Errorf("exporting parent companies: %w", err)
	}
	if data.About, err = e.src.About.Get(ctx); err != nil {
		return nil, fmt.Errorf("exporting about: %w", err)
	}

	return data, nil
}

// ExportToWriter writes the export as JSON to the provided writer.
func (e *Exporter) ExportToWriter(ctx context.Context, w io.Writer) error {
	data, err := e.Export(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportWithMedia creates a zip archive containing export.json and every
// referenced upload under uploads/.
func (e *Exporter) ExportWithMedia(ctx context.Context, w io.Writer) error {
	data, err := e.Export(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate export: %w", err)
	}

	zipWriter := zip.NewWriter(w)

	for _, ref := range data.ImageRefs() {
		if err := e.addUploadToZip(zipWriter, ref); err != nil {
			e.logger.Warn("failed to add upload to zip", "ref", ref, "error", err)
		}
	}

	jsonWriter, err := zipWriter.Create(ExportFileName)
	if err != nil {
		return fmt.Errorf("failed to create %s in zip: %w", ExportFileName, err)
	}

	encoder := json.NewEncoder(jsonWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", ExportFileName, err)
	}

	return zipWriter.Close()
}

// zipPathForRef maps "/uploads/<name>" to "uploads/<name>".
func zipPathForRef(ref string) string {
	return path.Join(UploadsDir, strings.TrimPrefix(ref, service.UploadURLPrefix))
}

// addUploadToZip adds a single stored upload to the zip archive.
func (e *Exporter) addUploadToZip(zipWriter *zip.Writer, ref string) error {
	srcPath, err := e.src.Files.Path(ref)
	if err != nil {
		return err
	}

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcPath, err)
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create file header: %w", err)
	}
	header.Name = zipPathForRef(ref)
	header.Method = zip.Deflate

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}

	if _, err := io.Copy(writer, srcFile); err != nil {
		return fmt.Errorf("failed to write file content: %w", err)
	}
	return nil
}
