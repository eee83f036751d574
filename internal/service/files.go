// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/companysite/internal/imaging"
	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/util"
)

// Upload defaults
const (
	DefaultUploadDir = "./uploads"
	UploadURLPrefix  = "/uploads/"
)

// Upload is a file submitted alongside a create or update call.
type Upload struct {
	Reader   io.Reader
	Filename string
}

// FileStore writes uploaded files under a single directory and hands out
// "/uploads/<name>" references to them.
type FileStore struct {
	dir string
}

// NewFileStore creates the upload directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultUploadDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the upload directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes r under a fresh uuid-based name that keeps the lower-cased
// extension of originalName, and returns its reference.
func (s *FileStore) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + extensionOf(originalName)
	filePath := filepath.Join(s.dir, name)

	out, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(filePath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(filePath)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return UploadURLPrefix + name, nil
}

// SaveImage stores an entity image. JPEGs are re-oriented and stripped of
// metadata first; other files, and files too large to decode, are stored as
// submitted.
func (s *FileStore) SaveImage(ctx context.Context, up *Upload) (string, error) {
	head, err := io.ReadAll(io.LimitReader(up.Reader, imaging.MaxNormalizeBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if len(head) > imaging.MaxNormalizeBytes {
		return s.Save(ctx, io.MultiReader(bytes.NewReader(head), up.Reader), up.Filename)
	}

	res, err := imaging.Normalize(head)
	if err != nil {
		slog.Warn("storing image unmodified", "filename", up.Filename, "error", err, "category", model.EventCategoryUpload)
		return s.Save(ctx, bytes.NewReader(head), up.Filename)
	}
	if res.Format != "" {
		slog.Debug("image upload", "format", res.Format, "width", res.Width, "height", res.Height, "rewritten", res.Rewritten)
	}
	return s.Save(ctx, bytes.NewReader(res.Data), up.Filename)
}

// Path resolves a reference to a file path inside the upload directory.
func (s *FileStore) Path(ref string) (string, error) {
	name, err := util.RefName(ref, UploadURLPrefix)
	if err != nil {
		return "", err
	}
	return util.JoinWithin(s.dir, name)
}

// Remove deletes the file behind ref. A missing file is not an error.
func (s *FileStore) Remove(ref string) error {
	p, err := s.Path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", ref, err)
	}
	return nil
}

// List returns the references of every stored file, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading upload directory: %w", err)
	}

	refs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			refs = append(refs, UploadURLPrefix+e.Name())
		}
	}
	sort.Strings(refs)
	return refs, nil
}

// extensionOf returns the lower-cased extension of the base name of filename.
func extensionOf(filename string) string {
	base, err := util.ClientBaseName(filename)
	if err != nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(base))
}
