// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refPattern = regexp.MustCompile(`^/uploads/[0-9a-f]{32}(\.[a-z0-9]+)?$`)

func TestFileStore_Save(t *testing.T) {
	files, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ref, err := files.Save(context.Background(), strings.NewReader("png-bytes"), "Logo.PNG")
	require.NoError(t, err)
	assert.Regexp(t, refPattern, ref)
	assert.True(t, strings.HasSuffix(ref, ".png"))

	p, err := files.Path(ref)
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestFileStore_SaveUniqueNames(t *testing.T) {
	files, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	a, err := files.Save(context.Background(), strings.NewReader("a"), "same.jpg")
	require.NoError(t, err)
	b, err := files.Save(context.Background(), strings.NewReader("b"), "same.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFileStore_ExtensionHandling(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.JPG", ".jpg"},
		{"archive.tar.gz", ".gz"},
		{"noextension", ""},
		{"../../etc/passwd.txt", ".txt"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extensionOf(tt.name))
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestFileStore_SaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	files, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = files.Save(context.Background(), failingReader{}, "x.png")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_SaveCancelledContext(t *testing.T) {
	files, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = files.Save(ctx, strings.NewReader("x"), "x.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStore_PathRejectsTraversal(t *testing.T) {
	files, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, ref := range []string{"/uploads/../secret", "/uploads/", "/static/a.png", "/uploads/a/b.png", "../a.png"} {
		_, err := files.Path(ref)
		assert.Error(t, err, ref)
	}
}

func TestFileStore_RemoveAndList(t *testing.T) {
	dir := t.TempDir()
	files, err := NewFileStore(dir)
	require.NoError(t, err)

	ref, err := files.Save(context.Background(), strings.NewReader("x"), "a.png")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	refs, err := files.List()
	require.NoError(t, err)
	assert.Equal(t, []string{ref}, refs)

	require.NoError(t, files.Remove(ref))
	require.NoError(t, files.Remove(ref), "removing a missing file succeeds")

	refs, err = files.List()
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestFileStore_SaveImage(t *testing.T) {
	files, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	t.Run("jpeg is re-encoded", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 9)), nil))

		ref, err := files.SaveImage(context.Background(), &Upload{Reader: bytes.NewReader(buf.Bytes()), Filename: "photo.JPG"})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(ref, ".jpg"))

		p, err := files.Path(ref)
		require.NoError(t, err)
		f, err := os.Open(p)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		cfg, err := jpeg.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, 16, cfg.Width)
		assert.Equal(t, 9, cfg.Height)
	})

	t.Run("non-image stored as submitted", func(t *testing.T) {
		ref, err := files.SaveImage(context.Background(), upload("doc.txt", "plain text"))
		require.NoError(t, err)

		p, err := files.Path(ref)
		require.NoError(t, err)
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "plain text", string(data))
	})
}
