// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encode(t *testing.T, format string, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, nil)
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatGIF:
		err = gif.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatalf("encoding %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	img := createTestImage(4, 4)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", encode(t, FormatJPEG, img), FormatJPEG},
		{"png", encode(t, FormatPNG, img), FormatPNG},
		{"gif", encode(t, FormatGIF, img), FormatGIF},
		{"pdf", []byte("%PDF-1.7\n"), ""},
		{"tiff", []byte("II*\x00\x08\x00\x00\x00"), ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeJPEG(t *testing.T) {
	data := encode(t, FormatJPEG, createTestImage(40, 30))

	res, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !res.Rewritten {
		t.Error("expected JPEG to be rewritten")
	}
	if res.Width != 40 || res.Height != 30 {
		t.Errorf("dimensions = %dx%d, want 40x30", res.Width, res.Height)
	}
	if _, err := jpeg.Decode(bytes.NewReader(res.Data)); err != nil {
		t.Errorf("rewritten data is not a JPEG: %v", err)
	}
}

func TestNormalizePassesThroughPNG(t *testing.T) {
	data := encode(t, FormatPNG, createTestImage(12, 7))

	res, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Rewritten {
		t.Error("PNG should not be rewritten")
	}
	if !bytes.Equal(res.Data, data) {
		t.Error("PNG bytes changed")
	}
	if res.Format != FormatPNG || res.Width != 12 || res.Height != 7 {
		t.Errorf("got %s %dx%d, want png 12x7", res.Format, res.Width, res.Height)
	}
}

func TestNormalizeNonImage(t *testing.T) {
	data := []byte("just some text")

	res, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Format != "" || res.Rewritten || !bytes.Equal(res.Data, data) {
		t.Errorf("non-image should pass through untouched, got %+v", res)
	}
}

func TestNormalizeCorruptImage(t *testing.T) {
	data := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage")...)

	res, err := Normalize(data)
	if err == nil {
		t.Fatal("expected error for corrupt PNG")
	}
	if !bytes.Equal(res.Data, data) {
		t.Error("corrupt input should be returned unchanged")
	}
}

func TestApplyOrientation(t *testing.T) {
	img := createTestImage(4, 2)

	tests := []struct {
		orientation   int
		width, height int
	}{
		{1, 4, 2},
		{2, 4, 2},
		{3, 4, 2},
		{4, 4, 2},
		{5, 2, 4},
		{6, 2, 4},
		{7, 2, 4},
		{8, 2, 4},
		{0, 4, 2},
	}

	for _, tt := range tests {
		b := applyOrientation(img, tt.orientation).Bounds()
		if b.Dx() != tt.width || b.Dy() != tt.height {
			t.Errorf("orientation %d: got %dx%d, want %dx%d", tt.orientation, b.Dx(), b.Dy(), tt.width, tt.height)
		}
	}
}
