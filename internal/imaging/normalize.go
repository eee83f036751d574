// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded entity images before they are stored.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder for DecodeConfig
)

// Image formats recognised by Normalize.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatWebP = "webp"
)

// MaxNormalizeBytes bounds the images Normalize decodes. Larger inputs are
// stored unchanged.
const MaxNormalizeBytes = 20 << 20

// jpegQuality is used when a JPEG is re-encoded.
const jpegQuality = 92

// Result describes a normalized upload.
type Result struct {
	// Data is the bytes to store: re-encoded for JPEGs, otherwise the input.
	Data []byte
	// Format is one of the Format constants, or empty for non-images.
	Format string
	Width  int
	Height int
	// Rewritten reports whether Data differs from the input.
	Rewritten bool
}

// Normalize inspects data and, for JPEGs, applies the EXIF orientation and
// re-encodes the pixels so no camera metadata (GPS, serial numbers) is
// published. Other images are passed through with their dimensions; anything
// that is not a supported image is returned untouched with an empty Format.
func Normalize(data []byte) (Result, error) {
	res := Result{Data: data, Format: DetectFormat(data)}
	if res.Format == "" {
		return res, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return res, fmt.Errorf("reading %s header: %w", res.Format, err)
	}
	res.Width, res.Height = cfg.Width, cfg.Height

	if res.Format != FormatJPEG {
		return res, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return res, fmt.Errorf("decoding jpeg: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return res, fmt.Errorf("encoding jpeg: %w", err)
	}

	b := img.Bounds()
	return Result{
		Data:      buf.Bytes(),
		Format:    FormatJPEG,
		Width:     b.Dx(),
		Height:    b.Dy(),
		Rewritten: true,
	}, nil
}

// DetectFormat sniffs the image format from raw bytes.
func DetectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is never decoded (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return FormatJPEG
	case strings.Contains(contentType, "png"):
		return FormatPNG
	case strings.Contains(contentType, "gif"):
		return FormatGIF
	case strings.Contains(contentType, "webp"):
		return FormatWebP
	default:
		return ""
	}
}

// readExifOrientation returns the EXIF orientation tag, or 1 when absent.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation undoes an EXIF orientation:
// 2 flip H, 3 rotate 180, 4 flip V, 5 transpose, 6 rotate 90 CW,
// 7 transverse, 8 rotate 90 CCW.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
