// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/transfer"
)

// maxImportSize bounds an uploaded import file.
const maxImportSize = 64 << 20

// zipMagic starts every zip archive.
var zipMagic = []byte("PK\x03\x04")

func (h *Handler) transferSources() transfer.Sources {
	return transfer.Sources{
		Products:        h.svc.Products,
		BlogPosts:       h.svc.BlogPosts,
		Activities:      h.svc.Activities,
		Awards:          h.svc.Awards,
		ParentCompanies: h.svc.ParentCompanies,
		About:           h.svc.About,
		Files:           h.svc.Files,
	}
}

// Export handles GET /admin/export. With ?media=true the response is a zip
// archive holding export.json and every referenced upload.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	withMedia, _ := strconv.ParseBool(r.URL.Query().Get("media"))
	exporter := transfer.NewExporter(h.transferSources(), slog.Default())
	stamp := time.Now().UTC().Format("20060102-150405")

	// Build in memory so a failure can still produce a JSON error
	var buf bytes.Buffer
	var err error
	contentType, ext := "application/json", "json"
	if withMedia {
		err = exporter.ExportWithMedia(r.Context(), &buf)
		contentType, ext = "application/zip", "zip"
	} else {
		err = exporter.ExportToWriter(r.Context(), &buf)
	}
	if err != nil {
		writeServiceError(w, r, err, "Export")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="companysite-export-%s.%s"`, stamp, ext))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// Import handles POST /admin/import with a JSON export or zip archive in
// the "file" field.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize+maxFormMemory)
	if err := parseForm(r); err != nil {
		WriteBadRequest(w, "Invalid form data", nil)
		return
	}

	up, closeUpload, err := formUpload(r, fieldFile)
	if err != nil {
		WriteBadRequest(w, "Invalid file upload", nil)
		return
	}
	defer closeUpload()
	if up == nil {
		WriteValidationError(w, map[string]string{fieldFile: "is required"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(up.Reader, maxImportSize+1))
	if err != nil {
		WriteBadRequest(w, "Invalid file upload", nil)
		return
	}
	if len(data) > maxImportSize {
		WriteValidationError(w, map[string]string{fieldFile: "is too large"})
		return
	}

	importer := transfer.NewImporter(h.transferSources(), slog.Default())
	var result *transfer.ImportResult
	if bytes.HasPrefix(data, zipMagic) {
		result, err = importer.ImportFromZipBytes(r.Context(), data)
	} else {
		result, err = importer.ImportFromReader(r.Context(), bytes.NewReader(data))
	}
	if err != nil {
		if errors.Is(err, transfer.ErrUnsupportedVersion) {
			WriteValidationError(w, map[string]string{fieldFile: err.Error()})
			return
		}
		if r.Context().Err() == nil {
			slog.Warn("import rejected", "category", model.EventCategoryContent, "error", err)
			WriteBadRequest(w, "Invalid import file", map[string]string{fieldFile: err.Error()})
			return
		}
		writeServiceError(w, r, err, "Import")
		return
	}

	WriteSuccess(w, result, nil)
}
