// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/webhook"
)

// UploadResponse carries the public reference of a stored file.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /admin/upload: stores the "file" part and returns its URL.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
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

	ref, err := h.svc.Files.Save(r.Context(), up.Reader, up.Filename)
	if err != nil {
		writeServiceError(w, r, err, "File")
		return
	}

	slog.Info("file uploaded", "category", model.EventCategoryUpload, "url", ref, "original_name", up.Filename)
	h.dispatchEvent(r.Context(), webhook.EventUploadCreated, webhook.UploadEventData{URL: ref, Filename: up.Filename})
	WriteCreated(w, UploadResponse{URL: ref})
}
