// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/webhook"
)

// GetAbout handles GET /about. Responds with null data when no about text exists.
func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := h.svc.About.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "About")
		return
	}
	if about == nil {
		WriteSuccess(w, nil, nil)
		return
	}
	WriteSuccess(w, about, nil)
}

// SetAbout handles POST /admin/about: creates the about row or updates it.
func (h *Handler) SetAbout(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		WriteBadRequest(w, "Invalid form data", nil)
		return
	}

	content := formValue(r, fieldContent)
	if err := h.validate.Struct(aboutForm{Content: content}); err != nil {
		WriteValidationError(w, fieldErrors(err, ""))
		return
	}

	up, closeUpload, err := formUpload(r, fieldImage)
	if err != nil {
		WriteBadRequest(w, "Invalid image upload", nil)
		return
	}
	defer closeUpload()

	about, err := h.svc.About.Set(r.Context(), content, up)
	if err != nil {
		writeServiceError(w, r, err, "About")
		return
	}
	h.dispatchEvent(r.Context(), webhook.EventContentUpdated, webhook.ContentEventData{Family: model.FamilyAbout})
	WriteSuccess(w, about, nil)
}

// DeleteAbout handles DELETE /admin/about. Succeeds when nothing is stored.
func (h *Handler) DeleteAbout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.About.Delete(r.Context()); err != nil {
		writeServiceError(w, r, err, "About")
		return
	}
	h.dispatchEvent(r.Context(), webhook.EventContentDeleted, webhook.ContentEventData{Family: model.FamilyAbout})
	WriteNoContent(w)
}
