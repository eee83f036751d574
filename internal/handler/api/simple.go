// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/companysite/internal/handler"
	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/service"
	"github.com/olegiv/companysite/internal/webhook"
)

// ListSimple handles GET on an award or parent company collection.
func (h *Handler) ListSimple(svc *service.SimpleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err, entityName(svc.Family()))
			return
		}
		if items == nil {
			items = []model.SimpleContent{}
		}
		WriteSuccess(w, items, &Meta{Total: int64(len(items))})
	}
}

// GetSimple handles GET on an award or parent company.
func (h *Handler) GetSimple(svc *service.SimpleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := entityName(svc.Family())
		id, err := handler.ParseIDParam(r)
		if err != nil {
			WriteBadRequest(w, "Invalid "+name+" ID", nil)
			return
		}

		item, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, name)
			return
		}
		WriteSuccess(w, item, nil)
	}
}

// CreateSimple handles POST on an award or parent company collection.
func (h *Handler) CreateSimple(svc *service.SimpleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, up, closeUpload, ok := h.simpleRequest(w, r)
		if !ok {
			return
		}
		defer closeUpload()

		item, err := svc.Create(r.Context(), in, up)
		if err != nil {
			writeServiceError(w, r, err, entityName(svc.Family()))
			return
		}
		h.dispatchEvent(r.Context(), webhook.EventContentCreated, webhook.ContentEventData{Family: svc.Family(), ID: item.ID})
		WriteCreated(w, item)
	}
}

// UpdateSimple handles PUT on an award or parent company.
func (h *Handler) UpdateSimple(svc *service.SimpleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := entityName(svc.Family())
		id, err := handler.ParseIDParam(r)
		if err != nil {
			WriteBadRequest(w, "Invalid "+name+" ID", nil)
			return
		}

		in, up, closeUpload, ok := h.simpleRequest(w, r)
		if !ok {
			return
		}
		defer closeUpload()

		item, err := svc.Update(r.Context(), id, in, up)
		if err != nil {
			writeServiceError(w, r, err, name)
			return
		}
		h.dispatchEvent(r.Context(), webhook.EventContentUpdated, webhook.ContentEventData{Family: svc.Family(), ID: id})
		WriteSuccess(w, item, nil)
	}
}

// DeleteSimple handles DELETE on an award or parent company.
func (h *Handler) DeleteSimple(svc *service.SimpleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := entityName(svc.Family())
		id, err := handler.ParseIDParam(r)
		if err != nil {
			WriteBadRequest(w, "Invalid "+name+" ID", nil)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, name)
			return
		}
		h.dispatchEvent(r.Context(), webhook.EventContentDeleted, webhook.ContentEventData{Family: svc.Family(), ID: id})
		WriteNoContent(w)
	}
}

func (h *Handler) simpleRequest(w http.ResponseWriter, r *http.Request) (in model.SimpleInput, up *service.Upload, closeUpload func(), ok bool) {
	if err := parseForm(r); err != nil {
		WriteBadRequest(w, "Invalid form data", nil)
		return in, nil, nil, false
	}

	in = simpleInputFromForm(r)
	if details := h.validateSimple(in); len(details) > 0 {
		WriteValidationError(w, details)
		return in, nil, nil, false
	}

	up, closeUpload, err := formUpload(r, fieldImage)
	if err != nil {
		WriteBadRequest(w, "Invalid image upload", nil)
		return in, nil, nil, false
	}
	return in, up, closeUpload, true
}
