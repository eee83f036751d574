// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/companysite/internal/handler"
	"github.com/olegiv/companysite/internal/middleware"
	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/service"
	"github.com/olegiv/companysite/internal/webhook"
)

var entityNames = map[model.Family]string{
	model.FamilyProduct:       "Product",
	model.FamilyBlogPost:      "Blog post",
	model.FamilyActivity:      "Activity",
	model.FamilyAward:         "Award",
	model.FamilyParentCompany: "Parent company",
	model.FamilyAbout:         "About",
}

func entityName(f model.Family) string {
	if name, ok := entityNames[f]; ok {
		return name
	}
	return string(f)
}

// ListContent handles GET on a localized collection. With ?language= only
// entities that have that translation are returned, each carrying just it.
func (h *Handler) ListContent(svc *service.LocalizedService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.GetLanguage(r))
		if err != nil {
			writeServiceError(w, r, err, entityName(svc.Family()))
			return
		}
		if items == nil {
			items = []model.Content{}
		}
		WriteSuccess(w, items, &Meta{Total: int64(len(items))})
	}
}

// GetContent handles GET on a localized entity.
func (h *Handler) GetContent(svc *service.LocalizedService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := entityName(svc.Family())
		id, err := handler.ParseIDParam(r)
		if err != nil {
			WriteBadRequest(w, "Invalid "+name+" ID", nil)
			return
		}

		item, err := svc.Get(r.Context(), id, middleware.GetLanguage(r))
		if err != nil {
			writeServiceError(w, r, err, name)
			return
		}
		WriteSuccess(w, item, nil)
	}
}

// CreateContent handles POST on a localized collection.
func (h *Handler) CreateContent(svc *service.LocalizedService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := entityName(svc.Family())
		in, up, closeUpload, ok := h.contentRequest(w, r)
		if !ok {
			return
		}
		defer closeUpload()

		item, err := svc.Create(r.Context(), in, up)
		if err != nil {
			writeServiceError(w, r, err, name)
			return
		}
		h.dispatchEvent(r.Context(), webhook.EventContentCreated, webhook.ContentEventData{Family: svc.Family(), ID: item.ID})
		WriteCreated(w, item)
	}
}

// UpdateContent handles PUT on a localized entity.
func (h *Handler) UpdateContent(svc *service.LocalizedService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := entityName(svc.Family())
		id, err := handler.ParseIDParam(r)
		if err != nil {
			WriteBadRequest(w, "Invalid "+name+" ID", nil)
			return
		}

		in, up, closeUpload, ok := h.contentRequest(w, r)
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

// DeleteContent handles DELETE on a localized entity.
func (h *Handler) DeleteContent(svc *service.LocalizedService) http.HandlerFunc {
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

// contentRequest parses and validates a localized create/update body. On
// failure the response is written and ok is false.
func (h *Handler) contentRequest(w http.ResponseWriter, r *http.Request) (in model.ContentInput, up *service.Upload, closeUpload func(), ok bool) {
	if err := parseForm(r); err != nil {
		WriteBadRequest(w, "Invalid form data", nil)
		return in, nil, nil, false
	}

	in.Translations = translationsFromForm(r)
	if details := h.validateTranslations(in.Translations); len(details) > 0 {
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
