// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/companysite/internal/cache"
	"github.com/olegiv/companysite/internal/handler"
	"github.com/olegiv/companysite/internal/model"
)

// ListEvents handles GET /admin/events with page/per_page pagination.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePage(r)

	events, total, err := h.svc.Events.List(r.Context(), int64(page.PerPage), int64(page.Offset()))
	if err != nil {
		writeServiceError(w, r, err, "Events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}

	WriteSuccess(w, events, &Meta{
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
		Pages:   page.Pages(total),
	})
}

// CacheStatus is the response of GET /admin/cache.
type CacheStatus struct {
	Enabled bool         `json:"enabled"`
	Stats   *cache.Stats `json:"stats,omitempty"`
}

// CacheStats handles GET /admin/cache.
func (h *Handler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	status := CacheStatus{Enabled: h.svc.Cache != nil}
	if stats, ok := h.svc.Cache.Stats(); ok {
		status.Stats = &stats
	}
	WriteSuccess(w, status, nil)
}

// ClearCache handles DELETE /admin/cache.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cache.Clear(r.Context()); err != nil {
		writeServiceError(w, r, err, "Cache")
		return
	}
	slog.Info("content cache cleared", "category", model.EventCategoryCache)
	WriteNoContent(w)
}

// ListJobs handles GET /admin/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	if h.svc.Jobs == nil {
		WriteSuccess(w, []any{}, &Meta{Total: 0})
		return
	}
	jobs := h.svc.Jobs.List()
	WriteSuccess(w, jobs, &Meta{Total: int64(len(jobs))})
}

// RunJob handles POST /admin/jobs/{name}/run.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.svc.Jobs == nil {
		WriteNotFound(w, "Job not found")
		return
	}

	if err := h.svc.Jobs.TriggerNow(name); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			WriteNotFound(w, "Job not found")
			return
		}
		writeServiceError(w, r, err, "Job")
		return
	}
	WriteJSON(w, http.StatusAccepted, Response{Data: map[string]string{"job": name, "status": "triggered"}})
}
