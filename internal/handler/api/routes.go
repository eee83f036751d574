// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/companysite/internal/middleware"
	"github.com/olegiv/companysite/internal/service"
)

// Routes mounts the public and admin endpoints on r. adminToken guards the
// /admin subtree; an empty token leaves it open.
func (h *Handler) Routes(r chi.Router, adminToken string) {
	localized := map[string]*service.LocalizedService{
		"/products":   h.svc.Products,
		"/blog":       h.svc.BlogPosts,
		"/activities": h.svc.Activities,
	}
	simple := map[string]*service.SimpleService{
		"/awards":           h.svc.Awards,
		"/parent-companies": h.svc.ParentCompanies,
	}

	// Public read endpoints
	r.Group(func(r chi.Router) {
		for path, svc := range localized {
			r.With(middleware.Language).Get(path, h.ListContent(svc))
			r.With(middleware.Language).Get(path+"/{id}", h.GetContent(svc))
		}
		for path, svc := range simple {
			r.Get(path, h.ListSimple(svc))
			r.Get(path+"/{id}", h.GetSimple(svc))
		}
		r.Get("/about", h.GetAbout)
	})

	// Admin endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminToken(adminToken))

		for path, svc := range localized {
			r.Post(path, h.CreateContent(svc))
			r.Put(path+"/{id}", h.UpdateContent(svc))
			r.Delete(path+"/{id}", h.DeleteContent(svc))
		}
		for path, svc := range simple {
			r.Post(path, h.CreateSimple(svc))
			r.Put(path+"/{id}", h.UpdateSimple(svc))
			r.Delete(path+"/{id}", h.DeleteSimple(svc))
		}

		r.Post("/about", h.SetAbout)
		r.Delete("/about", h.DeleteAbout)
		r.Post("/upload", h.Upload)

		r.Get("/export", h.Export)
		r.Post("/import", h.Import)

		r.Get("/events", h.ListEvents)
		r.Get("/cache", h.CacheStats)
		r.Delete("/cache", h.ClearCache)
		r.Get("/jobs", h.ListJobs)
		r.Post("/jobs/{name}/run", h.RunJob)
	})
}
