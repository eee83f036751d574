// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer exports site content to JSON or zip archives and imports
// it back through the content services.
package transfer

import (
	"time"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/service"
)

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// Archive layout
const (
	ExportFileName = "export.json"
	UploadsDir     = "uploads"
)

// ExportData represents the complete export structure.
type ExportData struct {
	Version         string                `json:"version"`
	ExportedAt      time.Time             `json:"exported_at"`
	Products        []model.Content       `json:"products"`
	BlogPosts       []model.Content       `json:"blog_posts"`
	Activities      []model.Content       `json:"activities"`
	Awards          []model.SimpleContent `json:"awards"`
	ParentCompanies []model.SimpleContent `json:"parent_companies"`
	About           *model.About          `json:"about,omitempty"`
}

// ImageRefs returns every upload reference in the export, without duplicates.
func (d *ExportData) ImageRefs() []string {
	seen := make(map[string]bool)
	var refs []string
	add := func(ref *string) {
		if ref != nil && *ref != "" && !seen[*ref] {
			seen[*ref] = true
			refs = append(refs, *ref)
		}
	}
	for _, list := range [][]model.Content{d.Products, d.BlogPosts, d.Activities} {
		for i := range list {
			add(list[i].Image)
		}
	}
	for _, list := range [][]model.SimpleContent{d.Awards, d.ParentCompanies} {
		for i := range list {
			add(list[i].Image)
		}
	}
	if d.About != nil {
		add(d.About.Image)
	}
	return refs
}

// Sources are the services content is read from and written to.
type Sources struct {
	Products        *service.LocalizedService
	BlogPosts       *service.LocalizedService
	Activities      *service.LocalizedService
	Awards          *service.SimpleService
	ParentCompanies *service.SimpleService
	About           *service.AboutService
	Files           *service.FileStore
}

// ImportResult summarises an import.
type ImportResult struct {
	Created  map[model.Family]int `json:"created"`
	Errors   []ImportError        `json:"errors,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
}

// ImportError records an entity that could not be imported.
type ImportError struct {
	Family  model.Family `json:"family"`
	Index   int          `json:"index"`
	Message string       `json:"message"`
}
