// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application.
package model

import "time"

// Family identifies an entity family.
type Family string

// Localized families keep their text in per-language translation rows.
const (
	FamilyProduct  Family = "product"
	FamilyBlogPost Family = "blog_post"
	FamilyActivity Family = "activity"
)

// Simple families keep their text directly on the row.
const (
	FamilyAward         Family = "award"
	FamilyParentCompany Family = "parent_company"
	FamilyAbout         Family = "about"
)

// Families lists every entity family.
var Families = []Family{
	FamilyProduct, FamilyBlogPost, FamilyActivity,
	FamilyAward, FamilyParentCompany, FamilyAbout,
}

// Translation is the per-language text of a localized entity.
type Translation struct {
	ID          int64     `json:"id"`
	ParentID    int64     `json:"parent_id"`
	Language    Language  `json:"language"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TranslationFields is one submitted language triple. A nil field was not submitted.
type TranslationFields struct {
	Title       *string
	Description *string
	Content     *string
}

// HasTitle reports whether a non-empty title was submitted.
func (f TranslationFields) HasTitle() bool {
	return f.Title != nil && *f.Title != ""
}

// TranslationSet maps each submitted language to its field triple.
type TranslationSet map[Language]TranslationFields

// Titled returns the languages in reconcile order that carry a non-empty title.
func (s TranslationSet) Titled() []Language {
	var langs []Language
	for _, lang := range Languages {
		if f, ok := s[lang]; ok && f.HasTitle() {
			langs = append(langs, lang)
		}
	}
	return langs
}

// Content is a localized entity (product, blog post, activity) with its translations.
type Content struct {
	ID           int64         `json:"id"`
	Image        *string       `json:"image"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Translations []Translation `json:"translations"`
}

// Translation returns the translation for lang, if present.
func (c *Content) Translation(lang Language) (Translation, bool) {
	for _, t := range c.Translations {
		if t.Language == lang {
			return t, true
		}
	}
	return Translation{}, false
}

// ContentInput carries the scalar fields of a localized create or update call.
type ContentInput struct {
	Translations TranslationSet
}

// SimpleContent is an award or parent company: text stored on the row itself.
type SimpleContent struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Website     *string   `json:"website,omitempty"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SimpleInput carries the scalar fields of a simple create or update call.
// Nil fields were omitted; on update they leave the stored value unchanged
// and an explicit empty string clears an optional field.
type SimpleInput struct {
	Title       *string
	Description *string
	Website     *string
}

// About is the singleton "about us" row.
type About struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Image     *string   `json:"image"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultAboutContent is seeded when no about row exists.
const DefaultAboutContent = "Write your 'About us' here."
