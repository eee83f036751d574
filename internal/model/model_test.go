// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Language
		wantErr bool
	}{
		{"english", "en", LanguageEnglish, false},
		{"persian", "fa", LanguagePersian, false},
		{"arabic", "ar", LanguageArabic, false},
		{"upper case", "EN", LanguageEnglish, false},
		{"padded", " fa ", LanguagePersian, false},
		{"regional english", "en-US", LanguageEnglish, false},
		{"regional persian", "fa-IR", LanguagePersian, false},
		{"unsupported", "de", "", true},
		{"garbage", "not a tag!", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLanguage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLanguageInfo(t *testing.T) {
	if !LanguagePersian.IsRTL() {
		t.Error("fa should be RTL")
	}
	if !LanguageArabic.IsRTL() {
		t.Error("ar should be RTL")
	}
	if LanguageEnglish.IsRTL() {
		t.Error("en should be LTR")
	}
	if Language("de").IsValid() {
		t.Error("de should not be a valid content language")
	}
	if got := LanguagePersian.Info().NativeName; got != "فارسی" {
		t.Errorf("fa native name = %q", got)
	}
}

func TestTranslationSetTitled(t *testing.T) {
	set := TranslationSet{
		LanguageArabic:  {Title: strPtr("مرحبا")},
		LanguageEnglish: {Title: strPtr("")},
		LanguagePersian: {Title: strPtr("سلام")},
	}

	got := set.Titled()
	want := []Language{LanguagePersian, LanguageArabic}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Titled() = %v, want %v", got, want)
	}

	if len(TranslationSet{}.Titled()) != 0 {
		t.Error("empty set should have no titled languages")
	}
}

func TestContentTranslation(t *testing.T) {
	c := Content{Translations: []Translation{{Language: LanguageEnglish, Title: "Hello"}}}

	tr, ok := c.Translation(LanguageEnglish)
	if !ok || tr.Title != "Hello" {
		t.Errorf("Translation(en) = %+v, %v", tr, ok)
	}
	if _, ok := c.Translation(LanguageArabic); ok {
		t.Error("Translation(ar) should be missing")
	}
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("creating award: %w", &ValidationError{Fields: map[string]string{
		"title":   "Title is required",
		"website": "Invalid URL",
	}})

	if !IsValidationError(err) {
		t.Fatal("IsValidationError should see through wrapping")
	}
	if IsValidationError(ErrNotFound) {
		t.Error("ErrNotFound is not a validation error")
	}

	want := "creating award: validation failed: title: Title is required; website: Invalid URL"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(fmt.Errorf("wrap: %w", ErrNotFound), ErrNotFound) {
		t.Error("ErrNotFound should survive wrapping")
	}
}

func TestEventCategoriesUnique(t *testing.T) {
	categories := []string{
		EventCategoryContent,
		EventCategoryUpload,
		EventCategoryAuth,
		EventCategoryCache,
		EventCategorySystem,
	}

	seen := make(map[string]bool)
	for _, cat := range categories {
		if seen[cat] {
			t.Errorf("duplicate category: %q", cat)
		}
		seen[cat] = true
	}
}
