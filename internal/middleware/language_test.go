// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/companysite/internal/model"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLang   model.Language
	}{
		{"no parameter", "", http.StatusOK, ""},
		{"persian", "?language=fa", http.StatusOK, model.LanguagePersian},
		{"upper case", "?language=EN", http.StatusOK, model.LanguageEnglish},
		{"regional tag", "?language=ar-SA", http.StatusOK, model.LanguageArabic},
		{"unsupported", "?language=de", http.StatusBadRequest, ""},
		{"garbage", "?language=!!", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.Language
			handler := Language(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetLanguage(r)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products"+tt.query, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if got != tt.wantLang {
				t.Errorf("GetLanguage() = %q, want %q", got, tt.wantLang)
			}
		})
	}
}

func TestGetLanguageWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetLanguage(req); got != "" {
		t.Errorf("GetLanguage() = %q, want empty", got)
	}

	req = req.WithContext(WithLanguage(req.Context(), model.LanguagePersian))
	if got := GetLanguage(req); got != model.LanguagePersian {
		t.Errorf("GetLanguage() = %q, want fa", got)
	}
}
