// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/companysite/internal/model"
)

// ContextKeyLanguage is the context key for the requested content language.
const ContextKeyLanguage ContextKey = "language"

// LanguageQueryParam is the query parameter that selects a content language.
const LanguageQueryParam = "language"

// Language creates middleware that resolves the ?language= query parameter
// against the supported content languages. Requests without the parameter
// pass through unfiltered; unsupported codes are rejected with 400.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get(LanguageQueryParam)
		if code == "" {
			next.ServeHTTP(w, r)
			return
		}

		lang, err := model.ParseLanguage(code)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, "invalid_language", "Unsupported language", map[string]string{
				LanguageQueryParam: code,
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
	})
}

// WithLanguage returns a copy of ctx carrying lang.
func WithLanguage(ctx context.Context, lang model.Language) context.Context {
	return context.WithValue(ctx, ContextKeyLanguage, lang)
}

// GetLanguage returns the requested content language, or "" when none was given.
func GetLanguage(r *http.Request) model.Language {
	lang, _ := r.Context().Value(ContextKeyLanguage).(model.Language)
	return lang
}
