// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/companysite/internal/auth"
)

// AdminTokenHeader carries the shared admin secret.
const AdminTokenHeader = "X-Admin-Token"

// AdminToken creates middleware that requires the X-Admin-Token header to
// match secret, given either verbatim or as an argon2id hash. An empty
// secret leaves the routes open; an undecodable hash closes them.
func AdminToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		verifier, err := auth.NewVerifier(secret)
		if err != nil {
			slog.Error("admin token unusable, rejecting admin requests", "error", err)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if got == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing "+AdminTokenHeader+" header", nil)
				return
			}
			if verifier == nil || !verifier.Verify(got) {
				slog.Warn("invalid admin token", "ip", clientIP(r), "path", r.URL.Path)
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid admin token", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
