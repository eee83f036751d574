// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUploadCache(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"found", http.StatusOK, "public, max-age=86400, immutable"},
		{"not modified", http.StatusNotModified, "public, max-age=86400, immutable"},
		{"missing", http.StatusNotFound, "no-store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := UploadCache(86400)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))

			if got := rr.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUploadCacheImplicitOK(t *testing.T) {
	handler := UploadCache(60)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("img"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))

	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=60, immutable" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := StripTrailingSlash(ok)

	tests := []struct {
		method       string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{http.MethodGet, "/", http.StatusOK, ""},
		{http.MethodGet, "/api/v1/products", http.StatusOK, ""},
		{http.MethodGet, "/api/v1/products/", http.StatusMovedPermanently, "/api/v1/products"},
		{http.MethodGet, "/api/v1/products/?language=fa", http.StatusMovedPermanently, "/api/v1/products?language=fa"},
		{http.MethodPost, "/api/v1/admin/products/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))

			if rr.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if loc := rr.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
		})
	}
}
