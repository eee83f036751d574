// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.DBPath != "./data/companysite.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/companysite.db")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
	if !cfg.IsDevelopment() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.UploadsDir != "./uploads" {
		t.Errorf("UploadsDir = %q", cfg.UploadsDir)
	}
	if cfg.AdminAuthEnabled() {
		t.Error("admin auth should be off without a token")
	}
	if cfg.UseRedisCache() {
		t.Error("redis should be off without a URL")
	}
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("CacheTTLDuration() = %v, want 5m", cfg.CacheTTLDuration())
	}
	if cfg.OrphanScan != "@daily" || !cfg.OrphanScanEnabled() {
		t.Errorf("OrphanScan = %q, want @daily", cfg.OrphanScan)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed should default to true")
	}
	if cfg.WebhooksEnabled() {
		t.Error("webhooks should be off without a URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"SITE_DB_PATH":         "/custom/path.db",
		"SITE_SERVER_HOST":     "0.0.0.0",
		"SITE_SERVER_PORT":     "3000",
		"SITE_ENV":             "production",
		"SITE_LOG_LEVEL":       "debug",
		"SITE_ADMIN_TOKEN":     "Xk9#mP2$vL7qR4nT",
		"SITE_REDIS_URL":       "redis://localhost:6379/0",
		"SITE_CACHE_TTL":       "60",
		"SITE_RATE_LIMIT":      "2.5",
		"SITE_ORPHAN_SCAN":     "off",
		"SITE_EVENT_RETENTION": "24h",
		"SITE_DO_SEED":         "false",
		"SITE_WEBHOOK_URL":     "https://hooks.example.com/site",
	})
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("production should not be development")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if !cfg.AdminAuthEnabled() {
		t.Error("admin auth should be on")
	}
	if !cfg.UseRedisCache() {
		t.Error("redis should be on")
	}
	if cfg.CacheTTLDuration() != time.Minute {
		t.Errorf("CacheTTLDuration() = %v", cfg.CacheTTLDuration())
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v", cfg.RateLimit)
	}
	if cfg.OrphanScanEnabled() {
		t.Errorf("OrphanScan = %q should be disabled", cfg.OrphanScan)
	}
	if cfg.EventRetention != 24*time.Hour {
		t.Errorf("EventRetention = %v", cfg.EventRetention)
	}
	if cfg.DoSeed {
		t.Error("DoSeed should be false")
	}
	if !cfg.WebhooksEnabled() {
		t.Error("webhooks should be on")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		wantErr string
	}{
		{"port not a number", map[string]string{"SITE_SERVER_PORT": "http"}, "parsing config"},
		{"port out of range", map[string]string{"SITE_SERVER_PORT": "70000"}, "SITE_SERVER_PORT"},
		{"negative ttl", map[string]string{"SITE_CACHE_TTL": "-1"}, "SITE_CACHE_TTL"},
		{"short token", map[string]string{"SITE_ADMIN_TOKEN": "short"}, "at least"},
		{"relative webhook url", map[string]string{"SITE_WEBHOOK_URL": "/hooks"}, "SITE_WEBHOOK_URL"},
		{"ftp webhook url", map[string]string{"SITE_WEBHOOK_URL": "ftp://hooks.example.com"}, "SITE_WEBHOOK_URL"},
		{"malformed token hash", map[string]string{"SITE_ADMIN_TOKEN": "$argon2id$v=19$broken"}, "invalid argon2id hash"},
		{"weak token", map[string]string{"SITE_ADMIN_TOKEN": "REPLACE_WITH_YOUR_OWN_ADMIN_TOKEN"}, "known default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.environ)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_HashedAdminToken(t *testing.T) {
	// Hashes skip the plaintext strength checks.
	hash := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	cfg, err := LoadFrom(map[string]string{"SITE_ADMIN_TOKEN": hash})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.AdminToken != hash {
		t.Errorf("AdminToken = %q, want the hash unchanged", cfg.AdminToken)
	}
	if !cfg.AdminAuthEnabled() {
		t.Error("admin token should be enabled")
	}
}

func TestLoad_FromProcessEnvironment(t *testing.T) {
	t.Setenv("SITE_SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want 9090", cfg.ServerPort)
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"alllowercaseletters", false},
		{"lowerUPPER", false},
		{"lowerUPPER123", true},
		{"lower123!@#", true},
	}

	for _, tt := range tests {
		t.Run(tt.secret, func(t *testing.T) {
			if got := hasMinimumEntropy(tt.secret); got != tt.want {
				t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
			}
		})
	}
}
