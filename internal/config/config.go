// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/companysite/internal/auth"
)

// knownWeakSecrets contains example tokens that must never guard a deployment.
var knownWeakSecrets = []string{
	"change-me",
	"changeme",
	"admin",
	"secret",
	"REPLACE_WITH_YOUR_OWN_ADMIN_TOKEN",
}

// MinAdminTokenLength is the minimum accepted length for SITE_ADMIN_TOKEN.
const MinAdminTokenLength = 16

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SITE_DB_PATH" envDefault:"./data/companysite.db"`
	ServerHost string `env:"SITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SITE_ENV" envDefault:"development"`
	LogLevel   string `env:"SITE_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"SITE_UPLOADS_DIR" envDefault:"./uploads"`

	// Shared secret for the admin API; empty leaves admin routes open.
	AdminToken string `env:"SITE_ADMIN_TOKEN"`

	// Cache configuration
	RedisURL     string `env:"SITE_REDIS_URL"`                                // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SITE_CACHE_PREFIX" envDefault:"companysite:"`   // Redis key prefix
	CacheTTL     int    `env:"SITE_CACHE_TTL" envDefault:"300"`               // Content list TTL in seconds
	CacheMaxSize int    `env:"SITE_CACHE_MAX_SIZE" envDefault:"1000"`         // Max memory cache entries

	// Public API rate limit per client IP
	RateLimit float64 `env:"SITE_RATE_LIMIT" envDefault:"20"`
	RateBurst int     `env:"SITE_RATE_BURST" envDefault:"40"`

	RequestTimeout time.Duration `env:"SITE_REQUEST_TIMEOUT" envDefault:"30s"`

	// Cron spec for the unreferenced-upload report; "off" disables it.
	OrphanScan string `env:"SITE_ORPHAN_SCAN" envDefault:"@daily"`
	// Events older than this are pruned by the scheduler; 0 keeps everything.
	EventRetention time.Duration `env:"SITE_EVENT_RETENTION" envDefault:"720h"`

	// Content change notifications; empty URL disables them.
	WebhookURL    string `env:"SITE_WEBHOOK_URL"`
	WebhookSecret string `env:"SITE_WEBHOOK_SECRET"`

	// Seeding configuration
	DoSeed bool `env:"SITE_DO_SEED" envDefault:"true"` // Seed the default about text
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// AdminAuthEnabled returns true if admin routes require a token.
func (c Config) AdminAuthEnabled() bool {
	return c.AdminToken != ""
}

// OrphanScanEnabled returns true if the orphan upload report is scheduled.
func (c Config) OrphanScanEnabled() bool {
	return c.OrphanScan != "" && !strings.EqualFold(c.OrphanScan, "off")
}

// WebhooksEnabled returns true if content change notifications are sent.
func (c Config) WebhooksEnabled() bool {
	return c.WebhookURL != ""
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom parses configuration from the given variables instead of the
// process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SITE_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("SITE_CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}

	if cfg.WebhookURL != "" {
		u, err := url.Parse(cfg.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("SITE_WEBHOOK_URL must be an absolute http(s) URL, got %q", cfg.WebhookURL)
		}
	}

	if auth.IsHash(cfg.AdminToken) {
		if _, err := auth.NewVerifier(cfg.AdminToken); err != nil {
			return nil, fmt.Errorf("SITE_ADMIN_TOKEN: %w", err)
		}
	} else if cfg.AdminToken != "" {
		if len(cfg.AdminToken) < MinAdminTokenLength {
			return nil, fmt.Errorf("SITE_ADMIN_TOKEN must be at least %d bytes long, got %d bytes; "+
				"generate one with: openssl rand -base64 32",
				MinAdminTokenLength, len(cfg.AdminToken))
		}
		for _, weak := range knownWeakSecrets {
			if strings.EqualFold(cfg.AdminToken, weak) {
				return nil, fmt.Errorf("SITE_ADMIN_TOKEN is a known default value and must not be used")
			}
		}
		if !hasMinimumEntropy(cfg.AdminToken) {
			slog.Warn("SITE_ADMIN_TOKEN has low character diversity; " +
				"consider generating a random token with: openssl rand -base64 32")
		}
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
