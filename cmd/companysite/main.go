// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/companysite/internal/auth"
	"github.com/olegiv/companysite/internal/cache"
	"github.com/olegiv/companysite/internal/config"
	"github.com/olegiv/companysite/internal/handler"
	"github.com/olegiv/companysite/internal/handler/api"
	"github.com/olegiv/companysite/internal/logging"
	"github.com/olegiv/companysite/internal/middleware"
	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/scheduler"
	"github.com/olegiv/companysite/internal/service"
	"github.com/olegiv/companysite/internal/store"
	"github.com/olegiv/companysite/internal/version"
	"github.com/olegiv/companysite/internal/webhook"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// uploadCacheMaxAge is the Cache-Control max-age for files under /uploads.
// Stored names are random and never rewritten.
const uploadCacheMaxAge = 365 * 24 * 60 * 60

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	hashToken := flag.String("hash-token", "", "Print an argon2id hash of the given admin token and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "companysite - company website content backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_DB_PATH           SQLite database path (default: ./data/companysite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_UPLOADS_DIR       Upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_ADMIN_TOKEN       Shared secret for /api/v1/admin (min 16 bytes, or a -hash-token hash;\n")
		_, _ = fmt.Fprintf(os.Stderr, "                         single-quote hashes in .env files)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_WEBHOOK_URL       Endpoint notified on content changes (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_ORPHAN_SCAN       Cron spec for the orphan upload report, or \"off\"\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Printf("companysite %s\n", info.Long())
		os.Exit(0)
	}

	if *hashToken != "" {
		hash, err := auth.HashToken(*hashToken)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "hashing token: %v\n", err)
			os.Exit(1)
		}
		_, _ = fmt.Println(hash)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func run(info version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	cacheResult, err := cache.NewCacheWithInfo(cache.Config{
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.CachePrefix,
		DefaultTTL:       cfg.CacheTTLDuration(),
		MaxSize:          cfg.CacheMaxSize,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = cacheResult.Cache.Close() }()
	if cacheResult.IsFallback {
		slog.Warn("content cache initialized", "category", model.EventCategoryCache,
			"backend", cacheResult.BackendType, "note", "Redis unavailable, using fallback")
	} else {
		slog.Info("content cache initialized", "backend", cacheResult.BackendType)
	}
	contentCache := cache.NewContentCache(cacheResult.Cache, cfg.CacheTTLDuration())

	engine := store.NewEngine(db)
	files, err := service.NewFileStore(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("initializing uploads: %w", err)
	}
	eventService := service.NewEventService(db)

	services := api.Services{
		About:  service.NewAboutService(engine, files),
		Files:  files,
		Events: eventService,
		Cache:  contentCache,
	}
	for family, dst := range map[model.Family]**service.LocalizedService{
		model.FamilyProduct:  &services.Products,
		model.FamilyBlogPost: &services.BlogPosts,
		model.FamilyActivity: &services.Activities,
	} {
		if *dst, err = service.NewLocalizedService(engine, files, contentCache, family); err != nil {
			return fmt.Errorf("initializing %s service: %w", family, err)
		}
	}
	for family, dst := range map[model.Family]**service.SimpleService{
		model.FamilyAward:         &services.Awards,
		model.FamilyParentCompany: &services.ParentCompanies,
	} {
		if *dst, err = service.NewSimpleService(engine, files, contentCache, family); err != nil {
			return fmt.Errorf("initializing %s service: %w", family, err)
		}
	}

	// Initialize and start scheduler
	schedCfg := scheduler.Config{EventRetention: cfg.EventRetention}
	if cfg.OrphanScanEnabled() {
		schedCfg.OrphanScan = cfg.OrphanScan
	}
	sched := scheduler.New(engine, files, eventService, logger)
	if err := sched.Start(schedCfg); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()
	services.Jobs = sched

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	defer rateLimiter.Stop()

	if !cfg.AdminAuthEnabled() {
		slog.Warn("SITE_ADMIN_TOKEN is not set, admin API is open", "category", model.EventCategoryAuth)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5, "application/json"))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.StripTrailingSlash)

	healthHandler := handler.NewHealthHandler(db, files.Dir(), cfg.AdminToken, info)
	r.Get("/ping", healthHandler.Ping)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	apiHandler := api.NewHandler(services)

	// Content change notifications
	if cfg.WebhooksEnabled() {
		whCfg := webhook.DefaultConfig()
		whCfg.URL = cfg.WebhookURL
		whCfg.Secret = cfg.WebhookSecret
		dispatcher := webhook.NewDispatcher(whCfg, logger)
		dispatcher.Start(ctx)
		defer dispatcher.Stop()

		debouncer := webhook.NewDebouncer(dispatcher, webhook.DefaultDebounceConfig())
		defer debouncer.Stop()
		apiHandler.SetDispatcher(debouncer)
	}
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimiter.Middleware())
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		apiHandler.Routes(r, cfg.AdminToken)
	})

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(files.Dir())))
	r.With(middleware.UploadCache(uploadCacheMaxAge)).Handle("/uploads/*", uploads)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
