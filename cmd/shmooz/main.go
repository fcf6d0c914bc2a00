// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command shmooz runs the portfolio CMS backend: the public read API
// for the SSR frontend, the admin write API, and the background jobs
// that keep the frontend cache in sync.
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

	"github.com/joho/godotenv"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/config"
	"github.com/shmooz/shmooz-go/internal/handler/api"
	"github.com/shmooz/shmooz-go/internal/invalidate"
	"github.com/shmooz/shmooz-go/internal/logging"
	"github.com/shmooz/shmooz-go/internal/scheduler"
	"github.com/shmooz/shmooz-go/internal/service"
	"github.com/shmooz/shmooz-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "shmooz - portfolio CMS backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHMOOZ_ADMIN_KEY           Admin API key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHMOOZ_DB_PATH             SQLite database path (default: ./data/shmooz.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHMOOZ_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHMOOZ_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHMOOZ_MEDIA_DIR           Uploaded image directory (default: ./media)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHMOOZ_REDIS_URL           Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHMOOZ_INVALIDATE_URL      Frontend SSR cache invalidation endpoint\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHMOOZ_RESYNC_SCHEDULE     Cron spec for the nightly cache resync (default: 0 4 * * *)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("shmooz %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
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

	// Upgrade logger to also write WARN and ERROR logs to the Event Log database
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Local response cache, Redis-backed when configured
	cacheType := "memory"
	if cfg.UseRedisCache() {
		cacheType = "redis"
	}
	appCache, err := cache.NewCache(cache.CacheConfig{
		Type:       cacheType,
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
		MaxSize:    cfg.CacheMaxSize,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache ready", "type", cacheType)

	// Outbound frontend SSR cache invalidation
	client := invalidate.NewClient(invalidate.Options{
		URL:              cfg.InvalidateURL,
		AdminKey:         cfg.OutboundKey(),
		Timeout:          cfg.InvalidateTimeoutDuration(),
		FailureThreshold: cfg.InvalidateFailureThreshold,
		RecoveryTimeout:  time.Duration(cfg.InvalidateRecoveryTimeout) * time.Second,
		MaxRetries:       cfg.InvalidateMaxRetries,
		BaseDelay:        cfg.InvalidateBaseDelayDuration(),
	})

	// Services
	notifier := service.NewNotifier(client, appCache, db)
	events := service.NewEventService(db)
	resync := service.NewResyncService(db, notifier, appCache, events)
	ttl := cfg.CacheTTLDuration()

	h := api.NewHandler(api.Deps{
		Slugs:       service.NewSlugService(db, notifier),
		Decks:       service.NewDeckService(db, notifier, appCache, ttl),
		Cards:       service.NewProjectCardService(db, notifier, appCache, ttl),
		Backgrounds: service.NewBackgroundService(db, notifier, appCache, ttl),
		Pages:       service.NewPageService(db, notifier, appCache, ttl),
		Media:       service.NewMediaService(db, cfg.MediaDir),
		Resync:      resync,
		Events:      events,
		Client:      client,
		Cache:       appCache,
	})

	r := api.NewRouter(h, api.RouterConfig{
		AdminKey:       cfg.AdminKey,
		AdminRateLimit: cfg.AdminRateLimit,
		AdminRateBurst: cfg.AdminRateBurst,
		IsDevelopment:  cfg.IsDevelopment(),
		MediaDir:       cfg.MediaDir,
	})

	// Background jobs
	jobs := scheduler.New(resync, events, logger, scheduler.Config{
		ResyncSchedule: cfg.ResyncSchedule,
		EventRetention: time.Duration(cfg.EventRetentionDays) * 24 * time.Hour,
	})
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer jobs.Stop()

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
