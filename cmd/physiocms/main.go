// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the PhysioCMS server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"physiocms/internal/blocks"
	"physiocms/internal/cache"
	"physiocms/internal/config"
	"physiocms/internal/database"
	"physiocms/internal/handlers"
	"physiocms/internal/ratelimit"
	"physiocms/internal/render"
	"physiocms/internal/router"
	"physiocms/internal/session"
	"physiocms/internal/site"
	"physiocms/internal/storage"
	"physiocms/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Valkey holds sessions, rate limit counters and rendered pages.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	secureCookies := cfg.SecureCookies()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	var contactLimiter, loginLimiter ratelimit.Limiter
	switch cfg.RateLimitStore {
	case "memory":
		contact := ratelimit.NewMemory(cfg.ContactRateLimit, cfg.ContactRateWindow)
		defer contact.Stop()
		login := ratelimit.NewMemory(cfg.LoginRateLimit, cfg.LoginRateWindow)
		defer login.Stop()
		contactLimiter, loginLimiter = contact, login
		slog.Warn("rate limits kept in memory, counters reset on restart")
	default:
		contactLimiter = ratelimit.NewValkey(valkeyClient, cfg.ContactRateLimit, cfg.ContactRateWindow)
		loginLimiter = ratelimit.NewValkey(valkeyClient, cfg.LoginRateLimit, cfg.LoginRateWindow)
	}

	// Data stores.
	userStore := store.NewUserStore(db)
	pageStore := store.NewPageStore(db)
	themeStore := store.NewThemeStore(db)
	settingsStore := store.NewBrandSettingsStore(db)
	docStore := store.NewSiteDocStore(db)
	folderStore := store.NewMediaFolderStore(db)
	mediaStore := store.NewMediaStore(db)
	contactStore := store.NewContactStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	// Object storage is optional. Without it the media library is read-only
	// and uploads answer 503.
	var objects handlers.ObjectStorage
	if cfg.StorageEnabled() {
		client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(pingCtx); err != nil {
			slog.Warn("s3 storage unreachable", "endpoint", cfg.S3Endpoint, "error", err)
		}
		cancel()
		objects = client
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	blockRenderer, err := blocks.NewRenderer()
	if err != nil {
		slog.Error("failed to initialize block renderer", "error", err)
		os.Exit(1)
	}
	engine, err := site.New(pageStore, themeStore, settingsStore, docStore, blockRenderer)
	if err != nil {
		slog.Error("failed to initialize site engine", "error", err)
		os.Exit(1)
	}
	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	invalidator := handlers.NewInvalidator(pageCache, cacheLogStore, engine)

	r := router.New(router.Deps{
		Sessions:      sessionStore,
		SecureCookies: secureCookies,
		LoginLimiter:  loginLimiter,

		Admin:    handlers.NewAdmin(renderer),
		Auth:     handlers.NewAuth(sessionStore, userStore),
		Pages:    handlers.NewPages(pageStore, invalidator),
		Preview:  handlers.NewPreview(pageStore, engine),
		Media:    handlers.NewMedia(folderStore, mediaStore, objects),
		Themes:   handlers.NewThemes(themeStore, settingsStore, invalidator),
		SiteDocs: handlers.NewSiteDocs(docStore, invalidator),
		Contact:  handlers.NewContact(contactStore, contactLimiter),
		Consent:  handlers.NewConsent(secureCookies),
		Public:   handlers.NewPublic(engine, pageCache),
		System:   handlers.NewSystem(cacheLogStore, invalidator),
	})

	// Uploads of up to 20 MB need a generous read timeout.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// parseLevel maps LOG_LEVEL to a slog level. Unknown values fall back to info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
