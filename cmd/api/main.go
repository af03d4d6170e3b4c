package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-ordering/internal/adapters/cdn"
	pg "restaurant-ordering/internal/adapters/storage/postgres"
	"restaurant-ordering/internal/domain/menus"
	"restaurant-ordering/internal/platform/logger"
	"restaurant-ordering/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Error("JWT_SECRET is required", nil)
		os.Exit(1)
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var db *sql.DB
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		opened, err := pg.Open(dsn)
		if err != nil {
			log.Error("postgres connection failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()

		migrationsDir := os.Getenv("MIGRATIONS_DIR")
		if migrationsDir == "" {
			migrationsDir = "./migrations"
		}
		if err := pg.ApplyMigrations(db, migrationsDir); err != nil {
			log.Error("migrations failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		log.Info("storage ready", map[string]any{"adapter": "postgres"})
	} else {
		log.Info("storage ready", map[string]any{"adapter": "memory"})
	}

	var uploader menus.Uploader
	if base := os.Getenv("CDN_BASE_URL"); base != "" {
		c, err := cdn.New(base, os.Getenv("CDN_API_KEY"), 15*time.Second)
		if err != nil {
			log.Error("cdn config invalid", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		uploader = c
	}

	var bootstrap *router.BootstrapSuperAdmin
	if email := os.Getenv("SUPERADMIN_EMAIL"); email != "" {
		bootstrap = &router.BootstrapSuperAdmin{
			Email:    email,
			Name:     "Platform Root",
			Password: os.Getenv("SUPERADMIN_PASSWORD"),
		}
	}

	handler, stopLimiters, err := router.New(router.Options{
		JWTSecret:  []byte(secret),
		BaseDomain: os.Getenv("BASE_DOMAIN"),
		DB:         db,
		Uploader:   uploader,
		Log:        log,
		Bootstrap:  bootstrap,
	})
	if err != nil {
		log.Error("router init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer stopLimiters()

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("server listening", map[string]any{"addr": addr})

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", map[string]any{"error": err.Error()})
		}
		log.Info("server stopped", nil)
	}
}
