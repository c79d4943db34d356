// Package main implements the entry point for the TMS API server: an
// allow-list based account lifecycle backend with a task board on top.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jswirski/tms-api/internal/api"
	"github.com/jswirski/tms-api/internal/api/middleware"
	"github.com/jswirski/tms-api/internal/config"
	"github.com/jswirski/tms-api/internal/platform/logger"
	"github.com/jswirski/tms-api/internal/platform/mail"
	"github.com/jswirski/tms-api/internal/platform/postgres"
	"github.com/jswirski/tms-api/internal/service/account"
	"github.com/jswirski/tms-api/internal/service/auth"
	"github.com/jswirski/tms-api/internal/service/task"
	"github.com/jswirski/tms-api/migrations"
)

const (
	dbPingTimeout     = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires every component together and serves until
// SIGINT/SIGTERM.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Stores
	emailStore := postgres.NewPostgresAllowedEmailStore(db, appLogger)
	userStore := postgres.NewPostgresUserStore(db, appLogger)
	taskStore := postgres.NewPostgresTaskStore(db, appLogger)

	// Services
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec := auth.NewTokenCodec(cfg.Auth.TokenIssuer)
	sender := mail.NewSMTPSender(cfg.SMTP, appLogger)
	accounts := account.NewService(
		emailStore, userStore, hasher, codec, sender, cfg.Auth, appLogger)
	tasks := task.NewService(taskStore, appLogger)

	// HTTP layer
	router := api.NewRouter(
		api.NewAuthHandler(accounts, codec, cfg.Auth),
		api.NewTaskHandler(tasks),
		middleware.NewAuthMiddleware(codec, []byte(cfg.Auth.TokenSecret)),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return serve(srv)
}

// serve runs the HTTP server until a termination signal arrives, then
// drains in-flight requests within shutdownTimeout.
func serve(srv *http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return <-errCh
}

// runMigrations applies the embedded goose migrations.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	slog.Info("database migrations applied")
	return nil
}
