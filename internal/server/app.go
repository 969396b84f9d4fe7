// Package server initializes and runs the VaultBox server: it opens the
// database, runs migrations, connects object storage and the rate limiter,
// derives the at-rest master key, and serves the HTTP API until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vaultbox/vaultbox/internal/cryptox"
	"github.com/vaultbox/vaultbox/internal/logging"
	"github.com/vaultbox/vaultbox/internal/server/config"
	"github.com/vaultbox/vaultbox/internal/server/httpapi"
	"github.com/vaultbox/vaultbox/internal/server/ratelimit"
	"github.com/vaultbox/vaultbox/internal/server/repositories/repomanager"
	"github.com/vaultbox/vaultbox/internal/server/services"
	"github.com/vaultbox/vaultbox/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := storage.NewS3Store(ctx, storage.S3Options{
		Region:       cfg.S3Region,
		RootUser:     cfg.S3RootUser,
		RootPassword: cfg.S3RootPassword,
		Bucket:       cfg.S3Bucket,
		BaseEndpoint: cfg.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewSlidingWindowLimiter(client, cfg.ShareRateLimit, cfg.ShareRateWindow, "share:")
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.ShareRateLimit, cfg.ShareRateWindow)
	}

	masterKey := cryptox.DeriveKey([]byte(cfg.SecretKey), []byte(cfg.KeySalt))

	srv := httpapi.NewServer(cfg, logger,
		services.NewAccountService(db, rm, cfg),
		services.NewDirectoryService(db, rm, store, masterKey, logger),
		services.NewShareService(db, rm, logger),
		services.NewGatewayService(db, rm, store, masterKey, logger),
		services.NewStatsService(db, rm, logger),
		limiter,
	)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	httpServer := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.server.Handler(),
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server failed", "error", err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err.Error())
	}
}
