package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/peopleops-tools/staffdir/internal/api"
	"github.com/peopleops-tools/staffdir/internal/audit"
	"github.com/peopleops-tools/staffdir/internal/auth"
	"github.com/peopleops-tools/staffdir/internal/directory"
	"github.com/peopleops-tools/staffdir/internal/records"
	"github.com/peopleops-tools/staffdir/pkg/cache"
	"github.com/peopleops-tools/staffdir/pkg/cache/inmemory"
	"github.com/peopleops-tools/staffdir/pkg/cache/redis"
	"github.com/peopleops-tools/staffdir/pkg/config"
	"github.com/peopleops-tools/staffdir/pkg/logger"
	"github.com/peopleops-tools/staffdir/pkg/store"
)

func main() {
	if err := run(); err != nil {
		logger.Logger(context.Background()).WithError(err).Fatal("staffdir exited with error")
	}
}

func run() error {
	environment := os.Getenv("APP_ENV")
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.Log.Level)
	logger.SetFormatter(cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Logger(ctx).WithField("app", cfg.App.Name)

	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	recordRepo := records.NewPostgresRepository(db)
	if err := recordRepo.EnsureSchema(ctx); err != nil {
		return err
	}
	auditRepo := audit.NewPostgresRepository(db)
	if err := auditRepo.EnsureSchema(ctx); err != nil {
		return err
	}

	cacheClient, err := newCache(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := cacheClient.Disconnect(); err != nil {
			log.WithError(err).Error("failed to disconnect cache")
		}
	}()

	dataStore := store.New(cacheClient)

	tokenExpiry, _ := time.ParseDuration(cfg.Auth.TokenExpiry)
	authService := auth.NewService(recordRepo, cfg.Auth.JWTSecret, tokenExpiry, cfg.Auth.BcryptCost)
	directoryService := directory.NewService(recordRepo, dataStore.Records, auditRepo, authService)

	router := api.NewRouter(&api.Handler{
		Directory: directoryService,
		Auth:      authService,
	}, api.CORSConfig{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.WithField("addr", server.Addr).Info("starting staffdir API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func newCache(cfg *config.AppConfig) (cache.Cache, error) {
	switch cfg.Cache.Driver {
	case "redis":
		return redis.NewCache(&redis.Config{
			Host:     cfg.Cache.Redis.Host,
			Port:     cfg.Cache.Redis.Port,
			Database: cfg.Cache.Redis.Database,
			Username: cfg.Cache.Redis.Username,
			Password: cfg.Cache.Redis.Password,
		})
	case "memory", "":
		return inmemory.NewCache(&inmemory.Config{
			DefaultExpiration: cfg.Cache.InMemory.DefaultExpiration,
			CleanupInterval:   cfg.Cache.InMemory.CleanupInterval,
		})
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
