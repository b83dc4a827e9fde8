// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/cardbound/deal/internal/auth"
	"github.com/cardbound/deal/internal/cache"
	"github.com/cardbound/deal/internal/config"
	"github.com/cardbound/deal/internal/coordinator"
	"github.com/cardbound/deal/internal/game"
	"github.com/cardbound/deal/internal/handlers"
	"github.com/cardbound/deal/internal/middleware"
	"github.com/cardbound/deal/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx := context.Background()

	var st store.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("pgx pool: %v", err)
		}
		defer pool.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := pool.Ping(pingCtx); err != nil {
			cancel()
			logger.Fatalf("db ping: %v", err)
		}
		cancel()
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
		st = pg
		logger.Info("using postgres store")
	} else {
		st = store.NewMemory()
		logger.Warn("no DATABASE_URL set, using in-memory store")
	}

	var ca *cache.Cache
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		ca = cache.New(rdb, cfg.MoveQueue, cfg.SnapshotTTL)
		logger.Infof("redis cache at %s", cfg.RedisAddr)
	}

	var authSvc *auth.Service
	if cfg.AuthPrivateKeyFile != "" && cfg.AuthPublicKeyFile != "" {
		authSvc, err = auth.NewServiceFromPath(cfg.AuthPrivateKeyFile, cfg.AuthPublicKeyFile, cfg.TokenExpire)
	} else {
		authSvc, err = auth.NewService(cfg.TokenExpire)
	}
	if err != nil {
		logger.Fatalf("auth: %v", err)
	}

	engine := game.NewEngine(game.DefaultRules(), nil)
	coord := coordinator.New(st, engine, ca, logger)
	srv := handlers.NewServer(coord, authSvc, logger, nil)

	mux := http.NewServeMux()
	srv.Routes(mux)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: middleware.LogMiddleware(logger)(mux),
	}

	go func() {
		logger.Infof("Running on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server exited: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
