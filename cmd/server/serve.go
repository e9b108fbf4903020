package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/iliyamo/home-inventory/internal/config"
	"github.com/iliyamo/home-inventory/internal/database"
	"github.com/iliyamo/home-inventory/internal/live"
	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/repository"
	"github.com/iliyamo/home-inventory/internal/router"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var rdb *redis.Client
	if cfg.Cache.Enabled || cfg.RateLimit.Enabled {
		if rdb = config.NewRedisClient(cfg.Redis); rdb == nil {
			logger.Warn("redis unavailable, cache and rate limit disabled", "addr", cfg.Redis.Addr)
		} else {
			defer rdb.Close()
		}
	}

	e := router.New(router.Deps{
		Store:      repository.NewStore(db),
		Publisher:  queue.NewPublisher(cfg.Events),
		Hub:        live.NewHub(logger),
		Redis:      rdb,
		Cache:      cfg.Cache,
		RateLimit:  cfg.RateLimit,
		AuthSecret: cfg.AuthSecret,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr(), "env", cfg.Env, "db", cfg.DBDriver,
			"events", cfg.Events.Enabled, "auth", cfg.AuthSecret != "")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
