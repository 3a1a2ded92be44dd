// Command dashboard runs the inventory admin dashboard gateway: it serves
// the login and dashboard screens and fronts the remote inventory REST API
// through a caching client.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inventrack/dashboard-gateway/internal/api"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
	"github.com/inventrack/dashboard-gateway/internal/core/service"
	"github.com/inventrack/dashboard-gateway/internal/infrastructure/sessionstore"
	"github.com/inventrack/dashboard-gateway/internal/infrastructure/upstream"
	"github.com/inventrack/dashboard-gateway/internal/pkg/config"
	"github.com/inventrack/dashboard-gateway/internal/pkg/notify"
	"github.com/inventrack/dashboard-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store ports.SessionStore
	var rdb *redis.Client
	switch cfg.Session.Backend {
	case "redis":
		var err error
		rdb, err = sessionstore.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer rdb.Close()
		store = sessionstore.NewRedisStore(rdb, cfg.Session.TTL)
	default:
		var err error
		store, err = sessionstore.NewFileStore(cfg.Session.Dir)
		if err != nil {
			log.Fatal().Err(err).Msg("session store init failed")
		}
	}

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	e, err := api.NewRouter(api.Deps{
		Inventory: upstream.NewInventory(client, log),
		Sessions:  service.NewSessionService(store, log),
		Notifier:  notify.NewNotifier(),
		Upstream:  client,
		Redis:     rdb,
		Logger:    log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router init failed")
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.Upstream.BaseURL).
			Str("session_backend", cfg.Session.Backend).
			Msg("dashboard gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
