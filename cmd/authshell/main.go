// Command authshell serves the auth shell core over HTTP.
//
// Startup: logger, configuration, storage backend, single-writer queue,
// session store, auth service, HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/authshell/authshell/internal/api"
	"github.com/authshell/authshell/internal/core/domain"
	"github.com/authshell/authshell/internal/core/ports"
	"github.com/authshell/authshell/internal/core/service"
	"github.com/authshell/authshell/internal/infrastructure/db/file"
	"github.com/authshell/authshell/internal/infrastructure/db/memory"
	mongostore "github.com/authshell/authshell/internal/infrastructure/db/mongo"
	redisstore "github.com/authshell/authshell/internal/infrastructure/db/redis"
	"github.com/authshell/authshell/internal/infrastructure/queue"
	"github.com/authshell/authshell/internal/pkg/config"
	"github.com/authshell/authshell/internal/pkg/metrics"
	"github.com/authshell/authshell/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// backend is a KV store the readiness probe can ping.
type backend interface {
	ports.KeyValueStore
	ports.Pinger
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || cfg.IsDevelopment(),
		Service: "authshell",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("storage", cfg.Storage.Backend).
		Msg("configuration loaded")

	startupCtx, startupCancel := context.WithTimeout(ctx, 30*time.Second)
	defer startupCancel()

	kv, closeKV, err := openBackend(startupCtx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.Storage.Backend).Msg("open storage")
	}
	defer closeKV()

	writerCtx, stopWriter := context.WithCancel(ctx)
	writer := queue.NewWriter(cfg.WriterWorkers, logger.Component("writer"))
	writer.Start(writerCtx)

	store := service.NewSessionStore(kv, writer, logger.Component("session_store"))
	authService := service.NewAuthService(store,
		service.WithLogger(logger.Component("auth")),
		service.WithLatency(service.FixedLatency{Delay: cfg.AuthLatency}),
	)

	updates, unsubscribe := authService.Subscribe()
	go watchSession(updates, log)

	authService.Initialize(startupCtx)

	e := api.NewRouter(authService, map[string]ports.Pinger{"storage": kv}, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server startup error")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	unsubscribe()
	writer.Stop()
	stopWriter()
	log.Info().Msg("server stopped")
}

// openBackend connects the storage selected by STORAGE_BACKEND. The returned
// func releases it.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (backend, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		kv, err := file.Open(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewKV(client, cfg.Storage.KeyPrefix), func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("redis close error")
			}
		}, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "authshell",
		})
		if err != nil {
			return nil, nil, err
		}
		return mongostore.NewKVRepository(db, cfg.Mongo.Collection), func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect error")
			}
		}, nil

	default:
		return memory.NewKV(), func() {}, nil
	}
}

// watchSession mirrors session transitions into the log and the
// authenticated gauge until the subscription closes.
func watchSession(updates <-chan domain.SessionState, log zerolog.Logger) {
	for st := range updates {
		if st.Authenticated() {
			metrics.SessionAuthenticated.Set(1)
		} else {
			metrics.SessionAuthenticated.Set(0)
		}
		log.Debug().Str("stack", string(st.Stack())).Msg("session state changed")
	}
}
