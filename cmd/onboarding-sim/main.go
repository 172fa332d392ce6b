// Package main implements the device onboarding and token-exchange
// simulator server.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/wrale/onboarding-sim/internal/authflow"
	"github.com/wrale/onboarding-sim/internal/configstore"
)

// Version is set by the build process
var Version = "dev"

func main() {
	// Load configuration from environment
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		zlog.Fatal().Err(err).Msg("loading configuration")
	}

	logger := newLogger(cfg)

	// Select the configuration store backend
	store, closeStore, err := newStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing store")
	}
	defer closeStore()

	// Initialize the onboarding flow
	flow := authflow.NewFlow(store, cfg.FrontendBaseURL,
		authflow.WithAuthorizationTTL(cfg.AuthorizationTTL),
		authflow.WithUserTokenTTL(cfg.UserTokenTTL),
		authflow.WithAssertionTTL(cfg.AssertionTTL),
		authflow.WithB2BTokenTTL(cfg.B2BTokenTTL),
		authflow.WithFinalTokenTTL(cfg.FinalTokenTTL),
	)

	// Create and configure server
	srv := newServer(cfg, flow, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().Int("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("server listening")
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-serverErrors:
		logger.Fatal().Err(err).Msg("server error")

	case <-shutdown:
		logger.Info().Msg("starting shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutting down server")
			if err := httpServer.Close(); err != nil {
				logger.Error().Err(err).Msg("closing server")
			}
		}
	}
}

func newLogger(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.LogPretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// newStore builds the configured store backend and returns it with a close
// function for any underlying connection.
func newStore(cfg Config) (configstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case "file":
		store, err := configstore.NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing redis URL: %w", err)
		}
		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return configstore.NewRedisStore(client), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
